package services

import (
	"fmt"
	"sort"
	"time"

	"walkup/internal/models"
	"walkup/internal/repositories"
)

// AnalyticsOverview aggregates whole-history order metrics.
type AnalyticsOverview struct {
	TotalOrders       int     `json:"totalOrders"`
	TotalRevenue      float64 `json:"totalRevenue"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	UniqueCustomers   int     `json:"uniqueCustomers"`
	RepeatCustomers   int     `json:"repeatCustomers"`
	CustomerRetention float64 `json:"customerRetention"`
}

// AnalyticsRecent covers the requested window and its growth against the
// window before it.
type AnalyticsRecent struct {
	TimeRange     int     `json:"timeRange"`
	Orders        int     `json:"orders"`
	Revenue       float64 `json:"revenue"`
	RevenueGrowth float64 `json:"revenueGrowth"`
	OrdersGrowth  float64 `json:"ordersGrowth"`
}

// TopProduct is one entry of the best-sellers list.
type TopProduct struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Count     int     `json:"count"`
	Revenue   float64 `json:"revenue"`
}

// MonthlyRevenue is one point of the revenue trend.
type MonthlyRevenue struct {
	Month   string  `json:"month"` // YYYY-MM
	Revenue float64 `json:"revenue"`
}

// RecentOrder is one row of the recent activity feed.
type RecentOrder struct {
	ID            string    `json:"id"`
	OrderDate     time.Time `json:"orderDate"`
	TotalAmount   float64   `json:"totalAmount"`
	OrderStatus   string    `json:"orderStatus"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
}

// AnalyticsReport is the full admin dashboard payload. It is recomputed from
// raw order history on every request; nothing here is persisted.
type AnalyticsReport struct {
	Overview         AnalyticsOverview `json:"overview"`
	Recent           AnalyticsRecent   `json:"recent"`
	OrderStatus      map[string]int    `json:"orderStatus"`
	TopProducts      []TopProduct      `json:"topProducts"`
	MonthlyTrend     []MonthlyRevenue  `json:"monthlyTrend"`
	PaymentMethods   map[string]int    `json:"paymentMethods"`
	RecentActivity   []RecentOrder     `json:"recentActivity"`
	CompletionRate   float64           `json:"completionRate"`
	CancellationRate float64           `json:"cancellationRate"`
}

// AnalyticsService computes the admin dashboard report.
type AnalyticsService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository) *AnalyticsService {
	return &AnalyticsService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
	}
}

// Report aggregates all orders into the dashboard payload. timeRangeDays
// bounds the "recent" window; values below 1 fall back to 30.
func (s *AnalyticsService) Report(timeRangeDays int) (*AnalyticsReport, error) {
	if timeRangeDays < 1 {
		timeRangeDays = 30
	}

	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, err
	}

	usersByID := make(map[string]models.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	now := time.Now()
	windowStart := now.AddDate(0, 0, -timeRangeDays)
	prevStart := windowStart.AddDate(0, 0, -timeRangeDays)

	var totalRevenue, recentRevenue, previousRevenue float64
	var recentCount, previousCount int

	statusCounts := map[string]int{
		models.OrderStatusPending:    0,
		models.OrderStatusConfirmed:  0,
		models.OrderStatusInProcess:  0,
		models.OrderStatusInShipping: 0,
		models.OrderStatusDelivered:  0,
		models.OrderStatusCancelled:  0,
		models.OrderStatusRejected:   0,
	}
	paymentMethods := make(map[string]int)
	customerOrderCounts := make(map[string]int)
	monthly := make(map[string]float64)

	type productAgg struct {
		title   string
		count   int
		revenue float64
	}
	productAggs := make(map[string]*productAgg)

	for _, order := range orders {
		totalRevenue += order.TotalAmount
		statusCounts[order.OrderStatus]++
		paymentMethods[order.PaymentMethod]++
		customerOrderCounts[order.UserID]++

		if order.OrderDate.After(windowStart) && !order.OrderDate.After(now) {
			recentCount++
			recentRevenue += order.TotalAmount
		} else if order.OrderDate.After(prevStart) && !order.OrderDate.After(windowStart) {
			previousCount++
			previousRevenue += order.TotalAmount
		}

		monthKey := fmt.Sprintf("%04d-%02d", order.OrderDate.Year(), order.OrderDate.Month())
		monthly[monthKey] += order.TotalAmount

		for _, item := range order.Items {
			agg, ok := productAggs[item.ProductID]
			if !ok {
				agg = &productAgg{title: item.Title}
				productAggs[item.ProductID] = agg
			}
			agg.count += item.Quantity
			agg.revenue += item.Price * float64(item.Quantity)
		}
	}

	totalOrders := len(orders)
	averageOrderValue := 0.0
	if totalOrders > 0 {
		averageOrderValue = totalRevenue / float64(totalOrders)
	}

	uniqueCustomers := len(customerOrderCounts)
	repeatCustomers := 0
	for _, count := range customerOrderCounts {
		if count > 1 {
			repeatCustomers++
		}
	}
	retention := 0.0
	if uniqueCustomers > 0 {
		retention = float64(repeatCustomers) / float64(uniqueCustomers) * 100
	}

	revenueGrowth := 0.0
	if previousRevenue > 0 {
		revenueGrowth = (recentRevenue - previousRevenue) / previousRevenue * 100
	}
	ordersGrowth := 0.0
	if previousCount > 0 {
		ordersGrowth = float64(recentCount-previousCount) / float64(previousCount) * 100
	}

	topProducts := make([]TopProduct, 0, len(productAggs))
	for productID, agg := range productAggs {
		topProducts = append(topProducts, TopProduct{
			ProductID: productID,
			Title:     agg.title,
			Count:     agg.count,
			Revenue:   agg.revenue,
		})
	}
	sort.Slice(topProducts, func(i, j int) bool {
		if topProducts[i].Count != topProducts[j].Count {
			return topProducts[i].Count > topProducts[j].Count
		}
		return topProducts[i].ProductID < topProducts[j].ProductID
	})
	if len(topProducts) > 10 {
		topProducts = topProducts[:10]
	}

	monthKeys := make([]string, 0, len(monthly))
	for key := range monthly {
		monthKeys = append(monthKeys, key)
	}
	sort.Strings(monthKeys)
	if len(monthKeys) > 12 {
		monthKeys = monthKeys[len(monthKeys)-12:]
	}
	trend := make([]MonthlyRevenue, 0, len(monthKeys))
	for _, key := range monthKeys {
		trend = append(trend, MonthlyRevenue{Month: key, Revenue: monthly[key]})
	}

	// Orders come back newest first from the repository.
	activity := make([]RecentOrder, 0, 10)
	for _, order := range orders {
		if len(activity) == 10 {
			break
		}
		name, email := "Unknown", "Unknown"
		if user, ok := usersByID[order.UserID]; ok {
			name, email = user.Username, user.Email
		}
		activity = append(activity, RecentOrder{
			ID:            order.ID,
			OrderDate:     order.OrderDate,
			TotalAmount:   order.TotalAmount,
			OrderStatus:   order.OrderStatus,
			CustomerName:  name,
			CustomerEmail: email,
		})
	}

	completionRate := 0.0
	cancellationRate := 0.0
	if totalOrders > 0 {
		completionRate = float64(statusCounts[models.OrderStatusDelivered]) / float64(totalOrders) * 100
		cancellationRate = float64(statusCounts[models.OrderStatusCancelled]+statusCounts[models.OrderStatusRejected]) / float64(totalOrders) * 100
	}

	return &AnalyticsReport{
		Overview: AnalyticsOverview{
			TotalOrders:       totalOrders,
			TotalRevenue:      totalRevenue,
			AverageOrderValue: averageOrderValue,
			UniqueCustomers:   uniqueCustomers,
			RepeatCustomers:   repeatCustomers,
			CustomerRetention: retention,
		},
		Recent: AnalyticsRecent{
			TimeRange:     timeRangeDays,
			Orders:        recentCount,
			Revenue:       recentRevenue,
			RevenueGrowth: revenueGrowth,
			OrdersGrowth:  ordersGrowth,
		},
		OrderStatus:      statusCounts,
		TopProducts:      topProducts,
		MonthlyTrend:     trend,
		PaymentMethods:   paymentMethods,
		RecentActivity:   activity,
		CompletionRate:   completionRate,
		CancellationRate: cancellationRate,
	}, nil
}
