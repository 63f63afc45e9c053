package models

import "time"

// Order statuses. There is no server-enforced transition table beyond the
// capture flip (pending -> confirmed / cancelled); admins may set any known
// status.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusInProcess  = "inProcess"
	OrderStatusInShipping = "inShipping"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRejected   = "rejected"
)

// Payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Payment methods.
const (
	PaymentMethodPayPal = "paypal"
	PaymentMethodCOD    = "cod"
	PaymentMethodMock   = "mock"
)

// ValidOrderStatuses lists the statuses an admin update may write.
var ValidOrderStatuses = map[string]bool{
	OrderStatusPending:    true,
	OrderStatusConfirmed:  true,
	OrderStatusInProcess:  true,
	OrderStatusInShipping: true,
	OrderStatusDelivered:  true,
	OrderStatusCancelled:  true,
	OrderStatusRejected:   true,
}

// OrderItem is a snapshot of a cart line taken at order-creation time.
// Title, image and price are copied so later catalog edits do not alter
// historical orders.
type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"productId" gorm:"type:varchar(36)" validate:"required"`
	Title     string  `json:"title" validate:"required"`
	Image     string  `json:"image"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
}

// OrderAddress is the address snapshot embedded in an order.
type OrderAddress struct {
	AddressID string `json:"addressId"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Pincode   string `json:"pincode"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
}

// Order is a customer order driving the payment and fulfillment workflow.
type Order struct {
	ID     string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID string `json:"userId" gorm:"index;type:varchar(36)" validate:"required"`
	CartID string `json:"cartId" gorm:"type:varchar(36)" validate:"required"`

	Items       []OrderItem  `json:"cartItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" validate:"required,min=1,dive"`
	AddressInfo OrderAddress `json:"addressInfo" gorm:"embedded;embeddedPrefix:addr_"`

	OrderStatus   string  `json:"orderStatus" gorm:"type:varchar(20);default:pending"`
	PaymentMethod string  `json:"paymentMethod" gorm:"type:varchar(20)" validate:"required,oneof=paypal cod mock"`
	PaymentStatus string  `json:"paymentStatus" gorm:"type:varchar(20);default:pending"`
	TotalAmount   float64 `json:"totalAmount" validate:"gte=0"`

	PaymentID string `json:"paymentId" gorm:"index;type:varchar(64)"`
	PayerID   string `json:"payerId" gorm:"type:varchar(64)"`

	OrderDate time.Time `json:"orderDate"`
	UpdatedAt time.Time `json:"orderUpdateDate"`
}
