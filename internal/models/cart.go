package models

import "time"

// Cart holds the line items a user has picked but not yet ordered. Each user
// owns at most one cart; it is created lazily on the first add and deleted
// when an order derived from it is paid.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"userId" gorm:"uniqueIndex;type:varchar(36)" validate:"required"`
	Items     []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem is one (product, quantity) line of a cart.
type CartItem struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID    string `json:"cartId" gorm:"index:idx_cart_product,unique;type:varchar(36)"`
	ProductID string `json:"productId" gorm:"index:idx_cart_product,unique;type:varchar(36)" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// CartItemView is a cart line joined with the current catalog state of its
// product. Cart items reflect live prices until checkout; only orders snapshot.
type CartItemView struct {
	ProductID string  `json:"productId"`
	Image     string  `json:"image"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	SalePrice float64 `json:"salePrice"`
	Quantity  int     `json:"quantity"`
}

// CartView is what the fetch endpoint returns.
type CartView struct {
	ID     string         `json:"id"`
	UserID string         `json:"userId"`
	Items  []CartItemView `json:"items"`
}
