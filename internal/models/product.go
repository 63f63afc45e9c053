package models

import "time"

// Product represents a catalog entry. TotalStock must never go negative; the
// order fulfillment path decrements it with a conditional write.
type Product struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Image         string    `json:"image" validate:"required,url"`
	Title         string    `json:"title" gorm:"type:varchar(255)" validate:"required,min=3,max=255"`
	Description   string    `json:"description" validate:"omitempty,max=2000"`
	Category      string    `json:"category" gorm:"index;type:varchar(100)"`
	Brand         string    `json:"brand" gorm:"index;type:varchar(100)"`
	Price         float64   `json:"price" validate:"gte=0"`
	SalePrice     float64   `json:"salePrice" validate:"gte=0"` // 0 means no discount
	TotalStock    int       `json:"totalStock" validate:"gte=0"`
	AverageReview float64   `json:"averageReview" validate:"gte=0,lte=5"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
