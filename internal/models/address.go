package models

import "time"

// MaxAddressesPerUser caps the address book size per user.
const MaxAddressesPerUser = 3

// Address is one entry of a user's address book.
type Address struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"index;type:varchar(36)" validate:"required"`
	Address   string    `json:"address" validate:"required"`
	City      string    `json:"city" validate:"required"`
	Pincode   string    `json:"pincode" validate:"required"`
	Phone     string    `json:"phone" validate:"required"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
