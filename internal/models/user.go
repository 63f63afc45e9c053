package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account of the store. The password field holds a bcrypt
// hash and is never serialized.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username string `json:"userName" gorm:"uniqueIndex;type:varchar(30)" validate:"required,min=3,max=30"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role     string `json:"role" gorm:"type:varchar(10);default:user"`

	ResetPasswordToken   *string    `json:"-" gorm:"type:varchar(64);index"`
	ResetPasswordExpires *time.Time `json:"-"`
	IsEmailVerified      bool       `json:"isEmailVerified" gorm:"default:false"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Sanitized returns the projection of the user that is safe to hand to
// clients.
func (u *User) Sanitized() map[string]interface{} {
	return map[string]interface{}{
		"id":              u.ID,
		"userName":        u.Username,
		"email":           u.Email,
		"role":            u.Role,
		"isEmailVerified": u.IsEmailVerified,
	}
}
