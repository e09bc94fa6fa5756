package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles recognised across the application.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"` // bcrypt hash
	Role         string `gorm:"default:'customer'"`
	Active       bool   `gorm:"default:true"`
	TokenVersion int    `gorm:"default:1"`
	LastLoginAt  time.Time
	LastLoginIP  string
}

// CreateUserInput carries registration fields from the handler layer.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
