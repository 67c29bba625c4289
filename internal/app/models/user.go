package models

import (
	"time"
)

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin RoleType = "Admin"
	RoleUser  RoleType = "User"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"admin@registry.local"`
	Password  string    `json:"-" db:"password"` // Hashed password, excluded from JSON
	FirstName string    `json:"firstName" db:"first_name" example:"Jane"`
	LastName  string    `json:"lastName" db:"last_name" example:"Smith"`
	RoleType  RoleType  `json:"roleType" db:"role_type" example:"Admin"`
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
}
