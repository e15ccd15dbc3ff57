// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Role identifies what a user account is allowed to do.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleShelter Role = "shelter"
	RoleAdopter Role = "adopter"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleShelter, RoleAdopter:
		return true
	}
	return false
}

// UserStatus marks whether an account is usable.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// User represents an account on the adoption platform.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"uniqueIndex;not null" json:"username"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	Role      Role       `gorm:"type:varchar(16);not null;default:adopter;index" json:"role"`
	Name      string     `json:"name,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	Status    UserStatus `gorm:"type:varchar(16);not null;default:active" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
