// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Role values for a profile. The store defaults to RoleUser; RoleAdmin is
// granted only through the admin endpoints.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile represents a registered identity in the Promptstash application.
// A profile row is created at signup together with the identity itself.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"not null;default:user" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Prompts   []Prompt  `gorm:"foreignKey:AuthorID" json:"prompts,omitempty"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
