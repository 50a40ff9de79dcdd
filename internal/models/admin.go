package models

import (
	"strings"
	"time"

	"github.com/desertthunder/jobboard/internal/shared"
)

// Admin is the administrative account. Password holds a bcrypt hash and is never serialised.
type Admin struct {
	ID        string    `json:"id" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"-" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

// Key implements [Model].
func (a *Admin) Key() string { return a.ID }

// Validate implements [Model].
func (a *Admin) Validate() error { return check(a) }

// NewAdmin creates an Admin for email with an already hashed password.
func NewAdmin(email, passwordHash string, now time.Time) *Admin {
	return &Admin{
		ID:        shared.GenerateID(),
		Email:     strings.TrimSpace(email),
		Password:  passwordHash,
		CreatedAt: now,
	}
}

// AdminSummary is the public view of an admin returned from login.
type AdminSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Summary returns the public view of a.
func (a *Admin) Summary() AdminSummary {
	return AdminSummary{ID: a.ID, Email: a.Email}
}

// Credentials is the admin login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate checks that both fields are present.
func (c *Credentials) Validate() error {
	c.Email = strings.TrimSpace(c.Email)
	return check(c)
}
