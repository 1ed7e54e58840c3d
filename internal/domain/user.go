package domain

import (
	"strings"
	"time"
)

// Role determines what a user is allowed to do
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// IsValid reports whether the role is a known role
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// IsAdministrative reports whether the role may manage bookings and services
func (r Role) IsAdministrative() bool {
	return r == RoleAdmin
}

// User represents a registered account
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	DelFlag      bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser creates a user with the default role
func NewUser(id, name, email, phone, passwordHash string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, ErrInvalidName
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	now := time.Now()
	return &User{
		ID:           id,
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: passwordHash,
		Role:         RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// SoftDelete marks the user as deleted without removing the row
func (u *User) SoftDelete() {
	u.DelFlag = true
	u.UpdatedAt = time.Now()
}
