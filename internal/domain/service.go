package domain

import (
	"strings"
	"time"
)

// Service is an entry in the catalog of offerings a booking can reference
type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DelFlag     bool      `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewService creates a catalog entry
func NewService(id, name, description string) (*Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	now := time.Now()
	return &Service{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update replaces the mutable fields of the catalog entry
func (s *Service) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	s.Name = name
	s.Description = strings.TrimSpace(description)
	s.UpdatedAt = time.Now()
	return nil
}

// SoftDelete marks the catalog entry as deleted without removing the row
func (s *Service) SoftDelete() {
	s.DelFlag = true
	s.UpdatedAt = time.Now()
}
