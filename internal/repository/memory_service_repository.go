package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/servibook/servibook/internal/domain"
)

// MemoryServiceRepository implements ServiceRepository with an in-memory map.
// Intended for tests and local development.
type MemoryServiceRepository struct {
	mu       sync.RWMutex
	services map[string]*domain.Service
}

// NewMemoryServiceRepository creates a new MemoryServiceRepository
func NewMemoryServiceRepository() *MemoryServiceRepository {
	return &MemoryServiceRepository{
		services: make(map[string]*domain.Service),
	}
}

func (r *MemoryServiceRepository) Create(_ context.Context, svc *domain.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[svc.ID]; ok {
		return domain.ErrServiceAlreadyExists
	}

	clone := *svc
	r.services[svc.ID] = &clone
	return nil
}

func (r *MemoryServiceRepository) GetByID(_ context.Context, id string) (*domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.services[id]
	if !ok || svc.DelFlag {
		return nil, domain.ErrServiceNotFound
	}

	clone := *svc
	return &clone, nil
}

func (r *MemoryServiceRepository) List(_ context.Context, limit, offset int) ([]*domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var services []*domain.Service
	for _, svc := range r.services {
		if svc.DelFlag {
			continue
		}
		clone := *svc
		services = append(services, &clone)
	}

	sort.Slice(services, func(i, j int) bool {
		return services[i].CreatedAt.After(services[j].CreatedAt)
	})

	return paginate(services, limit, offset), nil
}

func (r *MemoryServiceRepository) Update(_ context.Context, svc *domain.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.services[svc.ID]
	if !ok || existing.DelFlag {
		return domain.ErrServiceNotFound
	}

	clone := *svc
	r.services[svc.ID] = &clone
	return nil
}

func (r *MemoryServiceRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	svc, ok := r.services[id]
	if !ok || svc.DelFlag {
		return domain.ErrServiceNotFound
	}

	svc.SoftDelete()
	return nil
}

// Ensure MemoryServiceRepository implements ServiceRepository
var _ ServiceRepository = (*MemoryServiceRepository)(nil)
