package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/servibook/servibook/internal/domain"
)

// MemoryFeedbackRepository implements FeedbackRepository with an in-memory map.
// Intended for tests and local development.
type MemoryFeedbackRepository struct {
	mu       sync.RWMutex
	feedback map[string]*domain.Feedback
}

// NewMemoryFeedbackRepository creates a new MemoryFeedbackRepository
func NewMemoryFeedbackRepository() *MemoryFeedbackRepository {
	return &MemoryFeedbackRepository{
		feedback: make(map[string]*domain.Feedback),
	}
}

func (r *MemoryFeedbackRepository) Create(_ context.Context, fb *domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *fb
	r.feedback[fb.ID] = &clone
	return nil
}

func (r *MemoryFeedbackRepository) GetByID(_ context.Context, id string) (*domain.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fb, ok := r.feedback[id]
	if !ok || fb.DelFlag {
		return nil, domain.ErrFeedbackNotFound
	}

	clone := *fb
	return &clone, nil
}

func (r *MemoryFeedbackRepository) GetByServiceID(_ context.Context, serviceID string, limit, offset int) ([]*domain.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var feedback []*domain.Feedback
	for _, fb := range r.feedback {
		if fb.DelFlag || fb.ServiceID != serviceID {
			continue
		}
		clone := *fb
		feedback = append(feedback, &clone)
	}

	sort.Slice(feedback, func(i, j int) bool {
		return feedback[i].CreatedAt.After(feedback[j].CreatedAt)
	})

	return paginate(feedback, limit, offset), nil
}

func (r *MemoryFeedbackRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fb, ok := r.feedback[id]
	if !ok || fb.DelFlag {
		return domain.ErrFeedbackNotFound
	}

	fb.SoftDelete()
	return nil
}

// Ensure MemoryFeedbackRepository implements FeedbackRepository
var _ FeedbackRepository = (*MemoryFeedbackRepository)(nil)
