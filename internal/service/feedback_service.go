package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/servibook/servibook/internal/domain"
	"github.com/servibook/servibook/internal/dto"
	"github.com/servibook/servibook/internal/repository"
)

// FeedbackService defines the interface for feedback operations
type FeedbackService interface {
	Create(ctx context.Context, userID string, req *dto.CreateFeedbackRequest) (*domain.Feedback, error)
	Get(ctx context.Context, id string) (*domain.Feedback, error)
	ListByService(ctx context.Context, serviceID string, limit, offset int) ([]*domain.Feedback, error)
	Delete(ctx context.Context, id string) error
}

type feedbackService struct {
	repo        repository.FeedbackRepository
	serviceRepo repository.ServiceRepository
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(repo repository.FeedbackRepository, serviceRepo repository.ServiceRepository) FeedbackService {
	return &feedbackService{repo: repo, serviceRepo: serviceRepo}
}

func (s *feedbackService) Create(ctx context.Context, userID string, req *dto.CreateFeedbackRequest) (*domain.Feedback, error) {
	if _, err := s.serviceRepo.GetByID(ctx, req.ServiceID); err != nil {
		return nil, err
	}

	fb, err := domain.NewFeedback(uuid.New().String(), userID, req.ServiceID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, err
	}

	return fb, nil
}

func (s *feedbackService) Get(ctx context.Context, id string) (*domain.Feedback, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *feedbackService) ListByService(ctx context.Context, serviceID string, limit, offset int) ([]*domain.Feedback, error) {
	if _, err := s.serviceRepo.GetByID(ctx, serviceID); err != nil {
		return nil, err
	}
	return s.repo.GetByServiceID(ctx, serviceID, limit, offset)
}

func (s *feedbackService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
