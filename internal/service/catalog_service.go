package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/servibook/servibook/internal/domain"
	"github.com/servibook/servibook/internal/dto"
	"github.com/servibook/servibook/internal/repository"
)

// CatalogService defines the interface for service catalog operations
type CatalogService interface {
	Create(ctx context.Context, req *dto.CreateServiceRequest) (*domain.Service, error)
	Get(ctx context.Context, id string) (*domain.Service, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Service, error)
	Update(ctx context.Context, id string, req *dto.UpdateServiceRequest) (*domain.Service, error)
	Delete(ctx context.Context, id string) error
}

type catalogService struct {
	repo repository.ServiceRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(repo repository.ServiceRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) Create(ctx context.Context, req *dto.CreateServiceRequest) (*domain.Service, error) {
	svc, err := domain.NewService(uuid.New().String(), req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}

	return svc, nil
}

func (s *catalogService) Get(ctx context.Context, id string) (*domain.Service, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *catalogService) List(ctx context.Context, limit, offset int) ([]*domain.Service, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *catalogService) Update(ctx context.Context, id string, req *dto.UpdateServiceRequest) (*domain.Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := svc.Update(req.Name, req.Description); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}

	return svc, nil
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
