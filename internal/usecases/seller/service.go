package seller

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vfg2006/sales-insights-api/infrastructure/repository"
	"github.com/vfg2006/sales-insights-api/internal/domain"
)

// SellerService cobre o CRUD de vendedores. A unicidade de nome é garantida
// pela constraint do banco e traduzida em conflito (409) pelo repositório.
type SellerService interface {
	Create(ctx context.Context, payload domain.SellerCreate) (*domain.Seller, error)
	List(ctx context.Context, nameQuery string) ([]domain.Seller, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Seller, error)
	Update(ctx context.Context, id uuid.UUID, update domain.SellerUpdate) (*domain.Seller, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	sellerRepo repository.SellerRepository
	validate   *validator.Validate
}

func NewService(sellerRepo repository.SellerRepository) SellerService {
	return &Service{
		sellerRepo: sellerRepo,
		validate:   validator.New(),
	}
}

func (s *Service) Create(ctx context.Context, payload domain.SellerCreate) (*domain.Seller, error) {
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return nil, domain.ErrEmptySellerName
	}

	if err := s.validate.Struct(payload); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	seller := &domain.Seller{
		ID:       uuid.New(),
		Name:     payload.Name,
		IsActive: true,
	}

	if payload.Region != nil {
		region := strings.TrimSpace(*payload.Region)
		if region != "" {
			seller.Region = &region
		}
	}
	if payload.IsActive != nil {
		seller.IsActive = *payload.IsActive
	}

	if err := s.sellerRepo.Create(ctx, seller); err != nil {
		return nil, err
	}

	return seller, nil
}

func (s *Service) List(ctx context.Context, nameQuery string) ([]domain.Seller, error) {
	return s.sellerRepo.List(ctx, strings.TrimSpace(nameQuery))
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	return s.sellerRepo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, update domain.SellerUpdate) (*domain.Seller, error) {
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if trimmed == "" {
			return nil, domain.ErrEmptySellerName
		}
		update.Name = &trimmed
	}

	if err := s.validate.Struct(update); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	return s.sellerRepo.Update(ctx, id, update)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.sellerRepo.Delete(ctx, id)
}
