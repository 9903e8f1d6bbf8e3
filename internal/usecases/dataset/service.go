package dataset

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vfg2006/sales-insights-api/infrastructure/repository"
	"github.com/vfg2006/sales-insights-api/internal/domain"
)

// DatasetService cobre o ciclo de vida de datasets fora da ingestão
type DatasetService interface {
	List(ctx context.Context) ([]domain.Dataset, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Dataset, error)
	Update(ctx context.Context, id uuid.UUID, update domain.DatasetUpdate) (*domain.Dataset, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Insights(ctx context.Context, id uuid.UUID) ([]domain.Insight, error)
}

type Service struct {
	datasetRepo repository.DatasetRepository
	insightRepo repository.InsightRepository
	validate    *validator.Validate
}

func NewService(
	datasetRepo repository.DatasetRepository,
	insightRepo repository.InsightRepository,
) DatasetService {
	return &Service{
		datasetRepo: datasetRepo,
		insightRepo: insightRepo,
		validate:    validator.New(),
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Dataset, error) {
	return s.datasetRepo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Dataset, error) {
	return s.datasetRepo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, update domain.DatasetUpdate) (*domain.Dataset, error) {
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		update.Name = &trimmed
	}

	if err := s.validate.Struct(update); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	return s.datasetRepo.Update(ctx, id, update)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.datasetRepo.Delete(ctx, id)
}

// Insights lista as anotações write-once geradas pela ingestão do dataset
func (s *Service) Insights(ctx context.Context, id uuid.UUID) ([]domain.Insight, error) {
	if _, err := s.datasetRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.insightRepo.ListByDataset(ctx, id)
}
