package record

import (
	"context"

	"github.com/vfg2006/sales-insights-api/infrastructure/repository"
	"github.com/vfg2006/sales-insights-api/internal/domain"
)

// RecordService permite reatribuir ou desvincular o vendedor de um registro;
// registros não têm outra forma de edição fora da ingestão
type RecordService interface {
	UpdateSeller(ctx context.Context, id int64, update domain.RecordSellerUpdate) (*domain.Record, error)
}

type Service struct {
	recordRepo repository.RecordRepository
	sellerRepo repository.SellerRepository
}

func NewService(
	recordRepo repository.RecordRepository,
	sellerRepo repository.SellerRepository,
) RecordService {
	return &Service{
		recordRepo: recordRepo,
		sellerRepo: sellerRepo,
	}
}

func (s *Service) UpdateSeller(ctx context.Context, id int64, update domain.RecordSellerUpdate) (*domain.Record, error) {
	// Vendedor informado precisa existir; nulo desvincula
	if update.SellerID != nil {
		if _, err := s.sellerRepo.GetByID(ctx, *update.SellerID); err != nil {
			return nil, err
		}
	}

	if err := s.recordRepo.UpdateSeller(ctx, id, update.SellerID); err != nil {
		return nil, err
	}

	return s.recordRepo.GetByID(ctx, id)
}
