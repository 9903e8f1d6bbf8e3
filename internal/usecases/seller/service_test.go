package seller

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-insights-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string {
	return &s
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name    string
		payload domain.SellerCreate
		setup   func(repo *mocks.MockSellerRepository)
		check   func(t *testing.T, created *domain.Seller, err error)
	}{
		{
			name:    "cria com defaults e nome aparado",
			payload: domain.SellerCreate{Name: "  Ana Souza  "},
			setup: func(repo *mocks.MockSellerRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, created *domain.Seller, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Ana Souza", created.Name)
				assert.True(t, created.IsActive)
				assert.Nil(t, created.Region)
				assert.NotEqual(t, uuid.Nil, created.ID)
			},
		},
		{
			name: "respeita região e is_active explícitos",
			payload: domain.SellerCreate{
				Name:     "Bruno",
				Region:   strPtr(" Sul "),
				IsActive: boolPtr(false),
			},
			setup: func(repo *mocks.MockSellerRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, created *domain.Seller, err error) {
				require.NoError(t, err)
				require.NotNil(t, created.Region)
				assert.Equal(t, "Sul", *created.Region)
				assert.False(t, created.IsActive)
			},
		},
		{
			name:    "nome vazio é rejeitado antes do banco",
			payload: domain.SellerCreate{Name: "   "},
			setup:   func(repo *mocks.MockSellerRepository) {},
			check: func(t *testing.T, created *domain.Seller, err error) {
				require.ErrorIs(t, err, domain.ErrEmptySellerName)
				assert.Nil(t, created)
			},
		},
		{
			name:    "conflito de nome vem do repositório",
			payload: domain.SellerCreate{Name: "Ana"},
			setup: func(repo *mocks.MockSellerRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrSellerNameConflict)
			},
			check: func(t *testing.T, created *domain.Seller, err error) {
				require.ErrorIs(t, err, domain.ErrSellerNameConflict)
				assert.Nil(t, created)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSellerRepo := mocks.NewMockSellerRepository(ctrl)
			tt.setup(mockSellerRepo)

			service := NewService(mockSellerRepo)
			created, err := service.Create(context.Background(), tt.payload)

			tt.check(t, created, err)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSellerRepo := mocks.NewMockSellerRepository(ctrl)
	service := NewService(mockSellerRepo)

	id := uuid.New()

	t.Run("nome em branco é rejeitado", func(t *testing.T) {
		_, err := service.Update(context.Background(), id, domain.SellerUpdate{Name: strPtr("  ")})

		require.ErrorIs(t, err, domain.ErrEmptySellerName)
	})

	t.Run("atualização parcial repassa o nome aparado", func(t *testing.T) {
		mockSellerRepo.EXPECT().
			Update(gomock.Any(), id, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, update domain.SellerUpdate) (*domain.Seller, error) {
				require.NotNil(t, update.Name)
				assert.Equal(t, "Carla", *update.Name)
				return &domain.Seller{ID: id, Name: *update.Name}, nil
			})

		updated, err := service.Update(context.Background(), id, domain.SellerUpdate{Name: strPtr(" Carla ")})

		require.NoError(t, err)
		assert.Equal(t, "Carla", updated.Name)
	})
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSellerRepo := mocks.NewMockSellerRepository(ctrl)
	service := NewService(mockSellerRepo)

	mockSellerRepo.EXPECT().
		List(gomock.Any(), "ana").
		Return([]domain.Seller{{Name: "Ana"}}, nil)

	// A busca chega aparada no repositório
	sellers, err := service.List(context.Background(), "  ana  ")

	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, "Ana", sellers[0].Name)
}

func boolPtr(b bool) *bool {
	return &b
}
