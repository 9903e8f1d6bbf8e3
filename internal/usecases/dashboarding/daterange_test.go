package dashboarding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-insights-api/internal/domain"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func boundedDataset() *domain.Dataset {
	return &domain.Dataset{
		DateMin: datePtr(2024, 1, 1),
		DateMax: datePtr(2024, 3, 31),
	}
}

func TestNormalizeRange(t *testing.T) {
	tests := []struct {
		name      string
		start     *time.Time
		end       *time.Time
		dataset   *domain.Dataset
		wantStart *time.Time
		wantEnd   *time.Time
		wantErr   error
	}{
		{
			name:      "par completo é mantido como está",
			start:     datePtr(2024, 2, 1),
			end:       datePtr(2024, 2, 10),
			dataset:   boundedDataset(),
			wantStart: datePtr(2024, 2, 1),
			wantEnd:   datePtr(2024, 2, 10),
		},
		{
			name:    "par invertido é rejeitado",
			start:   datePtr(2024, 2, 10),
			end:     datePtr(2024, 2, 1),
			dataset: boundedDataset(),
			wantErr: domain.ErrInvalidDateRange,
		},
		{
			name:      "só start completa com date_max do dataset",
			start:     datePtr(2024, 2, 1),
			dataset:   boundedDataset(),
			wantStart: datePtr(2024, 2, 1),
			wantEnd:   datePtr(2024, 3, 31),
		},
		{
			name:      "só end completa com date_min do dataset",
			end:       datePtr(2024, 2, 10),
			dataset:   boundedDataset(),
			wantStart: datePtr(2024, 1, 1),
			wantEnd:   datePtr(2024, 2, 10),
		},
		{
			name:    "nenhuma data significa sem filtro",
			dataset: boundedDataset(),
		},
		{
			name:      "só start em dataset sem limites fica meio aberto",
			start:     datePtr(2024, 2, 1),
			dataset:   &domain.Dataset{},
			wantStart: datePtr(2024, 2, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := normalizeRange(tt.start, tt.end, tt.dataset)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestResolveWindow(t *testing.T) {
	t.Run("janela aberta cai nos limites do dataset", func(t *testing.T) {
		start, end, err := resolveWindow(nil, nil, boundedDataset())

		require.NoError(t, err)
		assert.Equal(t, date(2024, 1, 1), start)
		assert.Equal(t, date(2024, 3, 31), end)
	})

	t.Run("dataset sem registros não resolve janela", func(t *testing.T) {
		_, _, err := resolveWindow(nil, nil, &domain.Dataset{})

		require.ErrorIs(t, err, domain.ErrUnboundedRange)
	})

	t.Run("janela invertida é rejeitada", func(t *testing.T) {
		_, _, err := resolveWindow(datePtr(2024, 2, 10), datePtr(2024, 2, 1), boundedDataset())

		require.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})
}

func TestPreviousWindow(t *testing.T) {
	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "janela de cinco dias",
			start:     date(2024, 2, 1),
			end:       date(2024, 2, 5),
			wantStart: date(2024, 1, 27),
			wantEnd:   date(2024, 1, 31),
		},
		{
			name:      "janela de um dia",
			start:     date(2024, 2, 1),
			end:       date(2024, 2, 1),
			wantStart: date(2024, 1, 31),
			wantEnd:   date(2024, 1, 31),
		},
		{
			name:      "janela que cruza a virada do ano",
			start:     date(2024, 1, 1),
			end:       date(2024, 1, 7),
			wantStart: date(2023, 12, 25),
			wantEnd:   date(2023, 12, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previousStart, previousEnd := previousWindow(tt.start, tt.end)

			assert.Equal(t, tt.wantStart, previousStart)
			assert.Equal(t, tt.wantEnd, previousEnd)
		})
	}
}
