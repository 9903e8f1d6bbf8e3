package domain

import (
	"time"

	"github.com/google/uuid"
)

// Limites dos parâmetros de top-N do dashboard
const (
	DefaultCategoryLimit = 5
	MaxCategoryLimit     = 50
	DefaultRankingLimit  = 10
	MaxRankingLimit      = 100
)

// RecordFilters é o conjunto de filtros aplicado de forma idêntica a todas as
// consultas agregadas: dataset obrigatório, janela de datas e vendedor opcionais.
// Os filtros compõem por AND.
type RecordFilters struct {
	DatasetID uuid.UUID  `json:"dataset_id"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	SellerID  *uuid.UUID `json:"seller_id,omitempty"`
}

// SeriesPoint é um ponto (data, soma do dia) da série temporal
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// DayValue identifica um dia e a soma de valores daquele dia
type DayValue struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// KPIs são os agregados principais de um conjunto filtrado de registros.
// BestDay e WorstDay são nulos quando não há dias na janela; em caso de empate
// de soma diária vence a data mais antiga.
type KPIs struct {
	TotalValue    float64   `json:"total_value"`
	AvgDailyValue float64   `json:"avg_daily_value"`
	Days          int       `json:"days"`
	BestDay       *DayValue `json:"best_day"`
	WorstDay      *DayValue `json:"worst_day"`
}

// CategoryTotal é o total somado de uma categoria
type CategoryTotal struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// SellerRankingItem é uma posição do ranking de vendedores por valor total
type SellerRankingItem struct {
	SellerID      uuid.UUID `json:"seller_id"`
	SellerName    string    `json:"seller_name"`
	TotalValue    float64   `json:"total_value"`
	AvgDailyValue float64   `json:"avg_daily_value"`
	Days          int       `json:"days"`
}

// Dashboard é o resultado composto calculado sobre um único conjunto filtrado
type Dashboard struct {
	Filters       RecordFilters       `json:"filters"`
	KPIs          KPIs                `json:"kpis"`
	Series        []SeriesPoint       `json:"series"`
	TopCategories []CategoryTotal     `json:"top_categories"`
	SellerRanking []SellerRankingItem `json:"seller_ranking"`
}

// DashboardComparison compara a janela atual com a janela imediatamente
// anterior de mesma duração. GrowthTotalValuePct é nulo quando o total do
// período anterior é exatamente zero.
type DashboardComparison struct {
	Current             *Dashboard `json:"current"`
	Previous            *Dashboard `json:"previous"`
	CurrentStart        time.Time  `json:"current_start"`
	CurrentEnd          time.Time  `json:"current_end"`
	PreviousStart       time.Time  `json:"previous_start"`
	PreviousEnd         time.Time  `json:"previous_end"`
	GrowthTotalValuePct *float64   `json:"growth_total_value_pct"`
}

// FilterOptions expõe os valores filtráveis presentes em um dataset
type FilterOptions struct {
	DateMin    *time.Time  `json:"date_min,omitempty"`
	DateMax    *time.Time  `json:"date_max,omitempty"`
	Categories []string    `json:"categories"`
	Sellers    []SellerRef `json:"sellers"`
}
