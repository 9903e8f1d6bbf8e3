package domain

import (
	"time"

	"github.com/google/uuid"
)

// Record é uma linha normalizada de venda pertencente a exatamente um dataset.
// O vínculo com vendedor é opcional e pode voltar a ser nulo se o vendedor for removido.
type Record struct {
	ID        int64          `json:"id"`
	DatasetID uuid.UUID      `json:"dataset_id"`
	SellerID  *uuid.UUID     `json:"seller_id,omitempty"`
	EventDate time.Time      `json:"event_date"`
	Category  *string        `json:"category,omitempty"`
	Value     float64        `json:"value"`
	Quantity  *float64       `json:"quantity,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// NormalizedRow é uma linha do CSV após inferência de colunas e coerção de tipos,
// pronta para virar Record dentro da transação de ingestão.
type NormalizedRow struct {
	EventDate  time.Time
	Value      float64
	Category   *string
	SellerName string // vazio significa "sem vendedor"
	Quantity   *float64
	Metadata   map[string]any
}

// RecordSellerUpdate reatribui ou desvincula o vendedor de um registro.
// SellerID nulo desvincula.
type RecordSellerUpdate struct {
	SellerID *uuid.UUID `json:"seller_id"`
}
