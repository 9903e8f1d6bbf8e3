package domain

import (
	"time"

	"github.com/google/uuid"
)

// Seller é a entidade de vendedor atribuível a registros de venda.
// O nome é único no banco (constraint) e sempre armazenado sem espaços nas bordas.
type Seller struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Region    *string   `json:"region,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// SellerCreate carrega o payload de criação de vendedor
type SellerCreate struct {
	Name     string  `json:"name" validate:"required,min=1,max=120"`
	Region   *string `json:"region" validate:"omitempty,max=120"`
	IsActive *bool   `json:"is_active"`
}

// SellerUpdate carrega os campos editáveis de um vendedor via PATCH
type SellerUpdate struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=120"`
	Region   *string `json:"region" validate:"omitempty,max=120"`
	IsActive *bool   `json:"is_active"`
}

// SellerRef é o par (id, nome) presente nos filtros de um dataset
type SellerRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
