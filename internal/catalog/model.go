package catalog

import (
	"time"

	"kusgan/internal/membership"

	"github.com/shopspring/decimal"
)

type Product struct {
	Label        string          `db:"label" json:"label"`
	Cost         decimal.Decimal `db:"cost" json:"cost" swaggertype:"string" example:"1500.00"`
	ValidityDays int             `db:"validity_days" json:"validity_days"`
	GrantsGym    bool            `db:"grants_gym" json:"grants_gym"`
	GrantsCoach  bool            `db:"grants_coach" json:"grants_coach"`
	Active       bool            `db:"active" json:"active"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

func (p Product) Entry() membership.PriceEntry {
	return membership.PriceEntry{
		Label:        p.Label,
		Cost:         p.Cost,
		ValidityDays: p.ValidityDays,
		GrantsGym:    p.GrantsGym,
		GrantsCoach:  p.GrantsCoach,
	}
}

type CreateProductRequest struct {
	Label        string          `json:"label" validate:"required,max=100"`
	Cost         decimal.Decimal `json:"cost" swaggertype:"string" example:"1500.00"`
	ValidityDays int             `json:"validity_days" validate:"gte=0,lte=3660"`
	GrantsGym    bool            `json:"grants_gym"`
	GrantsCoach  bool            `json:"grants_coach"`
}

type UpdateProductRequest struct {
	Cost         *decimal.Decimal `json:"cost,omitempty" swaggertype:"string" example:"1600.00"`
	ValidityDays *int             `json:"validity_days,omitempty" validate:"omitempty,gte=0,lte=3660"`
	GrantsGym    *bool            `json:"grants_gym,omitempty"`
	GrantsCoach  *bool            `json:"grants_coach,omitempty"`
	Active       *bool            `json:"active,omitempty"`
}
