package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	List(ctx context.Context, includeInactive bool) ([]Product, error)
	GetByLabel(ctx context.Context, label string) (*Product, error)
	Create(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, label string, cost decimal.Decimal, validityDays int, grantsGym, grantsCoach, active bool) (*Product, error)
}
