package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrLabelExists     = errors.New("product label already exists")
)

const productColumns = `label, cost, validity_days, grants_gym, grants_coach, active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, includeInactive bool) ([]Product, error) {
	products := []Product{}
	err := r.db.SelectContext(ctx, &products, `
		SELECT `+productColumns+`
		FROM products
		WHERE active OR $1
		ORDER BY label
	`, includeInactive)
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) GetByLabel(ctx context.Context, label string) (*Product, error) {
	var p Product
	err := r.db.GetContext(ctx, &p, `
		SELECT `+productColumns+`
		FROM products
		WHERE label = $1
	`, label)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p Product) (*Product, error) {
	var created Product
	err := r.db.GetContext(ctx, &created, `
		INSERT INTO products (label, cost, validity_days, grants_gym, grants_coach)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+productColumns,
		p.Label, p.Cost, p.ValidityDays, p.GrantsGym, p.GrantsCoach)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrLabelExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *repository) Update(ctx context.Context, label string, cost decimal.Decimal, validityDays int, grantsGym, grantsCoach, active bool) (*Product, error) {
	var p Product
	err := r.db.GetContext(ctx, &p, `
		UPDATE products
		SET cost = $2, validity_days = $3, grants_gym = $4, grants_coach = $5, active = $6, updated_at = NOW()
		WHERE label = $1
		RETURNING `+productColumns,
		label, cost, validityDays, grantsGym, grantsCoach, active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
