package catalog

import (
	"context"
	"errors"
	"fmt"

	"kusgan/internal/membership"
)

var ErrInvalidProduct = errors.New("invalid product")

type Service interface {
	List(ctx context.Context, includeInactive bool) ([]Product, error)
	Get(ctx context.Context, label string) (*Product, error)
	Create(ctx context.Context, req CreateProductRequest) (*Product, error)
	Update(ctx context.Context, label string, req UpdateProductRequest) (*Product, error)
	Load(ctx context.Context) (*membership.Catalog, error)
}

type service struct {
	repo          Repository
	explicitFlags bool
}

// NewService wires the products table. explicitFlags false means the stored
// flag columns are not trusted and the engine infers them from labels.
func NewService(repo Repository, explicitFlags bool) Service {
	return &service{repo: repo, explicitFlags: explicitFlags}
}

func (s *service) List(ctx context.Context, includeInactive bool) ([]Product, error) {
	return s.repo.List(ctx, includeInactive)
}

func (s *service) Get(ctx context.Context, label string) (*Product, error) {
	return s.repo.GetByLabel(ctx, label)
}

func (s *service) Create(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if req.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: cost must not be negative", ErrInvalidProduct)
	}
	return s.repo.Create(ctx, Product{
		Label:        req.Label,
		Cost:         req.Cost,
		ValidityDays: req.ValidityDays,
		GrantsGym:    req.GrantsGym,
		GrantsCoach:  req.GrantsCoach,
	})
}

func (s *service) Update(ctx context.Context, label string, req UpdateProductRequest) (*Product, error) {
	p, err := s.repo.GetByLabel(ctx, label)
	if err != nil {
		return nil, err
	}

	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, fmt.Errorf("%w: cost must not be negative", ErrInvalidProduct)
		}
		p.Cost = *req.Cost
	}
	if req.ValidityDays != nil {
		p.ValidityDays = *req.ValidityDays
	}
	if req.GrantsGym != nil {
		p.GrantsGym = *req.GrantsGym
	}
	if req.GrantsCoach != nil {
		p.GrantsCoach = *req.GrantsCoach
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	return s.repo.Update(ctx, label, p.Cost, p.ValidityDays, p.GrantsGym, p.GrantsCoach, p.Active)
}

// Load builds the engine catalog. Inactive products stay in it so that old
// payments for retired products keep their validity.
func (s *service) Load(ctx context.Context) (*membership.Catalog, error) {
	products, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	entries := make([]membership.PriceEntry, 0, len(products))
	for _, p := range products {
		entries = append(entries, p.Entry())
	}
	return membership.NewCatalog(entries, s.explicitFlags)
}
