package member

import "context"

type Repository interface {
	Create(ctx context.Context, m Member) (*Member, error)
	FindByID(ctx context.Context, id string) (*Member, error)
	IDExists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, search string, limit, offset int) ([]Member, error)
	ListWithEmail(ctx context.Context) ([]Member, error)
}
