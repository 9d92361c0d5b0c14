package payment

import "context"

// BuildFunc receives the member's current ledger and returns the row to insert.
type BuildFunc func(ledger []Payment) (Payment, error)

type Repository interface {
	ListByMember(ctx context.Context, memberID string) ([]Payment, error)
	ListAll(ctx context.Context) ([]Payment, error)
	// Record serializes purchases per member: the ledger handed to build
	// cannot change before the returned row is inserted.
	Record(ctx context.Context, memberID string, build BuildFunc) (*Payment, error)
	InsertBatch(ctx context.Context, payments []Payment) (int, error)
}
