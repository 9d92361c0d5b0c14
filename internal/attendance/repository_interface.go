package attendance

import (
	"context"
	"time"

	"kusgan/internal/membership"
)

type Repository interface {
	CheckIn(ctx context.Context, memberID string, at time.Time, visitDate membership.Date) (*Visit, error)
	CheckOut(ctx context.Context, memberID string, at time.Time) (*Visit, error)
	ListByMember(ctx context.Context, memberID string, limit int) ([]Visit, error)
	ListByDate(ctx context.Context, day membership.Date) ([]Visit, error)
}
