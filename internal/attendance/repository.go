package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kusgan/internal/membership"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrAlreadyCheckedIn = errors.New("member is already checked in")
	ErrNotCheckedIn     = errors.New("member is not checked in")
)

const visitColumns = `id, member_id, time_in, time_out, visit_date`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CheckIn(ctx context.Context, memberID string, at time.Time, visitDate membership.Date) (*Visit, error) {
	var v Visit
	err := r.db.GetContext(ctx, &v, `
		INSERT INTO attendance (member_id, time_in, visit_date)
		VALUES ($1, $2, $3)
		RETURNING `+visitColumns,
		memberID, at, visitDate)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}
	return &v, nil
}

func (r *repository) CheckOut(ctx context.Context, memberID string, at time.Time) (*Visit, error) {
	var v Visit
	err := r.db.GetContext(ctx, &v, `
		UPDATE attendance
		SET time_out = $2
		WHERE member_id = $1 AND time_out IS NULL
		RETURNING `+visitColumns,
		memberID, at)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotCheckedIn
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) ListByMember(ctx context.Context, memberID string, limit int) ([]Visit, error) {
	visits := []Visit{}
	err := r.db.SelectContext(ctx, &visits, `
		SELECT `+visitColumns+`
		FROM attendance
		WHERE member_id = $1
		ORDER BY time_in DESC
		LIMIT $2
	`, memberID, limit)
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *repository) ListByDate(ctx context.Context, day membership.Date) ([]Visit, error) {
	visits := []Visit{}
	err := r.db.SelectContext(ctx, &visits, `
		SELECT `+visitColumns+`
		FROM attendance
		WHERE visit_date = $1
		ORDER BY time_in
	`, day)
	if err != nil {
		return nil, err
	}
	return visits, nil
}
