package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kusgan/internal/member"

	"github.com/jmoiron/sqlx"
)

const paymentColumns = `id, member_id, product_label, amount, start_date, end_date, coach_end_date, recorded_by, paid_at`

const insertPayment = `
	INSERT INTO payments (id, member_id, product_label, amount, start_date, end_date, coach_end_date, recorded_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING ` + paymentColumns

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByMember(ctx context.Context, memberID string) ([]Payment, error) {
	return listByMember(ctx, r.db, memberID)
}

func listByMember(ctx context.Context, q sqlx.QueryerContext, memberID string) ([]Payment, error) {
	payments := []Payment{}
	err := sqlx.SelectContext(ctx, q, &payments, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE LOWER(TRIM(member_id)) = LOWER(TRIM($1))
		ORDER BY paid_at DESC
	`, memberID)
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Payment, error) {
	payments := []Payment{}
	err := r.db.SelectContext(ctx, &payments, `SELECT `+paymentColumns+` FROM payments`)
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) Record(ctx context.Context, memberID string, build BuildFunc) (*Payment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var lockedID string
	err = tx.GetContext(ctx, &lockedID, `SELECT id FROM members WHERE id = $1 FOR UPDATE`, member.NormalizeID(memberID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, member.ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}

	ledger, err := listByMember(ctx, tx, lockedID)
	if err != nil {
		return nil, err
	}

	p, err := build(ledger)
	if err != nil {
		return nil, err
	}

	created, err := insert(ctx, tx, p)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

func insert(ctx context.Context, tx *sqlx.Tx, p Payment) (*Payment, error) {
	var created Payment
	err := tx.GetContext(ctx, &created, insertPayment,
		p.ID, p.MemberID, p.ProductLabel, p.Amount, p.StartDate, p.EndDate, p.CoachEndDate, p.RecordedBy)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return &created, nil
}

// InsertBatch stores imported rows in one transaction.
func (r *repository) InsertBatch(ctx context.Context, payments []Payment) (int, error) {
	if len(payments) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for i, p := range payments {
		if _, err := insert(ctx, tx, p); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(payments), nil
}
