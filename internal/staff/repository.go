package staff

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"kusgan/internal/db"

	"github.com/jmoiron/sqlx"
)

var ErrStaffNotFound = errors.New("staff not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, passwordHash, role string) (*Staff, error) {
	var s Staff
	err := r.db.GetContext(ctx, &s, `
		INSERT INTO staff (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, password_hash, role, created_at
	`, name, normalizeEmail(email), passwordHash, role)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Staff, error) {
	return r.findOne(ctx, `
		SELECT id, name, email, password_hash, role, created_at
		FROM staff
		WHERE email = $1
	`, normalizeEmail(email))
}

func (r *repository) FindByID(ctx context.Context, id int) (*Staff, error) {
	return r.findOne(ctx, `
		SELECT id, name, email, password_hash, role, created_at
		FROM staff
		WHERE id = $1
	`, id)
}

func (r *repository) findOne(ctx context.Context, query string, arg interface{}) (*Staff, error) {
	var s Staff
	err := r.db.GetContext(ctx, &s, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM staff WHERE email = $1)`, normalizeEmail(email))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
