package member

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"kusgan/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrIDTaken        = errors.New("member id already taken")
)

const memberColumns = `id, nickname, first_name, last_name, email, phone, joined_on, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// NormalizeID is the canonical form member IDs are stored and looked up in.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func (r *repository) Create(ctx context.Context, m Member) (*Member, error) {
	var created Member
	err := r.db.GetContext(ctx, &created, `
		INSERT INTO members (id, nickname, first_name, last_name, email, phone, joined_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+memberColumns,
		NormalizeID(m.ID), m.Nickname, m.FirstName, m.LastName, m.Email, m.Phone, m.JoinedOn)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrIDTaken
		}
		return nil, err
	}
	return &created, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Member, error) {
	var m Member
	err := r.db.GetContext(ctx, &m, `SELECT `+memberColumns+` FROM members WHERE id = $1`, NormalizeID(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) IDExists(ctx context.Context, id string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM members WHERE id = $1)`, NormalizeID(id))
}

func (r *repository) List(ctx context.Context, search string, limit, offset int) ([]Member, error) {
	members := []Member{}
	pattern := "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
	err := r.db.SelectContext(ctx, &members, `
		SELECT `+memberColumns+`
		FROM members
		WHERE LOWER(id) LIKE $1 OR LOWER(nickname) LIKE $1
		   OR LOWER(first_name) LIKE $1 OR LOWER(last_name) LIKE $1
		ORDER BY last_name, first_name, id
		LIMIT $2 OFFSET $3
	`, pattern, limit, offset)
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *repository) ListWithEmail(ctx context.Context) ([]Member, error) {
	members := []Member{}
	err := r.db.SelectContext(ctx, &members, `
		SELECT `+memberColumns+`
		FROM members
		WHERE email IS NOT NULL AND email <> ''
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	return members, nil
}
