package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"label", "cost", "validity_days", "grants_gym", "grants_coach", "active", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewRepository(sqlx.NewDb(sqlDB, "sqlmock")), mock
}

func TestRepository_List(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM products WHERE active OR \$1 ORDER BY label`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("Coach Monthly", "2500.00", 30, false, true, true, now, now).
			AddRow("Monthly", "1500.00", 30, true, false, true, now, now))

	products, err := repo.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Coach Monthly", products[0].Label)
	assert.True(t, products[1].Cost.Equal(decimal.NewFromInt(1500)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByLabel_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .* FROM products WHERE label = \$1`).
		WithArgs("Yearly").
		WillReturnRows(sqlmock.NewRows(columns))

	p, err := repo.GetByLabel(context.Background(), "Yearly")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DuplicateLabel(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs("Monthly", sqlmock.AnyArg(), 30, true, false).
		WillReturnError(&pq.Error{Code: "23505"})

	p, err := repo.Create(context.Background(), Product{
		Label:        "Monthly",
		Cost:         decimal.NewFromInt(1500),
		ValidityDays: 30,
		GrantsGym:    true,
	})
	assert.ErrorIs(t, err, ErrLabelExists)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`UPDATE products SET .* WHERE label = \$1 RETURNING`).
		WithArgs("Monthly", sqlmock.AnyArg(), 31, true, false, false).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("Monthly", "1600.00", 31, true, false, false, now, now))

	p, err := repo.Update(context.Background(), "Monthly", decimal.NewFromInt(1600), 31, true, false, false)
	require.NoError(t, err)
	assert.Equal(t, 31, p.ValidityDays)
	assert.False(t, p.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}
