package attendance

import (
	"context"
	"testing"
	"time"

	"kusgan/internal/membership"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"id", "member_id", "time_in", "time_out", "visit_date"}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewRepository(sqlx.NewDb(sqlDB, "sqlmock")), mock
}

func TestRepository_CheckIn(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO attendance`).
		WithArgs("JUAN-250101", now, "2025-01-20").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(1, "JUAN-250101", now, nil, "2025-01-20"))

	v, err := repo.CheckIn(context.Background(), "JUAN-250101", now, membership.MustParseDate("2025-01-20"))
	require.NoError(t, err)
	assert.Equal(t, 1, v.ID)
	assert.Nil(t, v.TimeOut)
	assert.Equal(t, "2025-01-20", v.VisitDate.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CheckIn_OpenVisitExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO attendance`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CheckIn(context.Background(), "JUAN-250101", time.Now(), membership.MustParseDate("2025-01-20"))
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestRepository_CheckOut_NoOpenVisit(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`UPDATE attendance SET time_out = \$2 WHERE member_id = \$1 AND time_out IS NULL`).
		WithArgs("JUAN-250101", now).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.CheckOut(context.Background(), "JUAN-250101", now)
	assert.ErrorIs(t, err, ErrNotCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByDate(t *testing.T) {
	repo, mock := newMockRepo(t)
	in := time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC)
	out := in.Add(time.Hour)

	mock.ExpectQuery(`SELECT .* FROM attendance WHERE visit_date = \$1`).
		WithArgs("2025-01-20").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, "JUAN-250101", in, out, in).
			AddRow(2, "MARIA-250105", in, nil, in))

	visits, err := repo.ListByDate(context.Background(), membership.MustParseDate("2025-01-20"))
	require.NoError(t, err)
	require.Len(t, visits, 2)
	require.NotNil(t, visits[0].TimeOut)
	assert.Nil(t, visits[1].TimeOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}
