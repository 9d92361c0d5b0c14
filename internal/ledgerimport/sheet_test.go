package ledgerimport

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlag(t *testing.T) {
	for _, raw := range []string{"TRUE", "true", "Yes", "1", "✓", " y "} {
		v, err := ParseFlag(raw)
		require.NoError(t, err, raw)
		assert.True(t, v, raw)
	}
	for _, raw := range []string{"FALSE", "no", "0", ""} {
		v, err := ParseFlag(raw)
		require.NoError(t, err, raw)
		assert.False(t, v, raw)
	}

	_, err := ParseFlag("maybe")
	assert.Error(t, err)
}

func TestParseCost(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1500", "1500"},
		{"₱1,500.00", "1500"},
		{"PHP 2,500.50", "2500.5"},
		{"", "0"},
	}
	for _, tt := range tests {
		got, err := ParseCost(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "%s => %s", tt.raw, got)
	}

	_, err := ParseCost("free")
	assert.Error(t, err)
}

func TestReadPriceSheet(t *testing.T) {
	csv := "Particulars,Cost,Validity,Gym,Coach\n" +
		"Monthly,\"1,500.00\",30,TRUE,FALSE\n" +
		"Coach Monthly,2500,30,no,✓\n" +
		"\n" +
		"Walk-in,100,,,\n" +
		"Broken,abc,30,TRUE,FALSE\n" +
		"Monthly,1600,30,TRUE,FALSE\n" +
		"Odd Flags,500,7,sometimes,1\n"

	products, issues, err := ReadPriceSheet(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, products, 4)
	assert.Equal(t, "Monthly", products[0].Label)
	assert.True(t, products[0].Cost.Equal(decimal.NewFromInt(1500)))
	assert.True(t, products[0].GrantsGym)
	assert.False(t, products[0].GrantsCoach)

	assert.True(t, products[1].GrantsCoach)
	assert.Equal(t, 0, products[2].ValidityDays)

	assert.Equal(t, "Odd Flags", products[3].Label)
	assert.False(t, products[3].GrantsGym)
	assert.True(t, products[3].GrantsCoach)

	require.Len(t, issues, 3)
	assert.Equal(t, 6, issues[0].Line)
	assert.Equal(t, "Cost", issues[0].Column)
	assert.Equal(t, 7, issues[1].Line)
	assert.Contains(t, issues[1].Message, "duplicate of line 2")
	assert.Equal(t, "Gym", issues[2].Column)
}

func TestReadPriceSheet_MissingColumn(t *testing.T) {
	_, _, err := ReadPriceSheet(strings.NewReader("Label,Price\nMonthly,1500\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadPaymentsSheet(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Manila")
	csv := "\ufeffMember ID,Particulars,Start Date,End Date\n" +
		"JUAN-250101,Monthly,2025-01-01,2025-01-30\n" +
		"juan-250101 ,Coach Monthly,12/12/2024,1/10/2025\n" +
		"MARIA-250105,Monthly,2025-01-05,not a date\n" +
		"MARIA-250105,Walk-in,2025-01-06T23:30:00Z,\n" +
		",Monthly,2025-01-01,2025-01-30\n"

	payments, issues, err := ReadPaymentsSheet(strings.NewReader(csv), loc)
	require.NoError(t, err)

	require.Len(t, payments, 4)
	assert.Equal(t, "2025-01-30", payments[0].EndDate.String())
	assert.Equal(t, "juan-250101", payments[1].MemberID)
	assert.Equal(t, "2024-12-12", payments[1].StartDate.String())
	assert.Equal(t, "2025-01-10", payments[1].EndDate.String())

	// The malformed end date is kept as empty rather than dropping the row.
	assert.Equal(t, "2025-01-05", payments[2].StartDate.String())
	assert.Nil(t, payments[2].EndDate)

	// Timestamps are read in the gym's timezone.
	assert.Equal(t, "2025-01-07", payments[3].StartDate.String())
	assert.Nil(t, payments[3].EndDate)

	for _, p := range payments {
		assert.NotEqual(t, [16]byte{}, [16]byte(p.ID))
		assert.True(t, p.Amount.IsZero())
	}

	require.Len(t, issues, 2)
	assert.Equal(t, 4, issues[0].Line)
	assert.Equal(t, "EndDate", issues[0].Column)
	assert.Equal(t, 6, issues[1].Line)
}
