package membership

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]PriceEntry{
		{Label: "Monthly", Cost: decimal.NewFromInt(1500), ValidityDays: 30, GrantsGym: true},
		{Label: "Coach Monthly", Cost: decimal.NewFromInt(2500), ValidityDays: 30, GrantsCoach: true},
		{Label: "Gym + Coach", Cost: decimal.NewFromInt(3500), ValidityDays: 30, GrantsGym: true, GrantsCoach: true},
		{Label: "Walk-in", Cost: decimal.NewFromInt(100), ValidityDays: 0},
		{Label: "Lifetime Gym", Cost: decimal.NewFromInt(20000), ValidityDays: 0, GrantsGym: true},
	}, true)
	require.NoError(t, err)
	return c
}

func TestCatalog_Lookup(t *testing.T) {
	c := testCatalog(t)

	entry, err := c.Lookup("Monthly")
	require.NoError(t, err)
	assert.Equal(t, 30, entry.ValidityDays)
	assert.True(t, entry.GrantsGym)
	assert.False(t, entry.GrantsCoach)
	assert.True(t, entry.Cost.Equal(decimal.NewFromInt(1500)))
}

func TestCatalog_LookupIsCaseSensitive(t *testing.T) {
	c := testCatalog(t)

	for _, label := range []string{"monthly", "MONTHLY", " Monthly", ""} {
		_, err := c.Lookup(label)
		assert.True(t, errors.Is(err, ErrUnknownProduct), "label %q", label)
	}
}

func TestCatalog_NilLookup(t *testing.T) {
	var c *Catalog

	_, err := c.Lookup("Monthly")
	assert.ErrorIs(t, err, ErrUnknownProduct)
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Entries())
}

func TestNewCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		entries []PriceEntry
		wantErr error
	}{
		{
			name: "duplicate label",
			entries: []PriceEntry{
				{Label: "Monthly", ValidityDays: 30},
				{Label: "Monthly", ValidityDays: 31},
			},
			wantErr: ErrDuplicateProduct,
		},
		{
			name:    "negative cost",
			entries: []PriceEntry{{Label: "Refund", Cost: decimal.NewFromInt(-1)}},
			wantErr: ErrInvalidProduct,
		},
		{
			name:    "negative validity",
			entries: []PriceEntry{{Label: "Broken", ValidityDays: -1}},
			wantErr: ErrInvalidProduct,
		},
		{
			name:    "empty label",
			entries: []PriceEntry{{Label: ""}},
			wantErr: ErrInvalidProduct,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCatalog(tt.entries, true)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewCatalog_InferredFlags(t *testing.T) {
	c, err := NewCatalog([]PriceEntry{
		// Explicit flags are ignored when the price list has no flag columns.
		{Label: "Monthly Membership", ValidityDays: 30, GrantsCoach: true},
		{Label: "Coach 10 Sessions", ValidityDays: 60},
		{Label: "Gym + PT Bundle", ValidityDays: 30},
		{Label: "Towel Rental", ValidityDays: 0, GrantsGym: true},
	}, false)
	require.NoError(t, err)

	tests := []struct {
		label     string
		wantGym   bool
		wantCoach bool
	}{
		{"Monthly Membership", true, false},
		{"Coach 10 Sessions", false, true},
		{"Gym + PT Bundle", true, true},
		{"Towel Rental", false, false},
	}
	for _, tt := range tests {
		entry, err := c.Lookup(tt.label)
		require.NoError(t, err)
		assert.Equal(t, tt.wantGym, entry.GrantsGym, tt.label)
		assert.Equal(t, tt.wantCoach, entry.GrantsCoach, tt.label)
	}
}

func TestCatalog_Entries(t *testing.T) {
	c := testCatalog(t)

	entries := c.Entries()
	require.Len(t, entries, 5)
	assert.Equal(t, 5, c.Len())
	assert.Equal(t, "Coach Monthly", entries[0].Label)
	assert.Equal(t, "Walk-in", entries[4].Label)
}
