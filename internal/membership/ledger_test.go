package membership

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(s string) *Date {
	d := MustParseDate(s)
	return &d
}

func payment(member, label, start, end string) PaymentRecord {
	p := PaymentRecord{MemberID: member, ProductLabel: label}
	if start != "" {
		p.StartDate = datePtr(start)
	}
	if end != "" {
		p.EndDate = datePtr(end)
	}
	return p
}

func TestAccumulate_TakesLatestPerCategory(t *testing.T) {
	c := testCatalog(t)
	payments := []PaymentRecord{
		payment("JUAN-250101", "Monthly", "2025-01-01", "2025-01-30"),
		payment("JUAN-250101", "Monthly", "2025-01-31", "2025-03-01"),
		payment("JUAN-250101", "Coach Monthly", "2025-01-05", "2025-02-03"),
		payment("MARIA-250101", "Monthly", "2025-05-01", "2025-05-30"),
	}

	v := Accumulate(payments, c, "JUAN-250101")

	require.NotNil(t, v.GymEnd)
	require.NotNil(t, v.CoachEnd)
	assert.Equal(t, "2025-03-01", v.GymEnd.String())
	assert.Equal(t, "2025-02-03", v.CoachEnd.String())
}

func TestAccumulate_MemberMatchIgnoresCaseAndSpace(t *testing.T) {
	c := testCatalog(t)
	payments := []PaymentRecord{
		payment("  juan-250101 ", "Monthly", "2025-01-01", "2025-01-30"),
	}

	v := Accumulate(payments, c, "JUAN-250101")

	require.NotNil(t, v.GymEnd)
	assert.Equal(t, "2025-01-30", v.GymEnd.String())
}

func TestAccumulate_SkipsUnknownProducts(t *testing.T) {
	c := testCatalog(t)
	payments := []PaymentRecord{
		payment("JUAN-250101", "Old Promo 2019", "2025-01-01", "2025-12-31"),
		payment("JUAN-250101", "monthly", "2025-01-01", "2025-12-31"),
		payment("JUAN-250101", "Monthly", "2025-01-01", "2025-01-30"),
	}

	v := Accumulate(payments, c, "JUAN-250101")

	require.NotNil(t, v.GymEnd)
	assert.Equal(t, "2025-01-30", v.GymEnd.String())
	assert.Nil(t, v.CoachEnd)
}

func TestAccumulate_NoExpiryProductsContributeNothing(t *testing.T) {
	c := testCatalog(t)
	payments := []PaymentRecord{
		payment("JUAN-250101", "Walk-in", "2025-01-01", ""),
		// A stray end date on a product without expiry is still ignored.
		payment("JUAN-250101", "Lifetime Gym", "2025-01-01", "2099-12-31"),
	}

	v := Accumulate(payments, c, "JUAN-250101")

	assert.Nil(t, v.GymEnd)
	assert.Nil(t, v.CoachEnd)
}

func TestAccumulate_MissingEndDateContributesNothing(t *testing.T) {
	c := testCatalog(t)
	payments := []PaymentRecord{
		payment("JUAN-250101", "Monthly", "2025-01-01", ""),
		payment("JUAN-250101", "Coach Monthly", "", ""),
	}

	v := Accumulate(payments, c, "JUAN-250101")

	assert.Nil(t, v.GymEnd)
	assert.Nil(t, v.CoachEnd)
}

func TestAccumulate_DualGrantUsesCoachEndOverride(t *testing.T) {
	c := testCatalog(t)
	p := payment("JUAN-250101", "Gym + Coach", "2025-02-02", "2025-03-03")
	p.CoachEndDate = datePtr("2025-02-18")

	v := Accumulate([]PaymentRecord{p}, c, "JUAN-250101")

	assert.Equal(t, "2025-03-03", v.GymEnd.String())
	assert.Equal(t, "2025-02-18", v.CoachEnd.String())
}

func TestAccumulate_ResultDoesNotAliasInput(t *testing.T) {
	c := testCatalog(t)
	payments := []PaymentRecord{payment("JUAN-250101", "Monthly", "2025-01-01", "2025-01-30")}

	v := Accumulate(payments, c, "JUAN-250101")
	*v.GymEnd = v.GymEnd.AddDays(100)

	assert.Equal(t, "2025-01-30", payments[0].EndDate.String())
}

func TestAccumulate_OrderIndependent(t *testing.T) {
	c := testCatalog(t)
	payments := []PaymentRecord{
		payment("JUAN-250101", "Monthly", "2025-01-01", "2025-01-30"),
		payment("JUAN-250101", "Monthly", "2025-03-01", "2025-03-30"),
		payment("juan-250101", "Monthly", "2025-02-01", "2025-03-02"),
		payment("JUAN-250101", "Coach Monthly", "2025-01-10", "2025-02-08"),
		payment("JUAN-250101", "Coach Monthly", "2024-12-01", "2024-12-30"),
		payment("JUAN-250101", "Gym + Coach", "2025-01-15", "2025-02-13"),
		payment("JUAN-250101", "Walk-in", "2025-04-01", ""),
		payment("JUAN-250101", "Unknown", "2025-01-01", "2026-01-01"),
		payment("PEDRO-250101", "Monthly", "2025-06-01", "2025-06-30"),
	}

	want := Accumulate(payments, c, "JUAN-250101")
	require.Equal(t, "2025-03-30", want.GymEnd.String())
	require.Equal(t, "2025-02-13", want.CoachEnd.String())

	rng := rand.New(rand.NewSource(7))
	shuffled := make([]PaymentRecord, len(payments))
	for i := 0; i < 200; i++ {
		copy(shuffled, payments)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := Accumulate(shuffled, c, "JUAN-250101")
		assert.Equal(t, want, got)
	}
}

func TestAccumulate_NilCatalog(t *testing.T) {
	payments := []PaymentRecord{payment("JUAN-250101", "Monthly", "2025-01-01", "2025-01-30")}

	v := Accumulate(payments, nil, "JUAN-250101")

	assert.Nil(t, v.GymEnd)
	assert.Nil(t, v.CoachEnd)
}
