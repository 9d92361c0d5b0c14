package membership

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenewalBase_NoCurrentWindow(t *testing.T) {
	today := MustParseDate("2025-01-20")

	tests := []struct {
		start string
		want  string
	}{
		{"2025-01-20", "2025-01-20"},
		{"2025-01-01", "2025-01-20"},
		{"2025-02-05", "2025-02-05"},
	}

	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			got := RenewalBase(nil, MustParseDate(tt.start), today)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestRenewalBase_ActiveChainsRegardlessOfStart(t *testing.T) {
	today := MustParseDate("2025-01-20")
	end := MustParseDate("2025-01-30")

	for _, start := range []string{"2024-12-01", "2025-01-20", "2025-01-31", "2025-06-01"} {
		got := RenewalBase(&end, MustParseDate(start), today)
		assert.Equal(t, "2025-01-31", got.String(), "start %s", start)
	}

	// The end date itself still counts as active.
	got := RenewalBase(&end, end, end)
	assert.Equal(t, "2025-01-31", got.String())
}

func TestRenewalBase_LapsedStartsFresh(t *testing.T) {
	end := MustParseDate("2025-01-30")
	today := MustParseDate("2025-02-10")

	got := RenewalBase(&end, MustParseDate("2025-02-10"), today)
	assert.Equal(t, "2025-02-10", got.String())

	got = RenewalBase(&end, MustParseDate("2025-01-31"), today)
	assert.Equal(t, "2025-02-10", got.String())
}

func TestEndDate(t *testing.T) {
	base := MustParseDate("2025-01-31")

	end := EndDate(base, 30)
	require.NotNil(t, end)
	assert.Equal(t, "2025-03-01", end.String())

	one := EndDate(base, 1)
	require.NotNil(t, one)
	assert.Equal(t, base, *one)

	assert.Nil(t, EndDate(base, 0))
}

func TestPreviewPurchase_ChainsOntoActiveWindow(t *testing.T) {
	c := testCatalog(t)
	payments := []PaymentRecord{
		payment("JUAN-250101", "Monthly", "2025-01-01", "2025-01-30"),
	}

	p, err := PreviewPurchase("Monthly", "JUAN-250101", MustParseDate("2025-01-20"), payments, c, MustParseDate("2025-01-20"))
	require.NoError(t, err)

	assert.Equal(t, "2025-01-31", p.GymBase.String())
	assert.Equal(t, "2025-03-01", p.GymEnd.String())
	assert.Nil(t, p.CoachBase)
	assert.Nil(t, p.CoachEnd)

	rec := p.Record()
	assert.Equal(t, "JUAN-250101", rec.MemberID)
	assert.Equal(t, "Monthly", rec.ProductLabel)
	assert.Equal(t, "2025-01-31", rec.StartDate.String())
	assert.Equal(t, "2025-03-01", rec.EndDate.String())
	assert.Nil(t, rec.CoachEndDate)
}

func TestPreviewPurchase_LapsedWindowStartsToday(t *testing.T) {
	c := testCatalog(t)
	payments := []PaymentRecord{
		payment("JUAN-250101", "Monthly", "2025-01-01", "2025-01-30"),
	}

	p, err := PreviewPurchase("Monthly", "JUAN-250101", MustParseDate("2025-02-10"), payments, c, MustParseDate("2025-02-10"))
	require.NoError(t, err)

	assert.Equal(t, "2025-02-10", p.GymBase.String())
	assert.Equal(t, "2025-03-11", p.GymEnd.String())
}

func TestPreviewPurchase_DualGrantDiverges(t *testing.T) {
	c := testCatalog(t)
	payments := []PaymentRecord{
		payment("JUAN-250101", "Monthly", "2025-01-03", "2025-02-01"),
		payment("JUAN-250101", "Coach Monthly", "2024-12-12", "2025-01-10"),
	}
	today := MustParseDate("2025-01-20")

	p, err := PreviewPurchase("Gym + Coach", "JUAN-250101", today, payments, c, today)
	require.NoError(t, err)

	assert.Equal(t, "2025-02-02", p.GymBase.String())
	assert.Equal(t, "2025-03-03", p.GymEnd.String())
	assert.Equal(t, "2025-01-20", p.CoachBase.String())
	assert.Equal(t, "2025-02-18", p.CoachEnd.String())

	rec := p.Record()
	assert.Equal(t, "2025-02-02", rec.StartDate.String())
	assert.Equal(t, "2025-03-03", rec.EndDate.String())
	require.NotNil(t, rec.CoachEndDate)
	assert.Equal(t, "2025-02-18", rec.CoachEndDate.String())

	// Once recorded, the ledger reproduces both windows.
	after := ComputeStatus("JUAN-250101", append(payments, rec), c, today)
	assert.Equal(t, "2025-03-03", after.GymEndDate.String())
	assert.Equal(t, "2025-02-18", after.CoachEndDate.String())
	assert.True(t, after.CoachActive)
}

func TestPreviewPurchase_DualGrantAlignedHasNoOverride(t *testing.T) {
	c := testCatalog(t)
	today := MustParseDate("2025-01-20")

	p, err := PreviewPurchase("Gym + Coach", "JUAN-250101", today, nil, c, today)
	require.NoError(t, err)

	rec := p.Record()
	assert.Equal(t, "2025-02-18", rec.EndDate.String())
	assert.Nil(t, rec.CoachEndDate)
}

func TestPreviewPurchase_NoExpiryProduct(t *testing.T) {
	c := testCatalog(t)
	today := MustParseDate("2025-01-20")

	p, err := PreviewPurchase("Walk-in", "JUAN-250101", today, nil, c, today)
	require.NoError(t, err)

	assert.Nil(t, p.GymBase)
	assert.Nil(t, p.CoachBase)

	rec := p.Record()
	assert.Equal(t, "2025-01-20", rec.StartDate.String())
	assert.Nil(t, rec.EndDate)
}

func TestPreviewPurchase_UnknownProduct(t *testing.T) {
	c := testCatalog(t)
	today := MustParseDate("2025-01-20")

	_, err := PreviewPurchase("Yearly", "JUAN-250101", today, nil, c, today)
	assert.ErrorIs(t, err, ErrUnknownProduct)
}
