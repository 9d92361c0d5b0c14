package payment

import (
	"time"

	"kusgan/internal/membership"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is one stored ledger row. Rows are never updated.
type Payment struct {
	ID           uuid.UUID        `db:"id" json:"id"`
	MemberID     string           `db:"member_id" json:"member_id"`
	ProductLabel string           `db:"product_label" json:"product_label"`
	Amount       decimal.Decimal  `db:"amount" json:"amount" swaggertype:"string" example:"1500.00"`
	StartDate    *membership.Date `db:"start_date" json:"start_date" swaggertype:"string" example:"2025-01-31"`
	EndDate      *membership.Date `db:"end_date" json:"end_date" swaggertype:"string" example:"2025-03-01"`
	CoachEndDate *membership.Date `db:"coach_end_date" json:"coach_end_date,omitempty" swaggertype:"string"`
	RecordedBy   *int             `db:"recorded_by" json:"recorded_by,omitempty"`
	PaidAt       time.Time        `db:"paid_at" json:"paid_at"`
}

func (p Payment) Record() membership.PaymentRecord {
	return membership.PaymentRecord{
		MemberID:     p.MemberID,
		ProductLabel: p.ProductLabel,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		CoachEndDate: p.CoachEndDate,
	}
}

func records(payments []Payment) []membership.PaymentRecord {
	out := make([]membership.PaymentRecord, 0, len(payments))
	for _, p := range payments {
		out = append(out, p.Record())
	}
	return out
}

type PurchaseRequest struct {
	Product   string `json:"product" validate:"required"`
	StartDate string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Quote is the preview shown to the desk before taking money.
type Quote struct {
	MemberID       string           `json:"member_id"`
	Product        string           `json:"product"`
	Amount         decimal.Decimal  `json:"amount" swaggertype:"string" example:"1500.00"`
	RequestedStart membership.Date  `json:"requested_start" swaggertype:"string" example:"2025-01-20"`
	GymStart       *membership.Date `json:"gym_start,omitempty" swaggertype:"string"`
	GymEnd         *membership.Date `json:"gym_end,omitempty" swaggertype:"string"`
	CoachStart     *membership.Date `json:"coach_start,omitempty" swaggertype:"string"`
	CoachEnd       *membership.Date `json:"coach_end,omitempty" swaggertype:"string"`
}

func quoteFrom(p membership.Purchase) Quote {
	return Quote{
		MemberID:       p.MemberID,
		Product:        p.Product.Label,
		Amount:         p.Product.Cost,
		RequestedStart: p.RequestedStart,
		GymStart:       p.GymBase,
		GymEnd:         p.GymEnd,
		CoachStart:     p.CoachBase,
		CoachEnd:       p.CoachEnd,
	}
}
