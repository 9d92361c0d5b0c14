package attendance

import (
	"time"

	"kusgan/internal/membership"

	"github.com/shopspring/decimal"
)

type Visit struct {
	ID        int             `db:"id" json:"id"`
	MemberID  string          `db:"member_id" json:"member_id"`
	TimeIn    time.Time       `db:"time_in" json:"time_in"`
	TimeOut   *time.Time      `db:"time_out" json:"time_out,omitempty"`
	VisitDate membership.Date `db:"visit_date" json:"visit_date" swaggertype:"string" example:"2025-01-20"`
	Hours     *float64        `db:"-" json:"hours,omitempty"`
}

// Duration returns hours spent in the gym rounded to two decimals, or nil
// while the visit is still open.
func (v Visit) Duration() *float64 {
	if v.TimeOut == nil {
		return nil
	}
	hours, _ := decimal.NewFromFloat(v.TimeOut.Sub(v.TimeIn).Hours()).Round(2).Float64()
	return &hours
}

func withHours(visits []Visit) []Visit {
	for i := range visits {
		visits[i].Hours = visits[i].Duration()
	}
	return visits
}
