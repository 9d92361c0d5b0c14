package membership

type State string

const (
	StateNone    State = "none"
	StateActive  State = "active"
	StateExpired State = "expired"
)

// Classify places an optional end date relative to today. The end date itself
// is still a valid day.
func Classify(end *Date, today Date) State {
	switch {
	case end == nil:
		return StateNone
	case end.Before(today):
		return StateExpired
	default:
		return StateActive
	}
}

func IsActive(end *Date, today Date) bool {
	return Classify(end, today) == StateActive
}

// Status is the derived membership view of one member. It is never stored.
type Status struct {
	MemberID     string `json:"member_id"`
	AsOf         Date   `json:"as_of"`
	GymEndDate   *Date  `json:"gym_end_date"`
	GymState     State  `json:"gym_state"`
	CoachEndDate *Date  `json:"coach_end_date"`
	CoachActive  bool   `json:"coach_active"`
}

// ComputeStatus recomputes the full status from the ledger and catalog.
// today must already be the civil date in the gym's timezone.
func ComputeStatus(memberID string, payments []PaymentRecord, catalog *Catalog, today Date) Status {
	v := Accumulate(payments, catalog, memberID)
	return Status{
		MemberID:     memberID,
		AsOf:         today,
		GymEndDate:   v.GymEnd,
		GymState:     Classify(v.GymEnd, today),
		CoachEndDate: v.CoachEnd,
		CoachActive:  IsActive(v.CoachEnd, today),
	}
}
