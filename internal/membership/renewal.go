package membership

// RenewalBase returns the first day of a newly purchased period. While the
// current window is still active the new one chains onto the day after it,
// whatever start was requested. Otherwise it starts on the requested day but
// never before today.
func RenewalBase(currentEnd *Date, requestedStart, today Date) Date {
	if IsActive(currentEnd, today) {
		return currentEnd.AddDays(1)
	}
	if requestedStart.Before(today) {
		return today
	}
	return requestedStart
}

// EndDate is the inclusive last day of a period of validityDays starting at
// base. Products without expiry have no end date.
func EndDate(base Date, validityDays int) *Date {
	if validityDays <= 0 {
		return nil
	}
	end := base.AddDays(validityDays - 1)
	return &end
}

// Purchase describes what buying a product would do to each category. Each
// granted category gets its own base, so a product granting both may end the
// gym and coach windows on different days.
type Purchase struct {
	MemberID       string     `json:"member_id"`
	Product        PriceEntry `json:"product"`
	RequestedStart Date       `json:"requested_start"`
	GymBase        *Date      `json:"gym_base,omitempty"`
	GymEnd         *Date      `json:"gym_end,omitempty"`
	CoachBase      *Date      `json:"coach_base,omitempty"`
	CoachEnd       *Date      `json:"coach_end,omitempty"`
}

// PreviewPurchase resolves label and computes the new windows against the
// member's current validity. An unknown label is fatal here.
func PreviewPurchase(label, memberID string, requestedStart Date, payments []PaymentRecord, catalog *Catalog, today Date) (Purchase, error) {
	entry, err := catalog.Lookup(label)
	if err != nil {
		return Purchase{}, err
	}

	current := Accumulate(payments, catalog, memberID)
	p := Purchase{
		MemberID:       memberID,
		Product:        entry,
		RequestedStart: requestedStart,
	}
	if entry.GrantsGym {
		base := RenewalBase(current.GymEnd, requestedStart, today)
		p.GymBase = &base
		p.GymEnd = EndDate(base, entry.ValidityDays)
	}
	if entry.GrantsCoach {
		base := RenewalBase(current.CoachEnd, requestedStart, today)
		p.CoachBase = &base
		p.CoachEnd = EndDate(base, entry.ValidityDays)
	}
	return p, nil
}

// Record turns the preview into the ledger row to store. The gym window is the
// primary one; CoachEndDate is kept only when the coach window diverges.
func (p Purchase) Record() PaymentRecord {
	rec := PaymentRecord{MemberID: p.MemberID, ProductLabel: p.Product.Label}
	switch {
	case p.GymBase != nil:
		rec.StartDate = clone(p.GymBase)
		rec.EndDate = clone(p.GymEnd)
		if p.CoachEnd != nil && (p.GymEnd == nil || *p.CoachEnd != *p.GymEnd) {
			rec.CoachEndDate = clone(p.CoachEnd)
		}
	case p.CoachBase != nil:
		rec.StartDate = clone(p.CoachBase)
		rec.EndDate = clone(p.CoachEnd)
	default:
		start := p.RequestedStart
		rec.StartDate = &start
	}
	return rec
}
