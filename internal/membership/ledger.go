package membership

import "strings"

// PaymentRecord is one immutable ledger row as far as validity is concerned.
// EndDate is nil for products without expiry or when the stored cell could not
// be read. CoachEndDate is set only when a purchase granting both categories
// produced a coach window that ends on a different day than the gym window.
type PaymentRecord struct {
	MemberID     string `json:"member_id"`
	ProductLabel string `json:"product_label"`
	StartDate    *Date  `json:"start_date"`
	EndDate      *Date  `json:"end_date"`
	CoachEndDate *Date  `json:"coach_end_date,omitempty"`
}

func (p PaymentRecord) gymEnd() *Date {
	return p.EndDate
}

func (p PaymentRecord) coachEnd() *Date {
	if p.CoachEndDate != nil {
		return p.CoachEndDate
	}
	return p.EndDate
}

// Validity holds the latest end date per category.
type Validity struct {
	GymEnd   *Date `json:"gym_end_date"`
	CoachEnd *Date `json:"coach_end_date"`
}

// SameMember compares member IDs the way loosely typed ledgers need:
// surrounding space and letter case are ignored.
func SameMember(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Accumulate folds the member's payments into the latest gym and coach end
// dates. Payments whose label is not in the catalog, or whose product never
// expires, are skipped. The fold is a max, so the order of payments does not
// matter. The result never aliases the input records.
func Accumulate(payments []PaymentRecord, catalog *Catalog, memberID string) Validity {
	var v Validity
	for _, p := range payments {
		if !SameMember(p.MemberID, memberID) {
			continue
		}
		entry, err := catalog.Lookup(p.ProductLabel)
		if err != nil || !entry.Expires() {
			continue
		}
		if entry.GrantsGym {
			v.GymEnd = Latest(v.GymEnd, p.gymEnd())
		}
		if entry.GrantsCoach {
			v.CoachEnd = Latest(v.CoachEnd, p.coachEnd())
		}
	}
	return Validity{GymEnd: clone(v.GymEnd), CoachEnd: clone(v.CoachEnd)}
}

func clone(d *Date) *Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
