package notify

import (
	"context"
	"fmt"
	"strings"

	"kusgan/internal/membership"

	"github.com/shopspring/decimal"
)

const signature = "- Kusgan Fitness Gym Front Desk"

type Receipt struct {
	ReceiptNo    string
	MemberID     string
	Product      string
	Amount       decimal.Decimal
	StartDate    *membership.Date
	EndDate      *membership.Date
	CoachEndDate *membership.Date
}

func (s *Service) SendReceipt(ctx context.Context, to, name string, r Receipt) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThank you for your payment.\n\n", name)
	fmt.Fprintf(&b, "Receipt no.: %s\n", r.ReceiptNo)
	fmt.Fprintf(&b, "Member ID:   %s\n", r.MemberID)
	fmt.Fprintf(&b, "Product:     %s\n", r.Product)
	fmt.Fprintf(&b, "Amount:      PHP %s\n", r.Amount.StringFixed(2))
	if r.StartDate != nil {
		fmt.Fprintf(&b, "Starts:      %s\n", humanDate(*r.StartDate))
	}
	if r.EndDate != nil {
		fmt.Fprintf(&b, "Valid until: %s\n", humanDate(*r.EndDate))
	}
	if r.CoachEndDate != nil {
		fmt.Fprintf(&b, "Coaching until: %s\n", humanDate(*r.CoachEndDate))
	}
	fmt.Fprintf(&b, "\nSee you at the gym!\n\n%s", signature)

	return s.Send(ctx, TypeReceipt, to, name, "Payment Receipt - "+r.Product, b.String())
}

func (s *Service) SendExpiryReminder(ctx context.Context, to, name string, end membership.Date, daysLeft int) error {
	subject := fmt.Sprintf("Your membership ends in %d day%s", daysLeft, plural(daysLeft))
	body := fmt.Sprintf(`Hi %s,

Your gym membership is valid until %s.

Renew at the front desk before then and your new period will start right
after the current one, so you will not lose any days.

%s`, name, humanDate(end), signature)

	return s.Send(ctx, TypeExpiryReminder, to, name, subject, body)
}

func humanDate(d membership.Date) string {
	return d.Time(nil).Format("Jan 2, 2006")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
