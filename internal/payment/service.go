package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kusgan/internal/catalog"
	"kusgan/internal/logger"
	"kusgan/internal/member"
	"kusgan/internal/membership"
	"kusgan/internal/metrics"
	"kusgan/internal/notify"

	"github.com/google/uuid"
)

var (
	ErrMemberNotFound  = member.ErrMemberNotFound
	ErrUnknownProduct  = membership.ErrUnknownProduct
	ErrProductInactive = errors.New("product is no longer sold")
)

type CatalogSource interface {
	Get(ctx context.Context, label string) (*catalog.Product, error)
	Load(ctx context.Context) (*membership.Catalog, error)
}

type MemberLookup interface {
	Get(ctx context.Context, id string) (*member.Member, error)
}

type ReceiptSender interface {
	SendReceipt(ctx context.Context, to, name string, r notify.Receipt) error
}

type Service interface {
	Preview(ctx context.Context, memberID string, req PurchaseRequest) (*Quote, error)
	Record(ctx context.Context, memberID string, staffID int, req PurchaseRequest) (*Payment, error)
	ListByMember(ctx context.Context, memberID string) ([]Payment, error)
	Status(ctx context.Context, memberID string) (membership.Status, error)
	Statuses(ctx context.Context, memberIDs []string) (map[string]membership.Status, error)
}

type service struct {
	repo     Repository
	catalog  CatalogSource
	members  MemberLookup
	receipts ReceiptSender
	loc      *time.Location
	now      func() time.Time
}

// NewService wires the ledger. receipts may be nil, in which case no
// receipt mail is queued.
func NewService(repo Repository, products CatalogSource, members MemberLookup, receipts ReceiptSender, loc *time.Location) Service {
	return &service{
		repo:     repo,
		catalog:  products,
		members:  members,
		receipts: receipts,
		loc:      loc,
		now:      time.Now,
	}
}

func (s *service) today() membership.Date {
	return membership.DateOf(s.now(), s.loc)
}

// purchasable resolves the product for a new sale. Retired products still
// count for existing payments but can no longer be bought.
func (s *service) purchasable(ctx context.Context, label string) (*membership.Catalog, error) {
	product, err := s.catalog.Get(ctx, label)
	if errors.Is(err, catalog.ErrProductNotFound) {
		metrics.RecordRejectedPurchase("unknown_product")
		return nil, fmt.Errorf("%w: %q", ErrUnknownProduct, label)
	}
	if err != nil {
		return nil, err
	}
	if !product.Active {
		metrics.RecordRejectedPurchase("inactive_product")
		return nil, fmt.Errorf("%w: %q", ErrProductInactive, label)
	}
	return s.catalog.Load(ctx)
}

func requestedStart(raw string, today membership.Date) (membership.Date, error) {
	if raw == "" {
		return today, nil
	}
	return membership.ParseDate(raw)
}

func (s *service) Preview(ctx context.Context, memberID string, req PurchaseRequest) (*Quote, error) {
	m, err := s.members.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}

	cat, err := s.purchasable(ctx, req.Product)
	if err != nil {
		return nil, err
	}

	today := s.today()
	start, err := requestedStart(req.StartDate, today)
	if err != nil {
		return nil, err
	}

	ledger, err := s.repo.ListByMember(ctx, m.ID)
	if err != nil {
		return nil, err
	}

	purchase, err := membership.PreviewPurchase(req.Product, m.ID, start, records(ledger), cat, today)
	if err != nil {
		return nil, err
	}

	q := quoteFrom(purchase)
	return &q, nil
}

func (s *service) Record(ctx context.Context, memberID string, staffID int, req PurchaseRequest) (*Payment, error) {
	m, err := s.members.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}

	cat, err := s.purchasable(ctx, req.Product)
	if err != nil {
		return nil, err
	}

	today := s.today()
	start, err := requestedStart(req.StartDate, today)
	if err != nil {
		return nil, err
	}

	var recordedBy *int
	if staffID > 0 {
		recordedBy = &staffID
	}

	p, err := s.repo.Record(ctx, m.ID, func(ledger []Payment) (Payment, error) {
		purchase, err := membership.PreviewPurchase(req.Product, m.ID, start, records(ledger), cat, today)
		if err != nil {
			return Payment{}, err
		}
		rec := purchase.Record()
		return Payment{
			ID:           uuid.New(),
			MemberID:     m.ID,
			ProductLabel: rec.ProductLabel,
			Amount:       purchase.Product.Cost,
			StartDate:    rec.StartDate,
			EndDate:      rec.EndDate,
			CoachEndDate: rec.CoachEndDate,
			RecordedBy:   recordedBy,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordPayment(p.ProductLabel)
	logger.Info("Payment recorded",
		"payment_id", p.ID.String(),
		"member_id", p.MemberID,
		"product", p.ProductLabel,
		"start_date", p.StartDate,
		"end_date", p.EndDate,
	)

	s.sendReceipt(ctx, m, p)
	return p, nil
}

func (s *service) sendReceipt(ctx context.Context, m *member.Member, p *Payment) {
	if s.receipts == nil || m.Email == nil || *m.Email == "" {
		return
	}
	err := s.receipts.SendReceipt(ctx, *m.Email, m.Nickname, notify.Receipt{
		ReceiptNo:    p.ID.String(),
		MemberID:     p.MemberID,
		Product:      p.ProductLabel,
		Amount:       p.Amount,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		CoachEndDate: p.CoachEndDate,
	})
	if err != nil {
		// The payment is already stored; a lost receipt is not worth failing the sale.
		logger.Warn("Failed to queue receipt", "payment_id", p.ID.String(), "error", err)
	}
}

func (s *service) ListByMember(ctx context.Context, memberID string) ([]Payment, error) {
	m, err := s.members.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByMember(ctx, m.ID)
}

func (s *service) Status(ctx context.Context, memberID string) (membership.Status, error) {
	m, err := s.members.Get(ctx, memberID)
	if err != nil {
		return membership.Status{}, err
	}

	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return membership.Status{}, err
	}

	ledger, err := s.repo.ListByMember(ctx, m.ID)
	if err != nil {
		return membership.Status{}, err
	}

	status := membership.ComputeStatus(m.ID, records(ledger), cat, s.today())
	metrics.RecordStatusQuery(string(status.GymState))
	return status, nil
}

// Statuses computes many members at once from a single read of the ledger.
func (s *service) Statuses(ctx context.Context, memberIDs []string) (map[string]membership.Status, error) {
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}

	ledger, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byMember := make(map[string][]membership.PaymentRecord)
	for _, p := range ledger {
		key := member.NormalizeID(p.MemberID)
		byMember[key] = append(byMember[key], p.Record())
	}

	today := s.today()
	out := make(map[string]membership.Status, len(memberIDs))
	for _, id := range memberIDs {
		out[id] = membership.ComputeStatus(id, byMember[member.NormalizeID(id)], cat, today)
	}
	return out, nil
}
