package ledgerimport

import (
	"context"
	"errors"
	"io"
	"time"

	"kusgan/internal/catalog"
	"kusgan/internal/logger"
	"kusgan/internal/payment"
)

type ProductStore interface {
	Create(ctx context.Context, p catalog.Product) (*catalog.Product, error)
}

type PaymentStore interface {
	InsertBatch(ctx context.Context, payments []payment.Payment) (int, error)
}

type Result struct {
	Read     int        `json:"read"`
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Issues   []RowIssue `json:"issues,omitempty"`
	DryRun   bool       `json:"dry_run"`
}

type Importer struct {
	products ProductStore
	payments PaymentStore
	loc      *time.Location
	dryRun   bool
}

func NewImporter(products ProductStore, payments PaymentStore, loc *time.Location, dryRun bool) *Importer {
	return &Importer{products: products, payments: payments, loc: loc, dryRun: dryRun}
}

// ImportPrices creates one product per sheet row. Labels that already exist
// are left untouched.
func (im *Importer) ImportPrices(ctx context.Context, r io.Reader) (Result, error) {
	products, issues, err := ReadPriceSheet(r)
	if err != nil {
		return Result{}, err
	}

	res := Result{Read: len(products), Issues: issues, DryRun: im.dryRun}
	for _, p := range products {
		if im.dryRun {
			res.Imported++
			continue
		}
		if _, err := im.products.Create(ctx, p); err != nil {
			if errors.Is(err, catalog.ErrLabelExists) {
				res.Skipped++
				continue
			}
			return res, err
		}
		res.Imported++
	}

	logger.Info("Price sheet imported",
		"read", res.Read,
		"imported", res.Imported,
		"skipped", res.Skipped,
		"issues", len(res.Issues),
		"dry_run", im.dryRun,
	)
	return res, nil
}

// ImportPayments stores the payments sheet in a single transaction.
func (im *Importer) ImportPayments(ctx context.Context, r io.Reader) (Result, error) {
	payments, issues, err := ReadPaymentsSheet(r, im.loc)
	if err != nil {
		return Result{}, err
	}

	for _, issue := range issues {
		logger.Warn("Payments sheet issue", "line", issue.Line, "column", issue.Column, "value", issue.Value, "message", issue.Message)
	}

	res := Result{Read: len(payments), Issues: issues, DryRun: im.dryRun}
	if im.dryRun {
		res.Imported = len(payments)
	} else {
		n, err := im.payments.InsertBatch(ctx, payments)
		if err != nil {
			return res, err
		}
		res.Imported = n
	}

	logger.Info("Payments sheet imported",
		"read", res.Read,
		"imported", res.Imported,
		"issues", len(res.Issues),
		"dry_run", im.dryRun,
	)
	return res, nil
}
