package ledgerimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"kusgan/internal/catalog"
	"kusgan/internal/membership"
	"kusgan/internal/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrMissingColumn = errors.New("sheet is missing a required column")

// RowIssue is a problem found on one spreadsheet line. Line counts the header
// as line 1.
type RowIssue struct {
	Line    int    `json:"line"`
	Column  string `json:"column,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

func (i RowIssue) String() string {
	if i.Column == "" {
		return fmt.Sprintf("line %d: %s", i.Line, i.Message)
	}
	return fmt.Sprintf("line %d, %s %q: %s", i.Line, i.Column, i.Value, i.Message)
}

type sheet struct {
	r    *csv.Reader
	cols map[string]int
	line int
}

func openSheet(r io.Reader, required ...string) (*sheet, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	for _, col := range required {
		if _, ok := cols[normalizeHeader(col)]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	return &sheet{r: cr, cols: cols, line: 1}, nil
}

// normalizeHeader lets "Member ID", "member_id" and "MemberID" match.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToUpper(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

// next returns the following non-blank row, or io.EOF.
func (s *sheet) next() ([]string, error) {
	for {
		row, err := s.r.Read()
		if err != nil {
			return nil, err
		}
		s.line, _ = s.r.FieldPos(0)
		if !blankRow(row) {
			return row, nil
		}
	}
}

func (s *sheet) get(row []string, col string) string {
	i, ok := s.cols[normalizeHeader(col)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (s *sheet) has(col string) bool {
	_, ok := s.cols[normalizeHeader(col)]
	return ok
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ParseFlag reads a checkbox-style cell. Blank means false.
func ParseFlag(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "y", "1", "✓", "✔", "x":
		return true, nil
	case "false", "no", "n", "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("not a yes/no value: %q", raw)
	}
}

// ParseCost accepts sheet-formatted amounts such as "₱1,500.00" or "PHP 1500".
func ParseCost(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "₱")
	s = strings.TrimPrefix(strings.ToUpper(s), "PHP")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// ReadPriceSheet parses the price list export (Particulars, Cost, Validity,
// Gym, Coach). Rows with an unusable cost or validity are reported and left
// out; a bad flag cell is reported and read as false.
func ReadPriceSheet(r io.Reader) ([]catalog.Product, []RowIssue, error) {
	sh, err := openSheet(r, "Particulars", "Cost")
	if err != nil {
		return nil, nil, err
	}

	var (
		products []catalog.Product
		issues   []RowIssue
		seen     = make(map[string]int)
	)
	for {
		row, err := sh.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("after line %d: %w", sh.line, err)
		}

		label := sh.get(row, "Particulars")
		if label == "" {
			issues = append(issues, RowIssue{Line: sh.line, Message: "missing particulars, row skipped"})
			continue
		}
		if first, dup := seen[label]; dup {
			issues = append(issues, RowIssue{Line: sh.line, Column: "Particulars", Value: label,
				Message: fmt.Sprintf("duplicate of line %d, row skipped", first)})
			continue
		}

		cost, err := ParseCost(sh.get(row, "Cost"))
		if err != nil || cost.IsNegative() {
			issues = append(issues, RowIssue{Line: sh.line, Column: "Cost", Value: sh.get(row, "Cost"), Message: "invalid cost, row skipped"})
			continue
		}

		validity := 0
		if raw := sh.get(row, "Validity"); raw != "" {
			validity, err = strconv.Atoi(raw)
			if err != nil || validity < 0 {
				issues = append(issues, RowIssue{Line: sh.line, Column: "Validity", Value: raw, Message: "invalid validity, row skipped"})
				continue
			}
		}

		p := catalog.Product{Label: label, Cost: cost, ValidityDays: validity, Active: true}
		for _, flag := range []struct {
			col string
			dst *bool
		}{{"Gym", &p.GrantsGym}, {"Coach", &p.GrantsCoach}} {
			raw := sh.get(row, flag.col)
			v, err := ParseFlag(raw)
			if err != nil {
				issues = append(issues, RowIssue{Line: sh.line, Column: flag.col, Value: raw, Message: "unreadable flag, treated as false"})
			}
			*flag.dst = v
		}

		seen[label] = sh.line
		products = append(products, p)
	}

	return products, issues, nil
}

// ReadPaymentsSheet parses the payments export (MemberID, Particulars,
// StartDate, EndDate). A date cell that cannot be read is stored as empty and
// reported; it never drops the row.
func ReadPaymentsSheet(r io.Reader, loc *time.Location) ([]payment.Payment, []RowIssue, error) {
	sh, err := openSheet(r, "MemberID", "Particulars")
	if err != nil {
		return nil, nil, err
	}

	var (
		payments []payment.Payment
		issues   []RowIssue
	)
	for {
		row, err := sh.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("after line %d: %w", sh.line, err)
		}

		memberID := sh.get(row, "MemberID")
		label := sh.get(row, "Particulars")
		if memberID == "" || label == "" {
			issues = append(issues, RowIssue{Line: sh.line, Message: "missing member id or particulars, row skipped"})
			continue
		}

		p := payment.Payment{
			ID:           uuid.New(),
			MemberID:     memberID,
			ProductLabel: label,
		}

		if sh.has("Amount") {
			raw := sh.get(row, "Amount")
			amount, err := ParseCost(raw)
			if err != nil {
				issues = append(issues, RowIssue{Line: sh.line, Column: "Amount", Value: raw, Message: "invalid amount, stored as 0"})
			} else {
				p.Amount = amount
			}
		}

		for _, col := range []struct {
			name string
			dst  **membership.Date
		}{{"StartDate", &p.StartDate}, {"EndDate", &p.EndDate}, {"CoachEndDate", &p.CoachEndDate}} {
			raw := sh.get(row, col.name)
			if raw == "" {
				continue
			}
			d, ok := membership.ParseLedgerDate(raw, loc)
			if !ok {
				issues = append(issues, RowIssue{Line: sh.line, Column: col.name, Value: raw, Message: "unreadable date, stored as empty"})
				continue
			}
			*col.dst = d
		}

		payments = append(payments, p)
	}

	return payments, issues, nil
}
