package membership

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownProduct   = errors.New("unknown product")
	ErrDuplicateProduct = errors.New("duplicate product label")
	ErrInvalidProduct   = errors.New("invalid product")
)

var (
	gymLabelPattern   = regexp.MustCompile(`(?i)member|gym`)
	coachLabelPattern = regexp.MustCompile(`(?i)coach|trainer|\bpt\b`)
)

// PriceEntry is one row of the price list.
type PriceEntry struct {
	Label        string          `json:"label"`
	Cost         decimal.Decimal `json:"cost"`
	ValidityDays int             `json:"validity_days"`
	GrantsGym    bool            `json:"grants_gym"`
	GrantsCoach  bool            `json:"grants_coach"`
}

// Expires reports whether buying the product opens a validity window.
func (e PriceEntry) Expires() bool {
	return e.ValidityDays > 0
}

// InferFlags guesses the granted categories from a product label. Only used
// for price lists that have no flag columns.
func InferFlags(label string) (grantsGym, grantsCoach bool) {
	return gymLabelPattern.MatchString(label), coachLabelPattern.MatchString(label)
}

// Catalog is an immutable label-keyed price list.
type Catalog struct {
	entries map[string]PriceEntry
}

// NewCatalog indexes entries by label. With explicitFlags false the stored
// flags are ignored and replaced by InferFlags; the two sources never mix.
func NewCatalog(entries []PriceEntry, explicitFlags bool) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]PriceEntry, len(entries))}
	for _, e := range entries {
		if e.Label == "" || e.Cost.IsNegative() || e.ValidityDays < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidProduct, e.Label)
		}
		if _, exists := c.entries[e.Label]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProduct, e.Label)
		}
		if !explicitFlags {
			e.GrantsGym, e.GrantsCoach = InferFlags(e.Label)
		}
		c.entries[e.Label] = e
	}
	return c, nil
}

// Lookup matches label exactly, case included.
func (c *Catalog) Lookup(label string) (PriceEntry, error) {
	if c != nil {
		if e, ok := c.entries[label]; ok {
			return e, nil
		}
	}
	return PriceEntry{}, fmt.Errorf("%w: %q", ErrUnknownProduct, label)
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns the catalog sorted by label.
func (c *Catalog) Entries() []PriceEntry {
	if c == nil {
		return nil
	}
	out := make([]PriceEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
