// Package catalog loads print catalogs from YAML files and provides the built-in default.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

var hundred = decimal.NewFromInt(100)

var (
	// ErrEmptyCatalog is returned when a catalog file defines nothing to quote against.
	ErrEmptyCatalog = errors.New("catalog defines no paper stocks, sizes or turnaround times")
	// ErrInvalidEntry wraps every validation failure of a catalog entry.
	ErrInvalidEntry = errors.New("invalid catalog entry")
)

// Default returns the built-in catalog. Each call returns a fresh copy.
func Default() model.Catalog {
	cat, err := Parse(bytes.NewReader(defaultCatalogYAML))
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return cat
}

// Load reads and validates a YAML catalog file.
func Load(path string) (model.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	cat, err := Parse(f)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes and validates a YAML catalog. Unknown keys are rejected.
// Add-on rates missing from the file keep their default prices.
func Parse(r io.Reader) (model.Catalog, error) {
	rates := model.DefaultAddOnRates()
	cat := model.Catalog{AddOnRates: &rates}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil {
		if errors.Is(err, io.EOF) {
			return model.Catalog{}, ErrEmptyCatalog
		}
		return model.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}

	if err := Validate(cat); err != nil {
		return model.Catalog{}, err
	}
	return cat, nil
}

// Validate checks ids are present and unique, prices are non-negative and sizes are positive.
// Categories may only name sizes the catalog defines.
// All problems are reported together.
func Validate(cat model.Catalog) error {
	if cat.IsEmpty() {
		return ErrEmptyCatalog
	}

	var errs []error
	invalid := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidEntry, fmt.Sprintf(format, args...)))
	}

	seen := make(map[string]bool)
	for i, p := range cat.PaperStocks {
		switch {
		case p.ID == "":
			invalid("paper_stocks[%d]: missing id", i)
		case seen["paper:"+p.ID]:
			invalid("paper_stocks[%d]: duplicate id %q", i, p.ID)
		}
		seen["paper:"+p.ID] = true
		if p.Type != model.PaperTypeText && p.Type != model.PaperTypeCard {
			invalid("paper stock %q: type must be text or card", p.ID)
		}
		if p.PricePerSqInch.IsNegative() {
			invalid("paper stock %q: negative price_per_sq_inch", p.ID)
		}
		if p.SecondSideMarkupPercent.IsNegative() {
			invalid("paper stock %q: negative second_side_markup_percent", p.ID)
		}
	}

	for i, s := range cat.Sizes {
		switch {
		case s.ID == "":
			invalid("sizes[%d]: missing id", i)
		case seen["size:"+s.ID]:
			invalid("sizes[%d]: duplicate id %q", i, s.ID)
		}
		seen["size:"+s.ID] = true
		if !s.Width.IsPositive() || !s.Height.IsPositive() {
			invalid("size %q: width and height must be positive", s.ID)
		}
	}

	for i, t := range cat.Turnarounds {
		switch {
		case t.ID == "":
			invalid("turnaround_times[%d]: missing id", i)
		case seen["turnaround:"+t.ID]:
			invalid("turnaround_times[%d]: duplicate id %q", i, t.ID)
		}
		seen["turnaround:"+t.ID] = true
		if t.MarkupPercent.IsNegative() {
			invalid("turnaround %q: negative markup_percent", t.ID)
		}
	}

	for i, d := range cat.BrokerDiscounts {
		switch {
		case d.CategoryID == "":
			invalid("broker_discounts[%d]: missing category_id", i)
		case seen["discount:"+d.CategoryID]:
			invalid("broker_discounts[%d]: duplicate category %q", i, d.CategoryID)
		}
		seen["discount:"+d.CategoryID] = true
		if d.DiscountPercent.IsNegative() || d.DiscountPercent.GreaterThan(hundred) {
			invalid("broker discount %q: discount_percent must be between 0 and 100", d.CategoryID)
		}
	}

	for i, c := range cat.Categories {
		switch {
		case c.ID == "":
			invalid("categories[%d]: missing id", i)
		case seen["category:"+c.ID]:
			invalid("categories[%d]: duplicate id %q", i, c.ID)
		}
		seen["category:"+c.ID] = true
		for _, sizeID := range c.SizeIDs {
			if !seen["size:"+sizeID] {
				invalid("category %q: unknown size %q", c.ID, sizeID)
			}
		}
	}

	if cat.AddOnRates != nil {
		for _, r := range cat.AddOnRates.Amounts() {
			if r.Amount.IsNegative() {
				invalid("addon_rates: negative %s", r.Name)
			}
		}
		if cat.AddOnRates.BandingItemsPerBundle <= 0 || cat.AddOnRates.ShrinkWrapItemsPerBundle <= 0 {
			invalid("addon_rates: items per bundle must be positive")
		}
	}

	return errors.Join(errs...)
}
