package model

// Catalog is the set of selectable options a quote is resolved against.
//
// @Description Active catalog of paper stocks, sizes and turnaround times
type Catalog struct {
	PaperStocks     []PaperStock     `json:"paper_stocks" yaml:"paper_stocks"`
	Sizes           []PrintSize      `json:"sizes" yaml:"sizes"`
	Turnarounds     []TurnaroundTime `json:"turnaround_times" yaml:"turnaround_times"`
	BrokerDiscounts []BrokerDiscount `json:"broker_discounts,omitempty" yaml:"broker_discounts"`
	// Categories map product lines to the sizes they are sold in.
	Categories []ProductCategory `json:"categories,omitempty" yaml:"categories"`
	// AddOnRates prices the add-ons. Nil means the default price list.
	AddOnRates *AddOnRates `json:"addon_rates,omitempty" yaml:"addon_rates"`
}

// ProductCategory is a product line such as postcards or business cards.
// Broker discounts are keyed by category id.
type ProductCategory struct {
	ID      string   `json:"id" yaml:"id" example:"postcards"`
	Name    string   `json:"name" yaml:"name" example:"Postcards"`
	SizeIDs []string `json:"size_ids" yaml:"size_ids"`
	// AllowCustomSize accepts custom dimensions for this category.
	AllowCustomSize bool `json:"allow_custom_size" yaml:"allow_custom_size"`
}

// Offers reports whether the category is sold in size.
func (p ProductCategory) Offers(size PrintSize) bool {
	if size.IsCustom {
		return p.AllowCustomSize
	}
	for _, id := range p.SizeIDs {
		if id == size.ID {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the catalog has nothing to quote against.
func (c Catalog) IsEmpty() bool {
	return len(c.PaperStocks) == 0 && len(c.Sizes) == 0 && len(c.Turnarounds) == 0
}

// PaperStock looks up a paper stock by id.
func (c Catalog) PaperStock(id string) (PaperStock, bool) {
	for _, p := range c.PaperStocks {
		if p.ID == id {
			return p, true
		}
	}
	return PaperStock{}, false
}

// Size looks up a print size by id.
func (c Catalog) Size(id string) (PrintSize, bool) {
	for _, s := range c.Sizes {
		if s.ID == id {
			return s, true
		}
	}
	return PrintSize{}, false
}

// Turnaround looks up a turnaround tier by id.
func (c Catalog) Turnaround(id string) (TurnaroundTime, bool) {
	for _, t := range c.Turnarounds {
		if t.ID == id {
			return t, true
		}
	}
	return TurnaroundTime{}, false
}

// Category looks up a product category by id.
func (c Catalog) Category(id string) (ProductCategory, bool) {
	for _, p := range c.Categories {
		if p.ID == id {
			return p, true
		}
	}
	return ProductCategory{}, false
}

// CategoriesFor returns the categories sold in size.
func (c Catalog) CategoriesFor(size PrintSize) []ProductCategory {
	var out []ProductCategory
	for _, p := range c.Categories {
		if p.Offers(size) {
			out = append(out, p)
		}
	}
	return out
}

// Rates returns the catalog's add-on rates, or the default price list.
func (c Catalog) Rates() AddOnRates {
	if c.AddOnRates == nil {
		return DefaultAddOnRates()
	}
	return *c.AddOnRates
}
