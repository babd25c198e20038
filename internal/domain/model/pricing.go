// Package model defines the core domain entities for the print pricing service.
package model

import "github.com/shopspring/decimal"

// Sides is the number of printed sides of a product.
type Sides string

const (
	// SidesSingle prints on the front only.
	SidesSingle Sides = "single"
	// SidesDouble prints on front and back.
	SidesDouble Sides = "double"
)

// IsValid reports whether s is a known sides value.
func (s Sides) IsValid() bool {
	return s == SidesSingle || s == SidesDouble
}

// PaperType classifies a paper stock for finishing services such as folding.
type PaperType string

const (
	// PaperTypeText is lightweight text-weight paper.
	PaperTypeText PaperType = "text"
	// PaperTypeCard is heavy cover/card stock.
	PaperTypeCard PaperType = "card"
)

// PaperStock is a selectable paper or material option.
//
// @Description Paper stock with its area price and second-side markup
type PaperStock struct {
	ID   string    `json:"id" yaml:"id" example:"16pt-gloss"`
	Name string    `json:"name" yaml:"name" example:"16pt Gloss Cover"`
	Type PaperType `json:"type" yaml:"type" example:"card"`
	// PricePerSqInch is the printing price per square inch of one piece.
	PricePerSqInch decimal.Decimal `json:"price_per_sq_inch" yaml:"price_per_sq_inch" swaggertype:"string" example:"0.01"`
	// SecondSideMarkupPercent is applied to double-sided jobs.
	SecondSideMarkupPercent decimal.Decimal `json:"second_side_markup_percent" yaml:"second_side_markup_percent" swaggertype:"string" example:"50"`
}

// PrintSize is a physical output dimension in inches.
type PrintSize struct {
	ID       string          `json:"id" yaml:"id" example:"4x6"`
	Name     string          `json:"name" yaml:"name" example:"4\" x 6\""`
	Width    decimal.Decimal `json:"width" yaml:"width" swaggertype:"string" example:"4"`
	Height   decimal.Decimal `json:"height" yaml:"height" swaggertype:"string" example:"6"`
	IsCustom bool            `json:"is_custom" yaml:"is_custom"`
}

// Area returns width × height.
func (s PrintSize) Area() decimal.Decimal {
	return s.Width.Mul(s.Height)
}

// TurnaroundTime is a production-speed tier.
type TurnaroundTime struct {
	ID            string          `json:"id" yaml:"id" example:"rush"`
	Name          string          `json:"name" yaml:"name" example:"Rush (2 business days)"`
	MarkupPercent decimal.Decimal `json:"markup_percent" yaml:"markup_percent" swaggertype:"string" example:"20"`
	BusinessDays  int             `json:"business_days" yaml:"business_days" example:"2"`
}

// BrokerDiscount is a per-category discount rate granted to broker accounts.
type BrokerDiscount struct {
	CategoryID      string          `json:"category_id" yaml:"category_id" example:"postcards"`
	DiscountPercent decimal.Decimal `json:"discount_percent" yaml:"discount_percent" swaggertype:"string" example:"10"`
}

// ProductConfiguration is the complete input to one price calculation.
type ProductConfiguration struct {
	PaperStock      PaperStock         `json:"paper_stock"`
	Size            PrintSize          `json:"size"`
	Quantity        int                `json:"quantity"`
	Sides           Sides              `json:"sides"`
	Turnaround      TurnaroundTime     `json:"turnaround"`
	AddOns          AddOnConfiguration `json:"addons"`
	IsBroker        bool               `json:"is_broker"`
	BrokerDiscounts []BrokerDiscount   `json:"broker_discounts,omitempty"`
	CategoryID      string             `json:"category_id"`
}

// BrokerDiscountFor returns the discount registered for the configuration's category.
func (c ProductConfiguration) BrokerDiscountFor() (BrokerDiscount, bool) {
	for _, d := range c.BrokerDiscounts {
		if d.CategoryID == c.CategoryID {
			return d, true
		}
	}
	return BrokerDiscount{}, false
}

// AddOnCost is one itemized add-on line of a calculation.
type AddOnCost struct {
	AddOn AddOnKind       `json:"addon"`
	Name  string          `json:"name"`
	Cost  decimal.Decimal `json:"cost" swaggertype:"string"`
	Notes []string        `json:"notes,omitempty"`
}

// PriceBreakdown is the condensed, display-oriented view of a calculation.
type PriceBreakdown struct {
	BasePrintingCost       decimal.Decimal  `json:"base_printing_cost" swaggertype:"string" example:"120"`
	BrokerDiscountAmount   *decimal.Decimal `json:"broker_discount_amount,omitempty" swaggertype:"string"`
	TaglineDiscountAmount  *decimal.Decimal `json:"tagline_discount_amount,omitempty" swaggertype:"string"`
	ExactSizeMarkupAmount  *decimal.Decimal `json:"exact_size_markup_amount,omitempty" swaggertype:"string"`
	TurnaroundMarkupAmount decimal.Decimal  `json:"turnaround_markup_amount" swaggertype:"string"`
	TotalAddOnCost         decimal.Decimal  `json:"total_addon_cost" swaggertype:"string"`
	Total                  decimal.Decimal  `json:"total" swaggertype:"string" example:"162.65"`
}

// PriceCalculation is the complete, itemized output of the pricing engine.
// Amounts are unrounded; callers format them for display.
//
// @Description Itemized price calculation with every pipeline stage exposed
type PriceCalculation struct {
	Quantity      int             `json:"quantity" example:"500"`
	EffectiveArea decimal.Decimal `json:"effective_area" swaggertype:"string" example:"24"`
	SidesFactor   decimal.Decimal `json:"sides_factor" swaggertype:"string" example:"1"`

	BasePaperPrintPrice decimal.Decimal `json:"base_paper_print_price" swaggertype:"string" example:"120"`

	BrokerDiscountApplied bool            `json:"broker_discount_applied"`
	BrokerDiscountPercent decimal.Decimal `json:"broker_discount_percent" swaggertype:"string"`
	BrokerDiscountAmount  decimal.Decimal `json:"broker_discount_amount" swaggertype:"string"`

	TaglineDiscountApplied bool            `json:"tagline_discount_applied"`
	TaglineDiscountPercent decimal.Decimal `json:"tagline_discount_percent" swaggertype:"string"`
	TaglineDiscountAmount  decimal.Decimal `json:"tagline_discount_amount" swaggertype:"string"`

	AdjustedBasePrice decimal.Decimal `json:"adjusted_base_price" swaggertype:"string"`

	ExactSizeMarkupApplied bool            `json:"exact_size_markup_applied"`
	ExactSizeMarkupPercent decimal.Decimal `json:"exact_size_markup_percent" swaggertype:"string"`
	ExactSizeMarkupAmount  decimal.Decimal `json:"exact_size_markup_amount" swaggertype:"string"`

	PriceAfterBaseModifiers decimal.Decimal `json:"price_after_base_modifiers" swaggertype:"string"`

	TurnaroundMarkupPercent decimal.Decimal `json:"turnaround_markup_percent" swaggertype:"string"`
	TurnaroundMarkupAmount  decimal.Decimal `json:"turnaround_markup_amount" swaggertype:"string"`
	PriceAfterTurnaround    decimal.Decimal `json:"price_after_turnaround" swaggertype:"string"`

	AddOnCosts     []AddOnCost     `json:"addon_costs"`
	TotalAddOnCost decimal.Decimal `json:"total_addon_cost" swaggertype:"string"`

	CalculatedProductSubtotal decimal.Decimal `json:"calculated_product_subtotal_before_shipping_tax" swaggertype:"string" example:"162.65"`

	Breakdown PriceBreakdown `json:"breakdown"`
}

// Clone returns a deep copy of c. Line items, notes and optional breakdown
// amounts are not shared with the original.
func (c PriceCalculation) Clone() PriceCalculation {
	out := c
	if c.AddOnCosts != nil {
		out.AddOnCosts = make([]AddOnCost, len(c.AddOnCosts))
		for i, line := range c.AddOnCosts {
			if line.Notes != nil {
				line.Notes = append([]string(nil), line.Notes...)
			}
			out.AddOnCosts[i] = line
		}
	}
	out.Breakdown.BrokerDiscountAmount = cloneAmount(c.Breakdown.BrokerDiscountAmount)
	out.Breakdown.TaglineDiscountAmount = cloneAmount(c.Breakdown.TaglineDiscountAmount)
	out.Breakdown.ExactSizeMarkupAmount = cloneAmount(c.Breakdown.ExactSizeMarkupAmount)
	return out
}

func cloneAmount(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
