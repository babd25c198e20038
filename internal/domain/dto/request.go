// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// QuoteRequest represents the JSON request body for the quote endpoints.
//
// Products are described by catalog IDs. A custom size is given with
// custom_width and custom_height instead of size_id.
// Add-ons are selected only; their prices come from the catalog.
//
// @Description Request to price a print product configuration
// @Example {"paper_stock_id": "14pt-matte", "size_id": "4x6", "quantity": 500, "sides": "single", "turnaround_id": "standard"}
type QuoteRequest struct {
	// PaperStockID is the catalog id of the paper stock.
	PaperStockID string `json:"paper_stock_id" binding:"required" example:"14pt-matte"`
	// SizeID is the catalog id of the print size. Ignored when a custom size is given.
	SizeID string `json:"size_id,omitempty" example:"4x6"`
	// CustomWidth is the width in inches of a custom size.
	CustomWidth *decimal.Decimal `json:"custom_width,omitempty" swaggertype:"string" example:"5.5"`
	// CustomHeight is the height in inches of a custom size.
	CustomHeight *decimal.Decimal `json:"custom_height,omitempty" swaggertype:"string" example:"8.5"`
	// Quantity is the number of pieces. Must be greater than 0.
	Quantity int `json:"quantity" binding:"required,gt=0" example:"500" minimum:"1"`
	// Sides is single or double.
	Sides model.Sides `json:"sides" binding:"required" example:"single" enums:"single,double"`
	// TurnaroundID is the catalog id of the production-speed tier.
	TurnaroundID string `json:"turnaround_id" binding:"required" example:"standard"`
	// CategoryID is the product category. It must sell the requested size and may be
	// omitted when exactly one category does.
	CategoryID string `json:"category_id,omitempty" example:"postcards"`
	// AddOns selects the optional services.
	AddOns AddOnSelection `json:"addons"`
} // @name QuoteRequest

// AddOnSelection lists the add-ons a customer picked. It carries choices and counts,
// never prices. Price fields sent by a client are ignored.
type AddOnSelection struct {
	Tagline   bool `json:"tagline"`
	ExactSize bool `json:"exact_size"`

	DigitalProof   *Selected                   `json:"digital_proof,omitempty"`
	Perforation    *PerforationSelection       `json:"perforation,omitempty"`
	ScoreOnly      *ScoreOnlySelection         `json:"score_only,omitempty"`
	Folding        *model.FoldingOption        `json:"folding,omitempty"`
	DesignServices *model.DesignServicesOption `json:"design_services,omitempty"`
	Banding        *Selected                   `json:"banding,omitempty"`
	ShrinkWrapping *Selected                   `json:"shrink_wrapping,omitempty"`
	QRCode         *QRCodeSelection            `json:"qr_code,omitempty"`
	PostalDelivery *PostalDeliverySelection    `json:"postal_delivery,omitempty"`
	EDDM           *EDDMSelection              `json:"eddm,omitempty"`
	HoleDrilling   *HoleDrillingSelection      `json:"hole_drilling,omitempty"`
} // @name AddOnSelection

// Selected marks an add-on without options. It is sent as an empty object.
type Selected struct{}

// PerforationSelection selects perforation.
type PerforationSelection struct {
	Orientation string `json:"orientation,omitempty" example:"horizontal"`
}

// ScoreOnlySelection selects scoring. Zero scores means one.
type ScoreOnlySelection struct {
	NumberOfScores int `json:"number_of_scores" example:"2"`
}

// QRCodeSelection selects a QR code placement.
type QRCodeSelection struct {
	Content string `json:"content,omitempty" example:"https://example.com"`
}

// PostalDeliverySelection selects DDU drop-off. Zero boxes means one.
type PostalDeliverySelection struct {
	NumberOfBoxes int `json:"number_of_boxes" example:"2"`
}

// EDDMSelection selects Every Door Direct Mail.
type EDDMSelection struct {
	RouteCount int `json:"route_count,omitempty" example:"4"`
}

// HoleDrillingSelection selects custom holes or a binder punch.
type HoleDrillingSelection struct {
	HoleType      model.HoleType `json:"hole_type" example:"custom" enums:"custom,binder_punch"`
	NumberOfHoles int            `json:"number_of_holes,omitempty" example:"3"`
	HoleSize      string         `json:"hole_size,omitempty" example:"1/4in"`
}

// HasCustomSize reports whether the request carries custom dimensions.
func (r *QuoteRequest) HasCustomSize() bool {
	return r.CustomWidth != nil || r.CustomHeight != nil
}

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrInvalidQuantity is returned when quantity is invalid.
	ErrInvalidQuantity = &ValidationError{
		Field:   "quantity",
		Message: "must be a positive integer",
	}
	// ErrMissingPaperStock is returned when paper_stock_id is empty.
	ErrMissingPaperStock = &ValidationError{
		Field:   "paper_stock_id",
		Message: "is required",
	}
	// ErrMissingSize is returned when neither size_id nor a custom size is given.
	ErrMissingSize = &ValidationError{
		Field:   "size_id",
		Message: "size_id or custom_width and custom_height are required",
	}
	// ErrInvalidSides is returned when sides is not single or double.
	ErrInvalidSides = &ValidationError{
		Field:   "sides",
		Message: "must be single or double",
	}
	// ErrMissingTurnaround is returned when turnaround_id is empty.
	ErrMissingTurnaround = &ValidationError{
		Field:   "turnaround_id",
		Message: "is required",
	}
	// ErrInvalidDiscountPercent is returned when a broker discount is out of range.
	ErrInvalidDiscountPercent = &ValidationError{
		Field:   "discount_percent",
		Message: "must be between 0 and 100",
	}
)

// Validate performs custom validation on the request.
// Returns an error if validation fails, nil otherwise.
func (r *QuoteRequest) Validate() error {
	if r.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if r.PaperStockID == "" {
		return ErrMissingPaperStock
	}
	if r.HasCustomSize() {
		if r.CustomWidth == nil || !r.CustomWidth.IsPositive() {
			return &ValidationError{Field: "custom_width", Message: "must be greater than 0"}
		}
		if r.CustomHeight == nil || !r.CustomHeight.IsPositive() {
			return &ValidationError{Field: "custom_height", Message: "must be greater than 0"}
		}
	} else if r.SizeID == "" {
		return ErrMissingSize
	}
	if !r.Sides.IsValid() {
		return ErrInvalidSides
	}
	if r.TurnaroundID == "" {
		return ErrMissingTurnaround
	}
	return validateAddOns(r.AddOns)
}

// validateAddOns rejects negative counts and unknown enum values.
func validateAddOns(a AddOnSelection) error {
	var counts []namedCount

	if a.ScoreOnly != nil {
		counts = append(counts, namedCount{"addons.score_only.number_of_scores", a.ScoreOnly.NumberOfScores})
	}
	if a.Folding != nil && a.Folding.PaperType != "" &&
		a.Folding.PaperType != model.PaperTypeText && a.Folding.PaperType != model.PaperTypeCard {
		return &ValidationError{Field: "addons.folding.paper_type", Message: "must be text or card"}
	}
	if a.DesignServices != nil {
		if !a.DesignServices.Service.IsValid() {
			return &ValidationError{Field: "addons.design_services.service", Message: "unknown design service"}
		}
		if a.DesignServices.Sides != "" && !a.DesignServices.Sides.IsValid() {
			return &ValidationError{Field: "addons.design_services.sides", Message: "must be single or double"}
		}
	}
	if a.PostalDelivery != nil {
		counts = append(counts, namedCount{"addons.postal_delivery.number_of_boxes", a.PostalDelivery.NumberOfBoxes})
	}
	if a.EDDM != nil {
		counts = append(counts, namedCount{"addons.eddm.route_count", a.EDDM.RouteCount})
	}
	if a.HoleDrilling != nil {
		h := a.HoleDrilling
		if h.HoleType != model.HoleTypeCustom && h.HoleType != model.HoleTypeBinderPunch {
			return &ValidationError{Field: "addons.hole_drilling.hole_type", Message: "must be custom or binder_punch"}
		}
		counts = append(counts, namedCount{"addons.hole_drilling.number_of_holes", h.NumberOfHoles})
	}

	for _, c := range counts {
		if c.count < 0 {
			return &ValidationError{Field: c.field, Message: "must not be negative"}
		}
	}
	return nil
}

type namedCount struct {
	field string
	count int
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// UpdateBrokerDiscountRequest represents the JSON request body for setting a category's broker discount.
type UpdateBrokerDiscountRequest struct {
	// DiscountPercent is the discount granted to brokers, between 0 and 100.
	DiscountPercent decimal.Decimal `json:"discount_percent" swaggertype:"string" example:"10"`
	// UpdatedBy is the identifier of who changed the discount.
	UpdatedBy string `json:"updated_by,omitempty" example:"ops@example.com"`
} // @name UpdateBrokerDiscountRequest

// Validate checks the discount is within 0 and 100.
func (r *UpdateBrokerDiscountRequest) Validate() error {
	if r.DiscountPercent.IsNegative() || r.DiscountPercent.GreaterThan(hundred) {
		return ErrInvalidDiscountPercent
	}
	return nil
}
