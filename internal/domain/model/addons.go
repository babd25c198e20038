package model

import "github.com/shopspring/decimal"

// AddOnKind identifies an optional finishing or delivery service.
type AddOnKind string

// Add-on identifiers, in the order the engine itemizes them.
const (
	AddOnDigitalProof   AddOnKind = "digital_proof"
	AddOnPerforation    AddOnKind = "perforation"
	AddOnScoreOnly      AddOnKind = "score_only"
	AddOnFolding        AddOnKind = "folding"
	AddOnDesignServices AddOnKind = "design_services"
	AddOnBanding        AddOnKind = "banding"
	AddOnShrinkWrapping AddOnKind = "shrink_wrapping"
	AddOnQRCode         AddOnKind = "qr_code"
	AddOnPostalDelivery AddOnKind = "postal_delivery"
	AddOnEDDM           AddOnKind = "eddm"
	AddOnHoleDrilling   AddOnKind = "hole_drilling"
)

// DesignService is the tier of design work ordered with a product.
type DesignService string

const (
	DesignUploadOwn      DesignService = "upload_own"
	DesignStandardCustom DesignService = "standard_custom"
	DesignRushCustom     DesignService = "rush_custom"
	DesignMinorChanges   DesignService = "minor_changes"
	DesignMajorChanges   DesignService = "major_changes"
)

// IsValid reports whether d is a known design tier.
func (d DesignService) IsValid() bool {
	switch d {
	case DesignUploadOwn, DesignStandardCustom, DesignRushCustom, DesignMinorChanges, DesignMajorChanges:
		return true
	}
	return false
}

// HoleType selects how hole drilling is charged.
type HoleType string

const (
	HoleTypeCustom      HoleType = "custom"
	HoleTypeBinderPunch HoleType = "binder_punch"
)

// AddOnConfiguration is the sparse set of selected add-ons.
// A nil option means the add-on is not selected. A nil rate falls back to the
// built-in default; a non-nil rate is used as given, zero included.
type AddOnConfiguration struct {
	Tagline   bool `json:"tagline"`
	ExactSize bool `json:"exact_size"`

	DigitalProof   *FlatFeeOption        `json:"digital_proof,omitempty"`
	Perforation    *PerforationOption    `json:"perforation,omitempty"`
	ScoreOnly      *ScoreOnlyOption      `json:"score_only,omitempty"`
	Folding        *FoldingOption        `json:"folding,omitempty"`
	DesignServices *DesignServicesOption `json:"design_services,omitempty"`
	Banding        *BundlingOption       `json:"banding,omitempty"`
	ShrinkWrapping *BundlingOption       `json:"shrink_wrapping,omitempty"`
	QRCode         *QRCodeOption         `json:"qr_code,omitempty"`
	PostalDelivery *PostalDeliveryOption `json:"postal_delivery,omitempty"`
	EDDM           *EDDMOption           `json:"eddm,omitempty"`
	HoleDrilling   *HoleDrillingOption   `json:"hole_drilling,omitempty"`
}

// FlatFeeOption is an add-on charged once per order.
type FlatFeeOption struct {
	Fee *decimal.Decimal `json:"fee,omitempty" swaggertype:"string"`
}

// PerforationOption charges a setup fee plus a per-piece rate.
type PerforationOption struct {
	SetupFee      *decimal.Decimal `json:"setup_fee,omitempty" swaggertype:"string"`
	PricePerPiece *decimal.Decimal `json:"price_per_piece,omitempty" swaggertype:"string"`
	Orientation   string           `json:"orientation,omitempty"`
}

// ScoreOnlyOption charges a setup fee plus a rate per score per piece.
type ScoreOnlyOption struct {
	SetupFee              *decimal.Decimal `json:"setup_fee,omitempty" swaggertype:"string"`
	PricePerScorePerPiece *decimal.Decimal `json:"price_per_score_per_piece,omitempty" swaggertype:"string"`
	NumberOfScores        int              `json:"number_of_scores"`
}

// FoldingOption is priced by paper type. An empty PaperType uses the product's paper stock.
type FoldingOption struct {
	FoldType  string    `json:"fold_type,omitempty"`
	PaperType PaperType `json:"paper_type,omitempty"`
}

// DesignServicesOption selects a design tier. An empty Sides uses the product's sides.
type DesignServicesOption struct {
	Service DesignService `json:"service"`
	Sides   Sides         `json:"sides,omitempty"`
}

// BundlingOption groups pieces into bundles charged per bundle.
// ItemsPerBundle at zero uses the default bundle size.
type BundlingOption struct {
	ItemsPerBundle int              `json:"items_per_bundle"`
	PricePerBundle *decimal.Decimal `json:"price_per_bundle,omitempty" swaggertype:"string"`
}

// QRCodeOption is a flat-fee QR code placement.
type QRCodeOption struct {
	Fee     *decimal.Decimal `json:"fee,omitempty" swaggertype:"string"`
	Content string           `json:"content,omitempty"`
}

// PostalDeliveryOption drops boxes at a Destination Delivery Unit.
type PostalDeliveryOption struct {
	NumberOfBoxes int              `json:"number_of_boxes"`
	PricePerBox   *decimal.Decimal `json:"price_per_box,omitempty" swaggertype:"string"`
}

// EDDMOption is Every Door Direct Mail processing and postage.
type EDDMOption struct {
	SetupFee      *decimal.Decimal `json:"setup_fee,omitempty" swaggertype:"string"`
	PricePerPiece *decimal.Decimal `json:"price_per_piece,omitempty" swaggertype:"string"`
	RouteCount    int              `json:"route_count,omitempty"`
}

// HoleDrillingOption drills custom holes or a standard binder punch.
type HoleDrillingOption struct {
	HoleType             HoleType         `json:"hole_type"`
	NumberOfHoles        int              `json:"number_of_holes,omitempty"`
	HoleSize             string           `json:"hole_size,omitempty"`
	SetupFee             *decimal.Decimal `json:"setup_fee,omitempty" swaggertype:"string"`
	PricePerHolePerPiece *decimal.Decimal `json:"price_per_hole_per_piece,omitempty" swaggertype:"string"`
	BinderPunchPerPiece  *decimal.Decimal `json:"binder_punch_per_piece,omitempty" swaggertype:"string"`
}

// AddOnRates are the catalog prices of the parameterized add-ons.
// Quote requests only select add-ons; the rates always come from here.
type AddOnRates struct {
	DigitalProofFee decimal.Decimal `json:"digital_proof_fee" yaml:"digital_proof_fee" swaggertype:"string"`

	PerforationSetupFee decimal.Decimal `json:"perforation_setup_fee" yaml:"perforation_setup_fee" swaggertype:"string"`
	PerforationPerPiece decimal.Decimal `json:"perforation_per_piece" yaml:"perforation_per_piece" swaggertype:"string"`

	ScoreSetupFee         decimal.Decimal `json:"score_setup_fee" yaml:"score_setup_fee" swaggertype:"string"`
	ScorePerScorePerPiece decimal.Decimal `json:"score_per_score_per_piece" yaml:"score_per_score_per_piece" swaggertype:"string"`

	BandingPerBundle      decimal.Decimal `json:"banding_per_bundle" yaml:"banding_per_bundle" swaggertype:"string"`
	BandingItemsPerBundle int             `json:"banding_items_per_bundle" yaml:"banding_items_per_bundle"`

	ShrinkWrapPerBundle      decimal.Decimal `json:"shrink_wrap_per_bundle" yaml:"shrink_wrap_per_bundle" swaggertype:"string"`
	ShrinkWrapItemsPerBundle int             `json:"shrink_wrap_items_per_bundle" yaml:"shrink_wrap_items_per_bundle"`

	QRCodeFee         decimal.Decimal `json:"qr_code_fee" yaml:"qr_code_fee" swaggertype:"string"`
	PostalPricePerBox decimal.Decimal `json:"postal_price_per_box" yaml:"postal_price_per_box" swaggertype:"string"`

	EDDMSetupFee decimal.Decimal `json:"eddm_setup_fee" yaml:"eddm_setup_fee" swaggertype:"string"`
	EDDMPerPiece decimal.Decimal `json:"eddm_per_piece" yaml:"eddm_per_piece" swaggertype:"string"`

	HoleSetupFee        decimal.Decimal `json:"hole_setup_fee" yaml:"hole_setup_fee" swaggertype:"string"`
	HolePerHolePerPiece decimal.Decimal `json:"hole_per_hole_per_piece" yaml:"hole_per_hole_per_piece" swaggertype:"string"`
	BinderPunchPerPiece decimal.Decimal `json:"binder_punch_per_piece" yaml:"binder_punch_per_piece" swaggertype:"string"`
}

// DefaultAddOnRates returns the standard add-on price list.
func DefaultAddOnRates() AddOnRates {
	return AddOnRates{
		DigitalProofFee:          decimal.RequireFromString("5.00"),
		PerforationSetupFee:      decimal.RequireFromString("20.00"),
		PerforationPerPiece:      decimal.RequireFromString("0.01"),
		ScoreSetupFee:            decimal.RequireFromString("17.00"),
		ScorePerScorePerPiece:    decimal.RequireFromString("0.01"),
		BandingPerBundle:         decimal.RequireFromString("0.75"),
		BandingItemsPerBundle:    100,
		ShrinkWrapPerBundle:      decimal.RequireFromString("0.30"),
		ShrinkWrapItemsPerBundle: 100,
		QRCodeFee:                decimal.RequireFromString("5.00"),
		PostalPricePerBox:        decimal.RequireFromString("30.00"),
		EDDMSetupFee:             decimal.RequireFromString("50.00"),
		EDDMPerPiece:             decimal.RequireFromString("0.239"),
		HoleSetupFee:             decimal.RequireFromString("20.00"),
		HolePerHolePerPiece:      decimal.RequireFromString("0.02"),
		BinderPunchPerPiece:      decimal.RequireFromString("0.01"),
	}
}

// Amounts lists every rate with its catalog key, in declaration order.
func (r AddOnRates) Amounts() []NamedAmount {
	return []NamedAmount{
		{"digital_proof_fee", r.DigitalProofFee},
		{"perforation_setup_fee", r.PerforationSetupFee},
		{"perforation_per_piece", r.PerforationPerPiece},
		{"score_setup_fee", r.ScoreSetupFee},
		{"score_per_score_per_piece", r.ScorePerScorePerPiece},
		{"banding_per_bundle", r.BandingPerBundle},
		{"shrink_wrap_per_bundle", r.ShrinkWrapPerBundle},
		{"qr_code_fee", r.QRCodeFee},
		{"postal_price_per_box", r.PostalPricePerBox},
		{"eddm_setup_fee", r.EDDMSetupFee},
		{"eddm_per_piece", r.EDDMPerPiece},
		{"hole_setup_fee", r.HoleSetupFee},
		{"hole_per_hole_per_piece", r.HolePerHolePerPiece},
		{"binder_punch_per_piece", r.BinderPunchPerPiece},
	}
}

// NamedAmount pairs an amount with the key it was configured under.
type NamedAmount struct {
	Name   string
	Amount decimal.Decimal
}
