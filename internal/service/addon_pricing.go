package service

import (
	"fmt"

	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

var defaultRates = model.DefaultAddOnRates()

// Default add-on rates, used whenever an option leaves a rate unset.
var (
	DefaultDigitalProofFee = defaultRates.DigitalProofFee

	DefaultPerforationSetupFee = defaultRates.PerforationSetupFee
	DefaultPerforationPerPiece = defaultRates.PerforationPerPiece

	DefaultScoreSetupFee         = defaultRates.ScoreSetupFee
	DefaultScorePerScorePerPiece = defaultRates.ScorePerScorePerPiece

	FoldingTextBase     = decimal.RequireFromString("0.17")
	FoldingTextPerPiece = decimal.RequireFromString("0.01")
	FoldingCardBase     = decimal.RequireFromString("0.34")
	FoldingCardPerPiece = decimal.RequireFromString("0.02")

	DefaultBandingPerBundle    = defaultRates.BandingPerBundle
	DefaultShrinkWrapPerBundle = defaultRates.ShrinkWrapPerBundle
	DefaultItemsPerBundle      = defaultRates.BandingItemsPerBundle
	DefaultQRCodeFee           = defaultRates.QRCodeFee
	DefaultPostalPricePerBox   = defaultRates.PostalPricePerBox
	DefaultEDDMSetupFee        = defaultRates.EDDMSetupFee
	DefaultEDDMPerPiece        = defaultRates.EDDMPerPiece
	DefaultHoleSetupFee        = defaultRates.HoleSetupFee
	DefaultHolePerHolePerPiece = defaultRates.HolePerHolePerPiece
	DefaultBinderPunchPerPiece = defaultRates.BinderPunchPerPiece
)

// DesignServicePrices lists the flat price of each design tier by sides.
// Tiers priced the same regardless of sides carry equal entries.
var DesignServicePrices = map[model.DesignService]map[model.Sides]decimal.Decimal{
	model.DesignUploadOwn: {
		model.SidesSingle: decimal.Zero,
		model.SidesDouble: decimal.Zero,
	},
	model.DesignStandardCustom: {
		model.SidesSingle: decimal.RequireFromString("90.00"),
		model.SidesDouble: decimal.RequireFromString("135.00"),
	},
	model.DesignRushCustom: {
		model.SidesSingle: decimal.RequireFromString("160.00"),
		model.SidesDouble: decimal.RequireFromString("240.00"),
	},
	model.DesignMinorChanges: {
		model.SidesSingle: decimal.RequireFromString("22.50"),
		model.SidesDouble: decimal.RequireFromString("22.50"),
	},
	model.DesignMajorChanges: {
		model.SidesSingle: decimal.RequireFromString("45.00"),
		model.SidesDouble: decimal.RequireFromString("45.00"),
	},
}

// CalculateAddOnCosts itemizes every selected add-on of cfg in a fixed order.
func CalculateAddOnCosts(cfg model.ProductConfiguration) []model.AddOnCost {
	a := cfg.AddOns
	qty := decimal.NewFromInt(int64(cfg.Quantity))
	costs := make([]model.AddOnCost, 0, 4)

	if a.DigitalProof != nil {
		costs = append(costs, model.AddOnCost{
			AddOn: model.AddOnDigitalProof,
			Name:  "Digital Proof",
			Cost:  rateOr(a.DigitalProof.Fee, DefaultDigitalProofFee),
		})
	}

	if a.Perforation != nil {
		setup := rateOr(a.Perforation.SetupFee, DefaultPerforationSetupFee)
		perPiece := rateOr(a.Perforation.PricePerPiece, DefaultPerforationPerPiece)
		line := model.AddOnCost{
			AddOn: model.AddOnPerforation,
			Name:  "Perforation",
			Cost:  setup.Add(perPiece.Mul(qty)),
		}
		if a.Perforation.Orientation != "" {
			line.Notes = append(line.Notes, "orientation: "+a.Perforation.Orientation)
		}
		costs = append(costs, line)
	}

	if a.ScoreOnly != nil {
		setup := rateOr(a.ScoreOnly.SetupFee, DefaultScoreSetupFee)
		perScore := rateOr(a.ScoreOnly.PricePerScorePerPiece, DefaultScorePerScorePerPiece)
		scores := decimal.NewFromInt(int64(orDefaultInt(a.ScoreOnly.NumberOfScores, 1)))
		costs = append(costs, model.AddOnCost{
			AddOn: model.AddOnScoreOnly,
			Name:  "Score Only",
			Cost:  setup.Add(perScore.Mul(scores).Mul(qty)),
		})
	}

	if a.Folding != nil {
		costs = append(costs, foldingCost(cfg, qty))
	}

	if a.DesignServices != nil {
		costs = append(costs, designServicesCost(cfg))
	}

	if a.Banding != nil {
		costs = append(costs, model.AddOnCost{
			AddOn: model.AddOnBanding,
			Name:  "Banding",
			Cost:  bundlingCost(cfg.Quantity, *a.Banding, DefaultBandingPerBundle),
		})
	}

	if a.ShrinkWrapping != nil {
		costs = append(costs, model.AddOnCost{
			AddOn: model.AddOnShrinkWrapping,
			Name:  "Shrink Wrapping",
			Cost:  bundlingCost(cfg.Quantity, *a.ShrinkWrapping, DefaultShrinkWrapPerBundle),
		})
	}

	if a.QRCode != nil {
		costs = append(costs, model.AddOnCost{
			AddOn: model.AddOnQRCode,
			Name:  "QR Code",
			Cost:  rateOr(a.QRCode.Fee, DefaultQRCodeFee),
		})
	}

	if a.PostalDelivery != nil {
		boxes := decimal.NewFromInt(int64(orDefaultInt(a.PostalDelivery.NumberOfBoxes, 1)))
		costs = append(costs, model.AddOnCost{
			AddOn: model.AddOnPostalDelivery,
			Name:  "Postal Delivery (DDU)",
			Cost:  boxes.Mul(rateOr(a.PostalDelivery.PricePerBox, DefaultPostalPricePerBox)),
		})
	}

	if a.EDDM != nil {
		setup := rateOr(a.EDDM.SetupFee, DefaultEDDMSetupFee)
		perPiece := rateOr(a.EDDM.PricePerPiece, DefaultEDDMPerPiece)
		line := model.AddOnCost{
			AddOn: model.AddOnEDDM,
			Name:  "EDDM Process & Postage",
			Cost:  setup.Add(perPiece.Mul(qty)),
			Notes: []string{"requires banding"},
		}
		if a.EDDM.RouteCount > 0 {
			line.Notes = append(line.Notes, fmt.Sprintf("%d carrier routes", a.EDDM.RouteCount))
		}
		costs = append(costs, line)
	}

	if a.HoleDrilling != nil {
		costs = append(costs, holeDrillingCost(*a.HoleDrilling, qty))
	}

	return costs
}

func foldingCost(cfg model.ProductConfiguration, qty decimal.Decimal) model.AddOnCost {
	paperType := cfg.AddOns.Folding.PaperType
	if paperType == "" {
		paperType = cfg.PaperStock.Type
	}

	line := model.AddOnCost{AddOn: model.AddOnFolding, Name: "Folding"}
	if cfg.AddOns.Folding.FoldType != "" {
		line.Notes = append(line.Notes, "fold: "+cfg.AddOns.Folding.FoldType)
	}

	if paperType == model.PaperTypeCard {
		line.Cost = FoldingCardBase.Add(FoldingCardPerPiece.Mul(qty))
		line.Notes = append(line.Notes, "includes mandatory basic score")
		return line
	}
	line.Cost = FoldingTextBase.Add(FoldingTextPerPiece.Mul(qty))
	return line
}

func designServicesCost(cfg model.ProductConfiguration) model.AddOnCost {
	opt := cfg.AddOns.DesignServices
	sides := opt.Sides
	if sides == "" {
		sides = cfg.Sides
	}
	if sides != model.SidesDouble {
		sides = model.SidesSingle
	}

	line := model.AddOnCost{
		AddOn: model.AddOnDesignServices,
		Name:  "Design Services",
		Cost:  decimal.Zero,
	}
	if tier, ok := DesignServicePrices[opt.Service]; ok {
		line.Cost = tier[sides]
		line.Notes = []string{fmt.Sprintf("%s, %s-sided", opt.Service, sides)}
	} else {
		line.Notes = []string{"unknown design service: " + string(opt.Service)}
	}
	return line
}

func holeDrillingCost(opt model.HoleDrillingOption, qty decimal.Decimal) model.AddOnCost {
	line := model.AddOnCost{
		AddOn: model.AddOnHoleDrilling,
		Name:  "Hole Drilling",
	}
	setup := rateOr(opt.SetupFee, DefaultHoleSetupFee)

	switch opt.HoleType {
	case model.HoleTypeBinderPunch:
		perPiece := rateOr(opt.BinderPunchPerPiece, DefaultBinderPunchPerPiece)
		line.Cost = setup.Add(perPiece.Mul(qty))
		line.Notes = []string{"binder punch"}
	case model.HoleTypeCustom:
		holes := decimal.NewFromInt(int64(orDefaultInt(opt.NumberOfHoles, 1)))
		perHole := rateOr(opt.PricePerHolePerPiece, DefaultHolePerHolePerPiece)
		line.Cost = setup.Add(holes.Mul(perHole).Mul(qty))
		if opt.HoleSize != "" {
			line.Notes = []string{"hole size: " + opt.HoleSize}
		}
	default:
		line.Cost = setup
		line.Notes = []string{"unknown hole type: " + string(opt.HoleType)}
	}
	return line
}

// bundlingCost charges per started bundle: ceil(quantity / itemsPerBundle) × pricePerBundle.
func bundlingCost(quantity int, opt model.BundlingOption, defaultPrice decimal.Decimal) decimal.Decimal {
	perBundle := orDefaultInt(opt.ItemsPerBundle, DefaultItemsPerBundle)
	bundles := decimal.NewFromInt(int64(quantity)).Div(decimal.NewFromInt(int64(perBundle))).Ceil()
	return bundles.Mul(rateOr(opt.PricePerBundle, defaultPrice))
}

// rateOr returns *v when set, zero included, and def otherwise.
func rateOr(v *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if v == nil {
		return def
	}
	return *v
}

func orDefaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
