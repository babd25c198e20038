package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guttosm/print-pricing-service/internal/catalog"
	"github.com/guttosm/print-pricing-service/internal/domain/dto"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type quoteOptions struct {
	file        string
	format      string
	request     bool
	catalogFile string
	broker      bool
}

func newQuoteCmd() *cobra.Command {
	opts := &quoteOptions{}

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a product configuration",
		Long: `Run the pricing engine on a JSON product configuration and print the breakdown.

With --request the file holds an API quote request (catalog ids instead of
resolved entries), which is resolved against the built-in catalog or --catalog.

Examples:
  pricectl quote --file postcards.json
  pricectl quote --file request.json --request --broker
  pricectl quote --file postcards.json --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "JSON file to price (- for stdin)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&opts.request, "request", false, "treat the file as an API quote request")
	cmd.Flags().StringVar(&opts.catalogFile, "catalog", "", "YAML catalog for --request (default is the built-in catalog)")
	cmd.Flags().BoolVar(&opts.broker, "broker", false, "price a --request as a broker account")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runQuote(ctx context.Context, out io.Writer, opts *quoteOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	raw, err := readInput(opts.file)
	if err != nil {
		return err
	}

	var calc model.PriceCalculation
	if opts.request {
		calc, err = priceRequest(ctx, raw, opts)
	} else {
		calc, err = priceConfiguration(raw)
	}
	if err != nil {
		return err
	}

	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(calc)
	}
	return writeBreakdown(out, calc)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}

func priceConfiguration(raw []byte) (model.PriceCalculation, error) {
	var cfg model.ProductConfiguration
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return model.PriceCalculation{}, fmt.Errorf("decode product configuration: %w", err)
	}
	return service.CalculatePrice(cfg), nil
}

func priceRequest(ctx context.Context, raw []byte, opts *quoteOptions) (model.PriceCalculation, error) {
	var req dto.QuoteRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return model.PriceCalculation{}, fmt.Errorf("decode quote request: %w", err)
	}
	if err := req.Validate(); err != nil {
		return model.PriceCalculation{}, err
	}

	cat := catalog.Default()
	if opts.catalogFile != "" {
		var err error
		if cat, err = catalog.Load(opts.catalogFile); err != nil {
			return model.PriceCalculation{}, err
		}
	}

	catalogService := service.NewCatalogService(nil, nil, cat)
	quotes := service.NewQuoteService(catalogService, service.NewPricingEngineService(), nil)

	_, calc, err := quotes.Calculate(ctx, req, model.BrokerIdentity{IsBroker: opts.broker})
	return calc, err
}

func writeBreakdown(out io.Writer, calc model.PriceCalculation) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	row := func(label string, amount decimal.Decimal) {
		fmt.Fprintf(w, "%s\t%s\t\n", label, amount.StringFixed(2))
	}

	fmt.Fprintf(w, "Quantity\t%d\t\n", calc.Quantity)
	row("Base printing cost", calc.BasePaperPrintPrice)
	if calc.BrokerDiscountApplied {
		row(fmt.Sprintf("Broker discount (%s%%)", calc.BrokerDiscountPercent), calc.BrokerDiscountAmount.Neg())
	}
	if calc.TaglineDiscountApplied {
		row(fmt.Sprintf("Tagline discount (%s%%)", calc.TaglineDiscountPercent), calc.TaglineDiscountAmount.Neg())
	}
	if calc.ExactSizeMarkupApplied {
		row(fmt.Sprintf("Exact size markup (%s%%)", calc.ExactSizeMarkupPercent), calc.ExactSizeMarkupAmount)
	}
	row(fmt.Sprintf("Turnaround markup (%s%%)", calc.TurnaroundMarkupPercent), calc.TurnaroundMarkupAmount)
	for _, a := range calc.AddOnCosts {
		row(a.Name, a.Cost)
	}
	row("Subtotal", calc.CalculatedProductSubtotal)

	return w.Flush()
}
