package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/guttosm/print-pricing-service/internal/app"
	"github.com/guttosm/print-pricing-service/internal/catalog"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/repository"
	"github.com/spf13/cobra"
)

type seedOptions struct {
	file     string
	mongoURI string
	database string
	force    bool
	timeout  time.Duration
}

func newSeedCmd() *cobra.Command {
	opts := &seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store a catalog in MongoDB",
		Long: `Load a YAML catalog and store it in MongoDB.

Without --force the catalog is only written when the database holds none, the
same check the service runs on start. With --force every entry of the file is
upserted, including broker discounts.

Examples:
  pricectl seed --file catalog.yaml
  pricectl seed --file catalog.yaml --mongo-uri mongodb://db:27017 --database print_pricing --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			return runSeed(ctx, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML catalog file (default is the built-in catalog)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	cmd.Flags().StringVar(&opts.database, "database", "print_pricing", "MongoDB database name")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite entries that already exist")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall timeout")

	return cmd
}

func runSeed(ctx context.Context, out io.Writer, opts *seedOptions) error {
	cat := catalog.Default()
	if opts.file != "" {
		var err error
		if cat, err = catalog.Load(opts.file); err != nil {
			return err
		}
	}

	db, err := repository.NewMongoDB(opts.mongoURI, opts.database)
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer func() { _ = db.Close(context.Background()) }()

	catalogRepo := repository.NewCatalogRepository(db)
	discountsRepo := repository.NewBrokerDiscountsRepository(db)

	if !opts.force {
		seeded, err := app.SeedCatalog(ctx, catalogRepo, discountsRepo, cat)
		if err != nil {
			return err
		}
		if !seeded {
			fmt.Fprintln(out, "Catalog already present, nothing written (use --force to overwrite)")
			return nil
		}
		printSeedSummary(out, cat)
		return nil
	}

	if err := catalogRepo.SaveCatalog(ctx, cat); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	for _, d := range cat.BrokerDiscounts {
		if _, err := discountsRepo.Upsert(ctx, d.CategoryID, d.DiscountPercent, "pricectl"); err != nil {
			return fmt.Errorf("save broker discount %s: %w", d.CategoryID, err)
		}
	}
	printSeedSummary(out, cat)
	return nil
}

func printSeedSummary(out io.Writer, cat model.Catalog) {
	fmt.Fprintf(out, "Stored %d paper stocks, %d sizes, %d turnaround times and %d broker discounts\n",
		len(cat.PaperStocks), len(cat.Sizes), len(cat.Turnarounds), len(cat.BrokerDiscounts))
}
