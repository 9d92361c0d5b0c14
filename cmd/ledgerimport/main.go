package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"kusgan/internal/catalog"
	"kusgan/internal/config"
	"kusgan/internal/db"
	"kusgan/internal/ledgerimport"
	"kusgan/internal/logger"
	"kusgan/internal/payment"
)

// ledgerimport loads the spreadsheet exports the front desk kept before the
// system went live: the price list first, then the payments ledger.
func main() {
	prices := flag.String("prices", "", "path to the price list CSV (Particulars, Cost, Validity, Gym, Coach)")
	payments := flag.String("payments", "", "path to the payments CSV (MemberID, Particulars, StartDate, EndDate)")
	dryRun := flag.Bool("dry-run", false, "parse and report without writing to the database")
	flag.Parse()

	logger.Init()
	if *prices == "" && *payments == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	importer := ledgerimport.NewImporter(
		catalog.NewRepository(database),
		payment.NewRepository(database),
		cfg.Location,
		*dryRun,
	)

	failed := false
	run := func(path string, load func(context.Context, *os.File) (ledgerimport.Result, error)) {
		f, err := os.Open(path)
		if err != nil {
			logger.Error("Failed to open sheet", "path", path, "error", err)
			failed = true
			return
		}
		defer f.Close()

		res, err := load(ctx, f)
		if err != nil {
			logger.Error("Import failed", "path", path, "error", err)
			failed = true
			return
		}
		for _, issue := range res.Issues {
			logger.Warn("Row issue", "path", path, "issue", issue.String())
		}
	}

	if *prices != "" {
		run(*prices, func(ctx context.Context, f *os.File) (ledgerimport.Result, error) {
			return importer.ImportPrices(ctx, f)
		})
	}
	if *payments != "" && !failed {
		run(*payments, func(ctx context.Context, f *os.File) (ledgerimport.Result, error) {
			return importer.ImportPayments(ctx, f)
		})
	}

	if failed {
		os.Exit(1)
	}
}
