// Command feectl parses a financial status report into structured invoice
// records, writes CSV/XLSX audit artifacts, and optionally imports the
// records into the project billing database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/studioatlas/fee-tracker/internal/domain/report/parser"
	"github.com/studioatlas/fee-tracker/internal/domain/report/repository"
	"github.com/studioatlas/fee-tracker/internal/domain/report/service"
	"github.com/studioatlas/fee-tracker/pkg/config"
	"github.com/studioatlas/fee-tracker/pkg/db"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		inPath   = flag.String("in", "", "source report (.pdf or plain text)")
		csvPath  = flag.String("csv", "", "write invoice records CSV to this path")
		diagPath = flag.String("diag", "", "write diagnostics CSV to this path")
		xlsxPath = flag.String("xlsx", "", "write XLSX audit workbook to this path")
		doImport = flag.Bool("import", false, "persist records to the billing database")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *inPath == "" {
		return fmt.Errorf("-in is required")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Observability.MetricsEnabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			addr := fmt.Sprintf(":%d", cfg.Observability.MetricsPort)
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Warn("metrics server stopped", "error", err)
			}
		}()
	}

	engineCfg := parser.DefaultConfig()
	if cfg.Parser.TotalsThreshold > 0 {
		engineCfg.TotalsThreshold = decimal.NewFromInt(cfg.Parser.TotalsThreshold)
	}
	svc := service.NewService(parser.NewEngine(engineCfg), logger)

	ctx := context.Background()
	if *doImport {
		database, err := db.New(ctx, db.Config{
			DSN:             cfg.Database.DSN(),
			MaxConns:        10,
			MinConns:        2,
			MaxConnLifetime: 5 * time.Minute,
		})
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			return err
		}
		svc = svc.WithStore(repository.NewRepository(database.Pool))
	}

	result, err := svc.ParseFile(*inPath)
	if err != nil {
		return err
	}

	if *csvPath != "" {
		if err := writeFile(*csvPath, func(f *os.File) error {
			return svc.ExportCSV(result, f, nil)
		}); err != nil {
			return err
		}
	}
	if *diagPath != "" {
		if err := writeFile(*diagPath, func(f *os.File) error {
			return svc.ExportCSV(&parser.ParseResult{Diagnostics: result.Diagnostics}, nil, f)
		}); err != nil {
			return err
		}
	}
	if *xlsxPath != "" {
		if err := writeFile(*xlsxPath, func(f *os.File) error {
			return svc.ExportWorkbook(result, f)
		}); err != nil {
			return err
		}
	}

	if *doImport {
		imported, err := svc.Import(ctx, *inPath, result)
		if err != nil {
			return err
		}
		logger.Info("import complete", "job_id", imported.JobID)
	}

	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
