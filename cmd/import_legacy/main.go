package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"fuelstation/internal/config"
	"fuelstation/internal/db"
	"fuelstation/internal/domain"
	"fuelstation/internal/excel"
	"fuelstation/internal/logging"
	"fuelstation/internal/metrics"
	"fuelstation/internal/repository"
	"fuelstation/internal/shift"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	filePath    string
	defaultPump string
	dryRun      bool
}

type importSummary struct {
	parsed   int
	imported int
	failed   int
	omitted  int
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "import_legacy",
		Short: "Import completed shifts from a legacy shift register workbook",
		Long: `Reads the first sheet of an .xlsx shift register and stores every row as a
completed shift with its reading. Staff members are matched by name and
created when unknown. Indent sales and expenses are written only when the
readings table carries those columns.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.filePath, "file", "f", "", "path to the shift register .xlsx file")
	cmd.Flags().StringVar(&opts.defaultPump, "pump", "", "pump id for rows without a pump column")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "parse and validate the workbook without writing")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cfg.LogLevel)

	rows, err := readShiftRows(opts.filePath)
	if err != nil {
		return err
	}
	shifts, err := buildLegacyShifts(rows, opts.defaultPump)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"module": "import_legacy",
		"file":   opts.filePath,
		"rows":   len(shifts),
	}).Info("shift register parsed")
	if opts.dryRun {
		logger.WithField("module", "import_legacy").Info("dry run, nothing written")
		return nil
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.PoolOptions{
		MaxConns:     cfg.DBMaxConns,
		TraceQueries: cfg.DBTraceQueries,
	}, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if cfg.MigrateOnStart {
		if err := db.RunMigrations(ctx, pool, logger); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	repo := repository.New(pool)
	summary := importAll(ctx, repo, shift.NewReadingAdapter(repo, logger), shifts, logger)
	summary.parsed = len(rows)

	logger.WithFields(logrus.Fields{
		"module":   "import_legacy",
		"parsed":   summary.parsed,
		"imported": summary.imported,
		"failed":   summary.failed,
		"omitted":  summary.omitted,
	}).Info("legacy import finished")
	if summary.failed > 0 {
		return fmt.Errorf("%d of %d rows failed to import", summary.failed, summary.parsed)
	}
	return nil
}

func readShiftRows(path string) ([]excel.ShiftRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	rows, err := excel.ParseShiftRows(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rows, nil
}

type legacyRow struct {
	row    int
	record repository.LegacyShift
	patch  shift.ReadingPatch
}

// buildLegacyShifts turns parsed rows into completed shifts. Rows without a
// shift type are stored as day shifts.
func buildLegacyShifts(rows []excel.ShiftRow, defaultPump string) ([]legacyRow, error) {
	out := make([]legacyRow, 0, len(rows))
	var problems []string
	for _, row := range rows {
		pump := row.PumpID
		if pump == "" {
			pump = strings.TrimSpace(defaultPump)
		}
		if pump == "" {
			problems = append(problems, fmt.Sprintf("row %d: pump is required (use --pump)", row.Row))
			continue
		}
		if row.ClosingReading < row.OpeningReading {
			problems = append(problems, fmt.Sprintf("row %d: closing reading %.2f is below opening reading %.2f",
				row.Row, row.ClosingReading, row.OpeningReading))
			continue
		}

		shiftType := row.ShiftType
		if shiftType == "" {
			shiftType = domain.ShiftDay
		}
		end := row.EndTime
		cashRemaining := row.CashRemaining
		closing := row.ClosingReading
		card, upi, cash, testing := row.CardSales, row.UPISales, row.CashSales, row.TestingFuel

		out = append(out, legacyRow{
			row: row.Row,
			record: repository.LegacyShift{
				StaffName: row.StaffName,
				Shift: domain.Shift{
					PumpID:        pump,
					ShiftType:     shiftType,
					StartTime:     row.StartTime,
					EndTime:       &end,
					Status:        domain.StatusCompleted,
					CashGiven:     row.CashGiven,
					CashRemaining: &cashRemaining,
				},
				Reading: domain.Reading{
					Date:           row.Date,
					OpeningReading: row.OpeningReading,
					ClosingReading: &closing,
					CashGiven:      row.CashGiven,
					CashRemaining:  &cashRemaining,
					CardSales:      &card,
					UPISales:       &upi,
					CashSales:      &cash,
					TestingFuel:    &testing,
				},
			},
			patch: shift.ReadingPatch{
				IndentSales: row.IndentSales,
				Expenses:    row.Expenses,
			},
		})
	}
	if len(problems) > 0 {
		return nil, errors.New(strings.Join(problems, "\n"))
	}
	return out, nil
}

type legacyImporter interface {
	ImportLegacyShift(ctx context.Context, in repository.LegacyShift) (domain.Shift, error)
}

type readingWriter interface {
	Write(ctx context.Context, shiftID string, patch shift.ReadingPatch) (shift.WriteResult, error)
}

// importAll stores rows one at a time so a bad row does not discard the rest.
func importAll(
	ctx context.Context,
	repo legacyImporter,
	readings readingWriter,
	rows []legacyRow,
	logger logrus.FieldLogger,
) importSummary {
	var summary importSummary
	for _, row := range rows {
		created, err := repo.ImportLegacyShift(ctx, row.record)
		if err != nil {
			summary.failed++
			logging.LogError(logger, "import_legacy", "importAll", fmt.Sprintf("row %d", row.row), row.record.StaffName, err)
			continue
		}
		summary.imported++
		metrics.ShiftsStarted.WithLabelValues("import").Inc()

		if row.patch.IndentSales == nil && row.patch.Expenses == nil {
			continue
		}
		result, err := readings.Write(ctx, created.ID, row.patch)
		if err != nil {
			logging.LogWarning(logger, "import_legacy", "importAll", "write optional reading fields", created.ID, err)
			continue
		}
		summary.omitted += len(result.Omitted)
	}
	return summary
}
