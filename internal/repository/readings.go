package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fuelstation/internal/domain"
	"fuelstation/internal/shift"

	"github.com/jackc/pgx/v5"
)

var readingOptionalColumns = []string{
	shift.ColumnIndentSales,
	shift.ColumnExpenses,
	shift.ColumnConsumableExpenses,
}

func (r *Repository) GetReading(ctx context.Context, shiftID string) (*domain.Reading, error) {
	columns, err := r.readingColumnSet(ctx)
	if err != nil {
		return nil, err
	}

	var scan readingScan
	err = r.pool.QueryRow(ctx, `
		SELECT `+readingSelectList("rd", columns)+`
		FROM readings rd
		WHERE rd.shift_id = $1
	`, shiftID).Scan(scan.dest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reading %s: %w", shiftID, err)
	}
	return scan.reading(), nil
}

// InsertReading writes the columns every schema generation carries. Optional
// columns are filled later through UpdateReading.
func (r *Repository) InsertReading(ctx context.Context, reading domain.Reading) error {
	return insertReading(ctx, r.pool, reading)
}

func (r *Repository) UpdateReading(ctx context.Context, shiftID string, patch shift.ReadingPatch) error {
	sets := make([]string, 0, 9)
	args := []any{shiftID}
	argIndex := 2
	add := func(column string, value *float64) {
		if value == nil {
			return
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, *value)
		argIndex++
	}
	add("closing_reading", patch.ClosingReading)
	add("cash_remaining", patch.CashRemaining)
	add("card_sales", patch.CardSales)
	add("upi_sales", patch.UPISales)
	add("cash_sales", patch.CashSales)
	add("testing_fuel", patch.TestingFuel)
	add(shift.ColumnIndentSales, patch.IndentSales)
	add(shift.ColumnExpenses, patch.Expenses)
	add(shift.ColumnConsumableExpenses, patch.ConsumableExpenses)
	if len(sets) == 0 {
		return nil
	}

	cmd, err := r.pool.Exec(ctx,
		"UPDATE readings SET "+strings.Join(sets, ", ")+" WHERE shift_id = $1",
		args...,
	)
	if err != nil {
		return fmt.Errorf("update reading %s: %w", shiftID, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListReadingColumns reports the columns of the readings table. Every stored
// reading shares the table layout, so shiftID only scopes the call.
func (r *Repository) ListReadingColumns(ctx context.Context, shiftID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = current_schema()
		  AND table_name = 'readings'
		ORDER BY ordinal_position
	`)
	if err != nil {
		return nil, fmt.Errorf("list reading columns for %s: %w", shiftID, err)
	}
	columns, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect reading columns for %s: %w", shiftID, err)
	}
	return columns, nil
}

func (r *Repository) readingColumnSet(ctx context.Context) (map[string]struct{}, error) {
	columns, err := r.ListReadingColumns(ctx, "")
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(columns))
	for _, column := range columns {
		set[column] = struct{}{}
	}
	return set, nil
}

// readingSelectList selects the reading columns in scan order. Optional
// columns missing from the schema are selected as NULL.
func readingSelectList(alias string, columns map[string]struct{}) string {
	fields := []string{
		alias + ".shift_id",
		alias + ".staff_id",
		alias + ".pump_id",
		alias + ".date",
		alias + ".opening_reading::double precision",
		alias + ".closing_reading::double precision",
		alias + ".cash_given::double precision",
		alias + ".cash_remaining::double precision",
		alias + ".card_sales::double precision",
		alias + ".upi_sales::double precision",
		alias + ".cash_sales::double precision",
		alias + ".testing_fuel::double precision",
	}
	for _, column := range readingOptionalColumns {
		if _, ok := columns[column]; ok {
			fields = append(fields, alias+"."+column+"::double precision")
		} else {
			fields = append(fields, "NULL::double precision")
		}
	}
	return strings.Join(fields, ",\n\t\t\t")
}

func insertReading(ctx context.Context, q queryRower, reading domain.Reading) error {
	var shiftID string
	err := q.QueryRow(ctx, `
		INSERT INTO readings (
			shift_id,
			staff_id,
			pump_id,
			date,
			opening_reading,
			closing_reading,
			cash_given,
			cash_remaining,
			card_sales,
			upi_sales,
			cash_sales,
			testing_fuel
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING shift_id
	`,
		reading.ShiftID,
		reading.StaffID,
		reading.PumpID,
		reading.Date,
		reading.OpeningReading,
		reading.ClosingReading,
		reading.CashGiven,
		reading.CashRemaining,
		reading.CardSales,
		reading.UPISales,
		reading.CashSales,
		reading.TestingFuel,
	).Scan(&shiftID)
	if err != nil {
		return fmt.Errorf("insert reading %s: %w", reading.ShiftID, err)
	}
	return nil
}

// readingScan holds nullable intermediates so a reading can be scanned from
// a LEFT JOIN where the whole row may be absent.
type readingScan struct {
	shiftID            sql.NullString
	staffID            sql.NullString
	pumpID             sql.NullString
	date               sql.NullTime
	opening            sql.NullFloat64
	closing            sql.NullFloat64
	cashGiven          sql.NullFloat64
	cashRemaining      sql.NullFloat64
	cardSales          sql.NullFloat64
	upiSales           sql.NullFloat64
	cashSales          sql.NullFloat64
	testingFuel        sql.NullFloat64
	indentSales        sql.NullFloat64
	expenses           sql.NullFloat64
	consumableExpenses sql.NullFloat64
}

func (s *readingScan) dest() []any {
	return []any{
		&s.shiftID,
		&s.staffID,
		&s.pumpID,
		&s.date,
		&s.opening,
		&s.closing,
		&s.cashGiven,
		&s.cashRemaining,
		&s.cardSales,
		&s.upiSales,
		&s.cashSales,
		&s.testingFuel,
		&s.indentSales,
		&s.expenses,
		&s.consumableExpenses,
	}
}

func (s *readingScan) reading() *domain.Reading {
	if !s.shiftID.Valid {
		return nil
	}
	reading := &domain.Reading{
		ShiftID:            s.shiftID.String,
		StaffID:            s.staffID.String,
		PumpID:             s.pumpID.String,
		OpeningReading:     s.opening.Float64,
		CashGiven:          s.cashGiven.Float64,
		ClosingReading:     nullFloat(s.closing),
		CashRemaining:      nullFloat(s.cashRemaining),
		CardSales:          nullFloat(s.cardSales),
		UPISales:           nullFloat(s.upiSales),
		CashSales:          nullFloat(s.cashSales),
		TestingFuel:        nullFloat(s.testingFuel),
		IndentSales:        nullFloat(s.indentSales),
		Expenses:           nullFloat(s.expenses),
		ConsumableExpenses: nullFloat(s.consumableExpenses),
	}
	if s.date.Valid {
		reading.Date = s.date.Time
	}
	return reading
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	value := v.Float64
	return &value
}
