package shift

import (
	"context"

	"fuelstation/internal/domain"
	"fuelstation/internal/logging"
	"fuelstation/internal/metrics"

	"github.com/sirupsen/logrus"
)

const (
	ColumnIndentSales        = "indent_sales"
	ColumnExpenses           = "expenses"
	ColumnConsumableExpenses = "consumable_expenses"
)

// OptionalReadingColumns were added after the first deployment; older
// stored readings may not carry them.
var OptionalReadingColumns = []string{ColumnIndentSales, ColumnExpenses, ColumnConsumableExpenses}

type WriteResult struct {
	Omitted []string
}

// ReadingAdapter reads and writes the reading paired with a shift. Writes
// that touch optional columns first list the stored record's columns and
// drop the fields it does not expose.
type ReadingAdapter struct {
	store  ShiftStore
	logger logrus.FieldLogger
}

func NewReadingAdapter(store ShiftStore, logger logrus.FieldLogger) *ReadingAdapter {
	return &ReadingAdapter{store: store, logger: logger}
}

func (a *ReadingAdapter) Load(ctx context.Context, shiftID string) (*domain.Reading, error) {
	defer timed("get_reading")()
	reading, err := a.store.GetReading(ctx, shiftID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "get reading", Err: err}
	}
	return reading, nil
}

func (a *ReadingAdapter) Insert(ctx context.Context, reading domain.Reading) error {
	defer timed("insert_reading")()
	if err := a.store.InsertReading(ctx, reading); err != nil {
		return &domain.PersistenceError{Op: "insert reading", Err: err}
	}
	return nil
}

// Write applies patch to the reading of shiftID. Optional fields whose
// column the stored record lacks are left out of the update and reported in
// the result; the caller keeps showing the in-memory value.
func (a *ReadingAdapter) Write(ctx context.Context, shiftID string, patch ReadingPatch) (WriteResult, error) {
	var result WriteResult

	if hasOptionalFields(patch) {
		columns, err := a.readingColumns(ctx, shiftID)
		if err != nil {
			return result, &domain.PersistenceError{Op: "list reading columns", Err: err}
		}
		patch, result.Omitted = dropMissing(patch, columns)
		for _, field := range result.Omitted {
			metrics.ReadingFieldsOmitted.WithLabelValues(field).Inc()
		}
		if len(result.Omitted) > 0 {
			a.logger.WithFields(logrus.Fields{
				"module":   "shift",
				"shift_id": shiftID,
				"omitted":  result.Omitted,
			}).Info("legacy reading record, optional fields not persisted")
		}
	}

	defer timed("update_reading")()
	if err := a.store.UpdateReading(ctx, shiftID, patch); err != nil {
		logging.LogError(a.logger, "shift", "ReadingAdapter.Write", "update reading", shiftID, err)
		return result, &domain.PersistenceError{Op: "update reading", Err: err}
	}
	return result, nil
}

func (a *ReadingAdapter) readingColumns(ctx context.Context, shiftID string) (map[string]struct{}, error) {
	defer timed("list_reading_columns")()
	columns, err := a.store.ListReadingColumns(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(columns))
	for _, column := range columns {
		set[column] = struct{}{}
	}
	return set, nil
}

func hasOptionalFields(patch ReadingPatch) bool {
	return patch.IndentSales != nil || patch.Expenses != nil || patch.ConsumableExpenses != nil
}

func dropMissing(patch ReadingPatch, columns map[string]struct{}) (ReadingPatch, []string) {
	var omitted []string
	has := func(column string) bool {
		_, ok := columns[column]
		return ok
	}
	if patch.IndentSales != nil && !has(ColumnIndentSales) {
		patch.IndentSales = nil
		omitted = append(omitted, ColumnIndentSales)
	}
	if patch.Expenses != nil && !has(ColumnExpenses) {
		patch.Expenses = nil
		omitted = append(omitted, ColumnExpenses)
	}
	if patch.ConsumableExpenses != nil && !has(ColumnConsumableExpenses) {
		patch.ConsumableExpenses = nil
		omitted = append(omitted, ColumnConsumableExpenses)
	}
	return patch, omitted
}
