package shift_test

import (
	"context"
	"errors"
	"testing"

	"fuelstation/internal/domain"
	"fuelstation/internal/shift"
	"fuelstation/internal/shift/mocks"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingAdapter_Write(t *testing.T) {
	tests := []struct {
		name        string
		columns     []string
		patch       shift.ReadingPatch
		wantPatch   shift.ReadingPatch
		wantOmitted []string
	}{
		{
			name:        "all columns present",
			columns:     allColumns,
			patch:       shift.ReadingPatch{ClosingReading: f(10), IndentSales: f(5), Expenses: f(1)},
			wantPatch:   shift.ReadingPatch{ClosingReading: f(10), IndentSales: f(5), Expenses: f(1)},
			wantOmitted: nil,
		},
		{
			name:        "legacy record without indent sales",
			columns:     legacyColumns,
			patch:       shift.ReadingPatch{ClosingReading: f(10), IndentSales: f(5), Expenses: f(1)},
			wantPatch:   shift.ReadingPatch{ClosingReading: f(10), Expenses: f(1)},
			wantOmitted: []string{shift.ColumnIndentSales},
		},
		{
			name:        "record with base columns only",
			columns:     []string{"shift_id", "closing_reading"},
			patch:       shift.ReadingPatch{ClosingReading: f(10), IndentSales: f(5), Expenses: f(1), ConsumableExpenses: f(3)},
			wantPatch:   shift.ReadingPatch{ClosingReading: f(10)},
			wantOmitted: []string{shift.ColumnIndentSales, shift.ColumnExpenses, shift.ColumnConsumableExpenses},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := mocks.NewMockShiftStore(ctrl)
			store.EXPECT().ListReadingColumns(gomock.Any(), "S1").Return(tt.columns, nil)
			store.EXPECT().UpdateReading(gomock.Any(), "S1", tt.wantPatch).Return(nil)

			logger, _ := test.NewNullLogger()
			result, err := shift.NewReadingAdapter(store, logger).Write(context.Background(), "S1", tt.patch)

			require.NoError(t, err)
			assert.Equal(t, tt.wantOmitted, result.Omitted)
		})
	}
}

func TestReadingAdapter_Write_SkipsProbeForBaseFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockShiftStore(ctrl)
	patch := shift.ReadingPatch{ClosingReading: f(10), CashSales: f(2)}
	store.EXPECT().UpdateReading(gomock.Any(), "S1", patch).Return(nil)

	logger, _ := test.NewNullLogger()
	result, err := shift.NewReadingAdapter(store, logger).Write(context.Background(), "S1", patch)

	require.NoError(t, err)
	assert.Empty(t, result.Omitted)
}

func TestReadingAdapter_Write_Errors(t *testing.T) {
	t.Run("column lookup fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := mocks.NewMockShiftStore(ctrl)
		store.EXPECT().ListReadingColumns(gomock.Any(), "S1").Return(nil, errors.New("timeout"))

		logger, _ := test.NewNullLogger()
		_, err := shift.NewReadingAdapter(store, logger).Write(context.Background(), "S1", shift.ReadingPatch{IndentSales: f(1)})

		var perr *domain.PersistenceError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "list reading columns", perr.Op)
	})

	t.Run("update fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := mocks.NewMockShiftStore(ctrl)
		store.EXPECT().UpdateReading(gomock.Any(), "S1", gomock.Any()).Return(errors.New("timeout"))

		logger, _ := test.NewNullLogger()
		_, err := shift.NewReadingAdapter(store, logger).Write(context.Background(), "S1", shift.ReadingPatch{ClosingReading: f(1)})

		assert.ErrorIs(t, err, domain.ErrPersistence)
	})
}

func TestReadingAdapter_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockShiftStore(ctrl)
	store.EXPECT().GetReading(gomock.Any(), "S1").Return(openReading("S1", 1000), nil)
	store.EXPECT().GetReading(gomock.Any(), "S2").Return(nil, domain.ErrNotFound)

	logger, _ := test.NewNullLogger()
	adapter := shift.NewReadingAdapter(store, logger)

	reading, err := adapter.Load(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, reading.OpeningReading)

	_, err = adapter.Load(context.Background(), "S2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
