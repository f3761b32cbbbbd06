package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"fuelstation/internal/domain"
	"fuelstation/internal/excel"
	"fuelstation/internal/repository"
	"fuelstation/internal/shift"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func sampleRow(n int, staff string) excel.ShiftRow {
	return excel.ShiftRow{
		Row:            n,
		StaffName:      staff,
		PumpID:         "P1",
		ShiftType:      domain.ShiftMorning,
		Date:           time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC),
		StartTime:      time.Date(2024, 11, 3, 6, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2024, 11, 3, 14, 0, 0, 0, time.UTC),
		OpeningReading: 1000,
		ClosingReading: 1200,
		CashGiven:      500,
		CashRemaining:  300,
		CashSales:      18000,
	}
}

func TestBuildLegacyShifts(t *testing.T) {
	row := sampleRow(2, "Ravi")
	row.PumpID = ""
	row.ShiftType = ""
	row.IndentSales = f(150)

	out, err := buildLegacyShifts([]excel.ShiftRow{row}, " P9 ")
	require.NoError(t, err)
	require.Len(t, out, 1)

	got := out[0]
	assert.Equal(t, 2, got.row)
	assert.Equal(t, "Ravi", got.record.StaffName)
	assert.Equal(t, "P9", got.record.Shift.PumpID)
	assert.Equal(t, domain.ShiftDay, got.record.Shift.ShiftType)
	assert.Equal(t, domain.StatusCompleted, got.record.Shift.Status)
	require.NotNil(t, got.record.Shift.EndTime)
	assert.Equal(t, row.EndTime, *got.record.Shift.EndTime)
	require.NotNil(t, got.record.Reading.ClosingReading)
	assert.InDelta(t, 1200, *got.record.Reading.ClosingReading, 1e-9)
	assert.InDelta(t, 18000, *got.record.Reading.CashSales, 1e-9)
	assert.Equal(t, f(150), got.patch.IndentSales)
	assert.Nil(t, got.patch.Expenses)
}

func TestBuildLegacyShifts_ReportsEveryBadRow(t *testing.T) {
	noPump := sampleRow(2, "Ravi")
	noPump.PumpID = ""
	backwards := sampleRow(3, "Meena")
	backwards.ClosingReading = 900

	_, err := buildLegacyShifts([]excel.ShiftRow{noPump, backwards}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2: pump is required")
	assert.Contains(t, err.Error(), "row 3: closing reading 900.00 is below opening reading 1000.00")
}

type fakeImporter struct {
	fail  map[string]error
	calls []repository.LegacyShift
}

func (fi *fakeImporter) ImportLegacyShift(_ context.Context, in repository.LegacyShift) (domain.Shift, error) {
	fi.calls = append(fi.calls, in)
	if err := fi.fail[in.StaffName]; err != nil {
		return domain.Shift{}, err
	}
	s := in.Shift
	s.ID = "shift-" + in.StaffName
	return s, nil
}

type fakeWriter struct {
	omitted []string
	writes  map[string]shift.ReadingPatch
}

func (fw *fakeWriter) Write(_ context.Context, shiftID string, patch shift.ReadingPatch) (shift.WriteResult, error) {
	fw.writes[shiftID] = patch
	return shift.WriteResult{Omitted: fw.omitted}, nil
}

func TestImportAll(t *testing.T) {
	logger, hook := test.NewNullLogger()

	withIndent := sampleRow(2, "Ravi")
	withIndent.IndentSales = f(150)
	withIndent.Expenses = f(40)
	rows, err := buildLegacyShifts([]excel.ShiftRow{
		withIndent,
		sampleRow(3, "Meena"),
		sampleRow(4, "Arjun"),
	}, "")
	require.NoError(t, err)

	importer := &fakeImporter{fail: map[string]error{"Meena": errors.New("connection reset")}}
	writer := &fakeWriter{omitted: []string{shift.ColumnExpenses}, writes: map[string]shift.ReadingPatch{}}

	summary := importAll(context.Background(), importer, writer, rows, logger)

	assert.Equal(t, 2, summary.imported)
	assert.Equal(t, 1, summary.failed)
	assert.Equal(t, 1, summary.omitted)
	assert.Len(t, importer.calls, 3)

	require.Len(t, writer.writes, 1)
	patch := writer.writes["shift-Ravi"]
	assert.Equal(t, f(150), patch.IndentSales)
	assert.Equal(t, f(40), patch.Expenses)

	require.NotEmpty(t, hook.AllEntries())
	assert.Contains(t, hook.LastEntry().Message, "connection reset")
}
