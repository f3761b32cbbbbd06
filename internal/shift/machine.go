// Package shift implements the shift lifecycle: starting shifts, closing
// them with reconciliation figures, editing completed shifts and chaining a
// successor shift onto an ended one.
package shift

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"fuelstation/internal/domain"
	"fuelstation/internal/logging"
	"fuelstation/internal/metrics"
	"fuelstation/internal/reconcile"

	"github.com/sirupsen/logrus"
)

type Machine struct {
	store       ShiftStore
	readings    *ReadingAdapter
	consumables ConsumableStore
	logger      logrus.FieldLogger
	now         func() time.Time
}

// NewMachine builds the state machine. consumables may be nil when the
// deployment does not track consumables.
func NewMachine(store ShiftStore, consumables ConsumableStore, logger logrus.FieldLogger) *Machine {
	return &Machine{
		store:       store,
		readings:    NewReadingAdapter(store, logger),
		consumables: consumables,
		logger:      logger,
		now:         time.Now,
	}
}

// SetClock replaces the time source used for start and end timestamps.
func (m *Machine) SetClock(now func() time.Time) { m.now = now }

func (m *Machine) Readings() *ReadingAdapter { return m.readings }

func (m *Machine) StartShift(ctx context.Context, in domain.StartShiftInput) (domain.Shift, domain.Reading, error) {
	in.StaffID = strings.TrimSpace(in.StaffID)
	in.PumpID = strings.TrimSpace(in.PumpID)
	if in.ShiftType == "" {
		in.ShiftType = domain.ShiftDay
	}
	if err := validateStart(in); err != nil {
		return domain.Shift{}, domain.Reading{}, err
	}

	now := m.now().UTC()
	if in.Date.IsZero() {
		in.Date = truncateDay(now)
	}

	shift, reading, err := m.open(ctx, domain.Shift{
		StaffID:   in.StaffID,
		PumpID:    in.PumpID,
		ShiftType: in.ShiftType,
		StartTime: now,
		Status:    domain.StatusActive,
		CashGiven: in.CashGiven,
	}, in.OpeningReading, in.Date)
	if err != nil {
		m.fail("start_shift", err)
		return domain.Shift{}, domain.Reading{}, err
	}

	metrics.ShiftsStarted.WithLabelValues("direct").Inc()
	return shift, reading, nil
}

// ValidateClosure checks a closure form against the shift it closes. Active
// shifts need a closing reading above the opening reading; completed shifts
// being edited only need a positive one, since the opening value is
// historical.
func ValidateClosure(shift domain.Shift, opening float64, form domain.ClosureForm) error {
	switch shift.Status {
	case domain.StatusActive:
		if form.ClosingReading <= opening {
			return domain.NewValidationError("closing_reading", "closing reading must be greater than opening reading")
		}
	case domain.StatusCompleted:
		if form.ClosingReading <= 0 {
			return domain.NewValidationError("closing_reading", "please enter a valid closing reading")
		}
	default:
		return domain.NewValidationError("status", "unknown shift status "+string(shift.Status))
	}
	if math.IsNaN(form.ClosingReading) || math.IsInf(form.ClosingReading, 0) {
		return domain.NewValidationError("closing_reading", "please enter a valid closing reading")
	}

	amounts := []struct {
		field string
		value float64
	}{
		{"cash_remaining", form.CashRemaining},
		{"card_sales", form.CardSales},
		{"upi_sales", form.UPISales},
		{"cash_sales", form.CashSales},
		{"indent_sales", form.IndentSales},
		{"expenses", form.Expenses},
		{"testing_fuel", form.TestingFuel},
	}
	for _, amount := range amounts {
		if amount.value < 0 || math.IsNaN(amount.value) || math.IsInf(amount.value, 0) {
			return domain.NewValidationError(amount.field, "must be a non-negative number")
		}
	}

	if shift.Status != domain.StatusActive {
		return nil
	}
	switch form.Mode {
	case "", domain.ModeEndOnly:
	case domain.ModeEndAndStart:
		if form.Successor == nil || strings.TrimSpace(form.Successor.StaffID) == "" {
			return domain.NewValidationError("successor.staff_id", "please select a staff member for the new shift")
		}
		if form.Successor.CashGiven < 0 {
			return domain.NewValidationError("successor.cash_given", "must be a non-negative number")
		}
	default:
		return domain.NewValidationError("mode", "unknown end mode "+string(form.Mode))
	}
	return nil
}

// EndShift closes an active shift, writes its reconciliation figures and,
// in end-and-start mode, starts the successor. A shift that is not active
// is rejected before any write.
func (m *Machine) EndShift(ctx context.Context, shiftID string, form domain.ClosureForm) (domain.EndShiftResult, error) {
	var result domain.EndShiftResult

	current, err := m.getShift(ctx, shiftID)
	if err != nil {
		return result, err
	}
	if current.Status != domain.StatusActive {
		err := &domain.InvalidStateError{ShiftID: shiftID, Status: current.Status, Expected: domain.StatusActive}
		m.fail("end_shift", err)
		return result, err
	}

	reading, err := m.readings.Load(ctx, shiftID)
	if err != nil {
		m.fail("end_shift", err)
		return result, err
	}
	if err := ValidateClosure(*current, reading.OpeningReading, form); err != nil {
		return result, err
	}

	var consumablesExpense *float64
	if m.consumables != nil {
		allocations, err := m.consumables.ListAllocatedConsumables(ctx, shiftID)
		if err != nil {
			err = &domain.PersistenceError{Op: "list allocated consumables", Err: err}
			m.fail("end_shift", err)
			return result, err
		}
		if len(allocations) > 0 {
			expense := reconcile.ConsumablesExpense(allocations, form.ConsumableReturns)
			consumablesExpense = &expense
		}
	}

	endTime := m.now().UTC()
	done := timed("complete_shift")
	completed, err := m.store.CompleteShift(ctx, shiftID, endTime, form.CashRemaining)
	done()
	if err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			err = &domain.InvalidStateError{ShiftID: shiftID, Status: domain.StatusCompleted, Expected: domain.StatusActive}
		} else {
			err = &domain.PersistenceError{Op: "complete shift", Err: err}
		}
		m.fail("end_shift", err)
		return result, err
	}
	result.Shift = completed

	patch := patchFromForm(form)
	patch.ConsumableExpenses = consumablesExpense
	written, err := m.readings.Write(ctx, shiftID, patch)
	if err != nil {
		logging.LogError(m.logger, "shift", "Machine.EndShift", "shift completed, reading not written", shiftID, err)
		m.fail("end_shift", err)
		return result, &domain.PartialCompletionError{EndedShiftID: shiftID, Err: err}
	}
	result.Omitted = written.Omitted
	result.Reading = applyForm(*reading, form, consumablesExpense)

	if m.consumables != nil && len(form.ConsumableReturns) > 0 {
		if err := m.consumables.ReturnConsumables(ctx, shiftID, form.ConsumableReturns); err != nil {
			logging.LogError(m.logger, "shift", "Machine.EndShift", "return consumables", form.ConsumableReturns, err)
		}
	}

	mode := form.Mode
	if mode == "" {
		mode = domain.ModeEndOnly
	}
	metrics.ShiftsEnded.WithLabelValues(string(mode)).Inc()

	if mode == domain.ModeEndAndStart {
		successor, _, err := m.SpawnSuccessor(ctx, completed, result.Reading, *form.Successor)
		if err != nil {
			logging.LogError(m.logger, "shift", "Machine.EndShift", "shift completed, successor not started", shiftID, err)
			return result, &domain.PartialCompletionError{EndedShiftID: shiftID, Err: err}
		}
		result.Successor = &successor
	}

	return result, nil
}

// EditCompletedShift rewrites the reading figures of a completed shift. Status
// and end time are left untouched.
func (m *Machine) EditCompletedShift(ctx context.Context, shiftID string, form domain.ClosureForm) (domain.EndShiftResult, error) {
	var result domain.EndShiftResult

	current, err := m.getShift(ctx, shiftID)
	if err != nil {
		return result, err
	}
	if current.Status != domain.StatusCompleted {
		err := &domain.InvalidStateError{ShiftID: shiftID, Status: current.Status, Expected: domain.StatusCompleted}
		m.fail("edit_completed_shift", err)
		return result, err
	}

	reading, err := m.readings.Load(ctx, shiftID)
	if err != nil {
		m.fail("edit_completed_shift", err)
		return result, err
	}
	if err := ValidateClosure(*current, reading.OpeningReading, form); err != nil {
		return result, err
	}

	written, err := m.readings.Write(ctx, shiftID, patchFromForm(form))
	if err != nil {
		m.fail("edit_completed_shift", err)
		return result, err
	}

	metrics.CompletedShiftEdits.Inc()
	result.Shift = *current
	result.Reading = applyForm(*reading, form, reading.ConsumableExpenses)
	result.Omitted = written.Omitted
	return result, nil
}

// SpawnSuccessor starts the shift that follows ended on the same pump. The
// shift type follows the rotation table and the opening reading carries over
// the ended shift's closing reading.
func (m *Machine) SpawnSuccessor(
	ctx context.Context,
	ended domain.Shift,
	endedReading domain.Reading,
	in domain.SuccessorInput,
) (domain.Shift, domain.Reading, error) {
	staffID := strings.TrimSpace(in.StaffID)
	if staffID == "" {
		return domain.Shift{}, domain.Reading{}, domain.NewValidationError("successor.staff_id", "please select a staff member for the new shift")
	}
	if ended.Status != domain.StatusCompleted || ended.EndTime == nil {
		return domain.Shift{}, domain.Reading{}, &domain.InvalidStateError{ShiftID: ended.ID, Status: ended.Status, Expected: domain.StatusCompleted}
	}
	if endedReading.ClosingReading == nil {
		return domain.Shift{}, domain.Reading{}, domain.NewValidationError("closing_reading", "ended shift has no closing reading")
	}

	date := in.Date
	if date.IsZero() {
		date = truncateDay(*ended.EndTime)
	}

	successor, reading, err := m.open(ctx, domain.Shift{
		StaffID:   staffID,
		PumpID:    ended.PumpID,
		ShiftType: NextShiftType(ended.ShiftType),
		StartTime: *ended.EndTime,
		Status:    domain.StatusActive,
		CashGiven: in.CashGiven,
	}, *endedReading.ClosingReading, date)
	if err != nil {
		m.fail("spawn_successor", err)
		return domain.Shift{}, domain.Reading{}, err
	}

	metrics.ShiftsStarted.WithLabelValues("successor").Inc()
	return successor, reading, nil
}

func (m *Machine) DeleteShift(ctx context.Context, shiftID string) error {
	defer timed("delete_shift")()
	if err := m.store.DeleteShift(ctx, shiftID); err != nil {
		err = &domain.PersistenceError{Op: "delete shift", Err: err}
		m.fail("delete_shift", err)
		return err
	}
	return nil
}

// open inserts a shift and its paired reading. If the reading insert fails
// the shift row is removed again so no shift is left without a reading.
func (m *Machine) open(ctx context.Context, shift domain.Shift, opening float64, date time.Time) (domain.Shift, domain.Reading, error) {
	done := timed("insert_shift")
	created, err := m.store.InsertShift(ctx, shift)
	done()
	if err != nil {
		return domain.Shift{}, domain.Reading{}, &domain.PersistenceError{Op: "insert shift", Err: err}
	}

	reading := domain.Reading{
		ShiftID:        created.ID,
		StaffID:        created.StaffID,
		PumpID:         created.PumpID,
		Date:           date,
		OpeningReading: opening,
		CashGiven:      created.CashGiven,
	}
	if err := m.readings.Insert(ctx, reading); err != nil {
		if delErr := m.store.DeleteShift(ctx, created.ID); delErr != nil {
			logging.LogError(m.logger, "shift", "Machine.open", "remove shift without reading", created.ID, delErr)
		}
		return domain.Shift{}, domain.Reading{}, err
	}
	return created, reading, nil
}

func (m *Machine) getShift(ctx context.Context, shiftID string) (*domain.Shift, error) {
	defer timed("get_shift")()
	current, err := m.store.GetShift(ctx, shiftID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "get shift", Err: err}
	}
	return current, nil
}

func (m *Machine) fail(operation string, err error) {
	metrics.OperationFailures.WithLabelValues(operation, errorKind(err)).Inc()
}

func validateStart(in domain.StartShiftInput) error {
	if in.StaffID == "" {
		return domain.NewValidationError("staff_id", "staff member is required")
	}
	if in.PumpID == "" {
		return domain.NewValidationError("pump_id", "pump is required")
	}
	if !in.ShiftType.Valid() {
		return domain.NewValidationError("shift_type", "unknown shift type "+string(in.ShiftType))
	}
	if in.OpeningReading <= 0 || math.IsNaN(in.OpeningReading) || math.IsInf(in.OpeningReading, 0) {
		return domain.NewValidationError("opening_reading", "opening reading is required")
	}
	if in.CashGiven < 0 {
		return domain.NewValidationError("cash_given", "must be a non-negative number")
	}
	return nil
}

func patchFromForm(form domain.ClosureForm) ReadingPatch {
	return ReadingPatch{
		ClosingReading: ptr(form.ClosingReading),
		CashRemaining:  ptr(form.CashRemaining),
		CardSales:      ptr(form.CardSales),
		UPISales:       ptr(form.UPISales),
		CashSales:      ptr(form.CashSales),
		TestingFuel:    ptr(form.TestingFuel),
		IndentSales:    ptr(form.IndentSales),
		Expenses:       ptr(form.Expenses),
	}
}

func applyForm(reading domain.Reading, form domain.ClosureForm, consumablesExpense *float64) domain.Reading {
	reading.ClosingReading = ptr(form.ClosingReading)
	reading.CashRemaining = ptr(form.CashRemaining)
	reading.CardSales = ptr(form.CardSales)
	reading.UPISales = ptr(form.UPISales)
	reading.CashSales = ptr(form.CashSales)
	reading.TestingFuel = ptr(form.TestingFuel)
	reading.IndentSales = ptr(form.IndentSales)
	reading.Expenses = ptr(form.Expenses)
	reading.ConsumableExpenses = consumablesExpense
	return reading
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrPersistence):
		return "persistence"
	default:
		return "other"
	}
}

func timed(operation string) func() {
	start := time.Now()
	return func() {
		metrics.StoreLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

func truncateDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}

func ptr(v float64) *float64 { return &v }
