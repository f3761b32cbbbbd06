package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fuelstation/internal/domain"
	"fuelstation/internal/logging"
	"fuelstation/internal/metrics"
	"fuelstation/internal/reconcile"
	"fuelstation/internal/shift"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type DialogMode string

const (
	// DialogEnd closes an active shift.
	DialogEnd DialogMode = "end"
	// DialogEdit corrects the figures of a completed shift.
	DialogEdit DialogMode = "edit"
)

var (
	ErrDialogNotFound = fmt.Errorf("end dialog %w", domain.ErrNotFound)
	ErrDialogBusy     = fmt.Errorf("end dialog is already being confirmed: %w", domain.ErrInvalidState)
)

// EndDialog is the state shown when the end-shift dialog opens. The unit
// price is read once here and reused by every preview and the confirm.
type EndDialog struct {
	Token         string                        `json:"token"`
	Mode          DialogMode                    `json:"mode"`
	Shift         domain.Shift                  `json:"shift"`
	Reading       domain.Reading                `json:"reading"`
	Form          domain.ClosureForm            `json:"form"`
	Summary       domain.ReconciliationSummary  `json:"summary"`
	FuelType      string                        `json:"fuel_type"`
	UnitPrice     float64                       `json:"unit_price"`
	NextShiftType domain.ShiftType              `json:"next_shift_type,omitempty"`
	Staff         []domain.Staff                `json:"staff"`
	Consumables   []domain.ConsumableAllocation `json:"consumables,omitempty"`
	Warnings      []string                      `json:"warnings"`
	ExpiresAt     time.Time                     `json:"expires_at"`
}

type ConfirmResult struct {
	domain.EndShiftResult
	Summary  domain.ReconciliationSummary `json:"summary"`
	Warnings []string                     `json:"warnings"`
}

type session struct {
	dialog    EndDialog
	busy      bool
	expiresAt time.Time
}

// OpenEndShift opens a dialog for shiftID. Active shifts get the end mode with
// indent sales prefilled from the ledger; completed shifts get the edit mode
// prefilled from the stored reading. Pricing, staff and ledger failures only
// add warnings.
func (s *Service) OpenEndShift(ctx context.Context, shiftID string) (EndDialog, error) {
	current, err := s.store.GetShift(ctx, shiftID)
	if err != nil {
		return EndDialog{}, &domain.PersistenceError{Op: "get shift", Err: err}
	}
	reading, err := s.machine.Readings().Load(ctx, shiftID)
	if err != nil {
		return EndDialog{}, err
	}

	dialog := EndDialog{
		Token:    uuid.NewString(),
		Shift:    *current,
		Reading:  *reading,
		Warnings: []string{},
		Staff:    []domain.Staff{},
	}

	switch current.Status {
	case domain.StatusActive:
		dialog.Mode = DialogEnd
		dialog.NextShiftType = shift.NextShiftType(current.ShiftType)
		dialog.Form = domain.ClosureForm{Mode: domain.ModeEndOnly}
		indent, warning := s.aggregator.Total(ctx, current.StaffID, current.StartTime, nil)
		if warning != nil {
			dialog.Warnings = append(dialog.Warnings, "indent sales could not be loaded, enter them manually")
		}
		dialog.Form.IndentSales = indent
	case domain.StatusCompleted:
		dialog.Mode = DialogEdit
		dialog.Form = formFromReading(*reading)
	default:
		return EndDialog{}, &domain.InvalidStateError{ShiftID: shiftID, Status: current.Status, Expected: domain.StatusActive}
	}

	dialog.FuelType, dialog.UnitPrice = s.priceSnapshot(ctx, current.PumpID, &dialog.Warnings)

	if staff, err := s.staff.ListStaff(ctx); err != nil {
		logging.LogWarning(s.logger, "service", "OpenEndShift", "list staff", shiftID, err)
		dialog.Warnings = append(dialog.Warnings, "staff list could not be loaded")
	} else if staff != nil {
		dialog.Staff = staff
	}

	if s.consumables != nil && dialog.Mode == DialogEnd {
		allocations, err := s.consumables.ListAllocatedConsumables(ctx, shiftID)
		if err != nil {
			logging.LogWarning(s.logger, "service", "OpenEndShift", "list consumables", shiftID, err)
			dialog.Warnings = append(dialog.Warnings, "consumables could not be loaded")
		} else {
			dialog.Consumables = allocations
		}
	}

	dialog.Summary = reconcile.Calculate(reconcile.FromForm(reading.OpeningReading, dialog.Form, dialog.UnitPrice))

	s.mu.Lock()
	s.expireLocked()
	dialog.ExpiresAt = s.now().Add(s.opts.DialogTTL)
	s.sessions[dialog.Token] = &session{dialog: dialog, expiresAt: dialog.ExpiresAt}
	metrics.OpenDialogs.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	return dialog, nil
}

// Preview recomputes the summary for form with the dialog's price snapshot.
func (s *Service) Preview(token string, form domain.ClosureForm) (domain.ReconciliationSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(token)
	if err != nil {
		return domain.ReconciliationSummary{}, err
	}
	return summarize(sess.dialog, form), nil
}

// Confirm commits form for the dialog. A second confirm while the first is
// running is rejected. The dialog stays open on failure so the form can be
// corrected and resubmitted, except after a partial completion, when the
// shift is already ended.
func (s *Service) Confirm(ctx context.Context, token string, form domain.ClosureForm) (ConfirmResult, error) {
	s.mu.Lock()
	sess, err := s.lookupLocked(token)
	if err == nil && sess.busy {
		err = ErrDialogBusy
	}
	if err != nil {
		s.mu.Unlock()
		return ConfirmResult{}, err
	}
	sess.busy = true
	dialog := sess.dialog
	s.mu.Unlock()

	var result domain.EndShiftResult
	if dialog.Mode == DialogEdit {
		result, err = s.machine.EditCompletedShift(ctx, dialog.Shift.ID, form)
	} else if err = s.checkSuccessor(ctx, dialog.Shift, form); err == nil {
		// checked before the current shift is completed
		result, err = s.machine.EndShift(ctx, dialog.Shift.ID, form)
	}

	var partial *domain.PartialCompletionError
	closeSession := err == nil || errors.As(err, &partial)

	s.mu.Lock()
	if closeSession {
		delete(s.sessions, token)
	} else {
		sess.busy = false
	}
	metrics.OpenDialogs.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	if err != nil {
		return ConfirmResult{EndShiftResult: result}, err
	}

	out := ConfirmResult{
		EndShiftResult: result,
		Summary:        summarize(dialog, form),
		Warnings:       []string{},
	}
	for _, field := range result.Omitted {
		out.Warnings = append(out.Warnings, field+" was not saved: the stored reading predates this field")
	}
	s.logger.WithFields(logrus.Fields{
		"module":   "service",
		"shift_id": dialog.Shift.ID,
		"mode":     dialog.Mode,
	}).Info("end dialog confirmed")
	return out, nil
}

func (s *Service) checkSuccessor(ctx context.Context, current domain.Shift, form domain.ClosureForm) error {
	if form.Mode != domain.ModeEndAndStart || form.Successor == nil {
		return nil
	}
	staffID := strings.TrimSpace(form.Successor.StaffID)
	if staffID == current.StaffID {
		return nil
	}
	return s.checkNoActiveShift(ctx, staffID, "successor.staff_id")
}

// Cancel discards the dialog. Cancelling an unknown dialog is not an error.
func (s *Service) Cancel(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	metrics.OpenDialogs.Set(float64(len(s.sessions)))
}

func (s *Service) priceSnapshot(ctx context.Context, pumpID string, warnings *[]string) (string, float64) {
	fuelType := s.opts.DefaultFuelType
	pumpFuel, err := s.prices.PumpFuelType(ctx, pumpID)
	switch {
	case err == nil && pumpFuel != "":
		fuelType = pumpFuel
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		logging.LogWarning(s.logger, "service", "priceSnapshot", "pump fuel type", pumpID, err)
	}

	price, err := s.prices.GetCurrentUnitPrice(ctx, fuelType)
	if err != nil {
		logging.LogWarning(s.logger, "service", "priceSnapshot", "current unit price", fuelType, err)
		*warnings = append(*warnings, "fuel price for "+fuelType+" is unavailable, expected sales shows 0")
		return fuelType, 0
	}
	return fuelType, price
}

func (s *Service) lookupLocked(token string) (*session, error) {
	s.expireLocked()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrDialogNotFound
	}
	return sess, nil
}

// expireLocked drops sessions past their deadline. Busy sessions are kept
// until their confirm returns.
func (s *Service) expireLocked() {
	now := s.now()
	for token, sess := range s.sessions {
		if !sess.busy && now.After(sess.expiresAt) {
			delete(s.sessions, token)
		}
	}
	metrics.OpenDialogs.Set(float64(len(s.sessions)))
}

func (s *Service) dropSessionsFor(shiftID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, sess := range s.sessions {
		if sess.dialog.Shift.ID == shiftID && !sess.busy {
			delete(s.sessions, token)
		}
	}
	metrics.OpenDialogs.Set(float64(len(s.sessions)))
}

func summarize(dialog EndDialog, form domain.ClosureForm) domain.ReconciliationSummary {
	return reconcile.Calculate(reconcile.FromForm(dialog.Reading.OpeningReading, form, dialog.UnitPrice))
}

func formFromReading(reading domain.Reading) domain.ClosureForm {
	value := func(v *float64) float64 {
		if v == nil {
			return 0
		}
		return *v
	}
	return domain.ClosureForm{
		ClosingReading: value(reading.ClosingReading),
		CashRemaining:  value(reading.CashRemaining),
		CardSales:      value(reading.CardSales),
		UPISales:       value(reading.UPISales),
		CashSales:      value(reading.CashSales),
		IndentSales:    value(reading.IndentSales),
		Expenses:       value(reading.Expenses),
		TestingFuel:    value(reading.TestingFuel),
	}
}
