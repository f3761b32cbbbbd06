// Package service is the entry point used by the HTTP layer: it lists and
// starts shifts, runs the end-of-shift dialog and deletes shifts.
package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"fuelstation/internal/domain"
	"fuelstation/internal/logging"
	"fuelstation/internal/shift"

	"github.com/sirupsen/logrus"
)

type Deps struct {
	Store       shift.ShiftStore
	Ledger      shift.SaleLedger
	Prices      shift.PriceSource
	Staff       shift.StaffDirectory
	Consumables shift.ConsumableStore
	Logger      logrus.FieldLogger
}

type Options struct {
	DefaultFuelType string
	DialogTTL       time.Duration
}

type Service struct {
	store       shift.ShiftStore
	prices      shift.PriceSource
	staff       shift.StaffDirectory
	consumables shift.ConsumableStore
	machine     *shift.Machine
	aggregator  *shift.IndentAggregator
	logger      logrus.FieldLogger
	opts        Options
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func New(deps Deps, opts Options) *Service {
	if opts.DefaultFuelType == "" {
		opts.DefaultFuelType = "petrol"
	}
	if opts.DialogTTL <= 0 {
		opts.DialogTTL = 30 * time.Minute
	}
	return &Service{
		store:       deps.Store,
		prices:      deps.Prices,
		staff:       deps.Staff,
		consumables: deps.Consumables,
		machine:     shift.NewMachine(deps.Store, deps.Consumables, deps.Logger),
		aggregator:  shift.NewIndentAggregator(deps.Ledger, deps.Logger),
		logger:      deps.Logger,
		opts:        opts,
		now:         time.Now,
		sessions:    map[string]*session{},
	}
}

// SetClock replaces the time source for shift timestamps, indent windows and
// dialog expiry.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
	s.machine.SetClock(now)
	s.aggregator.SetClock(now)
}

func (s *Service) ListShifts(ctx context.Context, status string, limit, offset int) ([]domain.ShiftWithReading, error) {
	st := domain.ShiftStatus(strings.TrimSpace(status))
	if st != "" && st != domain.StatusActive && st != domain.StatusCompleted {
		return nil, domain.NewValidationError("status", "status must be active or completed")
	}
	items, err := s.store.ListShifts(ctx, shift.ShiftFilter{Status: st, Limit: limit, Offset: offset})
	if err != nil {
		logging.LogError(s.logger, "service", "ListShifts", "list shifts", status, err)
		return nil, &domain.PersistenceError{Op: "list shifts", Err: err}
	}
	return items, nil
}

type StartResult struct {
	Shift   domain.Shift   `json:"shift"`
	Reading domain.Reading `json:"reading"`
}

// StartShift opens a shift for a staff member who has no active shift.
func (s *Service) StartShift(ctx context.Context, in domain.StartShiftInput) (StartResult, error) {
	if err := s.checkNoActiveShift(ctx, strings.TrimSpace(in.StaffID), "staff_id"); err != nil {
		return StartResult{}, err
	}

	created, reading, err := s.machine.StartShift(ctx, in)
	if err != nil {
		return StartResult{}, err
	}
	s.logger.WithFields(logrus.Fields{
		"module":   "service",
		"shift_id": created.ID,
		"staff_id": created.StaffID,
		"pump_id":  created.PumpID,
	}).Info("shift started")
	return StartResult{Shift: created, Reading: reading}, nil
}

// checkNoActiveShift rejects staffID when it already runs an active shift.
// A blank staffID is left to the form validation.
func (s *Service) checkNoActiveShift(ctx context.Context, staffID, field string) error {
	if staffID == "" {
		return nil
	}
	active, err := s.store.FindActiveShiftByStaff(ctx, staffID)
	switch {
	case err == nil && active != nil:
		return domain.NewValidationError(field, "staff member already has an active shift")
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return &domain.PersistenceError{Op: "find active shift", Err: err}
	}
	return nil
}

// DeleteShift removes a shift and discards any dialog still open on it.
func (s *Service) DeleteShift(ctx context.Context, shiftID string) error {
	if err := s.machine.DeleteShift(ctx, shiftID); err != nil {
		return err
	}
	s.dropSessionsFor(shiftID)
	s.logger.WithFields(logrus.Fields{"module": "service", "shift_id": shiftID}).Info("shift deleted")
	return nil
}

func (s *Service) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	staff, err := s.staff.ListStaff(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list staff", Err: err}
	}
	return staff, nil
}
