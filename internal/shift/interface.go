package shift

import (
	"context"
	"time"

	"fuelstation/internal/domain"
)

// ReadingPatch is the set of reading columns an end or edit operation
// writes. Nil fields are left untouched.
type ReadingPatch struct {
	ClosingReading     *float64
	CashRemaining      *float64
	CardSales          *float64
	UPISales           *float64
	CashSales          *float64
	TestingFuel        *float64
	IndentSales        *float64
	Expenses           *float64
	ConsumableExpenses *float64
}

type ShiftFilter struct {
	Status  domain.ShiftStatus
	StaffID string
	Limit   int
	Offset  int
}

// ShiftStore persists shifts and their paired readings.
//
//go:generate mockgen -destination=mocks/mock_interface.go -package=mocks -source=interface.go
type ShiftStore interface {
	GetShift(ctx context.Context, id string) (*domain.Shift, error)
	ListShifts(ctx context.Context, filter ShiftFilter) ([]domain.ShiftWithReading, error)
	FindActiveShiftByStaff(ctx context.Context, staffID string) (*domain.Shift, error)
	InsertShift(ctx context.Context, s domain.Shift) (domain.Shift, error)
	// CompleteShift moves an active shift to completed. It returns
	// domain.ErrInvalidState when the row is no longer active.
	CompleteShift(ctx context.Context, id string, endTime time.Time, cashRemaining float64) (domain.Shift, error)
	DeleteShift(ctx context.Context, id string) error

	GetReading(ctx context.Context, shiftID string) (*domain.Reading, error)
	InsertReading(ctx context.Context, reading domain.Reading) error
	UpdateReading(ctx context.Context, shiftID string, patch ReadingPatch) error
	// ListReadingColumns reports the columns the stored reading for shiftID
	// exposes.
	ListReadingColumns(ctx context.Context, shiftID string) ([]string, error)
}

type SaleLedger interface {
	QuerySalesByStaffAndWindow(ctx context.Context, staffID string, from, to time.Time) ([]domain.SaleRecord, error)
}

type PriceSource interface {
	GetCurrentUnitPrice(ctx context.Context, fuelType string) (float64, error)
	PumpFuelType(ctx context.Context, pumpID string) (string, error)
}

type StaffDirectory interface {
	ListStaff(ctx context.Context) ([]domain.Staff, error)
}

type ConsumableStore interface {
	ListAllocatedConsumables(ctx context.Context, shiftID string) ([]domain.ConsumableAllocation, error)
	ReturnConsumables(ctx context.Context, shiftID string, returns []domain.ConsumableReturn) error
}
