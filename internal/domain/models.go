package domain

import "time"

type ShiftType string

const (
	ShiftMorning ShiftType = "morning"
	ShiftEvening ShiftType = "evening"
	ShiftNight   ShiftType = "night"
	ShiftDay     ShiftType = "day"
)

func (t ShiftType) Valid() bool {
	switch t {
	case ShiftMorning, ShiftEvening, ShiftNight, ShiftDay:
		return true
	}
	return false
}

type ShiftStatus string

const (
	StatusActive    ShiftStatus = "active"
	StatusCompleted ShiftStatus = "completed"
)

type EndMode string

const (
	ModeEndOnly     EndMode = "end-only"
	ModeEndAndStart EndMode = "end-and-start"
)

type Shift struct {
	ID            string      `json:"id"`
	StaffID       string      `json:"staff_id"`
	PumpID        string      `json:"pump_id"`
	ShiftType     ShiftType   `json:"shift_type"`
	StartTime     time.Time   `json:"start_time"`
	EndTime       *time.Time  `json:"end_time,omitempty"`
	Status        ShiftStatus `json:"status"`
	CashGiven     float64     `json:"cash_given"`
	CashRemaining *float64    `json:"cash_remaining,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// Reading is the meter and cash record paired 1:1 with a shift. Pointer
// fields are nil until the shift ends, or, for the optional columns
// (IndentSales, Expenses, ConsumableExpenses), when the stored schema does
// not carry them.
type Reading struct {
	ShiftID            string    `json:"shift_id"`
	StaffID            string    `json:"staff_id"`
	PumpID             string    `json:"pump_id"`
	Date               time.Time `json:"date"`
	OpeningReading     float64   `json:"opening_reading"`
	ClosingReading     *float64  `json:"closing_reading,omitempty"`
	CashGiven          float64   `json:"cash_given"`
	CashRemaining      *float64  `json:"cash_remaining,omitempty"`
	CardSales          *float64  `json:"card_sales,omitempty"`
	UPISales           *float64  `json:"upi_sales,omitempty"`
	CashSales          *float64  `json:"cash_sales,omitempty"`
	TestingFuel        *float64  `json:"testing_fuel,omitempty"`
	IndentSales        *float64  `json:"indent_sales,omitempty"`
	Expenses           *float64  `json:"expenses,omitempty"`
	ConsumableExpenses *float64  `json:"consumable_expenses,omitempty"`
}

type ShiftWithReading struct {
	Shift
	StaffName string   `json:"staff_name"`
	Reading   *Reading `json:"reading,omitempty"`
}

type SaleRecord struct {
	StaffID   string    `json:"staff_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type Staff struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ConsumableAllocation struct {
	ConsumableID      string  `json:"consumable_id"`
	Name              string  `json:"name"`
	Unit              string  `json:"unit"`
	QuantityAllocated float64 `json:"quantity_allocated"`
	QuantityReturned  float64 `json:"quantity_returned"`
	PricePerUnit      float64 `json:"price_per_unit"`
}

type ConsumableReturn struct {
	ConsumableID string  `json:"consumable_id"`
	Quantity     float64 `json:"quantity"`
}

// ClosureForm carries the figures an operator enters when ending or editing
// a shift.
type ClosureForm struct {
	Mode              EndMode            `json:"mode"`
	ClosingReading    float64            `json:"closing_reading"`
	CashRemaining     float64            `json:"cash_remaining"`
	CardSales         float64            `json:"card_sales"`
	UPISales          float64            `json:"upi_sales"`
	CashSales         float64            `json:"cash_sales"`
	IndentSales       float64            `json:"indent_sales"`
	Expenses          float64            `json:"expenses"`
	TestingFuel       float64            `json:"testing_fuel"`
	ConsumableReturns []ConsumableReturn `json:"consumable_returns,omitempty"`
	Successor         *SuccessorInput    `json:"successor,omitempty"`
}

type SuccessorInput struct {
	StaffID   string    `json:"staff_id"`
	CashGiven float64   `json:"cash_given"`
	Date      time.Time `json:"date"`
}

type StartShiftInput struct {
	StaffID        string    `json:"staff_id"`
	PumpID         string    `json:"pump_id"`
	ShiftType      ShiftType `json:"shift_type"`
	OpeningReading float64   `json:"opening_reading"`
	CashGiven      float64   `json:"cash_given"`
	Date           time.Time `json:"date"`
}

type ReconciliationSummary struct {
	FuelSoldLiters      float64 `json:"fuel_sold_liters"`
	TotalSales          float64 `json:"total_sales"`
	ExpectedSalesAmount float64 `json:"expected_sales_amount"`
	ExpectedCash        float64 `json:"expected_cash"`
	CashDifference      float64 `json:"cash_difference"`
}

type EndShiftResult struct {
	Shift     Shift    `json:"shift"`
	Reading   Reading  `json:"reading"`
	Successor *Shift   `json:"successor,omitempty"`
	Omitted   []string `json:"omitted_fields,omitempty"`
}
