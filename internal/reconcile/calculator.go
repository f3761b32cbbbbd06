// Package reconcile derives the end-of-shift summary figures from raw meter
// and cash inputs. The package does no I/O.
package reconcile

import (
	"math"

	"fuelstation/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	moneyPlaces  = 2
	litresPlaces = 3
)

type Input struct {
	OpeningReading float64
	ClosingReading float64
	CardSales      float64
	UPISales       float64
	CashSales      float64
	IndentSales    float64
	Expenses       float64
	CashRemaining  float64
	FuelUnitPrice  float64
}

// Calculate returns the reconciliation summary for in. A closing reading at
// or below the opening reading yields zero litres rather than an error, so
// partially entered forms can still be previewed.
func Calculate(in Input) domain.ReconciliationSummary {
	opening := amount(in.OpeningReading)
	closing := amount(in.ClosingReading)

	fuelSold := decimal.Zero
	if closing.GreaterThan(opening) {
		fuelSold = closing.Sub(opening)
	}

	cash := amount(in.CashSales)
	total := amount(in.CardSales).
		Add(amount(in.UPISales)).
		Add(cash).
		Add(amount(in.IndentSales))

	expected := fuelSold.Mul(amount(in.FuelUnitPrice))

	// negative: attendant is short; positive: surplus
	difference := amount(in.CashRemaining).
		Sub(cash).
		Add(amount(in.Expenses))

	return domain.ReconciliationSummary{
		FuelSoldLiters:      fuelSold.Round(litresPlaces).InexactFloat64(),
		TotalSales:          total.Round(moneyPlaces).InexactFloat64(),
		ExpectedSalesAmount: expected.Round(moneyPlaces).InexactFloat64(),
		ExpectedCash:        cash.Round(moneyPlaces).InexactFloat64(),
		CashDifference:      difference.Round(moneyPlaces).InexactFloat64(),
	}
}

// FromForm builds a calculator input from a closure form.
func FromForm(opening float64, form domain.ClosureForm, unitPrice float64) Input {
	return Input{
		OpeningReading: opening,
		ClosingReading: form.ClosingReading,
		CardSales:      form.CardSales,
		UPISales:       form.UPISales,
		CashSales:      form.CashSales,
		IndentSales:    form.IndentSales,
		Expenses:       form.Expenses,
		CashRemaining:  form.CashRemaining,
		FuelUnitPrice:  unitPrice,
	}
}

// ConsumablesExpense totals the value of consumables used during a shift:
// allocated minus returned, priced per unit. An allocation without an entry
// in returns keeps its stored returned quantity. Over-returns count as zero.
func ConsumablesExpense(allocations []domain.ConsumableAllocation, returns []domain.ConsumableReturn) float64 {
	returned := make(map[string]decimal.Decimal, len(returns))
	for _, r := range returns {
		returned[r.ConsumableID] = returned[r.ConsumableID].Add(amount(r.Quantity))
	}

	total := decimal.Zero
	for _, a := range allocations {
		back, ok := returned[a.ConsumableID]
		if !ok {
			back = amount(a.QuantityReturned)
		}
		used := amount(a.QuantityAllocated).Sub(back)
		if used.IsNegative() {
			continue
		}
		total = total.Add(used.Mul(amount(a.PricePerUnit)))
	}
	return total.Round(moneyPlaces).InexactFloat64()
}

// amount converts v to a decimal, treating NaN and infinities as zero.
func amount(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
