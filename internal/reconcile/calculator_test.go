package reconcile_test

import (
	"math"
	"testing"

	"fuelstation/internal/domain"
	"fuelstation/internal/reconcile"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name  string
		input reconcile.Input
		want  domain.ReconciliationSummary
	}{
		{
			name: "end only scenario",
			input: reconcile.Input{
				OpeningReading: 1000,
				ClosingReading: 1200,
				FuelUnitPrice:  100,
			},
			want: domain.ReconciliationSummary{
				FuelSoldLiters:      200,
				ExpectedSalesAmount: 20000,
			},
		},
		{
			name: "cash surplus",
			input: reconcile.Input{
				CashSales:     5000,
				Expenses:      200,
				CashRemaining: 5300,
			},
			want: domain.ReconciliationSummary{
				TotalSales:     5000,
				ExpectedCash:   5000,
				CashDifference: 500,
			},
		},
		{
			name: "cash shortfall",
			input: reconcile.Input{
				CashSales:     5000,
				CashRemaining: 4500,
			},
			want: domain.ReconciliationSummary{
				TotalSales:     5000,
				ExpectedCash:   5000,
				CashDifference: -500,
			},
		},
		{
			name: "closing below opening clamps to zero",
			input: reconcile.Input{
				OpeningReading: 1200,
				ClosingReading: 1000,
				FuelUnitPrice:  100,
			},
			want: domain.ReconciliationSummary{},
		},
		{
			name: "closing equal to opening",
			input: reconcile.Input{
				OpeningReading: 500,
				ClosingReading: 500,
				FuelUnitPrice:  95.5,
			},
			want: domain.ReconciliationSummary{},
		},
		{
			name: "total sales includes every channel",
			input: reconcile.Input{
				CardSales:   100.10,
				UPISales:    200.20,
				CashSales:   0.1,
				IndentSales: 0.2,
			},
			want: domain.ReconciliationSummary{
				TotalSales:     300.6,
				ExpectedCash:   0.1,
				CashDifference: -0.1,
			},
		},
		{
			name: "fractional litres",
			input: reconcile.Input{
				OpeningReading: 1000.125,
				ClosingReading: 1010.5,
				FuelUnitPrice:  102.4,
			},
			want: domain.ReconciliationSummary{
				FuelSoldLiters:      10.375,
				ExpectedSalesAmount: 1062.4,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reconcile.Calculate(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	input := reconcile.Input{
		OpeningReading: 4321.7,
		ClosingReading: 4899.05,
		CardSales:      12000.5,
		UPISales:       8000.25,
		CashSales:      30111.1,
		IndentSales:    4000,
		Expenses:       350,
		CashRemaining:  30000,
		FuelUnitPrice:  96.72,
	}

	first := reconcile.Calculate(input)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, reconcile.Calculate(input))
	}
}

func TestCalculate_NeverNegativeLitres(t *testing.T) {
	for _, pair := range [][2]float64{{0, 0}, {10, 0}, {1e6, 999999.99}, {0.001, 0}, {5, 5}} {
		got := reconcile.Calculate(reconcile.Input{OpeningReading: pair[0], ClosingReading: pair[1], FuelUnitPrice: 100})
		assert.GreaterOrEqual(t, got.FuelSoldLiters, 0.0)
		assert.GreaterOrEqual(t, got.ExpectedSalesAmount, 0.0)
	}
}

func TestFromForm(t *testing.T) {
	form := domain.ClosureForm{
		ClosingReading: 1200,
		CashRemaining:  5300,
		CardSales:      1,
		UPISales:       2,
		CashSales:      5000,
		IndentSales:    3,
		Expenses:       200,
	}

	got := reconcile.Calculate(reconcile.FromForm(1000, form, 100))

	assert.Equal(t, 200.0, got.FuelSoldLiters)
	assert.Equal(t, 20000.0, got.ExpectedSalesAmount)
	assert.Equal(t, 5006.0, got.TotalSales)
	assert.Equal(t, 500.0, got.CashDifference)
}

func TestConsumablesExpense(t *testing.T) {
	allocations := []domain.ConsumableAllocation{
		{ConsumableID: "oil", QuantityAllocated: 10, PricePerUnit: 250},
		{ConsumableID: "coolant", QuantityAllocated: 4, PricePerUnit: 120.5},
		{ConsumableID: "wipes", QuantityAllocated: 2, PricePerUnit: 10},
	}
	returns := []domain.ConsumableReturn{
		{ConsumableID: "oil", Quantity: 7},
		{ConsumableID: "coolant", Quantity: 4},
		{ConsumableID: "wipes", Quantity: 5},
	}

	assert.Equal(t, 750.0, reconcile.ConsumablesExpense(allocations, returns))
	assert.Equal(t, 2500.0, reconcile.ConsumablesExpense(allocations[:1], nil))
	assert.Equal(t, 0.0, reconcile.ConsumablesExpense(nil, returns))
}

func TestConsumablesExpense_StoredReturns(t *testing.T) {
	allocations := []domain.ConsumableAllocation{
		{ConsumableID: "oil", QuantityAllocated: 10, QuantityReturned: 6, PricePerUnit: 250},
		{ConsumableID: "coolant", QuantityAllocated: 4, QuantityReturned: 1, PricePerUnit: 100},
	}

	// oil keeps its stored 6 returned; coolant is overridden by the form
	got := reconcile.ConsumablesExpense(allocations, []domain.ConsumableReturn{
		{ConsumableID: "coolant", Quantity: 3},
	})

	assert.Equal(t, 1100.0, got)
}

func TestCalculate_NonFiniteInputs(t *testing.T) {
	inputs := []reconcile.Input{
		{OpeningReading: 1000, ClosingReading: math.NaN(), FuelUnitPrice: 100},
		{OpeningReading: 1000, ClosingReading: math.Inf(1), FuelUnitPrice: 100},
		{CashSales: math.Inf(-1), CashRemaining: 50},
		{FuelUnitPrice: math.NaN(), ClosingReading: 10},
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() { reconcile.Calculate(in) })
	}

	got := reconcile.Calculate(inputs[2])
	assert.Equal(t, 0.0, got.ExpectedCash)
	assert.Equal(t, 50.0, got.CashDifference)
}
