package shift

import (
	"context"
	"time"

	"fuelstation/internal/domain"
	"fuelstation/internal/logging"
	"fuelstation/internal/metrics"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// IndentAggregator totals the credit sales a staff member recorded during a
// shift window.
type IndentAggregator struct {
	ledger SaleLedger
	logger logrus.FieldLogger
	now    func() time.Time
}

func NewIndentAggregator(ledger SaleLedger, logger logrus.FieldLogger) *IndentAggregator {
	return &IndentAggregator{ledger: ledger, logger: logger, now: time.Now}
}

func (a *IndentAggregator) SetClock(now func() time.Time) { a.now = now }

// Total sums sale amounts for staffID with created_at in [start, end]. A nil
// end means the shift is still running and now is used. A ledger failure
// yields zero and a warning instead of an error.
func (a *IndentAggregator) Total(
	ctx context.Context,
	staffID string,
	start time.Time,
	end *time.Time,
) (float64, *domain.AggregationWarning) {
	upper := a.now()
	if end != nil {
		upper = *end
	}

	records, err := a.ledger.QuerySalesByStaffAndWindow(ctx, staffID, start, upper)
	if err != nil {
		warning := &domain.AggregationWarning{StaffID: staffID, Err: err}
		metrics.IndentAggregationFailures.Inc()
		logging.LogWarning(a.logger, "shift", "IndentAggregator.Total", "query sale ledger", staffID, warning)
		return 0, warning
	}

	total := decimal.Zero
	for _, record := range records {
		if record.StaffID != "" && record.StaffID != staffID {
			continue
		}
		if !record.CreatedAt.IsZero() && (record.CreatedAt.Before(start) || record.CreatedAt.After(upper)) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(record.Amount))
	}
	if total.IsNegative() {
		return 0, nil
	}
	return total.Round(2).InexactFloat64(), nil
}
