package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fuelstation/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) QuerySalesByStaffAndWindow(ctx context.Context, staffID string, from, to time.Time) ([]domain.SaleRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			COALESCE(staff_id, ''),
			amount::double precision,
			created_at
		FROM transactions
		WHERE staff_id = $1
		  AND created_at >= $2
		  AND created_at <= $3
		ORDER BY created_at ASC
	`, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query sales for staff %s: %w", staffID, err)
	}
	defer rows.Close()

	records := make([]domain.SaleRecord, 0)
	for rows.Next() {
		var record domain.SaleRecord
		if err := rows.Scan(&record.StaffID, &record.Amount, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale records: %w", err)
	}
	return records, nil
}

func (r *Repository) GetCurrentUnitPrice(ctx context.Context, fuelType string) (float64, error) {
	var price float64
	err := r.pool.QueryRow(ctx, `
		SELECT current_price::double precision
		FROM fuel_settings
		WHERE fuel_type = $1
	`, strings.ToLower(strings.TrimSpace(fuelType))).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("get price for %s: %w", fuelType, err)
	}
	return price, nil
}

func (r *Repository) PumpFuelType(ctx context.Context, pumpID string) (string, error) {
	var fuelType string
	err := r.pool.QueryRow(ctx, "SELECT fuel_type FROM fuel_pumps WHERE id = $1", pumpID).Scan(&fuelType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get fuel type for pump %s: %w", pumpID, err)
	}
	return fuelType, nil
}

func (r *Repository) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, name FROM staff ORDER BY name ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	staff, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Staff, error) {
		var s domain.Staff
		err := row.Scan(&s.ID, &s.Name)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect staff: %w", err)
	}
	return staff, nil
}

func (r *Repository) ListAllocatedConsumables(ctx context.Context, shiftID string) ([]domain.ConsumableAllocation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			sc.consumable_id,
			c.name,
			c.unit,
			sc.quantity_allocated::double precision,
			sc.quantity_returned::double precision,
			c.price_per_unit::double precision
		FROM shift_consumables sc
		JOIN consumables c ON c.id = sc.consumable_id
		WHERE sc.shift_id = $1
		ORDER BY c.name ASC
	`, shiftID)
	if err != nil {
		return nil, fmt.Errorf("list consumables for shift %s: %w", shiftID, err)
	}
	defer rows.Close()

	items := make([]domain.ConsumableAllocation, 0)
	for rows.Next() {
		var item domain.ConsumableAllocation
		if err := rows.Scan(
			&item.ConsumableID,
			&item.Name,
			&item.Unit,
			&item.QuantityAllocated,
			&item.QuantityReturned,
			&item.PricePerUnit,
		); err != nil {
			return nil, fmt.Errorf("scan consumable allocation: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate consumable allocations: %w", err)
	}
	return items, nil
}

// ReturnConsumables records the returned quantity per allocation, capped at
// what was allocated, and puts the returned stock back into inventory.
func (r *Repository) ReturnConsumables(ctx context.Context, shiftID string, returns []domain.ConsumableReturn) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin return consumables tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, item := range returns {
		if item.Quantity <= 0 {
			continue
		}
		var delta float64
		err := tx.QueryRow(ctx, `
			WITH prev AS (
				SELECT quantity_returned
				FROM shift_consumables
				WHERE shift_id = $1 AND consumable_id = $2
				FOR UPDATE
			)
			UPDATE shift_consumables sc
			SET quantity_returned = LEAST(sc.quantity_allocated, $3)
			FROM prev
			WHERE sc.shift_id = $1 AND sc.consumable_id = $2
			RETURNING (sc.quantity_returned - prev.quantity_returned)::double precision
		`, shiftID, item.ConsumableID, item.Quantity).Scan(&delta)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("consumable %s is not allocated to shift %s", item.ConsumableID, shiftID)
			}
			return fmt.Errorf("record return of %s: %w", item.ConsumableID, err)
		}
		if delta == 0 {
			continue
		}
		if _, err := tx.Exec(ctx,
			"UPDATE consumables SET quantity = quantity + $2 WHERE id = $1",
			item.ConsumableID,
			delta,
		); err != nil {
			return fmt.Errorf("restock consumable %s: %w", item.ConsumableID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit return consumables tx: %w", err)
	}
	return nil
}

// LegacyShift is a historical completed shift replayed by the importer.
type LegacyShift struct {
	StaffName string
	Shift     domain.Shift
	Reading   domain.Reading
}

// ImportLegacyShift inserts a completed shift and its base reading in one
// transaction, creating the staff member by name when unknown. Optional
// reading columns are left to the caller.
func (r *Repository) ImportLegacyShift(ctx context.Context, in LegacyShift) (domain.Shift, error) {
	name := strings.TrimSpace(in.StaffName)
	if name == "" {
		return domain.Shift{}, domain.NewValidationError("staff", "staff name is required")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("begin import shift tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var staffID string
	err = tx.QueryRow(ctx,
		"SELECT id FROM staff WHERE LOWER(name) = LOWER($1) ORDER BY created_at ASC LIMIT 1",
		name,
	).Scan(&staffID)
	if errors.Is(err, pgx.ErrNoRows) {
		staffID = uuid.NewString()
		_, err = tx.Exec(ctx, "INSERT INTO staff (id, name) VALUES ($1, $2)", staffID, name)
	}
	if err != nil {
		return domain.Shift{}, fmt.Errorf("resolve staff %q: %w", name, err)
	}

	s := in.Shift
	s.StaffID = staffID
	created, err := insertShift(ctx, tx, s)
	if err != nil {
		return domain.Shift{}, err
	}

	reading := in.Reading
	reading.ShiftID = created.ID
	reading.StaffID = staffID
	reading.PumpID = created.PumpID
	if err := insertReading(ctx, tx, reading); err != nil {
		return domain.Shift{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Shift{}, fmt.Errorf("commit import shift tx: %w", err)
	}
	return created, nil
}
