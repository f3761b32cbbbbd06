package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fuelstation/internal/domain"
	"fuelstation/internal/shift"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = domain.ErrNotFound

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	activeShiftIndex = "shifts_one_active_per_staff"
)

const shiftColumns = `
	s.id,
	s.staff_id,
	s.pump_id,
	s.shift_type,
	s.start_time,
	s.end_time,
	s.status,
	s.cash_given::double precision,
	s.cash_remaining::double precision,
	s.created_at
`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var (
	_ shift.ShiftStore      = (*Repository)(nil)
	_ shift.SaleLedger      = (*Repository)(nil)
	_ shift.PriceSource     = (*Repository)(nil)
	_ shift.StaffDirectory  = (*Repository)(nil)
	_ shift.ConsumableStore = (*Repository)(nil)
)

func (r *Repository) GetShift(ctx context.Context, id string) (*domain.Shift, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts s WHERE s.id = $1`, id)
	s, err := scanShiftRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get shift %s: %w", id, err)
	}
	return &s, nil
}

// ListShifts returns shifts joined with their reading and staff name. Active
// shifts are ordered by start time, completed ones by end time, newest first.
func (r *Repository) ListShifts(ctx context.Context, filter shift.ShiftFilter) ([]domain.ShiftWithReading, error) {
	limit := normalizeLimit(filter.Limit)
	offset := normalizeOffset(filter.Offset)

	columns, err := r.readingColumnSet(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + shiftColumns + `,
			COALESCE(st.name, ''),
			` + readingSelectList("rd", columns) + `
		FROM shifts s
		LEFT JOIN staff st ON st.id = s.staff_id
		LEFT JOIN readings rd ON rd.shift_id = s.id
		WHERE 1 = 1
	`
	args := make([]any, 0, 4)
	argIndex := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND s.status = $%d", argIndex)
		args = append(args, string(filter.Status))
		argIndex++
	}
	if staffID := strings.TrimSpace(filter.StaffID); staffID != "" {
		query += fmt.Sprintf(" AND s.staff_id = $%d", argIndex)
		args = append(args, staffID)
		argIndex++
	}
	if filter.Status == domain.StatusCompleted {
		query += " ORDER BY s.end_time DESC NULLS LAST, s.start_time DESC"
	} else {
		query += " ORDER BY s.start_time DESC"
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ShiftWithReading, 0, limit)
	for rows.Next() {
		var (
			item    domain.ShiftWithReading
			s       shiftScan
			reading readingScan
		)
		dest := append(s.dest(), &item.StaffName)
		dest = append(dest, reading.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		item.Shift = s.shift()
		item.Reading = reading.reading()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shifts: %w", err)
	}
	return items, nil
}

func (r *Repository) FindActiveShiftByStaff(ctx context.Context, staffID string) (*domain.Shift, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+shiftColumns+`
		FROM shifts s
		WHERE s.staff_id = $1 AND s.status = 'active'
		ORDER BY s.start_time DESC
		LIMIT 1
	`, staffID)
	s, err := scanShiftRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find active shift for staff %s: %w", staffID, err)
	}
	return &s, nil
}

func (r *Repository) InsertShift(ctx context.Context, s domain.Shift) (domain.Shift, error) {
	return insertShift(ctx, r.pool, s)
}

// CompleteShift stamps the end time and flips the status in one conditional
// update so only one caller can complete a given shift.
func (r *Repository) CompleteShift(ctx context.Context, id string, endTime time.Time, cashRemaining float64) (domain.Shift, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE shifts AS s
		SET
			status = 'completed',
			end_time = $2,
			cash_remaining = $3
		WHERE s.id = $1 AND s.status = 'active'
		RETURNING `+shiftColumns,
		id,
		endTime,
		cashRemaining,
	)
	completed, err := scanShiftRow(row)
	if err == nil {
		return completed, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Shift{}, fmt.Errorf("complete shift %s: %w", id, err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM shifts WHERE id = $1)", id).Scan(&exists); err != nil {
		return domain.Shift{}, fmt.Errorf("check shift %s: %w", id, err)
	}
	if !exists {
		return domain.Shift{}, ErrNotFound
	}
	return domain.Shift{}, domain.ErrInvalidState
}

// DeleteShift removes the shift; its reading and consumable allocations go
// with it through ON DELETE CASCADE.
func (r *Repository) DeleteShift(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM shifts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete shift %s: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertShift(ctx context.Context, q queryRower, s domain.Shift) (domain.Shift, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	row := q.QueryRow(ctx, `
		INSERT INTO shifts AS s (
			id,
			staff_id,
			pump_id,
			shift_type,
			start_time,
			end_time,
			status,
			cash_given,
			cash_remaining
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+shiftColumns,
		s.ID,
		s.StaffID,
		s.PumpID,
		string(s.ShiftType),
		s.StartTime,
		s.EndTime,
		string(s.Status),
		s.CashGiven,
		s.CashRemaining,
	)
	created, err := scanShiftRow(row)
	if err != nil {
		return domain.Shift{}, mapShiftWriteError(err)
	}
	return created, nil
}

func mapShiftWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == activeShiftIndex:
			return domain.NewValidationError("staff_id", "staff member already has an active shift")
		case pgErr.Code == pgForeignKeyViolation:
			return domain.NewValidationError("staff_id", "unknown staff member")
		}
	}
	return fmt.Errorf("insert shift: %w", err)
}

type shiftScan struct {
	id            string
	staffID       string
	pumpID        string
	shiftType     string
	startTime     time.Time
	endTime       sql.NullTime
	status        string
	cashGiven     float64
	cashRemaining sql.NullFloat64
	createdAt     time.Time
}

func (s *shiftScan) dest() []any {
	return []any{
		&s.id,
		&s.staffID,
		&s.pumpID,
		&s.shiftType,
		&s.startTime,
		&s.endTime,
		&s.status,
		&s.cashGiven,
		&s.cashRemaining,
		&s.createdAt,
	}
}

func (s *shiftScan) shift() domain.Shift {
	out := domain.Shift{
		ID:        s.id,
		StaffID:   s.staffID,
		PumpID:    s.pumpID,
		ShiftType: domain.ShiftType(s.shiftType),
		StartTime: s.startTime,
		Status:    domain.ShiftStatus(s.status),
		CashGiven: s.cashGiven,
		CreatedAt: s.createdAt,
	}
	if s.endTime.Valid {
		value := s.endTime.Time
		out.EndTime = &value
	}
	if s.cashRemaining.Valid {
		value := s.cashRemaining.Float64
		out.CashRemaining = &value
	}
	return out
}

func scanShiftRow(row pgx.Row) (domain.Shift, error) {
	var s shiftScan
	if err := row.Scan(s.dest()...); err != nil {
		return domain.Shift{}, err
	}
	return s.shift(), nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 200
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
