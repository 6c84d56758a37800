package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rosterlab/shift-backend-go/internal/domain/overtime"
	"github.com/rosterlab/shift-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type approvalRepository struct {
	db *database.DB
}

func NewApprovalRepository(db *database.DB) overtime.ApprovalRepository {
	return &approvalRepository{db: db}
}

const approvalColumns = `
	id, employee_id, date, window_from, window_to, cap_hours,
	manager_id, reason, approved_at, created_at
`

func scanApproval(row interface{ Scan(dest ...any) error }) (overtime.Approval, error) {
	var a overtime.Approval
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.WindowFrom, &a.WindowTo, &a.CapHours,
		&a.ManagerID, &a.Reason, &a.ApprovedAt, &a.CreatedAt,
	)
	return a, err
}

// Create implements overtime.ApprovalRepository. The unique index on
// (employee_id, date) keeps the approval slot single-occupancy.
func (r *approvalRepository) Create(ctx context.Context, approval overtime.Approval) (overtime.Approval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_approvals (
			id, employee_id, date, window_from, window_to, cap_hours, manager_id, reason, approved_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		approval.ID,
		approval.EmployeeID,
		approval.Date,
		approval.WindowFrom,
		approval.WindowTo,
		approval.CapHours,
		approval.ManagerID,
		approval.Reason,
		approval.ApprovedAt,
	).Scan(&approval.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return overtime.Approval{}, overtime.ErrApprovalExists
		}
		return overtime.Approval{}, fmt.Errorf("failed to create overtime approval: %w", err)
	}

	return approval, nil
}

// GetByEmployeeAndDate implements overtime.ApprovalRepository.
func (r *approvalRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*overtime.Approval, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + approvalColumns + ` FROM overtime_approvals WHERE employee_id = $1 AND date = $2`

	a, err := scanApproval(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get overtime approval: %w", err)
	}
	return &a, nil
}

// ListByEmployee implements overtime.ApprovalRepository.
func (r *approvalRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]overtime.Approval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + approvalColumns + `
		FROM overtime_approvals
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime approvals: %w", err)
	}
	defer rows.Close()

	var approvals []overtime.Approval
	for rows.Next() {
		a, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime approval: %w", err)
		}
		approvals = append(approvals, a)
	}
	return approvals, rows.Err()
}

type trackingRepository struct {
	db *database.DB
}

func NewTrackingRepository(db *database.DB) overtime.TrackingRepository {
	return &trackingRepository{db: db}
}

// GetByEmployeeAndMonth implements overtime.TrackingRepository.
func (r *trackingRepository) GetByEmployeeAndMonth(ctx context.Context, employeeID string, year, month int) (overtime.MonthlyTracking, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year, month, allocated_hours, used_hours, remaining_hours,
			   created_at, updated_at
		FROM overtime_tracking
		WHERE employee_id = $1 AND year = $2 AND month = $3
	`

	var t overtime.MonthlyTracking
	err := q.QueryRow(ctx, query, employeeID, year, month).Scan(
		&t.ID, &t.EmployeeID, &t.Year, &t.Month, &t.AllocatedHours, &t.UsedHours, &t.RemainingHours,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return overtime.MonthlyTracking{}, overtime.ErrTrackingNotFound
		}
		return overtime.MonthlyTracking{}, fmt.Errorf("failed to get overtime tracking: %w", err)
	}

	return t, nil
}

// Create implements overtime.TrackingRepository.
func (r *trackingRepository) Create(ctx context.Context, tracking overtime.MonthlyTracking) (overtime.MonthlyTracking, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_tracking (
			id, employee_id, year, month, allocated_hours, used_hours, remaining_hours
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		tracking.ID,
		tracking.EmployeeID,
		tracking.Year,
		tracking.Month,
		tracking.AllocatedHours,
		tracking.UsedHours,
		tracking.RemainingHours,
	).Scan(&tracking.CreatedAt, &tracking.UpdatedAt)

	if err != nil {
		return overtime.MonthlyTracking{}, fmt.Errorf("failed to create overtime tracking: %w", err)
	}

	return tracking, nil
}

// AddUsedHours implements overtime.TrackingRepository.
func (r *trackingRepository) AddUsedHours(ctx context.Context, id string, hours decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_tracking
		SET used_hours = used_hours + $1,
			remaining_hours = remaining_hours - $1,
			updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, hours, id)
	if err != nil {
		return fmt.Errorf("failed to add used hours: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return overtime.ErrTrackingNotFound
	}
	return nil
}
