package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rosterlab/shift-backend-go/internal/domain/schedule"
	"github.com/rosterlab/shift-backend-go/internal/pkg/database"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

const shiftColumns = `
	id, department_id, employee_id, role_id, date, start_time, end_time,
	status, notes, created_at, updated_at
`

func scanShift(row interface{ Scan(dest ...any) error }) (schedule.ShiftAssignment, error) {
	var a schedule.ShiftAssignment
	err := row.Scan(
		&a.ID, &a.DepartmentID, &a.EmployeeID, &a.RoleID, &a.Date, &a.StartTime, &a.EndTime,
		&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements schedule.ScheduleRepository. The partial unique index
// on (employee_id, date) for work-status rows turns a concurrent double
// insert into ErrAssignmentConflict.
func (r *scheduleRepository) Create(ctx context.Context, assignment schedule.ShiftAssignment) (schedule.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_assignments (
			id, department_id, employee_id, role_id, date, start_time, end_time, status, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		assignment.ID,
		assignment.DepartmentID,
		assignment.EmployeeID,
		assignment.RoleID,
		assignment.Date,
		assignment.StartTime,
		assignment.EndTime,
		assignment.Status,
		assignment.Notes,
	).Scan(&assignment.CreatedAt, &assignment.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return schedule.ShiftAssignment{}, schedule.ErrAssignmentConflict
		}
		return schedule.ShiftAssignment{}, fmt.Errorf("failed to create shift assignment: %w", err)
	}

	return assignment, nil
}

// GetByID implements schedule.ScheduleRepository.
func (r *scheduleRepository) GetByID(ctx context.Context, id string) (schedule.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM shift_assignments WHERE id = $1`

	return scanShift(q.QueryRow(ctx, query, id))
}

// GetByEmployeeAndDate implements schedule.ScheduleRepository.
func (r *scheduleRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]schedule.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM shift_assignments WHERE employee_id = $1 AND date = $2`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get same-day assignments: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// ListByEmployeeAndRange implements schedule.ScheduleRepository.
func (r *scheduleRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]schedule.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shift_assignments
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments by range: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// List implements schedule.ScheduleRepository.
func (r *scheduleRepository) List(ctx context.Context, filter schedule.ListFilter) ([]schedule.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM shift_assignments WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.EmployeeID != nil {
		query += fmt.Sprintf(` AND employee_id = $%d`, argPos)
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.DepartmentID != nil {
		query += fmt.Sprintf(` AND department_id = $%d`, argPos)
		args = append(args, *filter.DepartmentID)
		argPos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(` AND date >= $%d`, argPos)
		args = append(args, *filter.From)
		argPos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(` AND date <= $%d`, argPos)
		args = append(args, *filter.To)
		argPos++
	}
	query += ` ORDER BY date, employee_id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// UpdateStatus implements schedule.ScheduleRepository.
func (r *scheduleRepository) UpdateStatus(ctx context.Context, id string, status schedule.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE shift_assignments SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrAssignmentNotFound
	}
	return nil
}

// DeleteByEmployeeAndDate implements schedule.ScheduleRepository.
func (r *scheduleRepository) DeleteByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, statuses []schedule.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM shift_assignments WHERE employee_id = $1 AND date = $2 AND status = ANY($3)`

	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	if _, err := q.Exec(ctx, query, employeeID, date, values); err != nil {
		return fmt.Errorf("failed to delete assignments: %w", err)
	}
	return nil
}

func collectShifts(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]schedule.ShiftAssignment, error) {
	var assignments []schedule.ShiftAssignment
	for rows.Next() {
		a, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
