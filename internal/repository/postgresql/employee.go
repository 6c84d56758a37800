package postgresql

import (
	"context"
	"fmt"

	"github.com/rosterlab/shift-backend-go/internal/domain/employee"
	"github.com/rosterlab/shift-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, code, first_name, last_name, email, department_id, role_id, user_id,
	employment_type, weekly_hours, daily_max_hours, shifts_per_week, is_active,
	created_at, updated_at
`

func scanEmployee(row interface{ Scan(dest ...any) error }) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.Code, &e.FirstName, &e.LastName, &e.Email, &e.DepartmentID, &e.RoleID, &e.UserID,
		&e.EmploymentType, &e.WeeklyHours, &e.DailyMaxHours, &e.ShiftsPerWeek, &e.IsActive,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	return scanEmployee(q.QueryRow(ctx, query, id))
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE user_id = $1`

	return scanEmployee(q.QueryRow(ctx, query, userID))
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, departmentID *string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE is_active = TRUE`
	args := []any{}
	if departmentID != nil {
		query += ` AND department_id = $1`
		args = append(args, *departmentID)
	}
	query += ` ORDER BY code`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

type roleRepository struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) employee.RoleRepository {
	return &roleRepository{db: db}
}

// GetByID implements employee.RoleRepository.
func (r *roleRepository) GetByID(ctx context.Context, id string) (employee.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, department_id, break_minutes, is_active, created_at, updated_at
		FROM roles
		WHERE id = $1
	`

	var role employee.Role
	err := q.QueryRow(ctx, query, id).Scan(
		&role.ID, &role.Name, &role.DepartmentID, &role.BreakMinutes, &role.IsActive,
		&role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		return employee.Role{}, err
	}

	return role, nil
}
