package employee

import "time"

// Employee is the read model the engine needs about a worker. Employee
// master data is owned elsewhere; the engine only consumes it.
type Employee struct {
	ID             string
	Code           string
	FirstName      string
	LastName       string
	Email          string
	DepartmentID   string
	RoleID         *string
	UserID         *string
	EmploymentType string
	WeeklyHours    float64
	DailyMaxHours  float64
	ShiftsPerWeek  int
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Role carries the per-position settings the engine reads, most notably
// the unpaid break allowance deducted from worked hours at checkout.
type Role struct {
	ID           string
	Name         string
	DepartmentID string
	BreakMinutes int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
