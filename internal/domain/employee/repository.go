package employee

import "context"

// EmployeeRepository reads employee master data. The engine never writes
// employees; persistence of that data is an external concern.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	List(ctx context.Context, departmentID *string) ([]Employee, error)
}

type RoleRepository interface {
	GetByID(ctx context.Context, id string) (Role, error)
}
