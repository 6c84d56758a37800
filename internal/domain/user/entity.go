package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

var RoleValues = []string{
	string(RoleAdmin),
	string(RoleManager),
	string(RoleEmployee),
}

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FullName     *string
	Role         Role
	EmployeeID   *string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
