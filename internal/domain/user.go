package domain

import "time"

// Role identifies the workflow role assigned to a user account. Assigned once
// at account creation; mutable only by admin/administrator.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleAdministrator Role = "administrator"
	RoleClient        Role = "client"
	RoleEmployee      Role = "employee"
	RoleFrontdesk     Role = "frontdesk"
	RoleHead          Role = "head"
)

// Department scopes lab staff to a form type.
type Department string

const (
	DepartmentMicro     Department = "micro"
	DepartmentChemistry Department = "chemistry"
	DepartmentFrontdesk Department = "frontdesk"
)

// User is an account in the identity store.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"passwordHash"`
	Role         Role       `json:"role"`
	Department   Department `json:"department"`
	ClientName   string     `json:"clientName,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// CanManageAccounts reports whether the role may create, reassign, or remove
// user accounts.
func (r Role) CanManageAccounts() bool {
	return r == RoleAdmin || r == RoleAdministrator
}
