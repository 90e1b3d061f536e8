package model

import "time"

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

func (r Role) CanReadSystemLogs() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

type UserRole struct {
	UserID    string
	Role      Role
	UpdatedAt time.Time
}
