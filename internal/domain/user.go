package domain

import "time"

// Role is the closed set of user roles. Branching on roles must use
// exhaustive switches so adding a role is a compile-visible change.
type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleManager     Role = "MANAGER"
	RoleRegularUser Role = "REGULAR_USER"
)

// ValidRole reports whether r is a known role value.
func ValidRole(r Role) bool {
	switch r {
	case RoleSuperAdmin, RoleManager, RoleRegularUser:
		return true
	}
	return false
}

// User is the domain model for portal accounts. AssignedProperties is
// meaningful only for the Manager role; RevenueGenerated is derived
// from paid citations on those properties and never stored.
type User struct {
	ID                 string
	Email              string
	PasswordHash       string
	Role               Role
	FirstName          string
	LastName           string
	AssignedProperties []string
	RevenueGenerated   float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
