package model

import "time"

// Role identifies the capability level of a user.
type Role string

// The two roles the tracker knows about.
const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// RolePolicy describes what a role requires and is allowed to do.
type RolePolicy struct {
	RequiresPassword bool
	CanWrite         bool
}

// RolePolicies is the capability table keyed by role. Adding a participant
// with a new capability level means adding a row here, not a new conditional.
var RolePolicies = map[Role]RolePolicy{
	RoleAdmin:  {RequiresPassword: true, CanWrite: true},
	RoleViewer: {RequiresPassword: false, CanWrite: false},
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	_, ok := RolePolicies[r]
	return ok
}

// User represents a participant in the shared tracker.
// Password is nil for roles whose policy does not require one and is
// never serialized in API responses.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Role        Role      `json:"role"`
	Password    *string   `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}
