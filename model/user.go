package model

import (
	"strings"
	"time"
)

// Role is drawn from the closed set the identity provider issues.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleIntern   Role = "intern"
)

var validRoles = map[Role]struct{}{
	RoleAdmin:    {},
	RoleHR:       {},
	RoleManager:  {},
	RoleEmployee: {},
	RoleIntern:   {},
}

// ParseRole normalises s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	_, ok := validRoles[r]
	return r, ok
}

func (r Role) Valid() bool {
	_, ok := validRoles[r]
	return ok
}

// Principal is the authenticated caller. Every compliance operation takes one
// explicitly instead of reading ambient request state.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// CanManagePolicies is true for the administrative roles.
func (p Principal) CanManagePolicies() bool {
	return p.Role == RoleAdmin || p.Role == RoleHR
}

// Employee is a directory entry.
type Employee struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Department string    `json:"department,omitempty"`
	SlackID    string    `json:"slack_id,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// Principal converts a directory entry into the principal it would act as.
func (e Employee) Principal() Principal {
	return Principal{ID: e.ID, Email: e.Email, Name: e.Name, Role: e.Role}
}
