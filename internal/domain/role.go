package domain

import "strings"

type Role string

const (
	RoleCustomer   Role = "Customer"
	RoleManager    Role = "Manager"
	RolePilot      Role = "Pilot"
	RoleTechnician Role = "Technician"
)

// Roles lists every accepted role in its stored form.
var Roles = []Role{RoleCustomer, RoleManager, RolePilot, RoleTechnician}

// ParseRole matches s against the four roles ignoring case and surrounding
// whitespace, and returns the canonical stored form.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for _, r := range Roles {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}
	return "", false
}

// Account is a row of the Users table. Passwords are stored as entered.
type Account struct {
	Username string
	Password string
	Role     Role
}

// Identity is the result of a successful login. Role is the stored value,
// untouched.
type Identity struct {
	Username string
	Role     string
}
