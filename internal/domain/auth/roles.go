package auth

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. Values outside the three
// constants never enter the domain: every external string goes through
// ParseRole first.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleHR       Role = "HR"
	RoleEmployee Role = "EMPLOYEE"
)

var AllRoles = []Role{RoleAdmin, RoleHR, RoleEmployee}

func ParseRole(value string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleHR:
		return RoleHR, nil
	case RoleEmployee:
		return RoleEmployee, nil
	}
	return "", fmt.Errorf("unknown role %q", value)
}

func (r Role) String() string {
	return string(r)
}
