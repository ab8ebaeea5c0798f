package enums

import (
	"fmt"
	"strings"
)

// UserRole selects which dashboard a signed-in user may reach.
type UserRole string

const (
	UserRoleConsumer   UserRole = "consumer"
	UserRoleShopkeeper UserRole = "shopkeeper"
)

var validUserRoles = []UserRole{
	UserRoleConsumer,
	UserRoleShopkeeper,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole, ignoring case and padding.
func ParseUserRole(value string) (UserRole, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validUserRoles {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
