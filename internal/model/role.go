package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is the closed set of platform roles. The zero value stands for an
// absent role (anonymous visitor).
type Role uint8

const (
	RoleAnonymous Role = iota
	RoleUser
	RoleChef
	RoleAdmin
)

// String returns the wire name of the role.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "USER"
	case RoleChef:
		return "CHEF"
	case RoleAdmin:
		return "ADMIN"
	default:
		return ""
	}
}

// ParseRole converts a wire role into a Role. Spring authorities carry a
// ROLE_ prefix, which is accepted. Unknown and empty values map to RoleUser.
func ParseRole(s string) Role {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "ROLE_")
	switch s {
	case "ADMIN":
		return RoleAdmin
	case "CHEF":
		return RoleChef
	default:
		return RoleUser
	}
}

// RoleFromList takes the first element of a role list, defaulting to USER.
func RoleFromList(roles []string) Role {
	if len(roles) == 0 {
		return RoleUser
	}
	return ParseRole(roles[0])
}

// MarshalJSON encodes the role as its wire name.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a wire name. An empty string decodes to RoleAnonymous.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to decode role: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		*r = RoleAnonymous
		return nil
	}
	*r = ParseRole(s)
	return nil
}
