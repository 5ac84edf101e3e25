package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. Values outside the set are
// rejected at the profile-fetch boundary instead of being passed through.
type Role string

const (
	RoleStudent   Role = "student"
	RoleInstitute Role = "institute"
	RoleCompany   Role = "company"
	RoleAdmin     Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleInstitute:
		return RoleInstitute, nil
	case RoleCompany:
		return RoleCompany, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}
