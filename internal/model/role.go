package model

import (
	"fmt"
	"strings"
)

// RoleName identifies a guest role.
type RoleName int

const (
	RoleGuest   RoleName = 1
	RoleWitness RoleName = 2 // Witnesses can be contacted
	RoleAdmin   RoleName = 3
)

// ContactRoles are the roles reachable through the message relay.
var ContactRoles = []RoleName{RoleWitness, RoleAdmin}

func (r RoleName) String() string {
	switch r {
	case RoleGuest:
		return "guest"
	case RoleWitness:
		return "witness"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRoleName parses a case-insensitive role label.
func ParseRoleName(s string) (RoleName, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "guest":
		return RoleGuest, nil
	case "witness":
		return RoleWitness, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

// Role is a row of the roles table; guests reference it through guest_roles.
// Roles are assigned at provisioning and never changed by the guest API.
type Role struct {
	ID   uint     `json:"-" gorm:"primaryKey"`
	Name RoleName `json:"name" gorm:"not null;uniqueIndex"`
}
