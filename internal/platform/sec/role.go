// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "fmt"

// # Principal Roles

// Role is the closed set of authorization levels a principal can hold.
type Role string

const (
	// RoleAdmin manages employees, tasks, the catalogue and orders.
	RoleAdmin Role = "admin"

	// RoleEmployee works assigned tasks and exchanges notifications.
	RoleEmployee Role = "employee"

	// RoleUser is the default role for self-registered customers.
	RoleUser Role = "user"
)

// ParseRole converts a raw string into a known [Role].
func ParseRole(raw string) (Role, error) {
	role := Role(raw)
	if !role.Valid() {
		return "", fmt.Errorf("sec: unknown role %q", raw)
	}
	return role, nil
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r.bit() != 0
}

func (r Role) String() string { return string(r) }

func (r Role) bit() RoleSet {
	switch r {
	case RoleAdmin:
		return 1 << 0
	case RoleEmployee:
		return 1 << 1
	case RoleUser:
		return 1 << 2
	default:
		return 0
	}
}

// # Role Sets

// RoleSet is a bitmask of roles allowed to reach a route.
type RoleSet uint8

// Roles builds a [RoleSet] from the given roles. Unknown roles are ignored.
func Roles(roles ...Role) RoleSet {
	var set RoleSet
	for _, role := range roles {
		set |= role.bit()
	}
	return set
}

// AnyRole admits every declared role.
var AnyRole = Roles(RoleAdmin, RoleEmployee, RoleUser)

// Contains reports whether role is a member of the set.
func (s RoleSet) Contains(role Role) bool {
	bit := role.bit()
	return bit != 0 && s&bit != 0
}
