// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Roles

// Role represents the authorization level carried by an access token.
type Role string

const (
	// Unrestricted catalog access
	RoleAdmin Role = "admin"

	// Can create, update and delete entries and rename tags
	RoleEditor Role = "editor"

	// Read-only access
	RoleReader Role = "reader"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

func (r Role) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleEditor:
		return 20
	case RoleReader:
		return 10
	default:
		return 0
	}
}
