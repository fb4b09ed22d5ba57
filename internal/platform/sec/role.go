// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// It is a closed enumeration: free-form role strings coming from storage or
// requests must pass [UserRole.Valid] before being trusted, preventing silent
// typos in role names.
type UserRole string

const (
	// Unrestricted platform access, including user administration
	RoleAdmin UserRole = "admin"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// Valid reports whether the role is a member of the closed enumeration.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// In reports whether the role is a member of the allowed set.
//
// This is the membership predicate used by the authorization gate; it carries
// no state of its own.
func (r UserRole) In(allowed ...UserRole) bool {
	for _, candidate := range allowed {
		if r == candidate {
			return true
		}
	}
	return false
}
