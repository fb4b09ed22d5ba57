// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edora-dev/edora/internal/platform/sec"
)

/*
TestUserRole_Valid checks the closed role enumeration.
*/
func TestUserRole_Valid(t *testing.T) {
	tests := []struct {
		name    string
		role    sec.UserRole
		isValid bool
	}{
		{"admin", sec.RoleAdmin, true},
		{"user", sec.RoleUser, true},
		{"unknown", sec.UserRole("superuser"), false},
		{"empty", sec.UserRole(""), false},
		{"case_sensitive", sec.UserRole("Admin"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.role.Valid())
		})
	}
}

/*
TestUserRole_In checks set membership used by the authorization gate.
*/
func TestUserRole_In(t *testing.T) {
	assert.True(t, sec.RoleAdmin.In(sec.RoleAdmin))
	assert.True(t, sec.RoleUser.In(sec.RoleAdmin, sec.RoleUser))
	assert.False(t, sec.RoleUser.In(sec.RoleAdmin))
	assert.False(t, sec.RoleUser.In())
}
