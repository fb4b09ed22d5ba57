// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package auth

import (
	"time"

	"github.com/edora-dev/edora/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Edora platform.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Avatar       Avatar       `json:"avatar"`
	Role         sec.UserRole `json:"role"`
	IsVerified   bool         `json:"isVerified"`
	Courses      []CourseRef  `json:"courses"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Avatar is the user's profile image reference in external media storage.
type Avatar struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// CourseRef links a user to a course they are enrolled in.
type CourseRef struct {
	CourseID string `json:"courseId"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldOldPassword     = "oldPassword"
	FieldNewPassword     = "newPassword"
	FieldActivationToken = "activation_token"
	FieldActivationCode  = "activation_code"
	FieldAvatar          = "avatar"
	FieldRole            = "role"
	FieldUserID          = "id"
)
