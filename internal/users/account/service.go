// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

/*
Package account implements profile self-service and administrative user management.

# Architecture

The package reuses the auth domain's repository and session store contracts:
every profile mutation is written to PostgreSQL and then mirrored into the
session snapshot, so authenticated reads (which resolve from the cache) see
the change immediately.
*/
package account

import (
	"context"
	"fmt"

	"github.com/edora-dev/edora/internal/platform/apperr"
	"github.com/edora-dev/edora/internal/platform/constants"
	"github.com/edora-dev/edora/internal/platform/sec"
	"github.com/edora-dev/edora/internal/users/auth"
	"github.com/edora-dev/edora/pkg/pagination"
)

// Service implements account management use cases.
type Service struct {
	userRepository auth.UserRepository
	sessionStore   auth.SessionStore
}

// NewService constructs a new account [Service].
func NewService(userRepo auth.UserRepository, sessions auth.SessionStore) *Service {
	return &Service{userRepository: userRepo, sessionStore: sessions}
}

// # Profile Self-Service

// UpdateProfileInput holds the mutable identity fields of a profile.
type UpdateProfileInput struct {
	Name  string
	Email string
}

/*
UpdateProfile changes the user's name and/or email.

Description: An email change re-runs the duplicate pre-check; the unique
constraint backstops the race. The session snapshot is rewritten so the
change is visible on the next authenticated request.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: Updated entity
  - err: Duplicate email or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Email moves need the duplicate pre-check against other accounts
	if input.Email != "" && input.Email != user.Email {
		exists, err := service.userRepository.EmailExists(context, input.Email)
		if err != nil {
			return nil, fmt.Errorf("account_service_email_check_failed: %w", err)
		}
		if exists {
			return nil, apperr.DuplicateEmail()
		}
		user.Email = input.Email
	}

	if input.Name != "" {
		user.Name = input.Name
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	if err := service.refreshSnapshot(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdatePasswordInput carries the credential rotation request.
type UpdatePasswordInput struct {
	OldPassword string
	NewPassword string
}

/*
UpdatePassword rotates the user's password after verifying the current one.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdatePasswordInput

Returns:
  - *auth.User: Updated entity
  - err: Wrong old password or storage failures
*/
func (service *Service) UpdatePassword(context context.Context, userID string, input UpdatePasswordInput) (*auth.User, error) {

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Verify the current password before allowing the change
	if !sec.CheckPasswordHash(input.OldPassword, user.PasswordHash) {
		return nil, apperr.ValidationError("Invalid old password")
	}

	hashedPassword, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("account_service_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return nil, err
	}

	user.PasswordHash = hashedPassword
	if err := service.refreshSnapshot(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateAvatarInput references the new profile image in media storage.
type UpdateAvatarInput struct {
	PublicID string
	URL      string
}

/*
UpdateAvatar replaces the user's profile image reference.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateAvatarInput

Returns:
  - *auth.User: Updated entity
  - err: Storage failures
*/
func (service *Service) UpdateAvatar(context context.Context, userID string, input UpdateAvatarInput) (*auth.User, error) {

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	user.Avatar = auth.Avatar{PublicID: input.PublicID, URL: input.URL}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	if err := service.refreshSnapshot(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Administration

/*
ListUsers returns a page of accounts, newest first, with pagination metadata.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*auth.User: Hydrated entities
  - pagination.Meta: Page, limit, and total counts
  - err: Storage failures
*/
func (service *Service) ListUsers(context context.Context, params pagination.Params) ([]*auth.User, pagination.Meta, error) {

	users, err := service.userRepository.List(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	total, err := service.userRepository.Count(context)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return users, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// UpdateRoleInput identifies the target account by email and the new role.
type UpdateRoleInput struct {
	Email string
	Role  sec.UserRole
}

/*
UpdateUserRole changes an account's role.

Description: The target's session snapshot (if any) is rewritten so the new
role applies on their next request, not at their next login.

Parameters:
  - context: context.Context
  - input: UpdateRoleInput

Returns:
  - *auth.User: Updated entity
  - err: Unknown email, invalid role, or storage failures
*/
func (service *Service) UpdateUserRole(context context.Context, input UpdateRoleInput) (*auth.User, error) {

	if !input.Role.Valid() {
		return nil, apperr.ValidationError("Invalid role")
	}

	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		return nil, err
	}

	if err := service.userRepository.UpdateRole(context, user.ID, string(input.Role)); err != nil {
		return nil, err
	}
	user.Role = input.Role

	// Propagate to a live session, if one exists
	if _, findErr := service.sessionStore.Find(context, user.ID); findErr == nil {
		if err := service.refreshSnapshot(context, user); err != nil {
			return nil, err
		}
	}

	return user, nil
}

/*
DeleteUser permanently removes an account and ends its session.

Description: The session entry is deleted alongside the row, so a logged-in
target is cut off on their next request.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - err: Unknown user or storage failures
*/
func (service *Service) DeleteUser(context context.Context, userID string) error {

	// Resolve first so deleting an unknown ID reports not-found
	if _, err := service.userRepository.FindByID(context, userID); err != nil {
		return err
	}

	if err := service.userRepository.Delete(context, userID); err != nil {
		return err
	}

	if err := service.sessionStore.Delete(context, userID); err != nil {
		return fmt.Errorf("account_service_session_delete_failed: %w", err)
	}

	return nil
}

// refreshSnapshot rewrites the session entry with the updated user record.
func (service *Service) refreshSnapshot(context context.Context, user *auth.User) error {
	if err := service.sessionStore.Save(context, user, constants.SessionTTL); err != nil {
		return fmt.Errorf("account_service_snapshot_failed: %w", err)
	}
	return nil
}
