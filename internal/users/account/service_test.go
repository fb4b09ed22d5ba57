// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edora-dev/edora/internal/platform/apperr"
	"github.com/edora-dev/edora/internal/platform/sec"
	"github.com/edora-dev/edora/internal/users/account"
	"github.com/edora-dev/edora/internal/users/auth"
	"github.com/edora-dev/edora/pkg/pagination"
)

// # Test Doubles

// memoryUserRepository is an in-memory auth.UserRepository for account tests.
type memoryUserRepository struct {
	users map[string]*auth.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: map[string]*auth.User{}}
}

func (repository *memoryUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repository.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (repository *memoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repository.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *memoryUserRepository) EmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range repository.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (repository *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	clone := *user
	repository.users[user.ID] = &clone
	return nil
}

func (repository *memoryUserRepository) Update(_ context.Context, user *auth.User) error {
	if _, ok := repository.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	clone := *user
	repository.users[user.ID] = &clone
	return nil
}

func (repository *memoryUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := repository.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

func (repository *memoryUserRepository) UpdateRole(_ context.Context, userID, role string) error {
	user, ok := repository.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.Role = sec.UserRole(role)
	return nil
}

func (repository *memoryUserRepository) Delete(_ context.Context, id string) error {
	delete(repository.users, id)
	return nil
}

func (repository *memoryUserRepository) List(_ context.Context, limit, offset int) ([]*auth.User, error) {
	result := make([]*auth.User, 0, len(repository.users))
	for _, user := range repository.users {
		clone := *user
		result = append(result, &clone)
	}
	if offset > len(result) {
		offset = len(result)
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (repository *memoryUserRepository) Count(_ context.Context) (int, error) {
	return len(repository.users), nil
}

// # Harness

type accountHarness struct {
	service    *account.Service
	repository *memoryUserRepository
	sessions   *auth.RedisSessionStore
	redis      *miniredis.Miniredis
}

func newAccountHarness(t *testing.T) *accountHarness {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repository := newMemoryUserRepository()
	sessions := auth.NewSessionStore(client)

	return &accountHarness{
		service:    account.NewService(repository, sessions),
		repository: repository,
		sessions:   sessions,
		redis:      server,
	}
}

// seedUser stores an account with a known password and a live session.
func (h *accountHarness) seedUser(t *testing.T, id, email, password string, role sec.UserRole) *auth.User {
	t.Helper()
	ctx := context.Background()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	user := &auth.User{
		ID:           id,
		Name:         "An Duong",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsVerified:   true,
		Courses:      []auth.CourseRef{},
	}
	require.NoError(t, h.repository.Create(ctx, user))
	require.NoError(t, h.sessions.Save(ctx, user, time.Hour))
	return user
}

// # Profile Self-Service

/*
TestUpdateProfile tests name/email changes and the snapshot refresh.
*/
func TestUpdateProfile(t *testing.T) {
	h := newAccountHarness(t)
	h.seedUser(t, "user-42", "an@edora.app", "secret123", sec.RoleUser)
	ctx := context.Background()

	updated, err := h.service.UpdateProfile(ctx, "user-42", account.UpdateProfileInput{
		Name:  "An D. Duong",
		Email: "an.duong@edora.app",
	})
	require.NoError(t, err)
	assert.Equal(t, "An D. Duong", updated.Name)
	assert.Equal(t, "an.duong@edora.app", updated.Email)

	// The session snapshot sees the change immediately
	cached, err := h.sessions.Find(ctx, "user-42")
	require.NoError(t, err)
	assert.Equal(t, "an.duong@edora.app", cached.Email)
}

/*
TestUpdateProfile_DuplicateEmail checks that moving to a taken email conflicts.
*/
func TestUpdateProfile_DuplicateEmail(t *testing.T) {
	h := newAccountHarness(t)
	h.seedUser(t, "user-42", "an@edora.app", "secret123", sec.RoleUser)
	h.seedUser(t, "user-43", "taken@edora.app", "secret123", sec.RoleUser)

	_, err := h.service.UpdateProfile(context.Background(), "user-42", account.UpdateProfileInput{
		Email: "taken@edora.app",
	})
	assert.True(t, apperr.IsCode(err, "DUPLICATE_EMAIL"))
}

/*
TestUpdateProfile_UnknownUser checks the not-found path.
*/
func TestUpdateProfile_UnknownUser(t *testing.T) {
	h := newAccountHarness(t)

	_, err := h.service.UpdateProfile(context.Background(), "ghost", account.UpdateProfileInput{
		Name: "Nobody",
	})
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

/*
TestUpdatePassword tests credential rotation with old-password verification.
*/
func TestUpdatePassword(t *testing.T) {
	h := newAccountHarness(t)
	h.seedUser(t, "user-42", "an@edora.app", "secret123", sec.RoleUser)
	ctx := context.Background()

	updated, err := h.service.UpdatePassword(ctx, "user-42", account.UpdatePasswordInput{
		OldPassword: "secret123",
		NewPassword: "new-secret",
	})
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("new-secret", updated.PasswordHash))
	assert.False(t, sec.CheckPasswordHash("secret123", updated.PasswordHash))

	// The stored row carries the new hash
	stored, err := h.repository.FindByID(ctx, "user-42")
	require.NoError(t, err)
	assert.True(t, sec.CheckPasswordHash("new-secret", stored.PasswordHash))
}

/*
TestUpdatePassword_WrongOldPassword checks rejection without mutation.
*/
func TestUpdatePassword_WrongOldPassword(t *testing.T) {
	h := newAccountHarness(t)
	h.seedUser(t, "user-42", "an@edora.app", "secret123", sec.RoleUser)
	ctx := context.Background()

	_, err := h.service.UpdatePassword(ctx, "user-42", account.UpdatePasswordInput{
		OldPassword: "wrong-password",
		NewPassword: "new-secret",
	})
	require.Error(t, err)
	assert.Equal(t, "Invalid old password", err.Error())

	// The old credential still works
	stored, err := h.repository.FindByID(ctx, "user-42")
	require.NoError(t, err)
	assert.True(t, sec.CheckPasswordHash("secret123", stored.PasswordHash))
}

/*
TestUpdateAvatar tests replacing the profile image reference.
*/
func TestUpdateAvatar(t *testing.T) {
	h := newAccountHarness(t)
	h.seedUser(t, "user-42", "an@edora.app", "secret123", sec.RoleUser)
	ctx := context.Background()

	updated, err := h.service.UpdateAvatar(ctx, "user-42", account.UpdateAvatarInput{
		PublicID: "avatars/an",
		URL:      "https://cdn.edora.app/avatars/an.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "avatars/an", updated.Avatar.PublicID)

	cached, err := h.sessions.Find(ctx, "user-42")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.edora.app/avatars/an.png", cached.Avatar.URL)
}

// # Administration

/*
TestUpdateUserRole tests promotion and its propagation to a live session.
*/
func TestUpdateUserRole(t *testing.T) {
	h := newAccountHarness(t)
	h.seedUser(t, "user-42", "an@edora.app", "secret123", sec.RoleUser)
	ctx := context.Background()

	updated, err := h.service.UpdateUserRole(ctx, account.UpdateRoleInput{
		Email: "an@edora.app",
		Role:  sec.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, updated.Role)

	// The live session sees the new role on the next request
	cached, err := h.sessions.Find(ctx, "user-42")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, cached.Role)
}

/*
TestUpdateUserRole_Invalid covers the validation and unknown-email paths.
*/
func TestUpdateUserRole_Invalid(t *testing.T) {
	h := newAccountHarness(t)
	h.seedUser(t, "user-42", "an@edora.app", "secret123", sec.RoleUser)
	ctx := context.Background()

	// 1. Roles outside the closed enumeration are rejected
	_, err := h.service.UpdateUserRole(ctx, account.UpdateRoleInput{
		Email: "an@edora.app",
		Role:  sec.UserRole("superuser"),
	})
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))

	// 2. Unknown emails report not-found
	_, err = h.service.UpdateUserRole(ctx, account.UpdateRoleInput{
		Email: "ghost@edora.app",
		Role:  sec.RoleAdmin,
	})
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

/*
TestDeleteUser tests removal of both the account row and its session entry.
*/
func TestDeleteUser(t *testing.T) {
	h := newAccountHarness(t)
	h.seedUser(t, "user-42", "an@edora.app", "secret123", sec.RoleUser)
	ctx := context.Background()

	require.NoError(t, h.service.DeleteUser(ctx, "user-42"))

	// 1. The row is gone
	_, err := h.repository.FindByID(ctx, "user-42")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	// 2. The target is logged out everywhere
	_, err = h.sessions.Find(ctx, "user-42")
	assert.True(t, apperr.IsCode(err, "SESSION_NOT_FOUND"))
}

/*
TestDeleteUser_Unknown checks that deleting an unknown ID reports not-found.
*/
func TestDeleteUser_Unknown(t *testing.T) {
	h := newAccountHarness(t)

	err := h.service.DeleteUser(context.Background(), "ghost")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

/*
TestListUsers tests the paginated admin listing.
*/
func TestListUsers(t *testing.T) {
	h := newAccountHarness(t)
	h.seedUser(t, "user-42", "an@edora.app", "secret123", sec.RoleUser)
	h.seedUser(t, "user-43", "binh@edora.app", "secret123", sec.RoleAdmin)
	ctx := context.Background()

	// 1. A page large enough for everyone
	users, meta, err := h.service.ListUsers(ctx, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, 2, meta.Total)
	assert.Equal(t, 1, meta.TotalPages)

	// 2. A page of one splits the listing in two
	users, meta, err = h.service.ListUsers(ctx, pagination.Params{Page: 2, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 2, meta.TotalPages)
}
