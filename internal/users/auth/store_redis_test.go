// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package auth_test

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
	"github.com/edora-dev/edora/internal/users/auth"
)

// newTestSessionStore spins up an in-memory Redis and returns a store bound to it.
func newTestSessionStore(t *testing.T) (*auth.RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return auth.NewSessionStore(client), server
}

/*
TestRedisSessionStore_SaveAndFind tests the snapshot round-trip.
*/
func TestRedisSessionStore_SaveAndFind(t *testing.T) {
	store, server := newTestSessionStore(t)
	ctx := context.Background()

	user := &auth.User{
		ID:         "user-42",
		Name:       "An Duong",
		Email:      "an@edora.app",
		Role:       sec.RoleUser,
		IsVerified: true,
		Courses:    []auth.CourseRef{{CourseID: "course-1"}},
	}

	require.NoError(t, store.Save(ctx, user, time.Hour))

	// The entry lives under the session namespace
	assert.True(t, server.Exists("session:user-42"))

	found, err := store.Find(ctx, "user-42")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, user.Email, found.Email)
	assert.Equal(t, user.Role, found.Role)
	assert.Equal(t, user.Courses, found.Courses)
}

/*
TestRedisSessionStore_Find_Missing tests the authoritative logged-out signal.
*/
func TestRedisSessionStore_Find_Missing(t *testing.T) {
	store, _ := newTestSessionStore(t)

	_, err := store.Find(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "SESSION_NOT_FOUND"))
}

/*
TestRedisSessionStore_Find_Expired checks that an expired entry behaves like
an absent one.
*/
func TestRedisSessionStore_Find_Expired(t *testing.T) {
	store, server := newTestSessionStore(t)
	ctx := context.Background()

	user := &auth.User{ID: "user-42", Email: "an@edora.app"}
	require.NoError(t, store.Save(ctx, user, time.Minute))

	// Jump past the TTL
	server.FastForward(2 * time.Minute)

	_, err := store.Find(ctx, "user-42")
	assert.True(t, apperr.IsCode(err, "SESSION_NOT_FOUND"))
}

/*
TestRedisSessionStore_Delete tests idempotent removal.
*/
func TestRedisSessionStore_Delete(t *testing.T) {
	store, server := newTestSessionStore(t)
	ctx := context.Background()

	user := &auth.User{ID: "user-42", Email: "an@edora.app"}
	require.NoError(t, store.Save(ctx, user, time.Hour))

	// 1. Delete removes the entry
	require.NoError(t, store.Delete(ctx, "user-42"))
	assert.False(t, server.Exists("session:user-42"))

	// 2. Deleting an absent entry is not an error
	assert.NoError(t, store.Delete(ctx, "user-42"))
}

/*
TestRedisSessionStore_Save_Rewrites checks that a second login overwrites the
same entry instead of creating another.
*/
func TestRedisSessionStore_Save_Rewrites(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &auth.User{ID: "user-42", Name: "Old"}, time.Hour))
	require.NoError(t, store.Save(ctx, &auth.User{ID: "user-42", Name: "New"}, time.Hour))

	found, err := store.Find(ctx, "user-42")
	require.NoError(t, err)
	assert.Equal(t, "New", found.Name)
}
