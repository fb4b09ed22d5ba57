// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edora-dev/edora/internal/platform/apperr"
	"github.com/edora-dev/edora/internal/platform/constants"
)

// # Session Store

// RedisSessionStore implements SessionStore using Redis.
//
// Each logged-in user owns exactly one entry under "session:<userID>" holding
// the serialized User snapshot. Logging in from a second device rewrites the
// same entry; deleting it ends every session at once.
type RedisSessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis-backed SessionStore.
func NewSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

/*
Save writes the session snapshot for a user with the given TTL.

Parameters:
  - context: context.Context
  - user: *User
  - ttl: time.Duration

Returns:
  - error: Serialization or storage failures
*/
func (store *RedisSessionStore) Save(context context.Context, user *User, ttl time.Duration) error {

	// Serialize the full user snapshot
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("redis_session_store_marshal_failed: %w", err)
	}

	// Write under the session namespace with TTL
	key := constants.RedisPrefixSession + user.ID
	if err := store.client.Set(context, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_store_save_failed: %w", err)
	}

	return nil
}

/*
Find returns the session snapshot for a user ID.

Description: Returns apperr.SessionNotFound when the entry is absent or
expired. This is the authoritative logged-out signal.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Cached snapshot
  - error: apperr.SessionNotFound or connectivity errors
*/
func (store *RedisSessionStore) Find(context context.Context, userID string) (*User, error) {

	key := constants.RedisPrefixSession + userID

	payload, err := store.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.SessionNotFound()
		}
		return nil, fmt.Errorf("redis_session_store_find_failed: %w", err)
	}

	user := &User{}
	if err := json.Unmarshal(payload, user); err != nil {
		return nil, fmt.Errorf("redis_session_store_unmarshal_failed: %w", err)
	}

	return user, nil
}

/*
Delete removes the session entry for a user ID.

Description: Idempotent. Deleting an absent entry is not an error, so logout
and admin removal can race without surfacing failures.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Deletion failures
*/
func (store *RedisSessionStore) Delete(context context.Context, userID string) error {

	key := constants.RedisPrefixSession + userID

	if err := store.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_store_delete_failed: %w", err)
	}

	return nil
}
