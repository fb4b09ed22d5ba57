// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID, including enrollments.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		EmailExists reports whether an account with the given email already exists.

		Description: Best-effort duplicate pre-check. The unique constraint on
		the email column remains the authoritative guard under concurrency.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - bool: True when a matching row exists
		  - error: Database retrieval failures
	*/
	EmailExists(context context.Context, email string) (bool, error)

	/*
		Create persists a brand-new user account to the storage.

		Description: Returns a duplicate-email conflict when the unique
		constraint on email fires.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to mutable profile fields (name, email, avatar).

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict or persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		UpdateRole changes the user's role.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - role: string

		Returns:
		  - error: Persistence failures
	*/
	UpdateRole(context context.Context, userID, role string) error

	/*
		Delete permanently removes the account and its enrollments.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		List returns a page of accounts ordered by creation time, newest first.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*User: Hydrated entities
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*User, error)

	/*
		Count returns the total number of accounts.

		Parameters:
		  - context: context.Context

		Returns:
		  - int: Total row count
		  - error: Database retrieval failures
	*/
	Count(context context.Context) (int, error)
}

// # Session Data Access

// SessionStore defines the contract for the volatile login-session cache.
//
// The presence of an entry is the authoritative "is this user logged in"
// signal: token verification alone never grants access, and deleting the
// entry is how logout and admin removal take effect immediately.
type SessionStore interface {

	/*
		Save writes (or rewrites) the session snapshot for a user.

		Description: The snapshot is the full serialized User record. Profile
		mutations must call Save again so authenticated reads stay current.

		Parameters:
		  - context: context.Context
		  - user: *User
		  - ttl: time.Duration

		Returns:
		  - error: Storage failures
	*/
	Save(context context.Context, user *User, ttl time.Duration) error

	/*
		Find returns the session snapshot for a user ID.

		Description: Returns a session-not-found error when the entry is
		absent or expired.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *User: Cached snapshot
		  - error: Session-not-found or connectivity errors
	*/
	Find(context context.Context, userID string) (*User, error)

	/*
		Delete removes the session entry, logging the user out everywhere.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, userID string) error
}
