// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

// PostgreSQL persistence for the auth domain.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, unique violations) are mapped to
// domain-friendly [apperr.AppError] types so the service layer never leaks
// storage implementation details.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edora-dev/edora/internal/platform/apperr"
	"github.com/edora-dev/edora/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists account metadata, ensuring timestamps are initialized
if not provided. A unique violation on the email column is mapped to the
duplicate-email conflict; this is the backstop for concurrent activations that
both passed the pre-check.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.DuplicateEmail or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, name, email, passwordhash, avatarpublicid, avatarurl, role, isverified, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Avatar.PublicID,
		user.Avatar.URL,
		user.Role,
		user.IsVerified,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.DuplicateEmail()
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity with enrollments
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `
		SELECT id, name, email, passwordhash, avatarpublicid, avatarurl, role, isverified, createdat, updatedat
		FROM users.account
		WHERE email = $1`

	user, err := repository.scanOne(context, query, email)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	if err := repository.loadEnrollments(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity with enrollments
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `
		SELECT id, name, email, passwordhash, avatarpublicid, avatarurl, role, isverified, createdat, updatedat
		FROM users.account
		WHERE id = $1`

	user, err := repository.scanOne(context, query, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	if err := repository.loadEnrollments(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

/*
EmailExists reports whether an account with the given email exists.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - bool: True when a matching row exists
  - error: Execution errors
*/
func (repository *PostgresUserRepository) EmailExists(context context.Context, email string) (bool, error) {
	const query = "SELECT EXISTS (SELECT 1 FROM users.account WHERE email = $1)"

	var exists bool
	if err := repository.pool.QueryRow(context, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_user_repo_email_exists_failed: %w", err)
	}

	return exists, nil
}

/*
Update persists changes to a user's mutable profile fields.

Description: Synchronizes name, email, and avatar with the database, refreshing
the updatedat timestamp. An email change can collide with another account; the
unique constraint surfaces that as a duplicate-email conflict.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.DuplicateEmail or update failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE users.account
		SET name = $2, email = $3, avatarpublicid = $4, avatarurl = $5, updatedat = $6
		WHERE id = $1`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Name,
		user.Email,
		user.Avatar.PublicID,
		user.Avatar.URL,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.DuplicateEmail()
		}
		return fmt.Errorf("postgres_user_repo_update_failed: %w", err)
	}

	return nil
}

/*
UpdatePassword updates only the password hash for a specific user.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	const query = `
		UPDATE users.account
		SET passwordhash = $2, updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}

	return nil
}

/*
UpdateRole changes the role of a specific user.

Parameters:
  - context: context.Context
  - userID: string
  - role: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) UpdateRole(context context.Context, userID, role string) error {
	const query = `
		UPDATE users.account
		SET role = $2, updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, role, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_role_failed: %w", err)
	}

	return nil
}

/*
Delete permanently removes a user account and its enrollments.

Description: Enrollments are removed via ON DELETE CASCADE on the foreign key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM users.account WHERE id = $1"

	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_delete_failed: %w", err)
	}

	return nil
}

/*
List returns a page of accounts ordered by creation time, newest first.

Description: Enrollments are hydrated in a single follow-up query to avoid
per-row round trips.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*User: Hydrated entities
  - error: Execution errors
*/
func (repository *PostgresUserRepository) List(context context.Context, limit, offset int) ([]*User, error) {
	const query = `
		SELECT id, name, email, passwordhash, avatarpublicid, avatarurl, role, isverified, createdat, updatedat
		FROM users.account
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := make([]*User, 0)
	index := make(map[string]*User)

	for rows.Next() {
		user := &User{Courses: []CourseRef{}}
		if err := scanUserRow(rows, user); err != nil {
			return nil, fmt.Errorf("postgres_user_repo_list_scan_failed: %w", err)
		}
		users = append(users, user)
		index[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_user_repo_list_rows_failed: %w", err)
	}

	// Hydrate enrollments in one pass
	const enrollmentQuery = "SELECT userid, courseid FROM users.enrollment"
	enrollmentRows, err := repository.pool.Query(context, enrollmentQuery)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_list_enrollments_failed: %w", err)
	}
	defer enrollmentRows.Close()

	for enrollmentRows.Next() {
		var userID, courseID string
		if err := enrollmentRows.Scan(&userID, &courseID); err != nil {
			return nil, fmt.Errorf("postgres_user_repo_list_enrollments_scan_failed: %w", err)
		}
		if user, ok := index[userID]; ok {
			user.Courses = append(user.Courses, CourseRef{CourseID: courseID})
		}
	}
	if err := enrollmentRows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_user_repo_list_enrollments_rows_failed: %w", err)
	}

	return users, nil
}

/*
Count returns the total number of accounts.

Parameters:
  - context: context.Context

Returns:
  - int: Total row count
  - error: Execution errors
*/
func (repository *PostgresUserRepository) Count(context context.Context) (int, error) {
	const query = "SELECT COUNT(*) FROM users.account"

	var total int
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_user_repo_count_failed: %w", err)
	}

	return total, nil
}

// # Internal Helpers

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUserRow hydrates a User from the standard column order.
func scanUserRow(row rowScanner, user *User) error {
	return row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Avatar.PublicID,
		&user.Avatar.URL,
		&user.Role,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

// scanOne runs a single-row query and hydrates a User.
func (repository *PostgresUserRepository) scanOne(context context.Context, query string, args ...any) (*User, error) {
	user := &User{Courses: []CourseRef{}}
	if err := scanUserRow(repository.pool.QueryRow(context, query, args...), user); err != nil {
		return nil, err
	}
	return user, nil
}

// loadEnrollments hydrates the Courses slice for a single user.
func (repository *PostgresUserRepository) loadEnrollments(context context.Context, user *User) error {
	const query = "SELECT courseid FROM users.enrollment WHERE userid = $1 ORDER BY enrolledat"

	rows, err := repository.pool.Query(context, query, user.ID)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_load_enrollments_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var courseID string
		if err := rows.Scan(&courseID); err != nil {
			return fmt.Errorf("postgres_user_repo_load_enrollments_scan_failed: %w", err)
		}
		user.Courses = append(user.Courses, CourseRef{CourseID: courseID})
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("postgres_user_repo_load_enrollments_rows_failed: %w", err)
	}

	return nil
}
