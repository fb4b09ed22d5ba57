// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

// Package dberr classifies low-level database errors.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE codes) are recognized
// here; the repositories map them to the application error taxonomy so that
// handlers never leak storage implementation details to clients.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsNotFound reports whether err is the driver's empty-result sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
//
// The constraint is the actual backstop for concurrent registrations: two
// activations for the same email can both pass the best-effort pre-check,
// and the loser surfaces here.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
