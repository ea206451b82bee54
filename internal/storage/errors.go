// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrDuplicateKey        = errors.New("duplicate key violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")

	ErrInvitationExpired  = errors.New("invitation expired")
	ErrInvitationAccepted = errors.New("invitation already accepted")
)

const invalidTextRepresentation = "22P02"

// constraintErrors maps postgres SQLSTATE codes to the sentinels callers branch on.
// A malformed uuid cannot name an existing row, so it reads as not found.
var constraintErrors = map[string]error{
	"23505":                   ErrDuplicateKey,
	"23503":                   ErrForeignKeyViolation,
	invalidTextRepresentation: ErrNotFound,
}

// isNoRows reports whether err means nothing matched, including lookups by an id that is not a uuid.
func isNoRows(err error) bool {
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}

// wrapWriteError prefixes err with msg, translating constraint violations into
// sentinels and keeping the violated constraint name for the logs.
func wrapWriteError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", msg, err)
	}

	sentinel, ok := constraintErrors[pgErr.Code]
	if !ok {
		return fmt.Errorf("%s: %w", msg, err)
	}

	if pgErr.ConstraintName != "" {
		return fmt.Errorf("%s (%s): %w", msg, pgErr.ConstraintName, sentinel)
	}

	return fmt.Errorf("%s: %w", msg, sentinel)
}
