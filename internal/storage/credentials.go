// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/compliance-service/internal/types"
)

func (s *Storage) CreateCredential(ctx context.Context, c *types.Credential) error {
	ctx, span := s.tracer.Start(ctx, "storage.CreateCredential")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("credentials").
		Columns("user_id", "email", "password_hash", "full_name").
		Values(c.UserID, strings.ToLower(c.Email), c.PasswordHash, c.FullName).
		ExecContext(ctx)
	if err != nil {
		return wrapWriteError(err, "failed to insert credential")
	}

	return nil
}

func (s *Storage) GetCredentialByEmail(ctx context.Context, email string) (*types.Credential, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetCredentialByEmail")
	defer span.End()

	var c types.Credential
	err := s.db.Statement(ctx).
		Select("user_id", "email", "password_hash", "full_name", "created_at").
		From("credentials").
		Where(sq.Eq{"lower(email)": strings.ToLower(strings.TrimSpace(email))}).
		QueryRowContext(ctx).
		Scan(&c.UserID, &c.Email, &c.PasswordHash, &c.FullName, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}

	return &c, nil
}
