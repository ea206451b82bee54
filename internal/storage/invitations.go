// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/compliance-service/internal/types"
)

const invitationTokenBytes = 32

var invitationColumns = []string{
	"id", "client_id", "email", "role", "token", "invited_by", "created_at", "expires_at", "accepted_at",
}

func scanInvitation(row rowScanner, i *types.ClientInvitation) error {
	return row.Scan(&i.ID, &i.ClientID, &i.Email, &i.Role, &i.Token, &i.InvitedBy, &i.CreatedAt, &i.ExpiresAt, &i.AcceptedAt)
}

func newInvitationToken() (string, error) {
	b := make([]byte, invitationTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// CreateInvitation stores a pending invitation with a freshly generated token.
// ErrDuplicateKey is returned when a pending invitation already exists for the same client and email,
// ErrForeignKeyViolation when the client does not exist.
func (s *Storage) CreateInvitation(ctx context.Context, invitation *types.ClientInvitation) (*types.ClientInvitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateInvitation")
	defer span.End()

	if invitation.ExpiresAt.IsZero() {
		return nil, fmt.Errorf("invitation expiry must be set")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation ID: %w", err)
	}

	token, err := newInvitationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation token: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(invitation.Email))

	var created types.ClientInvitation
	err = s.db.WithTx(ctx, func(txCtx context.Context) error {
		// concurrent invitations to the same client queue on the client row
		var clientID string
		err := s.db.Statement(txCtx).
			Select("id").
			From("clients").
			Where(sq.Eq{"id": invitation.ClientID}).
			Suffix("FOR UPDATE").
			QueryRowContext(txCtx).
			Scan(&clientID)
		if err != nil {
			if isNoRows(err) {
				return fmt.Errorf("client %s: %w", invitation.ClientID, ErrForeignKeyViolation)
			}
			return fmt.Errorf("failed to lock client: %w", err)
		}

		var pending int
		err = s.db.Statement(txCtx).
			Select("COUNT(*)").
			From("client_invitations").
			Where(sq.Eq{"client_id": invitation.ClientID, "lower(email)": email}).
			Where(sq.Eq{"accepted_at": nil}).
			Where(sq.Gt{"expires_at": s.now()}).
			QueryRowContext(txCtx).
			Scan(&pending)
		if err != nil {
			return fmt.Errorf("failed to check pending invitations: %w", err)
		}

		if pending > 0 {
			return fmt.Errorf("pending invitation for %s: %w", email, ErrDuplicateKey)
		}

		err = scanInvitation(
			s.db.Statement(txCtx).
				Insert("client_invitations").
				Columns("id", "client_id", "email", "role", "token", "invited_by", "expires_at").
				Values(id.String(), invitation.ClientID, email, invitation.Role, token, invitation.InvitedBy, invitation.ExpiresAt).
				Suffix("RETURNING "+strings.Join(invitationColumns, ", ")).
				QueryRowContext(txCtx),
			&created,
		)
		if err != nil {
			return wrapWriteError(err, "failed to insert invitation")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// ListPendingInvitations returns the unaccepted, unexpired invitations of a client, newest first.
func (s *Storage) ListPendingInvitations(ctx context.Context, clientID string) ([]*types.ClientInvitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListPendingInvitations")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(invitationColumns...).
		From("client_invitations").
		Where(sq.Eq{"client_id": clientID, "accepted_at": nil}).
		Where(sq.Gt{"expires_at": s.now()}).
		OrderBy("created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	invitations := make([]*types.ClientInvitation, 0)
	for rows.Next() {
		var i types.ClientInvitation
		if err := scanInvitation(rows, &i); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, &i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return invitations, nil
}

// RevokeInvitation deletes a pending invitation of the client.
func (s *Storage) RevokeInvitation(ctx context.Context, clientID, invitationID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.RevokeInvitation")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("client_invitations").
		Where(sq.Eq{"id": invitationID, "client_id": clientID, "accepted_at": nil}).
		ExecContext(ctx)
	if err != nil {
		return wrapWriteError(err, "failed to revoke invitation")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// AcceptInvitation locks the invitation row, adds the membership and marks the invitation accepted.
// An existing membership of the user on the client is left untouched.
func (s *Storage) AcceptInvitation(ctx context.Context, token, userID string) (*types.ClientUser, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AcceptInvitation")
	defer span.End()

	membershipID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate membership ID: %w", err)
	}

	var membership types.ClientUser
	err = s.db.WithTx(ctx, func(txCtx context.Context) error {
		var invitation types.ClientInvitation
		err := scanInvitation(
			s.db.Statement(txCtx).
				Select(invitationColumns...).
				From("client_invitations").
				Where(sq.Eq{"token": token}).
				Suffix("FOR UPDATE").
				QueryRowContext(txCtx),
			&invitation,
		)
		if err != nil {
			if isNoRows(err) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get invitation: %w", err)
		}

		now := s.now()
		if invitation.AcceptedAt != nil {
			return ErrInvitationAccepted
		}
		if !invitation.ExpiresAt.After(now) {
			return ErrInvitationExpired
		}

		_, err = s.db.Statement(txCtx).
			Insert("client_users").
			Columns("id", "client_id", "user_id", "role").
			Values(membershipID.String(), invitation.ClientID, userID, invitation.Role).
			Suffix("ON CONFLICT (client_id, user_id) DO NOTHING").
			ExecContext(txCtx)
		if err != nil {
			return wrapWriteError(err, "failed to insert membership")
		}

		err = s.db.Statement(txCtx).
			Select("id", "client_id", "user_id", "role", "joined_at").
			From("client_users").
			Where(sq.Eq{"client_id": invitation.ClientID, "user_id": userID}).
			QueryRowContext(txCtx).
			Scan(&membership.ID, &membership.ClientID, &membership.UserID, &membership.Role, &membership.JoinedAt)
		if err != nil {
			return fmt.Errorf("failed to read membership: %w", err)
		}

		_, err = s.db.Statement(txCtx).
			Update("client_invitations").
			Set("accepted_at", now).
			Where(sq.Eq{"id": invitation.ID}).
			ExecContext(txCtx)
		if err != nil {
			return fmt.Errorf("failed to mark invitation accepted: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvitationAccepted) || errors.Is(err, ErrInvitationExpired) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to accept invitation: %w", err)
	}

	return &membership, nil
}
