// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/compliance-service/internal/db"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

var clientColumns = []string{
	"c.id", "c.name", "c.industry", "c.size", "c.description", "c.website", "c.address", "c.logo_url",
	"c.created_by", "c.created_at", "c.updated_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

type Storage struct {
	db db.DBClientInterface

	now func() time.Time

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func scanClient(row rowScanner, c *types.Client, extra ...any) error {
	dest := []any{
		&c.ID, &c.Name, &c.Industry, &c.Size, &c.Description, &c.Website, &c.Address, &c.LogoURL,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	}

	return row.Scan(append(dest, extra...)...)
}

// ListClientsByUserID returns every client the user is a member of, ordered by name.
func (s *Storage) ListClientsByUserID(ctx context.Context, userID string) ([]*types.ClientWithRole, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListClientsByUserID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(append(clientColumns, "cu.role")...).
		From("clients c").
		Join("client_users cu ON c.id = cu.client_id").
		Where(sq.Eq{"cu.user_id": userID}).
		OrderBy("c.name ASC", "c.id ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]*types.ClientWithRole, 0)
	for rows.Next() {
		var c types.ClientWithRole
		if err := scanClient(rows, &c.Client, &c.UserRole); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return clients, nil
}

func (s *Storage) GetClient(ctx context.Context, id string) (*types.Client, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetClient")
	defer span.End()

	var c types.Client
	err := scanClient(
		s.db.Statement(ctx).
			Select(clientColumns...).
			From("clients c").
			Where(sq.Eq{"c.id": id}).
			QueryRowContext(ctx),
		&c,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return &c, nil
}

// CreateClient inserts the client and the creator's owner membership in a single transaction.
func (s *Storage) CreateClient(ctx context.Context, c *types.Client) (*types.Client, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateClient")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate client ID: %w", err)
	}

	membershipID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate membership ID: %w", err)
	}

	var created types.Client
	err = s.db.WithTx(ctx, func(txCtx context.Context) error {
		err := scanClient(
			s.db.Statement(txCtx).
				Insert("clients AS c").
				Columns("id", "name", "industry", "size", "description", "website", "address", "logo_url", "created_by").
				Values(id.String(), strings.TrimSpace(c.Name), c.Industry, c.Size, c.Description, c.Website, c.Address, c.LogoURL, c.CreatedBy).
				Suffix("RETURNING " + strings.Join(clientColumns, ", ")).
				QueryRowContext(txCtx),
			&created,
		)
		if err != nil {
			return wrapWriteError(err, "failed to insert client")
		}

		_, err = s.db.Statement(txCtx).
			Insert("client_users").
			Columns("id", "client_id", "user_id", "role").
			Values(membershipID.String(), created.ID, c.CreatedBy, types.RoleOwner).
			ExecContext(txCtx)
		if err != nil {
			return wrapWriteError(err, "failed to insert owner membership")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateClient applies the non-nil fields of update and returns the resulting row.
func (s *Storage) UpdateClient(ctx context.Context, id string, update *types.ClientUpdate) (*types.Client, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateClient")
	defer span.End()

	updateMap := make(map[string]interface{})
	set := func(column string, v *string) {
		if v != nil {
			updateMap[column] = *v
		}
	}

	if update.Name != nil {
		updateMap["name"] = strings.TrimSpace(*update.Name)
	}
	set("industry", update.Industry)
	set("size", update.Size)
	set("description", update.Description)
	set("website", update.Website)
	set("address", update.Address)
	set("logo_url", update.LogoURL)

	if len(updateMap) == 0 {
		return s.GetClient(ctx, id)
	}

	updateMap["updated_at"] = s.now()

	var c types.Client
	err := scanClient(
		s.db.Statement(ctx).
			Update("clients c").
			SetMap(updateMap).
			Where(sq.Eq{"c.id": id}).
			Suffix("RETURNING "+strings.Join(clientColumns, ", ")).
			QueryRowContext(ctx),
		&c,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return &c, nil
}

// ListClientIDs returns every client id in creation order.
func (s *Storage) ListClientIDs(ctx context.Context) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListClientIDs")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id").
		From("clients").
		OrderBy("created_at ASC", "id ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list client ids: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan client id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// GetMemberRole returns ErrNotFound when the user is not a member of the client.
func (s *Storage) GetMemberRole(ctx context.Context, clientID, userID string) (types.Role, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMemberRole")
	defer span.End()

	var role types.Role
	err := s.db.Statement(ctx).
		Select("role").
		From("client_users").
		Where(sq.Eq{"client_id": clientID, "user_id": userID}).
		QueryRowContext(ctx).
		Scan(&role)
	if err != nil {
		if isNoRows(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get member role: %w", err)
	}

	return role, nil
}

// ListMembers returns the memberships of a client, newest first, joined with profile data when present.
func (s *Storage) ListMembers(ctx context.Context, clientID string) ([]*types.Member, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembers")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("cu.id", "cu.client_id", "cu.user_id", "cu.role", "cu.joined_at", "COALESCE(p.email, '')", "p.full_name").
		From("client_users cu").
		LeftJoin("profiles p ON p.id = cu.user_id").
		Where(sq.Eq{"cu.client_id": clientID}).
		OrderBy("cu.joined_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := make([]*types.Member, 0)
	for rows.Next() {
		var m types.Member
		if err := rows.Scan(&m.ID, &m.ClientID, &m.UserID, &m.Role, &m.JoinedAt, &m.Email, &m.FullName); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

func (s *Storage) ListMembershipsByUserID(ctx context.Context, userID string) ([]*types.ClientUser, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembershipsByUserID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "client_id", "user_id", "role", "joined_at").
		From("client_users").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("joined_at ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	memberships := make([]*types.ClientUser, 0)
	for rows.Next() {
		var m types.ClientUser
		if err := rows.Scan(&m.ID, &m.ClientID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return memberships, nil
}

func (s *Storage) UpdateMemberRole(ctx context.Context, clientID, userID string, role types.Role) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateMemberRole")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("client_users").
		Set("role", role).
		Where(sq.Eq{
			"client_id": clientID,
			"user_id":   userID,
		}).
		ExecContext(ctx)
	if err != nil {
		return wrapWriteError(err, "failed to update member")
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

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c
	s.now = time.Now

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}
