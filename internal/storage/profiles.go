// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/compliance-service/internal/types"
)

var profileColumns = []string{
	"id", "email", "full_name", "avatar_url", "role", "organization_id", "subscription_status", "subscription_plan",
	"created_at", "updated_at",
}

func scanProfile(row rowScanner, p *types.Profile) error {
	return row.Scan(&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &p.Role, &p.OrganizationID, &p.SubscriptionStatus, &p.SubscriptionPlan, &p.CreatedAt, &p.UpdatedAt)
}

// UpsertProfile creates the profile or refreshes its email and name, the other fields are kept on conflict.
func (s *Storage) UpsertProfile(ctx context.Context, p *types.Profile) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertProfile")
	defer span.End()

	role := p.Role
	if role == "" {
		role = types.RoleViewer
	}

	status := p.SubscriptionStatus
	if status == "" {
		status = types.SubscriptionTrial
	}

	var profile types.Profile
	err := scanProfile(
		s.db.Statement(ctx).
			Insert("profiles").
			Columns("id", "email", "full_name", "avatar_url", "role", "organization_id", "subscription_status", "subscription_plan").
			Values(p.ID, strings.ToLower(p.Email), p.FullName, p.AvatarURL, role, p.OrganizationID, status, p.SubscriptionPlan).
			Suffix(
				"ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, full_name = COALESCE(EXCLUDED.full_name, profiles.full_name), updated_at = ? RETURNING "+strings.Join(profileColumns, ", "),
				s.now(),
			).
			QueryRowContext(ctx),
		&profile,
	)
	if err != nil {
		return nil, wrapWriteError(err, "failed to upsert profile")
	}

	return &profile, nil
}

func (s *Storage) GetProfile(ctx context.Context, userID string) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetProfile")
	defer span.End()

	var p types.Profile
	err := scanProfile(
		s.db.Statement(ctx).
			Select(profileColumns...).
			From("profiles").
			Where(sq.Eq{"id": userID}).
			QueryRowContext(ctx),
		&p,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

func (s *Storage) GetOrganization(ctx context.Context, id string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetOrganization")
	defer span.End()

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var o types.Organization
	err := s.db.Statement(ctx).
		Select("id", "name", "industry", "size", "created_at", "updated_at").
		From("organizations").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&o.ID, &o.Name, &o.Industry, &o.Size, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return &o, nil
}

// GetSubscriptionByOrganization returns the most recently updated subscription of the organization.
func (s *Storage) GetSubscriptionByOrganization(ctx context.Context, organizationID string) (*types.Subscription, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetSubscriptionByOrganization")
	defer span.End()

	if _, err := uuid.Parse(organizationID); err != nil {
		return nil, ErrNotFound
	}

	var sub types.Subscription
	err := s.db.Statement(ctx).
		Select(
			"id", "organization_id", "customer_id", "subscription_id", "plan", "status",
			"current_period_start", "current_period_end", "created_at", "updated_at",
		).
		From("subscriptions").
		Where(sq.Eq{"organization_id": organizationID}).
		OrderBy("updated_at DESC").
		Limit(1).
		QueryRowContext(ctx).
		Scan(
			&sub.ID, &sub.OrganizationID, &sub.CustomerID, &sub.SubscriptionID, &sub.Plan, &sub.Status,
			&sub.CurrentPeriodStart, &sub.CurrentPeriodEnd, &sub.CreatedAt, &sub.UpdatedAt,
		)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &sub, nil
}
