// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Client is a tenant organization whose compliance data is managed by the platform.
type Client struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Industry    *string   `db:"industry" json:"industry,omitempty"`
	Size        *string   `db:"size" json:"size,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	Website     *string   `db:"website" json:"website,omitempty"`
	Address     *string   `db:"address" json:"address,omitempty"`
	LogoURL     *string   `db:"logo_url" json:"logo_url,omitempty"`
	CreatedBy   string    `db:"created_by" json:"created_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ClientWithRole is a client annotated with the caller's membership role.
type ClientWithRole struct {
	Client

	UserRole Role `json:"user_role"`
}

// ClientUpdate carries the fields of a partial client update, nil fields are left untouched.
type ClientUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Industry    *string `json:"industry,omitempty" validate:"omitempty,max=255"`
	Size        *string `json:"size,omitempty" validate:"omitempty,max=64"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=4096"`
	Website     *string `json:"website,omitempty" validate:"omitempty,max=2048"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=1024"`
	LogoURL     *string `json:"logo_url,omitempty" validate:"omitempty,max=2048"`
}

// Empty reports whether no field is set.
func (u ClientUpdate) Empty() bool {
	return u.Name == nil &&
		u.Industry == nil &&
		u.Size == nil &&
		u.Description == nil &&
		u.Website == nil &&
		u.Address == nil &&
		u.LogoURL == nil
}

type ClientUser struct {
	ID       string    `db:"id" json:"id"`
	ClientID string    `db:"client_id" json:"client_id"`
	UserID   string    `db:"user_id" json:"user_id"`
	Role     Role      `db:"role" json:"role"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}

// Member is a membership joined with the mirrored profile of the user.
type Member struct {
	ClientUser

	Email    string  `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
}

type ClientInvitation struct {
	ID         string     `db:"id" json:"id"`
	ClientID   string     `db:"client_id" json:"client_id"`
	Email      string     `db:"email" json:"email"`
	Role       Role       `db:"role" json:"role"`
	Token      string     `db:"token" json:"token,omitempty"`
	InvitedBy  string     `db:"invited_by" json:"invited_by"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	ExpiresAt  time.Time  `db:"expires_at" json:"expires_at"`
	AcceptedAt *time.Time `db:"accepted_at" json:"accepted_at,omitempty"`
}

// Pending reports whether the invitation can still be accepted at the given time.
func (i *ClientInvitation) Pending(now time.Time) bool {
	return i.AcceptedAt == nil && i.ExpiresAt.After(now)
}

// User is the identity owned by the authentication provider.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// Session is an authenticated session issued by the authentication provider.
type Session struct {
	Token     string    `json:"token,omitempty"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionInactive  SubscriptionStatus = "inactive"
	SubscriptionTrial     SubscriptionStatus = "trial"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

type Plan string

const (
	PlanStarter      Plan = "starter"
	PlanProfessional Plan = "professional"
	PlanEnterprise   Plan = "enterprise"
)

// Profile mirrors the auth provider identity inside the application database.
type Profile struct {
	ID                 string             `db:"id" json:"id"`
	Email              string             `db:"email" json:"email"`
	FullName           *string            `db:"full_name" json:"full_name,omitempty"`
	AvatarURL          *string            `db:"avatar_url" json:"avatar_url,omitempty"`
	Role               Role               `db:"role" json:"role"`
	OrganizationID     *string            `db:"organization_id" json:"organization_id,omitempty"`
	SubscriptionStatus SubscriptionStatus `db:"subscription_status" json:"subscription_status"`
	SubscriptionPlan   *Plan              `db:"subscription_plan" json:"subscription_plan,omitempty"`
	CreatedAt          time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `db:"updated_at" json:"updated_at"`
}

type Organization struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Industry  *string   `db:"industry" json:"industry,omitempty"`
	Size      *string   `db:"size" json:"size,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Subscription struct {
	ID                 string             `db:"id" json:"id"`
	OrganizationID     string             `db:"organization_id" json:"organization_id"`
	CustomerID         *string            `db:"customer_id" json:"customer_id,omitempty"`
	SubscriptionID     *string            `db:"subscription_id" json:"subscription_id,omitempty"`
	Plan               Plan               `db:"plan" json:"plan"`
	Status             SubscriptionStatus `db:"status" json:"status"`
	CurrentPeriodStart *time.Time         `db:"current_period_start" json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time         `db:"current_period_end" json:"current_period_end,omitempty"`
	CreatedAt          time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `db:"updated_at" json:"updated_at"`
}

// Credential is a locally managed password credential.
type Credential struct {
	UserID       string    `db:"user_id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FullName     string    `db:"full_name"`
	CreatedAt    time.Time `db:"created_at"`
}
