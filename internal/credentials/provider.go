// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/canonical/compliance-service/internal/identity"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/storage"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
)

const issuer = "compliance-service"

var _ identity.ProviderInterface = (*Provider)(nil)

type claims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type Config struct {
	Secret            []byte
	SessionTTL        time.Duration
	MinPasswordLength int
	SignUpEnabled     bool
}

// Provider is a password provider backed by the credentials table, sessions are HS256 JWTs.
type Provider struct {
	storage     StorageInterface
	revocations RevocationStoreInterface

	cfg        Config
	validate   *validator.Validate
	bcryptCost int
	now        func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (p *Provider) SignUp(ctx context.Context, email, password, fullName string) (*types.User, *types.Session, error) {
	ctx, span := p.tracer.Start(ctx, "credentials.Provider.SignUp")
	defer span.End()

	if !p.cfg.SignUpEnabled {
		return nil, nil, identity.ErrRegistrationDisabled
	}

	email = strings.TrimSpace(email)
	if err := p.validate.Var(email, "required,email"); err != nil {
		return nil, nil, identity.ErrInvalidEmail
	}

	if len(password) < p.cfg.MinPasswordLength {
		return nil, nil, fmt.Errorf("%w: minimum is %d characters", identity.ErrPasswordTooShort, p.cfg.MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", identity.ErrSignUpFailed, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", identity.ErrSignUpFailed, err)
	}

	c := &types.Credential{
		UserID:       id.String(),
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(fullName),
	}

	if err := p.storage.CreateCredential(ctx, c); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, nil, identity.ErrAccountExists
		}
		return nil, nil, fmt.Errorf("%w: %v", identity.ErrSignUpFailed, err)
	}

	user := &types.User{ID: c.UserID, Email: c.Email, FullName: c.FullName}

	session, err := p.issue(*user)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (*types.Session, error) {
	ctx, span := p.tracer.Start(ctx, "credentials.Provider.SignIn")
	defer span.End()

	c, err := p.storage.GetCredentialByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, identity.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up credential: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
		return nil, identity.ErrInvalidCredentials
	}

	return p.issue(types.User{ID: c.UserID, Email: c.Email, FullName: c.FullName})
}

func (p *Provider) SignOut(ctx context.Context, token string) error {
	ctx, span := p.tracer.Start(ctx, "credentials.Provider.SignOut")
	defer span.End()

	cl, err := p.parse(token)
	if err != nil {
		return err
	}

	ttl := cl.ExpiresAt.Sub(p.now())

	return p.revocations.Revoke(ctx, cl.ID, ttl)
}

func (p *Provider) GetSession(ctx context.Context, token string) (*types.Session, error) {
	ctx, span := p.tracer.Start(ctx, "credentials.Provider.GetSession")
	defer span.End()

	cl, err := p.parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := p.revocations.Revoked(ctx, cl.ID)
	if err != nil {
		return nil, err
	}

	if revoked {
		return nil, identity.ErrSessionNotFound
	}

	return &types.Session{
		Token:     token,
		User:      types.User{ID: cl.Subject, Email: cl.Email, FullName: cl.Name},
		ExpiresAt: cl.ExpiresAt.Time,
	}, nil
}

func (p *Provider) issue(user types.User) (*types.Session, error) {
	now := p.now()
	expiresAt := now.Add(p.cfg.SessionTTL)

	cl := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: user.Email,
		Name:  user.FullName,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(p.cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &types.Session{Token: signed, User: user, ExpiresAt: expiresAt}, nil
}

func (p *Provider) parse(token string) (*claims, error) {
	cl := new(claims)

	_, err := jwt.ParseWithClaims(
		token,
		cl,
		func(*jwt.Token) (any, error) { return p.cfg.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		p.logger.Debugf("rejected session token: %v", err)
		return nil, identity.ErrSessionNotFound
	}

	return cl, nil
}

func NewProvider(
	storage StorageInterface,
	revocations RevocationStoreInterface,
	cfg Config,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Provider {
	p := new(Provider)

	p.storage = storage
	p.revocations = revocations
	p.cfg = cfg
	p.validate = validator.New(validator.WithRequiredStructEnabled())
	p.bcryptCost = bcrypt.DefaultCost
	p.now = time.Now

	p.tracer = tracer
	p.monitor = monitor
	p.logger = logger

	return p
}
