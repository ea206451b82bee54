// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
)

var errAccessDenied = errors.New("token not allowed to call the api")

// machineClaims covers both the space separated "scope" claim and the "scp" list used by some issuers.
type machineClaims struct {
	Subject string   `json:"sub"`
	Scope   string   `json:"scope"`
	Scopes  []string `json:"scp"`
}

func (c machineClaims) hasScope(scope string) bool {
	return slices.Contains(strings.Fields(c.Scope), scope) || slices.Contains(c.Scopes, scope)
}

// AccessPolicy decides which machine tokens may call the api.
// A token passes when its subject is allow listed or it carries the required scope.
// An empty policy admits nobody.
type AccessPolicy struct {
	AllowedSubjects []string
	RequiredScope   string
}

func (p AccessPolicy) allows(c machineClaims) bool {
	if slices.Contains(p.AllowedSubjects, c.Subject) {
		return true
	}

	return p.RequiredScope != "" && c.hasScope(p.RequiredScope)
}

// JWTVerifier accepts access tokens minted by an external OIDC issuer, typically through the
// client credentials grant, for automation calling the api on its own behalf.
type JWTVerifier struct {
	verifier *oidc.IDTokenVerifier
	policy   AccessPolicy

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (v *JWTVerifier) VerifyToken(ctx context.Context, rawToken string) (string, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.JWTVerifier.VerifyToken")
	defer span.End()

	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return "", fmt.Errorf("failed to verify jwt: %w", err)
	}

	claims := machineClaims{}
	if err := token.Claims(&claims); err != nil {
		return "", fmt.Errorf("failed to decode jwt claims: %w", err)
	}

	if !v.policy.allows(claims) {
		v.logger.Security().AuthzFailure(claims.Subject, "jwt_api_access")
		return "", errAccessDenied
	}

	return claims.Subject, nil
}

func NewJWTVerifier(verifier *oidc.IDTokenVerifier, policy AccessPolicy, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *JWTVerifier {
	v := new(JWTVerifier)

	v.verifier = verifier
	v.policy = policy
	v.tracer = tracer
	v.monitor = monitor
	v.logger = logger

	return v
}

// NewJWTAuthenticator builds a JWTVerifier for issuer. Keys come from jwksURL when set,
// otherwise from the issuer discovery document. Audience is not checked, access is granted
// through the subject and scope policy instead.
func NewJWTAuthenticator(
	ctx context.Context,
	issuer string,
	jwksURL string,
	allowedSubjects []string,
	requiredScope string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (*JWTVerifier, error) {
	if issuer == "" {
		return nil, fmt.Errorf("issuer is required for JWT authentication")
	}

	policy := AccessPolicy{AllowedSubjects: allowedSubjects, RequiredScope: requiredScope}
	if len(policy.AllowedSubjects) == 0 && policy.RequiredScope == "" {
		return nil, fmt.Errorf("jwt authentication needs allowed subjects or a required scope")
	}

	ctx = oidc.ClientContext(ctx, &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)})
	cfg := &oidc.Config{SkipClientIDCheck: true}

	if jwksURL != "" {
		logger.Infof("Verifying machine tokens from %s with keys at %s", issuer, jwksURL)
		return NewJWTVerifier(oidc.NewVerifier(issuer, oidc.NewRemoteKeySet(ctx, jwksURL), cfg), policy, tracer, monitor, logger), nil
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover issuer %s: %w", issuer, err)
	}

	logger.Infof("Verifying machine tokens from %s with discovered keys", issuer)

	return NewJWTVerifier(provider.Verifier(cfg), policy, tracer, monitor, logger), nil
}
