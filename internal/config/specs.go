// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

const (
	AuthProviderKratos = "kratos"
	AuthProviderLocal  = "local"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"*"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	RedisAddr     string        `envconfig:"redis_addr"`
	RedisPassword string        `envconfig:"redis_password"`
	RedisDB       int           `envconfig:"redis_db" default:"0"`
	SelectionTTL  time.Duration `envconfig:"selection_ttl" default:"720h"`

	AuthProvider        string        `envconfig:"auth_provider" default:"kratos"`
	KratosPublicURL     string        `envconfig:"kratos_public_url"`
	KratosAdminURL      string        `envconfig:"kratos_admin_url"`
	JWTSecret           string        `envconfig:"jwt_secret"`
	SessionTTL          time.Duration `envconfig:"session_ttl" default:"24h"`
	PasswordMinLen      int           `envconfig:"password_min_length" default:"6"`
	SignUpEnabled       bool          `envconfig:"signup_enabled" default:"true"`
	OIDCIssuer          string        `envconfig:"oidc_issuer"`
	OIDCJWKSURL         string        `envconfig:"oidc_jwks_url"`
	OIDCAllowedSubjects []string      `envconfig:"oidc_allowed_subjects"`
	OIDCRequiredScope   string        `envconfig:"oidc_required_scope" default:"compliance-service:api"`
	AuthEnabled         bool          `envconfig:"authentication_enabled" default:"true"`
	OnboardingEnabled   bool          `envconfig:"onboarding_enabled" default:"false"`
	WebhookAPIKey       string        `envconfig:"webhook_api_key"`

	InvitationLifetime time.Duration `envconfig:"invitation_lifetime" default:"168h"`

	PaymentAPIURL         string `envconfig:"payment_api_url" default:"https://api.stripe.com"`
	PaymentSecretKey      string `envconfig:"payment_secret_key"`
	PaymentPublishableKey string `envconfig:"PAYMENT_PUBLISHABLE_KEY" required:"true"`
	PaymentSuccessURL     string `envconfig:"payment_success_url" default:"http://localhost:5173/?checkout=success"`
	PaymentCancelURL      string `envconfig:"payment_cancel_url" default:"http://localhost:5173/?checkout=cancel"`

	AuthorizationEnabled bool   `envconfig:"authorization_enabled" default:"false"`
	OpenfgaApiScheme     string `envconfig:"openfga_api_scheme" default:""`
	OpenfgaApiHost       string `envconfig:"openfga_api_host"`
	OpenfgaApiToken      string `envconfig:"openfga_api_token"`
	OpenfgaStoreId       string `envconfig:"openfga_store_id"`
	OpenfgaModelId       string `envconfig:"openfga_authorization_model_id" default:""`
}
