// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/compliance-service/internal/authorization"
	"github.com/canonical/compliance-service/internal/config"
	"github.com/canonical/compliance-service/internal/credentials"
	"github.com/canonical/compliance-service/internal/db"
	"github.com/canonical/compliance-service/internal/kratos"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/monitoring/prometheus"
	"github.com/canonical/compliance-service/internal/openfga"
	"github.com/canonical/compliance-service/internal/redis"
	"github.com/canonical/compliance-service/internal/selection"
	"github.com/canonical/compliance-service/internal/storage"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/pkg/authentication"
	"github.com/canonical/compliance-service/pkg/billing"
	"github.com/canonical/compliance-service/pkg/directory"
	"github.com/canonical/compliance-service/pkg/onboarding"
	"github.com/canonical/compliance-service/pkg/session"
	"github.com/canonical/compliance-service/pkg/status"
	"github.com/canonical/compliance-service/pkg/web"
	"github.com/canonical/compliance-service/pkg/webhooks"
)

const serviceName = "compliance-service"

var (
	_ directory.OnboardingInterface         = (*onboarding.Service)(nil)
	_ onboarding.KratosClientInterface      = (*kratos.Client)(nil)
	_ directory.AuthorizerInterface         = (*authorization.Authorizer)(nil)
	_ directory.AuthorizerInterface         = (*authorization.RoleAuthorizer)(nil)
	_ directory.StorageInterface            = (*storage.Storage)(nil)
	_ session.ProviderInterface             = (*kratos.Provider)(nil)
	_ session.ProviderInterface             = (*credentials.Provider)(nil)
	_ session.ProfileStorageInterface       = (*storage.Storage)(nil)
	_ authentication.TokenVerifierInterface = (*session.Registry)(nil)
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, configuration is read from the environment (see internal/config)`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		return fmt.Errorf("issues with environment sourcing: %w", err)
	}

	logger := logging.NewLogger(specs.LogLevel)
	defer logger.Sync()

	monitor := prometheus.NewMonitor(serviceName, logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	ctx := context.Background()

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	dependencies := map[string]status.PingerInterface{"database": dbClient}

	var (
		selections  directory.SelectionStoreInterface
		revocations credentials.RevocationStoreInterface
	)

	if specs.RedisAddr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: specs.RedisAddr, Password: specs.RedisPassword, DB: specs.RedisDB})
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()

		selections = selection.NewRedisStore(rdb, specs.SelectionTTL, tracer, monitor, logger)
		revocations = credentials.NewRedisRevocations(rdb)
		dependencies["redis"] = status.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		logger.Info("Using redis for client selection and token revocation")
	} else {
		selections = selection.NewMemoryStore()
		revocations = credentials.NewMemoryRevocations()
		logger.Info("Using in-memory client selection and token revocation")
	}

	authorizer, err := newAuthorizer(ctx, specs, s, tracer, monitor, logger)
	if err != nil {
		return err
	}

	provider, err := newSessionProvider(specs, s, revocations, tracer, monitor, logger)
	if err != nil {
		return err
	}

	registry := session.NewRegistry(provider, s, tracer, monitor, logger)
	directories := directory.NewManager(s, authorizer, selections, specs.InvitationLifetime, tracer, logger)
	registry.Subscribe(directories.OnSessionChange)

	verifier, err := newVerifier(ctx, specs, registry, tracer, monitor, logger)
	if err != nil {
		return err
	}

	var onboard directory.OnboardingInterface
	if specs.OnboardingEnabled {
		onboard = onboarding.NewService(
			kratos.NewClient(specs.KratosAdminURL, tracer, monitor, logger),
			specs.InvitationLifetime,
			tracer,
			monitor,
			logger,
		)
		logger.Info("Invitee onboarding is enabled")
	}

	var checkout billing.CheckoutInterface
	if specs.PaymentSecretKey != "" {
		checkout = billing.NewCheckoutClient(
			specs.PaymentAPIURL,
			specs.PaymentSecretKey,
			specs.PaymentSuccessURL,
			specs.PaymentCancelURL,
			tracer,
			monitor,
			logger,
		)
	} else {
		logger.Warn("No payment secret key configured, checkout is disabled")
	}

	catalog, err := billing.DefaultCatalog()
	if err != nil {
		return err
	}

	router := web.NewRouter(
		&web.RouterConfig{
			CORSAllowedOrigins: specs.CORSAllowedOrigins,
			DB:                 dbClient,
			Dependencies:       dependencies,
			Verifier:           verifier,
			Sessions:           registry,
			Directories:        directories,
			Onboarding:         onboard,
			Billing:            billing.NewService(catalog, s, checkout, specs.PaymentPublishableKey, tracer, monitor, logger),
			Webhooks:           webhooks.NewService(s, tracer, monitor, logger),
			WebhookAPIKey:      specs.WebhookAPIKey,
		},
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

func newAuthorizer(
	ctx context.Context,
	specs *config.EnvSpec,
	s *storage.Storage,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (directory.AuthorizerInterface, error) {
	if !specs.AuthorizationEnabled {
		logger.Info("Using membership role authorizer")
		return authorization.NewRoleAuthorizer(s, tracer, monitor, logger), nil
	}

	ofga := openfga.NewClient(
		openfga.NewConfig(
			specs.OpenfgaApiScheme,
			specs.OpenfgaApiHost,
			specs.OpenfgaStoreId,
			specs.OpenfgaApiToken,
			specs.OpenfgaModelId,
			specs.Debug,
			tracer,
			monitor,
			logger,
		),
	)

	authorizer := authorization.NewAuthorizer(ofga, tracer, monitor, logger)
	if err := authorizer.ValidateModel(ctx); err != nil {
		return nil, fmt.Errorf("invalid authorization model provided: %w", err)
	}

	logger.Info("Authorization is enabled")
	return authorizer, nil
}

func newSessionProvider(
	specs *config.EnvSpec,
	s *storage.Storage,
	revocations credentials.RevocationStoreInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (session.ProviderInterface, error) {
	switch specs.AuthProvider {
	case config.AuthProviderKratos:
		if specs.KratosPublicURL == "" {
			return nil, fmt.Errorf("KRATOS_PUBLIC_URL is required with the kratos auth provider")
		}
		return kratos.NewProvider(specs.KratosPublicURL, tracer, monitor, logger), nil
	case config.AuthProviderLocal:
		if specs.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required with the local auth provider")
		}
		cfg := credentials.Config{
			Secret:            []byte(specs.JWTSecret),
			SessionTTL:        specs.SessionTTL,
			MinPasswordLength: specs.PasswordMinLen,
			SignUpEnabled:     specs.SignUpEnabled,
		}
		return credentials.NewProvider(s, revocations, cfg, tracer, monitor, logger), nil
	}

	return nil, fmt.Errorf("unknown auth provider %q", specs.AuthProvider)
}

func newVerifier(
	ctx context.Context,
	specs *config.EnvSpec,
	registry *session.Registry,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (authentication.TokenVerifierInterface, error) {
	if !specs.AuthEnabled {
		logger.Warn("Authentication is disabled, bearer tokens are trusted as user ids")
		return authentication.NewNoopVerifier(), nil
	}

	verifiers := []authentication.TokenVerifierInterface{registry}

	if specs.OIDCIssuer != "" {
		jwt, err := authentication.NewJWTAuthenticator(
			ctx,
			specs.OIDCIssuer,
			specs.OIDCJWKSURL,
			specs.OIDCAllowedSubjects,
			specs.OIDCRequiredScope,
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return nil, err
		}

		verifiers = append(verifiers, jwt)
	}

	return authentication.NewChainVerifier(verifiers...), nil
}
