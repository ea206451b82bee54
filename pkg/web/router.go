// Copyright 2026 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/compliance-service/internal/db"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/pkg/authentication"
	"github.com/canonical/compliance-service/pkg/billing"
	"github.com/canonical/compliance-service/pkg/directory"
	"github.com/canonical/compliance-service/pkg/metrics"
	"github.com/canonical/compliance-service/pkg/session"
	"github.com/canonical/compliance-service/pkg/status"
	"github.com/canonical/compliance-service/pkg/webhooks"
)

// RouterConfig carries the services exposed over HTTP.
type RouterConfig struct {
	CORSAllowedOrigins []string

	DB           db.DBClientInterface
	Dependencies map[string]status.PingerInterface

	Verifier    authentication.TokenVerifierInterface
	Sessions    *session.Registry
	Directories directory.ManagerInterface
	Onboarding  directory.OnboardingInterface
	Billing     billing.ServiceInterface
	Webhooks    webhooks.ServiceInterface

	WebhookAPIKey string
}

func NewRouter(
	cfg *RouterConfig,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		middleware.Recoverer,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(cfg.CORSAllowedOrigins),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(cfg.Dependencies, tracer, monitor, logger).RegisterEndpoints(router)

	sessionAPI := session.NewAPI(cfg.Sessions, logger)
	directoryAPI := directory.NewAPI(cfg.Directories, cfg.Onboarding, logger)
	billingAPI := billing.NewAPI(cfg.Billing, logger)

	router.Group(func(r chi.Router) {
		if cfg.DB != nil {
			r.Use(db.TransactionMiddleware(cfg.DB, logger))
		}

		sessionAPI.RegisterEndpoints(r)
		billingAPI.RegisterPublicEndpoints(r)

		if cfg.Webhooks != nil {
			webhooks.NewAPI(cfg.Webhooks, cfg.WebhookAPIKey, logger).RegisterEndpoints(r)
		}

		r.Group(func(r chi.Router) {
			r.Use(authentication.NewMiddleware(cfg.Verifier, tracer, monitor, logger).Authenticate())

			sessionAPI.RegisterAuthenticatedEndpoints(r)
			directoryAPI.RegisterEndpoints(r)
			billingAPI.RegisterEndpoints(r)
		})
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
