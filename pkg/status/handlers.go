// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"maps"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/compliance-service/internal/http/types"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/version"
)

const (
	okValue    = "ok"
	checkLimit = 3 * time.Second
)

type Status struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type BuildInfo struct {
	Version string `json:"version"`
}

type API struct {
	dependencies map[string]PingerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/status", a.status)
	mux.Get("/api/v0/version", a.version)
}

func (a *API) status(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.status")
	defer span.End()

	checks := a.check(ctx)

	s := Status{Status: okValue, Checks: checks}
	code := http.StatusOK

	for _, result := range checks {
		if result != okValue {
			s.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	httptypes.WriteJSON(w, code, s)
}

// check pings every dependency concurrently and feeds the availability gauge.
func (a *API) check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, checkLimit)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]string, len(a.dependencies))
	)

	for _, name := range slices.Sorted(maps.Keys(a.dependencies)) {
		wg.Add(1)
		go func(name string, dep PingerInterface) {
			defer wg.Done()

			result, available := okValue, 1.0
			if err := dep.Ping(ctx); err != nil {
				a.logger.Warnf("dependency %s is unavailable: %v", name, err)
				result, available = "unavailable", 0.0
			}

			if err := a.monitor.SetDependencyAvailability(map[string]string{"component": name}, available); err != nil {
				a.logger.Debugf("failed to record availability of %s: %v", name, err)
			}

			mu.Lock()
			results[name] = result
			mu.Unlock()
		}(name, a.dependencies[name])
	}

	wg.Wait()

	return results
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	httptypes.WriteJSON(w, http.StatusOK, BuildInfo{Version: version.Version})
}

// NewAPI builds the status endpoints, dependencies are keyed by the component name reported in metrics.
func NewAPI(dependencies map[string]PingerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.dependencies = dependencies
	if a.dependencies == nil {
		a.dependencies = make(map[string]PingerInterface)
	}

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
