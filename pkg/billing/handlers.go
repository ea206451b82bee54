// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	httptypes "github.com/canonical/compliance-service/internal/http/types"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/pkg/authentication"
)

type API struct {
	service  ServiceInterface
	validate *validator.Validate

	logger logging.LoggerInterface
}

// RegisterPublicEndpoints mounts the catalog endpoints that need no session.
func (a *API) RegisterPublicEndpoints(mux chi.Router) {
	mux.Get("/api/v0/billing/plans", a.listPlans)
	mux.Get("/api/v0/billing/config", a.config)
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/billing/subscription", a.subscription)
	mux.Post("/api/v0/billing/checkout", a.checkout)
}

func (a *API) listPlans(w http.ResponseWriter, r *http.Request) {
	httptypes.WriteData(w, http.StatusOK, a.service.ListPlans(r.Context()), "")
}

func (a *API) config(w http.ResponseWriter, r *http.Request) {
	httptypes.WriteData(w, http.StatusOK, a.service.Config(r.Context()), "")
}

func (a *API) subscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		httptypes.WriteError(w, http.StatusUnauthorized, "not signed in")
		return
	}

	view, err := a.service.GetSubscription(r.Context(), userID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, view, "")
}

func (a *API) checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		httptypes.WriteError(w, http.StatusUnauthorized, "not signed in")
		return
	}

	req := new(CheckoutRequest)
	if err := httptypes.DecodeJSON(r, req, a.validate); err != nil {
		httptypes.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := a.service.CreateCheckout(r.Context(), userID, req.Plan)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusCreated, session, "checkout session created")
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPlanNotFound), errors.Is(err, ErrProfileNotFound):
		httptypes.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrCheckoutDisabled):
		httptypes.WriteError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, ErrPaymentUnavailable):
		httptypes.WriteError(w, http.StatusBadGateway, ErrPaymentUnavailable.Error())
	default:
		a.logger.Errorf("billing request failed: %v", err)
		httptypes.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.validate = validator.New(validator.WithRequiredStructEnabled())
	a.logger = logger

	return a
}
