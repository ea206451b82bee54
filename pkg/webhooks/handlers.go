// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/ory/hydra/v2/oauth2"

	httptypes "github.com/canonical/compliance-service/internal/http/types"
	"github.com/canonical/compliance-service/internal/logging"
)

type API struct {
	service  ServiceInterface
	apiKey   string
	validate *validator.Validate

	logger logging.LoggerInterface
}

// RegisterEndpoints mounts the hooks called by kratos and hydra. They are not behind user
// authentication; when an api key is configured both callers must send it as Authorization header.
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Group(func(r chi.Router) {
		r.Use(a.requireAPIKey)
		r.Post("/webhooks/registration", a.registration)
		r.Post("/webhooks/token", a.tokenHook)
	})
}

func (a *API) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.apiKey == "" || subtle.ConstantTimeCompare([]byte(r.Header.Get("Authorization")), []byte(a.apiKey)) == 1 {
			next.ServeHTTP(w, r)
			return
		}

		a.logger.Security().AuthnFailure("", logging.WithContext("reason", "invalid webhook api key"), logging.WithContext("path", r.URL.Path))
		httptypes.WriteError(w, http.StatusUnauthorized, "invalid api key")
	})
}

func (a *API) registration(w http.ResponseWriter, r *http.Request) {
	identity := new(KratosIdentity)
	if err := json.NewDecoder(r.Body).Decode(identity); err != nil {
		a.logger.Warnf("failed to decode registration hook: %v", err)
		httptypes.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.validate.Struct(identity); err != nil {
		httptypes.WriteError(w, http.StatusBadRequest, httptypes.ValidationMessage(err).Error())
		return
	}

	a.logger.Debugf("registration hook for identity %s", identity.ID)

	if _, err := a.service.HandleRegistration(r.Context(), identity); err != nil {
		a.logger.Errorf("failed to handle registration of %s: %v", identity.ID, err)
		httptypes.WriteError(w, http.StatusInternalServerError, "failed to mirror profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// tokenHook answers 204 when the subject holds no memberships, hydra then issues the tokens unchanged.
func (a *API) tokenHook(w http.ResponseWriter, r *http.Request) {
	req := new(oauth2.TokenHookRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		a.logger.Warnf("failed to decode token hook: %v", err)
		httptypes.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := a.service.HandleTokenHook(r.Context(), req)
	if err != nil {
		a.logger.Errorf("failed to handle token hook: %v", err)
		httptypes.WriteError(w, http.StatusInternalServerError, "failed to compute token claims")
		return
	}

	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, resp)
}

func NewAPI(service ServiceInterface, apiKey string, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.apiKey = apiKey
	a.validate = validator.New(validator.WithRequiredStructEnabled())

	a.logger = logger

	return a
}
