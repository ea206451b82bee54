// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	httptypes "github.com/canonical/compliance-service/internal/http/types"
	"github.com/canonical/compliance-service/internal/identity"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/types"
	"github.com/canonical/compliance-service/pkg/authentication"
)

type SignUpRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"max=255"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

type SignUpResponse struct {
	User                 *types.User      `json:"user"`
	Session              *SessionResponse `json:"session,omitempty"`
	ConfirmationRequired bool             `json:"confirmation_required"`
}

type MeResponse struct {
	User    *types.User    `json:"user"`
	Profile *types.Profile `json:"profile"`
	Loading bool           `json:"loading"`
}

type API struct {
	registry *Registry
	validate *validator.Validate

	logger logging.LoggerInterface
}

// RegisterEndpoints mounts the endpoints reachable without a session.
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/auth/signup", a.signUp)
	mux.Post("/api/v0/auth/signin", a.signIn)
}

// RegisterAuthenticatedEndpoints mounts the endpoints behind the authentication middleware.
func (a *API) RegisterAuthenticatedEndpoints(mux chi.Router) {
	mux.Post("/api/v0/auth/signout", a.signOut)
	mux.Get("/api/v0/auth/me", a.me)
}

func (a *API) signUp(w http.ResponseWriter, r *http.Request) {
	req := new(SignUpRequest)
	if err := httptypes.DecodeJSON(r, req, a.validate); err != nil {
		httptypes.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, user, err := a.registry.SignUp(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		status, message := signUpStatus(err)
		if status == http.StatusInternalServerError {
			a.logger.Errorf("sign up failed: %v", err)
		}
		httptypes.WriteError(w, status, message)
		return
	}

	resp := SignUpResponse{User: user, ConfirmationRequired: true}
	if token := s.Token(); token != "" {
		resp.Session = &SessionResponse{Token: token, ExpiresAt: s.ExpiresAt()}
		resp.ConfirmationRequired = false
	}

	httptypes.WriteData(w, http.StatusCreated, resp, "signed up")
}

func (a *API) signIn(w http.ResponseWriter, r *http.Request) {
	req := new(SignInRequest)
	if err := httptypes.DecodeJSON(r, req, a.validate); err != nil {
		httptypes.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := a.registry.SignIn(r.Context(), req.Email, req.Password)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		httptypes.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		a.logger.Errorf("sign in failed: %v", err)
		httptypes.WriteError(w, http.StatusBadGateway, "authentication provider unavailable")
		return
	}

	httptypes.WriteData(w, http.StatusOK, SessionResponse{Token: s.Token(), ExpiresAt: s.ExpiresAt()}, "signed in")
}

func (a *API) signOut(w http.ResponseWriter, r *http.Request) {
	token, _ := authentication.GetToken(r.Context())

	err := a.registry.SignOut(r.Context(), token)
	if err != nil && !errors.Is(err, identity.ErrSessionNotFound) {
		a.logger.Errorf("sign out failed: %v", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	token, _ := authentication.GetToken(r.Context())

	s, err := a.registry.Get(r.Context(), token)
	if err != nil {
		httptypes.WriteError(w, http.StatusUnauthorized, "no active session")
		return
	}

	httptypes.WriteData(w, http.StatusOK, MeResponse{User: s.User(), Profile: s.Profile(), Loading: s.Loading()}, "")
}

func signUpStatus(err error) (int, string) {
	switch {
	case errors.Is(err, identity.ErrAccountExists):
		return http.StatusConflict, identity.ErrAccountExists.Error()
	case errors.Is(err, identity.ErrPasswordTooShort):
		return http.StatusBadRequest, identity.ErrPasswordTooShort.Error()
	case errors.Is(err, identity.ErrInvalidEmail):
		return http.StatusBadRequest, identity.ErrInvalidEmail.Error()
	case errors.Is(err, identity.ErrRegistrationDisabled):
		return http.StatusForbidden, identity.ErrRegistrationDisabled.Error()
	default:
		return http.StatusInternalServerError, identity.ErrSignUpFailed.Error()
	}
}

func NewAPI(registry *Registry, logger logging.LoggerInterface) *API {
	a := new(API)

	a.registry = registry
	a.validate = validator.New(validator.WithRequiredStructEnabled())
	a.logger = logger

	return a
}
