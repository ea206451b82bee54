// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	httptypes "github.com/canonical/compliance-service/internal/http/types"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/types"
	"github.com/canonical/compliance-service/pkg/authentication"
)

type InviteRequest struct {
	Email string     `json:"email" validate:"required,email"`
	Role  types.Role `json:"role,omitempty" validate:"omitempty,oneof=admin manager auditor viewer"`
}

type InviteResponse struct {
	Invitation   *types.ClientInvitation `json:"invitation"`
	RecoveryLink string                  `json:"recovery_link,omitempty"`
}

type RoleRequest struct {
	Role types.Role `json:"role" validate:"required,oneof=admin manager auditor viewer"`
}

type SwitchResponse struct {
	Switched bool     `json:"switched"`
	Snapshot Snapshot `json:"directory"`
}

type API struct {
	manager    ManagerInterface
	onboarding OnboardingInterface
	validate   *validator.Validate

	logger logging.LoggerInterface
}

// RegisterEndpoints mounts the directory endpoints, mux must sit behind the authentication middleware.
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/clients", a.listClients)
	mux.Post("/api/v0/clients", a.createClient)
	mux.Patch("/api/v0/clients/{id}", a.updateClient)
	mux.Post("/api/v0/clients/{id}/switch", a.switchClient)
	mux.Get("/api/v0/clients/{id}/members", a.listMembers)
	mux.Patch("/api/v0/clients/{id}/members/{userID}", a.updateMemberRole)
	mux.Get("/api/v0/clients/{id}/invitations", a.listInvitations)
	mux.Post("/api/v0/clients/{id}/invitations", a.invite)
	mux.Delete("/api/v0/clients/{id}/invitations/{invitationID}", a.revokeInvitation)
	mux.Post("/api/v0/invitations/{token}/accept", a.acceptInvitation)
}

func (a *API) directory(w http.ResponseWriter, r *http.Request) (DirectoryInterface, bool) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		httptypes.WriteError(w, http.StatusUnauthorized, ErrNoUser.Error())
		return nil, false
	}

	return a.manager.ForUser(r.Context(), userID), true
}

// listClients serves the cached list, ?refresh=true refetches it first.
func (a *API) listClients(w http.ResponseWriter, r *http.Request) {
	d, ok := a.directory(w, r)
	if !ok {
		return
	}

	if refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh")); refresh {
		if err := d.Refresh(r.Context()); err != nil {
			a.writeError(w, err)
			return
		}
	}

	httptypes.WriteData(w, http.StatusOK, d.Snapshot(), "")
}

func (a *API) createClient(w http.ResponseWriter, r *http.Request) {
	d, ok := a.directory(w, r)
	if !ok {
		return
	}

	input := new(ClientInput)
	if err := httptypes.DecodeJSON(r, input, nil); err != nil {
		httptypes.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	client, err := d.CreateClient(r.Context(), input)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusCreated, client, "client created")
}

func (a *API) updateClient(w http.ResponseWriter, r *http.Request) {
	d, ok := a.directory(w, r)
	if !ok {
		return
	}

	update := new(types.ClientUpdate)
	if err := httptypes.DecodeJSON(r, update, nil); err != nil {
		httptypes.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	client, err := d.UpdateClient(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		a.writeError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, client, "client updated")
}

func (a *API) switchClient(w http.ResponseWriter, r *http.Request) {
	d, ok := a.directory(w, r)
	if !ok {
		return
	}

	switched := d.SwitchClient(r.Context(), chi.URLParam(r, "id"))

	message := "active client updated"
	if !switched {
		message = "client is not part of the directory, selection unchanged"
	}

	httptypes.WriteData(w, http.StatusOK, SwitchResponse{Switched: switched, Snapshot: d.Snapshot()}, message)
}

func (a *API) listMembers(w http.ResponseWriter, r *http.Request) {
	d, ok := a.directory(w, r)
	if !ok {
		return
	}

	members, err := d.ListMembers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, members, "")
}

func (a *API) updateMemberRole(w http.ResponseWriter, r *http.Request) {
	d, ok := a.directory(w, r)
	if !ok {
		return
	}

	req := new(RoleRequest)
	if err := httptypes.DecodeJSON(r, req, a.validate); err != nil {
		httptypes.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := d.UpdateMemberRole(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "userID"), req.Role); err != nil {
		a.writeError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, req, "member role updated")
}

func (a *API) listInvitations(w http.ResponseWriter, r *http.Request) {
	d, ok := a.directory(w, r)
	if !ok {
		return
	}

	invitations, err := d.ListPendingInvitations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, invitations, "")
}

func (a *API) invite(w http.ResponseWriter, r *http.Request) {
	d, ok := a.directory(w, r)
	if !ok {
		return
	}

	req := new(InviteRequest)
	if err := httptypes.DecodeJSON(r, req, a.validate); err != nil {
		httptypes.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	invitation, err := d.InviteUserToClient(r.Context(), chi.URLParam(r, "id"), req.Email, req.Role)
	if err != nil {
		a.writeError(w, err)
		return
	}

	resp := InviteResponse{Invitation: invitation}

	if a.onboarding != nil {
		link, err := a.onboarding.ProvisionInvitee(r.Context(), invitation)
		if err != nil {
			a.logger.Warnf("failed to provision identity for invitation %s: %v", invitation.ID, err)
		}
		resp.RecoveryLink = link
	}

	httptypes.WriteData(w, http.StatusCreated, resp, "invitation created")
}

func (a *API) revokeInvitation(w http.ResponseWriter, r *http.Request) {
	d, ok := a.directory(w, r)
	if !ok {
		return
	}

	if err := d.RevokeInvitation(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "invitationID")); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) acceptInvitation(w http.ResponseWriter, r *http.Request) {
	d, ok := a.directory(w, r)
	if !ok {
		return
	}

	membership, err := d.AcceptInvitation(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, membership, "invitation accepted")
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	status := errorStatus(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}

	httptypes.WriteError(w, status, message)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoUser):
		return http.StatusUnauthorized
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrClientNotFound), errors.Is(err, ErrMemberNotFound), errors.Is(err, ErrInvitationNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvitationPending), errors.Is(err, ErrInvitationAccepted):
		return http.StatusConflict
	case errors.Is(err, ErrInvitationExpired):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// NewAPI builds the directory endpoints, onboarding may be nil.
func NewAPI(manager ManagerInterface, onboarding OnboardingInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.manager = manager
	a.onboarding = onboarding
	a.validate = validator.New(validator.WithRequiredStructEnabled())
	a.logger = logger

	return a
}
