// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package e2e

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/canonical/compliance-service/internal/types"
	"github.com/canonical/compliance-service/pkg/directory"
)

func createClient(t *testing.T, ctx context.Context, c *apiClient, name string) *types.Client {
	t.Helper()

	client := new(types.Client)
	if _, err := c.call(ctx, http.MethodPost, "/api/v0/clients", directory.ClientInput{Name: name}, client); err != nil {
		t.Fatalf("failed to create client %s: %v", name, err)
	}

	return client
}

func listClients(t *testing.T, ctx context.Context, c *apiClient) *directory.Snapshot {
	t.Helper()

	snapshot := new(directory.Snapshot)
	if _, err := c.call(ctx, http.MethodGet, "/api/v0/clients", nil, snapshot); err != nil {
		t.Fatalf("failed to list clients: %v", err)
	}

	return snapshot
}

func TestDirectoryActiveSelection(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	owner, _ := signUp(t, ctx, "selection")

	t.Run("No Clients", func(t *testing.T) {
		snapshot := listClients(t, ctx, owner)
		if snapshot.State != directory.StateReady || len(snapshot.Clients) != 0 || snapshot.ActiveClientID != "" {
			t.Errorf("expected a ready empty directory, got %+v", snapshot)
		}
	})

	beta := createClient(t, ctx, owner, "Beta")
	acme := createClient(t, ctx, owner, "Acme")

	t.Run("Sorted With Owner Role", func(t *testing.T) {
		snapshot := listClients(t, ctx, owner)
		if len(snapshot.Clients) != 2 {
			t.Fatalf("expected 2 clients, got %d", len(snapshot.Clients))
		}
		if snapshot.Clients[0].ID != acme.ID || snapshot.Clients[1].ID != beta.ID {
			t.Errorf("expected Acme before Beta, got %s, %s", snapshot.Clients[0].Name, snapshot.Clients[1].Name)
		}
		for _, c := range snapshot.Clients {
			if c.UserRole != types.RoleOwner {
				t.Errorf("expected owner role on %s, got %s", c.Name, c.UserRole)
			}
		}
	})

	t.Run("Switch Persists", func(t *testing.T) {
		resp := new(directory.SwitchResponse)
		if _, err := owner.call(ctx, http.MethodPost, "/api/v0/clients/"+beta.ID+"/switch", nil, resp); err != nil {
			t.Fatalf("failed to switch: %v", err)
		}
		if !resp.Switched || resp.Snapshot.ActiveClientID != beta.ID {
			t.Fatalf("expected Beta to be active, got %+v", resp)
		}

		// an update triggers a full reload of the directory
		name := "Beta Corp"
		if _, err := owner.call(ctx, http.MethodPatch, "/api/v0/clients/"+beta.ID, types.ClientUpdate{Name: &name}, nil); err != nil {
			t.Fatalf("failed to update client: %v", err)
		}

		snapshot := listClients(t, ctx, owner)
		if snapshot.ActiveClientID != beta.ID {
			t.Errorf("expected Beta to remain active after reload, got %s", snapshot.ActiveClientID)
		}
	})

	t.Run("Unknown Client Is Ignored", func(t *testing.T) {
		resp := new(directory.SwitchResponse)
		if _, err := owner.call(ctx, http.MethodPost, "/api/v0/clients/00000000-0000-0000-0000-000000000000/switch", nil, resp); err != nil {
			t.Fatalf("failed to switch: %v", err)
		}
		if resp.Switched || resp.Snapshot.ActiveClientID != beta.ID {
			t.Errorf("expected the active client to be unchanged, got %+v", resp)
		}
	})

	t.Run("Missing Name Is Rejected", func(t *testing.T) {
		status, err := owner.call(ctx, http.MethodPost, "/api/v0/clients", map[string]string{"industry": "Finance"}, nil)
		if err == nil || status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
	})
}

func TestDirectoryInvitationLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	owner, _ := signUp(t, ctx, "owner")
	invitee, inviteeEmail := signUp(t, ctx, "invitee")

	client := createClient(t, ctx, owner, "Invitations Inc")
	path := "/api/v0/clients/" + client.ID

	invite := new(directory.InviteResponse)
	t.Run("Invite", func(t *testing.T) {
		req := directory.InviteRequest{Email: inviteeEmail, Role: types.RoleAuditor}
		if _, err := owner.call(ctx, http.MethodPost, path+"/invitations", req, invite); err != nil {
			t.Fatalf("failed to invite: %v", err)
		}

		status, _ := owner.call(ctx, http.MethodPost, path+"/invitations", req, nil)
		if status != http.StatusConflict {
			t.Errorf("expected a duplicate invitation to be rejected, got %d", status)
		}

		pending := make([]*types.ClientInvitation, 0)
		if _, err := owner.call(ctx, http.MethodGet, path+"/invitations", nil, &pending); err != nil {
			t.Fatalf("failed to list invitations: %v", err)
		}
		if len(pending) != 1 || pending[0].ID != invite.Invitation.ID {
			t.Errorf("expected one pending invitation, got %d", len(pending))
		}
	})

	t.Run("Outsider Cannot List Members", func(t *testing.T) {
		status, _ := invitee.call(ctx, http.MethodGet, path+"/members", nil, nil)
		if status != http.StatusForbidden {
			t.Errorf("expected 403 before acceptance, got %d", status)
		}
	})

	t.Run("Accept", func(t *testing.T) {
		membership := new(types.ClientUser)
		if _, err := invitee.call(ctx, http.MethodPost, "/api/v0/invitations/"+invite.Invitation.Token+"/accept", nil, membership); err != nil {
			t.Fatalf("failed to accept: %v", err)
		}
		if membership.Role != types.RoleAuditor {
			t.Errorf("expected auditor membership, got %s", membership.Role)
		}

		snapshot := listClients(t, ctx, invitee)
		if len(snapshot.Clients) != 1 || snapshot.Clients[0].UserRole != types.RoleAuditor || snapshot.ActiveClientID != client.ID {
			t.Errorf("expected the new membership to be active, got %+v", snapshot)
		}

		pending := make([]*types.ClientInvitation, 0)
		if _, err := owner.call(ctx, http.MethodGet, path+"/invitations", nil, &pending); err != nil {
			t.Fatalf("failed to list invitations: %v", err)
		}
		if len(pending) != 0 {
			t.Errorf("expected accepted invitation to leave the pending list, got %d", len(pending))
		}
	})

	t.Run("Role Change Controls", func(t *testing.T) {
		members := make([]*directory.MemberView, 0)
		if _, err := owner.call(ctx, http.MethodGet, path+"/members", nil, &members); err != nil {
			t.Fatalf("failed to list members: %v", err)
		}

		for _, m := range members {
			if m.Role == types.RoleOwner && m.CanChangeRole {
				t.Error("expected no role control on the owner row")
			}
			if m.Role == types.RoleAuditor && !m.CanChangeRole {
				t.Error("expected a role control on the auditor row for the owner")
			}
		}

		status, _ := invitee.call(ctx, http.MethodPatch, path+"/members/"+members[0].UserID, directory.RoleRequest{Role: types.RoleViewer}, nil)
		if status != http.StatusForbidden {
			t.Errorf("expected an auditor to be refused role changes, got %d", status)
		}
	})

	t.Run("Refresh Picks Up Role Change", func(t *testing.T) {
		members := make([]*directory.MemberView, 0)
		if _, err := owner.call(ctx, http.MethodGet, path+"/members", nil, &members); err != nil {
			t.Fatalf("failed to list members: %v", err)
		}

		var auditorID string
		for _, m := range members {
			if m.Role == types.RoleAuditor {
				auditorID = m.UserID
			}
		}

		if _, err := owner.call(ctx, http.MethodPatch, path+"/members/"+auditorID, directory.RoleRequest{Role: types.RoleManager}, nil); err != nil {
			t.Fatalf("failed to change role: %v", err)
		}

		snapshot := new(directory.Snapshot)
		if _, err := invitee.call(ctx, http.MethodGet, "/api/v0/clients?refresh=true", nil, snapshot); err != nil {
			t.Fatalf("failed to refresh clients: %v", err)
		}
		if len(snapshot.Clients) != 1 || snapshot.Clients[0].UserRole != types.RoleManager {
			t.Errorf("expected the refreshed list to carry the manager role, got %+v", snapshot)
		}
	})

	t.Run("Concurrent Invitations", func(t *testing.T) {
		req := directory.InviteRequest{Email: "racing-" + inviteeEmail, Role: types.RoleViewer}

		const attempts = 5
		statuses := make(chan int, attempts)

		var wg sync.WaitGroup
		for range attempts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				status, _ := owner.call(ctx, http.MethodPost, path+"/invitations", req, nil)
				statuses <- status
			}()
		}
		wg.Wait()
		close(statuses)

		created := 0
		for status := range statuses {
			switch status {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
			default:
				t.Errorf("unexpected status %d", status)
			}
		}

		if created != 1 {
			t.Errorf("expected exactly one invitation to be created, got %d", created)
		}
	})

	t.Run("Malformed Client ID", func(t *testing.T) {
		name := "Nobody"
		status, _ := owner.call(ctx, http.MethodPatch, "/api/v0/clients/not-a-uuid", types.ClientUpdate{Name: &name}, nil)
		if status != http.StatusNotFound && status != http.StatusForbidden {
			t.Errorf("expected a malformed id to be refused without a server error, got %d", status)
		}
	})

	t.Run("Revoke", func(t *testing.T) {
		second := new(directory.InviteResponse)
		req := directory.InviteRequest{Email: "revoked-" + inviteeEmail, Role: types.RoleViewer}
		if _, err := owner.call(ctx, http.MethodPost, path+"/invitations", req, second); err != nil {
			t.Fatalf("failed to invite: %v", err)
		}

		if _, err := owner.call(ctx, http.MethodDelete, path+"/invitations/"+second.Invitation.ID, nil, nil); err != nil {
			t.Fatalf("failed to revoke: %v", err)
		}

		status, _ := invitee.call(ctx, http.MethodPost, "/api/v0/invitations/"+second.Invitation.Token+"/accept", nil, nil)
		if status == http.StatusOK {
			t.Error("expected a revoked invitation to be refused")
		}
	})
}
