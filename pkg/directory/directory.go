// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/canonical/compliance-service/internal/authorization"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/storage"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
)

var _ DirectoryInterface = (*Directory)(nil)

// Directory tracks the clients of one signed in user and which of them is active.
// Every fetch is tagged with a generation, results of a fetch superseded by a newer
// load, refresh or reset are dropped.
type Directory struct {
	mu sync.RWMutex

	state      State
	userID     string
	clients    []*types.ClientWithRole
	activeID   string
	generation uint64

	storage   StorageInterface
	authz     AuthorizerInterface
	selection SelectionStoreInterface

	validate           *validator.Validate
	invitationLifetime time.Duration
	now                func() time.Time

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

// Load fetches the clients of userID. A failed fetch leaves the directory ready with no clients.
func (d *Directory) Load(ctx context.Context, userID string) {
	gen := d.begin(userID)
	d.fetch(ctx, gen, userID)
}

func (d *Directory) begin(userID string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	d.userID = userID
	d.state = StateLoading

	return d.generation
}

func (d *Directory) fetch(ctx context.Context, gen uint64, userID string) {
	ctx, span := d.tracer.Start(ctx, "directory.Directory.Load")
	defer span.End()

	clients, err := d.storage.ListClientsByUserID(ctx, userID)
	if err != nil {
		d.logger.Errorf("failed to load clients of user %s: %v", userID, err)
		// keep the persisted selection, the list it is checked against is unknown
		d.apply(ctx, gen, nil, "")
		return
	}

	persisted, err := d.selection.Load(ctx, userID)
	if err != nil {
		d.logger.Warnf("failed to load active client of user %s: %v", userID, err)
		persisted = ""
	}

	d.apply(ctx, gen, clients, persisted)
}

// Refresh refetches the client list. On failure the previous list is kept.
func (d *Directory) Refresh(ctx context.Context) error {
	ctx, span := d.tracer.Start(ctx, "directory.Directory.Refresh")
	defer span.End()

	d.mu.Lock()
	if d.state == StateUninitialized {
		d.mu.Unlock()
		return ErrNoUser
	}
	d.generation++
	gen := d.generation
	userID := d.userID
	candidate := d.activeID
	d.mu.Unlock()

	clients, err := d.storage.ListClientsByUserID(ctx, userID)
	if err != nil {
		d.logger.Errorf("failed to refresh clients of user %s: %v", userID, err)

		d.mu.Lock()
		if gen == d.generation && d.state == StateLoading {
			d.clients = make([]*types.ClientWithRole, 0)
			d.state = StateReady
		}
		d.mu.Unlock()

		return fmt.Errorf("failed to refresh clients: %w", err)
	}

	if candidate == "" {
		if candidate, err = d.selection.Load(ctx, userID); err != nil {
			d.logger.Warnf("failed to load active client of user %s: %v", userID, err)
		}
	}

	d.apply(ctx, gen, clients, candidate)

	return nil
}

// apply installs a fetched list and resolves the active client against it.
func (d *Directory) apply(ctx context.Context, gen uint64, clients []*types.ClientWithRole, candidate string) {
	sorted := make([]*types.ClientWithRole, 0, len(clients))
	sorted = append(sorted, clients...)
	slices.SortStableFunc(sorted, func(a, b *types.ClientWithRole) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), strings.Compare(a.ID, b.ID))
	})

	active, persist := resolveActive(sorted, candidate)

	d.mu.Lock()
	if gen != d.generation {
		d.mu.Unlock()
		d.logger.Debugf("dropping superseded client list (generation %d)", gen)
		return
	}

	d.clients = sorted
	d.activeID = active
	d.state = StateReady
	userID := d.userID
	d.mu.Unlock()

	switch {
	case persist:
		if err := d.selection.Save(ctx, userID, active); err != nil {
			d.logger.Warnf("failed to persist active client of user %s: %v", userID, err)
		}
	case active == "" && candidate != "":
		if err := d.selection.Clear(ctx, userID); err != nil {
			d.logger.Warnf("failed to clear active client of user %s: %v", userID, err)
		}
	}
}

// resolveActive keeps candidate when it is still listed, otherwise falls back to the first client.
// persist is true when the fallback was taken.
func resolveActive(clients []*types.ClientWithRole, candidate string) (string, bool) {
	if len(clients) == 0 {
		return "", false
	}

	if candidate != "" && slices.ContainsFunc(clients, func(c *types.ClientWithRole) bool { return c.ID == candidate }) {
		return candidate, false
	}

	return clients[0].ID, true
}

// Reset drops every piece of state, fetches still in flight are discarded.
func (d *Directory) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	d.state = StateUninitialized
	d.userID = ""
	d.clients = nil
	d.activeID = ""
}

// OnSessionChange follows the user of a session store.
func (d *Directory) OnSessionChange(ctx context.Context, prev, next *types.User) {
	switch {
	case next == nil:
		d.Reset()
	case prev == nil || prev.ID != next.ID:
		d.Load(ctx, next.ID)
	}
}

func (d *Directory) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	clients := make([]*types.ClientWithRole, 0, len(d.clients))
	for _, c := range d.clients {
		cp := *c
		clients = append(clients, &cp)
	}

	return Snapshot{State: d.state, Clients: clients, ActiveClientID: d.activeID}
}

// SwitchClient makes clientID active. Unknown ids leave the state untouched and return false.
func (d *Directory) SwitchClient(ctx context.Context, clientID string) bool {
	ctx, span := d.tracer.Start(ctx, "directory.Directory.SwitchClient")
	defer span.End()

	d.mu.Lock()
	known := d.state == StateReady && slices.ContainsFunc(d.clients, func(c *types.ClientWithRole) bool { return c.ID == clientID })
	if !known {
		d.mu.Unlock()
		return false
	}

	d.activeID = clientID
	userID := d.userID
	d.mu.Unlock()

	if err := d.selection.Save(ctx, userID, clientID); err != nil {
		d.logger.Warnf("failed to persist active client of user %s: %v", userID, err)
	}

	return true
}

// CreateClient inserts a client owned by the current user and refreshes the list.
// The new client is not made active.
func (d *Directory) CreateClient(ctx context.Context, input *ClientInput) (*types.Client, error) {
	ctx, span := d.tracer.Start(ctx, "directory.Directory.CreateClient")
	defer span.End()

	userID, err := d.currentUser()
	if err != nil {
		return nil, err
	}

	if input == nil {
		return nil, fmt.Errorf("%w: client data is required", ErrValidation)
	}

	input.Name = strings.TrimSpace(input.Name)
	if err := d.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	created, err := d.storage.CreateClient(ctx, &types.Client{
		Name:        input.Name,
		Industry:    input.Industry,
		Size:        input.Size,
		Description: input.Description,
		Website:     input.Website,
		Address:     input.Address,
		LogoURL:     input.LogoURL,
		CreatedBy:   userID,
	})
	if err != nil {
		d.logger.Errorf("failed to create client: %v", err)
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if err := d.authz.AssignClientRole(ctx, created.ID, userID, types.RoleOwner); err != nil {
		d.logger.Errorf("failed to grant ownership of client %s to %s: %v", created.ID, userID, err)
		d.refresh(ctx)
		return nil, fmt.Errorf("failed to grant client ownership: %w", err)
	}

	d.refresh(ctx)

	return created, nil
}

// UpdateClient applies a partial update, the caller needs at least admin on the client.
func (d *Directory) UpdateClient(ctx context.Context, clientID string, update *types.ClientUpdate) (*types.Client, error) {
	ctx, span := d.tracer.Start(ctx, "directory.Directory.UpdateClient")
	defer span.End()

	userID, err := d.currentUser()
	if err != nil {
		return nil, err
	}

	if update == nil || update.Empty() {
		return nil, fmt.Errorf("%w: no field to update", ErrValidation)
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		update.Name = &name
	}

	if err := d.validate.Struct(update); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := d.authorize(ctx, userID, clientID, authorization.CAN_EDIT_PERMISSION); err != nil {
		return nil, err
	}

	updated, err := d.storage.UpdateClient(ctx, clientID, update)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		d.logger.Errorf("failed to update client %s: %v", clientID, err)
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	d.refresh(ctx)

	return updated, nil
}

// InviteUserToClient creates a pending invitation, role defaults to viewer.
func (d *Directory) InviteUserToClient(ctx context.Context, clientID, email string, role types.Role) (*types.ClientInvitation, error) {
	ctx, span := d.tracer.Start(ctx, "directory.Directory.InviteUserToClient")
	defer span.End()

	userID, err := d.currentUser()
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if err := d.validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: invalid email %q", ErrValidation, email)
	}

	if role == "" {
		role = types.RoleViewer
	}

	if !role.Assignable() {
		return nil, fmt.Errorf("%w: role %q cannot be granted through an invitation", ErrValidation, role)
	}

	if err := d.authorize(ctx, userID, clientID, authorization.CAN_INVITE_PERMISSION); err != nil {
		return nil, err
	}

	invitation, err := d.storage.CreateInvitation(ctx, &types.ClientInvitation{
		ClientID:  clientID,
		Email:     email,
		Role:      role,
		InvitedBy: userID,
		ExpiresAt: d.now().Add(d.invitationLifetime),
	})

	switch {
	case errors.Is(err, storage.ErrDuplicateKey):
		return nil, ErrInvitationPending
	case errors.Is(err, storage.ErrForeignKeyViolation):
		return nil, ErrClientNotFound
	case err != nil:
		d.logger.Errorf("failed to invite %s to client %s: %v", email, clientID, err)
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	d.logger.Security().AdminAction(userID, "invite_member", authorization.ClientTuple(clientID), logging.WithContext("role", string(role)))

	return invitation, nil
}

// AcceptInvitation turns the invitation behind token into a membership of the current user.
func (d *Directory) AcceptInvitation(ctx context.Context, token string) (*types.ClientUser, error) {
	ctx, span := d.tracer.Start(ctx, "directory.Directory.AcceptInvitation")
	defer span.End()

	userID, err := d.currentUser()
	if err != nil {
		return nil, err
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: invitation token is required", ErrValidation)
	}

	membership, err := d.storage.AcceptInvitation(ctx, token, userID)

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil, ErrInvitationNotFound
	case errors.Is(err, storage.ErrInvitationExpired):
		return nil, ErrInvitationExpired
	case errors.Is(err, storage.ErrInvitationAccepted):
		return nil, ErrInvitationAccepted
	case err != nil:
		d.logger.Errorf("failed to accept invitation: %v", err)
		return nil, fmt.Errorf("failed to accept invitation: %w", err)
	}

	if err := d.authz.AssignClientRole(ctx, membership.ClientID, userID, membership.Role); err != nil {
		d.logger.Errorf("failed to grant %s on client %s to %s: %v", membership.Role, membership.ClientID, userID, err)
		d.refresh(ctx)
		return nil, fmt.Errorf("failed to grant client role: %w", err)
	}

	d.refresh(ctx)

	return membership, nil
}

// ListMembers returns the members of a client, newest first, annotated for the caller.
func (d *Directory) ListMembers(ctx context.Context, clientID string) ([]*MemberView, error) {
	ctx, span := d.tracer.Start(ctx, "directory.Directory.ListMembers")
	defer span.End()

	userID, err := d.currentUser()
	if err != nil {
		return nil, err
	}

	if err := d.authorize(ctx, userID, clientID, authorization.CAN_VIEW_PERMISSION); err != nil {
		return nil, err
	}

	callerRole, err := d.storage.GetMemberRole(ctx, clientID, userID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		d.logger.Errorf("failed to read role of %s on client %s: %v", userID, clientID, err)
		return nil, fmt.Errorf("failed to read caller role: %w", err)
	}

	members, err := d.storage.ListMembers(ctx, clientID)
	if err != nil {
		d.logger.Errorf("failed to list members of client %s: %v", clientID, err)
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	views := make([]*MemberView, 0, len(members))
	for _, m := range members {
		views = append(views, &MemberView{Member: *m, CanChangeRole: CanChangeMemberRole(callerRole, m.Role)})
	}

	slices.SortStableFunc(views, func(a, b *MemberView) int {
		return b.JoinedAt.Compare(a.JoinedAt)
	})

	return views, nil
}

// UpdateMemberRole changes the role of a member. Only owners may do so and owner rows are immutable.
func (d *Directory) UpdateMemberRole(ctx context.Context, clientID, memberID string, role types.Role) error {
	ctx, span := d.tracer.Start(ctx, "directory.Directory.UpdateMemberRole")
	defer span.End()

	userID, err := d.currentUser()
	if err != nil {
		return err
	}

	if !role.Assignable() {
		return fmt.Errorf("%w: role %q cannot be assigned", ErrValidation, role)
	}

	if err := d.authorize(ctx, userID, clientID, authorization.CAN_MANAGE_MEMBERS_PERMISSION); err != nil {
		return err
	}

	callerRole, err := d.memberRole(ctx, clientID, userID)
	if errors.Is(err, ErrMemberNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return err
	}

	current, err := d.memberRole(ctx, clientID, memberID)
	if err != nil {
		return err
	}

	if !CanChangeMemberRole(callerRole, current) {
		d.logger.Security().AuthzFailure(userID, authorization.ClientTuple(clientID)+"#change_role")
		return ErrForbidden
	}

	if current == role {
		return nil
	}

	if err := d.storage.UpdateMemberRole(ctx, clientID, memberID, role); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrMemberNotFound
		}
		d.logger.Errorf("failed to update role of %s on client %s: %v", memberID, clientID, err)
		return fmt.Errorf("failed to update member role: %w", err)
	}

	// grant before revoking so a failure never leaves the member without a tuple
	if err := d.authz.AssignClientRole(ctx, clientID, memberID, role); err != nil {
		d.logger.Errorf("failed to grant %s on client %s to %s: %v", role, clientID, memberID, err)
		return fmt.Errorf("failed to grant role: %w", err)
	}

	if err := d.authz.RemoveClientRole(ctx, clientID, memberID, current); err != nil {
		d.logger.Errorf("failed to revoke %s on client %s from %s: %v", current, clientID, memberID, err)

		if rerr := d.authz.RemoveClientRole(ctx, clientID, memberID, role); rerr != nil {
			d.logger.Errorf("failed to roll back %s on client %s for %s: %v", role, clientID, memberID, rerr)
		}

		return fmt.Errorf("failed to revoke previous role: %w", err)
	}

	d.logger.Security().AdminAction(userID, "change_member_role", authorization.ClientTuple(clientID), logging.WithContext("member", memberID), logging.WithContext("role", string(role)))

	return nil
}

// ListPendingInvitations returns the invitations that can still be accepted, newest first.
func (d *Directory) ListPendingInvitations(ctx context.Context, clientID string) ([]*types.ClientInvitation, error) {
	ctx, span := d.tracer.Start(ctx, "directory.Directory.ListPendingInvitations")
	defer span.End()

	userID, err := d.currentUser()
	if err != nil {
		return nil, err
	}

	if err := d.authorize(ctx, userID, clientID, authorization.CAN_INVITE_PERMISSION); err != nil {
		return nil, err
	}

	invitations, err := d.storage.ListPendingInvitations(ctx, clientID)
	if err != nil {
		d.logger.Errorf("failed to list invitations of client %s: %v", clientID, err)
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	now := d.now()
	pending := make([]*types.ClientInvitation, 0, len(invitations))
	for _, i := range invitations {
		if i.Pending(now) {
			pending = append(pending, i)
		}
	}

	slices.SortStableFunc(pending, func(a, b *types.ClientInvitation) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return pending, nil
}

func (d *Directory) RevokeInvitation(ctx context.Context, clientID, invitationID string) error {
	ctx, span := d.tracer.Start(ctx, "directory.Directory.RevokeInvitation")
	defer span.End()

	userID, err := d.currentUser()
	if err != nil {
		return err
	}

	if err := d.authorize(ctx, userID, clientID, authorization.CAN_INVITE_PERMISSION); err != nil {
		return err
	}

	err = d.storage.RevokeInvitation(ctx, clientID, invitationID)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrInvitationNotFound
	}
	if err != nil {
		d.logger.Errorf("failed to revoke invitation %s: %v", invitationID, err)
		return fmt.Errorf("failed to revoke invitation: %w", err)
	}

	d.logger.Security().AdminAction(userID, "revoke_invitation", authorization.ClientTuple(clientID), logging.WithContext("invitation", invitationID))

	return nil
}

func (d *Directory) currentUser() (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.userID == "" {
		return "", ErrNoUser
	}

	return d.userID, nil
}

func (d *Directory) memberRole(ctx context.Context, clientID, userID string) (types.Role, error) {
	role, err := d.storage.GetMemberRole(ctx, clientID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrMemberNotFound
	}
	if err != nil {
		d.logger.Errorf("failed to read role of %s on client %s: %v", userID, clientID, err)
		return "", fmt.Errorf("failed to read member role: %w", err)
	}

	return role, nil
}

func (d *Directory) authorize(ctx context.Context, userID, clientID, permission string) error {
	allowed, err := d.authz.CheckClientAccess(ctx, clientID, userID, permission)
	if err != nil {
		d.logger.Errorf("failed to check %s of %s on client %s: %v", permission, userID, clientID, err)
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if !allowed {
		d.logger.Security().AuthzFailure(userID, authorization.ClientTuple(clientID)+"#"+permission)
		return ErrForbidden
	}

	return nil
}

// refresh runs after a successful mutation, its failure is logged by Refresh and does not undo the mutation.
func (d *Directory) refresh(ctx context.Context) {
	_ = d.Refresh(ctx)
}

func NewDirectory(
	storage StorageInterface,
	authz AuthorizerInterface,
	selection SelectionStoreInterface,
	invitationLifetime time.Duration,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) *Directory {
	d := new(Directory)

	d.storage = storage
	d.authz = authz
	d.selection = selection

	d.validate = validator.New(validator.WithRequiredStructEnabled())
	d.invitationLifetime = invitationLifetime
	d.now = time.Now

	d.tracer = tracer
	d.logger = logger

	return d
}
