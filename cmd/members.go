// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/canonical/compliance-service/internal/types"
	"github.com/canonical/compliance-service/pkg/directory"
)

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "Manage client members",
}

var listMembersCmd = &cobra.Command{
	Use:   "list [client-id]",
	Short: "List the members of a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		members := make([]directory.MemberView, 0)
		if err := getClient().do(cmd.Context(), http.MethodGet, "/api/v0/clients/"+url.PathEscape(args[0])+"/members", nil, &members); err != nil {
			return fmt.Errorf("failed to list members: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "USER_ID\tEMAIL\tROLE\tJOINED_AT\tEDITABLE")
		for _, m := range members {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n", m.UserID, m.Email, m.Role, m.JoinedAt, m.CanChangeRole)
		}
		w.Flush()
		return nil
	},
}

var setRoleCmd = &cobra.Command{
	Use:   "set-role [client-id] [user-id] [role]",
	Short: "Change the role of a member",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := fmt.Sprintf("/api/v0/clients/%s/members/%s", url.PathEscape(args[0]), url.PathEscape(args[1]))
		req := directory.RoleRequest{Role: types.Role(args[2])}

		if err := getClient().do(cmd.Context(), http.MethodPatch, path, req, nil); err != nil {
			return fmt.Errorf("failed to change role: %w", err)
		}

		fmt.Printf("Role of %s set to %s\n", args[1], args[2])
		return nil
	},
}

var invitationsCmd = &cobra.Command{
	Use:   "invitations",
	Short: "Manage client invitations",
}

var listInvitationsCmd = &cobra.Command{
	Use:   "list [client-id]",
	Short: "List the pending invitations of a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		invitations := make([]*types.ClientInvitation, 0)
		if err := getClient().do(cmd.Context(), http.MethodGet, "/api/v0/clients/"+url.PathEscape(args[0])+"/invitations", nil, &invitations); err != nil {
			return fmt.Errorf("failed to list invitations: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tEMAIL\tROLE\tCREATED_AT\tEXPIRES_AT")
		for _, i := range invitations {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", i.ID, i.Email, i.Role, i.CreatedAt, i.ExpiresAt)
		}
		w.Flush()
		return nil
	},
}

var inviteRole string

var inviteUserCmd = &cobra.Command{
	Use:   "create [client-id] [email]",
	Short: "Invite a user to a client",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := directory.InviteRequest{Email: args[1], Role: types.Role(inviteRole)}

		resp := new(directory.InviteResponse)
		if err := getClient().do(cmd.Context(), http.MethodPost, "/api/v0/clients/"+url.PathEscape(args[0])+"/invitations", req, resp); err != nil {
			return fmt.Errorf("failed to invite user: %w", err)
		}

		fmt.Printf("Invitation sent: %s (token: %s)\n", resp.Invitation.ID, resp.Invitation.Token)
		if resp.RecoveryLink != "" {
			fmt.Printf("Recovery link: %s\n", resp.RecoveryLink)
		}
		return nil
	},
}

var revokeInvitationCmd = &cobra.Command{
	Use:   "revoke [client-id] [invitation-id]",
	Short: "Revoke a pending invitation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := fmt.Sprintf("/api/v0/clients/%s/invitations/%s", url.PathEscape(args[0]), url.PathEscape(args[1]))
		if err := getClient().do(cmd.Context(), http.MethodDelete, path, nil, nil); err != nil {
			return fmt.Errorf("failed to revoke invitation: %w", err)
		}

		fmt.Printf("Invitation revoked: %s\n", args[1])
		return nil
	},
}

var acceptInvitationCmd = &cobra.Command{
	Use:   "accept [token]",
	Short: "Accept an invitation as the authenticated user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		membership := new(types.ClientUser)
		if err := getClient().do(cmd.Context(), http.MethodPost, "/api/v0/invitations/"+url.PathEscape(args[0])+"/accept", nil, membership); err != nil {
			return fmt.Errorf("failed to accept invitation: %w", err)
		}

		fmt.Printf("Joined client %s as %s\n", membership.ClientID, membership.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(membersCmd)
	membersCmd.AddCommand(listMembersCmd)
	membersCmd.AddCommand(setRoleCmd)

	rootCmd.AddCommand(invitationsCmd)
	invitationsCmd.AddCommand(listInvitationsCmd)
	invitationsCmd.AddCommand(inviteUserCmd)
	invitationsCmd.AddCommand(revokeInvitationCmd)
	invitationsCmd.AddCommand(acceptInvitationCmd)

	inviteUserCmd.Flags().StringVar(&inviteRole, "role", string(types.RoleViewer), "Role granted on acceptance")
}
