// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/canonical/compliance-service/internal/types"
	"github.com/canonical/compliance-service/pkg/session"
)

var (
	authPassword string
	authFullName string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage sessions against the local authentication provider",
}

var signInCmd = &cobra.Command{
	Use:   "signin [email]",
	Short: "Sign in and print the session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp := new(session.SessionResponse)
		req := session.SignInRequest{Email: args[0], Password: authPassword}

		if err := getClient().do(cmd.Context(), http.MethodPost, "/api/v0/auth/signin", req, resp); err != nil {
			return fmt.Errorf("failed to sign in: %w", err)
		}

		fmt.Println(resp.Token)
		return nil
	},
}

var signUpCmd = &cobra.Command{
	Use:   "signup [email]",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp := new(session.SignUpResponse)
		req := session.SignUpRequest{Email: args[0], Password: authPassword, FullName: authFullName}

		if err := getClient().do(cmd.Context(), http.MethodPost, "/api/v0/auth/signup", req, resp); err != nil {
			return fmt.Errorf("failed to sign up: %w", err)
		}

		if resp.ConfirmationRequired || resp.Session == nil {
			fmt.Printf("Account created for %s, confirm the email address before signing in\n", args[0])
			return nil
		}

		fmt.Println(resp.Session.Token)
		return nil
	},
}

var signOutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Terminate the session identified by --token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getClient().do(cmd.Context(), http.MethodPost, "/api/v0/auth/signout", nil, nil); err != nil {
			return fmt.Errorf("failed to sign out: %w", err)
		}

		fmt.Println("Signed out")
		return nil
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the authenticated user and profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp := new(session.MeResponse)
		if err := getClient().do(cmd.Context(), http.MethodGet, "/api/v0/auth/me", nil, resp); err != nil {
			return fmt.Errorf("failed to fetch the current user: %w", err)
		}

		if resp.User != nil {
			fmt.Printf("User: %s (%s)\n", resp.User.Email, resp.User.ID)
		}
		if resp.Profile != nil {
			plan := types.PlanStarter
			if resp.Profile.SubscriptionPlan != nil {
				plan = *resp.Profile.SubscriptionPlan
			}
			fmt.Printf("Role: %s\nPlan: %s (%s)\n", resp.Profile.Role, plan, resp.Profile.SubscriptionStatus)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(signInCmd)
	authCmd.AddCommand(signUpCmd)
	authCmd.AddCommand(signOutCmd)
	authCmd.AddCommand(meCmd)

	for _, c := range []*cobra.Command{signInCmd, signUpCmd} {
		c.Flags().StringVar(&authPassword, "password", "", "Account password")
		_ = c.MarkFlagRequired("password")
	}

	signUpCmd.Flags().StringVar(&authFullName, "full-name", "", "Full name stored on the profile")
}
