// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	httpEndpoint string
	accessToken  string
)

var rootCmd = &cobra.Command{
	Use:          "compliance-service",
	Short:        "Compliance Service",
	Long:         `Compliance Service server and CLI for managing clients, members and invitations.`,
	SilenceUsage: true,
}

// Execute runs the command tree, exiting non zero on failure.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetOut(os.Stdout)
	rootCmd.PersistentFlags().StringVar(&httpEndpoint, "http-endpoint", "http://localhost:8000", "HTTP server endpoint")
	rootCmd.PersistentFlags().StringVar(&accessToken, "token", os.Getenv("COMPLIANCE_TOKEN"), "Session or access token, defaults to $COMPLIANCE_TOKEN")
}
