// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/canonical/compliance-service/internal/authorization"
	"github.com/canonical/compliance-service/internal/db"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/openfga"
	"github.com/canonical/compliance-service/internal/storage"
	"github.com/canonical/compliance-service/internal/tracing"
)

var syncFgaTuplesCmd = &cobra.Command{
	Use:   "sync-fga-tuples [client-id...]",
	Short: "Rebuild the OpenFGA role tuples of clients from their memberships",
	Long: `Rebuild the OpenFGA role tuples of clients from the membership table.

Missing tuples are written and tuples without a matching membership are
deleted. Without arguments every client is reconciled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, _ := cmd.Flags().GetString("dsn")
		apiURL, _ := cmd.Flags().GetString("fga-api-url")
		apiToken, _ := cmd.Flags().GetString("fga-api-token")
		storeID, _ := cmd.Flags().GetString("fga-store-id")
		modelID, _ := cmd.Flags().GetString("fga-model-id")
		format, _ := cmd.Flags().GetString("format")

		u, err := url.Parse(apiURL)
		if err != nil || u.Host == "" {
			return fmt.Errorf("invalid OpenFGA url %q", apiURL)
		}

		if dsn == "" || storeID == "" {
			return fmt.Errorf("a DSN and an OpenFGA store id are required")
		}

		ctx := cmd.Context()
		logger := logging.NewLogger("info")
		tracer := tracing.NewNoopTracer()
		monitor := monitoring.NewNoopMonitor("compliance-service", logger)

		dbClient, err := db.NewDBClient(db.Config{DSN: dsn}, tracer, monitor, logger)
		if err != nil {
			return err
		}
		defer dbClient.Close()

		s := storage.NewStorage(dbClient, tracer, monitor, logger)
		authorizer := authorization.NewAuthorizer(
			openfga.NewClient(openfga.NewConfig(u.Scheme, u.Host, storeID, apiToken, modelID, false, tracer, monitor, logger)),
			tracer,
			monitor,
			logger,
		)

		if err := authorizer.ValidateModel(ctx); err != nil {
			return err
		}

		clientIDs := args
		if len(clientIDs) == 0 {
			if clientIDs, err = s.ListClientIDs(ctx); err != nil {
				return err
			}
		}

		results := make(map[string]*authorization.SyncResult, len(clientIDs))

		for _, id := range clientIDs {
			members, err := s.ListMembers(ctx, id)
			if err != nil {
				return err
			}

			r, err := authorizer.SyncClientRoles(ctx, id, members)
			if err != nil {
				return fmt.Errorf("client %s: %w", id, err)
			}

			results[id] = r

			if format != "json" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\twritten=%d deleted=%d\n", id, r.Written, r.Deleted)
			}
		}

		if format == "json" {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(results)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncFgaTuplesCmd)

	syncFgaTuplesCmd.Flags().String("dsn", os.Getenv("DSN"), "PostgreSQL DSN, defaults to $DSN")
	syncFgaTuplesCmd.Flags().String("fga-api-url", "", "OpenFGA API URL")
	syncFgaTuplesCmd.Flags().String("fga-api-token", os.Getenv("OPENFGA_API_TOKEN"), "OpenFGA preshared key, defaults to $OPENFGA_API_TOKEN")
	syncFgaTuplesCmd.Flags().String("fga-store-id", os.Getenv("OPENFGA_STORE_ID"), "OpenFGA store, defaults to $OPENFGA_STORE_ID")
	syncFgaTuplesCmd.Flags().String("fga-model-id", os.Getenv("OPENFGA_AUTHORIZATION_MODEL_ID"), "OpenFGA model, defaults to $OPENFGA_AUTHORIZATION_MODEL_ID")
	syncFgaTuplesCmd.Flags().String("format", "text", "Output format (text or json)")
	_ = syncFgaTuplesCmd.MarkFlagRequired("fga-api-url")
}
