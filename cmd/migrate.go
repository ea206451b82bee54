// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/canonical/compliance-service/migrations"
)

var errPendingMigrations = errors.New("migrations are pending")

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down [version]|status|check]",
	Short: "Apply or inspect the database schema",
	Long: `Apply or inspect the compliance database schema.

Without arguments all pending migrations are applied. "down" reverts the
latest migration, or every migration above the given version. "check" exits
non zero while migrations are pending, which suits deployment probes.`,
	Args: validateMigrateArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, _ := cmd.Flags().GetString("dsn")
		format, _ := cmd.Flags().GetString("format")

		if dsn == "" {
			return fmt.Errorf("a DSN is required, pass --dsn or set DSN")
		}

		db, err := openMigrationDB(cmd.Context(), dsn)
		if err != nil {
			return err
		}
		defer db.Close()

		m, err := newMigrator(db, format, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		return m.run(cmd.Context(), args)
	},
}

func init() {
	migrateCmd.Flags().String("dsn", os.Getenv("DSN"), "PostgreSQL DSN, defaults to $DSN")
	migrateCmd.Flags().StringP("format", "f", "text", "Output format (text or json)")

	rootCmd.AddCommand(migrateCmd)
}

func validateMigrateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(2)(cmd, args); err != nil {
		return err
	}

	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "up", "status", "check":
		if len(args) > 1 {
			return fmt.Errorf("%q takes no version argument", args[0])
		}
	case "down":
		if len(args) == 2 {
			if v, err := strconv.ParseInt(args[1], 10, 64); err != nil || v < 0 {
				return fmt.Errorf("invalid version number: %q", args[1])
			}
		}
	default:
		return fmt.Errorf("unknown migrate command %q", args[0])
	}

	return nil
}

func openMigrationDB(ctx context.Context, dsn string) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid DSN: %w", err)
	}

	db := stdlib.OpenDB(*cfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach the database: %w", err)
	}

	return db, nil
}

type migrator struct {
	provider *goose.Provider
	json     bool
	out      io.Writer
}

func newMigrator(db *sql.DB, format string, out io.Writer) (*migrator, error) {
	m := new(migrator)
	m.json = format == "json"
	m.out = out

	var opts []goose.ProviderOption
	if m.json {
		opts = append(opts, goose.WithLogger(goose.NopLogger()))
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.EmbedMigrations, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	m.provider = provider

	return m, nil
}

func (m *migrator) run(ctx context.Context, args []string) error {
	command := "up"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "down":
		if len(args) == 2 {
			version, _ := strconv.ParseInt(args[1], 10, 64)
			return m.applied(m.provider.DownTo(ctx, version))
		}

		result, err := m.provider.Down(ctx)
		if err != nil {
			return err
		}
		return m.applied([]*goose.MigrationResult{result}, nil)
	case "status":
		return m.status(ctx)
	case "check":
		return m.check(ctx)
	}

	return m.applied(m.provider.Up(ctx))
}

func (m *migrator) applied(results []*goose.MigrationResult, err error) error {
	if err != nil {
		return err
	}

	if results == nil {
		results = []*goose.MigrationResult{}
	}

	if m.json {
		return json.NewEncoder(m.out).Encode(map[string]any{"applied": results})
	}

	for _, r := range results {
		fmt.Fprintf(m.out, "%-4s %s (%s)\n", r.Direction, r.Source.Path, r.Duration.Round(time.Millisecond))
	}

	if len(results) == 0 {
		fmt.Fprintln(m.out, "no migrations to apply")
	}

	return nil
}

func (m *migrator) status(ctx context.Context) error {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return err
	}

	if m.json {
		return json.NewEncoder(m.out).Encode(statuses)
	}

	w := tabwriter.NewWriter(m.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "APPLIED AT\tMIGRATION")

	for _, s := range statuses {
		applied := "pending"
		if s.State == goose.StateApplied {
			applied = s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\n", applied, s.Source.Path)
	}

	return w.Flush()
}

func (m *migrator) check(ctx context.Context) error {
	pending, err := m.provider.HasPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to check pending migrations: %w", err)
	}

	current, verr := m.provider.GetDBVersion(ctx)

	if m.json {
		state := "ok"
		switch {
		case pending:
			state = "pending"
		case verr != nil:
			state = "unknown"
		}

		if err := json.NewEncoder(m.out).Encode(map[string]any{"status": state, "version": current}); err != nil {
			return err
		}
	}

	if pending {
		return fmt.Errorf("%w: database at version %d", errPendingMigrations, current)
	}

	if !m.json {
		fmt.Fprintf(m.out, "database schema is current (version %d)\n", current)
	}

	return nil
}
