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

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
}

var refreshClients bool

var listClientsCmd = &cobra.Command{
	Use:   "list",
	Short: "List the clients of the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/api/v0/clients"
		if refreshClients {
			path += "?refresh=true"
		}

		snapshot := new(directory.Snapshot)
		if err := getClient().do(cmd.Context(), http.MethodGet, path, nil, snapshot); err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		printClients(snapshot)
		return nil
	},
}

var (
	clientIndustry    string
	clientSize        string
	clientDescription string
	clientWebsite     string
	clientAddress     string
)

var createClientCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new client owned by the authenticated user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := directory.ClientInput{
			Name:        args[0],
			Industry:    flagValue(cmd, "industry", clientIndustry),
			Size:        flagValue(cmd, "size", clientSize),
			Description: flagValue(cmd, "description", clientDescription),
			Website:     flagValue(cmd, "website", clientWebsite),
			Address:     flagValue(cmd, "address", clientAddress),
		}

		client := new(types.Client)
		if err := getClient().do(cmd.Context(), http.MethodPost, "/api/v0/clients", in, client); err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		fmt.Printf("Client created: %s (ID: %s)\n", client.Name, client.ID)
		return nil
	},
}

var clientName string

var updateClientCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update the details of a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		update := types.ClientUpdate{
			Name:        flagValue(cmd, "name", clientName),
			Industry:    flagValue(cmd, "industry", clientIndustry),
			Size:        flagValue(cmd, "size", clientSize),
			Description: flagValue(cmd, "description", clientDescription),
			Website:     flagValue(cmd, "website", clientWebsite),
			Address:     flagValue(cmd, "address", clientAddress),
		}
		if update.Empty() {
			return fmt.Errorf("nothing to update")
		}

		client := new(types.Client)
		if err := getClient().do(cmd.Context(), http.MethodPatch, "/api/v0/clients/"+url.PathEscape(args[0]), update, client); err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}

		fmt.Printf("Client updated: %s\n", client.ID)
		return nil
	},
}

var switchClientCmd = &cobra.Command{
	Use:   "switch [id]",
	Short: "Make a client the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp := new(directory.SwitchResponse)
		if err := getClient().do(cmd.Context(), http.MethodPost, "/api/v0/clients/"+url.PathEscape(args[0])+"/switch", nil, resp); err != nil {
			return fmt.Errorf("failed to switch client: %w", err)
		}

		if !resp.Switched {
			fmt.Printf("Client %s is not one of yours, active client unchanged\n", args[0])
		}

		printClients(&resp.Snapshot)
		return nil
	},
}

// flagValue returns a pointer to value only when the flag was set explicitly.
func flagValue(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	return &value
}

func printClients(s *directory.Snapshot) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ACTIVE\tID\tNAME\tROLE\tCREATED_AT")
	for _, c := range s.Clients {
		active := ""
		if c.ID == s.ActiveClientID {
			active = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", active, c.ID, c.Name, c.UserRole, c.CreatedAt)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(clientsCmd)
	clientsCmd.AddCommand(listClientsCmd)
	clientsCmd.AddCommand(createClientCmd)
	clientsCmd.AddCommand(updateClientCmd)
	clientsCmd.AddCommand(switchClientCmd)

	for _, c := range []*cobra.Command{createClientCmd, updateClientCmd} {
		c.Flags().StringVar(&clientIndustry, "industry", "", "Industry of the client")
		c.Flags().StringVar(&clientSize, "size", "", "Size of the client, e.g. 11-50")
		c.Flags().StringVar(&clientDescription, "description", "", "Free text description")
		c.Flags().StringVar(&clientWebsite, "website", "", "Website URL")
		c.Flags().StringVar(&clientAddress, "address", "", "Postal address")
	}

	listClientsCmd.Flags().BoolVar(&refreshClients, "refresh", false, "Refetch the client list instead of serving the cached one")
	updateClientCmd.Flags().StringVar(&clientName, "name", "", "New name of the client")
}
