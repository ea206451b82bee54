// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

type machineTokenOptions struct {
	clientID     string
	clientSecret string
	tokenURL     string
	issuerURL    string
	scopes       []string
	asJSON       bool
}

var machineToken machineTokenOptions

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a machine access token with the client credentials grant",
	Long: `Mint a machine access token with the client credentials grant.

The token is accepted by the API when the server trusts the same issuer
(OIDC_ISSUER) and the token carries the required scope (OIDC_REQUIRED_SCOPE).
Pipe it into --token or COMPLIANCE_TOKEN for the other commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.WithValue(cmd.Context(), oauth2.HTTPClient, &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		})

		token, err := machineToken.fetch(ctx)
		if err != nil {
			return err
		}

		if !machineToken.asJSON {
			cmd.Println(token.AccessToken)
			return nil
		}

		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
			"access_token": token.AccessToken,
			"token_type":   token.TokenType,
			"expiry":       token.Expiry,
		})
	},
}

func (o machineTokenOptions) endpoint(ctx context.Context) (string, error) {
	if o.tokenURL != "" {
		return o.tokenURL, nil
	}

	if o.issuerURL == "" {
		return "", fmt.Errorf("either --token-url or --issuer-url must be provided")
	}

	provider, err := oidc.NewProvider(oidc.ClientContext(ctx, oauth2HTTPClient(ctx)), o.issuerURL)
	if err != nil {
		return "", fmt.Errorf("failed to discover issuer %s: %w", o.issuerURL, err)
	}

	return provider.Endpoint().TokenURL, nil
}

func (o machineTokenOptions) fetch(ctx context.Context) (*oauth2.Token, error) {
	tokenURL, err := o.endpoint(ctx)
	if err != nil {
		return nil, err
	}

	cfg := clientcredentials.Config{
		ClientID:     o.clientID,
		ClientSecret: o.clientSecret,
		TokenURL:     tokenURL,
		Scopes:       o.scopes,
	}

	token, err := cfg.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

func oauth2HTTPClient(ctx context.Context) *http.Client {
	if c, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); ok {
		return c
	}

	return http.DefaultClient
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	scope := os.Getenv("OIDC_REQUIRED_SCOPE")
	if scope == "" {
		scope = "compliance-service:api"
	}

	tokenCmd.Flags().StringVar(&machineToken.clientID, "client-id", "", "OAuth2 client id")
	tokenCmd.Flags().StringVar(&machineToken.clientSecret, "client-secret", "", "OAuth2 client secret")
	tokenCmd.Flags().StringVar(&machineToken.tokenURL, "token-url", "", "Token endpoint, skips discovery")
	tokenCmd.Flags().StringVar(&machineToken.issuerURL, "issuer-url", os.Getenv("OIDC_ISSUER"), "Issuer used for discovery, defaults to $OIDC_ISSUER")
	tokenCmd.Flags().StringSliceVar(&machineToken.scopes, "scopes", []string{scope}, "Requested scopes")
	tokenCmd.Flags().BoolVar(&machineToken.asJSON, "json", false, "Print the token with its type and expiry as JSON")

	_ = tokenCmd.MarkFlagRequired("client-id")
	_ = tokenCmd.MarkFlagRequired("client-secret")
}
