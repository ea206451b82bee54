// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	httptypes "github.com/canonical/compliance-service/internal/http/types"
)

type apiClient struct {
	endpoint string
	token    string

	client *retryablehttp.Client
}

// getClient returns a client for the API endpoint selected by the persistent flags.
func getClient() *apiClient {
	return newAPIClient(httpEndpoint, accessToken)
}

func newAPIClient(endpoint, token string) *apiClient {
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "http://" + endpoint
	}

	c := new(apiClient)
	c.endpoint = strings.TrimSuffix(endpoint, "/")
	c.token = token

	c.client = retryablehttp.NewClient()
	c.client.HTTPClient = &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   30 * time.Second,
	}
	c.client.Logger = nil
	c.client.RetryMax = 3
	c.client.CheckRetry = retryPolicy
	c.client.ErrorHandler = lastResponse

	return c
}

// lastResponse hands the final answer back once retries are exhausted so the api error message reaches the user.
func lastResponse(resp *http.Response, err error, attempts int) (*http.Response, error) {
	if resp != nil {
		return resp, nil
	}

	return nil, fmt.Errorf("giving up after %d attempt(s): %w", attempts, err)
}

// retryPolicy retries transport failures of any request but server errors of reads only.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if err == nil && resp != nil && resp.Request != nil && resp.Request.Method != http.MethodGet {
		return false, nil
	}

	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// do sends in as JSON and decodes the data field of the response into out.
func (c *apiClient) do(ctx context.Context, method, path string, in, out any) error {
	var body any
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = payload
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		e := new(httptypes.ErrorResponse)
		if json.Unmarshal(raw, e) == nil && e.Message != "" {
			return fmt.Errorf("api error (status %d): %s", resp.StatusCode, e.Message)
		}
		return fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(raw))
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	envelope := httptypes.Response{Data: out}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
