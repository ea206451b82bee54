// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package openfga

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
)

const testStoreID = "01GXSA8YR785C4FYS3C0RTG7B1"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("failed to parse test server url: %v", err)
	}

	logger := logging.NewNoopLogger()

	return NewClient(NewConfig(u.Scheme, u.Host, testStoreID, "", "", false, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger))
}

func TestClientCheck(t *testing.T) {
	var received map[string]interface{}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/stores/"+testStoreID+"/check") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		_ = json.NewDecoder(r.Body).Decode(&received)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"allowed": true}`))
	})

	allowed, err := c.Check(context.Background(), "user:alice", "can_edit", "client:acme", *NewTuple("user:alice", "admin", "client:acme"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !allowed {
		t.Error("expected check to be allowed")
	}

	tupleKey, ok := received["tuple_key"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing tuple_key in request: %v", received)
	}
	if tupleKey["object"] != "client:acme" || tupleKey["relation"] != "can_edit" {
		t.Errorf("unexpected tuple key %v", tupleKey)
	}
	if _, ok := received["contextual_tuples"]; !ok {
		t.Error("expected contextual tuples to be forwarded")
	}
}

func TestClientReadTuplesPaging(t *testing.T) {
	var token string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/stores/"+testStoreID+"/read") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		token, _ = body["continuation_token"].(string)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tuples": [{"key": {"user": "user:alice", "relation": "owner", "object": "client:acme"}, "timestamp": "2026-01-02T03:04:05Z"}], "continuation_token": "next"}`))
	})

	r, err := c.ReadTuples(context.Background(), "", "", "client:acme", "page-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if token != "page-1" {
		t.Errorf("expected the continuation token to be forwarded, got %q", token)
	}

	if len(r.Tuples) != 1 || r.Tuples[0].Key.Relation != "owner" || r.ContinuationToken != "next" {
		t.Errorf("unexpected read response %+v", r)
	}
}

func TestClientWriteTuplesBatches(t *testing.T) {
	calls := 0

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	tuples := make([]Tuple, 0, writeBatchSize+1)
	for i := 0; i < writeBatchSize+1; i++ {
		tuples = append(tuples, *NewTuple("user:alice", "viewer", "client:acme"))
	}

	if err := c.WriteTuples(context.Background(), tuples...); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 2 {
		t.Errorf("expected 2 write requests, got %d", calls)
	}
}
