// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"encoding/json"
	"testing"

	"github.com/canonical/compliance-service/internal/types"
)

func TestSnapshotJSON(t *testing.T) {
	in := Snapshot{
		State:          StateReady,
		Clients:        []*types.ClientWithRole{{Client: types.Client{ID: "c-1", Name: "Acme"}, UserRole: types.RoleOwner}},
		ActiveClientID: "c-1",
	}

	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := new(Snapshot)
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if out.State != StateReady {
		t.Errorf("expected state ready, got %s", out.State)
	}

	if c := out.ActiveClient(); c == nil || c.Name != "Acme" || c.UserRole != types.RoleOwner {
		t.Errorf("expected Acme to be the active client, got %+v", c)
	}
}

func TestStateUnmarshalText(t *testing.T) {
	var s State

	if err := s.UnmarshalText([]byte("loading")); err != nil || s != StateLoading {
		t.Errorf("expected loading, got %s (%v)", s, err)
	}

	if err := s.UnmarshalText([]byte("broken")); err == nil {
		t.Error("expected an error for an unknown state")
	}
}
