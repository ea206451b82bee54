// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"testing"

	"github.com/canonical/compliance-service/internal/types"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := map[types.Plan]struct {
		price   int
		priceID string
	}{
		types.PlanStarter:      {49, "price_starter_monthly"},
		types.PlanProfessional: {149, "price_professional_monthly"},
		types.PlanEnterprise:   {399, "price_enterprise_monthly"},
	}

	if len(catalog.Plans()) != len(expected) {
		t.Fatalf("expected %d plans, got %d", len(expected), len(catalog.Plans()))
	}

	for id, e := range expected {
		plan, ok := catalog.Plan(id)
		if !ok {
			t.Fatalf("missing plan %s", id)
		}
		if plan.Price != e.price || plan.PriceID != e.priceID || plan.Interval != "month" {
			t.Errorf("unexpected plan %+v", plan)
		}
	}

	if p, _ := catalog.Plan(types.PlanProfessional); !p.Popular {
		t.Error("expected professional to be the popular plan")
	}
}

func TestParseCatalog(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid yaml", "plans: [:"},
		{"empty", "plans: []"},
		{"missing price id", "plans:\n  - id: starter\n    name: Starter\n"},
		{"duplicate", "plans:\n  - id: starter\n    price_id: a\n  - id: starter\n    price_id: b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
