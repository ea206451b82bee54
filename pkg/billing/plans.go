// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/canonical/compliance-service/internal/types"
)

//go:embed plans.yaml
var plansYAML []byte

// Plan is a subscription tier offered through the payment provider.
// A zero limit means unlimited.
type Plan struct {
	ID            types.Plan `yaml:"id" json:"id"`
	Name          string     `yaml:"name" json:"name"`
	Price         int        `yaml:"price" json:"price"`
	Interval      string     `yaml:"interval" json:"interval"`
	Description   string     `yaml:"description" json:"description"`
	PriceID       string     `yaml:"price_id" json:"price_id"`
	Popular       bool       `yaml:"popular" json:"popular"`
	MaxUsers      int        `yaml:"max_users" json:"max_users,omitempty"`
	MaxFrameworks int        `yaml:"max_frameworks" json:"max_frameworks,omitempty"`
	Features      []string   `yaml:"features" json:"features"`
}

type Catalog struct {
	plans []*Plan
}

func (c *Catalog) Plans() []*Plan {
	return slices.Clone(c.plans)
}

func (c *Catalog) Plan(id types.Plan) (*Plan, bool) {
	for _, p := range c.plans {
		if p.ID == id {
			return p, true
		}
	}

	return nil, false
}

// ParseCatalog decodes a plan catalog, every plan needs an id and a price id.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc struct {
		Plans []*Plan `yaml:"plans"`
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse plan catalog: %w", err)
	}

	if len(doc.Plans) == 0 {
		return nil, fmt.Errorf("plan catalog is empty")
	}

	seen := make(map[types.Plan]bool, len(doc.Plans))
	for _, p := range doc.Plans {
		if p.ID == "" || p.PriceID == "" {
			return nil, fmt.Errorf("plan %q has no id or price id", p.Name)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate plan %q", p.ID)
		}
		seen[p.ID] = true
	}

	return &Catalog{plans: doc.Plans}, nil
}

// DefaultCatalog is the catalog shipped with the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(plansYAML)
}
