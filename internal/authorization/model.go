// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"embed"
	"encoding/json"
	"fmt"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/language/pkg/go/transformer"
)

//go:embed schema/*.fga
var schemas embed.FS

type AuthorizationModelProvider struct {
	apiVersion string
}

// GetModel parses the embedded DSL of the provider's API version.
// The schemas are compiled into the binary so a parse failure is a programming error.
func (a *AuthorizationModelProvider) GetModel() *fga.AuthorizationModel {
	model, err := a.parse()
	if err != nil {
		panic(err)
	}

	return model
}

func (a *AuthorizationModelProvider) parse() (*fga.AuthorizationModel, error) {
	dsl, err := schemas.ReadFile(fmt.Sprintf("schema/%s.fga", a.apiVersion))
	if err != nil {
		return nil, fmt.Errorf("failed to read authorization model %s: %w", a.apiVersion, err)
	}

	raw, err := transformer.TransformDSLToJSON(string(dsl))
	if err != nil {
		return nil, fmt.Errorf("failed to transform authorization model: %w", err)
	}

	model := new(fga.AuthorizationModel)
	if err := json.Unmarshal([]byte(raw), model); err != nil {
		return nil, fmt.Errorf("failed to decode authorization model: %w", err)
	}

	return model, nil
}

func NewAuthorizationModelProvider(apiVersion string) *AuthorizationModelProvider {
	a := new(AuthorizationModelProvider)
	a.apiVersion = apiVersion

	return a
}
