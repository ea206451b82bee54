// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

// KratosIdentity is the payload of the after registration web hook.
type KratosIdentity struct {
	ID     string       `json:"id" validate:"required"`
	Traits KratosTraits `json:"traits"`
}

type KratosTraits struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
}

// ClientClaim is one membership as exposed in issued tokens.
type ClientClaim struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// TokenHookResponse carries the claims hydra merges into the issued tokens, nil leaves them unchanged.
type TokenHookResponse struct {
	Session struct {
		IDToken     map[string]interface{} `json:"id_token,omitempty"`
		AccessToken map[string]interface{} `json:"access_token,omitempty"`
	} `json:"session"`
}

const clientsClaim = "clients"
