// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import "context"

type principalKey struct{}

// principal is the caller a request was authenticated as.
type principal struct {
	userID string
	token  string
}

func principalFrom(ctx context.Context) principal {
	p, _ := ctx.Value(principalKey{}).(principal)
	return p
}

func withPrincipal(ctx context.Context, userID, token string) context.Context {
	return context.WithValue(ctx, principalKey{}, principal{userID: userID, token: token})
}

// WithUserID returns a context authenticated as userID, keeping any token already attached.
func WithUserID(ctx context.Context, userID string) context.Context {
	return withPrincipal(ctx, userID, principalFrom(ctx).token)
}

// WithToken attaches the bearer token a request was authenticated with.
func WithToken(ctx context.Context, token string) context.Context {
	return withPrincipal(ctx, principalFrom(ctx).userID, token)
}

func GetUserID(ctx context.Context) (string, bool) {
	p := principalFrom(ctx)
	return p.userID, p.userID != ""
}

func GetToken(ctx context.Context) (string, bool) {
	p := principalFrom(ctx)
	return p.token, p.token != ""
}
