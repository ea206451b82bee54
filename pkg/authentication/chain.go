// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
)

var errNoVerifier = errors.New("no token verifier configured")

// ChainVerifier tries its verifiers in order and returns the first subject accepted.
type ChainVerifier struct {
	verifiers []TokenVerifierInterface
}

func (c *ChainVerifier) VerifyToken(ctx context.Context, rawToken string) (string, error) {
	if len(c.verifiers) == 0 {
		return "", errNoVerifier
	}

	var errs []error

	for _, v := range c.verifiers {
		subject, err := v.VerifyToken(ctx, rawToken)
		if err == nil {
			return subject, nil
		}
		errs = append(errs, err)
	}

	return "", errors.Join(errs...)
}

func NewChainVerifier(verifiers ...TokenVerifierInterface) *ChainVerifier {
	c := new(ChainVerifier)
	c.verifiers = verifiers

	return c
}
