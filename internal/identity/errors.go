// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAccountExists        = errors.New("an account with this email already exists")
	ErrPasswordTooShort     = errors.New("password is too short")
	ErrInvalidEmail         = errors.New("email address is not valid")
	ErrRegistrationDisabled = errors.New("registration is disabled")
	ErrSignUpFailed         = errors.New("sign up failed")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrSessionNotFound      = errors.New("session not found")
)

var signUpErrors = []error{
	ErrAccountExists,
	ErrPasswordTooShort,
	ErrInvalidEmail,
	ErrRegistrationDisabled,
}

// signUpMessages maps fragments of provider messages to the sign up error they denote.
var signUpMessages = []struct {
	fragment string
	err      error
}{
	{"already registered", ErrAccountExists},
	{"already exists", ErrAccountExists},
	{"exists already", ErrAccountExists},
	{"password should be at least", ErrPasswordTooShort},
	{"password must be at least", ErrPasswordTooShort},
	{"password length", ErrPasswordTooShort},
	{"too short", ErrPasswordTooShort},
	{"invalid email", ErrInvalidEmail},
	{"is not valid \"email\"", ErrInvalidEmail},
	{"unable to validate email", ErrInvalidEmail},
	{"signups not allowed", ErrRegistrationDisabled},
	{"registration is not allowed", ErrRegistrationDisabled},
	{"registration disabled", ErrRegistrationDisabled},
}

// ClassifySignUpError maps a provider failure to one of the sign up sentinels, ErrSignUpFailed otherwise.
func ClassifySignUpError(err error) error {
	if err == nil {
		return nil
	}

	for _, known := range signUpErrors {
		if errors.Is(err, known) {
			return err
		}
	}

	msg := strings.ToLower(err.Error())
	for _, m := range signUpMessages {
		if strings.Contains(msg, m.fragment) {
			return fmt.Errorf("%w: %s", m.err, err.Error())
		}
	}

	return fmt.Errorf("%w: %s", ErrSignUpFailed, err.Error())
}
