// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	ory "github.com/ory/client-go"

	"github.com/canonical/compliance-service/internal/identity"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
)

// Kratos UI message ids, see https://www.ory.sh/docs/kratos/concepts/ui-messages
const (
	msgIdentifierMissing   int64 = 4000002
	msgMinLength           int64 = 4000003
	msgInvalidFormat       int64 = 4000004
	msgInvalidCredentials  int64 = 4000006
	msgDuplicateIdentifier int64 = 4000007
	msgAddressNotVerified  int64 = 4000010
	msgPasswordMinLength   int64 = 4000032
)

const (
	passwordMethod            = "password"
	registrationDisabledError = "self_service_flow_disabled"
)

var _ identity.ProviderInterface = (*Provider)(nil)

// Provider authenticates users through the native (API) self-service flows of the Kratos public API.
type Provider struct {
	client *ory.APIClient

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

type uiMessage struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Type string `json:"type"`
}

type flowErrorBody struct {
	UI *struct {
		Messages []uiMessage `json:"messages"`
		Nodes    []struct {
			Messages []uiMessage `json:"messages"`
		} `json:"nodes"`
	} `json:"ui"`
	Error *struct {
		ID      string `json:"id"`
		Message string `json:"message"`
		Reason  string `json:"reason"`
	} `json:"error"`
}

// flowMessages extracts the error messages of a failed flow submission.
func flowMessages(err error) ([]uiMessage, string) {
	var apiErr *ory.GenericOpenAPIError
	if !errors.As(err, &apiErr) {
		return nil, ""
	}

	body := new(flowErrorBody)
	if json.Unmarshal(apiErr.Body(), body) != nil {
		return nil, ""
	}

	if body.Error != nil {
		if body.Error.ID != "" {
			return nil, body.Error.ID
		}
		return []uiMessage{{Text: body.Error.Reason + " " + body.Error.Message, Type: "error"}}, ""
	}

	if body.UI == nil {
		return nil, ""
	}

	messages := make([]uiMessage, 0)
	for _, m := range body.UI.Messages {
		if m.Type == "error" {
			messages = append(messages, m)
		}
	}
	for _, n := range body.UI.Nodes {
		for _, m := range n.Messages {
			if m.Type == "error" {
				messages = append(messages, m)
			}
		}
	}

	return messages, ""
}

func signUpError(err error) error {
	messages, errorID := flowMessages(err)
	if errorID == registrationDisabledError {
		return identity.ErrRegistrationDisabled
	}

	for _, m := range messages {
		switch m.ID {
		case msgDuplicateIdentifier:
			return fmt.Errorf("%w: %s", identity.ErrAccountExists, m.Text)
		case msgMinLength, msgPasswordMinLength:
			return fmt.Errorf("%w: %s", identity.ErrPasswordTooShort, m.Text)
		case msgInvalidFormat, msgIdentifierMissing:
			return fmt.Errorf("%w: %s", identity.ErrInvalidEmail, m.Text)
		}
	}

	texts := make([]string, 0, len(messages))
	for _, m := range messages {
		texts = append(texts, m.Text)
	}
	if len(texts) > 0 {
		return identity.ClassifySignUpError(errors.New(strings.Join(texts, "; ")))
	}

	return identity.ClassifySignUpError(err)
}

func toUser(i *ory.Identity) types.User {
	if i == nil {
		return types.User{}
	}

	return types.User{
		ID:       i.Id,
		Email:    traitString(i.Traits, "email"),
		FullName: traitString(i.Traits, "name"),
	}
}

func toSession(s *ory.Session, token string) *types.Session {
	session := &types.Session{
		Token: token,
		User:  toUser(s.Identity),
	}

	if s.ExpiresAt != nil {
		session.ExpiresAt = *s.ExpiresAt
	}

	return session
}

func (p *Provider) SignUp(ctx context.Context, email, password, fullName string) (*types.User, *types.Session, error) {
	ctx, span := p.tracer.Start(ctx, "kratos.Provider.SignUp")
	defer span.End()

	flow, _, err := p.client.FrontendAPI.CreateNativeRegistrationFlow(ctx).Execute()
	if err != nil {
		if _, errorID := flowMessages(err); errorID == registrationDisabledError {
			return nil, nil, identity.ErrRegistrationDisabled
		}
		return nil, nil, fmt.Errorf("%w: failed to create registration flow: %v", identity.ErrSignUpFailed, err)
	}

	body := ory.UpdateRegistrationFlowWithPasswordMethodAsUpdateRegistrationFlowBody(
		&ory.UpdateRegistrationFlowWithPasswordMethod{
			Method:   passwordMethod,
			Password: password,
			Traits:   identityTraits(email, fullName),
		},
	)

	r, _, err := p.client.FrontendAPI.UpdateRegistrationFlow(ctx).Flow(flow.Id).UpdateRegistrationFlowBody(body).Execute()
	if err != nil {
		p.logger.Debugf("registration flow rejected: %v", err)
		return nil, nil, signUpError(err)
	}

	user := toUser(&r.Identity)

	// no session is issued when the identity must verify its address first
	if r.Session == nil || r.SessionToken == nil {
		return &user, nil, nil
	}

	return &user, toSession(r.Session, *r.SessionToken), nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (*types.Session, error) {
	ctx, span := p.tracer.Start(ctx, "kratos.Provider.SignIn")
	defer span.End()

	flow, _, err := p.client.FrontendAPI.CreateNativeLoginFlow(ctx).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create login flow: %w", err)
	}

	body := ory.UpdateLoginFlowWithPasswordMethodAsUpdateLoginFlowBody(
		&ory.UpdateLoginFlowWithPasswordMethod{
			Method:     passwordMethod,
			Identifier: email,
			Password:   password,
		},
	)

	r, resp, err := p.client.FrontendAPI.UpdateLoginFlow(ctx).Flow(flow.Id).UpdateLoginFlowBody(body).Execute()
	if err != nil {
		messages, _ := flowMessages(err)
		for _, m := range messages {
			if m.ID == msgInvalidCredentials || m.ID == msgAddressNotVerified {
				return nil, fmt.Errorf("%w: %s", identity.ErrInvalidCredentials, m.Text)
			}
		}
		if resp != nil && resp.StatusCode == http.StatusBadRequest {
			return nil, identity.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to submit login flow: %w", err)
	}

	if r.SessionToken == nil {
		return nil, fmt.Errorf("login flow completed without a session token")
	}

	return toSession(&r.Session, *r.SessionToken), nil
}

func (p *Provider) SignOut(ctx context.Context, token string) error {
	ctx, span := p.tracer.Start(ctx, "kratos.Provider.SignOut")
	defer span.End()

	resp, err := p.client.FrontendAPI.PerformNativeLogout(ctx).
		PerformNativeLogoutBody(ory.PerformNativeLogoutBody{SessionToken: token}).
		Execute()
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return identity.ErrSessionNotFound
		}
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}

func (p *Provider) GetSession(ctx context.Context, token string) (*types.Session, error) {
	ctx, span := p.tracer.Start(ctx, "kratos.Provider.GetSession")
	defer span.End()

	s, resp, err := p.client.FrontendAPI.ToSession(ctx).XSessionToken(token).Execute()
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return nil, identity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if s.Active != nil && !*s.Active {
		return nil, identity.ErrSessionNotFound
	}

	if s.ExpiresAt != nil && s.ExpiresAt.Before(time.Now()) {
		return nil, identity.ErrSessionNotFound
	}

	return toSession(s, token), nil
}

func NewProvider(kratosPublicURL string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Provider {
	p := new(Provider)

	p.client = newAPIClient(kratosPublicURL)

	p.tracer = tracer
	p.monitor = monitor
	p.logger = logger

	return p
}
