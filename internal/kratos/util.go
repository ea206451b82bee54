// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"net/http"

	ory "github.com/ory/client-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultSchemaID = "default"

func newAPIClient(url string) *ory.APIClient {
	conf := ory.NewConfiguration()
	conf.Servers = ory.ServerConfigurations{{URL: url}}
	conf.HTTPClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	return ory.NewAPIClient(conf)
}

func identityTraits(email, fullName string) map[string]interface{} {
	traits := map[string]interface{}{
		"email": email,
	}

	if fullName != "" {
		traits["name"] = fullName
	}

	return traits
}

func traitString(traits interface{}, key string) string {
	m, ok := traits.(map[string]interface{})
	if !ok {
		return ""
	}

	v, _ := m[key].(string)
	return v
}
