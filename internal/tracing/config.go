// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/version"
)

// Config selects the span exporter. The HTTP endpoint wins over gRPC,
// with neither set spans are printed to stdout.
type Config struct {
	ServiceName    string
	ServiceVersion string

	OtelHTTPEndpoint string
	OtelGRPCEndpoint string

	Enabled bool

	Logger logging.LoggerInterface
}

func NewConfig(enabled bool, otelGRPCEndpoint, otelHTTPEndpoint string, logger logging.LoggerInterface) *Config {
	return &Config{
		ServiceName:      serviceName,
		ServiceVersion:   version.Version,
		OtelHTTPEndpoint: otelHTTPEndpoint,
		OtelGRPCEndpoint: otelGRPCEndpoint,
		Enabled:          enabled,
		Logger:           logger,
	}
}

func NewNoopConfig() *Config {
	return &Config{ServiceName: serviceName, Logger: logging.NewNoopLogger()}
}
