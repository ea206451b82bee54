// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package monitoring

// MonitorInterface records the http latency histogram and the dependency gauge
// fed by the status endpoint. Labels are passed as a map keyed by label name.
type MonitorInterface interface {
	GetService() string
	SetResponseTimeMetric(labels map[string]string, seconds float64) error
	SetDependencyAvailability(labels map[string]string, up float64) error
}
