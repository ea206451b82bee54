// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

type LoggerInterface interface {
	Errorf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Debugf(string, ...interface{})
	Fatalf(string, ...interface{})
	Error(...interface{})
	Info(...interface{})
	Warn(...interface{})
	Debug(...interface{})
	Fatal(...interface{})
	Security() SecurityLoggerInterface
	Sync() error
}

type SecurityLoggerInterface interface {
	AuthnSuccess(string, ...Option)
	AuthnFailure(string, ...Option)
	AuthzFailure(string, string, ...Option)
	AdminAction(string, string, string, ...Option)
	SystemStartup(...Option)
	SystemShutdown(...Option)
}
