// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"time"

	"go.uber.org/zap"
)

const (
	appName = "compliance-service"

	eventAuthnSuccess   = "authn_login_success"
	eventAuthnFailure   = "authn_login_fail"
	eventAuthzFailure   = "authz_fail"
	eventAdminAction    = "admin_action"
	eventSystemStartup  = "sys_startup"
	eventSystemShutdown = "sys_shutdown"
)

// Option decorates a security event with extra fields.
type Option func(*[]zap.Field)

func WithIP(ip string) Option {
	return func(f *[]zap.Field) {
		*f = append(*f, zap.String("source_ip", ip))
	}
}

func WithContext(key, value string) Option {
	return func(f *[]zap.Field) {
		*f = append(*f, zap.String(key, value))
	}
}

var _ SecurityLoggerInterface = (*SecurityLogger)(nil)

// SecurityLogger writes events following the OWASP logging vocabulary.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) emit(level, event, description string, fields []zap.Field, opts ...Option) {
	for _, o := range opts {
		o(&fields)
	}

	fields = append(
		fields,
		zap.String("type", "security"),
		zap.String("appid", appName),
		zap.String("event", event),
		zap.String("level", level),
		zap.String("datetime", time.Now().UTC().Format(time.RFC3339)),
	)

	switch level {
	case "WARN":
		s.l.Warn(description, fields...)
	case "CRITICAL":
		s.l.Error(description, fields...)
	default:
		s.l.Info(description, fields...)
	}
}

func (s *SecurityLogger) AuthnSuccess(userID string, opts ...Option) {
	s.emit("INFO", eventAuthnSuccess+":"+userID, "User "+userID+" login successfully", nil, opts...)
}

func (s *SecurityLogger) AuthnFailure(userID string, opts ...Option) {
	s.emit("WARN", eventAuthnFailure+":"+userID, "User "+userID+" login failed", nil, opts...)
}

func (s *SecurityLogger) AuthzFailure(userID, resource string, opts ...Option) {
	s.emit(
		"CRITICAL",
		eventAuthzFailure+":"+userID+","+resource,
		"User "+userID+" attempted to access "+resource+" without entitlement",
		nil,
		opts...,
	)
}

func (s *SecurityLogger) AdminAction(userID, action, resource string, opts ...Option) {
	s.emit(
		"WARN",
		eventAdminAction+":"+userID+","+action+","+resource,
		"User "+userID+" performed "+action+" on "+resource,
		nil,
		opts...,
	)
}

func (s *SecurityLogger) SystemStartup(opts ...Option) {
	s.emit("WARN", eventSystemStartup, appName+" is starting", nil, opts...)
}

func (s *SecurityLogger) SystemShutdown(opts ...Option) {
	s.emit("WARN", eventSystemShutdown, appName+" is shutting down", nil, opts...)
}

func newSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{l: l}
}
