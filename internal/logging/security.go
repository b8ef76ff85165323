// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

const (
	eventSystemStartup  = "sys_startup"
	eventSystemShutdown = "sys_shutdown"
	eventAuthzFailure   = "authz_fail"
	eventAdminAction    = "admin_action"
)

var _ SecurityLoggerInterface = (*SecurityLogger)(nil)

// SecurityLogger writes audit events with a stable "event" key so they can be routed apart
// from application logs.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("service started", zap.String("event", eventSystemStartup))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("service stopping", zap.String("event", eventSystemShutdown))
}

func (s *SecurityLogger) AuthzFailure(actor, resource, reason string) {
	s.l.Warn(
		"authorization failure",
		zap.String("event", eventAuthzFailure+":"+actor+","+resource),
		zap.String("actor", actor),
		zap.String("resource", resource),
		zap.String("reason", reason),
	)
}

func (s *SecurityLogger) AdminAction(actor, action, resource string) {
	s.l.Info(
		"membership changed",
		zap.String("event", eventAdminAction+":"+actor+","+action+","+resource),
		zap.String("actor", actor),
		zap.String("action", action),
		zap.String("resource", resource),
	)
}

func newSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{l: l}
}
