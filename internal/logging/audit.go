package logging

import (
	"time"

	"go.uber.org/zap"
)

// AuditEventType names one kind of audited backend interaction.
type AuditEventType string

const (
	AuditRequest  AuditEventType = "api_request"  // request completed with a 2xx
	AuditFailure  AuditEventType = "api_failure"  // non-2xx or transport failure
	AuditNavigate AuditEventType = "navigate"     // router transition
	AuditStale    AuditEventType = "stale_result" // response dropped as superseded
)

// AuditEvent is one structured line in the api category.
type AuditEvent struct {
	Event     AuditEventType
	RequestID string
	Method    string
	Path      string
	Status    int
	UserID    string
	Duration  time.Duration
	Err       error
}

// Audit writes ev to the category's structured log. Events are dropped when
// the category is disabled.
func Audit(category Category, ev AuditEvent) {
	l := Get(category)
	if !l.active() {
		return
	}
	fields := []zap.Field{
		zap.String("event", string(ev.Event)),
	}
	if ev.RequestID != "" {
		fields = append(fields, zap.String("req", ev.RequestID))
	}
	if ev.Method != "" {
		fields = append(fields, zap.String("method", ev.Method))
	}
	if ev.Path != "" {
		fields = append(fields, zap.String("path", ev.Path))
	}
	if ev.Status != 0 {
		fields = append(fields, zap.Int("status", ev.Status))
	}
	if ev.UserID != "" {
		fields = append(fields, zap.String("user", ev.UserID))
	}
	if ev.Duration > 0 {
		fields = append(fields, zap.Int64("dur_ms", ev.Duration.Milliseconds()))
	}
	if ev.Err != nil {
		fields = append(fields, zap.Error(ev.Err))
		l.base.Warn("audit", fields...)
		return
	}
	l.base.Info("audit", fields...)
}
