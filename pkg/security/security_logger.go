package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of audit event
type EventType string

const (
	EventProfileSaved       EventType = "profile_saved"
	EventValidationFailed   EventType = "validation_failed"
	EventUsernameClaimed    EventType = "username_claimed"
	EventTemplateSelected   EventType = "template_selected"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventProfileImported    EventType = "profile_imported"
	EventDataExport         EventType = "data_export"
	EventQuotaExceeded      EventType = "quota_exceeded"
)

// SecurityEvent represents an audit event to be logged
type SecurityEvent struct {
	Timestamp    time.Time              `json:"timestamp"`
	Service      string                 `json:"service"`
	Environment  string                 `json:"env"`
	Level        string                 `json:"level"`
	Severity     Severity               `json:"severity"`
	Event        EventType              `json:"event"`
	SubjectType  string                 `json:"subject_type,omitempty"`  // "user_id", "ip", "username"
	SubjectValue string                 `json:"subject_value,omitempty"` // hashed unless public
	IP           string                 `json:"ip,omitempty"`
	UserAgent    string                 `json:"user_agent,omitempty"`
	RequestID    string                 `json:"request_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// SecurityLogger writes audit events through zap, separate from the slog
// application log.
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// NewSecurityLogger builds a production zap logger writing JSON to stdout.
func NewSecurityLogger(serviceName, ginMode string) *SecurityLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return NewSecurityLoggerWithZap(logger, serviceName, environmentFor(ginMode))
}

// NewSecurityLoggerWithZap wraps an existing zap logger.
func NewSecurityLoggerWithZap(logger *zap.Logger, serviceName, environment string) *SecurityLogger {
	return &SecurityLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
}

// Nop discards every event.
func Nop() *SecurityLogger {
	return NewSecurityLoggerWithZap(zap.NewNop(), "", "")
}

// Log logs an audit event
func (sl *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	if sl == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = sl.serviceName
	event.Environment = sl.environment

	level := levelFor(event.Event)
	event.Level = level.String()
	event.Severity = GetSeverity(event.Event)

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
		zap.String("severity", string(event.Severity)),
	}
	if IsHighOrAbove(event.Event) {
		fields = append(fields, zap.Bool("alert", true))
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	sl.zapLogger.Log(level, string(event.Event), fields...)
}

// LogProfileSaved logs a persisted section.
func (sl *SecurityLogger) LogProfileSaved(ctx context.Context, userID, section, requestID string, completion int) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventProfileSaved,
		SubjectType:  "user_id",
		SubjectValue: HashValue(userID),
		RequestID:    requestID,
		Details:      map[string]interface{}{"section": section, "completion": completion},
	})
}

// LogValidationFailed logs a rejected save. Only the error keys are
// recorded, never the submitted values.
func (sl *SecurityLogger) LogValidationFailed(ctx context.Context, userID, section, requestID string, keys []string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventValidationFailed,
		SubjectType:  "user_id",
		SubjectValue: HashValue(userID),
		RequestID:    requestID,
		Details:      map[string]interface{}{"section": section, "fields": keys},
	})
}

// LogUsernameClaimed logs a username change. Usernames are public.
func (sl *SecurityLogger) LogUsernameClaimed(ctx context.Context, userID, username, requestID string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventUsernameClaimed,
		SubjectType:  "username",
		SubjectValue: username,
		RequestID:    requestID,
		Details:      map[string]interface{}{"user": HashValue(userID)},
	})
}

// LogTemplateSelected logs a template choice.
func (sl *SecurityLogger) LogTemplateSelected(ctx context.Context, userID, templateID, requestID string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventTemplateSelected,
		SubjectType:  "user_id",
		SubjectValue: HashValue(userID),
		RequestID:    requestID,
		Details:      map[string]interface{}{"template_id": templateID},
	})
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

// LogUnauthorizedAccess logs a rejected bearer token.
func (sl *SecurityLogger) LogUnauthorizedAccess(ctx context.Context, ip, userAgent, requestID, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:     EventUnauthorizedAccess,
		IP:        ip,
		UserAgent: userAgent,
		RequestID: requestID,
		Details:   map[string]interface{}{"reason": reason},
	})
}

// LogProfileImported logs a whole-document import.
func (sl *SecurityLogger) LogProfileImported(ctx context.Context, userID, requestID string, completion int) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventProfileImported,
		SubjectType:  "user_id",
		SubjectValue: HashValue(userID),
		RequestID:    requestID,
		Details:      map[string]interface{}{"completion": completion},
	})
}

// LogDataExport logs a workbook download.
func (sl *SecurityLogger) LogDataExport(ctx context.Context, userID, requestID string, size int) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventDataExport,
		SubjectType:  "user_id",
		SubjectValue: HashValue(userID),
		RequestID:    requestID,
		Details:      map[string]interface{}{"bytes": size},
	})
}

// LogQuotaExceeded logs a user hitting a per-user quota.
func (sl *SecurityLogger) LogQuotaExceeded(ctx context.Context, userID, ip, requestID, operation string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventQuotaExceeded,
		SubjectType:  "user_id",
		SubjectValue: HashValue(userID),
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]interface{}{"operation": operation},
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	if sl == nil {
		return nil
	}
	return sl.zapLogger.Sync()
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

func environmentFor(ginMode string) string {
	if ginMode == "release" {
		return "production"
	}
	return "development"
}
