package security

import "go.uber.org/zap/zapcore"

// Severity is derived from EventType, never supplied by callers.
type Severity string

const (
	SeverityINFO   Severity = "INFO"
	SeverityMEDIUM Severity = "MEDIUM"
	SeverityWARN   Severity = "WARN"
	SeverityHIGH   Severity = "HIGH"
)

// EventSeverityMap defines the fixed severity of each event type
var EventSeverityMap = map[EventType]Severity{
	EventProfileSaved:     SeverityINFO,
	EventUsernameClaimed:  SeverityINFO,
	EventTemplateSelected: SeverityINFO,

	EventProfileImported: SeverityMEDIUM,
	EventDataExport:      SeverityMEDIUM,

	EventValidationFailed:   SeverityWARN,
	EventRateLimitTriggered: SeverityWARN,
	EventQuotaExceeded:      SeverityWARN,

	EventUnauthorizedAccess: SeverityHIGH,
}

// GetSeverity returns the severity for an event type.
// Unmapped types default to MEDIUM.
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}

// IsHighOrAbove reports whether the event needs attention.
func IsHighOrAbove(eventType EventType) bool {
	return GetSeverity(eventType) == SeverityHIGH
}

func levelFor(event EventType) zapcore.Level {
	switch GetSeverity(event) {
	case SeverityINFO, SeverityMEDIUM:
		return zapcore.InfoLevel
	case SeverityHIGH:
		return zapcore.ErrorLevel
	}
	return zapcore.WarnLevel
}
