// Package audit records admin operations in a structured log stream so
// moderation activity can be traced back to an operator.
package audit

import (
	"time"

	"github.com/rs/zerolog"
)

// Entry represents a single audit log entry with structured fields
type Entry struct {
	Timestamp    time.Time
	Action       string
	AdminUser    string
	ResourceType string
	ResourceID   string
	IPAddress    string
	Status       string // "success" or "failure"
	Details      map[string]string
}

// Logger provides structured audit logging for admin operations
type Logger struct {
	log zerolog.Logger
}

// NewLogger creates an audit logger writing through the given zerolog logger.
func NewLogger(logger zerolog.Logger) *Logger {
	return &Logger{log: logger.With().Str("component", "audit").Logger()}
}

// Log writes an audit entry to the log output
func (l *Logger) Log(entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	event := l.log.Info().
		Time("timestamp", entry.Timestamp).
		Str("action", entry.Action).
		Str("admin_user", entry.AdminUser).
		Str("ip_address", entry.IPAddress).
		Str("status", entry.Status)
	if entry.ResourceType != "" {
		event = event.Str("resource_type", entry.ResourceType)
	}
	if entry.ResourceID != "" {
		event = event.Str("resource_id", entry.ResourceID)
	}
	for key, value := range entry.Details {
		event = event.Str("detail_"+key, value)
	}
	event.Msg("admin action")
}

// LogSuccess logs a successful admin operation
func (l *Logger) LogSuccess(action, adminUser, resourceType, resourceID, ipAddress string, details map[string]string) {
	l.Log(Entry{
		Action:       action,
		AdminUser:    adminUser,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Status:       "success",
		Details:      details,
	})
}

// LogFailure logs a failed admin operation
func (l *Logger) LogFailure(action, adminUser, resourceType, resourceID, ipAddress string, details map[string]string) {
	l.Log(Entry{
		Action:       action,
		AdminUser:    adminUser,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Status:       "failure",
		Details:      details,
	})
}
