package audit

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType names a security-relevant action on the admin surface.
type EventType string

const (
	EventAdminRegistered    EventType = "admin_registered"
	EventRegistrationLocked EventType = "registration_locked"
	EventLoginSuccess       EventType = "login_success"
	EventLoginFailed        EventType = "login_failed"
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventCandidateCreated   EventType = "candidate_created"
	EventCandidateUpdated   EventType = "candidate_updated"
	EventCandidateDeleted   EventType = "candidate_deleted"
)

// Event is one audit record. Subject is already masked by the helper that builds it.
type Event struct {
	Timestamp time.Time
	Event     EventType
	Subject   string
	Actor     string
	IP        string
	RequestID string
	Details   map[string]interface{}
}

// Logger writes audit events through zap. A nil *Logger discards everything.
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// Init builds the production audit logger writing JSON to stdout.
func Init(serviceName, environment string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	zl, err := config.Build(zap.AddCaller())
	if err != nil {
		zl, _ = zap.NewProduction()
	}

	return New(zl, serviceName, environment)
}

func New(zl *zap.Logger, serviceName, environment string) *Logger {
	return &Logger{zapLogger: zl, serviceName: serviceName, environment: environment}
}

func (l *Logger) Log(ctx context.Context, event Event) {
	if l == nil || l.zapLogger == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if meta, ok := RequestFromContext(ctx); ok {
		if event.IP == "" {
			event.IP = meta.IP
		}
		if event.RequestID == "" {
			event.RequestID = meta.RequestID
		}
		if event.Actor == "" {
			event.Actor = meta.AccountID
		}
	}

	level := zapcore.InfoLevel
	switch event.Event {
	case EventLoginFailed, EventRegistrationLocked:
		level = zapcore.WarnLevel
	case EventUnauthorizedAccess:
		level = zapcore.ErrorLevel
	}

	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("event", string(event.Event)),
		zap.Time("occurred_at", event.Timestamp),
	}
	if event.Subject != "" {
		fields = append(fields, zap.String("subject", event.Subject))
	}
	if event.Actor != "" {
		fields = append(fields, zap.String("actor", event.Actor))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	l.zapLogger.Log(level, string(event.Event), fields...)
}

func (l *Logger) AdminRegistered(ctx context.Context, accountID, email string) {
	l.Log(ctx, Event{
		Event:   EventAdminRegistered,
		Subject: MaskEmail(email),
		Details: map[string]interface{}{"account_id": accountID},
	})
}

func (l *Logger) RegistrationLocked(ctx context.Context, email string) {
	l.Log(ctx, Event{Event: EventRegistrationLocked, Subject: MaskEmail(email)})
}

// LoginFailed records why a login was refused. The reason never reaches the client.
func (l *Logger) LoginFailed(ctx context.Context, email, reason string) {
	l.Log(ctx, Event{
		Event:   EventLoginFailed,
		Subject: MaskEmail(email),
		Details: map[string]interface{}{"reason": reason},
	})
}

func (l *Logger) LoginSucceeded(ctx context.Context, accountID, email string) {
	l.Log(ctx, Event{
		Event:   EventLoginSuccess,
		Subject: MaskEmail(email),
		Details: map[string]interface{}{"account_id": accountID},
	})
}

func (l *Logger) UnauthorizedAccess(ctx context.Context, path, reason string) {
	l.Log(ctx, Event{
		Event:   EventUnauthorizedAccess,
		Details: map[string]interface{}{"path": path, "reason": reason},
	})
}

// CandidateChanged records an admin write; the actor comes from the request metadata.
func (l *Logger) CandidateChanged(ctx context.Context, event EventType, candidateID string) {
	l.Log(ctx, Event{Event: event, Subject: candidateID})
}

func (l *Logger) Sync() error {
	if l == nil || l.zapLogger == nil {
		return nil
	}
	return l.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	switch {
	case len(email) < 3, at < 0:
		return "***"
	case at <= 1:
		return "***" + email[at:]
	default:
		return email[:1] + "***" + email[at:]
	}
}
