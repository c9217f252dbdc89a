package simplecms

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NoopEventSink is a no-operation implementation of EventSink
// Useful for production when you don't need event handling or for testing
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

func (n *NoopEventSink) ContentTypeSaved(ctx context.Context, ct *ContentType) error { return nil }

func (n *NoopEventSink) ContentTypeDeleted(ctx context.Context, id uuid.UUID) error { return nil }

func (n *NoopEventSink) ContentCreated(ctx context.Context, content *Content, version *ContentVersion) error {
	return nil
}

func (n *NoopEventSink) ContentUpdated(ctx context.Context, content *Content, version *ContentVersion) error {
	return nil
}

func (n *NoopEventSink) ContentPublished(ctx context.Context, content *Content, version *ContentVersion) error {
	return nil
}

func (n *NoopEventSink) ContentRestored(ctx context.Context, content *Content, version *ContentVersion) error {
	return nil
}

func (n *NoopEventSink) ContentDeleted(ctx context.Context, id uuid.UUID) error { return nil }

// LoggingEventSink is an event sink that logs events but takes no other action
// Useful for development and debugging
type LoggingEventSink struct {
	logger *zap.Logger
}

// NewLoggingEventSink creates a new logging event sink
func NewLoggingEventSink(logger *zap.Logger) EventSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingEventSink{logger: logger.Named("events")}
}

func (l *LoggingEventSink) ContentTypeSaved(ctx context.Context, ct *ContentType) error {
	l.logger.Info("content type saved",
		zap.Stringer("content_type_id", ct.ID),
		zap.String("slug", ct.Slug),
		zap.Int("fields", len(ct.Fields)))
	return nil
}

func (l *LoggingEventSink) ContentTypeDeleted(ctx context.Context, id uuid.UUID) error {
	l.logger.Info("content type deleted", zap.Stringer("content_type_id", id))
	return nil
}

func (l *LoggingEventSink) ContentCreated(ctx context.Context, content *Content, version *ContentVersion) error {
	l.logVersion("content created", content, version)
	return nil
}

func (l *LoggingEventSink) ContentUpdated(ctx context.Context, content *Content, version *ContentVersion) error {
	l.logVersion("content updated", content, version)
	return nil
}

func (l *LoggingEventSink) ContentPublished(ctx context.Context, content *Content, version *ContentVersion) error {
	l.logVersion("content published", content, version)
	return nil
}

func (l *LoggingEventSink) ContentRestored(ctx context.Context, content *Content, version *ContentVersion) error {
	l.logVersion("content restored", content, version)
	return nil
}

func (l *LoggingEventSink) ContentDeleted(ctx context.Context, id uuid.UUID) error {
	l.logger.Info("content deleted", zap.Stringer("content_id", id))
	return nil
}

func (l *LoggingEventSink) logVersion(msg string, content *Content, version *ContentVersion) {
	l.logger.Info(msg,
		zap.Stringer("content_id", content.ID),
		zap.String("status", string(content.Status)),
		zap.Int("version", version.VersionNumber),
		zap.String("notes", version.Notes))
}
