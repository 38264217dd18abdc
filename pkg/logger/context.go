package logger

import (
	"context"
	"log/slog"
)

type messageIDKey struct{}

// WithMessageID stores the Message-ID of the email being delivered in ctx.
func WithMessageID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, messageIDKey{}, id)
}

// MessageID returns the Message-ID stored in ctx, if any.
func MessageID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(messageIDKey{}).(string)
	return id, ok && id != ""
}

// MessageIDExtractor adds a "message_id" attribute to records logged with a
// context carrying a Message-ID.
func MessageIDExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := MessageID(ctx); ok {
			return slog.String("message_id", id), true
		}
		return slog.Attr{}, false
	}
}
