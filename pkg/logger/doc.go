// Package logger builds the slog loggers used by the mailer and its transports.
//
// Loggers carry context extractors: functions that pull request-scoped values
// out of a context.Context and attach them to every record. The Message-ID
// extractor is always installed, so anything logged while a message is being
// delivered is tagged with its Message-ID:
//
//	log := logger.New(logger.Config{Level: slog.LevelDebug})
//	ctx := logger.WithMessageID(ctx, "b1c0...@example.com")
//	log.InfoContext(ctx, "email sent")
//	// {"level":"INFO","msg":"email sent","message_id":"b1c0...@example.com"}
//
// NewWithSentry additionally forwards warnings and errors (failed deliveries)
// to Sentry; with an empty DSN it falls back to stdout only.
//
// NewNope returns a logger that discards everything and is the default for
// every component that accepts a logger.
package logger
