// Package preview serves the messages captured by a recorder.Transport over
// HTTP, for looking at rendered email during local development.
//
//	rec := recorder.New()
//	m := mailer.New(cfg, mailer.WithTransport(rec))
//	http.ListenAndServe(":8025", preview.New(rec))
//
// Routes:
//
//	GET    /          list of recorded messages (JSON)
//	GET    /last      the most recent message
//	GET    /{index}   a message by zero-based index
//	DELETE /          forget all recorded messages
//
// A single message is served as its HTML body, falling back to the text body.
// Add ?format=text for the text body or ?format=json for headers and both bodies.
package preview
