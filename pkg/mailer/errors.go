package mailer

import "errors"

var (
	// ErrTransportNotConfigured indicates that neither a transport nor a DSN was configured.
	ErrTransportNotConfigured = errors.New(`mailer: either "MAILER_DSN" (Config.DSN) or "MAILER_TRANSPORT" (Config.Transport) must be set`)

	// ErrInvalidConfig indicates the environment could not be parsed into a Config.
	ErrInvalidConfig = errors.New("mailer: invalid configuration")

	// ErrInvalidHeader indicates a default header value could not be applied.
	ErrInvalidHeader = errors.New("mailer: invalid default header")
)
