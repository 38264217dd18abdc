package transport

import "errors"

var (
	// ErrNoSender indicates the envelope has no sender address.
	ErrNoSender = errors.New("transport: envelope must have a sender")

	// ErrNoRecipients indicates the envelope has no recipients.
	ErrNoRecipients = errors.New("transport: envelope must have at least one recipient")

	// ErrInvalidAddress indicates an envelope address could not be parsed.
	ErrInvalidAddress = errors.New("transport: invalid address")

	// ErrInvalidDSN indicates the connection string could not be parsed.
	ErrInvalidDSN = errors.New("transport: invalid dsn")

	// ErrUnsupportedScheme indicates no factory supports the DSN scheme.
	ErrUnsupportedScheme = errors.New("transport: unsupported scheme")

	// ErrIncompleteDSN indicates a required DSN part (user, password, host) is missing.
	ErrIncompleteDSN = errors.New("transport: incomplete dsn")

	// ErrUnknownTransport indicates no constructor is registered under the given name.
	ErrUnknownTransport = errors.New("transport: unknown transport")

	// ErrNilMessage indicates a nil message was passed to the client.
	ErrNilMessage = errors.New("transport: message is nil")
)
