package preview

import "errors"

var (
	// ErrNotFound indicates the requested message does not exist.
	ErrNotFound = errors.New("preview: message not found")

	// ErrInvalidIndex indicates the message index is not a number.
	ErrInvalidIndex = errors.New("preview: invalid message index")

	// ErrInvalidFormat indicates an unknown ?format value.
	ErrInvalidFormat = errors.New("preview: invalid format")
)
