package transport

import "context"

// Null discards every message.
type Null struct{}

// NewNull creates a transport that discards messages.
func NewNull() *Null {
	return &Null{}
}

// Send implements Transport.
func (*Null) Send(context.Context, *SentMessage) error {
	return nil
}

func (*Null) String() string {
	return "null://"
}

// NullFactory creates Null transports for the "null" scheme.
type NullFactory struct{}

// Supports implements Factory.
func (NullFactory) Supports(dsn Dsn) bool {
	return dsn.Scheme == "null"
}

// Create implements Factory.
func (NullFactory) Create(Dsn, FactoryOptions) (Transport, error) {
	return NewNull(), nil
}
