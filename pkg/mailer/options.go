package mailer

import (
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/courier/pkg/transport"
	"github.com/dmitrymomot/courier/pkg/transport/factory"
	"github.com/dmitrymomot/courier/pkg/view"
)

// Option configures the mailer.
type Option func(*Mailer)

// WithTransport sets the transport instance. It wins over every other
// transport setting.
func WithTransport(t transport.Transport) Option {
	return func(m *Mailer) {
		if t != nil {
			m.transport = t
		}
	}
}

// WithTransportFactory sets a function that builds the transport on first use.
// It wins over Config.Transport and Config.DSN.
func WithTransportFactory(fn func() (transport.Transport, error)) Option {
	return func(m *Mailer) {
		m.transportFactory = fn
	}
}

// WithDefaultHeader adds a default header with one or more values.
// Unlike Config.DefaultHeaders it can carry repeated headers such as
// several Comments or X-Tag lines, and it replaces a Config.DefaultHeaders
// entry of the same name. Without values it removes that header.
func WithDefaultHeader(name string, values ...string) Option {
	return func(m *Mailer) {
		if m.headers == nil {
			m.headers = make(map[string][]string)
		}
		m.headers[name] = values
	}
}

// WithLogger sets the mailer logger. It is forwarded to the mail client
// and to transports built from a DSN.
// If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mailer) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithView sets the view renderer used for templated messages.
func WithView(v *view.View) Option {
	return func(m *Mailer) {
		m.view = v
	}
}

// WithViewFS sets the filesystem the default view reads templates from.
// Defaults to the working directory.
func WithViewFS(fsys fs.FS) Option {
	return func(m *Mailer) {
		if fsys != nil {
			m.viewFS = fsys
		}
	}
}

// WithViewOptions passes options to the default view.
func WithViewOptions(opts ...view.Option) Option {
	return func(m *Mailer) {
		m.viewOpts = append(m.viewOpts, opts...)
	}
}

// WithClient sets the mail client. Transport settings are ignored
// when a client is given.
func WithClient(c *transport.Client) Option {
	return func(m *Mailer) {
		if c != nil {
			m.client = c
			m.explicitClient = true
		}
	}
}

// WithFactoryOptions passes options to the DSN transport factory,
// e.g. factory.WithFactories to support extra schemes.
func WithFactoryOptions(opts ...factory.Option) Option {
	return func(m *Mailer) {
		m.factoryOpts = append(m.factoryOpts, opts...)
	}
}

// WithObserver adds a delivery observer to the mail client the mailer builds.
func WithObserver(obs transport.Observer) Option {
	return func(m *Mailer) {
		if obs != nil {
			m.observers = append(m.observers, obs)
		}
	}
}
