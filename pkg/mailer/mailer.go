package mailer

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/dmitrymomot/courier/pkg/logger"
	"github.com/dmitrymomot/courier/pkg/message"
	"github.com/dmitrymomot/courier/pkg/transport"
	"github.com/dmitrymomot/courier/pkg/transport/factory"
	"github.com/dmitrymomot/courier/pkg/transport/recorder"
	"github.com/dmitrymomot/courier/pkg/view"
)

// ErrNilTransport indicates a transport factory returned no transport and no error.
var ErrNilTransport = errors.New("mailer: transport factory returned nil")

// Mailer sends messages through a lazily resolved transport.
// Templated messages are rendered with the view before they are sent.
type Mailer struct {
	cfg              Config
	logger           *slog.Logger
	transport        transport.Transport
	transportFactory func() (transport.Transport, error)
	client           *transport.Client
	view             *view.View
	viewFS           fs.FS
	viewOpts         []view.Option
	factoryOpts      []factory.Option
	observers        []transport.Observer
	headers          map[string][]string
	explicitClient   bool
	mu               sync.Mutex
	renderMu         sync.Mutex
}

// New creates a mailer. Nothing is resolved until the first Send or
// Transport call, so configuration errors surface there.
func New(cfg Config, opts ...Option) *Mailer {
	m := &Mailer{
		cfg:    cfg,
		logger: logger.NewNope(),
		viewFS: os.DirFS("."),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send adds the default headers to msg, renders it when it is a templated
// message that has not been rendered yet, and delivers it.
// When env is nil the envelope is derived from the message headers.
// Render and delivery errors are returned as is.
func (m *Mailer) Send(ctx context.Context, msg message.Message, env *transport.Envelope) error {
	if msg == nil || msg.MIME() == nil {
		return transport.ErrNilMessage
	}

	client, err := m.Client()
	if err != nil {
		return err
	}

	if err := m.applyDefaultHeaders(msg.MIME()); err != nil {
		return err
	}

	if tm, ok := msg.(message.Templated); ok {
		if err := m.Render(tm); err != nil {
			return err
		}
	}

	_, err = client.Send(ctx, msg, env)
	return err
}

// Transport returns the transport, resolving it on first call.
//
// Resolution order: the instance given to WithTransport, the
// WithTransportFactory function, the constructor registered under
// Config.Transport, then Config.DSN. The DSN "array" (or any DSN with the
// "array" scheme) yields a recorder.Transport. Failed resolutions are not
// cached.
func (m *Mailer) Transport() (transport.Transport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.resolveTransport()
}

// SetTransport replaces the transport. A client built from the previous
// transport is dropped; a client set with SetClient is kept.
func (m *Mailer) SetTransport(t transport.Transport) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.transport = t
	if !m.explicitClient {
		m.client = nil
	}
}

// Client returns the mail client, building it around Transport() on first call.
func (m *Mailer) Client() (*transport.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return m.client, nil
	}

	t, err := m.resolveTransport()
	if err != nil {
		return nil, err
	}

	opts := make([]transport.ClientOption, 0, len(m.observers)+1)
	opts = append(opts, transport.WithLogger(m.logger))
	for _, obs := range m.observers {
		opts = append(opts, transport.WithObserver(obs))
	}
	m.client = transport.NewClient(t, opts...)

	return m.client, nil
}

// SetClient replaces the mail client. A nil client makes the mailer build
// one from its transport settings again.
func (m *Mailer) SetClient(c *transport.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.client = c
	m.explicitClient = c != nil
}

// View returns the view used to render templated messages, creating it from
// Config.View on first call.
func (m *Mailer) View() *view.View {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.view == nil {
		m.view = view.New(m.viewFS, m.cfg.View, m.viewOpts...)
	}
	return m.view
}

// SetView replaces the view.
func (m *Mailer) SetView(v *view.View) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.view = v
}

// resolveTransport must be called with m.mu held.
func (m *Mailer) resolveTransport() (transport.Transport, error) {
	if m.transport != nil {
		return m.transport, nil
	}

	var (
		t   transport.Transport
		err error
	)
	switch {
	case m.transportFactory != nil:
		t, err = m.transportFactory()
		if err == nil && t == nil {
			err = ErrNilTransport
		}
	case m.cfg.Transport != "":
		t, err = transport.Lookup(m.cfg.Transport)
	case m.cfg.DSN != "":
		t, err = m.transportFromDSN(m.cfg.DSN)
	default:
		err = ErrTransportNotConfigured
	}
	if err != nil {
		return nil, err
	}

	m.logger.Debug("mail transport resolved", slog.String("transport", t.String()))
	m.transport = t

	return t, nil
}

func (m *Mailer) transportFromDSN(dsn string) (transport.Transport, error) {
	if isRecorderDSN(dsn) {
		return recorder.New(), nil
	}

	opts := make([]factory.Option, 0, len(m.factoryOpts)+1)
	opts = append(opts, factory.WithLogger(m.logger))
	opts = append(opts, m.factoryOpts...)

	return factory.FromDSN(dsn, opts...)
}

func isRecorderDSN(dsn string) bool {
	return dsn == recorder.Scheme || strings.HasPrefix(dsn, recorder.Scheme+"://")
}
