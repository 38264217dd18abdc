package smtp

import (
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/dmitrymomot/courier/pkg/transport"
)

// Factory creates SMTP transports for the smtp and smtps schemes.
type Factory struct {
	opts []Option
}

// NewFactory creates a factory; opts are applied to every created transport.
func NewFactory(opts ...Option) *Factory {
	return &Factory{opts: opts}
}

// Supports implements transport.Factory.
func (f *Factory) Supports(dsn transport.Dsn) bool {
	return dsn.Scheme == "smtp" || dsn.Scheme == "smtps"
}

// Create implements transport.Factory.
func (f *Factory) Create(dsn transport.Dsn, fo transport.FactoryOptions) (transport.Transport, error) {
	cfg, err := ConfigFromDSN(dsn)
	if err != nil {
		return nil, err
	}
	opts := append([]Option{WithLogger(fo.Logger)}, f.opts...)
	return New(cfg, opts...), nil
}

// ConfigFromDSN builds a Config from a smtp:// or smtps:// DSN.
// Port 465 implies implicit TLS. Auth defaults to PLAIN when a user is set.
func ConfigFromDSN(dsn transport.Dsn) (Config, error) {
	cfg := Config{
		Host:        dsn.Host,
		Username:    dsn.User,
		Password:    dsn.Password,
		Port:        dsn.Port,
		HELO:        dsn.Option("helo"),
		ImplicitTLS: dsn.Scheme == "smtps" || dsn.Port == 465,
		SkipVerify:  !dsn.BoolOption("verify_peer", true),
		TLSPolicy:   mail.TLSOpportunistic,
	}
	if dsn.IsDefaultHost() {
		cfg.Host = "localhost"
	}

	timeout, err := dsn.DurationOption("timeout")
	if err != nil {
		return Config{}, err
	}
	cfg.Timeout = timeout

	switch strings.ToLower(dsn.Option("tls")) {
	case "", "opportunistic":
	case "mandatory":
		cfg.TLSPolicy = mail.TLSMandatory
	case "none":
		cfg.TLSPolicy = mail.NoTLS
	default:
		return Config{}, fmt.Errorf("%w: tls=%s", ErrInvalidOption, dsn.Option("tls"))
	}

	switch strings.ToLower(dsn.Option("auth")) {
	case "":
		if cfg.Username != "" {
			cfg.Auth = mail.SMTPAuthPlain
		}
	case "plain":
		cfg.Auth = mail.SMTPAuthPlain
	case "login":
		cfg.Auth = mail.SMTPAuthLogin
	case "cram-md5":
		cfg.Auth = mail.SMTPAuthCramMD5
	case "xoauth2":
		cfg.Auth = mail.SMTPAuthXOAUTH2
	default:
		return Config{}, fmt.Errorf("%w: auth=%s", ErrInvalidOption, dsn.Option("auth"))
	}

	return cfg, nil
}
