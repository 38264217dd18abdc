package mailer

import (
	"fmt"
	"maps"
	netmail "net/mail"
	"slices"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/dmitrymomot/courier/pkg/message"
)

// defaultHeaders merges Config.DefaultHeaders with the values given through
// WithDefaultHeader, keyed by canonical header name. Option values replace
// a config value of the same header.
func (m *Mailer) defaultHeaders() map[string][]string {
	out := make(map[string][]string, len(m.cfg.DefaultHeaders)+len(m.headers))
	for name, value := range m.cfg.DefaultHeaders {
		out[string(message.HeaderName(name))] = []string{value}
	}
	for name, values := range m.headers {
		out[string(message.HeaderName(name))] = values
	}
	return out
}

// applyDefaultHeaders adds default headers that msg does not carry yet.
// From, To, Cc, Bcc and Reply-To values are parsed as address lists; every
// value of a list header becomes part of the same header.
func (m *Mailer) applyDefaultHeaders(msg *mail.Msg) error {
	defaults := m.defaultHeaders()
	for _, name := range slices.Sorted(maps.Keys(defaults)) {
		values := defaults[name]
		if len(values) == 0 {
			continue
		}

		if h, ok := message.AddressHeader(name); ok {
			if len(msg.GetAddrHeader(h)) > 0 {
				continue
			}
			addrs, err := parseAddressLists(values)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInvalidHeader, name, err)
			}
			if err := msg.SetAddrHeader(h, addrs...); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInvalidHeader, name, err)
			}
			continue
		}

		h := mail.Header(name)
		if len(msg.GetGenHeader(h)) > 0 {
			continue
		}

		if h == mail.HeaderReplyTo {
			addrs, err := parseAddressLists(values)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInvalidHeader, name, err)
			}
			values = []string{strings.Join(addrs, ", ")}
		}
		msg.SetGenHeader(h, values...)
	}

	return nil
}

func parseAddressLists(values []string) ([]string, error) {
	var out []string
	for _, value := range values {
		list, err := netmail.ParseAddressList(value)
		if err != nil {
			return nil, err
		}
		for _, a := range list {
			out = append(out, a.String())
		}
	}
	return out, nil
}
