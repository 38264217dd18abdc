package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	t.Run("requires recipient", func(t *testing.T) {
		t.Parallel()

		_, err := parseFlags([]string{"-subject", "Hi"})
		require.ErrorIs(t, err, errNoRecipient)
	})

	t.Run("all flags", func(t *testing.T) {
		t.Parallel()

		o, err := parseFlags([]string{
			"-to", "a@example.com, b@example.com",
			"-subject", "Welcome",
			"-html-template", "welcome",
			"-text-template", "welcome-text",
			"-data", `{"name":"John"}`,
			"-renderer", "markdown",
			"-preview", ":8025",
		})
		require.NoError(t, err)
		require.Equal(t, "a@example.com, b@example.com", o.to)
		require.Equal(t, "Welcome", o.subject)
		require.Equal(t, "welcome", o.htmlTemplate)
		require.Equal(t, "welcome-text", o.textTemplate)
		require.Equal(t, "markdown", o.renderer)
		require.Equal(t, ":8025", o.preview)
	})
}

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	t.Run("templated", func(t *testing.T) {
		t.Parallel()

		msg, err := buildMessage(options{
			to:           "a@example.com, b@example.com",
			from:         "App <noreply@example.com>",
			subject:      "Welcome",
			htmlTemplate: "welcome",
			data:         `{"name":"John"}`,
			locale:       "uk_ua",
		})
		require.NoError(t, err)
		require.Len(t, msg.GetTo(), 2)
		require.Equal(t, "noreply@example.com", msg.GetFrom()[0].Address)
		require.Equal(t, "Welcome", msg.GetSubject())
		require.Equal(t, "welcome", msg.HTMLTemplate())
		require.Equal(t, "uk_ua", msg.Locale())
		require.Equal(t, map[string]any{"name": "John"}, msg.Context())
		require.Empty(t, msg.TextBody())
	})

	t.Run("plain text", func(t *testing.T) {
		t.Parallel()

		msg, err := buildMessage(options{to: "a@example.com", text: "hello"})
		require.NoError(t, err)
		require.Equal(t, "hello", msg.TextBody())
	})

	t.Run("invalid data", func(t *testing.T) {
		t.Parallel()

		_, err := buildMessage(options{to: "a@example.com", data: "{"})
		require.Error(t, err)
	})
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"a@example.com", "b@example.com"}, splitList(" a@example.com,,b@example.com "))
	require.Empty(t, splitList(""))
}
