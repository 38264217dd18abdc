package sendmail_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/courier/pkg/message"
	"github.com/dmitrymomot/courier/pkg/transport"
	"github.com/dmitrymomot/courier/pkg/transport/sendmail"
)

// fakeSendmail writes a script that stores its arguments and stdin in dir.
func fakeSendmail(t *testing.T) (cmd, dir string) {
	t.Helper()

	dir = t.TempDir()
	cmd = filepath.Join(dir, "sendmail")
	script := "#!/bin/sh\n" +
		"echo \"$@\" > " + filepath.Join(dir, "args") + "\n" +
		"cat > " + filepath.Join(dir, "stdin") + "\n"
	require.NoError(t, os.WriteFile(cmd, []byte(script), 0o755))
	return cmd, dir
}

func sentMessage(t *testing.T) *transport.SentMessage {
	t.Helper()

	email := message.New()
	require.NoError(t, email.From("noreply@example.com"))
	require.NoError(t, email.To("alice@example.com"))
	email.SetSubject("Hello")
	email.SetTextBody("Hi Alice")

	env, err := transport.EnvelopeFromMessage(email)
	require.NoError(t, err)
	return &transport.SentMessage{Original: email, Envelope: env}
}

func TestTransport_Send(t *testing.T) {
	t.Parallel()

	cmd, dir := fakeSendmail(t)
	tr := sendmail.New(cmd)

	sent := sentMessage(t)
	sent.Envelope.Sender = "bounce@example.com"
	require.NoError(t, tr.Send(context.Background(), sent))

	args, err := os.ReadFile(filepath.Join(dir, "args"))
	require.NoError(t, err)
	require.Equal(t, "-oi -t -f bounce@example.com", strings.TrimSpace(string(args)))

	body, err := os.ReadFile(filepath.Join(dir, "stdin"))
	require.NoError(t, err)
	require.Contains(t, string(body), "Subject: Hello")
	require.Contains(t, string(body), "Hi Alice")
}

func TestTransport_Send_RejectsEnvelopeRecipientOverride(t *testing.T) {
	t.Parallel()

	cmd, _ := fakeSendmail(t)
	tr := sendmail.New(cmd)

	sent := sentMessage(t)
	sent.Envelope.Recipients = []string{"bob@example.com"}
	require.ErrorIs(t, tr.Send(context.Background(), sent), sendmail.ErrEnvelopeRecipients)
}

func TestTransport_Send_CommandFailure(t *testing.T) {
	t.Parallel()

	tr := sendmail.New(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, tr.Send(context.Background(), sentMessage(t)))
}

func TestFactory(t *testing.T) {
	t.Parallel()

	f := sendmail.Factory{}
	require.True(t, f.Supports(transport.MustParseDSN("sendmail://default")))
	require.False(t, f.Supports(transport.MustParseDSN("smtp://default")))

	tr, err := f.Create(transport.MustParseDSN("sendmail://default"), transport.FactoryOptions{})
	require.NoError(t, err)
	require.Equal(t, "sendmail://"+sendmail.DefaultCommand, tr.String())

	tr, err = f.Create(transport.MustParseDSN("sendmail://default?command=/usr/bin/msmtp"), transport.FactoryOptions{})
	require.NoError(t, err)
	require.Equal(t, "sendmail:///usr/bin/msmtp", tr.String())
}
