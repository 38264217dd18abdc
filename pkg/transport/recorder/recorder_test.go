package recorder_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/courier/pkg/message"
	"github.com/dmitrymomot/courier/pkg/transport"
	"github.com/dmitrymomot/courier/pkg/transport/recorder"
)

func newEmail(t *testing.T, subject string) *message.Email {
	t.Helper()

	email := message.New()
	require.NoError(t, email.From("noreply@example.com"))
	require.NoError(t, email.To("test@example.com"))
	email.SetSubject(subject)
	email.SetTextBody("Test body")
	return email
}

func send(t *testing.T, rec *recorder.Transport, msgs ...message.Message) {
	t.Helper()

	client := transport.NewClient(rec)
	for _, msg := range msgs {
		_, err := client.Send(context.Background(), msg, nil)
		require.NoError(t, err)
	}
}

func bySubject(subject string) func(message.Message) bool {
	return func(msg message.Message) bool {
		return message.Subject(msg.MIME()) == subject
	}
}

func TestTransport_Send(t *testing.T) {
	t.Parallel()

	rec := recorder.New()
	email := newEmail(t, "Test subject")
	send(t, rec, email)

	require.Len(t, rec.Messages(), 1)
	require.Same(t, email, rec.Last())

	from := rec.Last().MIME().GetFrom()
	require.Len(t, from, 1)
	require.Equal(t, "noreply@example.com", from[0].Address)

	require.Len(t, rec.Filter(bySubject("Test subject")), 1)
	require.Empty(t, rec.Filter(bySubject("Fake")))
}

func TestTransport_Order(t *testing.T) {
	t.Parallel()

	rec := recorder.New()
	first := newEmail(t, "first")
	second := newEmail(t, "second")
	third := newEmail(t, "first")
	send(t, rec, first, second, third, first)

	msgs := rec.Messages()
	require.Len(t, msgs, 4)
	require.Same(t, first, msgs[0])
	require.Same(t, second, msgs[1])
	require.Same(t, third, msgs[2])
	require.Same(t, first, msgs[3], "duplicates are kept")
	require.Same(t, first, rec.Last())
}

func TestTransport_Filter(t *testing.T) {
	t.Parallel()

	rec := recorder.New()
	a := newEmail(t, "alpha")
	b := newEmail(t, "beta")
	c := newEmail(t, "alpha")
	send(t, rec, a, b, c)

	tests := []struct {
		name string
		keep func(message.Message) bool
		want []message.Message
	}{
		{name: "matching subsequence", keep: bySubject("alpha"), want: []message.Message{a, c}},
		{name: "no match", keep: bySubject("gamma"), want: nil},
		{name: "always true", keep: func(message.Message) bool { return true }, want: []message.Message{a, b, c}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rec.Filter(tt.keep)
			require.Equal(t, len(tt.want), len(got))
			for i := range tt.want {
				require.Same(t, tt.want[i], got[i])
			}
		})
	}

	require.Equal(t, 3, rec.Len(), "filtering must not mutate the log")
}

func TestTransport_LastDoesNotMutate(t *testing.T) {
	t.Parallel()

	rec := recorder.New()
	send(t, rec, newEmail(t, "one"), newEmail(t, "two"))

	require.Equal(t, "two", message.Subject(rec.Last().MIME()))
	require.Equal(t, "two", message.Subject(rec.Last().MIME()))
	require.Equal(t, 2, rec.Len())
}

func TestTransport_Clear(t *testing.T) {
	t.Parallel()

	rec := recorder.New()
	require.Nil(t, rec.Last())

	send(t, rec, newEmail(t, "one"))
	rec.Clear()

	require.Empty(t, rec.Messages())
	require.Nil(t, rec.Last())
}

func TestTransport_MessagesIsACopy(t *testing.T) {
	t.Parallel()

	rec := recorder.New()
	send(t, rec, newEmail(t, "one"))

	msgs := rec.Messages()
	msgs[0] = nil
	require.NotNil(t, rec.Last())
}

func TestTransport_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "array://", recorder.New().String())
}

func TestTransport_ConcurrentSend(t *testing.T) {
	t.Parallel()

	rec := recorder.New()
	client := transport.NewClient(rec)

	emails := make([]*message.Email, 20)
	for i := range emails {
		emails[i] = newEmail(t, "concurrent")
	}

	var wg sync.WaitGroup
	for _, email := range emails {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = client.Send(context.Background(), email, nil)
		}()
	}
	wg.Wait()

	require.Equal(t, 20, rec.Len())
}
