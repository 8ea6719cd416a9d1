package relay

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, m Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

func bufLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func TestDeliver_Delivered(t *testing.T) {
	m := &fakeMailer{}
	log, _ := bufLogger()
	r := New(m, "vendor@example.com", log)

	out, err := r.Deliver(context.Background(), "NEW BBQ ORDER – 2026-10-19 5 PM", "ticket body")
	require.NoError(t, err)
	assert.Equal(t, OutcomeDelivered, out)
	require.Len(t, m.sent, 1)
	assert.Equal(t, Message{To: "vendor@example.com", Subject: "NEW BBQ ORDER – 2026-10-19 5 PM", Body: "ticket body"}, m.sent[0])
}

func TestDeliver_LoggedWhenUnconfigured(t *testing.T) {
	log, buf := bufLogger()
	r := New(nil, "vendor@example.com", log)

	out, err := r.Deliver(context.Background(), "subj", "ticket body")
	require.NoError(t, err)
	assert.Equal(t, OutcomeLogged, out)
	assert.NotEqual(t, OutcomeDelivered, out)
	assert.Contains(t, buf.String(), "ticket body")
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, out.Detail(), "Preview mode")
}

func TestDeliver_TransportFailure(t *testing.T) {
	boom := errors.New("421 service not available")
	m := &fakeMailer{err: boom}
	log, _ := bufLogger()
	r := New(m, "vendor@example.com", log)

	out, err := r.Deliver(context.Background(), "subj", "ticket")
	assert.Empty(t, out)
	var de *DeliveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "vendor@example.com", de.To)
	assert.ErrorIs(t, err, boom)
}

func TestNewSMTPMailer_RequiresCredentials(t *testing.T) {
	_, err := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 587, User: "u"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	m, err := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 587, User: "u", Pass: "p"})
	require.NoError(t, err)
	assert.Equal(t, "orders@example.com", m.cfg.From)
}
