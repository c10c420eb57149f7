package email

import (
	"context"
	"net/smtp"
	"testing"

	"github.com/smallbiznis/shiftcount/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPSendBuildsMessage(t *testing.T) {
	p := NewSMTP(Config{Host: "mail.local", Port: 2525, From: "bar@local"})

	var gotAddr string
	var gotTo []string
	var gotMsg string
	var gotAuth smtp.Auth
	p.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotAuth = a
		gotTo = to
		gotMsg = string(msg)
		return nil
	}

	err := p.Send(context.Background(), []string{"owner@local"}, "End of Night Inventory Report", "<p>hi</p>")
	require.NoError(t, err)

	assert.Equal(t, "mail.local:2525", gotAddr)
	assert.Nil(t, gotAuth)
	assert.Equal(t, []string{"owner@local"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: End of Night Inventory Report\r\n")
	assert.Contains(t, gotMsg, "From: bar@local\r\n")
	assert.Contains(t, gotMsg, "<p>hi</p>")
}

func TestSMTPSendRequiresRecipients(t *testing.T) {
	p := NewSMTP(Config{Host: "mail.local", Port: 25})
	err := p.Send(context.Background(), nil, "s", "b")
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestNewFromConfigFallsBackToNoOp(t *testing.T) {
	p := NewFromConfig(config.Config{})
	_, ok := p.(*NoOpProvider)
	assert.True(t, ok)

	var cfg config.Config
	cfg.Email.SMTPHost = "mail.local"
	cfg.Email.SMTPPort = 25
	_, ok = NewFromConfig(cfg).(*SMTPProvider)
	assert.True(t, ok)
}
