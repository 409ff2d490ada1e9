package mailer_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newpack/pkg/mailer"
)

func TestBuild(t *testing.T) {
	msg := mailer.Build(mailer.Message{
		From:    "sales@example.com",
		To:      []string{"orders@example.com"},
		Subject: "Pedido 7",
		HTML:    "<h1>Detalhes do Pedido</h1>",
	})

	assert.Equal(t, []string{"sales@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"orders@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Pedido 7"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Content-Type: text/html")
}

func TestClient_SendWithoutRecipients(t *testing.T) {
	client := mailer.New(mailer.Config{Host: "localhost", Port: 2525})

	err := client.Send(context.Background(), mailer.Message{Subject: "empty"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no recipients")
}

func TestClient_SendCancelled(t *testing.T) {
	client := mailer.New(mailer.Config{Host: "localhost", Port: 2525})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Send(ctx, mailer.Message{To: []string{"a@example.com"}})
	assert.ErrorIs(t, err, context.Canceled)
}
