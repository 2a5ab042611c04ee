package services

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func fakeMailer(sent *[]sentMail, err error) *Mailer {
	m := NewMailer(Config{Host: "smtp.test", Port: "587", From: "noreply@tk.test"})
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		*sent = append(*sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
		return err
	}
	return m
}

func sampleOrder() *models.Order {
	notes := "Ukuran <M>"
	return &models.Order{
		ID:            "order-1",
		CustomerName:  "Budi & Ani",
		CustomerPhone: "081234567890",
		Notes:         &notes,
		OrderItems: []models.OrderItem{
			{ProductID: "p1", Product: &models.Product{Name: "Seragam"}, Quantity: 2, PriceAtOrder: 150000},
			{ProductID: "p2", Quantity: 1, PriceAtOrder: 80000},
		},
	}
}

func TestConfigEnabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.False(t, Config{Host: "smtp.test", Port: "587"}.Enabled())
	assert.True(t, Config{Host: "smtp.test", Port: "587", From: "a@b.c"}.Enabled())
}

func TestBuildNewOrderEmailBody(t *testing.T) {
	body := BuildNewOrderEmailBody(sampleOrder())

	assert.Contains(t, body, "Budi &amp; Ani")
	assert.Contains(t, body, "Ukuran &lt;M&gt;")
	assert.Contains(t, body, "<td>Seragam</td><td>2</td><td>Rp 150.000</td><td>Rp 300.000</td>")
	// Items without a loaded product fall back to the id.
	assert.Contains(t, body, "<td>p2</td>")
	assert.Contains(t, body, "Rp 380.000")
}

func TestEmailOrderNotifier(t *testing.T) {
	var sent []sentMail
	notifier := NewEmailOrderNotifier(fakeMailer(&sent, nil), "admin@tk.test")

	require.NoError(t, notifier.NotifyNewOrder(context.Background(), sampleOrder()))
	require.Len(t, sent, 1)

	assert.Equal(t, "smtp.test:587", sent[0].addr)
	assert.Equal(t, "noreply@tk.test", sent[0].from)
	assert.Equal(t, []string{"admin@tk.test"}, sent[0].to)
	assert.Contains(t, sent[0].msg, "Subject: Pesanan baru dari Budi & Ani\r\n")
	assert.Contains(t, sent[0].msg, "Content-Type: text/html")
}

func TestMailerSendError(t *testing.T) {
	var sent []sentMail
	m := fakeMailer(&sent, errors.New("connection refused"))

	err := m.SendHTMLEmail("admin@tk.test", "Tes", "<p>x</p>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
