package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"net/smtp"
	"strings"

	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/utils/format"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Enabled reports whether enough settings are present to send mail.
func (c Config) Enabled() bool {
	return c.Host != "" && c.Port != "" && c.From != ""
}

type Mailer struct {
	config Config
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		config: cfg,
		send:   smtp.SendMail,
	}
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {
	headers := []struct{ key, value string }{
		{"From", m.config.From},
		{"To", to},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=\"UTF-8\""},
	}

	var msg strings.Builder
	for _, h := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", h.key, h.value)
	}
	msg.WriteString("\r\n" + htmlBody)

	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	err := m.send(addr, auth, m.config.From, []string{to}, []byte(msg.String()))
	if err != nil {
		log.Printf("Gagal mengirim email HTML ke %s: %v", to, err)
		return fmt.Errorf("gagal mengirim email HTML: %w", err)
	}

	return nil
}

// OrderNotifier is told about every new public order.
type OrderNotifier interface {
	NotifyNewOrder(ctx context.Context, order *models.Order) error
}

type EmailOrderNotifier struct {
	mailer *Mailer
	to     string
}

func NewEmailOrderNotifier(mailer *Mailer, to string) *EmailOrderNotifier {
	return &EmailOrderNotifier{mailer: mailer, to: to}
}

func (n *EmailOrderNotifier) NotifyNewOrder(ctx context.Context, order *models.Order) error {
	subject := fmt.Sprintf("Pesanan baru dari %s", order.CustomerName)
	return n.mailer.SendHTMLEmail(n.to, subject, BuildNewOrderEmailBody(order))
}

func BuildNewOrderEmailBody(order *models.Order) string {
	var rows strings.Builder
	for _, item := range order.OrderItems {
		name := item.ProductID
		if item.Product != nil {
			name = item.Product.Name
		}
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(name),
			item.Quantity,
			format.FormatRupiah(item.PriceAtOrder),
			format.FormatRupiah(item.Revenue()),
		)
	}

	notes := "-"
	if order.Notes != nil && *order.Notes != "" {
		notes = html.EscapeString(*order.Notes)
	}

	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html>
        <head>
            <meta charset="utf-8">
            <title>Pesanan Baru</title>
            <style>
                body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
                .container { max-width: 600px; margin: 20px auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px; }
                table { width: 100%%; border-collapse: collapse; }
                td, th { border-bottom: 1px solid #eee; padding: 6px; text-align: left; }
            </style>
        </head>
        <body>
            <div class="container">
                <h2>Pesanan baru masuk</h2>
                <p><strong>Nama:</strong> %s</p>
                <p><strong>Telepon:</strong> %s</p>
                <p><strong>Catatan:</strong> %s</p>
                <table>
                    <tr><th>Produk</th><th>Jumlah</th><th>Harga</th><th>Subtotal</th></tr>
                    %s
                </table>
                <p><strong>Total:</strong> %s</p>
                <p>Silakan hubungi orang tua/wali untuk konfirmasi.</p>
            </div>
        </body>
        </html>
    `,
		html.EscapeString(order.CustomerName),
		html.EscapeString(order.CustomerPhone),
		notes,
		rows.String(),
		format.FormatRupiah(order.TotalAmount()),
	)
}
