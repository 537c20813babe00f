// Package notifier sends transactional mail for the order workflow. Sending
// is always best-effort: the checkout path fires it on a goroutine and only
// logs failures.
package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/KaramYacoub/shopsphere-api/config"
	"github.com/KaramYacoub/shopsphere-api/models"
	"go.uber.org/zap"
)

type Notifier interface {
	SendOrderConfirmation(ctx context.Context, user *models.User, order *models.Order) error
}

type smtpNotifier struct {
	from     string
	password string
	host     string
	port     string
	logger   *zap.Logger
}

func NewSMTPNotifier(cfg config.SMTPConfig, logger *zap.Logger) Notifier {
	return &smtpNotifier{
		from:     cfg.User,
		password: cfg.Password,
		host:     cfg.Host,
		port:     cfg.Port,
		logger:   logger,
	}
}

func (n *smtpNotifier) SendOrderConfirmation(ctx context.Context, user *models.User, order *models.Order) error {
	subject := fmt.Sprintf("Subject: Your order %s is confirmed\n", order.OrderNumber)
	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	body := BuildOrderConfirmationBody(user, order)

	msg := []byte(subject + mime + body)
	addr := fmt.Sprintf("%s:%s", n.host, n.port)
	auth := smtp.PlainAuth("", n.from, n.password, n.host)

	n.logger.Info("sending order confirmation email",
		zap.String("to", user.Email),
		zap.String("order_number", order.OrderNumber),
	)

	if err := smtp.SendMail(addr, auth, n.from, []string{user.Email}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// BuildOrderConfirmationBody renders the HTML confirmation from the frozen
// order snapshot.
func BuildOrderConfirmationBody(user *models.User, order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h1>Thanks for your order, %s!</h1>\n", user.Name)
	fmt.Fprintf(&b, "<p>Order <strong>%s</strong> has been confirmed.</p>\n", order.OrderNumber)

	b.WriteString("<ul>\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "<li>%s × %d — $%.2f</li>\n", item.ProductName, item.Quantity, item.UnitPrice*float64(item.Quantity))
	}
	b.WriteString("</ul>\n")

	fmt.Fprintf(&b, "<p>Subtotal: $%.2f<br>Tax: $%.2f<br>Shipping: $%.2f<br><strong>Total: $%.2f</strong></p>\n",
		order.Subtotal, order.Tax, order.ShippingCost, order.Total)
	fmt.Fprintf(&b, "<p>Shipping to: %s, %s, %s %s, %s</p>\n",
		order.ShippingAddress.Street, order.ShippingAddress.City,
		order.ShippingAddress.State, order.ShippingAddress.PostalCode,
		order.ShippingAddress.Country)
	fmt.Fprintf(&b, "<p>Estimated delivery: %s</p>\n", order.EstimatedDelivery.Format("Monday, January 2 2006"))

	return b.String()
}
