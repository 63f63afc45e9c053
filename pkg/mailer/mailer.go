// Package mailer sends transactional email through SendGrid. Every send is
// best-effort: callers log failures and move on, mail must never block a
// registration or an order.
package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Config holds the SendGrid credentials and sender identity.
type Config struct {
	APIKey        string
	Sender        string
	ClientBaseURL string
}

// Mailer wraps a SendGrid client.
type Mailer struct {
	client        *sendgrid.Client
	sender        string
	clientBaseURL string
}

// New creates a Mailer. Returns an error if no API key or sender is
// configured, so main can decide to run without email.
func New(cfg Config) (*Mailer, error) {
	if cfg.APIKey == "" || cfg.Sender == "" {
		return nil, fmt.Errorf("sendgrid API key and sender address are required")
	}
	return &Mailer{
		client:        sendgrid.NewSendClient(cfg.APIKey),
		sender:        cfg.Sender,
		clientBaseURL: cfg.ClientBaseURL,
	}, nil
}

func (m *Mailer) send(toName, toEmail, subject, html string) error {
	from := mail.NewEmail("WalkUp", m.sender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, html, html)

	resp, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected email to %s: status %d", toEmail, resp.StatusCode)
	}
	return nil
}

// SendWelcomeEmail greets a newly registered user.
func (m *Mailer) SendWelcomeEmail(email, username string) error {
	html := fmt.Sprintf(
		"<strong>Welcome to WalkUp, %s!</strong><br><br>Your account has been created. Happy shopping.",
		username,
	)
	return m.send(username, email, "Welcome to WalkUp E-commerce", html)
}

// SendPasswordResetEmail delivers a reset link embedding the one-time token.
func (m *Mailer) SendPasswordResetEmail(email, username, token string) error {
	link := fmt.Sprintf("%s/auth/reset-password?token=%s", m.clientBaseURL, token)
	html := fmt.Sprintf(
		"<strong>Hi %s,</strong><br><br>We received a request to reset your password. "+
			"<a href=\"%s\">Reset it here</a>. The link expires in 1 hour.<br><br>"+
			"If you did not request this, you can ignore this email.",
		username, link,
	)
	return m.send(username, email, "Reset your WalkUp password", html)
}

// SendOrderConfirmationEmail confirms a paid order.
func (m *Mailer) SendOrderConfirmationEmail(email, username, orderID string, totalAmount float64) error {
	html := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thank you for your purchase! Your order (ID: %s) "+
			"has been confirmed.<br><br>Total Amount: <strong>$%.2f</strong><br><br>"+
			"Thank you for shopping with us!",
		username, orderID, totalAmount,
	)
	return m.send(username, email, "Order Confirmation", html)
}
