package services

// Mailer sends transactional email. Implementations must be safe for
// concurrent use; callers treat a send failure as log-and-continue.
type Mailer interface {
	SendWelcomeEmail(email, username string) error
	SendPasswordResetEmail(email, username, token string) error
	SendOrderConfirmationEmail(email, username, orderID string, totalAmount float64) error
}

// EventPublisher emits order lifecycle events. A nil publisher disables
// publishing.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}
