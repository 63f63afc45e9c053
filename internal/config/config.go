package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting the application needs. It is built once
// at process start and handed to the components that use it, so no package
// reads the environment on its own.
type Config struct {
	AppPort     string
	DatabaseURL string

	JWTSecret string
	JWTExpiry time.Duration

	RabbitMQURL string

	SendGridAPIKey string
	EmailSender    string

	ClientBaseURL string

	PayPalClientID     string
	PayPalClientSecret string
	PayPalBaseURL      string

	MockPaymentSuccessRate float64
}

// Load reads configuration from environment variables via Viper, applying
// defaults for everything that is safe to default. Secrets (JWT_SECRET,
// payment and mail credentials) have no fallback values.
func Load() Config {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("JWT_EXPIRES_HOURS", 168) // 7 days
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("CLIENT_BASE_URL", "http://localhost:5173")
	v.SetDefault("PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com")
	v.SetDefault("MOCK_PAYMENT_SUCCESS_RATE", 0.9)
	v.AutomaticEnv()

	return Config{
		AppPort:     v.GetString("APP_PORT"),
		DatabaseURL: v.GetString("DATABASE_URL"),

		JWTSecret: v.GetString("JWT_SECRET"),
		JWTExpiry: time.Duration(v.GetInt("JWT_EXPIRES_HOURS")) * time.Hour,

		RabbitMQURL: v.GetString("RABBITMQ_URL"),

		SendGridAPIKey: v.GetString("SENDGRID_API_KEY"),
		EmailSender:    v.GetString("EMAIL_SENDER"),

		ClientBaseURL: v.GetString("CLIENT_BASE_URL"),

		PayPalClientID:     v.GetString("PAYPAL_CLIENT_ID"),
		PayPalClientSecret: v.GetString("PAYPAL_CLIENT_SECRET"),
		PayPalBaseURL:      v.GetString("PAYPAL_BASE_URL"),

		MockPaymentSuccessRate: v.GetFloat64("MOCK_PAYMENT_SUCCESS_RATE"),
	}
}
