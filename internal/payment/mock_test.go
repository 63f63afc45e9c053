package payment_test

import (
	"math/rand"
	"strings"
	"testing"

	"walkup/internal/models"
	"walkup/internal/payment"

	"github.com/stretchr/testify/assert"
)

func TestMockProviderAuthorize(t *testing.T) {
	provider := payment.NewMockProvider(payment.MockConfig{
		ClientBaseURL: "http://localhost:5173",
		SuccessRate:   1,
	})

	intent, err := provider.Authorize(&models.Order{TotalAmount: 42})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(intent.PaymentID, "mock_"))
	assert.True(t, strings.HasPrefix(intent.PayerID, "payer_"))
	assert.Contains(t, intent.ApprovalURL, "http://localhost:5173/shop/mock-payment-return?paymentId="+intent.PaymentID)
	assert.Contains(t, intent.ApprovalURL, "PayerID="+intent.PayerID)
}

func TestMockProviderAuthorizeUniquePaymentIDs(t *testing.T) {
	provider := payment.NewMockProvider(payment.MockConfig{SuccessRate: 1})

	first, err := provider.Authorize(&models.Order{})
	assert.NoError(t, err)
	second, err := provider.Authorize(&models.Order{})
	assert.NoError(t, err)
	assert.NotEqual(t, first.PaymentID, second.PaymentID)
}

func TestMockProviderCaptureAlwaysSucceeds(t *testing.T) {
	provider := payment.NewMockProvider(payment.MockConfig{SuccessRate: 1})

	for i := 0; i < 20; i++ {
		assert.NoError(t, provider.Capture("mock_123"))
	}
}

func TestMockProviderCaptureAlwaysDeclines(t *testing.T) {
	provider := payment.NewMockProvider(payment.MockConfig{SuccessRate: 0})

	err := provider.Capture("mock_123")
	assert.ErrorIs(t, err, payment.ErrDeclined)
}

func TestMockProviderCaptureRespectsSeededRand(t *testing.T) {
	// Two providers with the same seed must make the same decisions.
	a := payment.NewMockProvider(payment.MockConfig{SuccessRate: 0.5, Rand: rand.New(rand.NewSource(7))})
	b := payment.NewMockProvider(payment.MockConfig{SuccessRate: 0.5, Rand: rand.New(rand.NewSource(7))})

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Capture("x") == nil, b.Capture("x") == nil)
	}
}
