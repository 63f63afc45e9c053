package payment

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"walkup/internal/models"

	"github.com/google/uuid"
)

// MockConfig configures the simulated provider. Zero delays and a nil Rand
// are valid; tests use a SuccessRate of 0 or 1 to force an outcome.
type MockConfig struct {
	ClientBaseURL string
	SuccessRate   float64
	CreateDelay   time.Duration
	CaptureDelay  time.Duration
	Rand          *rand.Rand
}

// MockProvider simulates a payment gateway in-process: it fabricates payment
// identifiers and approval URLs, waits a configurable delay, and approves
// captures with a configurable probability.
type MockProvider struct {
	clientBaseURL string
	successRate   float64
	createDelay   time.Duration
	captureDelay  time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewMockProvider creates a simulator from cfg.
func NewMockProvider(cfg MockConfig) *MockProvider {
	rnd := cfg.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &MockProvider{
		clientBaseURL: cfg.ClientBaseURL,
		successRate:   cfg.SuccessRate,
		createDelay:   cfg.CreateDelay,
		captureDelay:  cfg.CaptureDelay,
		rnd:           rnd,
	}
}

func shortToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
}

// Authorize fabricates a mock payment id, payer id and approval URL pointing
// at the client's mock-payment return page.
func (p *MockProvider) Authorize(_ *models.Order) (*Intent, error) {
	time.Sleep(p.createDelay) // simulated processing delay

	paymentID := fmt.Sprintf("mock_%d_%s", time.Now().UnixMilli(), shortToken())
	payerID := fmt.Sprintf("payer_%s", shortToken())
	approvalURL := fmt.Sprintf(
		"%s/shop/mock-payment-return?paymentId=%s&PayerID=%s",
		p.clientBaseURL, paymentID, payerID,
	)

	return &Intent{
		PaymentID:   paymentID,
		PayerID:     payerID,
		ApprovalURL: approvalURL,
	}, nil
}

// Capture approves the payment with probability SuccessRate, declining the
// rest with ErrDeclined.
func (p *MockProvider) Capture(_ string) error {
	time.Sleep(p.captureDelay)

	p.mu.Lock()
	roll := p.rnd.Float64()
	p.mu.Unlock()

	if roll >= p.successRate {
		return ErrDeclined
	}
	return nil
}
