package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"walkup/internal/models"
)

// PayPalConfig holds the REST API credentials and endpoints.
type PayPalConfig struct {
	ClientID      string
	ClientSecret  string
	BaseURL       string // e.g. https://api-m.sandbox.paypal.com
	ClientBaseURL string // frontend base URL for return/cancel redirects
}

// PayPalProvider is a client for the PayPal Orders v2 REST API.
type PayPalProvider struct {
	cfg        PayPalConfig
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewPayPalProvider creates a PayPal provider.
func NewPayPalProvider(cfg PayPalConfig) *PayPalProvider {
	return &PayPalProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// token returns a cached OAuth2 access token, refreshing it when it is within
// a minute of expiring.
func (p *PayPalProvider) token() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && time.Now().Before(p.tokenExpiry.Add(-time.Minute)) {
		return p.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequest(http.MethodPost, p.cfg.BaseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.SetBasicAuth(p.cfg.ClientID, p.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token request returned status %d: %s", resp.StatusCode, body)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	p.accessToken = tokenResp.AccessToken
	p.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	return p.accessToken, nil
}

func (p *PayPalProvider) post(path string, payload interface{}, out interface{}) error {
	token, err := p.token()
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(http.MethodPost, p.cfg.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("paypal returned status %d for %s: %s", resp.StatusCode, path, respBody)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}

type paypalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paypalOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
}

// Authorize creates a PayPal order with the snapshot items and returns the
// approval redirect.
func (p *PayPalProvider) Authorize(order *models.Order) (*Intent, error) {
	items := make([]map[string]interface{}, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, map[string]interface{}{
			"name":        item.Title,
			"sku":         item.ProductID,
			"quantity":    strconv.Itoa(item.Quantity),
			"unit_amount": paypalAmount{CurrencyCode: "USD", Value: fmt.Sprintf("%.2f", item.Price)},
		})
	}

	total := fmt.Sprintf("%.2f", order.TotalAmount)
	request := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"amount": map[string]interface{}{
					"currency_code": "USD",
					"value":         total,
					"breakdown": map[string]interface{}{
						"item_total": paypalAmount{CurrencyCode: "USD", Value: total},
					},
				},
				"items": items,
			},
		},
		"application_context": map[string]interface{}{
			"return_url":   p.cfg.ClientBaseURL + "/shop/paypal-return",
			"cancel_url":   p.cfg.ClientBaseURL + "/shop/paypal-cancel",
			"brand_name":   "WalkUp",
			"landing_page": "NO_PREFERENCE",
			"user_action":  "PAY_NOW",
		},
	}

	var created paypalOrderResponse
	if err := p.post("/v2/checkout/orders", request, &created); err != nil {
		return nil, err
	}

	approvalURL := ""
	for _, link := range created.Links {
		if link.Rel == "approve" {
			approvalURL = link.Href
			break
		}
	}

	return &Intent{
		PaymentID:   created.ID,
		ApprovalURL: approvalURL,
	}, nil
}

// Capture finalizes the PayPal order. Any terminal status other than
// COMPLETED is reported as ErrDeclined.
func (p *PayPalProvider) Capture(paymentID string) error {
	var captured paypalOrderResponse
	if err := p.post("/v2/checkout/orders/"+paymentID+"/capture", map[string]interface{}{}, &captured); err != nil {
		return err
	}
	if captured.Status != "COMPLETED" {
		return ErrDeclined
	}
	return nil
}
