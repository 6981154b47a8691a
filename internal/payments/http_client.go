package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

const responseBodyReadLimit int64 = 64 * 1024

var errFunctionURLRequired = errors.New("payment intent function url is required")

// HTTPClient calls the remote payment-intent function over HTTP. It is the
// production collaborator behind the checkout orchestrator's intent step.
// The request carries no deadline of its own: a hung remote call blocks the
// attempt, matching the documented behavior of the storefront.
type HTTPClient struct {
	httpClient *http.Client
	url        string
	currency   string
}

// Option configures optional client behavior.
type Option func(*HTTPClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithCurrency overrides the currency sent with every intent request.
func WithCurrency(currency string) Option {
	return func(c *HTTPClient) {
		trimmed := strings.TrimSpace(currency)
		if trimmed != "" {
			c.currency = trimmed
		}
	}
}

// NewHTTPClient builds the intent client for the given function URL.
func NewHTTPClient(url string, opts ...Option) (*HTTPClient, error) {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return nil, errFunctionURLRequired
	}

	client := &HTTPClient{
		url:        trimmed,
		currency:   DefaultCurrency,
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

type intentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type intentResponse struct {
	PaymentIntent string `json:"paymentIntent"`
	EphemeralKey  string `json:"ephemeralKey"`
	Customer      string `json:"customer"`
	Error         string `json:"error"`
}

// CreateIntent requests the three payment-sheet secrets for the given
// amount. Transport failures, an error field in the body, and incomplete
// responses are all reported as errors; the caller treats them alike.
func (c *HTTPClient) CreateIntent(ctx context.Context, amount decimal.Decimal) (*IntentSecrets, error) {
	payload, err := json.Marshal(intentRequest{Amount: amount, Currency: c.currency})
	if err != nil {
		return nil, fmt.Errorf("encoding intent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building intent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling payment service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return nil, fmt.Errorf("reading payment service response: %w", err)
	}

	var parsed intentResponse
	if jsonErr := json.Unmarshal(body, &parsed); jsonErr != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("payment service returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decoding payment service response: %w", jsonErr)
	}

	if parsed.Error != "" {
		return nil, errors.New(parsed.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payment service returned status %d", resp.StatusCode)
	}
	if parsed.PaymentIntent == "" || parsed.EphemeralKey == "" || parsed.Customer == "" {
		return nil, errors.New("invalid response from payment service")
	}

	return &IntentSecrets{
		PaymentIntent: parsed.PaymentIntent,
		EphemeralKey:  parsed.EphemeralKey,
		Customer:      parsed.Customer,
	}, nil
}
