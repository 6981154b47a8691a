package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LocalClient satisfies the checkout intent contract with the in-process
// service, skipping the HTTP hop when the payment function runs inside this
// binary.
type LocalClient struct {
	svc      Service
	currency string
}

// NewLocalClient pins the in-process service to one currency.
func NewLocalClient(svc Service, currency string) (*LocalClient, error) {
	if svc == nil {
		return nil, fmt.Errorf("payments service is required")
	}
	trimmed := strings.TrimSpace(currency)
	if trimmed == "" {
		trimmed = DefaultCurrency
	}
	return &LocalClient{svc: svc, currency: trimmed}, nil
}

// CreateIntent requests the payment-sheet secrets for the given amount.
func (c *LocalClient) CreateIntent(ctx context.Context, amount decimal.Decimal) (*IntentSecrets, error) {
	return c.svc.CreateIntent(ctx, amount, c.currency)
}
