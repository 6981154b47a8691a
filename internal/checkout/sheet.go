package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentintent"

	pkgstripe "github.com/farhxn/foodcourt-backend/pkg/stripe"
)

// SheetConfig carries everything the payment sheet needs before it can be
// presented: the three intent secrets plus static display metadata.
type SheetConfig struct {
	MerchantDisplayName string
	CustomerID          string
	EphemeralKeySecret  string
	PaymentIntentSecret string
	DefaultBillingName  string
}

// PaymentSheet is the payment presentation collaborator. Present reports a
// cancellation or decline as *CancelledError so callers can tell it apart
// from a hard failure.
type PaymentSheet interface {
	Init(ctx context.Context, cfg SheetConfig) error
	Present(ctx context.Context) error
}

// CancelledError marks a presented payment the user cancelled or the
// provider declined. It terminates the attempt without treating it as a
// failure; the cart survives for a retry.
type CancelledError struct {
	Reason string
}

func (e *CancelledError) Error() string {
	if e == nil || e.Reason == "" {
		return msgPaymentDefault
	}
	return e.Reason
}

// StripeConfirmAPI is the confirm surface the production sheet uses.
type StripeConfirmAPI interface {
	ConfirmPaymentIntent(ctx context.Context, id string, params *stripe.PaymentIntentConfirmParams) (*stripe.PaymentIntent, error)
}

type stripeConfirmWrapper struct{}

// NewStripeConfirmAPI wraps the initialized Stripe client.
func NewStripeConfirmAPI(api *pkgstripe.Client) StripeConfirmAPI {
	if api == nil {
		return nil
	}
	return &stripeConfirmWrapper{}
}

func (w *stripeConfirmWrapper) ConfirmPaymentIntent(ctx context.Context, id string, params *stripe.PaymentIntentConfirmParams) (*stripe.PaymentIntent, error) {
	if params != nil {
		params.Context = ctx
	}
	return paymentintent.Confirm(id, params)
}

// StripeSheet completes the presented payment server side by confirming the
// intent with the configured payment method. Declines and cancellations come
// back as *CancelledError.
type StripeSheet struct {
	api           StripeConfirmAPI
	paymentMethod string
	cfg           SheetConfig
	initialized   bool
}

// NewStripeSheet builds a sheet bound to one checkout attempt.
func NewStripeSheet(api StripeConfirmAPI, paymentMethod string) (*StripeSheet, error) {
	if api == nil {
		return nil, fmt.Errorf("stripe confirm api required")
	}
	if strings.TrimSpace(paymentMethod) == "" {
		return nil, fmt.Errorf("payment method required")
	}
	return &StripeSheet{api: api, paymentMethod: paymentMethod}, nil
}

// Init validates and stores the sheet configuration.
func (s *StripeSheet) Init(ctx context.Context, cfg SheetConfig) error {
	if strings.TrimSpace(cfg.MerchantDisplayName) == "" {
		return fmt.Errorf("merchant display name is required")
	}
	if cfg.CustomerID == "" || cfg.EphemeralKeySecret == "" || cfg.PaymentIntentSecret == "" {
		return fmt.Errorf("payment sheet requires customer, ephemeral key and intent secrets")
	}
	s.cfg = cfg
	s.initialized = true
	return nil
}

// Present confirms the payment intent referenced by the stored secret.
func (s *StripeSheet) Present(ctx context.Context) error {
	if !s.initialized {
		return fmt.Errorf("payment sheet not initialized")
	}

	id, err := intentIDFromSecret(s.cfg.PaymentIntentSecret)
	if err != nil {
		return err
	}

	intent, err := s.api.ConfirmPaymentIntent(ctx, id, &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(s.paymentMethod),
	})
	if err != nil {
		if cancelled, reason := asDecline(err); cancelled {
			return &CancelledError{Reason: reason}
		}
		return err
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded,
		stripe.PaymentIntentStatusProcessing,
		stripe.PaymentIntentStatusRequiresCapture:
		return nil
	case stripe.PaymentIntentStatusCanceled:
		return &CancelledError{Reason: msgPaymentDefault}
	default:
		return fmt.Errorf("payment intent in unexpected status %q", intent.Status)
	}
}

// intentIDFromSecret extracts the intent id from a client secret of the
// form pi_xxx_secret_yyy.
func intentIDFromSecret(secret string) (string, error) {
	idx := strings.Index(secret, "_secret")
	if !strings.HasPrefix(secret, "pi_") || idx <= 0 {
		return "", fmt.Errorf("malformed payment intent client secret")
	}
	return secret[:idx], nil
}

func asDecline(err error) (bool, string) {
	stripeErr, ok := err.(*stripe.Error)
	if !ok {
		return false, ""
	}
	if stripeErr.Type == stripe.ErrorTypeCard {
		return true, declineReason(stripeErr)
	}
	switch stripeErr.Code {
	case stripe.ErrorCodeCardDeclined,
		stripe.ErrorCodeExpiredCard,
		stripe.ErrorCodeIncorrectCVC,
		stripe.ErrorCodePaymentIntentPaymentAttemptFailed:
		return true, declineReason(stripeErr)
	}
	return false, ""
}

func declineReason(stripeErr *stripe.Error) string {
	if stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return msgPaymentDefault
}
