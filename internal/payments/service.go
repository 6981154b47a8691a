package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/customer"
	"github.com/stripe/stripe-go/v84/ephemeralkey"
	"github.com/stripe/stripe-go/v84/paymentintent"

	pkgerrors "github.com/farhxn/foodcourt-backend/pkg/errors"
	"github.com/farhxn/foodcourt-backend/pkg/logger"
	pkgstripe "github.com/farhxn/foodcourt-backend/pkg/stripe"
)

// DefaultCurrency is charged when a request does not name one.
const DefaultCurrency = "pkr"

// IntentSecrets carries the three credentials the payment sheet needs.
type IntentSecrets struct {
	PaymentIntent string `json:"paymentIntent"`
	EphemeralKey  string `json:"ephemeralKey"`
	Customer      string `json:"customer"`
}

// StripeIntentAPI is the subset of provider operations the service uses.
type StripeIntentAPI interface {
	CreateCustomer(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error)
	CreateEphemeralKey(ctx context.Context, params *stripe.EphemeralKeyParams) (*stripe.EphemeralKey, error)
	CreatePaymentIntent(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type stripeAPIWrapper struct{}

// NewStripeIntentAPI wraps the initialized Stripe client so the service can
// be tested against a stub.
func NewStripeIntentAPI(api *pkgstripe.Client) StripeIntentAPI {
	if api == nil {
		return nil
	}
	return &stripeAPIWrapper{}
}

func (w *stripeAPIWrapper) CreateCustomer(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error) {
	if params != nil {
		params.Context = ctx
	}
	return customer.New(params)
}

func (w *stripeAPIWrapper) CreateEphemeralKey(ctx context.Context, params *stripe.EphemeralKeyParams) (*stripe.EphemeralKey, error) {
	if params != nil {
		params.Context = ctx
	}
	return ephemeralkey.New(params)
}

func (w *stripeAPIWrapper) CreatePaymentIntent(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if params != nil {
		params.Context = ctx
	}
	return paymentintent.New(params)
}

// Service creates payment intents: a fresh provider customer, an ephemeral
// key scoped to it, and an intent for the requested amount.
type Service interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, currency string) (*IntentSecrets, error)
}

type service struct {
	api        StripeIntentAPI
	apiVersion string
	logg       *logger.Logger
}

// NewService builds the payment intent service.
func NewService(api StripeIntentAPI, apiVersion string, logg *logger.Logger) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("stripe intent api required")
	}
	if strings.TrimSpace(apiVersion) == "" {
		return nil, fmt.Errorf("stripe api version required")
	}
	return &service{api: api, apiVersion: apiVersion, logg: logg}, nil
}

func (s *service) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string) (*IntentSecrets, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid amount")
	}
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"amount":   amount.String(),
			"currency": currency,
		}), "creating payment intent")
	}

	cust, err := s.api.CreateCustomer(ctx, &stripe.CustomerParams{})
	if err != nil {
		return nil, providerError(err, "create customer")
	}

	key, err := s.api.CreateEphemeralKey(ctx, &stripe.EphemeralKeyParams{
		Customer:      stripe.String(cust.ID),
		StripeVersion: stripe.String(s.apiVersion),
	})
	if err != nil {
		return nil, providerError(err, "create ephemeral key")
	}

	intent, err := s.api.CreatePaymentIntent(ctx, &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(MinorUnits(amount)),
		Currency: stripe.String(currency),
		Customer: stripe.String(cust.ID),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	})
	if err != nil {
		return nil, providerError(err, "create payment intent")
	}

	return &IntentSecrets{
		PaymentIntent: intent.ClientSecret,
		EphemeralKey:  key.Secret,
		Customer:      cust.ID,
	}, nil
}

// MinorUnits converts a major-unit amount into the provider's integer minor
// units, rounding half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func providerError(err error, op string) error {
	if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Msg != "" {
		return pkgerrors.Wrap(pkgerrors.CodePayment, err, stripeErr.Msg)
	}
	return pkgerrors.Wrap(pkgerrors.CodePayment, err, op+" failed")
}
