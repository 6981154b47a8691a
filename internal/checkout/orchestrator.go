package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farhxn/foodcourt-backend/internal/payments"
	"github.com/farhxn/foodcourt-backend/pkg/enums"
	pkgerrors "github.com/farhxn/foodcourt-backend/pkg/errors"
	"github.com/farhxn/foodcourt-backend/pkg/logger"
	"github.com/farhxn/foodcourt-backend/pkg/metrics"
)

// ErrCheckoutInProgress rejects a second invocation while an attempt is
// still running for the same cart.
var ErrCheckoutInProgress = errors.New("checkout already in progress")

const (
	msgNothingToPay   = "nothing to pay"
	msgOrderPlaced    = "Your order has been placed!"
	msgPaymentFailed  = "Payment failed. Please try again."
	msgPaymentDefault = "Payment cancelled"
)

// Cart is the slice of the cart session the orchestrator touches.
type Cart interface {
	TotalItems() int
	TotalPrice() decimal.Decimal
	Clear()
}

// IntentClient requests the payment-sheet secrets from the remote payment
// service.
type IntentClient interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal) (*payments.IntentSecrets, error)
}

// Config carries the static checkout knobs.
type Config struct {
	DeliveryFee         decimal.Decimal
	MerchantDisplayName string
	DefaultBillingName  string
}

// Outcome is the terminal result of one checkout attempt.
type Outcome struct {
	State      enums.CheckoutState
	Message    string
	FinalTotal decimal.Decimal
}

// Orchestrator drives a single cart through the payment sequence: compute
// the chargeable total, request a payment intent, initialize and present
// the payment sheet, then reconcile the cart. The cart is cleared on
// success and on no other path.
type Orchestrator struct {
	cart    Cart
	intents IntentClient
	sheet   PaymentSheet
	cfg     Config

	busy  atomic.Bool
	state atomic.Value // enums.CheckoutState

	logg  *logger.Logger
	stats *metrics.CheckoutMetrics
}

// NewOrchestrator wires a per-session orchestrator.
func NewOrchestrator(c Cart, intents IntentClient, sheet PaymentSheet, cfg Config, logg *logger.Logger, stats *metrics.CheckoutMetrics) (*Orchestrator, error) {
	if c == nil {
		return nil, fmt.Errorf("cart required")
	}
	if intents == nil {
		return nil, fmt.Errorf("intent client required")
	}
	if sheet == nil {
		return nil, fmt.Errorf("payment sheet required")
	}
	if cfg.DeliveryFee.IsNegative() {
		return nil, fmt.Errorf("delivery fee cannot be negative")
	}
	o := &Orchestrator{
		cart:    c,
		intents: intents,
		sheet:   sheet,
		cfg:     cfg,
		logg:    logg,
		stats:   stats,
	}
	o.state.Store(enums.CheckoutStateIdle)
	return o, nil
}

// State reports the current attempt state.
func (o *Orchestrator) State() enums.CheckoutState {
	return o.state.Load().(enums.CheckoutState)
}

// Busy reports whether an attempt is in flight.
func (o *Orchestrator) Busy() bool {
	return o.busy.Load()
}

// Checkout runs one attempt start to finish. Every failure inside the
// sequence is converted into a terminal Outcome; the only error returned is
// ErrCheckoutInProgress when a concurrent invocation is rejected.
func (o *Orchestrator) Checkout(ctx context.Context) (outcome Outcome, err error) {
	if !o.busy.CompareAndSwap(false, true) {
		o.stats.IncRejected()
		return Outcome{}, ErrCheckoutInProgress
	}

	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			outcome = o.terminal(ctx, enums.CheckoutStateFailed, fmt.Sprintf("%s (%v)", msgPaymentFailed, r), outcome.FinalTotal)
			err = nil
		}
		o.stats.ObserveAttempt(outcome.State, time.Since(started))
		o.state.Store(enums.CheckoutStateIdle)
		o.busy.Store(false)
	}()

	o.transition(ctx, enums.CheckoutStateSubmitting)

	finalTotal := o.cart.TotalPrice().Add(o.cfg.DeliveryFee)
	if o.cart.TotalItems() == 0 || finalTotal.LessThanOrEqual(decimal.Zero) {
		return o.terminal(ctx, enums.CheckoutStateFailed, msgNothingToPay, decimal.Zero), nil
	}

	o.transition(ctx, enums.CheckoutStateAwaitingIntent)
	secrets, intentErr := o.intents.CreateIntent(ctx, finalTotal)
	if intentErr != nil {
		return o.terminal(ctx, enums.CheckoutStateFailed, messageOf(intentErr), finalTotal), nil
	}

	initErr := o.sheet.Init(ctx, SheetConfig{
		MerchantDisplayName: o.cfg.MerchantDisplayName,
		CustomerID:          secrets.Customer,
		EphemeralKeySecret:  secrets.EphemeralKey,
		PaymentIntentSecret: secrets.PaymentIntent,
		DefaultBillingName:  o.cfg.DefaultBillingName,
	})
	if initErr != nil {
		return o.terminal(ctx, enums.CheckoutStateFailed, messageOf(initErr), finalTotal), nil
	}

	o.transition(ctx, enums.CheckoutStatePresentingSheet)
	presentErr := o.sheet.Present(ctx)
	if presentErr != nil {
		var cancelled *CancelledError
		if errors.As(presentErr, &cancelled) {
			return o.terminal(ctx, enums.CheckoutStateCancelled, cancelled.Error(), finalTotal), nil
		}
		return o.terminal(ctx, enums.CheckoutStateFailed, messageOf(presentErr), finalTotal), nil
	}

	o.cart.Clear()
	return o.terminal(ctx, enums.CheckoutStateSucceeded, msgOrderPlaced, finalTotal), nil
}

func (o *Orchestrator) transition(ctx context.Context, state enums.CheckoutState) {
	o.state.Store(state)
	if o.logg != nil {
		o.logg.Info(o.logg.WithCheckoutState(ctx, state.String()), "checkout.transition")
	}
}

func (o *Orchestrator) terminal(ctx context.Context, state enums.CheckoutState, message string, finalTotal decimal.Decimal) Outcome {
	o.state.Store(state)
	if o.logg != nil {
		fields := map[string]any{
			"checkout_state": state.String(),
			"final_total":    finalTotal.String(),
		}
		o.logg.Info(o.logg.WithFields(ctx, fields), "checkout.terminal")
	}
	return Outcome{State: state, Message: message, FinalTotal: finalTotal}
}

func messageOf(err error) string {
	if err == nil {
		return msgPaymentFailed
	}
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		return typed.Message()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgPaymentFailed
}
