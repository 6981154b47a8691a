package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/farhxn/foodcourt-backend/internal/payments"
	pkgerrors "github.com/farhxn/foodcourt-backend/pkg/errors"
	"github.com/farhxn/foodcourt-backend/pkg/logger"
)

type paymentIntentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// PaymentIntentCreate is the payment-sheet secrets endpoint. Unlike the rest
// of the API it answers with the raw function wire shape (a bare
// `{paymentIntent, ephemeralKey, customer}` object on success, `{error}`
// on failure) because the checkout intent client parses exactly that shape.
func PaymentIntentCreate(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeIntentError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		if svc == nil {
			writeIntentError(w, http.StatusInternalServerError, "payment service unavailable")
			return
		}

		var body paymentIntentRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeIntentError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if body.Amount.LessThanOrEqual(decimal.Zero) {
			writeIntentError(w, http.StatusBadRequest, "amount must be greater than zero")
			return
		}

		currency := strings.TrimSpace(body.Currency)
		if currency == "" {
			currency = payments.DefaultCurrency
		}

		secrets, err := svc.CreateIntent(r.Context(), body.Amount, currency)
		if err != nil {
			if logg != nil {
				logg.Error(r.Context(), "payments.intent.create", err)
			}
			writeIntentError(w, http.StatusBadRequest, intentErrorMessage(err))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(secrets)
	}
}

func writeIntentError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func intentErrorMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Message()
	}
	if err != nil {
		return err.Error()
	}
	return "payment intent creation failed"
}
