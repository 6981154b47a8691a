package controllers

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/farhxn/foodcourt-backend/api/middleware"
	"github.com/farhxn/foodcourt-backend/api/responses"
	"github.com/farhxn/foodcourt-backend/internal/checkout"
	pkgerrors "github.com/farhxn/foodcourt-backend/pkg/errors"
	"github.com/farhxn/foodcourt-backend/pkg/logger"
)

type checkoutResponse struct {
	State      string          `json:"state"`
	Message    string          `json:"message"`
	FinalTotal decimal.Decimal `json:"final_total"`
}

// CheckoutSubmit runs one checkout attempt for the caller's cart. A second
// request while an attempt is in flight is rejected with a conflict.
func CheckoutSubmit(manager *checkout.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user context"))
			return
		}

		orch, err := manager.OrchestratorFor(userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "prepare checkout"))
			return
		}

		outcome, err := orch.Checkout(r.Context())
		if err != nil {
			if errors.Is(err, checkout.ErrCheckoutInProgress) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "checkout already in progress"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checkout"))
			return
		}

		responses.WriteSuccess(w, checkoutResponse{
			State:      outcome.State.String(),
			Message:    outcome.Message,
			FinalTotal: outcome.FinalTotal,
		})
	}
}
