package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/farhxn/foodcourt-backend/api/middleware"
	"github.com/farhxn/foodcourt-backend/api/responses"
	"github.com/farhxn/foodcourt-backend/api/validators"
	"github.com/farhxn/foodcourt-backend/internal/cart"
	"github.com/farhxn/foodcourt-backend/pkg/enums"
	pkgerrors "github.com/farhxn/foodcourt-backend/pkg/errors"
	"github.com/farhxn/foodcourt-backend/pkg/logger"
)

type cartResponse struct {
	Items      []cart.Item     `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func newCartResponse(session *cart.Session) cartResponse {
	items := session.Items()
	if items == nil {
		items = []cart.Item{}
	}
	return cartResponse{
		Items:      items,
		TotalItems: session.TotalItems(),
		TotalPrice: session.TotalPrice(),
	}
}

func cartSession(r *http.Request, carts *cart.Registry) (*cart.Session, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user context")
	}
	return carts.SessionFor(userID), nil
}

// CartGet returns the caller's current cart snapshot.
func CartGet(carts *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := cartSession(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(session))
	}
}

type addCartItemRequest struct {
	MenuItemID     string                     `json:"id" validate:"required,uuid"`
	Name           string                     `json:"name" validate:"required"`
	Price          decimal.Decimal            `json:"price" validate:"required"`
	ImageURL       string                     `json:"image_url"`
	Customizations []cartCustomizationPayload `json:"customizations" validate:"dive"`
}

type cartCustomizationPayload struct {
	ID    string          `json:"id" validate:"required"`
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
	Type  string          `json:"type"`
}

func (req addCartItemRequest) toItem() (cart.Item, error) {
	if req.Price.IsNegative() {
		return cart.Item{}, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	customizations := make([]cart.Customization, len(req.Customizations))
	for i, payload := range req.Customizations {
		if payload.Price.IsNegative() {
			return cart.Item{}, pkgerrors.New(pkgerrors.CodeValidation, "customization price cannot be negative")
		}
		customizations[i] = cart.Customization{
			ID:    payload.ID,
			Name:  payload.Name,
			Price: payload.Price,
			Type:  enums.CustomizationType(payload.Type),
		}
	}
	return cart.Item{
		MenuItemID:     req.MenuItemID,
		Name:           req.Name,
		Price:          req.Price,
		ImageURL:       req.ImageURL,
		Customizations: customizations,
	}, nil
}

// CartAddItem adds one line to the cart, merging with an existing line when
// the menu item and add-on combination match.
func CartAddItem(carts *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := cartSession(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := body.toItem()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session.With(func(c *cart.Store) {
			c.AddItem(item)
		})
		responses.WriteSuccess(w, newCartResponse(session))
	}
}

// CartIncreaseItem bumps one line's quantity by one.
func CartIncreaseItem(carts *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return cartLineAction(carts, logg, func(c *cart.Store, lineKey string) {
		c.IncreaseQuantity(lineKey)
	})
}

// CartDecreaseItem lowers one line's quantity by one, never below one.
func CartDecreaseItem(carts *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return cartLineAction(carts, logg, func(c *cart.Store, lineKey string) {
		c.DecreaseQuantity(lineKey)
	})
}

// CartRemoveItem drops one line regardless of its quantity.
func CartRemoveItem(carts *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return cartLineAction(carts, logg, func(c *cart.Store, lineKey string) {
		c.RemoveItem(lineKey)
	})
}

func cartLineAction(carts *cart.Registry, logg *logger.Logger, action func(*cart.Store, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := cartSession(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineKey := chi.URLParam(r, "lineKey")
		if lineKey == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "line key required"))
			return
		}

		session.With(func(c *cart.Store) {
			action(c, lineKey)
		})
		responses.WriteSuccess(w, newCartResponse(session))
	}
}

// CartClear empties the caller's cart.
func CartClear(carts *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := cartSession(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session.Clear()
		responses.WriteSuccess(w, newCartResponse(session))
	}
}
