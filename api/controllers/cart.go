package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/modabuy/storefront-backend/api/middleware"
	"github.com/modabuy/storefront-backend/api/responses"
	"github.com/modabuy/storefront-backend/api/validators"
	"github.com/modabuy/storefront-backend/internal/cart"
	pkgerrors "github.com/modabuy/storefront-backend/pkg/errors"
	"github.com/modabuy/storefront-backend/pkg/logger"
)

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type cartResponse struct {
	Items []cart.ItemView `json:"items"`
}

func sessionUser(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (uuid.UUID, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		responses.WriteError(w, r, logg,
			pkgerrors.New(pkgerrors.CodeUnauthorized, "no session in context"))
		return uuid.Nil, false
	}
	return userID, true
}

func AddToCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r, logg)
		if !ok {
			return
		}

		var req addToCartRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			responses.WriteError(w, r, logg,
				pkgerrors.New(pkgerrors.CodeValidation, "malformed product id"))
			return
		}

		if err := svc.AddToCart(r.Context(), userID, productID, req.Quantity); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusCreated, "added to cart")
	}
}

func GetCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r, logg)
		if !ok {
			return
		}

		items, err := svc.GetCart(r.Context(), userID)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, cartResponse{Items: items})
	}
}

func RemoveCartLine(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r, logg)
		if !ok {
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(w, r, logg,
				pkgerrors.New(pkgerrors.CodeValidation, "malformed product id"))
			return
		}

		if err := svc.RemoveLine(r.Context(), userID, productID); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "removed from cart")
	}
}

func ClearCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r, logg)
		if !ok {
			return
		}

		if err := svc.ClearCart(r.Context(), userID); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "cart cleared")
	}
}
