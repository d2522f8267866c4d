package controllers

import (
	"net/http"

	"github.com/modabuy/storefront-backend/api/responses"
	"github.com/modabuy/storefront-backend/internal/checkout"
	"github.com/modabuy/storefront-backend/pkg/logger"
)

type orderCompletedResponse struct {
	Message string `json:"message"`
	OrderNo string `json:"order_no"`
}

func GetCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r, logg)
		if !ok {
			return
		}

		preview, err := svc.GetCheckout(r.Context(), userID)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, preview)
	}
}

func CreateOrder(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r, logg)
		if !ok {
			return
		}

		order, err := svc.CreateOrder(r.Context(), userID)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteJSON(w, http.StatusCreated, orderCompletedResponse{
			Message: "order completed",
			OrderNo: order.OrderNo,
		})
	}
}
