package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/modabuy/storefront-backend/api/responses"
	"github.com/modabuy/storefront-backend/api/validators"
	"github.com/modabuy/storefront-backend/internal/orders"
	"github.com/modabuy/storefront-backend/pkg/logger"
	"github.com/modabuy/storefront-backend/pkg/pagination"
)

// HistoryLister serves a user's paginated order history.
type HistoryLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*orders.OrderList, error)
}

func ListOrders(repo HistoryLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r, logg)
		if !ok {
			return
		}

		list, err := repo.ListByUser(r.Context(), userID, pagination.Params{
			Limit:  validators.ParseLimit(r, "limit"),
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, list)
	}
}
