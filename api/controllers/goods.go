package controllers

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/modabuy/storefront-backend/api/responses"
	"github.com/modabuy/storefront-backend/api/validators"
	"github.com/modabuy/storefront-backend/internal/catalog"
	pkgerrors "github.com/modabuy/storefront-backend/pkg/errors"
	"github.com/modabuy/storefront-backend/pkg/logger"
)

// Categories look like CT1: a letter code plus a numeric id.
var categoryPattern = regexp.MustCompile(`^\D+\d+$`)

func pageQuery(r *http.Request) catalog.PageQuery {
	return catalog.PageQuery{
		PITID:       r.URL.Query().Get("pit_id"),
		SearchAfter: validators.ParseSearchAfter(r, "search_after"),
		Size:        validators.ParseLimit(r, "limit"),
	}
}

func ListGoods(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := pageQuery(r)

		if category := r.URL.Query().Get("category"); category != "" {
			if !categoryPattern.MatchString(category) {
				responses.WriteError(w, r, logg,
					pkgerrors.New(pkgerrors.CodeValidation, "malformed category"))
				return
			}
			q.Category = category
		}

		page, err := svc.ListGoods(r.Context(), q)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, page)
	}
}

func SearchGoods(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.SearchGoods(r.Context(), r.URL.Query().Get("keyword"), pageQuery(r))
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, page)
	}
}

func GetGoodsDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goodsID, err := uuid.Parse(chi.URLParam(r, "goodsId"))
		if err != nil {
			responses.WriteError(w, r, logg,
				pkgerrors.New(pkgerrors.CodeValidation, "malformed goods id"))
			return
		}

		doc, err := svc.GetItem(r.Context(), goodsID)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, doc)
	}
}

func ClosePIT(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ClosePIT(r.Context(), chi.URLParam(r, "pitId")); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "pit closed")
	}
}
