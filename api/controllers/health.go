package controllers

import (
	"context"
	"net/http"

	"github.com/modabuy/storefront-backend/api/responses"
	pkgerrors "github.com/modabuy/storefront-backend/pkg/errors"
	"github.com/modabuy/storefront-backend/pkg/logger"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func Live() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteMessage(w, http.StatusOK, "ok")
	}
}

// Ready reports whether the hard dependencies answer.
func Ready(logg *logger.Logger, pingers ...Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, p := range pingers {
			if err := p.Ping(r.Context()); err != nil {
				responses.WriteError(w, r, logg,
					pkgerrors.Wrap(pkgerrors.CodeDependency, "dependency not ready", err))
				return
			}
		}
		responses.WriteMessage(w, http.StatusOK, "ready")
	}
}
