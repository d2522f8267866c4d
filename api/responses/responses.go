package responses

import (
	"encoding/json"
	"net/http"

	pkgerrors "github.com/modabuy/storefront-backend/pkg/errors"
	"github.com/modabuy/storefront-backend/pkg/logger"
	"github.com/modabuy/storefront-backend/pkg/types"
)

// WriteJSON writes body as JSON with the given status. A nil body writes the
// status line only.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

// WriteMessage writes a bare acknowledgement body.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, types.MessageResponse{Message: message})
}

// WriteError maps err to its coded status and writes the error envelope. What
// reaches the client is governed by the code's metadata; everything else
// stays in the logs.
func WriteError(w http.ResponseWriter, r *http.Request, logg *logger.Logger, err error) {
	coded := pkgerrors.As(err)
	if coded == nil {
		coded = pkgerrors.Wrap(pkgerrors.CodeInternal, "unhandled error", err)
	}

	meta := pkgerrors.MetadataFor(coded.Code())

	apiErr := types.APIError{
		Code:    string(coded.Code()),
		Message: meta.PublicMessage,
	}
	if meta.DetailsAllowed {
		apiErr.Message = coded.Message()
		apiErr.Details = coded.Details()
	}

	if meta.HTTPStatus >= http.StatusInternalServerError {
		logg.Error(r.Context(), "request failed: "+pkgerrors.Dump(err), err)
	} else {
		logg.Warn(r.Context(), "request rejected: "+coded.Error())
	}

	WriteJSON(w, meta.HTTPStatus, types.ErrorEnvelope{Error: apiErr})
}
