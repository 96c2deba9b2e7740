package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/bhojnalaya/ordercore/pkg/types"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError maps typed domain errors to their documented statuses. Unknown
// errors become an opaque 500; internal detail never leaks outward.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *types.ValidationError
	switch {
	case errors.As(err, &ve):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error(), Field: ve.Field})
	case errors.Is(err, types.ErrEmptyCart):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cart is empty"})
	case errors.Is(err, types.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, types.ErrForbidden):
		s.writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	case errors.Is(err, types.ErrUnauthenticated):
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
	case errors.Is(err, types.ErrInvalidTransition):
		s.writeJSON(w, http.StatusConflict, errorResponse{Error: "invalid status transition"})
	default:
		s.logger.Error("internal error",
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.Error(err),
		)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
