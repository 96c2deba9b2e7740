package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bhojnalaya/ordercore/pkg/types"
)

type addItemRequest struct {
	MenuItemID int64 `json:"menuItemId"`
	Quantity   int   `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	view, err := s.carts.Get(r.Context(), actor.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) addCartItem(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, types.NewValidationError("body", "invalid JSON"))
		return
	}
	view, err := s.carts.AddItem(r.Context(), actor.UserID, req.MenuItemID, req.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, view)
}

func (s *Server) setCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	lineID, err := pathID(r, "lineID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, types.NewValidationError("body", "invalid JSON"))
		return
	}
	view, err := s.carts.SetQuantity(r.Context(), actor.UserID, lineID, req.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	lineID, err := pathID(r, "lineID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.carts.RemoveItem(r.Context(), actor.UserID, lineID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	if err := s.carts.Clear(r.Context(), actor.UserID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses a numeric path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, types.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}
