package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bhojnalaya/ordercore/pkg/types"
)

type checkoutRequest struct {
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"paymentMethod"`
	OrderType     string `json:"orderType"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, types.NewValidationError("body", "invalid JSON"))
		return
	}
	order, err := s.orders.Checkout(r.Context(), actor.UserID, types.DeliveryInfo{
		Address:       req.Address,
		Phone:         req.Phone,
		PaymentMethod: types.PaymentMethod(req.PaymentMethod),
		OrderType:     types.OrderType(req.OrderType),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, order)
}

func (s *Server) listMyOrders(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	orders, err := s.orders.ListMine(r.Context(), actor.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, orders)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	orderID, err := pathID(r, "orderID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	order, err := s.orders.Get(r.Context(), orderID, actor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, order)
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	orderID, err := pathID(r, "orderID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	order, err := s.orders.Cancel(r.Context(), orderID, actor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, order)
}

func (s *Server) listAllOrders(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	orders, err := s.orders.ListAll(r.Context(), actor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, orders)
}

func (s *Server) listRecentOrders(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeError(w, r, types.NewValidationError("limit", "must be a positive integer"))
			return
		}
		limit = parsed
	}
	orders, err := s.orders.ListRecent(r.Context(), actor, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, orders)
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	orderID, err := pathID(r, "orderID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, types.NewValidationError("body", "invalid JSON"))
		return
	}
	status, err := types.ParseOrderStatus(req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	order, err := s.orders.UpdateStatus(r.Context(), orderID, status, actor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, order)
}
