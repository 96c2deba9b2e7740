// Package httpapi exposes the ordering core over HTTP. Handlers map the
// core operations one-to-one onto endpoints and translate the typed domain
// errors to stable status codes; no business rule lives here.
package httpapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bhojnalaya/ordercore/internal/analytics"
	"github.com/bhojnalaya/ordercore/internal/auth"
	"github.com/bhojnalaya/ordercore/internal/cart"
	"github.com/bhojnalaya/ordercore/internal/ledger"
)

const (
	readTimeout       = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 30 * time.Second
)

// Server wires the HTTP layer to the core components.
type Server struct {
	carts     *cart.Store
	orders    *ledger.Ledger
	analytics *analytics.Aggregator
	resolver  auth.Resolver
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates the HTTP server.
func NewServer(carts *cart.Store, orders *ledger.Ledger, agg *analytics.Aggregator, resolver auth.Resolver, logger *zap.Logger) *Server {
	return &Server{
		carts:     carts,
		orders:    orders,
		analytics: agg,
		resolver:  resolver,
		logger:    logger,
	}
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.accessLog)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"alive": true}`)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.getCart)
			r.Delete("/", s.clearCart)
			r.Post("/items", s.addCartItem)
			r.Patch("/items/{lineID}", s.setCartItemQuantity)
			r.Delete("/items/{lineID}", s.removeCartItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", s.checkout)
			r.Get("/", s.listMyOrders)
			r.Get("/{orderID}", s.getOrder)
			r.Post("/{orderID}/cancel", s.cancelOrder)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireOperator)

			r.Get("/orders", s.listAllOrders)
			r.Get("/orders/recent", s.listRecentOrders)
			r.Patch("/orders/{orderID}/status", s.updateOrderStatus)

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/summary", s.analyticsSummary)
				r.Get("/status-breakdown", s.analyticsStatusBreakdown)
				r.Get("/top-items", s.analyticsTopItems)
				r.Get("/category-sales", s.analyticsCategorySales)
				r.Get("/daily-trend", s.analyticsDailyTrend)
				r.Get("/dashboard", s.analyticsDashboard)
			})
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errChan:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
