package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"brigade/internal/menu"
	ordercontroller "brigade/internal/order/controller"
)

func NewRouter(orderCtrl *ordercontroller.OrderController, menuCtrl *menu.Controller, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderCtrl.HandleCreateOrder)
			r.Get("/", orderCtrl.HandleListOrders)

			r.Route("/{orderId}", func(r chi.Router) {
				r.Get("/", orderCtrl.HandleGetOrder)
				r.Patch("/status", orderCtrl.HandleSetOrderStatus)
				r.Patch("/items/{itemId}/status", orderCtrl.HandleSetItemStatus)
				r.Post("/start", orderCtrl.HandleStartPreparing)
				r.Post("/ready", orderCtrl.HandleMarkOrderReady)
				r.Post("/bump", orderCtrl.HandleBumpOrder)
				r.Post("/cancel", orderCtrl.HandleCancelOrder)
			})
		})

		r.Get("/menu", menuCtrl.HandleListMenu)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
