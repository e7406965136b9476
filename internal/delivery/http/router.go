package http

import (
	"net/http"

	"github.com/frontandrew/parking/internal/delivery/http/middleware"
	"github.com/frontandrew/parking/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Router содержит все зависимости для HTTP роутера
type Router struct {
	parkingHandler *ParkingHandler
	logger         logger.Logger
}

// NewRouter создает новый HTTP router
func NewRouter(parkingHandler *ParkingHandler, logger logger.Logger) *Router {
	return &Router{
		parkingHandler: parkingHandler,
		logger:         logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/park", rt.parkingHandler.Park)
		r.Post("/unpark", rt.parkingHandler.Unpark)
		r.Get("/status", rt.parkingHandler.GetStatus)
		r.Get("/history", rt.parkingHandler.GetHistory)
		r.Get("/availability/{size}", rt.parkingHandler.GetAvailability)
		r.Post("/report", rt.parkingHandler.GenerateReport)
		r.Get("/reports/{id}", rt.parkingHandler.GetReport)
	})

	return r
}
