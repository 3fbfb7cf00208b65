package api

import (
	"oandarates/internal/present/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(ratesHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Get("/api/v1/rates", ratesHandler.GetRates)
	router.Get("/api/v1/rates/status", ratesHandler.GetStatus)
	router.Post("/api/v1/updates", ratesHandler.RequestUpdate)
	router.Delete("/api/v1/updates/current", ratesHandler.CancelUpdate)
	router.Get("/api/v1/instruments/{instrument}/history", ratesHandler.GetHistory)
	return router
}
