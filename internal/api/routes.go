package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Advisory routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/advice", handler.GenerateAdvice).Methods("POST")
	api.HandleFunc("/plans/{client}", handler.GetLatestPlan).Methods("GET")
	api.HandleFunc("/prices", handler.GetPrices).Methods("GET")
	api.HandleFunc("/prices", handler.SavePrices).Methods("POST")

	return r
}
