package handler

import (
	"github.com/gorilla/mux"
	"github.com/segyhp/fintrack/pkg/response"
	"github.com/sirupsen/logrus"
)

// NewRouter wires every route of the HTTP API.
func NewRouter(reports *ReportHandler, plans *PlanHandler, health *HealthHandler, log logrus.FieldLogger) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(log))
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", health.Health).Methods("GET")
	router.HandleFunc("/health/ready", health.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/user_credits/{userId}", reports.GetUserCredits).Methods("GET")
	api.HandleFunc("/year_performance", reports.GetYearPerformance).Methods("GET")
	api.HandleFunc("/plans_performance", reports.GetPlansPerformance).Methods("GET")
	api.HandleFunc("/plans_insert", plans.InsertPlans).Methods("POST", "OPTIONS")

	return router
}
