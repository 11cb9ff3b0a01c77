package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/api/handlers"
	custommiddleware "github.com/ViniciusBranco/financial-planner-simulator/internal/api/middleware"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/config"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System      *service.SystemService
	Transaction *service.TransactionService
	Recurring   *service.RecurringService
	Scenario    *service.ScenarioService
	Dashboard   *service.DashboardService
	Analytics   *service.AnalyticsService
	Simulation  *service.SimulationService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
		})

		r.Route("/transactions", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(services.Transaction)
			r.Get("/", transactionHandler.ListTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Post("/bulk-delete", transactionHandler.BulkDeleteTransactions)
			r.Post("/materialize", transactionHandler.MaterializeMonth)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/recurring", func(r chi.Router) {
			recurringHandler := handlers.NewRecurringHandler(services.Recurring)
			r.Get("/", recurringHandler.ListRecurring)
			r.Post("/", recurringHandler.CreateRecurring)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/", recurringHandler.UpdateRecurring)
				r.Delete("/", recurringHandler.DeleteRecurring)
			})
		})

		r.Route("/scenarios", func(r chi.Router) {
			scenarioHandler := handlers.NewScenarioHandler(services.Scenario, cfg.Projection)
			r.Get("/", scenarioHandler.ListScenarios)
			r.Post("/", scenarioHandler.CreateScenario)
			r.Post("/save-matrix", scenarioHandler.SaveMatrix)
			r.Post("/project-variable-spend", scenarioHandler.ProjectVariableSpend)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", scenarioHandler.GetScenario)
				r.Delete("/", scenarioHandler.DeleteScenario)
				r.Post("/items", scenarioHandler.AddScenarioItem)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			dashboardHandler := handlers.NewDashboardHandler(services.Dashboard)
			r.Get("/summary", dashboardHandler.Summary)
			r.Get("/breakdown", dashboardHandler.Breakdown)
			r.Get("/health-ratio", dashboardHandler.HealthRatio)
		})

		r.Route("/analytics", func(r chi.Router) {
			analyticsHandler := handlers.NewAnalyticsHandler(services.Analytics)
			r.Get("/average-spending", analyticsHandler.AverageSpending)
		})

		r.Route("/simulation", func(r chi.Router) {
			simulationHandler := handlers.NewSimulationHandler(services.Simulation)
			r.Get("/projection", simulationHandler.Projection)
		})
	})

	return r
}
