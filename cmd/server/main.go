package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/api"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/config"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/database"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/repository"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/scheduler"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	recurringRepo := repository.NewRecurringRepository(db)
	scenarioRepo := repository.NewScenarioRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	transactionService := service.NewTransactionService(
		transactionRepo,
		recurringRepo,
	)
	recurringService := service.NewRecurringService(
		recurringRepo,
	)
	scenarioService := service.NewScenarioService(
		scenarioRepo,
	)
	dashboardService := service.NewDashboardService(
		transactionRepo,
		recurringRepo,
	)
	analyticsService := service.NewAnalyticsService(
		transactionRepo,
	)
	simulationService := service.NewSimulationService(
		recurringRepo,
		transactionRepo,
		scenarioRepo,
	)

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Transaction: transactionService,
		Recurring:   recurringService,
		Scenario:    scenarioService,
		Dashboard:   dashboardService,
		Analytics:   analyticsService,
		Simulation:  simulationService,
	}, cfg)

	// Start the materialization scheduler when configured
	jobs := scheduler.New(transactionService)
	if err := jobs.Start(cfg.Jobs.MaterializeCron); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	jobs.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
