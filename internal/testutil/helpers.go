package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/repository"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/service"
)

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	recurringRepo := repository.NewRecurringRepository(db)

	return service.NewTransactionService(
		transactionRepo,
		recurringRepo,
	)
}

func NewTestRecurringService(t *testing.T, db *sql.DB) *service.RecurringService {
	t.Helper()

	recurringRepo := repository.NewRecurringRepository(db)

	return service.NewRecurringService(
		recurringRepo,
	)
}

func NewTestScenarioService(t *testing.T, db *sql.DB) *service.ScenarioService {
	t.Helper()

	scenarioRepo := repository.NewScenarioRepository(db)

	return service.NewScenarioService(
		scenarioRepo,
	)
}

func NewTestDashboardService(t *testing.T, db *sql.DB) *service.DashboardService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	recurringRepo := repository.NewRecurringRepository(db)

	return service.NewDashboardService(
		transactionRepo,
		recurringRepo,
	)
}

func NewTestAnalyticsService(t *testing.T, db *sql.DB) *service.AnalyticsService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewAnalyticsService(
		transactionRepo,
	)
}

func NewTestSimulationService(t *testing.T, db *sql.DB) *service.SimulationService {
	t.Helper()

	recurringRepo := repository.NewRecurringRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	scenarioRepo := repository.NewScenarioRepository(db)

	return service.NewSimulationService(
		recurringRepo,
		transactionRepo,
		scenarioRepo,
	)
}

// MakeID generates a unique UUID for testing.
func MakeID() string {
	return uuid.New().String()
}

// MakeDescription generates a unique description for testing.
//
// Example usage:
//
//	desc := testutil.MakeDescription("Mercado")
func MakeDescription(base string) string {
	if base == "" {
		base = "Entry"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
