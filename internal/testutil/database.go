package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Every new pool connection to :memory: would get its own empty
	// database, so the pool must never grow past one connection.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Category table
		CREATE TABLE category (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			type VARCHAR(10) NOT NULL
		);

		-- Transactions table
		CREATE TABLE transactions (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			date DATE NOT NULL,
			reference_date DATE NOT NULL,
			description TEXT NOT NULL,
			amount FLOAT NOT NULL,
			type VARCHAR(10) NOT NULL,
			category_id VARCHAR(36),
			category_legacy VARCHAR(100),
			source_type VARCHAR(20) NOT NULL DEFAULT 'MANUAL',
			is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
			installment_n INTEGER,
			installment_total INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(category_id) REFERENCES category(id)
		);

		CREATE INDEX idx_transactions_reference_date ON transactions(reference_date);
		CREATE INDEX idx_transactions_source_type ON transactions(source_type);

		-- Recurring template table
		CREATE TABLE recurring_transaction (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			description TEXT NOT NULL,
			amount FLOAT NOT NULL,
			type VARCHAR(10) NOT NULL,
			category_id VARCHAR(36),
			category_legacy VARCHAR(100),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			day_of_month INTEGER NOT NULL DEFAULT 1,
			start_date DATE NOT NULL,
			end_date DATE,
			source_type VARCHAR(20) NOT NULL DEFAULT 'XP_ACCOUNT',
			FOREIGN KEY(category_id) REFERENCES category(id)
		);

		-- Scenario tables
		CREATE TABLE scenario (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(100) NOT NULL,
			description TEXT
		);

		CREATE TABLE scenario_item (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario_id INTEGER NOT NULL,
			description TEXT NOT NULL,
			amount FLOAT NOT NULL,
			type VARCHAR(10) NOT NULL,
			start_date DATE NOT NULL,
			installments INTEGER NOT NULL DEFAULT 1,
			is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
			source_type VARCHAR(20) NOT NULL DEFAULT 'MANUAL',
			FOREIGN KEY(scenario_id) REFERENCES scenario(id) ON DELETE CASCADE
		);
	`

	_, err := db.Exec(schema)
	return err
}
