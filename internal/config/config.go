package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	CORS       CORSConfig
	Jobs       JobsConfig
	Projection ProjectionConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// JobsConfig holds scheduled job configuration. MaterializeCron is a cron
// expression for the monthly recurring-transaction materialization job;
// empty disables the job.
type JobsConfig struct {
	MaterializeCron string
}

// ProjectionConfig holds the terminal bound for the variable-spend
// projection. The scenario runs from next month through this month,
// inclusive.
type ProjectionConfig struct {
	TerminalMonth time.Month
	TerminalYear  int
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8000"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/financial_planner.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Jobs: JobsConfig{
			MaterializeCron: getEnv("MATERIALIZE_CRON", ""),
		},
		Projection: ProjectionConfig{
			TerminalMonth: time.Month(getEnvInt("PROJECTION_TERMINAL_MONTH", 12)),
			TerminalYear:  getEnvInt("PROJECTION_TERMINAL_YEAR", time.Now().Year()+1),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value.
// Unparseable values fall back to the default.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
