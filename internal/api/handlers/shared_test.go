package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestParseDate tests the parseDate helper. Internal test (package handlers)
// because the helper is unexported.
func TestParseDate(t *testing.T) {
	t.Run("parses an ISO date", func(t *testing.T) {
		got, err := parseDate("2025-03-31")
		if err != nil {
			t.Fatalf("parseDate() returned unexpected error: %v", err)
		}
		want := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("empty string yields the zero time", func(t *testing.T) {
		got, err := parseDate("")
		if err != nil {
			t.Fatalf("parseDate() returned unexpected error: %v", err)
		}
		if !got.IsZero() {
			t.Errorf("Expected zero time, got %v", got)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := parseDate("31/03/2025"); err == nil {
			t.Error("Expected error for non-ISO date")
		}
	})
}

func TestQueryInt(t *testing.T) {
	t.Run("parses a numeric query parameter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test?year=2024", nil)
		if got := queryInt(req, "year", 2000); got != 2024 {
			t.Errorf("Expected 2024, got %d", got)
		}
	})

	t.Run("falls back to the default when missing or unparseable", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test?year=abc", nil)
		if got := queryInt(req, "year", 2000); got != 2000 {
			t.Errorf("Expected default 2000, got %d", got)
		}
		if got := queryInt(req, "month", 6); got != 6 {
			t.Errorf("Expected default 6, got %d", got)
		}
	})
}
