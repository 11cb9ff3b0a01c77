package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// parseJSON decodes a request body into the given request type.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, err
	}
	return req, nil
}

// queryInt reads an integer query parameter, falling back to a default when
// the parameter is absent or malformed.
func queryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

// queryInt64 reads an int64 query parameter with a default.
func queryInt64(r *http.Request, key string, defaultValue int64) int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// parseDate parses a YYYY-MM-DD request field. The zero time is returned for
// empty input so callers can apply their own fallback.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}
