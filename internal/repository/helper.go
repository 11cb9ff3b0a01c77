package repository

import (
	"fmt"
	"time"
)

// dateLayout is the storage format for all DATE columns.
const dateLayout = "2006-01-02"

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse(dateLayout, str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// formatDate renders a time as a DATE column value.
func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
