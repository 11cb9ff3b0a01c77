package model

import "time"

// RecurringTemplate is a user-managed rule that yields one transaction
// occurrence per month while active. Amount is stored signed, following the
// same convention as Transaction.
type RecurringTemplate struct {
	ID             string     `json:"id"`
	Description    string     `json:"description"`
	Amount         float64    `json:"amount"`
	Type           string     `json:"type"`
	CategoryID     *string    `json:"category_id,omitempty"`
	CategoryLegacy string     `json:"category_legacy,omitempty"`
	IsActive       bool       `json:"is_active"`
	DayOfMonth     int        `json:"day_of_month"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	SourceType     string     `json:"source_type"`
}

// Occurrence is a dated, signed cash-flow entry produced by expanding a
// recurring template into a concrete month. Occurrences are ephemeral:
// they are either aggregated into projections or materialized into real
// transactions, never stored as-is.
type Occurrence struct {
	Date           time.Time
	Description    string
	Amount         float64
	Type           string
	CategoryID     *string
	CategoryLegacy string
	SourceType     string
	Source         string // always SourceRecurring for template expansion
}
