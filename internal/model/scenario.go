package model

import "time"

// Scenario is a named delta layer of hypothetical entries applied on top of
// the baseline projection. Baseline recurring and installment rows are never
// duplicated into a scenario; they stay reproducible from their templates.
type Scenario struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Items       []ScenarioItem `json:"items"`
}

// ScenarioItem is one discrete dated entry inside a scenario. A recurring
// item repeats every month from StartDate onward; a finite item occupies
// Installments consecutive months starting at StartDate.
type ScenarioItem struct {
	ID           int64     `json:"id"`
	ScenarioID   int64     `json:"scenario_id"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	Type         string    `json:"type"`
	StartDate    time.Time `json:"start_date"`
	Installments int       `json:"installments"`
	IsRecurring  bool      `json:"is_recurring"`
	SourceType   string    `json:"source_type"`
}
