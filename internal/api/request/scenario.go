package request

type CreateScenarioRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type AddScenarioItemRequest struct {
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	Type         string  `json:"type"`
	StartDate    string  `json:"start_date"`
	Installments int     `json:"installments,omitempty"`
	IsRecurring  bool    `json:"is_recurring,omitempty"`
	SourceType   string  `json:"source_type,omitempty"`
}

// MatrixRow mirrors one edited row of the client-side simulation grid.
// Values are raw signed per-month amounts, one slot per projected month.
type MatrixRow struct {
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	Source string    `json:"source"`
	Values []float64 `json:"values"`
}

type SaveMatrixRequest struct {
	Name    string      `json:"name"`
	Headers []string    `json:"headers"`
	Rows    []MatrixRow `json:"rows"`
}

type ProjectVariableSpendRequest struct {
	Estimate float64 `json:"estimate"`
}
