package model

// SimulationItem is one row of the forward projection: a named, typed cash
// flow with one signed value per projected month (index 0 = next calendar
// month). Source tags the row origin (RECURRING, INSTALLMENT, MANUAL or a
// statement source).
type SimulationItem struct {
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	Values []float64 `json:"values"`
	Source string    `json:"source"`
}

// SimulationProjection is the server-computed baseline (plus optional
// scenario overlay) feed consumed by the simulation matrix.
type SimulationProjection struct {
	MonthHeaders []string         `json:"month_headers"`
	Items        []SimulationItem `json:"items"`
}
