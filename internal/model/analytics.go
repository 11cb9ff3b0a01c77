package model

// SpendingStats summarizes historical monthly spend for one source. History
// holds positive monthly magnitudes for the sampled window; Count is the
// number of months that actually had spend, which can be smaller than the
// requested window.
type SpendingStats struct {
	Source  string    `json:"source"`
	Months  int       `json:"months"`
	Count   int       `json:"count"`
	Average float64   `json:"average"`
	Median  float64   `json:"median"`
	History []float64 `json:"history"`
}
