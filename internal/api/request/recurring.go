package request

type CreateRecurringRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	CategoryID  *string `json:"category_id,omitempty"`
	Category    string  `json:"category,omitempty"`
	DayOfMonth  int     `json:"day_of_month"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	SourceType  string  `json:"source_type,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type UpdateRecurringRequest struct {
	Description *string  `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Type        *string  `json:"type,omitempty"`
	CategoryID  *string  `json:"category_id,omitempty"`
	Category    *string  `json:"category,omitempty"`
	DayOfMonth  *int     `json:"day_of_month,omitempty"`
	StartDate   *string  `json:"start_date,omitempty"`
	EndDate     *string  `json:"end_date,omitempty"`
	SourceType  *string  `json:"source_type,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}
