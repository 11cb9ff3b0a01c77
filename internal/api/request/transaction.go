package request

type CreateTransactionRequest struct {
	Date             string  `json:"date"`
	ReferenceDate    string  `json:"reference_date,omitempty"`
	Description      string  `json:"description"`
	Amount           float64 `json:"amount"`
	Type             string  `json:"type"`
	CategoryID       *string `json:"category_id,omitempty"`
	Category         string  `json:"category,omitempty"`
	SourceType       string  `json:"source_type,omitempty"`
	IsRecurring      bool    `json:"is_recurring,omitempty"`
	InstallmentN     *int    `json:"installment_n,omitempty"`
	InstallmentTotal *int    `json:"installment_total,omitempty"`
}

type UpdateTransactionRequest struct {
	Date        *string  `json:"date,omitempty"`
	Description *string  `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Type        *string  `json:"type,omitempty"`
	CategoryID  *string  `json:"category_id,omitempty"`
	Category    *string  `json:"category,omitempty"`
	SourceType  *string  `json:"source_type,omitempty"`
}

type BulkDeleteTransactionsRequest struct {
	IDs []string `json:"ids"`
}
