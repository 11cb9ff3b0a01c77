package model

import "time"

// Transaction type values. Amount sign follows the type: EXPENSE amounts are
// negative, INCOME amounts positive. TRANSFER amounts may carry either sign
// and are aggregated in their own bucket, never into income or expense.
const (
	TypeIncome   = "INCOME"
	TypeExpense  = "EXPENSE"
	TypeTransfer = "TRANSFER"
)

// Source type values identify where a transaction originated.
const (
	SourceXPAccount   = "XP_ACCOUNT"
	SourceXPCard      = "XP_CARD"
	SourceManual      = "MANUAL"
	SourceRecurring   = "RECURRING"
	SourceInstallment = "INSTALLMENT"
)

// Transaction represents a single bank or card statement entry.
// Used internally for calculations and as the API response shape.
type Transaction struct {
	ID               string     `json:"id"`
	Date             time.Time  `json:"date"`
	ReferenceDate    time.Time  `json:"reference_date"`
	Description      string     `json:"description"`
	Amount           float64    `json:"amount"`
	Type             string     `json:"type"`
	CategoryID       *string    `json:"category_id,omitempty"`
	CategoryLegacy   string     `json:"category_legacy,omitempty"`
	CategoryName     string     `json:"category_name,omitempty"`
	SourceType       string     `json:"source_type"`
	IsRecurring      bool       `json:"is_recurring"`
	InstallmentN     *int       `json:"installment_n,omitempty"`
	InstallmentTotal *int       `json:"installment_total,omitempty"`
	CreatedAt        time.Time  `json:"created_at,omitzero"`
}

// TransactionFilter narrows transaction list queries.
// Zero values mean "no filter" for that dimension.
type TransactionFilter struct {
	Month       int
	Year        int
	Category    string
	Search      string
	SourceType  string
	IsRecurring *bool
	Skip        int
	Limit       int
}

// TransactionList is a paginated transaction listing.
type TransactionList struct {
	Items []Transaction `json:"items"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
}
