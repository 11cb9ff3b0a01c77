package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
)

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	// Simple creation with defaults
//	tx := testutil.NewTransaction().Build(t, db)
//
//	// Customized transaction
//	tx := testutil.NewTransaction().
//	    WithDescription("Mercado").
//	    WithAmount(-250).
//	    WithSourceType(model.SourceXPCard).
//	    Build(t, db)
type TransactionBuilder struct {
	ID               string
	Date             time.Time
	ReferenceDate    time.Time
	Description      string
	Amount           float64
	Type             string
	CategoryLegacy   string
	SourceType       string
	IsRecurring      bool
	InstallmentN     *int
	InstallmentTotal *int
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction() *TransactionBuilder {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	return &TransactionBuilder{
		ID:            MakeID(),
		Date:          date,
		ReferenceDate: date,
		Description:   MakeDescription("Test Transaction"),
		Amount:        -100,
		Type:          model.TypeExpense,
		SourceType:    model.SourceXPAccount,
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithDate sets the posting date and, unless overridden, the reference date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	b.ReferenceDate = date
	return b
}

// WithReferenceDate sets the billing-cycle reference date.
func (b *TransactionBuilder) WithReferenceDate(date time.Time) *TransactionBuilder {
	b.ReferenceDate = date
	return b
}

// WithDescription sets a custom description.
func (b *TransactionBuilder) WithDescription(desc string) *TransactionBuilder {
	b.Description = desc
	return b
}

// WithAmount sets the signed amount.
func (b *TransactionBuilder) WithAmount(amount float64) *TransactionBuilder {
	b.Amount = amount
	return b
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(txType string) *TransactionBuilder {
	b.Type = txType
	return b
}

// WithCategory sets the legacy category label.
func (b *TransactionBuilder) WithCategory(category string) *TransactionBuilder {
	b.CategoryLegacy = category
	return b
}

// WithSourceType sets the statement source.
func (b *TransactionBuilder) WithSourceType(source string) *TransactionBuilder {
	b.SourceType = source
	return b
}

// Recurring marks the transaction as materialized from a recurring template.
func (b *TransactionBuilder) Recurring() *TransactionBuilder {
	b.IsRecurring = true
	b.SourceType = model.SourceRecurring
	return b
}

// WithInstallment sets the installment position (n of total).
func (b *TransactionBuilder) WithInstallment(n, total int) *TransactionBuilder {
	b.InstallmentN = &n
	b.InstallmentTotal = &total
	b.SourceType = model.SourceXPCard
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO transactions (id, date, reference_date, description, amount, type,
			category_legacy, source_type, is_recurring, installment_n, installment_total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID,
		b.Date.Format("2006-01-02"),
		b.ReferenceDate.Format("2006-01-02"),
		b.Description,
		b.Amount,
		b.Type,
		b.CategoryLegacy,
		b.SourceType,
		b.IsRecurring,
		b.InstallmentN,
		b.InstallmentTotal,
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:               b.ID,
		Date:             b.Date,
		ReferenceDate:    b.ReferenceDate,
		Description:      b.Description,
		Amount:           b.Amount,
		Type:             b.Type,
		CategoryLegacy:   b.CategoryLegacy,
		SourceType:       b.SourceType,
		IsRecurring:      b.IsRecurring,
		InstallmentN:     b.InstallmentN,
		InstallmentTotal: b.InstallmentTotal,
	}
}

// RecurringBuilder provides a fluent interface for creating test recurring templates.
//
// Example usage:
//
//	template := testutil.NewRecurring().
//	    WithDescription("Aluguel").
//	    WithAmount(-1200).
//	    WithDayOfMonth(5).
//	    Build(t, db)
type RecurringBuilder struct {
	ID          string
	Description string
	Amount      float64
	Type        string
	IsActive    bool
	DayOfMonth  int
	StartDate   time.Time
	EndDate     *time.Time
	SourceType  string
}

// NewRecurring creates a RecurringBuilder with sensible defaults.
func NewRecurring() *RecurringBuilder {
	return &RecurringBuilder{
		ID:          MakeID(),
		Description: MakeDescription("Test Recurring"),
		Amount:      -100,
		Type:        model.TypeExpense,
		IsActive:    true,
		DayOfMonth:  5,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		SourceType:  model.SourceXPAccount,
	}
}

// WithDescription sets a custom description.
func (b *RecurringBuilder) WithDescription(desc string) *RecurringBuilder {
	b.Description = desc
	return b
}

// WithAmount sets the signed amount.
func (b *RecurringBuilder) WithAmount(amount float64) *RecurringBuilder {
	b.Amount = amount
	return b
}

// WithType sets the template type.
func (b *RecurringBuilder) WithType(txType string) *RecurringBuilder {
	b.Type = txType
	return b
}

// WithDayOfMonth sets the scheduled day of month.
func (b *RecurringBuilder) WithDayOfMonth(day int) *RecurringBuilder {
	b.DayOfMonth = day
	return b
}

// WithStartDate sets the start of the active window.
func (b *RecurringBuilder) WithStartDate(date time.Time) *RecurringBuilder {
	b.StartDate = date
	return b
}

// WithEndDate sets the end of the active window.
func (b *RecurringBuilder) WithEndDate(date time.Time) *RecurringBuilder {
	b.EndDate = &date
	return b
}

// Inactive marks the template as disabled.
func (b *RecurringBuilder) Inactive() *RecurringBuilder {
	b.IsActive = false
	return b
}

// Build creates the template in the database and returns it.
func (b *RecurringBuilder) Build(t *testing.T, db *sql.DB) model.RecurringTemplate {
	t.Helper()

	var endDate any
	if b.EndDate != nil {
		endDate = b.EndDate.Format("2006-01-02")
	}

	query := `
		INSERT INTO recurring_transaction (id, description, amount, type, is_active,
			day_of_month, start_date, end_date, source_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID,
		b.Description,
		b.Amount,
		b.Type,
		b.IsActive,
		b.DayOfMonth,
		b.StartDate.Format("2006-01-02"),
		endDate,
		b.SourceType,
	)
	if err != nil {
		t.Fatalf("Failed to create test recurring template: %v", err)
	}

	return model.RecurringTemplate{
		ID:          b.ID,
		Description: b.Description,
		Amount:      b.Amount,
		Type:        b.Type,
		IsActive:    b.IsActive,
		DayOfMonth:  b.DayOfMonth,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		SourceType:  b.SourceType,
	}
}

// CreateScenario creates a scenario row and returns it.
func CreateScenario(t *testing.T, db *sql.DB, name string) model.Scenario {
	t.Helper()

	result, err := db.Exec(`INSERT INTO scenario (name, description) VALUES (?, ?)`, name, "")
	if err != nil {
		t.Fatalf("Failed to create test scenario: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get scenario ID: %v", err)
	}

	return model.Scenario{ID: id, Name: name, Items: []model.ScenarioItem{}}
}

// CreateScenarioItem creates one scenario item row and returns it.
func CreateScenarioItem(t *testing.T, db *sql.DB, scenarioID int64, item model.ScenarioItem) model.ScenarioItem {
	t.Helper()

	if item.Installments < 1 {
		item.Installments = 1
	}
	if item.SourceType == "" {
		item.SourceType = model.SourceManual
	}

	result, err := db.Exec(`
		INSERT INTO scenario_item (scenario_id, description, amount, type, start_date,
			installments, is_recurring, source_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		scenarioID,
		item.Description,
		item.Amount,
		item.Type,
		item.StartDate.Format("2006-01-02"),
		item.Installments,
		item.IsRecurring,
		item.SourceType,
	)
	if err != nil {
		t.Fatalf("Failed to create test scenario item: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get scenario item ID: %v", err)
	}

	item.ID = id
	item.ScenarioID = scenarioID
	return item
}
