package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
)

// RecurringRepository provides data access methods for the
// recurring_transaction table.
type RecurringRepository struct {
	db *sql.DB
}

// NewRecurringRepository creates a new RecurringRepository with the provided database connection.
func NewRecurringRepository(db *sql.DB) *RecurringRepository {
	return &RecurringRepository{db: db}
}

const recurringColumns = `
	id, description, amount, type, category_id, category_legacy,
	is_active, day_of_month, start_date, end_date, source_type
`

// List retrieves all recurring templates, active or not.
func (r *RecurringRepository) List() ([]model.RecurringTemplate, error) {
	return r.list("SELECT " + recurringColumns + " FROM recurring_transaction ORDER BY description")
}

// ListActive retrieves only templates with is_active set. Projection and
// materialization operate on this subset.
func (r *RecurringRepository) ListActive() ([]model.RecurringTemplate, error) {
	return r.list("SELECT " + recurringColumns + " FROM recurring_transaction WHERE is_active = TRUE ORDER BY description")
}

func (r *RecurringRepository) list(query string) ([]model.RecurringTemplate, error) {
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring transactions: %w", err)
	}
	defer rows.Close()

	var templates []model.RecurringTemplate
	for rows.Next() {
		t, err := scanRecurring(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring transactions: %w", err)
	}

	return templates, nil
}

// Get retrieves a single recurring template by ID.
// Returns sql.ErrNoRows if no template exists with the given ID.
func (r *RecurringRepository) Get(id string) (model.RecurringTemplate, error) {
	row := r.db.QueryRow("SELECT "+recurringColumns+" FROM recurring_transaction WHERE id = ?", id)
	return scanRecurring(row)
}

// Create inserts a new recurring template.
func (r *RecurringRepository) Create(t model.RecurringTemplate) error {
	query := `
		INSERT INTO recurring_transaction
			(id, description, amount, type, category_id, category_legacy,
			 is_active, day_of_month, start_date, end_date, source_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		t.ID, t.Description, t.Amount, t.Type, t.CategoryID,
		nullIfEmpty(t.CategoryLegacy), t.IsActive, t.DayOfMonth,
		formatDate(t.StartDate), nullableDate(t.EndDate), t.SourceType,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recurring transaction: %w", err)
	}
	return nil
}

// Update replaces the fields of an existing recurring template.
// Returns sql.ErrNoRows if no template exists with the given ID.
func (r *RecurringRepository) Update(t model.RecurringTemplate) error {
	query := `
		UPDATE recurring_transaction
		SET description = ?, amount = ?, type = ?, category_id = ?,
			category_legacy = ?, is_active = ?, day_of_month = ?,
			start_date = ?, end_date = ?, source_type = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		t.Description, t.Amount, t.Type, t.CategoryID,
		nullIfEmpty(t.CategoryLegacy), t.IsActive, t.DayOfMonth,
		formatDate(t.StartDate), nullableDate(t.EndDate), t.SourceType, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update recurring transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a recurring template by ID.
// Returns sql.ErrNoRows if no template exists with the given ID.
func (r *RecurringRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM recurring_transaction WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete recurring transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanRecurring(row rowScanner) (model.RecurringTemplate, error) {
	var t model.RecurringTemplate
	var startDateStr string
	var categoryID, categoryLegacy, endDateStr sql.NullString

	err := row.Scan(
		&t.ID, &t.Description, &t.Amount, &t.Type, &categoryID,
		&categoryLegacy, &t.IsActive, &t.DayOfMonth, &startDateStr,
		&endDateStr, &t.SourceType,
	)
	if err != nil {
		return model.RecurringTemplate{}, fmt.Errorf("failed to scan recurring transaction: %w", err)
	}

	if t.StartDate, err = ParseTime(startDateStr); err != nil {
		return model.RecurringTemplate{}, err
	}
	if categoryID.Valid {
		t.CategoryID = &categoryID.String
	}
	t.CategoryLegacy = categoryLegacy.String
	if endDateStr.Valid {
		endDate, err := ParseTime(endDateStr.String)
		if err != nil {
			return model.RecurringTemplate{}, err
		}
		t.EndDate = &endDate
	}

	return t, nil
}

// nullableDate maps a nil time pointer to NULL for optional DATE columns.
func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatDate(*t)
}
