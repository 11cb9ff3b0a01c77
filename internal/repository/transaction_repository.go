package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
)

// invoiceSettlementFilter excludes credit-card invoice settlements from
// economic aggregates. These entries are balance transfers between the
// account and the card: counting them would distort both the source total
// and the card's true spend.
const invoiceSettlementFilter = "LOWER(description) NOT LIKE '%pagamento de fatura%'"

// TransactionRepository provides data access methods for the transactions table.
// It handles filtered listings, mutations and the aggregate queries behind the
// dashboard and analytics views.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `
	t.id, t.date, t.reference_date, t.description, t.amount, t.type,
	t.category_id, t.category_legacy, c.name, t.source_type, t.is_recurring,
	t.installment_n, t.installment_total, t.created_at
`

// List retrieves transactions matching the filter, newest first, along with
// the total count before pagination. Month and year filters apply to the
// reference date, which anchors card purchases to their statement month.
func (r *TransactionRepository) List(filter model.TransactionFilter) ([]model.Transaction, int, error) {
	var conditions []string
	var args []any

	if filter.Month != 0 {
		conditions = append(conditions, "CAST(strftime('%m', t.reference_date) AS INTEGER) = ?")
		args = append(args, filter.Month)
	}
	if filter.Year != 0 {
		conditions = append(conditions, "CAST(strftime('%Y', t.reference_date) AS INTEGER) = ?")
		args = append(args, filter.Year)
	}
	if filter.Category != "" {
		conditions = append(conditions, "(t.category_legacy = ? OR c.name = ?)")
		args = append(args, filter.Category, filter.Category)
	}
	if filter.Search != "" {
		conditions = append(conditions, "t.description LIKE ?")
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.IsRecurring != nil {
		conditions = append(conditions, "t.is_recurring = ?")
		args = append(args, *filter.IsRecurring)
	}
	if filter.SourceType != "" {
		conditions = append(conditions, "t.source_type = ?")
		args = append(args, filter.SourceType)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	from := `
		FROM transactions t
		LEFT JOIN category c ON t.category_id = c.id
	` + where

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*)"+from, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := "SELECT " + transactionColumns + from + " ORDER BY t.date DESC LIMIT ? OFFSET ?"
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, filter.Skip)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var items []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating transactions: %w", err)
	}

	return items, total, nil
}

// Get retrieves a single transaction by ID.
// Returns sql.ErrNoRows if no transaction exists with the given ID.
func (r *TransactionRepository) Get(id string) (model.Transaction, error) {
	query := "SELECT " + transactionColumns + `
		FROM transactions t
		LEFT JOIN category c ON t.category_id = c.id
		WHERE t.id = ?
	`
	row := r.db.QueryRow(query, id)
	return scanTransaction(row)
}

// Create inserts a new transaction.
func (r *TransactionRepository) Create(t model.Transaction) error {
	query := `
		INSERT INTO transactions
			(id, date, reference_date, description, amount, type, category_id,
			 category_legacy, source_type, is_recurring, installment_n, installment_total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		t.ID, formatDate(t.Date), formatDate(t.ReferenceDate), t.Description,
		t.Amount, t.Type, t.CategoryID, nullIfEmpty(t.CategoryLegacy),
		t.SourceType, t.IsRecurring, t.InstallmentN, t.InstallmentTotal,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// CreateBatch inserts a set of transactions inside a single SQL transaction.
// Either all rows are inserted or none are.
func (r *TransactionRepository) CreateBatch(transactions []model.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO transactions
			(id, date, reference_date, description, amount, type, category_id,
			 category_legacy, source_type, is_recurring, installment_n, installment_total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range transactions {
		_, err := stmt.Exec(
			t.ID, formatDate(t.Date), formatDate(t.ReferenceDate), t.Description,
			t.Amount, t.Type, t.CategoryID, nullIfEmpty(t.CategoryLegacy),
			t.SourceType, t.IsRecurring, t.InstallmentN, t.InstallmentTotal,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction batch: %w", err)
		}
	}

	return tx.Commit()
}

// Update replaces the mutable fields of an existing transaction.
// Returns sql.ErrNoRows if no transaction exists with the given ID.
func (r *TransactionRepository) Update(t model.Transaction) error {
	query := `
		UPDATE transactions
		SET date = ?, reference_date = ?, description = ?, amount = ?, type = ?,
			category_id = ?, category_legacy = ?, source_type = ?, is_recurring = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		formatDate(t.Date), formatDate(t.ReferenceDate), t.Description, t.Amount,
		t.Type, t.CategoryID, nullIfEmpty(t.CategoryLegacy), t.SourceType,
		t.IsRecurring, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
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

// Delete removes a transaction by ID.
// Returns sql.ErrNoRows if no transaction exists with the given ID.
func (r *TransactionRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
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

// BulkDelete removes all transactions with the given IDs. IDs that do not
// exist are silently ignored.
func (r *TransactionRepository) BulkDelete(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := "DELETE FROM transactions WHERE id IN (" + strings.Join(placeholders, ",") + ")"
	if _, err := r.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to bulk delete transactions: %w", err)
	}
	return nil
}

// MonthlyFlows returns per-month income and expense totals for a year,
// keyed by month number. TRANSFER rows and invoice settlements are excluded.
// Months with no data are absent from the map.
func (r *TransactionRepository) MonthlyFlows(year int) (map[int]model.MonthlyFlow, error) {
	query := `
		SELECT CAST(strftime('%m', reference_date) AS INTEGER) AS month,
			SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END) AS income,
			SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END) AS expense
		FROM transactions
		WHERE CAST(strftime('%Y', reference_date) AS INTEGER) = ?
			AND type IN ('INCOME', 'EXPENSE')
			AND ` + invoiceSettlementFilter + `
		GROUP BY month
		ORDER BY month
	`

	rows, err := r.db.Query(query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly flows: %w", err)
	}
	defer rows.Close()

	flows := make(map[int]model.MonthlyFlow)
	for rows.Next() {
		var f model.MonthlyFlow
		if err := rows.Scan(&f.Month, &f.Income, &f.Expense); err != nil {
			return nil, fmt.Errorf("failed to scan monthly flow: %w", err)
		}
		flows[f.Month] = f
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly flows: %w", err)
	}

	return flows, nil
}

// SourceTotals returns the signed amount total per source type for a year,
// optionally narrowed to one month. Invoice settlements are excluded.
func (r *TransactionRepository) SourceTotals(year, month int) (map[string]float64, error) {
	query := `
		SELECT source_type, SUM(amount)
		FROM transactions
		WHERE CAST(strftime('%Y', reference_date) AS INTEGER) = ?
			AND ` + invoiceSettlementFilter
	args := []any{year}
	if month != 0 {
		query += " AND CAST(strftime('%m', reference_date) AS INTEGER) = ?"
		args = append(args, month)
	}
	query += " GROUP BY source_type"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query source totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var source string
		var total float64
		if err := rows.Scan(&source, &total); err != nil {
			return nil, fmt.Errorf("failed to scan source total: %w", err)
		}
		totals[source] = total
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source totals: %w", err)
	}

	return totals, nil
}

// CategoryTotals returns signed totals per (category, type) for a year,
// optionally narrowed to one month. The category name falls back from the
// linked category to the legacy string to "Uncategorized". TRANSFER rows are
// excluded. Results are ordered by total ascending, so the largest expenses
// come first.
func (r *TransactionRepository) CategoryTotals(year, month int) ([]model.CategoryBreakdown, error) {
	query := `
		SELECT COALESCE(c.name, t.category_legacy, 'Uncategorized') AS name,
			t.type, SUM(t.amount) AS value
		FROM transactions t
		LEFT JOIN category c ON t.category_id = c.id
		WHERE CAST(strftime('%Y', t.reference_date) AS INTEGER) = ?
			AND t.type != 'TRANSFER'
	`
	args := []any{year}
	if month != 0 {
		query += " AND CAST(strftime('%m', t.reference_date) AS INTEGER) = ?"
		args = append(args, month)
	}
	query += " GROUP BY name, t.type ORDER BY SUM(t.amount)"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	defer rows.Close()

	var breakdown []model.CategoryBreakdown
	for rows.Next() {
		var b model.CategoryBreakdown
		if err := rows.Scan(&b.Name, &b.Type, &b.Value); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		breakdown = append(breakdown, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}

	return breakdown, nil
}

// SumBySources returns the signed amount total across the given source types
// for a year. Invoice settlements are included: they move real money between
// the account and the card, so cash and debt positions must count them.
func (r *TransactionRepository) SumBySources(year int, sources []string) (float64, error) {
	if len(sources) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(sources))
	args := []any{year}
	for i, s := range sources {
		placeholders[i] = "?"
		args = append(args, s)
	}

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE CAST(strftime('%Y', reference_date) AS INTEGER) = ?
			AND source_type IN (` + strings.Join(placeholders, ",") + `)
	`

	var total float64
	if err := r.db.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum by sources: %w", err)
	}
	return total, nil
}

// MonthlySpendTotals returns one signed expense total per calendar month for
// the given source within [start, end). Months without expenses are omitted.
func (r *TransactionRepository) MonthlySpendTotals(source string, start, end time.Time) ([]float64, error) {
	query := `
		SELECT strftime('%Y-%m', reference_date) AS ym, SUM(amount)
		FROM transactions
		WHERE source_type = ?
			AND type = 'EXPENSE'
			AND reference_date >= ?
			AND reference_date < ?
		GROUP BY ym
		ORDER BY ym
	`

	rows, err := r.db.Query(query, source, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly spend: %w", err)
	}
	defer rows.Close()

	var totals []float64
	for rows.Next() {
		var ym string
		var total float64
		if err := rows.Scan(&ym, &total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly spend: %w", err)
		}
		totals = append(totals, total)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly spend: %w", err)
	}

	return totals, nil
}

// ListInstallments retrieves multi-installment transactions dated on or after
// the cutoff. Used to infer which installment plans still have occurrences
// left to project.
func (r *TransactionRepository) ListInstallments(cutoff time.Time) ([]model.Transaction, error) {
	query := "SELECT " + transactionColumns + `
		FROM transactions t
		LEFT JOIN category c ON t.category_id = c.id
		WHERE t.installment_total > 1
			AND t.installment_n IS NOT NULL
			AND t.date >= ?
		ORDER BY t.date ASC
	`

	rows, err := r.db.Query(query, formatDate(cutoff))
	if err != nil {
		return nil, fmt.Errorf("failed to query installments: %w", err)
	}
	defer rows.Close()

	var items []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating installments: %w", err)
	}

	return items, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var dateStr, refDateStr string
	var categoryID, categoryLegacy, categoryName, createdAt sql.NullString
	var installmentN, installmentTotal sql.NullInt64

	err := row.Scan(
		&t.ID, &dateStr, &refDateStr, &t.Description, &t.Amount, &t.Type,
		&categoryID, &categoryLegacy, &categoryName, &t.SourceType,
		&t.IsRecurring, &installmentN, &installmentTotal, &createdAt,
	)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction: %w", err)
	}

	if t.Date, err = ParseTime(dateStr); err != nil {
		return model.Transaction{}, err
	}
	if t.ReferenceDate, err = ParseTime(refDateStr); err != nil {
		return model.Transaction{}, err
	}
	if categoryID.Valid {
		t.CategoryID = &categoryID.String
	}
	t.CategoryLegacy = categoryLegacy.String
	t.CategoryName = categoryName.String
	if installmentN.Valid {
		n := int(installmentN.Int64)
		t.InstallmentN = &n
	}
	if installmentTotal.Valid {
		n := int(installmentTotal.Int64)
		t.InstallmentTotal = &n
	}
	if createdAt.Valid {
		// created_at uses SQLite's CURRENT_TIMESTAMP format; ignore parse
		// failures since the field is informational.
		if ts, err := time.Parse("2006-01-02 15:04:05", createdAt.String); err == nil {
			t.CreatedAt = ts
		}
	}

	return t, nil
}

// nullIfEmpty maps an empty string to NULL for optional text columns.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
