package repository

import (
	"database/sql"
	"fmt"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
)

// ScenarioRepository provides data access methods for the scenario and
// scenario_item tables.
type ScenarioRepository struct {
	db *sql.DB
}

// NewScenarioRepository creates a new ScenarioRepository with the provided database connection.
func NewScenarioRepository(db *sql.DB) *ScenarioRepository {
	return &ScenarioRepository{db: db}
}

// List retrieves all scenarios with their items loaded.
func (r *ScenarioRepository) List() ([]model.Scenario, error) {
	rows, err := r.db.Query("SELECT id, name, COALESCE(description, '') FROM scenario ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []model.Scenario
	for rows.Next() {
		var s model.Scenario
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		scenarios = append(scenarios, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenarios: %w", err)
	}

	for i := range scenarios {
		items, err := r.ListItems(scenarios[i].ID)
		if err != nil {
			return nil, err
		}
		scenarios[i].Items = items
	}

	return scenarios, nil
}

// Get retrieves a single scenario with its items.
// Returns sql.ErrNoRows if no scenario exists with the given ID.
func (r *ScenarioRepository) Get(id int64) (model.Scenario, error) {
	var s model.Scenario
	err := r.db.QueryRow(
		"SELECT id, name, COALESCE(description, '') FROM scenario WHERE id = ?", id,
	).Scan(&s.ID, &s.Name, &s.Description)
	if err != nil {
		return model.Scenario{}, err
	}

	s.Items, err = r.ListItems(s.ID)
	if err != nil {
		return model.Scenario{}, err
	}
	return s, nil
}

// Create inserts a new scenario and returns it with its generated ID.
func (r *ScenarioRepository) Create(name, description string) (model.Scenario, error) {
	result, err := r.db.Exec(
		"INSERT INTO scenario (name, description) VALUES (?, ?)",
		name, nullIfEmpty(description),
	)
	if err != nil {
		return model.Scenario{}, fmt.Errorf("failed to insert scenario: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Scenario{}, fmt.Errorf("failed to read scenario id: %w", err)
	}

	return model.Scenario{ID: id, Name: name, Description: description, Items: []model.ScenarioItem{}}, nil
}

// Delete removes a scenario and, via cascade, its items.
// Returns sql.ErrNoRows if no scenario exists with the given ID.
func (r *ScenarioRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM scenario WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
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

// AddItem inserts a scenario item and returns it with its generated ID.
func (r *ScenarioRepository) AddItem(item model.ScenarioItem) (model.ScenarioItem, error) {
	result, err := r.db.Exec(`
		INSERT INTO scenario_item
			(scenario_id, description, amount, type, start_date, installments, is_recurring, source_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		item.ScenarioID, item.Description, item.Amount, item.Type,
		formatDate(item.StartDate), item.Installments, item.IsRecurring, item.SourceType,
	)
	if err != nil {
		return model.ScenarioItem{}, fmt.Errorf("failed to insert scenario item: %w", err)
	}
	item.ID, err = result.LastInsertId()
	if err != nil {
		return model.ScenarioItem{}, fmt.Errorf("failed to read scenario item id: %w", err)
	}
	return item, nil
}

// ListItems retrieves all items of a scenario ordered by start date.
func (r *ScenarioRepository) ListItems(scenarioID int64) ([]model.ScenarioItem, error) {
	rows, err := r.db.Query(`
		SELECT id, scenario_id, description, amount, type, start_date,
			installments, is_recurring, source_type
		FROM scenario_item
		WHERE scenario_id = ?
		ORDER BY start_date, id
	`, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenario items: %w", err)
	}
	defer rows.Close()

	items := []model.ScenarioItem{}
	for rows.Next() {
		var item model.ScenarioItem
		var startDateStr string
		err := rows.Scan(
			&item.ID, &item.ScenarioID, &item.Description, &item.Amount,
			&item.Type, &startDateStr, &item.Installments, &item.IsRecurring,
			&item.SourceType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario item: %w", err)
		}
		if item.StartDate, err = ParseTime(startDateStr); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenario items: %w", err)
	}

	return items, nil
}
