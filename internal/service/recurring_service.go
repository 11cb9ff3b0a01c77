package service

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/apperrors"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/repository"
)

// RecurringService manages recurring transaction templates and expands them
// into dated occurrences for projection and materialization.
type RecurringService struct {
	recurringRepo *repository.RecurringRepository
}

// NewRecurringService creates a new RecurringService with the provided repository dependency.
func NewRecurringService(recurringRepo *repository.RecurringRepository) *RecurringService {
	return &RecurringService{recurringRepo: recurringRepo}
}

// ListTemplates retrieves all recurring templates.
func (s *RecurringService) ListTemplates() ([]model.RecurringTemplate, error) {
	return s.recurringRepo.List()
}

// ListActiveTemplates retrieves only active templates.
func (s *RecurringService) ListActiveTemplates() ([]model.RecurringTemplate, error) {
	return s.recurringRepo.ListActive()
}

// CreateTemplate stores a new template. The amount sign is normalized to the
// template type before persisting, so callers may pass magnitudes.
func (s *RecurringService) CreateTemplate(t model.RecurringTemplate) (model.RecurringTemplate, []model.ResourceTag, error) {
	t.ID = uuid.New().String()
	t.Amount = NormalizeAmount(t.Amount, t.Type)
	if t.SourceType == "" {
		t.SourceType = model.SourceXPAccount
	}

	if err := s.recurringRepo.Create(t); err != nil {
		return model.RecurringTemplate{}, nil, err
	}
	return t, []model.ResourceTag{model.TagRecurring, model.TagSimulation}, nil
}

// UpdateTemplate replaces an existing template's fields.
func (s *RecurringService) UpdateTemplate(t model.RecurringTemplate) (model.RecurringTemplate, []model.ResourceTag, error) {
	t.Amount = NormalizeAmount(t.Amount, t.Type)

	if err := s.recurringRepo.Update(t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.RecurringTemplate{}, nil, apperrors.ErrRecurringNotFound
		}
		return model.RecurringTemplate{}, nil, err
	}
	return t, []model.ResourceTag{model.TagRecurring, model.TagSimulation}, nil
}

// DeleteTemplate removes a template by ID.
func (s *RecurringService) DeleteTemplate(id string) ([]model.ResourceTag, error) {
	if err := s.recurringRepo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrRecurringNotFound
		}
		return nil, err
	}
	return []model.ResourceTag{model.TagRecurring, model.TagSimulation}, nil
}

// GetTemplate retrieves a single template by ID.
func (s *RecurringService) GetTemplate(id string) (model.RecurringTemplate, error) {
	t, err := s.recurringRepo.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RecurringTemplate{}, apperrors.ErrRecurringNotFound
	}
	return t, err
}

// ExpandTemplate expands one template into its occurrence for the target
// month, if any. The occurrence date is the template's day-of-month clamped
// to the last valid day of the target month, so day 31 lands on the 30th of
// a 30-day month and on the 28th or 29th of February.
//
// A template yields an occurrence iff it is active and the target (year,
// month) falls inside the [start_date, end_date] window, compared at month
// granularity. The second return value reports whether an occurrence was
// produced.
//
// Templates without a start date are malformed and yield
// apperrors.ErrMalformedTemplate; batch callers skip them.
func ExpandTemplate(t model.RecurringTemplate, year int, month time.Month) (model.Occurrence, bool, error) {
	if t.StartDate.IsZero() {
		return model.Occurrence{}, false, apperrors.ErrMalformedTemplate
	}
	if !t.IsActive {
		return model.Occurrence{}, false, nil
	}
	if !windowContains(t.StartDate, t.EndDate, year, month) {
		return model.Occurrence{}, false, nil
	}

	day := t.DayOfMonth
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}

	return model.Occurrence{
		Date:           time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Description:    t.Description,
		Amount:         t.Amount,
		Type:           t.Type,
		CategoryID:     t.CategoryID,
		CategoryLegacy: t.CategoryLegacy,
		SourceType:     t.SourceType,
		Source:         model.SourceRecurring,
	}, true, nil
}

// ExpandTemplates expands a batch of templates for the target month.
// Malformed templates are logged and skipped rather than failing the batch.
func ExpandTemplates(templates []model.RecurringTemplate, year int, month time.Month) []model.Occurrence {
	occurrences := make([]model.Occurrence, 0, len(templates))
	for _, t := range templates {
		occ, ok, err := ExpandTemplate(t, year, month)
		if err != nil {
			log.Printf("Skipping recurring template %s (%q): %v", t.ID, t.Description, err)
			continue
		}
		if ok {
			occurrences = append(occurrences, occ)
		}
	}
	return occurrences
}

// NormalizeAmount forces the amount sign to match the transaction type:
// EXPENSE negative, INCOME positive. TRANSFER amounts keep their sign.
func NormalizeAmount(amount float64, txType string) float64 {
	switch txType {
	case model.TypeExpense:
		if amount > 0 {
			return -amount
		}
	case model.TypeIncome:
		if amount < 0 {
			return -amount
		}
	}
	return amount
}

// windowContains reports whether the target (year, month) lies inside the
// template validity window, compared at month granularity: a template
// starting mid-month still produces an occurrence for that whole month.
func windowContains(start time.Time, end *time.Time, year int, month time.Month) bool {
	if beforeMonth(year, month, start.Year(), start.Month()) {
		return false
	}
	if end != nil && beforeMonth(end.Year(), end.Month(), year, month) {
		return false
	}
	return true
}

// beforeMonth reports whether (y1, m1) is strictly before (y2, m2).
func beforeMonth(y1 int, m1 time.Month, y2 int, m2 time.Month) bool {
	if y1 != y2 {
		return y1 < y2
	}
	return m1 < m2
}

// daysInMonth returns the number of days in the given month, leap years
// included. Day 0 of the following month is the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
