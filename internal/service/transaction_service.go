package service

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/apperrors"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/repository"
)

// TransactionService handles transaction listing and mutation, plus the
// materialization of recurring templates into real transactions for a month.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	recurringRepo   *repository.RecurringRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	recurringRepo *repository.RecurringRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		recurringRepo:   recurringRepo,
	}
}

// List retrieves transactions matching the filter with pagination metadata.
func (s *TransactionService) List(filter model.TransactionFilter) (model.TransactionList, error) {
	items, total, err := s.transactionRepo.List(filter)
	if err != nil {
		return model.TransactionList{}, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if items == nil {
		items = []model.Transaction{}
	}

	return model.TransactionList{
		Items: items,
		Total: total,
		Page:  (filter.Skip / limit) + 1,
		Size:  limit,
	}, nil
}

// Get retrieves a single transaction by ID.
func (s *TransactionService) Get(id string) (model.Transaction, error) {
	t, err := s.transactionRepo.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	return t, err
}

// Create stores a new transaction. The amount sign is normalized to the
// type, and the reference date falls back to the transaction date.
func (s *TransactionService) Create(t model.Transaction) (model.Transaction, []model.ResourceTag, error) {
	t.ID = uuid.New().String()
	t.Amount = NormalizeAmount(t.Amount, t.Type)
	if t.ReferenceDate.IsZero() {
		t.ReferenceDate = t.Date
	}
	if t.SourceType == "" {
		t.SourceType = model.SourceManual
	}

	if err := s.transactionRepo.Create(t); err != nil {
		return model.Transaction{}, nil, err
	}
	return t, []model.ResourceTag{model.TagTransactions, model.TagDashboard}, nil
}

// Update replaces the mutable fields of an existing transaction.
func (s *TransactionService) Update(t model.Transaction) (model.Transaction, []model.ResourceTag, error) {
	if err := s.transactionRepo.Update(t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Transaction{}, nil, apperrors.ErrTransactionNotFound
		}
		return model.Transaction{}, nil, err
	}
	return t, []model.ResourceTag{model.TagTransactions, model.TagDashboard}, nil
}

// Delete removes a transaction by ID.
func (s *TransactionService) Delete(id string) ([]model.ResourceTag, error) {
	if err := s.transactionRepo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, err
	}
	return []model.ResourceTag{model.TagTransactions, model.TagDashboard}, nil
}

// BulkDelete removes a set of transactions; missing IDs are ignored.
func (s *TransactionService) BulkDelete(ids []string) ([]model.ResourceTag, error) {
	if err := s.transactionRepo.BulkDelete(ids); err != nil {
		return nil, err
	}
	return []model.ResourceTag{model.TagTransactions, model.TagDashboard}, nil
}

// MaterializeMonth expands every active recurring template for the target
// month and persists the occurrences as real transactions tagged RECURRING.
// Returns the number of transactions created. Malformed templates are
// skipped inside the expansion, never failing the batch.
func (s *TransactionService) MaterializeMonth(year int, month time.Month) (int, []model.ResourceTag, error) {
	templates, err := s.recurringRepo.ListActive()
	if err != nil {
		return 0, nil, err
	}

	occurrences := ExpandTemplates(templates, year, month)
	if len(occurrences) == 0 {
		return 0, nil, nil
	}

	transactions := make([]model.Transaction, len(occurrences))
	for i, occ := range occurrences {
		transactions[i] = model.Transaction{
			ID:             uuid.New().String(),
			Date:           occ.Date,
			ReferenceDate:  occ.Date,
			Description:    occ.Description,
			Amount:         occ.Amount,
			Type:           occ.Type,
			CategoryID:     occ.CategoryID,
			CategoryLegacy: occ.CategoryLegacy,
			SourceType:     model.SourceRecurring,
			IsRecurring:    true,
		}
	}

	if err := s.transactionRepo.CreateBatch(transactions); err != nil {
		return 0, nil, err
	}

	return len(transactions), []model.ResourceTag{model.TagTransactions, model.TagDashboard}, nil
}
