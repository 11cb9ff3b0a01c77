package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/api/request"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/api/response"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/apperrors"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/service"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// ListTransactions handles GET requests to retrieve a filtered, paginated
// transaction listing.
//
// Endpoint: GET /api/transactions?month=&year=&category=&search=&source_type=&is_recurring=&skip=&limit=
// Response: 200 OK with TransactionList
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filter := model.TransactionFilter{
		Month:      queryInt(r, "month", 0),
		Year:       queryInt(r, "year", 0),
		Category:   r.URL.Query().Get("category"),
		Search:     r.URL.Query().Get("search"),
		SourceType: r.URL.Query().Get("source_type"),
		Skip:       queryInt(r, "skip", 0),
		Limit:      queryInt(r, "limit", 0),
	}
	if raw := r.URL.Query().Get("is_recurring"); raw != "" {
		recurring := raw == "true" || raw == "1"
		filter.IsRecurring = &recurring
	}

	list, err := h.transactionService.List(filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, list)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transactions/{uuid}
// Response: 200 OK with Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.transactionService.Get(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to create a new transaction.
// Validates the request body and creates a transaction record in the database.
//
// Endpoint: POST /api/transactions
// Request Body: CreateTransactionRequest (date, description, amount, type, ...)
// Response: 201 Created with the transaction and its invalidation tags
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, tags, err := h.transactionService.Create(transactionFromCreate(req))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondMutation(w, http.StatusCreated, transaction, tags)
}

// UpdateTransaction handles PUT requests to update an existing transaction.
// Fields omitted from the body keep their stored values.
//
// Endpoint: PUT /api/transactions/{uuid}
// Request Body: UpdateTransactionRequest (all fields optional)
// Response: 200 OK with the updated transaction and its invalidation tags
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if update fails
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	existing, err := h.transactionService.Get(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), err.Error())
		return
	}

	applyTransactionUpdate(&existing, req)

	transaction, tags, err := h.transactionService.Update(existing)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update transaction", err.Error())
		return
	}

	response.RespondMutation(w, http.StatusOK, transaction, tags)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
//
// Endpoint: DELETE /api/transactions/{uuid}
// Response: 200 OK with the invalidation tags
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	tags, err := h.transactionService.Delete(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", err.Error())
		return
	}

	response.RespondMutation(w, http.StatusOK, nil, tags)
}

// BulkDeleteTransactions handles POST requests to remove a batch of transactions.
//
// Endpoint: POST /api/transactions/bulk-delete
// Request Body: BulkDeleteTransactionsRequest (ids)
// Response: 200 OK with the invalidation tags
// Error: 400 Bad Request if the body is invalid or any ID is not a UUID
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) BulkDeleteTransactions(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.BulkDeleteTransactionsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUUIDs(req.IDs); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	tags, err := h.transactionService.BulkDelete(req.IDs)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to delete transactions", err.Error())
		return
	}

	response.RespondMutation(w, http.StatusOK, nil, tags)
}

// MaterializeMonth handles POST requests to convert the month's recurring
// template occurrences into stored transactions.
//
// Endpoint: POST /api/transactions/materialize?year=&month=
// Response: 200 OK with the created count and invalidation tags
// Error: 500 Internal Server Error if materialization fails
func (h *TransactionHandler) MaterializeMonth(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := queryInt(r, "year", now.Year())
	month := time.Month(queryInt(r, "month", int(now.Month())))

	created, tags, err := h.transactionService.MaterializeMonth(year, month)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to materialize recurring transactions", err.Error())
		return
	}

	response.RespondMutation(w, http.StatusOK, map[string]int{"created": created}, tags)
}

func transactionFromCreate(req request.CreateTransactionRequest) model.Transaction {
	date, _ := parseDate(req.Date)
	referenceDate, _ := parseDate(req.ReferenceDate)

	return model.Transaction{
		Date:             date,
		ReferenceDate:    referenceDate,
		Description:      req.Description,
		Amount:           req.Amount,
		Type:             req.Type,
		CategoryID:       req.CategoryID,
		CategoryLegacy:   req.Category,
		SourceType:       req.SourceType,
		IsRecurring:      req.IsRecurring,
		InstallmentN:     req.InstallmentN,
		InstallmentTotal: req.InstallmentTotal,
	}
}

func applyTransactionUpdate(t *model.Transaction, req request.UpdateTransactionRequest) {
	if req.Date != nil {
		date, _ := parseDate(*req.Date)
		t.Date = date
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Amount != nil {
		t.Amount = service.NormalizeAmount(*req.Amount, t.Type)
	}
	if req.Type != nil {
		t.Type = *req.Type
		t.Amount = service.NormalizeAmount(t.Amount, t.Type)
	}
	if req.CategoryID != nil {
		t.CategoryID = req.CategoryID
	}
	if req.Category != nil {
		t.CategoryLegacy = *req.Category
	}
	if req.SourceType != nil {
		t.SourceType = *req.SourceType
	}
}
