package apperrors

import (
	"errors"
	"fmt"
)

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrRecurringNotFound indicates that a recurring template with the given ID does not exist.
	ErrRecurringNotFound = errors.New("recurring transaction not found")

	// ErrScenarioNotFound indicates that a scenario with the given ID does not exist.
	ErrScenarioNotFound = errors.New("scenario not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidMonth indicates a month outside the 1-12 range.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrMalformedTemplate indicates a recurring template missing required
	// fields (such as its start date). Batch expansion skips such templates
	// rather than failing.
	ErrMalformedTemplate = errors.New("malformed recurring template")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data, rather than missing entities or validation issues.
var (
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToRetrieveRecurring    = errors.New("failed to retrieve recurring transactions")
	ErrFailedToRetrieveScenarios    = errors.New("failed to retrieve scenarios")
	ErrFailedToRetrieveScenario     = errors.New("failed to retrieve scenario")
	ErrFailedToGetSummary           = errors.New("failed to get dashboard summary")
	ErrFailedToGetBreakdown         = errors.New("failed to get dashboard breakdown")
	ErrFailedToGetHealth            = errors.New("failed to get financial health")
	ErrFailedToGetProjection        = errors.New("failed to get simulation projection")
	ErrFailedToGetAverageSpending   = errors.New("failed to get average spending")
)

// PartialSaveError reports a scenario save in which some item writes failed
// after the batch was dispatched. Writes are independent and are never rolled
// back: Written items remain persisted and the caller decides whether to keep
// or delete the partially-built scenario.
type PartialSaveError struct {
	ScenarioID int64
	Attempted  int
	Written    int
	Errs       []error
}

func (e *PartialSaveError) Error() string {
	return fmt.Sprintf("scenario %d: wrote %d of %d items (%d failed)",
		e.ScenarioID, e.Written, e.Attempted, e.Attempted-e.Written)
}

// Unwrap exposes the underlying write failures for errors.Is/As inspection.
func (e *PartialSaveError) Unwrap() []error {
	return e.Errs
}
