package service

import (
	"sort"
	"time"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/model"
	"github.com/ViniciusBranco/financial-planner-simulator/internal/repository"
)

// AnalyticsService computes historical spending statistics used to seed
// variable-spend estimates.
type AnalyticsService struct {
	transactionRepo *repository.TransactionRepository
}

// NewAnalyticsService creates a new AnalyticsService with the provided repository.
func NewAnalyticsService(transactionRepo *repository.TransactionRepository) *AnalyticsService {
	return &AnalyticsService{transactionRepo: transactionRepo}
}

// AverageSpending returns the mean and median of the last N complete months
// of expense spend for a source. The current month is excluded because it is
// still accumulating. Totals are reported as positive magnitudes; months with
// no spend at all carry no data point and shrink the sample.
func (s *AnalyticsService) AverageSpending(source string, months int, now time.Time) (model.SpendingStats, error) {
	if months < 1 {
		months = defaultSpendingWindow
	}
	if source == "" {
		source = model.SourceXPCard
	}

	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, -months, 0)

	totals, err := s.transactionRepo.MonthlySpendTotals(source, start, end)
	if err != nil {
		return model.SpendingStats{}, err
	}

	history := make([]float64, 0, len(totals))
	for _, total := range totals {
		if total < 0 {
			total = -total
		}
		history = append(history, round(total))
	}

	return model.SpendingStats{
		Source:  source,
		Months:  months,
		Count:   len(history),
		Average: round(mean(history)),
		Median:  round(median(history)),
		History: history,
	}, nil
}

// defaultSpendingWindow is the lookback used when the caller does not ask
// for a specific number of months.
const defaultSpendingWindow = 12

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
