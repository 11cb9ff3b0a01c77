// Package scheduler runs the periodic recurring-transaction materialization
// job.
package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ViniciusBranco/financial-planner-simulator/internal/service"
)

// Scheduler drives cron jobs against the transaction service.
type Scheduler struct {
	cron               *cron.Cron
	transactionService *service.TransactionService
}

// New creates a Scheduler. Jobs are registered by Start.
func New(transactionService *service.TransactionService) *Scheduler {
	return &Scheduler{
		cron:               cron.New(),
		transactionService: transactionService,
	}
}

// Start registers the materialization job under the given cron expression
// and launches the scheduler. An empty expression disables scheduling.
func (s *Scheduler) Start(materializeCron string) error {
	if materializeCron == "" {
		return nil
	}

	_, err := s.cron.AddFunc(materializeCron, s.materialize)
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("Scheduled recurring materialization: %s", materializeCron)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// materialize converts the current month's recurring template occurrences
// into stored transactions. Re-running within the same month appends again,
// so the cron expression should fire at most once per month.
func (s *Scheduler) materialize() {
	now := time.Now()
	created, _, err := s.transactionService.MaterializeMonth(now.Year(), now.Month())
	if err != nil {
		log.Printf("Recurring materialization failed: %v", err)
		return
	}
	log.Printf("Materialized %d recurring transactions for %s", created, now.Format("2006-01"))
}
