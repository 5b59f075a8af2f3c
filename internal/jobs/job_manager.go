// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3. The only job today is the order simulator,
// which keeps a demo board populated; JobManager exists so further jobs
// plug into the same start/stop lifecycle.
package jobs

import (
	"fmt"
	"log/slog"

	"kitchenboard/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	simulatorJob *OrderSimulatorJob
}

// NewJobManager creates a new job manager with all required jobs. An empty
// simulator schedule disables order simulation.
func NewJobManager(
	createOrderHandler *commands.CreateOrderCommandHandler,
	simulatorSpec string,
	logger *slog.Logger,
) *JobManager {
	manager := &JobManager{}
	if simulatorSpec != "" {
		manager.simulatorJob = NewOrderSimulatorJob(createOrderHandler, simulatorSpec, logger)
	}
	return manager
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.simulatorJob != nil {
		if err := jm.simulatorJob.Start(); err != nil {
			return fmt.Errorf("failed to start order simulator job: %w", err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.simulatorJob != nil {
		jm.simulatorJob.Stop()
	}
}
