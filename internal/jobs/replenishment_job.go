package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ReplenishmentJobName is the name of the warehouse replenishment job
const ReplenishmentJobName = "warehouse_replenishment"

// ReplenishmentSweeper defines the interface for the stock sweep.
type ReplenishmentSweeper interface {
	// Sweep creates purchase requests for stock below minimum, optionally
	// restricted to one warehouse. Returns the number of items requested.
	Sweep(ctx context.Context, warehouseCode string) (int, error)
}

// ReplenishmentJob periodically raises warehouse purchase requests for
// material running low.
type ReplenishmentJob struct {
	sweeper   ReplenishmentSweeper
	warehouse string
	logger    *zap.Logger
	timeout   time.Duration
}

// NewReplenishmentJob creates a new replenishment job. An empty warehouse
// code sweeps every warehouse.
func NewReplenishmentJob(sweeper ReplenishmentSweeper, warehouse string, logger *zap.Logger, timeout time.Duration) *ReplenishmentJob {
	return &ReplenishmentJob{
		sweeper:   sweeper,
		warehouse: warehouse,
		logger:    logger,
		timeout:   timeout,
	}
}

// Run executes the sweep. Called by the scheduler.
func (j *ReplenishmentJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	items, err := j.sweeper.Sweep(ctx, j.warehouse)
	if err != nil {
		j.logger.Error("replenishment sweep failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("replenishment sweep completed",
		zap.Int("items_requested", items),
		zap.Duration("duration", time.Since(start)))
}
