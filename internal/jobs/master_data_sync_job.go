package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// MasterDataSyncJobName is the name of the ERP master-data sync job
const MasterDataSyncJobName = "master_data_sync"

// MasterDataSyncer defines the interface for syncing master data from the
// ERP. The interface keeps the job decoupled from the service package.
type MasterDataSyncer interface {
	// SyncSuppliers upserts the ERP vendor master into the local database.
	SyncSuppliers(ctx context.Context) (synced int, failed int, err error)
	// SyncMaterials upserts the ERP material master into the local database.
	SyncMaterials(ctx context.Context) (synced int, failed int, err error)
}

// MasterDataSyncJob pulls material and supplier masters from the ERP on a
// schedule. Suppliers sync before materials so supplier assignments resolve.
type MasterDataSyncJob struct {
	syncer  MasterDataSyncer
	logger  *zap.Logger
	timeout time.Duration
}

// NewMasterDataSyncJob creates a new master-data sync job.
func NewMasterDataSyncJob(syncer MasterDataSyncer, logger *zap.Logger, timeout time.Duration) *MasterDataSyncJob {
	return &MasterDataSyncJob{
		syncer:  syncer,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes the sync. Called by the scheduler.
func (j *MasterDataSyncJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting master data sync")

	suppliersSynced, suppliersFailed, err := j.syncer.SyncSuppliers(ctx)
	if err != nil {
		j.logger.Error("supplier sync failed", zap.Error(err))
	}

	materialsSynced, materialsFailed, err := j.syncer.SyncMaterials(ctx)
	if err != nil {
		j.logger.Error("material sync failed", zap.Error(err))
	}

	j.logger.Info("master data sync completed",
		zap.Int("suppliers_synced", suppliersSynced),
		zap.Int("suppliers_failed", suppliersFailed),
		zap.Int("materials_synced", materialsSynced),
		zap.Int("materials_failed", materialsFailed),
		zap.Duration("duration", time.Since(start)))
}
