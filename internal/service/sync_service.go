package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/domain"
	"github.com/austral-erp/procurement-api/internal/erp"
	"github.com/austral-erp/procurement-api/internal/repository"
)

// SyncService copies material and supplier masters from the corporate ERP
// into the local database. Local records are upserted by natural key; rows
// the ERP no longer reports stay untouched and age out by deactivation on
// the ERP side.
type SyncService struct {
	client       *erp.Client
	materialRepo *repository.MaterialRepository
	supplierRepo *repository.SupplierRepository
	logger       *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(
	client *erp.Client,
	materialRepo *repository.MaterialRepository,
	supplierRepo *repository.SupplierRepository,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		client:       client,
		materialRepo: materialRepo,
		supplierRepo: supplierRepo,
		logger:       logger,
	}
}

// SyncSuppliers upserts the ERP vendor master. Returns synced and failed counts.
func (s *SyncService) SyncSuppliers(ctx context.Context) (synced int, failed int, err error) {
	if !s.client.IsEnabled() {
		return 0, 0, fmt.Errorf("erp client not available")
	}

	records, err := s.client.FetchSuppliers(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch suppliers: %w", err)
	}

	for _, rec := range records {
		supplier := &domain.Supplier{
			Number:       rec.Number,
			BusinessName: rec.BusinessName,
			CUIT:         rec.TaxID,
			Email:        rec.Email,
			Phone:        rec.Phone,
			IsActive:     rec.Active,
		}
		if err := s.supplierRepo.Upsert(ctx, supplier); err != nil {
			s.logger.Warn("supplier upsert failed",
				zap.String("taxId", rec.TaxID),
				zap.Error(err))
			failed++
			continue
		}
		synced++
	}
	return synced, failed, nil
}

// SyncMaterials upserts the ERP material master. Supplier assignments are
// resolved through the already-synced supplier records, so SyncSuppliers
// should run first.
func (s *SyncService) SyncMaterials(ctx context.Context) (synced int, failed int, err error) {
	if !s.client.IsEnabled() {
		return 0, 0, fmt.Errorf("erp client not available")
	}

	records, err := s.client.FetchMaterials(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch materials: %w", err)
	}

	for _, rec := range records {
		material := &domain.Material{
			Code:          rec.Code,
			Description:   rec.Description,
			UnitOfMeasure: rec.UnitOfMeasure,
			IsActive:      rec.Active,
		}
		if rec.SupplierTaxID != "" {
			if ids, err := s.supplierIDsForTaxID(ctx, rec.SupplierTaxID); err == nil {
				material.AssignedSupplierIDs = ids
			}
		}
		if err := s.materialRepo.Upsert(ctx, material); err != nil {
			s.logger.Warn("material upsert failed",
				zap.String("code", rec.Code),
				zap.Error(err))
			failed++
			continue
		}
		synced++
	}
	return synced, failed, nil
}

func (s *SyncService) supplierIDsForTaxID(ctx context.Context, taxID string) ([]string, error) {
	suppliers, err := s.supplierRepo.Search(ctx, taxID, 5)
	if err != nil {
		return nil, err
	}
	var ids []string
	for i := range suppliers {
		if suppliers[i].CUIT == taxID {
			ids = append(ids, suppliers[i].ID.String())
		}
	}
	if len(ids) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return ids, nil
}
