package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/domain"
	"github.com/austral-erp/procurement-api/internal/repository"
	"github.com/austral-erp/procurement-api/internal/service"
	"github.com/austral-erp/procurement-api/internal/testutil"
)

func newReplenishmentService(t *testing.T) (*service.ReplenishmentService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	sequences := service.NewSequenceService(repository.NewNumeratorRepository(db), zap.NewNop())
	require.NoError(t, sequences.Seed(context.Background()))
	svc := service.NewReplenishmentService(
		repository.NewStockLevelRepository(db),
		repository.NewPurchaseRequestRepository(db),
		sequences,
		zap.NewNop(),
	)
	return svc, db
}

func seedStockLevel(t *testing.T, db *gorm.DB, code, warehouse string, onHand, minimum, reorder float64) uuid.UUID {
	t.Helper()
	material := &domain.Material{
		Code:          code,
		Description:   "Material " + code,
		UnitOfMeasure: "u",
		IsActive:      true,
	}
	require.NoError(t, db.Create(material).Error)
	require.NoError(t, db.Create(&domain.StockLevel{
		MaterialID:      material.ID,
		WarehouseCode:   warehouse,
		OnHand:          onHand,
		MinimumLevel:    minimum,
		ReorderQuantity: reorder,
	}).Error)
	return material.ID
}

func TestSweepCreatesWarehouseRequest(t *testing.T) {
	svc, db := newReplenishmentService(t)
	below := seedStockLevel(t, db, "MAT-001", "WH1", 2, 10, 50)
	seedStockLevel(t, db, "MAT-002", "WH1", 20, 10, 50) // healthy, must be skipped
	noReorder := seedStockLevel(t, db, "MAT-003", "WH1", 4, 10, 0)

	count, err := svc.Sweep(context.Background(), "WH1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var requests []domain.PurchaseRequest
	require.NoError(t, db.Preload("Items").Find(&requests).Error)
	require.Len(t, requests, 1)

	request := requests[0]
	assert.Equal(t, domain.RequestOriginWarehouse, request.Origin)
	assert.Equal(t, domain.RequestStatusPending, request.Status)
	assert.Equal(t, "system", request.RequesterID)

	quantities := map[string]float64{}
	for _, item := range request.Items {
		require.NotNil(t, item.MaterialID)
		quantities[item.MaterialID.String()] = item.Quantity
	}
	assert.Equal(t, 50.0, quantities[below.String()])
	// Without a reorder quantity the sweep tops the level back up to minimum.
	assert.Equal(t, 6.0, quantities[noReorder.String()])
}

func TestSweepSkipsMaterialsAlreadyRequested(t *testing.T) {
	svc, db := newReplenishmentService(t)
	seedStockLevel(t, db, "MAT-001", "WH1", 2, 10, 50)

	ctx := context.Background()
	count, err := svc.Sweep(ctx, "WH1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The shortage is still there but its request is still pending.
	count, err = svc.Sweep(ctx, "WH1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	var total int64
	require.NoError(t, db.Model(&domain.PurchaseRequest{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestSweepFiltersByWarehouse(t *testing.T) {
	svc, _ := newReplenishmentService(t)

	count, err := svc.Sweep(context.Background(), "WH2")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSweepNoShortages(t *testing.T) {
	svc, db := newReplenishmentService(t)
	seedStockLevel(t, db, "MAT-002", "WH1", 20, 10, 50)

	count, err := svc.Sweep(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
