package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/auth"
	"github.com/austral-erp/procurement-api/internal/domain"
	"github.com/austral-erp/procurement-api/internal/repository"
	"github.com/austral-erp/procurement-api/internal/service"
	"github.com/austral-erp/procurement-api/internal/testutil"
)

func newRFQService(t *testing.T) (*service.RFQService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	svc := service.NewRFQService(
		repository.NewRFQRepository(db),
		repository.NewSupplierRepository(db),
		repository.NewActivityRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func seedSupplier(t *testing.T, db *gorm.DB, name, cuit string) uuid.UUID {
	t.Helper()
	supplier := &domain.Supplier{
		Number:       "SUP-000001",
		BusinessName: name,
		CUIT:         cuit,
		IsActive:     true,
	}
	require.NoError(t, db.Create(supplier).Error)
	return supplier.ID
}

func seedDraftRFQ(t *testing.T, db *gorm.DB, targets []string) *domain.RFQ {
	t.Helper()
	rfq := &domain.RFQ{
		Number: "RFQ-00000001",
		Date:   time.Now(),
		Status: domain.RFQStatusDraft,
		Origin: domain.RFQOriginStandard,
		Items: []domain.RFQItem{
			{Description: "bolts", Quantity: 100, Unit: "u", TargetSupplierIDs: targets},
			{Description: "nuts", Quantity: 50, Unit: "u", TargetSupplierIDs: targets},
		},
	}
	require.NoError(t, db.Create(rfq).Error)
	return rfq
}

func TestUpdateItemsReplacesDraftItems(t *testing.T) {
	svc, db := newRFQService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	supplier := uuid.New().String()
	rfq := seedDraftRFQ(t, db, []string{supplier})

	dto, err := svc.UpdateItems(ctx, rfq.ID, domain.UpdateRFQItemsRequest{
		Items: []domain.UpdateRFQItemInput{
			{Description: "washers", Quantity: 500, Unit: "u", TargetSupplierIDs: []string{supplier}},
		},
	})
	require.NoError(t, err)

	require.Len(t, dto.Items, 1)
	assert.Equal(t, "washers", dto.Items[0].Description)
	assert.Equal(t, 1, dto.Version)
}

func TestUpdateItemsStaleVersion(t *testing.T) {
	svc, db := newRFQService(t)
	supplier := uuid.New().String()
	rfq := seedDraftRFQ(t, db, []string{supplier})

	_, err := svc.UpdateItems(ctxWithRoles(auth.RoleBuyer), rfq.ID, domain.UpdateRFQItemsRequest{
		Version: 5, // the document is at 0
		Items: []domain.UpdateRFQItemInput{
			{Description: "washers", Quantity: 1, TargetSupplierIDs: []string{supplier}},
		},
	})
	assert.ErrorIs(t, err, service.ErrStaleRFQ)

	// The replacement rolled back with the guard.
	var items []domain.RFQItem
	require.NoError(t, db.Where("rfq_id = ?", rfq.ID).Find(&items).Error)
	assert.Len(t, items, 2)
}

func TestUpdateItemsRejectsNonDraft(t *testing.T) {
	svc, db := newRFQService(t)
	rfq := seedDraftRFQ(t, db, []string{uuid.New().String()})
	require.NoError(t, db.Model(&domain.RFQ{}).Where("id = ?", rfq.ID).
		Update("status", domain.RFQStatusSent).Error)

	_, err := svc.UpdateItems(ctxWithRoles(auth.RoleBuyer), rfq.ID, domain.UpdateRFQItemsRequest{
		Items: []domain.UpdateRFQItemInput{{Description: "washers", Quantity: 1}},
	})
	assert.ErrorIs(t, err, service.ErrIllegalTransition)
}

func TestSendComputesSupplierUnion(t *testing.T) {
	svc, db := newRFQService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	supplierA := seedSupplier(t, db, "Aceros SA", "30-11111111-1")
	supplierB := seedSupplier(t, db, "Bulones SRL", "30-22222222-2")

	rfq := &domain.RFQ{
		Number: "RFQ-00000001",
		Date:   time.Now(),
		Status: domain.RFQStatusDraft,
		Items: []domain.RFQItem{
			{Description: "bolts", Quantity: 100, TargetSupplierIDs: []string{supplierA.String(), supplierB.String()}},
			{Description: "nuts", Quantity: 50, TargetSupplierIDs: []string{supplierA.String()}},
		},
	}
	require.NoError(t, db.Create(rfq).Error)

	dto, err := svc.Send(ctx, rfq.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, domain.RFQStatusSent, dto.Status)
	assert.Equal(t, 1, dto.Version)
	// Deduplicated union across items, names resolved from the master.
	require.Len(t, dto.SelectedSuppliers, 2)
	names := map[uuid.UUID]string{}
	for _, s := range dto.SelectedSuppliers {
		names[s.SupplierID] = s.SupplierName
	}
	assert.Equal(t, "Aceros SA", names[supplierA])
	assert.Equal(t, "Bulones SRL", names[supplierB])

	assert.Equal(t, int64(1), countActivities(t, db, rfq.ID))
}

func TestSendRejectsItemsWithoutTargets(t *testing.T) {
	svc, db := newRFQService(t)
	rfq := seedDraftRFQ(t, db, nil)

	_, err := svc.Send(ctxWithRoles(auth.RoleBuyer), rfq.ID, 0)
	assert.ErrorIs(t, err, service.ErrMissingTargetSuppliers)
	assert.Contains(t, err.Error(), "bolts")
}

func TestSendStaleVersion(t *testing.T) {
	svc, db := newRFQService(t)
	rfq := seedDraftRFQ(t, db, []string{uuid.New().String()})

	_, err := svc.Send(ctxWithRoles(auth.RoleBuyer), rfq.ID, 7)
	assert.ErrorIs(t, err, service.ErrStaleRFQ)
}

func TestSendRejectsNonDraft(t *testing.T) {
	svc, db := newRFQService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	rfq := seedDraftRFQ(t, db, []string{uuid.New().String()})

	_, err := svc.Send(ctx, rfq.ID, 0)
	require.NoError(t, err)

	_, err = svc.Send(ctx, rfq.ID, 1)
	assert.ErrorIs(t, err, service.ErrIllegalTransition)
}

func TestSaveQuotationsComputesTotals(t *testing.T) {
	svc, db := newRFQService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	supplierA := seedSupplier(t, db, "Aceros SA", "30-11111111-1")
	supplierB := seedSupplier(t, db, "Bulones SRL", "30-22222222-2")
	rfq := seedDraftRFQ(t, db, []string{supplierA.String(), supplierB.String()})

	sent, err := svc.Send(ctx, rfq.ID, 0)
	require.NoError(t, err)

	dto, err := svc.SaveQuotations(ctx, rfq.ID, domain.SaveQuotationsRequest{
		Version: sent.Version,
		Quotes: []domain.SupplierQuoteInput{
			{
				SupplierID:     supplierA,
				QuoteReference: "Q-1041",
				Items: []domain.QuoteItemInput{
					{Key: "bolts", UnitPrice: 0.5},
					{Key: "nuts", UnitPrice: 0.4},
				},
			},
			{
				SupplierID: supplierB,
				Items: []domain.QuoteItemInput{
					{Key: "bolts", UnitPrice: 0.45},
					// nuts not quoted
					{Key: "nuts", UnitPrice: 0},
				},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RFQStatusQuoted, dto.Status)
	require.Len(t, dto.Quotes, 2)

	totals := map[uuid.UUID]float64{}
	for _, q := range dto.Quotes {
		totals[q.SupplierID] = q.Price
	}
	assert.InDelta(t, 70.0, totals[supplierA], 0.0001)
	assert.InDelta(t, 45.0, totals[supplierB], 0.0001)

	// Quoted records expose the per-item best prices.
	require.NotNil(t, dto.BestPrices)
	assert.Equal(t, 0.45, dto.BestPrices["bolts"])
	assert.Equal(t, 0.4, dto.BestPrices["nuts"])
}

func TestSaveQuotationsRejectsUninvitedSupplier(t *testing.T) {
	svc, db := newRFQService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	supplierA := seedSupplier(t, db, "Aceros SA", "30-11111111-1")
	rfq := seedDraftRFQ(t, db, []string{supplierA.String()})

	sent, err := svc.Send(ctx, rfq.ID, 0)
	require.NoError(t, err)

	// A quote from a supplier outside the invited union must not be captured.
	_, err = svc.SaveQuotations(ctx, rfq.ID, domain.SaveQuotationsRequest{
		Version: sent.Version,
		Quotes: []domain.SupplierQuoteInput{
			{SupplierID: uuid.New(), Items: []domain.QuoteItemInput{{Key: "bolts", UnitPrice: 1}}},
		},
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestSaveQuotationsUnknownItemKey(t *testing.T) {
	svc, db := newRFQService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	supplierA := seedSupplier(t, db, "Aceros SA", "30-11111111-1")
	rfq := seedDraftRFQ(t, db, []string{supplierA.String()})

	sent, err := svc.Send(ctx, rfq.ID, 0)
	require.NoError(t, err)

	_, err = svc.SaveQuotations(ctx, rfq.ID, domain.SaveQuotationsRequest{
		Version: sent.Version,
		Quotes: []domain.SupplierQuoteInput{
			{SupplierID: supplierA, Items: []domain.QuoteItemInput{{Key: "washers", UnitPrice: 1}}},
		},
	})
	assert.ErrorIs(t, err, service.ErrUnknownItemKeys)
}

func TestSaveQuotationsRequiresSentStatus(t *testing.T) {
	svc, db := newRFQService(t)
	supplierA := seedSupplier(t, db, "Aceros SA", "30-11111111-1")
	rfq := seedDraftRFQ(t, db, []string{supplierA.String()})

	_, err := svc.SaveQuotations(ctxWithRoles(auth.RoleBuyer), rfq.ID, domain.SaveQuotationsRequest{
		Version: 0,
		Quotes: []domain.SupplierQuoteInput{
			{SupplierID: supplierA, Items: []domain.QuoteItemInput{{Key: "bolts", UnitPrice: 1}}},
		},
	})
	assert.ErrorIs(t, err, service.ErrIllegalTransition)
}

func TestListRFQsByStatus(t *testing.T) {
	svc, db := newRFQService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	seedDraftRFQ(t, db, []string{uuid.New().String()})
	second := seedDraftRFQ(t, db, []string{uuid.New().String()})

	_, err := svc.Send(ctx, second.ID, 0)
	require.NoError(t, err)

	draft := domain.RFQStatusDraft
	dtos, total, err := svc.List(ctx, &draft, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, dtos, 1)
	assert.Equal(t, domain.RFQStatusDraft, dtos[0].Status)
}

func TestGetByIDDeniedWithoutContext(t *testing.T) {
	svc, db := newRFQService(t)
	rfq := seedDraftRFQ(t, db, nil)

	_, err := svc.GetByID(context.Background(), rfq.ID)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)
}
