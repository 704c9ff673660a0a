package service_test

import (
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

func newRequestService(t *testing.T) (*service.RequestService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	sequences := service.NewSequenceService(repository.NewNumeratorRepository(db), zap.NewNop())
	require.NoError(t, sequences.Seed(ctxWithRoles(auth.RoleAdmin)))
	svc := service.NewRequestService(
		repository.NewPurchaseRequestRepository(db),
		repository.NewRFQRepository(db),
		repository.NewContractRepository(db),
		repository.NewSupplierRepository(db),
		repository.NewActivityRepository(db),
		sequences,
		zap.NewNop(),
	)
	return svc, db
}

func createRequest(t *testing.T, svc *service.RequestService, items ...domain.CreatePurchaseRequestItemInput) *domain.PurchaseRequestDTO {
	t.Helper()
	dto, err := svc.Create(ctxWithRoles(auth.RoleRequester), domain.CreatePurchaseRequestRequest{
		RequesterID:   "user-7",
		RequesterName: "Marcos Ruiz",
		Items:         items,
	})
	require.NoError(t, err)
	return dto
}

func TestCreatePurchaseRequest(t *testing.T) {
	svc, _ := newRequestService(t)
	materialID := uuid.New()

	dto := createRequest(t, svc,
		domain.CreatePurchaseRequestItemInput{MaterialID: &materialID, Description: "Hex bolts M8", Quantity: 100, Unit: "u"},
		domain.CreatePurchaseRequestItemInput{Description: "Safety gloves", Quantity: 12},
	)

	assert.Equal(t, "PR-00000001", dto.Number)
	assert.False(t, dto.NumberDegraded)
	assert.Equal(t, domain.RequestStatusPending, dto.Status)
	assert.Equal(t, domain.RequestOriginManual, dto.Origin)
	assert.Len(t, dto.Items, 2)
}

func TestCreatePurchaseRequestBadDate(t *testing.T) {
	svc, _ := newRequestService(t)
	bad := "01/02/2026"

	_, err := svc.Create(ctxWithRoles(auth.RoleRequester), domain.CreatePurchaseRequestRequest{
		RequesterID: "user-7",
		Date:        &bad,
		Items:       []domain.CreatePurchaseRequestItemInput{{Description: "bolts", Quantity: 1}},
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestGroupIntoDraftMergesByItemKey(t *testing.T) {
	svc, db := newRequestService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	materialID := uuid.New()
	supplier := uuid.New()

	first := createRequest(t, svc,
		domain.CreatePurchaseRequestItemInput{MaterialID: &materialID, Description: "Hex bolts M8", Quantity: 100},
		domain.CreatePurchaseRequestItemInput{Description: "Safety gloves", Quantity: 12},
	)
	second := createRequest(t, svc,
		domain.CreatePurchaseRequestItemInput{MaterialID: &materialID, Description: "Hex bolts M8", Quantity: 40},
	)

	draft, err := svc.GroupIntoDraft(ctx, domain.GroupRequestsRequest{
		RequestIDs:        []uuid.UUID{first.ID, second.ID},
		TargetSupplierIDs: []string{supplier.String()},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RFQStatusDraft, draft.Status)
	assert.Equal(t, "RFQ-00000001", draft.Number)
	require.Len(t, draft.Items, 2)

	// Shared material key merged with summed quantity; provenance points at
	// the first contributing request.
	var merged domain.RFQItemDTO
	for _, item := range draft.Items {
		if item.Key == materialID.String() {
			merged = item
		}
	}
	require.NotEqual(t, uuid.Nil, merged.ID)
	assert.Equal(t, 140.0, merged.Quantity)
	require.NotNil(t, merged.PurchaseRequestID)
	assert.Equal(t, first.ID, *merged.PurchaseRequestID)
	assert.Equal(t, []string{supplier.String()}, merged.TargetSupplierIDs)

	// Both sources flipped to processed.
	var requests []domain.PurchaseRequest
	require.NoError(t, db.Find(&requests).Error)
	for _, r := range requests {
		assert.Equal(t, domain.RequestStatusProcessed, r.Status, r.Number)
	}
}

func TestGroupIntoDraftUnknownRequest(t *testing.T) {
	svc, _ := newRequestService(t)
	first := createRequest(t, svc, domain.CreatePurchaseRequestItemInput{Description: "bolts", Quantity: 1})

	_, err := svc.GroupIntoDraft(ctxWithRoles(auth.RoleBuyer), domain.GroupRequestsRequest{
		RequestIDs: []uuid.UUID{first.ID, uuid.New()},
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestGroupIntoDraftRejectsProcessedRequest(t *testing.T) {
	svc, _ := newRequestService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	first := createRequest(t, svc, domain.CreatePurchaseRequestItemInput{Description: "bolts", Quantity: 1})

	_, err := svc.GroupIntoDraft(ctx, domain.GroupRequestsRequest{RequestIDs: []uuid.UUID{first.ID}})
	require.NoError(t, err)

	// Grouping the same request twice must fail and create nothing new.
	_, err = svc.GroupIntoDraft(ctx, domain.GroupRequestsRequest{RequestIDs: []uuid.UUID{first.ID}})
	assert.ErrorIs(t, err, service.ErrRequestNotPending)
}

func seedContract(t *testing.T, db *gorm.DB, materialID, supplierID uuid.UUID, name string, price float64) {
	t.Helper()
	now := time.Now()
	require.NoError(t, db.Create(&domain.Contract{
		Number:       "CTR-000001",
		MaterialID:   materialID,
		SupplierID:   supplierID,
		SupplierName: name,
		Price:        price,
		ValidFrom:    now.AddDate(0, -1, 0),
		ValidTo:      now.AddDate(0, 1, 0),
		IsActive:     true,
	}).Error)
}

func TestDirectAwardFromContract(t *testing.T) {
	svc, db := newRequestService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	materialA, materialB := uuid.New(), uuid.New()
	supplier := uuid.New()
	seedContract(t, db, materialA, supplier, "Aceros SA", 2.5)
	seedContract(t, db, materialB, supplier, "Aceros SA", 10)

	request := createRequest(t, svc,
		domain.CreatePurchaseRequestItemInput{MaterialID: &materialA, Description: "Hex bolts M8", Quantity: 100},
		domain.CreatePurchaseRequestItemInput{MaterialID: &materialB, Description: "Steel plate", Quantity: 4},
	)

	order, err := svc.DirectAward(ctx, request.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.RFQStatusPendingApproval, order.Status)
	assert.Equal(t, domain.RFQOriginContract, order.Origin)
	require.NotNil(t, order.WinnerSupplierID)
	assert.Equal(t, supplier, *order.WinnerSupplierID)

	require.Len(t, order.Quotes, 1)
	assert.True(t, order.Quotes[0].IsSelected)
	assert.InDelta(t, 290.0, order.Quotes[0].Price, 0.0001)

	processed, err := svc.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusProcessed, processed.Status)
}

func TestDirectAwardRejectsFreeTextItems(t *testing.T) {
	svc, db := newRequestService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	materialID := uuid.New()
	supplier := uuid.New()
	seedContract(t, db, materialID, supplier, "Aceros SA", 2.5)

	request := createRequest(t, svc,
		domain.CreatePurchaseRequestItemInput{MaterialID: &materialID, Description: "Hex bolts M8", Quantity: 100},
		domain.CreatePurchaseRequestItemInput{Description: "Custom bracket", Quantity: 2},
	)

	_, err := svc.DirectAward(ctx, request.ID)
	assert.ErrorIs(t, err, service.ErrNoActiveContract)

	// All or nothing: the request stays pending.
	pending, err := svc.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, pending.Status)
}

func TestDirectAwardRejectsUncoveredMaterial(t *testing.T) {
	svc, _ := newRequestService(t)
	materialID := uuid.New()

	request := createRequest(t, svc,
		domain.CreatePurchaseRequestItemInput{MaterialID: &materialID, Description: "Hex bolts M8", Quantity: 100},
	)

	_, err := svc.DirectAward(ctxWithRoles(auth.RoleBuyer), request.ID)
	assert.ErrorIs(t, err, service.ErrNoActiveContract)
}

func TestDirectAwardRejectsMixedSuppliers(t *testing.T) {
	svc, db := newRequestService(t)
	materialA, materialB := uuid.New(), uuid.New()
	seedContract(t, db, materialA, uuid.New(), "Aceros SA", 2.5)
	seedContract(t, db, materialB, uuid.New(), "Bulones SRL", 10)

	request := createRequest(t, svc,
		domain.CreatePurchaseRequestItemInput{MaterialID: &materialA, Description: "Hex bolts M8", Quantity: 100},
		domain.CreatePurchaseRequestItemInput{MaterialID: &materialB, Description: "Steel plate", Quantity: 4},
	)

	_, err := svc.DirectAward(ctxWithRoles(auth.RoleBuyer), request.ID)
	assert.ErrorIs(t, err, service.ErrNoActiveContract)
}

func TestDirectAwardRejectsProcessedRequest(t *testing.T) {
	svc, db := newRequestService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	materialID := uuid.New()
	supplier := uuid.New()
	seedContract(t, db, materialID, supplier, "Aceros SA", 2.5)

	request := createRequest(t, svc,
		domain.CreatePurchaseRequestItemInput{MaterialID: &materialID, Description: "Hex bolts M8", Quantity: 100},
	)

	_, err := svc.DirectAward(ctx, request.ID)
	require.NoError(t, err)

	_, err = svc.DirectAward(ctx, request.ID)
	assert.ErrorIs(t, err, service.ErrRequestNotPending)
}

func TestListPurchaseRequestsFilters(t *testing.T) {
	svc, _ := newRequestService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)

	first := createRequest(t, svc, domain.CreatePurchaseRequestItemInput{Description: "bolts", Quantity: 1})
	createRequest(t, svc, domain.CreatePurchaseRequestItemInput{Description: "nuts", Quantity: 2})

	_, err := svc.GroupIntoDraft(ctx, domain.GroupRequestsRequest{RequestIDs: []uuid.UUID{first.ID}})
	require.NoError(t, err)

	pending := domain.RequestStatusPending
	dtos, total, err := svc.List(ctx, &pending, nil, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, dtos, 1)
	assert.Equal(t, "PR-00000002", dtos[0].Number)
}
