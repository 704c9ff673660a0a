package service_test

import (
	"strings"
	"testing"

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

func newAdjudicationService(t *testing.T) (*service.AdjudicationService, *repository.RFQRepository, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	rfqRepo := repository.NewRFQRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	svc := service.NewAdjudicationService(rfqRepo, activityRepo, zap.NewNop())
	return svc, rfqRepo, db
}

func TestSplitAdjudicatePartialAward(t *testing.T) {
	svc, rfqRepo, db := newAdjudicationService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	supplierA, supplierB := uuid.New(), uuid.New()
	rfq := seedQuotedRFQ(t, db, supplierA, supplierB)

	order, err := svc.SplitAdjudicate(ctx, rfq.ID, domain.SplitAdjudicationRequest{
		Version:    3,
		SupplierID: supplierA,
		ItemKeys:   []string{"bolts"},
		Amount:     48.50,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RFQStatusPendingApproval, order.Status)
	assert.True(t, strings.HasPrefix(order.Number, rfq.Number+"/A"), order.Number)
	assert.Equal(t, rfq.Number, order.RelatedRFQNumber)
	require.NotNil(t, order.WinnerSupplierID)
	assert.Equal(t, supplierA, *order.WinnerSupplierID)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "bolts", order.Items[0].Description)
	assert.Equal(t, 100.0, order.Items[0].Quantity)

	// The full quote list is carried for audit, with only the winner
	// selected and its price overwritten by the confirmed amount.
	require.Len(t, order.Quotes, 2)
	for _, q := range order.Quotes {
		if q.SupplierID == supplierA {
			assert.True(t, q.IsSelected)
			assert.Equal(t, 48.50, q.Price)
		} else {
			assert.False(t, q.IsSelected)
		}
	}
	require.Len(t, order.SelectedSuppliers, 1)
	assert.Equal(t, supplierA, order.SelectedSuppliers[0].SupplierID)

	// The original shrank to the remaining item and bumped its version.
	original, err := rfqRepo.GetByID(ctx, rfq.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RFQStatusQuoted, original.Status)
	assert.Equal(t, 4, original.Version)
	require.Len(t, original.Items, 1)
	assert.Equal(t, "nuts", original.Items[0].Description)

	assert.Equal(t, int64(1), countActivities(t, db, rfq.ID))
}

func TestSplitAdjudicateFullAwardClosesOriginal(t *testing.T) {
	svc, rfqRepo, db := newAdjudicationService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	supplierA, supplierB := uuid.New(), uuid.New()
	rfq := seedQuotedRFQ(t, db, supplierA, supplierB)

	order, err := svc.SplitAdjudicate(ctx, rfq.ID, domain.SplitAdjudicationRequest{
		Version:    3,
		SupplierID: supplierB,
		ItemKeys:   []string{"bolts", "nuts"},
		Amount:     66,
	})
	require.NoError(t, err)
	assert.Len(t, order.Items, 2)

	original, err := rfqRepo.GetByID(ctx, rfq.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RFQStatusClosed, original.Status)
	assert.Empty(t, original.Items)
}

func TestSplitAdjudicateSequentialSplitsGetDistinctNumbers(t *testing.T) {
	svc, rfqRepo, db := newAdjudicationService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	supplierA, supplierB := uuid.New(), uuid.New()
	rfq := seedQuotedRFQ(t, db, supplierA, supplierB)

	first, err := svc.SplitAdjudicate(ctx, rfq.ID, domain.SplitAdjudicationRequest{
		Version:    3,
		SupplierID: supplierA,
		ItemKeys:   []string{"bolts"},
		Amount:     50,
	})
	require.NoError(t, err)

	second, err := svc.SplitAdjudicate(ctx, rfq.ID, domain.SplitAdjudicationRequest{
		Version:    4,
		SupplierID: supplierB,
		ItemKeys:   []string{"nuts"},
		Amount:     21,
	})
	require.NoError(t, err)

	// Awarding line items back to back must never mint the same number twice.
	assert.Equal(t, rfq.Number+"/A1", first.Number)
	assert.Equal(t, rfq.Number+"/A2", second.Number)
	assert.NotEqual(t, first.Number, second.Number)

	original, err := rfqRepo.GetByID(ctx, rfq.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RFQStatusClosed, original.Status)
	assert.Empty(t, original.Items)
}

func TestSplitAdjudicateToleratesDuplicateKeys(t *testing.T) {
	svc, _, db := newAdjudicationService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	supplierA, supplierB := uuid.New(), uuid.New()
	rfq := seedQuotedRFQ(t, db, supplierA, supplierB)

	order, err := svc.SplitAdjudicate(ctx, rfq.ID, domain.SplitAdjudicationRequest{
		Version:    3,
		SupplierID: supplierA,
		ItemKeys:   []string{"bolts", "bolts"},
		Amount:     50,
	})
	require.NoError(t, err)
	assert.Len(t, order.Items, 1)
}

func TestSplitAdjudicateUnknownItemKey(t *testing.T) {
	svc, rfqRepo, db := newAdjudicationService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	supplierA, supplierB := uuid.New(), uuid.New()
	rfq := seedQuotedRFQ(t, db, supplierA, supplierB)

	_, err := svc.SplitAdjudicate(ctx, rfq.ID, domain.SplitAdjudicationRequest{
		Version:    3,
		SupplierID: supplierA,
		ItemKeys:   []string{"bolts", "washers"},
		Amount:     50,
	})
	assert.ErrorIs(t, err, service.ErrUnknownItemKeys)
	assert.Contains(t, err.Error(), "washers")

	// Nothing changed.
	original, err := rfqRepo.GetByID(ctx, rfq.ID)
	require.NoError(t, err)
	assert.Len(t, original.Items, 2)
	assert.Equal(t, 3, original.Version)
}

func TestSplitAdjudicateStaleVersion(t *testing.T) {
	svc, rfqRepo, db := newAdjudicationService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	supplierA, supplierB := uuid.New(), uuid.New()
	rfq := seedQuotedRFQ(t, db, supplierA, supplierB)

	_, err := svc.SplitAdjudicate(ctx, rfq.ID, domain.SplitAdjudicationRequest{
		Version:    2, // the document is at 3
		SupplierID: supplierA,
		ItemKeys:   []string{"bolts"},
		Amount:     50,
	})
	assert.ErrorIs(t, err, service.ErrStaleRFQ)

	// The whole move rolled back, items included.
	original, err := rfqRepo.GetByID(ctx, rfq.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RFQStatusQuoted, original.Status)
	assert.Len(t, original.Items, 2)
	assert.Equal(t, 3, original.Version)
}

func TestSplitAdjudicateSupplierWithoutQuote(t *testing.T) {
	svc, _, db := newAdjudicationService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	rfq := seedQuotedRFQ(t, db, uuid.New(), uuid.New())

	_, err := svc.SplitAdjudicate(ctx, rfq.ID, domain.SplitAdjudicationRequest{
		Version:    3,
		SupplierID: uuid.New(),
		ItemKeys:   []string{"bolts"},
		Amount:     50,
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestSplitAdjudicateRequiresQuotedStatus(t *testing.T) {
	svc, _, db := newAdjudicationService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	supplierA, supplierB := uuid.New(), uuid.New()
	rfq := seedQuotedRFQ(t, db, supplierA, supplierB)
	require.NoError(t, db.Model(&domain.RFQ{}).Where("id = ?", rfq.ID).
		Update("status", domain.RFQStatusSent).Error)

	_, err := svc.SplitAdjudicate(ctx, rfq.ID, domain.SplitAdjudicationRequest{
		Version:    3,
		SupplierID: supplierA,
		ItemKeys:   []string{"bolts"},
		Amount:     50,
	})
	assert.ErrorIs(t, err, service.ErrIllegalTransition)
}

func TestSplitAdjudicateNotFound(t *testing.T) {
	svc, _, _ := newAdjudicationService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)

	_, err := svc.SplitAdjudicate(ctx, uuid.New(), domain.SplitAdjudicationRequest{
		Version:    0,
		SupplierID: uuid.New(),
		ItemKeys:   []string{"bolts"},
		Amount:     50,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestSplitAdjudicateDeniedForViewer(t *testing.T) {
	svc, _, db := newAdjudicationService(t)
	supplierA, supplierB := uuid.New(), uuid.New()
	rfq := seedQuotedRFQ(t, db, supplierA, supplierB)

	_, err := svc.SplitAdjudicate(ctxWithRoles(auth.RoleViewer), rfq.ID, domain.SplitAdjudicationRequest{
		Version:    3,
		SupplierID: supplierA,
		ItemKeys:   []string{"bolts"},
		Amount:     50,
	})
	assert.ErrorIs(t, err, service.ErrPermissionDenied)
}
