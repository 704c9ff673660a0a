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

func newApprovalService(t *testing.T) (*service.ApprovalService, *repository.RFQRepository, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	rfqRepo := repository.NewRFQRepository(db)
	sequences := service.NewSequenceService(repository.NewNumeratorRepository(db), zap.NewNop())
	require.NoError(t, sequences.Seed(ctxWithRoles(auth.RoleAdmin)))
	svc := service.NewApprovalService(
		rfqRepo,
		repository.NewApprovalRuleRepository(db),
		repository.NewActivityRepository(db),
		sequences,
		zap.NewNop(),
	)
	return svc, rfqRepo, db
}

func seedRule(t *testing.T, svc *service.ApprovalService, min, max float64, approverID, name string) {
	t.Helper()
	_, err := svc.CreateRule(ctxWithRoles(auth.RoleAdmin), domain.CreateApprovalRuleRequest{
		MinAmount:    min,
		MaxAmount:    max,
		ApproverID:   approverID,
		ApproverName: name,
	})
	require.NoError(t, err)
}

// seedPendingOrder stores a split-off record awaiting approval with the
// winning quote selected at the given amount.
func seedPendingOrder(t *testing.T, db *gorm.DB, supplier uuid.UUID, number string, amount float64) *domain.RFQ {
	t.Helper()
	rfq := &domain.RFQ{
		Number:           number,
		Date:             time.Now(),
		Status:           domain.RFQStatusPendingApproval,
		Origin:           domain.RFQOriginStandard,
		Version:          1,
		WinnerSupplierID: &supplier,
		RelatedRFQNumber: "RFQ-00000010",
		Items: []domain.RFQItem{
			{Description: "bolts", Quantity: 100, TargetSupplierIDs: []string{supplier.String()}},
		},
		SelectedSuppliers: []domain.RFQSupplier{{SupplierID: supplier, SupplierName: "Aceros SA"}},
		Quotes: []domain.SupplierQuote{{
			SupplierID:   supplier,
			SupplierName: "Aceros SA",
			Price:        amount,
			IsSelected:   true,
			Items:        []domain.QuoteItem{{Description: "bolts", UnitPrice: amount / 100}},
		}},
	}
	require.NoError(t, db.Create(rfq).Error)
	return rfq
}

func TestRequiredApproverPicksNarrowestBand(t *testing.T) {
	svc, _, _ := newApprovalService(t)
	ctx := ctxWithRoles(auth.RoleBuyer)
	seedRule(t, svc, 0, 100000, "cfo", "CFO")
	seedRule(t, svc, 0, 1000, "manager", "Plant Manager")

	rule, err := svc.RequiredApprover(ctx, 500)
	require.NoError(t, err)
	assert.Equal(t, "manager", rule.ApproverID)

	rule, err = svc.RequiredApprover(ctx, 5000)
	require.NoError(t, err)
	assert.Equal(t, "cfo", rule.ApproverID)

	// Band edges are inclusive.
	rule, err = svc.RequiredApprover(ctx, 1000)
	require.NoError(t, err)
	assert.Equal(t, "manager", rule.ApproverID)
}

func TestRequiredApproverTieBreaksOnLowerMinimum(t *testing.T) {
	svc, _, _ := newApprovalService(t)
	seedRule(t, svc, 500, 1500, "senior", "Senior Buyer")
	seedRule(t, svc, 0, 1000, "manager", "Plant Manager")

	rule, err := svc.RequiredApprover(ctxWithRoles(auth.RoleBuyer), 750)
	require.NoError(t, err)
	assert.Equal(t, "manager", rule.ApproverID)
}

func TestRequiredApproverNoRule(t *testing.T) {
	svc, _, _ := newApprovalService(t)
	seedRule(t, svc, 0, 1000, "manager", "Plant Manager")

	_, err := svc.RequiredApprover(ctxWithRoles(auth.RoleBuyer), 2000)
	assert.ErrorIs(t, err, service.ErrNoApprovalRule)
}

func TestApproveDrawsOfficialOrderNumber(t *testing.T) {
	svc, rfqRepo, db := newApprovalService(t)
	ctx := ctxWithRoles(auth.RoleApprover)
	seedRule(t, svc, 0, 1000, "manager", "Plant Manager")
	order := seedPendingOrder(t, db, uuid.New(), "RFQ-00000010/A42", 480)

	dto, err := svc.Approve(ctx, order.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, domain.RFQStatusConvertedToPO, dto.Status)
	assert.Equal(t, "PO-00000001", dto.Number)
	assert.False(t, dto.NumberDegraded)
	assert.Equal(t, 2, dto.Version)
	assert.Equal(t, int64(1), countActivities(t, db, order.ID))

	stored, err := rfqRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RFQStatusConvertedToPO, stored.Status)
}

func TestApproveKeepsExistingOfficialNumber(t *testing.T) {
	svc, _, db := newApprovalService(t)
	seedRule(t, svc, 0, 1000, "manager", "Plant Manager")
	order := seedPendingOrder(t, db, uuid.New(), "PO-00000044", 480)

	dto, err := svc.Approve(ctxWithRoles(auth.RoleApprover), order.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "PO-00000044", dto.Number)
}

func TestApproveWithoutMatchingRule(t *testing.T) {
	svc, _, db := newApprovalService(t)
	seedRule(t, svc, 0, 100, "manager", "Plant Manager")
	order := seedPendingOrder(t, db, uuid.New(), "RFQ-00000010/A42", 480)

	_, err := svc.Approve(ctxWithRoles(auth.RoleApprover), order.ID, 1)
	assert.ErrorIs(t, err, service.ErrNoApprovalRule)
}

func TestApproveRequiresPendingStatus(t *testing.T) {
	svc, _, db := newApprovalService(t)
	seedRule(t, svc, 0, 1000, "manager", "Plant Manager")
	order := seedPendingOrder(t, db, uuid.New(), "RFQ-00000010/A42", 480)
	require.NoError(t, db.Model(&domain.RFQ{}).Where("id = ?", order.ID).
		Update("status", domain.RFQStatusQuoted).Error)

	_, err := svc.Approve(ctxWithRoles(auth.RoleApprover), order.ID, 1)
	assert.ErrorIs(t, err, service.ErrIllegalTransition)
}

func TestApproveStaleVersion(t *testing.T) {
	svc, _, db := newApprovalService(t)
	seedRule(t, svc, 0, 1000, "manager", "Plant Manager")
	order := seedPendingOrder(t, db, uuid.New(), "RFQ-00000010/A42", 480)

	_, err := svc.Approve(ctxWithRoles(auth.RoleApprover), order.ID, 0)
	assert.ErrorIs(t, err, service.ErrStaleRFQ)
}

func TestApproveDeniedWithoutApproveCapability(t *testing.T) {
	svc, _, db := newApprovalService(t)
	order := seedPendingOrder(t, db, uuid.New(), "RFQ-00000010/A42", 480)

	// Buyers can write procurement but not approve it.
	_, err := svc.Approve(ctxWithRoles(auth.RoleBuyer), order.ID, 1)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)
}

func TestRevertClearsSelectionAndWinner(t *testing.T) {
	svc, rfqRepo, db := newApprovalService(t)
	ctx := ctxWithRoles(auth.RoleApprover)
	order := seedPendingOrder(t, db, uuid.New(), "RFQ-00000010/A42", 480)

	dto, err := svc.Revert(ctx, order.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RFQStatusQuoted, dto.Status)
	assert.Nil(t, dto.WinnerSupplierID)

	stored, err := rfqRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Quotes, 1)
	assert.False(t, stored.Quotes[0].IsSelected)
	assert.Equal(t, 2, stored.Version)
}

func TestRevertRequiresPendingStatus(t *testing.T) {
	svc, _, db := newApprovalService(t)
	ctx := ctxWithRoles(auth.RoleApprover)
	order := seedPendingOrder(t, db, uuid.New(), "RFQ-00000010/A42", 480)

	_, err := svc.Revert(ctx, order.ID, 1)
	require.NoError(t, err)

	// Already back in quoted; a second revert is illegal.
	_, err = svc.Revert(ctx, order.ID, 2)
	assert.ErrorIs(t, err, service.ErrIllegalTransition)
}

func TestCreateRuleRejectsEmptyBand(t *testing.T) {
	svc, _, _ := newApprovalService(t)

	_, err := svc.CreateRule(ctxWithRoles(auth.RoleAdmin), domain.CreateApprovalRuleRequest{
		MinAmount:  1000,
		MaxAmount:  1000,
		ApproverID: "manager",
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestCreateRuleRequiresMasterDataWrite(t *testing.T) {
	svc, _, _ := newApprovalService(t)

	_, err := svc.CreateRule(ctxWithRoles(auth.RoleBuyer), domain.CreateApprovalRuleRequest{
		MinAmount:  0,
		MaxAmount:  1000,
		ApproverID: "manager",
	})
	assert.ErrorIs(t, err, service.ErrPermissionDenied)
}

func TestDeleteRule(t *testing.T) {
	svc, _, _ := newApprovalService(t)
	ctx := ctxWithRoles(auth.RoleAdmin)
	rule, err := svc.CreateRule(ctx, domain.CreateApprovalRuleRequest{
		MinAmount:  0,
		MaxAmount:  1000,
		ApproverID: "manager",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRule(ctx, rule.ID))

	rules, err := svc.ListRules(ctx)
	require.NoError(t, err)
	assert.Empty(t, rules)

	assert.ErrorIs(t, svc.DeleteRule(ctx, rule.ID), service.ErrNotFound)
}
