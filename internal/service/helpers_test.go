package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/auth"
	"github.com/austral-erp/procurement-api/internal/domain"
)

// ctxWithRoles builds an authenticated context carrying the given roles.
func ctxWithRoles(roles ...auth.Role) context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      "user-1",
		DisplayName: "Ana Torres",
		Email:       "ana.torres@example.com",
		Roles:       roles,
	})
}

// seedQuotedRFQ stores a quoted two-item RFQ at version 3 with quotes from
// both suppliers, ready for adjudication.
func seedQuotedRFQ(t *testing.T, db *gorm.DB, supplierA, supplierB uuid.UUID) *domain.RFQ {
	t.Helper()
	targets := []string{supplierA.String(), supplierB.String()}
	rfq := &domain.RFQ{
		Number:  "RFQ-00000010",
		Date:    time.Now(),
		Status:  domain.RFQStatusQuoted,
		Origin:  domain.RFQOriginStandard,
		Version: 3,
		Items: []domain.RFQItem{
			{Description: "bolts", Quantity: 100, Unit: "u", TargetSupplierIDs: targets},
			{Description: "nuts", Quantity: 50, Unit: "u", TargetSupplierIDs: targets},
		},
		SelectedSuppliers: []domain.RFQSupplier{
			{SupplierID: supplierA, SupplierName: "Aceros SA"},
			{SupplierID: supplierB, SupplierName: "Bulones SRL"},
		},
		Quotes: []domain.SupplierQuote{
			{
				SupplierID:     supplierA,
				SupplierName:   "Aceros SA",
				Price:          70,
				QuoteReference: "Q-1041",
				Items: []domain.QuoteItem{
					{Description: "bolts", UnitPrice: 0.5},
					{Description: "nuts", UnitPrice: 0.4},
				},
			},
			{
				SupplierID:   supplierB,
				SupplierName: "Bulones SRL",
				Price:        66,
				Items: []domain.QuoteItem{
					{Description: "bolts", UnitPrice: 0.45},
					{Description: "nuts", UnitPrice: 0.42},
				},
			},
		},
	}
	require.NoError(t, db.Create(rfq).Error)
	return rfq
}

// countActivities returns how many activity entries target the given record.
func countActivities(t *testing.T, db *gorm.DB, targetID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&domain.Activity{}).Where("target_id = ?", targetID).Count(&count).Error)
	return count
}
