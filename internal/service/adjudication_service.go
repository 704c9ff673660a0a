package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/auth"
	"github.com/austral-erp/procurement-api/internal/domain"
	"github.com/austral-erp/procurement-api/internal/repository"
)

// AdjudicationService turns quoted RFQs into purchase orders. A split
// adjudication awards a subset of items to one supplier: the original RFQ
// shrinks to the remaining items (or closes when none remain) and a new
// record is born pending approval with the awarded items and the winning
// quote confirmed. The whole move runs in one transaction guarded by the
// RFQ's version, so two buyers adjudicating the same document concurrently
// cannot both win.
type AdjudicationService struct {
	rfqRepo      *repository.RFQRepository
	activityRepo *repository.ActivityRepository
	logger       *zap.Logger
}

// NewAdjudicationService creates a new AdjudicationService
func NewAdjudicationService(
	rfqRepo *repository.RFQRepository,
	activityRepo *repository.ActivityRepository,
	logger *zap.Logger,
) *AdjudicationService {
	return &AdjudicationService{
		rfqRepo:      rfqRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// SplitAdjudicate awards the named items of a quoted RFQ to one supplier.
// Returns the newly created pending-approval record.
func (s *AdjudicationService) SplitAdjudicate(ctx context.Context, rfqID uuid.UUID, req domain.SplitAdjudicationRequest) (*domain.RFQDTO, error) {
	if !auth.Can(ctx, auth.ActionWrite, auth.ResourceProcurement) {
		return nil, ErrPermissionDenied
	}

	rfq, err := s.rfqRepo.GetByID(ctx, rfqID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rfq.Status != domain.RFQStatusQuoted {
		return nil, fmt.Errorf("%w: can only adjudicate a quoted rfq, got %s", ErrIllegalTransition, rfq.Status)
	}

	winnerQuote := findQuote(rfq.Quotes, req.SupplierID)
	if winnerQuote == nil {
		return nil, fmt.Errorf("%w: supplier %s has no quote on this rfq", ErrInvalidInput, req.SupplierID)
	}

	awarded, remaining, err := partitionItems(rfq.Items, req.ItemKeys)
	if err != nil {
		return nil, err
	}

	order := s.buildOrder(rfq, req, awarded)

	err = s.rfqRepo.Transaction(ctx, func(tx *gorm.DB) error {
		// Shrink or close the original before the new record exists, so a
		// failure can never leave the same item awarded twice.
		originalUpdates := map[string]interface{}{"updated_at": time.Now()}
		if len(remaining) == 0 {
			originalUpdates["status"] = domain.RFQStatusClosed
		}
		if err := s.rfqRepo.ReplaceItems(ctx, tx, rfq.ID, remaining); err != nil {
			return err
		}
		if err := s.rfqRepo.UpdateGuarded(ctx, tx, rfq.ID, req.Version, originalUpdates); err != nil {
			return err
		}

		// The working number counts this record among its siblings, so
		// back-to-back splits of the same RFQ stay distinguishable.
		siblings, err := s.rfqRepo.CountByRelatedNumber(ctx, tx, rfq.Number)
		if err != nil {
			return err
		}
		order.Number = fmt.Sprintf("%s/A%d", rfq.Number, siblings+1)

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return s.activityRepo.Create(ctx, tx, &domain.Activity{
			TargetType: domain.ActivityTargetRFQ,
			TargetID:   rfq.ID,
			Title:      "Items adjudicated",
			Body: fmt.Sprintf("Awarded %d items to %s as %s",
				len(awarded), winnerQuote.SupplierName, order.Number),
			ActorID:    actorID(ctx),
			ActorName:  actorName(ctx),
			OccurredAt: time.Now(),
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, ErrStaleRFQ
		}
		return nil, err
	}

	s.logger.Info("rfq adjudicated",
		zap.String("rfqId", rfq.ID.String()),
		zap.String("orderId", order.ID.String()),
		zap.String("supplierId", req.SupplierID.String()),
		zap.Int("awardedItems", len(awarded)),
		zap.Int("remainingItems", len(remaining)),
		zap.Bool("originalClosed", len(remaining) == 0))

	created, err := s.rfqRepo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	dto := created.ToDTO()
	return &dto, nil
}

// buildOrder assembles the pending-approval record for the awarded subset.
// It carries the full quote list for audit, with the winner selected and
// its price overwritten to the confirmed amount, and the supplier list
// narrowed to the winner. The working number is assigned inside the
// transaction; the official purchase-order number comes at approval.
func (s *AdjudicationService) buildOrder(rfq *domain.RFQ, req domain.SplitAdjudicationRequest, awarded []domain.RFQItem) *domain.RFQ {
	items := make([]domain.RFQItem, len(awarded))
	for i, item := range awarded {
		items[i] = domain.RFQItem{
			MaterialID:        item.MaterialID,
			Description:       item.Description,
			Quantity:          item.Quantity,
			Unit:              item.Unit,
			TargetSupplierIDs: item.TargetSupplierIDs,
			PurchaseRequestID: item.PurchaseRequestID,
		}
	}

	quotes := make([]domain.SupplierQuote, len(rfq.Quotes))
	var winnerName string
	for i := range rfq.Quotes {
		q := rfq.Quotes[i]
		copied := domain.SupplierQuote{
			SupplierID:     q.SupplierID,
			SupplierName:   q.SupplierName,
			Price:          q.Price,
			QuoteReference: q.QuoteReference,
		}
		for _, qi := range q.Items {
			copied.Items = append(copied.Items, domain.QuoteItem{
				MaterialID:  qi.MaterialID,
				Description: qi.Description,
				UnitPrice:   qi.UnitPrice,
			})
		}
		if q.SupplierID == req.SupplierID {
			copied.IsSelected = true
			copied.Price = req.Amount
			winnerName = q.SupplierName
		}
		quotes[i] = copied
	}

	winnerID := req.SupplierID
	return &domain.RFQ{
		Date:             time.Now(),
		Status:           domain.RFQStatusPendingApproval,
		Origin:           rfq.Origin,
		BuyerID:          rfq.BuyerID,
		BuyerName:        rfq.BuyerName,
		Items:            items,
		Quotes:           quotes,
		WinnerSupplierID: &winnerID,
		RelatedRFQNumber: rfq.Number,
		SelectedSuppliers: []domain.RFQSupplier{
			{SupplierID: winnerID, SupplierName: winnerName},
		},
	}
}

// partitionItems splits items into awarded and remaining by key. Every
// requested key must exist; duplicates in the request are tolerated.
func partitionItems(items []domain.RFQItem, keys []string) (awarded, remaining []domain.RFQItem, err error) {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}

	known := make(map[string]bool, len(items))
	for i := range items {
		key := items[i].Key()
		known[key] = true
		if want[key] {
			awarded = append(awarded, items[i])
		} else {
			remaining = append(remaining, items[i])
		}
	}

	var unknown []string
	for _, k := range keys {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownItemKeys, strings.Join(unknown, ", "))
	}
	return awarded, remaining, nil
}

// findQuote returns the quote of the given supplier, if present.
func findQuote(quotes []domain.SupplierQuote, supplierID uuid.UUID) *domain.SupplierQuote {
	for i := range quotes {
		if quotes[i].SupplierID == supplierID {
			return &quotes[i]
		}
	}
	return nil
}

func actorID(ctx context.Context) string {
	if user, ok := auth.FromContext(ctx); ok {
		return user.UserID
	}
	return ""
}

func actorName(ctx context.Context) string {
	if user, ok := auth.FromContext(ctx); ok {
		return user.DisplayName
	}
	return ""
}
