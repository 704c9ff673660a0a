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
	"github.com/austral-erp/procurement-api/internal/pricing"
	"github.com/austral-erp/procurement-api/internal/repository"
)

// RFQService owns the RFQ lifecycle up to adjudication: draft editing,
// sending to suppliers and capturing quotations. Splitting a quoted RFQ
// into purchase orders lives in AdjudicationService.
type RFQService struct {
	rfqRepo      *repository.RFQRepository
	supplierRepo *repository.SupplierRepository
	activityRepo *repository.ActivityRepository
	logger       *zap.Logger
}

// NewRFQService creates a new RFQService
func NewRFQService(
	rfqRepo *repository.RFQRepository,
	supplierRepo *repository.SupplierRepository,
	activityRepo *repository.ActivityRepository,
	logger *zap.Logger,
) *RFQService {
	return &RFQService{
		rfqRepo:      rfqRepo,
		supplierRepo: supplierRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// GetByID returns the RFQ with its full document graph. Quoted records also
// carry the per-item best-price map.
func (s *RFQService) GetByID(ctx context.Context, id uuid.UUID) (*domain.RFQDTO, error) {
	if !auth.Can(ctx, auth.ActionRead, auth.ResourceProcurement) {
		return nil, ErrPermissionDenied
	}
	rfq, err := s.rfqRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := rfq.ToDTO()
	if rfq.Status == domain.RFQStatusQuoted || rfq.Status == domain.RFQStatusPendingApproval {
		dto.BestPrices = bestPriceValues(rfq)
	}
	return &dto, nil
}

// bestPriceValues flattens the best-price map to key -> unit price for the
// API response.
func bestPriceValues(rfq *domain.RFQ) map[string]float64 {
	best := pricing.BestPrices(rfq.Items, rfq.Quotes)
	out := make(map[string]float64, len(best))
	for k, v := range best {
		out[k] = v.UnitPrice
	}
	return out
}

// List returns RFQs filtered by status.
func (s *RFQService) List(ctx context.Context, status *domain.RFQStatus, limit, offset int) ([]domain.RFQDTO, int64, error) {
	if !auth.Can(ctx, auth.ActionRead, auth.ResourceProcurement) {
		return nil, 0, ErrPermissionDenied
	}
	rfqs, total, err := s.rfqRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]domain.RFQDTO, len(rfqs))
	for i := range rfqs {
		dtos[i] = rfqs[i].ToDTO()
	}
	return dtos, total, nil
}

// UpdateItems replaces the item set of a draft RFQ. Only drafts are
// editable; anything later is frozen for quoting.
func (s *RFQService) UpdateItems(ctx context.Context, id uuid.UUID, req domain.UpdateRFQItemsRequest) (*domain.RFQDTO, error) {
	if !auth.Can(ctx, auth.ActionWrite, auth.ResourceProcurement) {
		return nil, ErrPermissionDenied
	}
	rfq, err := s.rfqRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rfq.Status != domain.RFQStatusDraft {
		return nil, fmt.Errorf("%w: items can only be edited in draft", ErrIllegalTransition)
	}

	items := make([]domain.RFQItem, len(req.Items))
	for i, in := range req.Items {
		items[i] = domain.RFQItem{
			MaterialID:        in.MaterialID,
			Description:       in.Description,
			Quantity:          in.Quantity,
			Unit:              in.Unit,
			TargetSupplierIDs: in.TargetSupplierIDs,
		}
	}

	err = s.rfqRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.rfqRepo.ReplaceItems(ctx, tx, rfq.ID, items); err != nil {
			return err
		}
		return s.rfqRepo.UpdateGuarded(ctx, tx, rfq.ID, req.Version, map[string]interface{}{
			"updated_at": time.Now(),
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, ErrStaleRFQ
		}
		return nil, err
	}

	return s.reload(ctx, rfq.ID)
}

// Send moves a draft to sent. Every item must name at least one target
// supplier; the invited-supplier union is recomputed from the items.
func (s *RFQService) Send(ctx context.Context, id uuid.UUID, version int) (*domain.RFQDTO, error) {
	if !auth.Can(ctx, auth.ActionWrite, auth.ResourceProcurement) {
		return nil, ErrPermissionDenied
	}
	rfq, err := s.rfqRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !rfq.Status.CanTransitionTo(domain.RFQStatusSent) {
		return nil, fmt.Errorf("%w: cannot send from %s", ErrIllegalTransition, rfq.Status)
	}
	if err := validateItemTargets(rfq.Items); err != nil {
		return nil, err
	}

	suppliers, err := s.supplierUnion(ctx, rfq.Items)
	if err != nil {
		return nil, err
	}

	err = s.rfqRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.rfqRepo.ReplaceSelectedSuppliers(ctx, tx, rfq.ID, suppliers); err != nil {
			return err
		}
		if err := s.rfqRepo.UpdateGuarded(ctx, tx, rfq.ID, version, map[string]interface{}{
			"status":     domain.RFQStatusSent,
			"updated_at": time.Now(),
		}); err != nil {
			return err
		}
		return s.logActivity(ctx, tx, rfq.ID, "RFQ sent",
			fmt.Sprintf("Sent %s to %d suppliers", rfq.Number, len(suppliers)))
	})
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, ErrStaleRFQ
		}
		return nil, err
	}

	s.logger.Info("rfq sent",
		zap.String("rfqId", rfq.ID.String()),
		zap.String("number", rfq.Number),
		zap.Int("suppliers", len(suppliers)))

	return s.reload(ctx, rfq.ID)
}

// SaveQuotations captures the supplier quotes of a sent RFQ and moves it to
// quoted. Each quote's total is computed from its per-item unit prices over
// the lines targeted at that supplier.
func (s *RFQService) SaveQuotations(ctx context.Context, id uuid.UUID, req domain.SaveQuotationsRequest) (*domain.RFQDTO, error) {
	if !auth.Can(ctx, auth.ActionWrite, auth.ResourceProcurement) {
		return nil, ErrPermissionDenied
	}
	rfq, err := s.rfqRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !rfq.Status.CanTransitionTo(domain.RFQStatusQuoted) {
		return nil, fmt.Errorf("%w: cannot save quotations from %s", ErrIllegalTransition, rfq.Status)
	}
	if err := validateItemTargets(rfq.Items); err != nil {
		return nil, err
	}

	itemsByKey := make(map[string]*domain.RFQItem, len(rfq.Items))
	for i := range rfq.Items {
		itemsByKey[rfq.Items[i].Key()] = &rfq.Items[i]
	}

	invited := make(map[uuid.UUID]bool, len(rfq.SelectedSuppliers))
	for i := range rfq.SelectedSuppliers {
		invited[rfq.SelectedSuppliers[i].SupplierID] = true
	}

	quotes := make([]domain.SupplierQuote, 0, len(req.Quotes))
	for _, in := range req.Quotes {
		if !invited[in.SupplierID] {
			return nil, fmt.Errorf("%w: supplier %s was not invited to quote", ErrInvalidInput, in.SupplierID)
		}
		quote := domain.SupplierQuote{
			SupplierID:     in.SupplierID,
			QuoteReference: in.QuoteReference,
		}
		for _, qi := range in.Items {
			item, ok := itemsByKey[qi.Key]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownItemKeys, qi.Key)
			}
			quote.Items = append(quote.Items, domain.QuoteItem{
				MaterialID:  item.MaterialID,
				Description: item.Description,
				UnitPrice:   qi.UnitPrice,
			})
		}
		quote.Price = pricing.QuoteTotal(rfq.Items, &quote)
		if supplier, err := s.supplierRepo.GetByID(ctx, in.SupplierID); err == nil {
			quote.SupplierName = supplier.BusinessName
		}
		quotes = append(quotes, quote)
	}

	err = s.rfqRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.rfqRepo.ReplaceQuotes(ctx, tx, rfq.ID, quotes); err != nil {
			return err
		}
		if err := s.rfqRepo.UpdateGuarded(ctx, tx, rfq.ID, req.Version, map[string]interface{}{
			"status":     domain.RFQStatusQuoted,
			"updated_at": time.Now(),
		}); err != nil {
			return err
		}
		return s.logActivity(ctx, tx, rfq.ID, "Quotations captured",
			fmt.Sprintf("Captured %d supplier quotes on %s", len(quotes), rfq.Number))
	})
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, ErrStaleRFQ
		}
		return nil, err
	}

	s.logger.Info("quotations saved",
		zap.String("rfqId", rfq.ID.String()),
		zap.Int("quotes", len(quotes)))

	return s.reload(ctx, rfq.ID)
}

// validateItemTargets rejects items without target suppliers, naming them.
func validateItemTargets(items []domain.RFQItem) error {
	var missing []string
	for i := range items {
		if len(items[i].TargetSupplierIDs) == 0 {
			missing = append(missing, items[i].Description)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingTargetSuppliers, strings.Join(missing, ", "))
	}
	return nil
}

// supplierUnion builds the deduplicated invited-supplier list across all
// items, resolving names from the supplier master.
func (s *RFQService) supplierUnion(ctx context.Context, items []domain.RFQItem) ([]domain.RFQSupplier, error) {
	seen := make(map[string]bool)
	var ids []uuid.UUID
	for i := range items {
		for _, raw := range items[i].TargetSupplierIDs {
			if seen[raw] {
				continue
			}
			seen[raw] = true
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: bad supplier id %q", ErrInvalidInput, raw)
			}
			ids = append(ids, id)
		}
	}

	names := make(map[uuid.UUID]string)
	if suppliers, err := s.supplierRepo.GetByIDs(ctx, ids); err == nil {
		for i := range suppliers {
			names[suppliers[i].ID] = suppliers[i].BusinessName
		}
	}

	union := make([]domain.RFQSupplier, len(ids))
	for i, id := range ids {
		union[i] = domain.RFQSupplier{SupplierID: id, SupplierName: names[id]}
	}
	return union, nil
}

// reload fetches the RFQ after a mutation and converts it for the API.
func (s *RFQService) reload(ctx context.Context, id uuid.UUID) (*domain.RFQDTO, error) {
	rfq, err := s.rfqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := rfq.ToDTO()
	if rfq.Status == domain.RFQStatusQuoted || rfq.Status == domain.RFQStatusPendingApproval {
		dto.BestPrices = bestPriceValues(rfq)
	}
	return &dto, nil
}

// logActivity appends an event to the RFQ's trail, stamped with the caller.
func (s *RFQService) logActivity(ctx context.Context, tx *gorm.DB, rfqID uuid.UUID, title, body string) error {
	activity := &domain.Activity{
		TargetType: domain.ActivityTargetRFQ,
		TargetID:   rfqID,
		Title:      title,
		Body:       body,
		OccurredAt: time.Now(),
	}
	if user, ok := auth.FromContext(ctx); ok {
		activity.ActorID = user.UserID
		activity.ActorName = user.DisplayName
	}
	return s.activityRepo.Create(ctx, tx, activity)
}

// Activities returns the event trail of an RFQ.
func (s *RFQService) Activities(ctx context.Context, rfqID uuid.UUID) ([]domain.ActivityDTO, error) {
	if !auth.Can(ctx, auth.ActionRead, auth.ResourceProcurement) {
		return nil, ErrPermissionDenied
	}
	activities, err := s.activityRepo.ListByTarget(ctx, domain.ActivityTargetRFQ, rfqID, 100)
	if err != nil {
		return nil, err
	}
	dtos := make([]domain.ActivityDTO, len(activities))
	for i := range activities {
		dtos[i] = activities[i].ToDTO()
	}
	return dtos, nil
}
