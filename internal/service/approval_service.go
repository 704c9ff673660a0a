package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/auth"
	"github.com/austral-erp/procurement-api/internal/domain"
	"github.com/austral-erp/procurement-api/internal/repository"
)

// ApprovalService gates pending purchase orders behind amount-based rules
// and owns the approve/revert transitions.
type ApprovalService struct {
	rfqRepo      *repository.RFQRepository
	ruleRepo     *repository.ApprovalRuleRepository
	activityRepo *repository.ActivityRepository
	sequences    *SequenceService
	logger       *zap.Logger
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(
	rfqRepo *repository.RFQRepository,
	ruleRepo *repository.ApprovalRuleRepository,
	activityRepo *repository.ActivityRepository,
	sequences *SequenceService,
	logger *zap.Logger,
) *ApprovalService {
	return &ApprovalService{
		rfqRepo:      rfqRepo,
		ruleRepo:     ruleRepo,
		activityRepo: activityRepo,
		sequences:    sequences,
		logger:       logger,
	}
}

// RequiredApprover resolves which rule governs an amount. When bands
// overlap the narrowest wins; ties break toward the lower minimum, then
// creation order.
func (s *ApprovalService) RequiredApprover(ctx context.Context, amount float64) (*domain.ApprovalRuleDTO, error) {
	rules, err := s.ruleRepo.ListMatching(ctx, amount)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: %.2f", ErrNoApprovalRule, amount)
	}
	dto := rules[0].ToDTO()
	return &dto, nil
}

// Approve converts a pending-approval record into a purchase order. The
// caller must hold the approve capability; an official purchase-order
// number is drawn if the record does not carry one yet.
func (s *ApprovalService) Approve(ctx context.Context, id uuid.UUID, version int) (*domain.RFQDTO, error) {
	if !auth.Can(ctx, auth.ActionApprove, auth.ResourceProcurement) {
		return nil, ErrPermissionDenied
	}

	rfq, err := s.rfqRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !rfq.Status.CanTransitionTo(domain.RFQStatusConvertedToPO) {
		return nil, fmt.Errorf("%w: cannot approve from %s", ErrIllegalTransition, rfq.Status)
	}

	amount := selectedAmount(rfq)
	if _, err := s.RequiredApprover(ctx, amount); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":     domain.RFQStatusConvertedToPO,
		"updated_at": time.Now(),
	}
	var orderNumber string
	if !isOfficialOrderNumber(rfq.Number) {
		number, err := s.sequences.NextNumber(ctx, domain.DocumentTypePurchaseOrder)
		if err != nil {
			return nil, err
		}
		orderNumber = number.Value
		updates["number"] = number.Value
		updates["number_degraded"] = number.Degraded
	}

	err = s.rfqRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.rfqRepo.UpdateGuarded(ctx, tx, rfq.ID, version, updates); err != nil {
			return err
		}
		body := fmt.Sprintf("Approved for %.2f", amount)
		if orderNumber != "" {
			body = fmt.Sprintf("Approved for %.2f as %s", amount, orderNumber)
		}
		return s.activityRepo.Create(ctx, tx, &domain.Activity{
			TargetType: domain.ActivityTargetRFQ,
			TargetID:   rfq.ID,
			Title:      "Purchase order approved",
			Body:       body,
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

	s.logger.Info("purchase order approved",
		zap.String("rfqId", rfq.ID.String()),
		zap.Float64("amount", amount),
		zap.String("orderNumber", orderNumber))

	return s.reload(ctx, rfq.ID)
}

// Revert sends a pending-approval record back to quoted so the buyer can
// re-adjudicate. The winner and every selection flag are cleared. Items
// already split away from the origin RFQ are not merged back.
func (s *ApprovalService) Revert(ctx context.Context, id uuid.UUID, version int) (*domain.RFQDTO, error) {
	if !auth.Can(ctx, auth.ActionApprove, auth.ResourceProcurement) {
		return nil, ErrPermissionDenied
	}

	rfq, err := s.rfqRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rfq.Status != domain.RFQStatusPendingApproval {
		return nil, fmt.Errorf("%w: cannot revert from %s", ErrIllegalTransition, rfq.Status)
	}

	err = s.rfqRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.rfqRepo.ClearSelections(ctx, tx, rfq.ID); err != nil {
			return err
		}
		if err := s.rfqRepo.UpdateGuarded(ctx, tx, rfq.ID, version, map[string]interface{}{
			"status":             domain.RFQStatusQuoted,
			"winner_supplier_id": nil,
			"updated_at":         time.Now(),
		}); err != nil {
			return err
		}
		return s.activityRepo.Create(ctx, tx, &domain.Activity{
			TargetType: domain.ActivityTargetRFQ,
			TargetID:   rfq.ID,
			Title:      "Approval reverted",
			Body:       fmt.Sprintf("%s sent back to quoted", rfq.Number),
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

	s.logger.Info("approval reverted", zap.String("rfqId", rfq.ID.String()))

	return s.reload(ctx, rfq.ID)
}

// CreateRule registers a new approval band.
func (s *ApprovalService) CreateRule(ctx context.Context, req domain.CreateApprovalRuleRequest) (*domain.ApprovalRuleDTO, error) {
	if !auth.Can(ctx, auth.ActionWrite, auth.ResourceMasterData) {
		return nil, ErrPermissionDenied
	}
	if req.MaxAmount <= req.MinAmount {
		return nil, fmt.Errorf("%w: band must have positive width", ErrInvalidInput)
	}
	rule := &domain.ApprovalRule{
		MinAmount:    req.MinAmount,
		MaxAmount:    req.MaxAmount,
		ApproverID:   req.ApproverID,
		ApproverName: req.ApproverName,
	}
	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}
	dto := rule.ToDTO()
	return &dto, nil
}

// ListRules returns all approval bands.
func (s *ApprovalService) ListRules(ctx context.Context) ([]domain.ApprovalRuleDTO, error) {
	rules, err := s.ruleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]domain.ApprovalRuleDTO, len(rules))
	for i := range rules {
		dtos[i] = rules[i].ToDTO()
	}
	return dtos, nil
}

// DeleteRule removes an approval band.
func (s *ApprovalService) DeleteRule(ctx context.Context, id uuid.UUID) error {
	if !auth.Can(ctx, auth.ActionWrite, auth.ResourceMasterData) {
		return ErrPermissionDenied
	}
	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// selectedAmount returns the confirmed price of the selected quote.
func selectedAmount(rfq *domain.RFQ) float64 {
	for i := range rfq.Quotes {
		if rfq.Quotes[i].IsSelected {
			return rfq.Quotes[i].Price
		}
	}
	return 0
}

// isOfficialOrderNumber reports whether the record already carries a drawn
// purchase-order number rather than the split-derived working number.
func isOfficialOrderNumber(number string) bool {
	return len(number) >= 3 && number[:3] == "PO-"
}

func (s *ApprovalService) reload(ctx context.Context, id uuid.UUID) (*domain.RFQDTO, error) {
	rfq, err := s.rfqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := rfq.ToDTO()
	if rfq.Status == domain.RFQStatusQuoted {
		dto.BestPrices = bestPriceValues(rfq)
	}
	return &dto, nil
}
