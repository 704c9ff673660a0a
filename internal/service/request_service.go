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
	"github.com/austral-erp/procurement-api/internal/pricing"
	"github.com/austral-erp/procurement-api/internal/repository"
)

// RequestService owns purchase requests: creation, grouping them into a
// draft RFQ and direct awarding against framework contracts.
type RequestService struct {
	requestRepo  *repository.PurchaseRequestRepository
	rfqRepo      *repository.RFQRepository
	contractRepo *repository.ContractRepository
	supplierRepo *repository.SupplierRepository
	activityRepo *repository.ActivityRepository
	sequences    *SequenceService
	logger       *zap.Logger
}

// NewRequestService creates a new RequestService
func NewRequestService(
	requestRepo *repository.PurchaseRequestRepository,
	rfqRepo *repository.RFQRepository,
	contractRepo *repository.ContractRepository,
	supplierRepo *repository.SupplierRepository,
	activityRepo *repository.ActivityRepository,
	sequences *SequenceService,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requestRepo:  requestRepo,
		rfqRepo:      rfqRepo,
		contractRepo: contractRepo,
		supplierRepo: supplierRepo,
		activityRepo: activityRepo,
		sequences:    sequences,
		logger:       logger,
	}
}

// Create registers a new purchase request in pending status with a drawn
// document number.
func (s *RequestService) Create(ctx context.Context, req domain.CreatePurchaseRequestRequest) (*domain.PurchaseRequestDTO, error) {
	if !auth.Can(ctx, auth.ActionWrite, auth.ResourceProcurement) {
		return nil, ErrPermissionDenied
	}

	origin := req.Origin
	if origin == "" {
		origin = domain.RequestOriginManual
	}

	date := time.Now()
	if req.Date != nil {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrInvalidInput, *req.Date)
		}
		date = parsed
	}

	number, err := s.sequences.NextNumber(ctx, domain.DocumentTypePurchaseRequest)
	if err != nil {
		return nil, err
	}

	request := &domain.PurchaseRequest{
		Number:         number.Value,
		NumberDegraded: number.Degraded,
		Date:           date,
		RequesterID:    req.RequesterID,
		RequesterName:  req.RequesterName,
		Origin:         origin,
		Status:         domain.RequestStatusPending,
	}
	for _, in := range req.Items {
		request.Items = append(request.Items, domain.PurchaseRequestItem{
			MaterialID:  in.MaterialID,
			Description: in.Description,
			Quantity:    in.Quantity,
			Unit:        in.Unit,
		})
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("purchase request created",
		zap.String("requestId", request.ID.String()),
		zap.String("number", request.Number),
		zap.String("origin", string(origin)),
		zap.Int("items", len(request.Items)))

	dto := request.ToDTO()
	return &dto, nil
}

// GetByID returns one purchase request.
func (s *RequestService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseRequestDTO, error) {
	if !auth.Can(ctx, auth.ActionRead, auth.ResourceProcurement) {
		return nil, ErrPermissionDenied
	}
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := req.ToDTO()
	return &dto, nil
}

// List returns purchase requests filtered by status and origin.
func (s *RequestService) List(ctx context.Context, status *domain.RequestStatus, origin *domain.RequestOrigin, limit, offset int) ([]domain.PurchaseRequestDTO, int64, error) {
	if !auth.Can(ctx, auth.ActionRead, auth.ResourceProcurement) {
		return nil, 0, ErrPermissionDenied
	}
	reqs, total, err := s.requestRepo.List(ctx, status, origin, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]domain.PurchaseRequestDTO, len(reqs))
	for i := range reqs {
		dtos[i] = reqs[i].ToDTO()
	}
	return dtos, total, nil
}

// GroupIntoDraft merges the items of the given pending requests into a new
// draft RFQ, summing quantities per item key. Sources are marked processed
// and the draft is created in the same transaction; non-pending input is
// rejected before anything is written.
func (s *RequestService) GroupIntoDraft(ctx context.Context, req domain.GroupRequestsRequest) (*domain.RFQDTO, error) {
	if !auth.Can(ctx, auth.ActionWrite, auth.ResourceProcurement) {
		return nil, ErrPermissionDenied
	}

	requests, err := s.requestRepo.GetByIDs(ctx, req.RequestIDs)
	if err != nil {
		return nil, err
	}
	if len(requests) != len(req.RequestIDs) {
		return nil, fmt.Errorf("%w: some requests do not exist", ErrNotFound)
	}
	byID := make(map[uuid.UUID]*domain.PurchaseRequest, len(requests))
	for i := range requests {
		if requests[i].Status != domain.RequestStatusPending {
			return nil, fmt.Errorf("%w: %s", ErrRequestNotPending, requests[i].Number)
		}
		byID[requests[i].ID] = &requests[i]
	}

	// Merge in the caller's id order so provenance is deterministic. When
	// the same key appears in several requests the quantities add up and
	// the first contributor keeps the provenance link.
	type merged struct {
		item  domain.RFQItem
		index int
	}
	mergedByKey := make(map[string]*merged)
	var order []string
	for _, id := range req.RequestIDs {
		request := byID[id]
		for i := range request.Items {
			item := &request.Items[i]
			key := item.Key()
			if m, ok := mergedByKey[key]; ok {
				m.item.Quantity += item.Quantity
				continue
			}
			requestID := request.ID
			mergedByKey[key] = &merged{
				item: domain.RFQItem{
					MaterialID:        item.MaterialID,
					Description:       item.Description,
					Quantity:          item.Quantity,
					Unit:              item.Unit,
					TargetSupplierIDs: req.TargetSupplierIDs,
					PurchaseRequestID: &requestID,
				},
				index: len(order),
			}
			order = append(order, key)
		}
	}

	items := make([]domain.RFQItem, len(order))
	for _, key := range order {
		m := mergedByKey[key]
		items[m.index] = m.item
	}

	number, err := s.sequences.NextNumber(ctx, domain.DocumentTypeRFQ)
	if err != nil {
		return nil, err
	}

	rfq := &domain.RFQ{
		Number:         number.Value,
		NumberDegraded: number.Degraded,
		Date:           time.Now(),
		Status:         domain.RFQStatusDraft,
		Origin:         domain.RFQOriginStandard,
		BuyerID:        actorID(ctx),
		BuyerName:      actorName(ctx),
		Items:          items,
	}

	err = s.requestRepo.Transaction(ctx, func(tx *gorm.DB) error {
		// Sources flip first so a failure strands requests as processed
		// rather than double-grouped.
		if err := s.requestRepo.MarkProcessed(ctx, tx, req.RequestIDs); err != nil {
			return err
		}
		if err := tx.Create(rfq).Error; err != nil {
			return fmt.Errorf("failed to create draft rfq: %w", err)
		}
		return s.activityRepo.Create(ctx, tx, &domain.Activity{
			TargetType: domain.ActivityTargetRFQ,
			TargetID:   rfq.ID,
			Title:      "Draft created from purchase requests",
			Body:       fmt.Sprintf("Grouped %d requests into %s", len(requests), rfq.Number),
			ActorID:    actorID(ctx),
			ActorName:  actorName(ctx),
			OccurredAt: time.Now(),
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, fmt.Errorf("%w: a request was processed concurrently", ErrRequestNotPending)
		}
		return nil, err
	}

	s.logger.Info("requests grouped into draft rfq",
		zap.String("rfqId", rfq.ID.String()),
		zap.String("number", rfq.Number),
		zap.Int("requests", len(requests)),
		zap.Int("items", len(items)))

	created, err := s.rfqRepo.GetByID(ctx, rfq.ID)
	if err != nil {
		return nil, err
	}
	dto := created.ToDTO()
	return &dto, nil
}

// DirectAward converts a pending request straight into a pending-approval
// purchase order against active framework contracts. All-or-nothing: every
// item must carry a material covered by an active contract today, otherwise
// nothing changes and the request stays pending.
func (s *RequestService) DirectAward(ctx context.Context, requestID uuid.UUID) (*domain.RFQDTO, error) {
	if !auth.Can(ctx, auth.ActionWrite, auth.ResourceProcurement) {
		return nil, ErrPermissionDenied
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if request.Status != domain.RequestStatusPending {
		return nil, fmt.Errorf("%w: %s", ErrRequestNotPending, request.Number)
	}

	today := time.Now()
	priceFor := make(map[string]float64)
	var supplierID uuid.UUID
	var supplierName string
	for i := range request.Items {
		item := &request.Items[i]
		if item.MaterialID == nil {
			return nil, fmt.Errorf("%w: %q is a free-text item", ErrNoActiveContract, item.Description)
		}
		contract, err := s.contractRepo.ActiveForMaterial(ctx, *item.MaterialID, today)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %q", ErrNoActiveContract, item.Description)
			}
			return nil, err
		}
		priceFor[item.MaterialID.String()] = contract.Price
		// First contract fixes the supplier; mixed-supplier awards would
		// need one order per supplier, which direct award does not do.
		if supplierID == uuid.Nil {
			supplierID = contract.SupplierID
			supplierName = contract.SupplierName
		} else if supplierID != contract.SupplierID {
			return nil, fmt.Errorf("%w: items are covered by different suppliers", ErrNoActiveContract)
		}
	}

	total := pricing.ContractTotal(request.Items, priceFor)

	number, err := s.sequences.NextNumber(ctx, domain.DocumentTypeRFQ)
	if err != nil {
		return nil, err
	}

	items := make([]domain.RFQItem, len(request.Items))
	quoteItems := make([]domain.QuoteItem, len(request.Items))
	for i := range request.Items {
		item := &request.Items[i]
		reqID := request.ID
		items[i] = domain.RFQItem{
			MaterialID:        item.MaterialID,
			Description:       item.Description,
			Quantity:          item.Quantity,
			Unit:              item.Unit,
			TargetSupplierIDs: []string{supplierID.String()},
			PurchaseRequestID: &reqID,
		}
		quoteItems[i] = domain.QuoteItem{
			MaterialID:  item.MaterialID,
			Description: item.Description,
			UnitPrice:   priceFor[item.MaterialID.String()],
		}
	}

	winnerID := supplierID
	order := &domain.RFQ{
		Number:           number.Value,
		NumberDegraded:   number.Degraded,
		Date:             today,
		Status:           domain.RFQStatusPendingApproval,
		Origin:           domain.RFQOriginContract,
		BuyerID:          actorID(ctx),
		BuyerName:        actorName(ctx),
		Items:            items,
		WinnerSupplierID: &winnerID,
		SelectedSuppliers: []domain.RFQSupplier{
			{SupplierID: supplierID, SupplierName: supplierName},
		},
		Quotes: []domain.SupplierQuote{{
			SupplierID:   supplierID,
			SupplierName: supplierName,
			Price:        total,
			IsSelected:   true,
			Items:        quoteItems,
		}},
	}

	err = s.requestRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.requestRepo.MarkProcessed(ctx, tx, []uuid.UUID{request.ID}); err != nil {
			return err
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create contract order: %w", err)
		}
		return s.activityRepo.Create(ctx, tx, &domain.Activity{
			TargetType: domain.ActivityTargetRFQ,
			TargetID:   order.ID,
			Title:      "Direct award from contract",
			Body:       fmt.Sprintf("Request %s awarded to %s for %.2f", request.Number, supplierName, total),
			ActorID:    actorID(ctx),
			ActorName:  actorName(ctx),
			OccurredAt: time.Now(),
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, fmt.Errorf("%w: request was processed concurrently", ErrRequestNotPending)
		}
		return nil, err
	}

	s.logger.Info("direct award created",
		zap.String("requestId", request.ID.String()),
		zap.String("orderId", order.ID.String()),
		zap.String("supplierId", supplierID.String()),
		zap.Float64("amount", total))

	created, err := s.rfqRepo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	dto := created.ToDTO()
	return &dto, nil
}
