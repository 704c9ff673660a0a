package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/austral-erp/procurement-api/internal/domain"
	"github.com/austral-erp/procurement-api/internal/repository"
)

// ReplenishmentService raises warehouse-origin purchase requests for stock
// that has fallen below minimum. It is driven by the scheduler, not by
// users, so it carries no capability checks.
type ReplenishmentService struct {
	stockRepo   *repository.StockLevelRepository
	requestRepo *repository.PurchaseRequestRepository
	sequences   *SequenceService
	logger      *zap.Logger
}

// NewReplenishmentService creates a new ReplenishmentService
func NewReplenishmentService(
	stockRepo *repository.StockLevelRepository,
	requestRepo *repository.PurchaseRequestRepository,
	sequences *SequenceService,
	logger *zap.Logger,
) *ReplenishmentService {
	return &ReplenishmentService{
		stockRepo:   stockRepo,
		requestRepo: requestRepo,
		sequences:   sequences,
		logger:      logger,
	}
}

// Sweep scans stock levels below minimum and creates one warehouse-origin
// purchase request covering them. Material already named on a still-pending
// warehouse request is skipped so the same shortage is never requested
// twice. Returns the number of items requested.
func (s *ReplenishmentService) Sweep(ctx context.Context, warehouseCode string) (int, error) {
	levels, err := s.stockRepo.ListBelowMinimum(ctx)
	if err != nil {
		return 0, err
	}
	if warehouseCode != "" {
		var filtered []domain.StockLevel
		for i := range levels {
			if levels[i].WarehouseCode == warehouseCode {
				filtered = append(filtered, levels[i])
			}
		}
		levels = filtered
	}
	if len(levels) == 0 {
		return 0, nil
	}

	inFlight, err := s.requestRepo.PendingItemKeysByOrigin(ctx, domain.RequestOriginWarehouse)
	if err != nil {
		return 0, err
	}

	var items []domain.PurchaseRequestItem
	for i := range levels {
		level := &levels[i]
		if level.Material == nil || inFlight[level.MaterialID.String()] {
			continue
		}
		quantity := level.ReorderQuantity
		if quantity <= 0 {
			quantity = level.MinimumLevel - level.OnHand
		}
		materialID := level.MaterialID
		items = append(items, domain.PurchaseRequestItem{
			MaterialID:  &materialID,
			Description: level.Material.Description,
			Quantity:    quantity,
			Unit:        level.Material.UnitOfMeasure,
		})
	}
	if len(items) == 0 {
		return 0, nil
	}

	number, err := s.sequences.NextNumber(ctx, domain.DocumentTypePurchaseRequest)
	if err != nil {
		return 0, err
	}

	request := &domain.PurchaseRequest{
		Number:         number.Value,
		NumberDegraded: number.Degraded,
		Date:           time.Now(),
		RequesterID:    "system",
		RequesterName:  "Warehouse replenishment",
		Origin:         domain.RequestOriginWarehouse,
		Status:         domain.RequestStatusPending,
		Items:          items,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return 0, err
	}

	s.logger.Info("replenishment request created",
		zap.String("requestId", request.ID.String()),
		zap.String("number", request.Number),
		zap.Int("items", len(items)))
	return len(items), nil
}
