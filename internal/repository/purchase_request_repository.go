package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/domain"
)

// PurchaseRequestRepository handles database operations for purchase requests
type PurchaseRequestRepository struct {
	db *gorm.DB
}

// NewPurchaseRequestRepository creates a new PurchaseRequestRepository
func NewPurchaseRequestRepository(db *gorm.DB) *PurchaseRequestRepository {
	return &PurchaseRequestRepository{db: db}
}

// Create inserts a new purchase request with its items.
func (r *PurchaseRequestRepository) Create(ctx context.Context, req *domain.PurchaseRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create purchase request: %w", err)
	}
	return nil
}

// GetByID retrieves a purchase request with its items.
func (r *PurchaseRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseRequest, error) {
	var req domain.PurchaseRequest
	result := r.db.WithContext(ctx).Preload("Items").First(&req, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get purchase request: %w", result.Error)
	}
	return &req, nil
}

// GetByIDs retrieves several purchase requests with their items, preserving
// no particular order.
func (r *PurchaseRequestRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.PurchaseRequest, error) {
	var reqs []domain.PurchaseRequest
	if err := r.db.WithContext(ctx).Preload("Items").Find(&reqs, "id IN ?", ids).Error; err != nil {
		return nil, fmt.Errorf("failed to get purchase requests: %w", err)
	}
	return reqs, nil
}

// List retrieves purchase requests filtered by status and origin, newest first.
func (r *PurchaseRequestRepository) List(ctx context.Context, status *domain.RequestStatus, origin *domain.RequestOrigin, limit, offset int) ([]domain.PurchaseRequest, int64, error) {
	var reqs []domain.PurchaseRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.PurchaseRequest{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if origin != nil {
		query = query.Where("origin = ?", *origin)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count purchase requests: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	err := query.Preload("Items").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reqs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list purchase requests: %w", err)
	}
	return reqs, total, nil
}

// MarkProcessed flips the given requests to processed only if they are all
// still pending. Zero-row matches mean another actor got there first.
func (r *PurchaseRequestRepository) MarkProcessed(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	if tx == nil {
		tx = r.db
	}
	result := tx.WithContext(ctx).Model(&domain.PurchaseRequest{}).
		Where("id IN ? AND status = ?", ids, domain.RequestStatusPending).
		Update("status", domain.RequestStatusProcessed)
	if result.Error != nil {
		return fmt.Errorf("failed to mark requests processed: %w", result.Error)
	}
	if result.RowsAffected != int64(len(ids)) {
		return ErrVersionConflict
	}
	return nil
}

// PendingItemKeysByOrigin returns the item keys of all still-pending
// requests with the given origin. Used by the replenishment sweep to avoid
// re-requesting material already in flight.
func (r *PurchaseRequestRepository) PendingItemKeysByOrigin(ctx context.Context, origin domain.RequestOrigin) (map[string]bool, error) {
	var reqs []domain.PurchaseRequest
	err := r.db.WithContext(ctx).Preload("Items").
		Where("status = ? AND origin = ?", domain.RequestStatusPending, origin).
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pending requests: %w", err)
	}
	keys := make(map[string]bool)
	for i := range reqs {
		for j := range reqs[i].Items {
			keys[reqs[i].Items[j].Key()] = true
		}
	}
	return keys, nil
}

// Transaction runs fn inside a database transaction.
func (r *PurchaseRequestRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
