package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/domain"
)

// ActivityRepository handles database operations for the document event trail
type ActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create inserts a new activity, optionally inside a caller's transaction.
func (r *ActivityRepository) Create(ctx context.Context, tx *gorm.DB, a *domain.Activity) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// ListByTarget returns the event trail of a document, newest first.
func (r *ActivityRepository) ListByTarget(ctx context.Context, targetType domain.ActivityTargetType, targetID uuid.UUID, limit int) ([]domain.Activity, error) {
	var activities []domain.Activity
	if limit <= 0 {
		limit = 100
	}
	err := r.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}
