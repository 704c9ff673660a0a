package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/domain"
)

// ApprovalRuleRepository handles database operations for approval rules
type ApprovalRuleRepository struct {
	db *gorm.DB
}

// NewApprovalRuleRepository creates a new ApprovalRuleRepository
func NewApprovalRuleRepository(db *gorm.DB) *ApprovalRuleRepository {
	return &ApprovalRuleRepository{db: db}
}

// Create inserts a new approval rule.
func (r *ApprovalRuleRepository) Create(ctx context.Context, rule *domain.ApprovalRule) error {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return fmt.Errorf("failed to create approval rule: %w", err)
	}
	return nil
}

// GetByID retrieves an approval rule.
func (r *ApprovalRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ApprovalRule, error) {
	var rule domain.ApprovalRule
	result := r.db.WithContext(ctx).First(&rule, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get approval rule: %w", result.Error)
	}
	return &rule, nil
}

// ListMatching returns the rules whose band covers the amount, in the
// routing policy's precedence order: narrowest band first, then lower
// minimum, then creation order.
func (r *ApprovalRuleRepository) ListMatching(ctx context.Context, amount float64) ([]domain.ApprovalRule, error) {
	var rules []domain.ApprovalRule
	err := r.db.WithContext(ctx).
		Where("min_amount <= ? AND max_amount >= ?", amount, amount).
		Order("(max_amount - min_amount) ASC, min_amount ASC, created_at ASC").
		Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to match approval rules: %w", err)
	}
	return rules, nil
}

// List returns all approval rules ordered by band start.
func (r *ApprovalRuleRepository) List(ctx context.Context) ([]domain.ApprovalRule, error) {
	var rules []domain.ApprovalRule
	if err := r.db.WithContext(ctx).Order("min_amount ASC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to list approval rules: %w", err)
	}
	return rules, nil
}

// Delete removes an approval rule.
func (r *ApprovalRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.ApprovalRule{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete approval rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
