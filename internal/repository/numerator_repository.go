package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/domain"
)

// NumeratorRepository handles database operations for document numerators.
// One numerator exists per document series; drawing a number is an atomic
// row-locked increment so concurrent callers can never observe the same value.
type NumeratorRepository struct {
	db *gorm.DB
}

// NewNumeratorRepository creates a new NumeratorRepository
func NewNumeratorRepository(db *gorm.DB) *NumeratorRepository {
	return &NumeratorRepository{db: db}
}

// ErrNumeratorNotFound is returned when no numerator is assigned to a
// document type. Callers fall back to degraded numbering.
var ErrNumeratorNotFound = errors.New("numerator not found")

// Increment atomically bumps the numerator assigned to docType and returns
// its state after the bump. The increment runs as a single UPDATE so two
// concurrent draws serialize on the row and can never observe the same value.
func (r *NumeratorRepository) Increment(ctx context.Context, docType domain.DocumentType) (*domain.Numerator, error) {
	var num domain.Numerator

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Numerator{}).
			Where("assigned_type = ?", docType).
			Updates(map[string]interface{}{
				"current_value": gorm.Expr("current_value + 1"),
				"updated_at":    time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update numerator: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNumeratorNotFound
		}
		if err := tx.Where("assigned_type = ?", docType).First(&num).Error; err != nil {
			return fmt.Errorf("failed to load numerator: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &num, nil
}

// GetByType retrieves the numerator for a document type without incrementing.
func (r *NumeratorRepository) GetByType(ctx context.Context, docType domain.DocumentType) (*domain.Numerator, error) {
	var num domain.Numerator
	result := r.db.WithContext(ctx).Where("assigned_type = ?", docType).First(&num)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNumeratorNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get numerator: %w", result.Error)
	}
	return &num, nil
}

// CreateIfMissing inserts a numerator for the given series unless one is
// already assigned. Used by idempotent seeding on startup.
func (r *NumeratorRepository) CreateIfMissing(ctx context.Context, num *domain.Numerator) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Numerator
		result := tx.Where("assigned_type = ?", num.AssignedType).First(&existing)
		if result.Error == nil {
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check numerator: %w", result.Error)
		}
		if err := tx.Create(num).Error; err != nil {
			return fmt.Errorf("failed to create numerator: %w", err)
		}
		return nil
	})
}

// List returns all numerators ordered by name.
func (r *NumeratorRepository) List(ctx context.Context) ([]domain.Numerator, error) {
	var nums []domain.Numerator
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&nums).Error; err != nil {
		return nil, fmt.Errorf("failed to list numerators: %w", err)
	}
	return nums, nil
}
