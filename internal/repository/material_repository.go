package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/domain"
)

// MaterialRepository handles database operations for the material catalog.
// The catalog is written only by the ERP sync job; everything else reads.
type MaterialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository creates a new MaterialRepository
func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// GetByID retrieves a material.
func (r *MaterialRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Material, error) {
	var m domain.Material
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get material: %w", result.Error)
	}
	return &m, nil
}

// GetByCode retrieves a material by its ERP code.
func (r *MaterialRepository) GetByCode(ctx context.Context, code string) (*domain.Material, error) {
	var m domain.Material
	result := r.db.WithContext(ctx).First(&m, "code = ?", code)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get material by code: %w", result.Error)
	}
	return &m, nil
}

// Search lists active materials matching the query by code or description.
func (r *MaterialRepository) Search(ctx context.Context, query string, limit int) ([]domain.Material, error) {
	var materials []domain.Material
	if limit <= 0 {
		limit = 50
	}
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(code) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like)
	}
	if err := q.Order("code ASC").Limit(limit).Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("failed to search materials: %w", err)
	}
	return materials, nil
}

// Upsert inserts or updates a material keyed by its ERP code. Used by the
// master-data sync job.
func (r *MaterialRepository) Upsert(ctx context.Context, m *domain.Material) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Material
		result := tx.Where("code = ?", m.Code).First(&existing)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if err := tx.Create(m).Error; err != nil {
				return fmt.Errorf("failed to create material: %w", err)
			}
			return nil
		}
		if result.Error != nil {
			return fmt.Errorf("failed to check material: %w", result.Error)
		}
		m.ID = existing.ID
		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"description":           m.Description,
			"unit_of_measure":       m.UnitOfMeasure,
			"assigned_supplier_ids": m.AssignedSupplierIDs,
			"is_active":             m.IsActive,
		}).Error; err != nil {
			return fmt.Errorf("failed to update material: %w", err)
		}
		return nil
	})
}
