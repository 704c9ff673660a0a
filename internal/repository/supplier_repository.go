package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/domain"
)

// SupplierRepository handles database operations for the supplier master.
// Written only by the ERP sync job; everything else reads.
type SupplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new SupplierRepository
func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

// GetByID retrieves a supplier.
func (r *SupplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	var s domain.Supplier
	result := r.db.WithContext(ctx).First(&s, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get supplier: %w", result.Error)
	}
	return &s, nil
}

// GetByIDs retrieves several suppliers at once.
func (r *SupplierRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Supplier, error) {
	var suppliers []domain.Supplier
	if err := r.db.WithContext(ctx).Find(&suppliers, "id IN ?", ids).Error; err != nil {
		return nil, fmt.Errorf("failed to get suppliers: %w", err)
	}
	return suppliers, nil
}

// Search lists active suppliers matching the query by name or tax id.
func (r *SupplierRepository) Search(ctx context.Context, query string, limit int) ([]domain.Supplier, error) {
	var suppliers []domain.Supplier
	if limit <= 0 {
		limit = 50
	}
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(business_name) LIKE LOWER(?) OR LOWER(cuit) LIKE LOWER(?)", like, like)
	}
	if err := q.Order("business_name ASC").Limit(limit).Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("failed to search suppliers: %w", err)
	}
	return suppliers, nil
}

// Upsert inserts or updates a supplier keyed by its tax id. Used by the
// master-data sync job.
func (r *SupplierRepository) Upsert(ctx context.Context, s *domain.Supplier) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Supplier
		result := tx.Where("cuit = ?", s.CUIT).First(&existing)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if err := tx.Create(s).Error; err != nil {
				return fmt.Errorf("failed to create supplier: %w", err)
			}
			return nil
		}
		if result.Error != nil {
			return fmt.Errorf("failed to check supplier: %w", result.Error)
		}
		s.ID = existing.ID
		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"number":        s.Number,
			"business_name": s.BusinessName,
			"email":         s.Email,
			"phone":         s.Phone,
			"is_active":     s.IsActive,
		}).Error; err != nil {
			return fmt.Errorf("failed to update supplier: %w", err)
		}
		return nil
	})
}
