package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/domain"
)

// StockLevelRepository handles database operations for warehouse stock levels
type StockLevelRepository struct {
	db *gorm.DB
}

// NewStockLevelRepository creates a new StockLevelRepository
func NewStockLevelRepository(db *gorm.DB) *StockLevelRepository {
	return &StockLevelRepository{db: db}
}

// GetByID retrieves a stock level with its material.
func (r *StockLevelRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.StockLevel, error) {
	var s domain.StockLevel
	result := r.db.WithContext(ctx).Preload("Material").First(&s, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get stock level: %w", result.Error)
	}
	return &s, nil
}

// ListBelowMinimum returns stock levels that have fallen under their
// minimum, with material preloaded. Levels with a zero minimum never match.
func (r *StockLevelRepository) ListBelowMinimum(ctx context.Context) ([]domain.StockLevel, error) {
	var levels []domain.StockLevel
	err := r.db.WithContext(ctx).Preload("Material").
		Where("minimum_level > 0 AND on_hand < minimum_level").
		Order("warehouse_code ASC").
		Find(&levels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stock below minimum: %w", err)
	}
	return levels, nil
}

// List returns stock levels, optionally filtered by warehouse.
func (r *StockLevelRepository) List(ctx context.Context, warehouseCode string) ([]domain.StockLevel, error) {
	var levels []domain.StockLevel
	query := r.db.WithContext(ctx).Preload("Material")
	if warehouseCode != "" {
		query = query.Where("warehouse_code = ?", warehouseCode)
	}
	if err := query.Order("warehouse_code ASC").Find(&levels).Error; err != nil {
		return nil, fmt.Errorf("failed to list stock levels: %w", err)
	}
	return levels, nil
}

// Save persists a stock level record.
func (r *StockLevelRepository) Save(ctx context.Context, s *domain.StockLevel) error {
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return fmt.Errorf("failed to save stock level: %w", err)
	}
	return nil
}
