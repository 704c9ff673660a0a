package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/domain"
)

// ContractRepository handles database operations for framework contracts
type ContractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new ContractRepository
func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// Create inserts a new contract.
func (r *ContractRepository) Create(ctx context.Context, c *domain.Contract) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

// GetByID retrieves a contract.
func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	var c domain.Contract
	result := r.db.WithContext(ctx).First(&c, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get contract: %w", result.Error)
	}
	return &c, nil
}

// ActiveForMaterial returns the active contract covering the material on
// the given day, or gorm.ErrRecordNotFound. When several overlap the most
// recently created wins.
func (r *ContractRepository) ActiveForMaterial(ctx context.Context, materialID uuid.UUID, day time.Time) (*domain.Contract, error) {
	var c domain.Contract
	result := r.db.WithContext(ctx).
		Where("material_id = ? AND is_active = ? AND valid_from <= ? AND valid_to >= ?",
			materialID, true, day, day).
		Order("created_at DESC").
		First(&c)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find active contract: %w", result.Error)
	}
	return &c, nil
}

// List returns contracts, optionally only currently active ones.
func (r *ContractRepository) List(ctx context.Context, activeOnly bool) ([]domain.Contract, error) {
	var contracts []domain.Contract
	query := r.db.WithContext(ctx)
	if activeOnly {
		now := time.Now()
		query = query.Where("is_active = ? AND valid_from <= ? AND valid_to >= ?", true, now, now)
	}
	if err := query.Order("valid_from DESC").Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}
