package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/domain"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	result := r.db.WithContext(ctx).First(&u, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get user: %w", result.Error)
	}
	return &u, nil
}

// ListApprovers returns the active users flagged as approvers.
func (r *UserRepository) ListApprovers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("is_approver = ? AND is_active = ?", true, true).
		Order("email ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list approvers: %w", err)
	}
	return users, nil
}

// Upsert inserts or updates a user record by id.
func (r *UserRepository) Upsert(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}
