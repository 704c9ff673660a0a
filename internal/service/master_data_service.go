package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/auth"
	"github.com/austral-erp/procurement-api/internal/domain"
	"github.com/austral-erp/procurement-api/internal/repository"
)

// MasterDataService exposes the read-only master data synced from the ERP:
// materials, suppliers, contracts, approvers and warehouse stock levels.
type MasterDataService struct {
	materialRepo *repository.MaterialRepository
	supplierRepo *repository.SupplierRepository
	contractRepo *repository.ContractRepository
	userRepo     *repository.UserRepository
	stockRepo    *repository.StockLevelRepository
	logger       *zap.Logger
}

// NewMasterDataService creates a new MasterDataService
func NewMasterDataService(
	materialRepo *repository.MaterialRepository,
	supplierRepo *repository.SupplierRepository,
	contractRepo *repository.ContractRepository,
	userRepo *repository.UserRepository,
	stockRepo *repository.StockLevelRepository,
	logger *zap.Logger,
) *MasterDataService {
	return &MasterDataService{
		materialRepo: materialRepo,
		supplierRepo: supplierRepo,
		contractRepo: contractRepo,
		userRepo:     userRepo,
		stockRepo:    stockRepo,
		logger:       logger,
	}
}

// SearchMaterials lists active catalog materials matching the query.
func (s *MasterDataService) SearchMaterials(ctx context.Context, query string, limit int) ([]domain.MaterialDTO, error) {
	if !auth.Can(ctx, auth.ActionRead, auth.ResourceMasterData) {
		return nil, ErrPermissionDenied
	}
	materials, err := s.materialRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]domain.MaterialDTO, len(materials))
	for i := range materials {
		dtos[i] = materials[i].ToDTO()
	}
	return dtos, nil
}

// SearchSuppliers lists active suppliers matching the query.
func (s *MasterDataService) SearchSuppliers(ctx context.Context, query string, limit int) ([]domain.SupplierDTO, error) {
	if !auth.Can(ctx, auth.ActionRead, auth.ResourceMasterData) {
		return nil, ErrPermissionDenied
	}
	suppliers, err := s.supplierRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]domain.SupplierDTO, len(suppliers))
	for i := range suppliers {
		dtos[i] = suppliers[i].ToDTO()
	}
	return dtos, nil
}

// ListContracts returns framework contracts, optionally only active ones.
func (s *MasterDataService) ListContracts(ctx context.Context, activeOnly bool) ([]domain.ContractDTO, error) {
	if !auth.Can(ctx, auth.ActionRead, auth.ResourceMasterData) {
		return nil, ErrPermissionDenied
	}
	contracts, err := s.contractRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	dtos := make([]domain.ContractDTO, len(contracts))
	for i := range contracts {
		dtos[i] = contracts[i].ToDTO()
	}
	return dtos, nil
}

// ActiveContractFor resolves the contract covering a material today.
func (s *MasterDataService) ActiveContractFor(ctx context.Context, materialID uuid.UUID) (*domain.ContractDTO, error) {
	if !auth.Can(ctx, auth.ActionRead, auth.ResourceMasterData) {
		return nil, ErrPermissionDenied
	}
	contract, err := s.contractRepo.ActiveForMaterial(ctx, materialID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := contract.ToDTO()
	return &dto, nil
}

// ListApprovers returns the active users who can approve purchase orders.
func (s *MasterDataService) ListApprovers(ctx context.Context) ([]domain.User, error) {
	if !auth.Can(ctx, auth.ActionRead, auth.ResourceMasterData) {
		return nil, ErrPermissionDenied
	}
	return s.userRepo.ListApprovers(ctx)
}

// ListStockLevels returns warehouse stock, optionally for one warehouse.
func (s *MasterDataService) ListStockLevels(ctx context.Context, warehouseCode string) ([]domain.StockLevelDTO, error) {
	if !auth.Can(ctx, auth.ActionRead, auth.ResourceMasterData) {
		return nil, ErrPermissionDenied
	}
	levels, err := s.stockRepo.List(ctx, warehouseCode)
	if err != nil {
		return nil, err
	}
	dtos := make([]domain.StockLevelDTO, len(levels))
	for i := range levels {
		dtos[i] = levels[i].ToDTO()
	}
	return dtos, nil
}
