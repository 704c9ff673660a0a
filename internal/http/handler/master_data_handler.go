package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/austral-erp/procurement-api/internal/service"
)

// MasterDataHandler exposes the synced catalog: materials, suppliers,
// contracts, approvers and stock levels.
type MasterDataHandler struct {
	masterDataService *service.MasterDataService
	logger            *zap.Logger
}

// NewMasterDataHandler creates a new master data handler instance
func NewMasterDataHandler(masterDataService *service.MasterDataService, logger *zap.Logger) *MasterDataHandler {
	return &MasterDataHandler{
		masterDataService: masterDataService,
		logger:            logger,
	}
}

// SearchMaterials godoc
// @Summary Search materials
// @Tags MasterData
// @Produce json
// @Param q query string false "Search by code or description"
// @Param limit query int false "Page size" default(50)
// @Success 200 {array} domain.MaterialDTO
// @Security BearerAuth
// @Router /materials [get]
func (h *MasterDataHandler) SearchMaterials(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	dtos, err := h.masterDataService.SearchMaterials(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dtos)
}

// SearchSuppliers godoc
// @Summary Search suppliers
// @Tags MasterData
// @Produce json
// @Param q query string false "Search by name or tax ID"
// @Param limit query int false "Page size" default(50)
// @Success 200 {array} domain.SupplierDTO
// @Security BearerAuth
// @Router /suppliers [get]
func (h *MasterDataHandler) SearchSuppliers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	dtos, err := h.masterDataService.SearchSuppliers(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dtos)
}

// ListContracts godoc
// @Summary List framework contracts
// @Tags MasterData
// @Produce json
// @Param active query bool false "Only contracts active today"
// @Success 200 {array} domain.ContractDTO
// @Security BearerAuth
// @Router /contracts [get]
func (h *MasterDataHandler) ListContracts(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	dtos, err := h.masterDataService.ListContracts(r.Context(), activeOnly)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dtos)
}

// ActiveContract godoc
// @Summary Get the active contract for a material
// @Tags MasterData
// @Produce json
// @Param materialId path string true "Material ID"
// @Success 200 {object} domain.ContractDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /contracts/active/{materialId} [get]
func (h *MasterDataHandler) ActiveContract(w http.ResponseWriter, r *http.Request) {
	materialID, err := uuid.Parse(chi.URLParam(r, "materialId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid material id")
		return
	}
	dto, err := h.masterDataService.ActiveContractFor(r.Context(), materialID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

// ListApprovers godoc
// @Summary List users who can approve purchase orders
// @Tags MasterData
// @Produce json
// @Success 200 {array} domain.User
// @Security BearerAuth
// @Router /approvers [get]
func (h *MasterDataHandler) ListApprovers(w http.ResponseWriter, r *http.Request) {
	users, err := h.masterDataService.ListApprovers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// ListStockLevels godoc
// @Summary List warehouse stock levels
// @Tags MasterData
// @Produce json
// @Param warehouse query string false "Filter by warehouse code"
// @Success 200 {array} domain.StockLevelDTO
// @Security BearerAuth
// @Router /stock-levels [get]
func (h *MasterDataHandler) ListStockLevels(w http.ResponseWriter, r *http.Request) {
	dtos, err := h.masterDataService.ListStockLevels(r.Context(), r.URL.Query().Get("warehouse"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dtos)
}
