package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/austral-erp/procurement-api/internal/domain"
	"github.com/austral-erp/procurement-api/internal/service"
)

// PurchaseRequestHandler handles HTTP requests for purchase requests
type PurchaseRequestHandler struct {
	requestService *service.RequestService
	logger         *zap.Logger
}

// NewPurchaseRequestHandler creates a new purchase request handler instance
func NewPurchaseRequestHandler(requestService *service.RequestService, logger *zap.Logger) *PurchaseRequestHandler {
	return &PurchaseRequestHandler{
		requestService: requestService,
		logger:         logger,
	}
}

// Create godoc
// @Summary Create purchase request
// @Description Registers a new purchase request in pending status
// @Tags PurchaseRequests
// @Accept json
// @Produce json
// @Param request body domain.CreatePurchaseRequestRequest true "Purchase request"
// @Success 201 {object} domain.PurchaseRequestDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /purchase-requests [post]
func (h *PurchaseRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePurchaseRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.requestService.Create(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto)
}

// Get godoc
// @Summary Get purchase request
// @Tags PurchaseRequests
// @Produce json
// @Param id path string true "Purchase request ID"
// @Success 200 {object} domain.PurchaseRequestDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /purchase-requests/{id} [get]
func (h *PurchaseRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}
	dto, err := h.requestService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

// List godoc
// @Summary List purchase requests
// @Description Get purchase requests filtered by status and origin
// @Tags PurchaseRequests
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, processed)
// @Param origin query string false "Filter by origin" Enums(manual, warehouse, maintenance)
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /purchase-requests [get]
func (h *PurchaseRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.RequestStatus
	if s := r.URL.Query().Get("status"); s != "" {
		v := domain.RequestStatus(s)
		status = &v
	}
	var origin *domain.RequestOrigin
	if o := r.URL.Query().Get("origin"); o != "" {
		v := domain.RequestOrigin(o)
		origin = &v
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	dtos, total, err := h.requestService.List(r.Context(), status, origin, limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":  dtos,
		"total": total,
	})
}

// Group godoc
// @Summary Group purchase requests into a draft RFQ
// @Description Merges the items of the given pending requests into a new draft RFQ and marks them processed
// @Tags PurchaseRequests
// @Accept json
// @Produce json
// @Param request body domain.GroupRequestsRequest true "Request IDs to group"
// @Success 201 {object} domain.RFQDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /purchase-requests/group [post]
func (h *PurchaseRequestHandler) Group(w http.ResponseWriter, r *http.Request) {
	var req domain.GroupRequestsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.requestService.GroupIntoDraft(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto)
}

// DirectAward godoc
// @Summary Direct award from framework contracts
// @Description Converts a pending request into a pending-approval purchase order when every item has an active contract
// @Tags PurchaseRequests
// @Produce json
// @Param id path string true "Purchase request ID"
// @Success 201 {object} domain.RFQDTO
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /purchase-requests/{id}/direct-award [post]
func (h *PurchaseRequestHandler) DirectAward(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}
	dto, err := h.requestService.DirectAward(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto)
}
