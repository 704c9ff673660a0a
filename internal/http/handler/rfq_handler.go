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

// RFQHandler handles HTTP requests for the RFQ lifecycle
type RFQHandler struct {
	rfqService          *service.RFQService
	adjudicationService *service.AdjudicationService
	logger              *zap.Logger
}

// NewRFQHandler creates a new RFQ handler instance
func NewRFQHandler(
	rfqService *service.RFQService,
	adjudicationService *service.AdjudicationService,
	logger *zap.Logger,
) *RFQHandler {
	return &RFQHandler{
		rfqService:          rfqService,
		adjudicationService: adjudicationService,
		logger:              logger,
	}
}

// Get godoc
// @Summary Get RFQ
// @Description Get an RFQ with items, suppliers, quotes and best prices
// @Tags RFQs
// @Produce json
// @Param id path string true "RFQ ID"
// @Success 200 {object} domain.RFQDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /rfqs/{id} [get]
func (h *RFQHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}
	dto, err := h.rfqService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

// List godoc
// @Summary List RFQs
// @Tags RFQs
// @Produce json
// @Param status query string false "Filter by status" Enums(draft, sent, quoted, pending_approval, converted_to_po, closed)
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /rfqs [get]
func (h *RFQHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.RFQStatus
	if s := r.URL.Query().Get("status"); s != "" {
		v := domain.RFQStatus(s)
		status = &v
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	dtos, total, err := h.rfqService.List(r.Context(), status, limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":  dtos,
		"total": total,
	})
}

// UpdateItems godoc
// @Summary Update draft RFQ items
// @Description Replaces the item set of a draft RFQ
// @Tags RFQs
// @Accept json
// @Produce json
// @Param id path string true "RFQ ID"
// @Param request body domain.UpdateRFQItemsRequest true "New item set"
// @Success 200 {object} domain.RFQDTO
// @Failure 409 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /rfqs/{id}/items [put]
func (h *RFQHandler) UpdateItems(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req domain.UpdateRFQItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.rfqService.UpdateItems(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

// Send godoc
// @Summary Send RFQ to suppliers
// @Description Moves a draft RFQ to sent after validating target suppliers on every item
// @Tags RFQs
// @Produce json
// @Param id path string true "RFQ ID"
// @Param version query int false "Expected document version"
// @Success 200 {object} domain.RFQDTO
// @Failure 409 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /rfqs/{id}/send [post]
func (h *RFQHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}
	version, _ := strconv.Atoi(r.URL.Query().Get("version"))

	dto, err := h.rfqService.Send(r.Context(), id, version)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

// SaveQuotations godoc
// @Summary Save supplier quotations
// @Description Captures per-supplier quotes for a sent RFQ and moves it to quoted
// @Tags RFQs
// @Accept json
// @Produce json
// @Param id path string true "RFQ ID"
// @Param request body domain.SaveQuotationsRequest true "Supplier quotes"
// @Success 200 {object} domain.RFQDTO
// @Failure 409 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /rfqs/{id}/quotations [post]
func (h *RFQHandler) SaveQuotations(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req domain.SaveQuotationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.rfqService.SaveQuotations(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

// Adjudicate godoc
// @Summary Split-adjudicate a quoted RFQ
// @Description Awards the named items to one supplier, creating a pending-approval purchase order and shrinking or closing the original
// @Tags RFQs
// @Accept json
// @Produce json
// @Param id path string true "RFQ ID"
// @Param request body domain.SplitAdjudicationRequest true "Award"
// @Success 201 {object} domain.RFQDTO
// @Failure 409 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /rfqs/{id}/adjudicate [post]
func (h *RFQHandler) Adjudicate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req domain.SplitAdjudicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.adjudicationService.SplitAdjudicate(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto)
}

// Activities godoc
// @Summary Get RFQ event trail
// @Tags RFQs
// @Produce json
// @Param id path string true "RFQ ID"
// @Success 200 {array} domain.ActivityDTO
// @Security BearerAuth
// @Router /rfqs/{id}/activities [get]
func (h *RFQHandler) Activities(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}
	dtos, err := h.rfqService.Activities(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dtos)
}
