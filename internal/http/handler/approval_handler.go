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

// ApprovalHandler handles HTTP requests for the approval gate
type ApprovalHandler struct {
	approvalService *service.ApprovalService
	logger          *zap.Logger
}

// NewApprovalHandler creates a new approval handler instance
func NewApprovalHandler(approvalService *service.ApprovalService, logger *zap.Logger) *ApprovalHandler {
	return &ApprovalHandler{
		approvalService: approvalService,
		logger:          logger,
	}
}

// Approve godoc
// @Summary Approve a pending purchase order
// @Description Converts a pending-approval record into a purchase order and draws an official number when needed
// @Tags Approvals
// @Produce json
// @Param id path string true "RFQ ID"
// @Param version query int false "Expected document version"
// @Success 200 {object} domain.RFQDTO
// @Failure 403 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /approvals/{id}/approve [post]
func (h *ApprovalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}
	version, _ := strconv.Atoi(r.URL.Query().Get("version"))

	dto, err := h.approvalService.Approve(r.Context(), id, version)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

// Revert godoc
// @Summary Revert a pending purchase order to quoted
// @Description Sends the record back to the buyer, clearing the winner and every quote selection
// @Tags Approvals
// @Produce json
// @Param id path string true "RFQ ID"
// @Param version query int false "Expected document version"
// @Success 200 {object} domain.RFQDTO
// @Failure 403 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /approvals/{id}/revert [post]
func (h *ApprovalHandler) Revert(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}
	version, _ := strconv.Atoi(r.URL.Query().Get("version"))

	dto, err := h.approvalService.Revert(r.Context(), id, version)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

// RequiredApprover godoc
// @Summary Resolve the approval rule for an amount
// @Tags Approvals
// @Produce json
// @Param amount query number true "Order amount"
// @Success 200 {object} domain.ApprovalRuleDTO
// @Failure 422 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /approvals/required-approver [get]
func (h *ApprovalHandler) RequiredApprover(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid amount")
		return
	}
	dto, err := h.approvalService.RequiredApprover(r.Context(), amount)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

// CreateRule godoc
// @Summary Create an approval rule
// @Tags Approvals
// @Accept json
// @Produce json
// @Param request body domain.CreateApprovalRuleRequest true "Approval band"
// @Success 201 {object} domain.ApprovalRuleDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /approvals/rules [post]
func (h *ApprovalHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateApprovalRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.approvalService.CreateRule(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto)
}

// ListRules godoc
// @Summary List approval rules
// @Tags Approvals
// @Produce json
// @Success 200 {array} domain.ApprovalRuleDTO
// @Security BearerAuth
// @Router /approvals/rules [get]
func (h *ApprovalHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	dtos, err := h.approvalService.ListRules(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dtos)
}

// DeleteRule godoc
// @Summary Delete an approval rule
// @Tags Approvals
// @Param id path string true "Rule ID"
// @Success 204 "No Content"
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /approvals/rules/{id} [delete]
func (h *ApprovalHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.approvalService.DeleteRule(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
