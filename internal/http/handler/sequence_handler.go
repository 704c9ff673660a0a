package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/austral-erp/procurement-api/internal/service"
)

// SequenceHandler exposes the numerator admin surface
type SequenceHandler struct {
	sequenceService *service.SequenceService
	logger          *zap.Logger
}

// NewSequenceHandler creates a new sequence handler instance
func NewSequenceHandler(sequenceService *service.SequenceService, logger *zap.Logger) *SequenceHandler {
	return &SequenceHandler{
		sequenceService: sequenceService,
		logger:          logger,
	}
}

// List godoc
// @Summary List document numerators
// @Tags Numerators
// @Produce json
// @Success 200 {array} domain.Numerator
// @Security BearerAuth
// @Router /numerators [get]
func (h *SequenceHandler) List(w http.ResponseWriter, r *http.Request) {
	numerators, err := h.sequenceService.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, numerators)
}

// Seed godoc
// @Summary Seed missing numerators
// @Description Creates any missing document series without touching existing counters
// @Tags Numerators
// @Produce json
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /numerators/seed [post]
func (h *SequenceHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if err := h.sequenceService.Seed(r.Context()); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
