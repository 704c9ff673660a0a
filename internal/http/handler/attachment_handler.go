package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/austral-erp/procurement-api/internal/service"
)

// AttachmentHandler handles quotation document uploads and downloads
type AttachmentHandler struct {
	attachmentService *service.AttachmentService
	logger            *zap.Logger
}

// NewAttachmentHandler creates a new attachment handler instance
func NewAttachmentHandler(attachmentService *service.AttachmentService, logger *zap.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
		logger:            logger,
	}
}

// Upload godoc
// @Summary Attach a quotation document to an RFQ
// @Tags Attachments
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "RFQ ID"
// @Param file formData file true "Document"
// @Param supplierId formData string false "Quoting supplier ID"
// @Success 201 {object} domain.FileDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /rfqs/{id}/attachments [post]
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	rfqID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	var supplierID *uuid.UUID
	if s := r.FormValue("supplierId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid supplierId")
			return
		}
		supplierID = &id
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	dto, err := h.attachmentService.Attach(r.Context(), rfqID, supplierID, header.Filename, contentType, file)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto)
}

// List godoc
// @Summary List RFQ attachments
// @Tags Attachments
// @Produce json
// @Param id path string true "RFQ ID"
// @Success 200 {array} domain.FileDTO
// @Security BearerAuth
// @Router /rfqs/{id}/attachments [get]
func (h *AttachmentHandler) List(w http.ResponseWriter, r *http.Request) {
	rfqID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id")
		return
	}
	dtos, err := h.attachmentService.List(r.Context(), rfqID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dtos)
}

// Download godoc
// @Summary Download an attachment
// @Tags Attachments
// @Produce application/octet-stream
// @Param fileId path string true "File ID"
// @Success 200 {file} binary
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /attachments/{fileId} [get]
func (h *AttachmentHandler) Download(w http.ResponseWriter, r *http.Request) {
	fileID, err := uuid.Parse(chi.URLParam(r, "fileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid file id")
		return
	}

	file, reader, err := h.attachmentService.Download(r.Context(), fileID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", file.Size))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("attachment stream interrupted",
			zap.String("fileId", fileID.String()),
			zap.Error(err))
	}
}

// Delete godoc
// @Summary Delete an attachment
// @Tags Attachments
// @Param fileId path string true "File ID"
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /attachments/{fileId} [delete]
func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	fileID, err := uuid.Parse(chi.URLParam(r, "fileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid file id")
		return
	}
	if err := h.attachmentService.Delete(r.Context(), fileID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
