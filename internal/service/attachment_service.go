package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/auth"
	"github.com/austral-erp/procurement-api/internal/domain"
	"github.com/austral-erp/procurement-api/internal/repository"
	"github.com/austral-erp/procurement-api/internal/storage"
)

// maxAttachmentSize caps uploaded quotation documents at 25 MB.
const maxAttachmentSize = 25 << 20

// AttachmentService keeps supplier quotation documents attached to RFQs.
type AttachmentService struct {
	fileRepo *repository.FileRepository
	rfqRepo  *repository.RFQRepository
	store    storage.Storage
	logger   *zap.Logger
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(
	fileRepo *repository.FileRepository,
	rfqRepo *repository.RFQRepository,
	store storage.Storage,
	logger *zap.Logger,
) *AttachmentService {
	return &AttachmentService{
		fileRepo: fileRepo,
		rfqRepo:  rfqRepo,
		store:    store,
		logger:   logger,
	}
}

// Attach uploads a quotation document and links it to the RFQ, optionally
// tagged with the quoting supplier.
func (s *AttachmentService) Attach(ctx context.Context, rfqID uuid.UUID, supplierID *uuid.UUID, filename, contentType string, data io.Reader) (*domain.FileDTO, error) {
	if !auth.Can(ctx, auth.ActionWrite, auth.ResourceProcurement) {
		return nil, ErrPermissionDenied
	}
	if _, err := s.rfqRepo.GetByID(ctx, rfqID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	limited := io.LimitReader(data, maxAttachmentSize+1)
	storagePath, size, err := s.store.Upload(ctx, filename, contentType, limited)
	if err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}
	if size > maxAttachmentSize {
		_ = s.store.Delete(ctx, storagePath)
		return nil, fmt.Errorf("%w: attachment exceeds size limit", ErrInvalidInput)
	}

	file := &domain.File{
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
		StoragePath: storagePath,
		RFQID:       &rfqID,
		SupplierID:  supplierID,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		_ = s.store.Delete(ctx, storagePath)
		return nil, err
	}

	s.logger.Info("attachment stored",
		zap.String("fileId", file.ID.String()),
		zap.String("rfqId", rfqID.String()),
		zap.Int64("size", size))

	dto := file.ToDTO()
	return &dto, nil
}

// List returns the attachments of an RFQ.
func (s *AttachmentService) List(ctx context.Context, rfqID uuid.UUID) ([]domain.FileDTO, error) {
	if !auth.Can(ctx, auth.ActionRead, auth.ResourceProcurement) {
		return nil, ErrPermissionDenied
	}
	files, err := s.fileRepo.ListByRFQ(ctx, rfqID)
	if err != nil {
		return nil, err
	}
	dtos := make([]domain.FileDTO, len(files))
	for i := range files {
		dtos[i] = files[i].ToDTO()
	}
	return dtos, nil
}

// Download streams a stored attachment. The caller must close the reader.
func (s *AttachmentService) Download(ctx context.Context, id uuid.UUID) (*domain.File, io.ReadCloser, error) {
	if !auth.Can(ctx, auth.ActionRead, auth.ResourceProcurement) {
		return nil, nil, ErrPermissionDenied
	}
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	reader, err := s.store.Download(ctx, file.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open attachment: %w", err)
	}
	return file, reader, nil
}

// Delete removes an attachment and its stored object.
func (s *AttachmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if !auth.Can(ctx, auth.ActionWrite, auth.ResourceProcurement) {
		return ErrPermissionDenied
	}
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.fileRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, file.StoragePath); err != nil {
		s.logger.Warn("failed to delete stored object",
			zap.String("storagePath", file.StoragePath),
			zap.Error(err))
	}
	return nil
}
