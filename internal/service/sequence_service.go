package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/austral-erp/procurement-api/internal/domain"
	"github.com/austral-erp/procurement-api/internal/repository"
)

// SequenceService issues formatted document numbers from named numerators.
// Drawing never fails the calling operation: when the numerator is missing
// or unwritable the caller gets a timestamp fallback flagged as degraded,
// and the document is saved anyway.
type SequenceService struct {
	repo   *repository.NumeratorRepository
	logger *zap.Logger
}

// NewSequenceService creates a new SequenceService
func NewSequenceService(repo *repository.NumeratorRepository, logger *zap.Logger) *SequenceService {
	return &SequenceService{repo: repo, logger: logger}
}

// seededNumerators is the set of series guaranteed to exist after Seed.
var seededNumerators = []domain.Numerator{
	{Name: "Purchase Requests", Prefix: "PR-", Length: 8, AssignedType: domain.DocumentTypePurchaseRequest},
	{Name: "Requests for Quotation", Prefix: "RFQ-", Length: 8, AssignedType: domain.DocumentTypeRFQ},
	{Name: "Purchase Orders", Prefix: "PO-", Length: 8, AssignedType: domain.DocumentTypePurchaseOrder},
	{Name: "Suppliers", Prefix: "SUP-", Length: 6, AssignedType: domain.DocumentTypeSupplier},
	{Name: "Clients", Prefix: "CLI-", Length: 6, AssignedType: domain.DocumentTypeClient},
	{Name: "Contracts", Prefix: "CTR-", Length: 6, AssignedType: domain.DocumentTypeContract},
}

// NextNumber draws the next number for a document series. The happy path is
// an atomic increment formatted as prefix plus zero-padded value. Any
// failure degrades to "<TYPE>-<unix>" with Degraded set, so the document
// can still be created and renumbered later.
func (s *SequenceService) NextNumber(ctx context.Context, docType domain.DocumentType) (domain.IssuedNumber, error) {
	if !docType.IsValid() {
		return domain.IssuedNumber{}, fmt.Errorf("%w: unknown document type %q", ErrInvalidInput, docType)
	}

	num, err := s.repo.Increment(ctx, docType)
	if err != nil {
		s.logger.Error("numerator draw failed, issuing degraded number",
			zap.String("documentType", string(docType)),
			zap.Error(err))
		return s.degradedNumber(docType), nil
	}

	return domain.IssuedNumber{Value: formatNumber(num)}, nil
}

// degradedNumber builds the timestamp fallback for a series.
func (s *SequenceService) degradedNumber(docType domain.DocumentType) domain.IssuedNumber {
	value := fmt.Sprintf("%s-%d", strings.ToUpper(string(docType)), time.Now().Unix())
	return domain.IssuedNumber{Value: value, Degraded: true}
}

// formatNumber renders a numerator's current value as its document number.
func formatNumber(num *domain.Numerator) string {
	length := num.Length
	if length <= 0 {
		length = 8
	}
	return fmt.Sprintf("%s%0*d", num.Prefix, length, num.CurrentValue)
}

// Seed ensures a numerator exists for every required document series.
// Idempotent: existing numerators, including their current values, are
// left untouched.
func (s *SequenceService) Seed(ctx context.Context) error {
	for i := range seededNumerators {
		num := seededNumerators[i]
		if err := s.repo.CreateIfMissing(ctx, &num); err != nil {
			return fmt.Errorf("failed to seed numerator %s: %w", num.AssignedType, err)
		}
	}
	s.logger.Info("numerators seeded", zap.Int("series", len(seededNumerators)))
	return nil
}

// List returns all numerators for the admin surface.
func (s *SequenceService) List(ctx context.Context) ([]domain.Numerator, error) {
	return s.repo.List(ctx)
}
