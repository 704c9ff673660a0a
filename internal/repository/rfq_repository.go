package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/austral-erp/procurement-api/internal/domain"
)

// ErrVersionConflict is returned when a guarded update matched no row,
// meaning the document changed under the caller's feet.
var ErrVersionConflict = errors.New("version conflict")

// RFQRepository handles database operations for RFQ / purchase-order records.
// Every lifecycle write goes through the version guard: the update only
// lands if the stored version still equals the one the caller read.
type RFQRepository struct {
	db *gorm.DB
}

// NewRFQRepository creates a new RFQRepository
func NewRFQRepository(db *gorm.DB) *RFQRepository {
	return &RFQRepository{db: db}
}

// rfqPreloads attaches the full document graph to a query.
func rfqPreloads(q *gorm.DB) *gorm.DB {
	return q.Preload("Items").
		Preload("SelectedSuppliers").
		Preload("Quotes").
		Preload("Quotes.Items")
}

// Create inserts a new RFQ with its items, suppliers and quotes.
func (r *RFQRepository) Create(ctx context.Context, rfq *domain.RFQ) error {
	if err := r.db.WithContext(ctx).Create(rfq).Error; err != nil {
		return fmt.Errorf("failed to create rfq: %w", err)
	}
	return nil
}

// GetByID retrieves an RFQ with its full document graph.
func (r *RFQRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RFQ, error) {
	var rfq domain.RFQ
	result := rfqPreloads(r.db.WithContext(ctx)).First(&rfq, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get rfq: %w", result.Error)
	}
	return &rfq, nil
}

// List retrieves RFQs filtered by status, newest first.
func (r *RFQRepository) List(ctx context.Context, status *domain.RFQStatus, limit, offset int) ([]domain.RFQ, int64, error) {
	var rfqs []domain.RFQ
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.RFQ{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count rfqs: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	err := rfqPreloads(query).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rfqs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rfqs: %w", err)
	}
	return rfqs, total, nil
}

// UpdateGuarded applies column updates to the RFQ row only if the stored
// version still matches expectedVersion, bumping the version in the same
// statement. Zero rows affected surfaces as ErrVersionConflict.
func (r *RFQRepository) UpdateGuarded(ctx context.Context, tx *gorm.DB, id uuid.UUID, expectedVersion int, updates map[string]interface{}) error {
	if tx == nil {
		tx = r.db
	}
	updates["version"] = expectedVersion + 1
	result := tx.WithContext(ctx).Model(&domain.RFQ{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update rfq: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

// CountByRelatedNumber counts the records split off from the RFQ carrying
// the given document number.
func (r *RFQRepository) CountByRelatedNumber(ctx context.Context, tx *gorm.DB, number string) (int64, error) {
	if tx == nil {
		tx = r.db
	}
	var count int64
	if err := tx.WithContext(ctx).Model(&domain.RFQ{}).
		Where("related_rfq_number = ?", number).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count related orders: %w", err)
	}
	return count, nil
}

// ReplaceItems swaps the RFQ's item set within the given transaction.
func (r *RFQRepository) ReplaceItems(ctx context.Context, tx *gorm.DB, rfqID uuid.UUID, items []domain.RFQItem) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.WithContext(ctx).Where("rfq_id = ?", rfqID).Delete(&domain.RFQItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear rfq items: %w", err)
	}
	for i := range items {
		items[i].ID = uuid.Nil
		items[i].RFQID = rfqID
	}
	if len(items) > 0 {
		if err := tx.WithContext(ctx).Create(&items).Error; err != nil {
			return fmt.Errorf("failed to insert rfq items: %w", err)
		}
	}
	return nil
}

// ReplaceSelectedSuppliers swaps the invited-supplier union.
func (r *RFQRepository) ReplaceSelectedSuppliers(ctx context.Context, tx *gorm.DB, rfqID uuid.UUID, suppliers []domain.RFQSupplier) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.WithContext(ctx).Where("rfq_id = ?", rfqID).Delete(&domain.RFQSupplier{}).Error; err != nil {
		return fmt.Errorf("failed to clear rfq suppliers: %w", err)
	}
	for i := range suppliers {
		suppliers[i].ID = uuid.Nil
		suppliers[i].RFQID = rfqID
	}
	if len(suppliers) > 0 {
		if err := tx.WithContext(ctx).Create(&suppliers).Error; err != nil {
			return fmt.Errorf("failed to insert rfq suppliers: %w", err)
		}
	}
	return nil
}

// ReplaceQuotes swaps the captured quote set, quote items included.
func (r *RFQRepository) ReplaceQuotes(ctx context.Context, tx *gorm.DB, rfqID uuid.UUID, quotes []domain.SupplierQuote) error {
	if tx == nil {
		tx = r.db
	}
	var existing []domain.SupplierQuote
	if err := tx.WithContext(ctx).Where("rfq_id = ?", rfqID).Find(&existing).Error; err != nil {
		return fmt.Errorf("failed to load existing quotes: %w", err)
	}
	for i := range existing {
		if err := tx.WithContext(ctx).Where("supplier_quote_id = ?", existing[i].ID).Delete(&domain.QuoteItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear quote items: %w", err)
		}
	}
	if err := tx.WithContext(ctx).Where("rfq_id = ?", rfqID).Delete(&domain.SupplierQuote{}).Error; err != nil {
		return fmt.Errorf("failed to clear quotes: %w", err)
	}
	for i := range quotes {
		quotes[i].ID = uuid.Nil
		quotes[i].RFQID = rfqID
		for j := range quotes[i].Items {
			quotes[i].Items[j].ID = uuid.Nil
			quotes[i].Items[j].SupplierQuoteID = uuid.Nil
		}
	}
	if len(quotes) > 0 {
		if err := tx.WithContext(ctx).Create(&quotes).Error; err != nil {
			return fmt.Errorf("failed to insert quotes: %w", err)
		}
	}
	return nil
}

// SetQuoteSelection updates the selection flag and confirmed price of one
// quote within a transaction.
func (r *RFQRepository) SetQuoteSelection(ctx context.Context, tx *gorm.DB, quoteID uuid.UUID, selected bool, price *float64) error {
	if tx == nil {
		tx = r.db
	}
	updates := map[string]interface{}{"is_selected": selected}
	if price != nil {
		updates["price"] = *price
	}
	if err := tx.WithContext(ctx).Model(&domain.SupplierQuote{}).
		Where("id = ?", quoteID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update quote selection: %w", err)
	}
	return nil
}

// ClearSelections drops the selection flag from every quote on the record.
func (r *RFQRepository) ClearSelections(ctx context.Context, tx *gorm.DB, rfqID uuid.UUID) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.WithContext(ctx).Model(&domain.SupplierQuote{}).
		Where("rfq_id = ?", rfqID).
		Update("is_selected", false).Error; err != nil {
		return fmt.Errorf("failed to clear quote selections: %w", err)
	}
	return nil
}

// Transaction runs fn inside a database transaction.
func (r *RFQRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
