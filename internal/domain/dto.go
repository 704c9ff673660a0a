package domain

import (
	"time"

	"github.com/google/uuid"
)

// DTOs for API responses

type PurchaseRequestDTO struct {
	ID             uuid.UUID                `json:"id"`
	Number         string                   `json:"number"`
	NumberDegraded bool                     `json:"numberDegraded,omitempty"`
	Date           string                   `json:"date"` // ISO 8601
	RequesterID    string                   `json:"requesterId"`
	RequesterName  string                   `json:"requesterName,omitempty"`
	Origin         RequestOrigin            `json:"origin"`
	Status         RequestStatus            `json:"status"`
	Items          []PurchaseRequestItemDTO `json:"items"`
	CreatedAt      string                   `json:"createdAt"`
	UpdatedAt      string                   `json:"updatedAt"`
}

type PurchaseRequestItemDTO struct {
	ID          uuid.UUID  `json:"id"`
	MaterialID  *uuid.UUID `json:"materialId,omitempty"`
	Description string     `json:"description"`
	Quantity    float64    `json:"quantity"`
	Unit        string     `json:"unit,omitempty"`
}

type RFQDTO struct {
	ID                uuid.UUID          `json:"id"`
	Number            string             `json:"number"`
	NumberDegraded    bool               `json:"numberDegraded,omitempty"`
	Date              string             `json:"date"` // ISO 8601
	Status            RFQStatus          `json:"status"`
	Origin            RFQOrigin          `json:"origin"`
	BuyerID           string             `json:"buyerId,omitempty"`
	BuyerName         string             `json:"buyerName,omitempty"`
	Items             []RFQItemDTO       `json:"items"`
	SelectedSuppliers []RFQSupplierDTO   `json:"selectedSuppliers,omitempty"`
	Quotes            []SupplierQuoteDTO `json:"quotes,omitempty"`
	WinnerSupplierID  *uuid.UUID         `json:"winnerSupplierId,omitempty"`
	RelatedRFQNumber  string             `json:"relatedRfqNumber,omitempty"`
	BestPrices        map[string]float64 `json:"bestPrices,omitempty"`
	Version           int                `json:"version"`
	CreatedAt         string             `json:"createdAt"`
	UpdatedAt         string             `json:"updatedAt"`
}

type RFQItemDTO struct {
	ID                uuid.UUID  `json:"id"`
	Key               string     `json:"key"`
	MaterialID        *uuid.UUID `json:"materialId,omitempty"`
	Description       string     `json:"description"`
	Quantity          float64    `json:"quantity"`
	Unit              string     `json:"unit,omitempty"`
	TargetSupplierIDs []string   `json:"targetSupplierIds"`
	PurchaseRequestID *uuid.UUID `json:"purchaseRequestId,omitempty"`
}

type RFQSupplierDTO struct {
	SupplierID   uuid.UUID `json:"supplierId"`
	SupplierName string    `json:"supplierName,omitempty"`
}

type SupplierQuoteDTO struct {
	ID             uuid.UUID      `json:"id"`
	SupplierID     uuid.UUID      `json:"supplierId"`
	SupplierName   string         `json:"supplierName,omitempty"`
	Price          float64        `json:"price"`
	QuoteReference string         `json:"quoteReference,omitempty"`
	IsSelected     bool           `json:"isSelected"`
	Items          []QuoteItemDTO `json:"items,omitempty"`
}

type QuoteItemDTO struct {
	Key         string     `json:"key"`
	MaterialID  *uuid.UUID `json:"materialId,omitempty"`
	Description string     `json:"description,omitempty"`
	UnitPrice   float64    `json:"unitPrice"`
}

type ApprovalRuleDTO struct {
	ID           uuid.UUID `json:"id"`
	MinAmount    float64   `json:"minAmount"`
	MaxAmount    float64   `json:"maxAmount"`
	ApproverID   string    `json:"approverId"`
	ApproverName string    `json:"approverName,omitempty"`
}

type ContractDTO struct {
	ID           uuid.UUID `json:"id"`
	Number       string    `json:"number"`
	MaterialID   uuid.UUID `json:"materialId"`
	SupplierID   uuid.UUID `json:"supplierId"`
	SupplierName string    `json:"supplierName,omitempty"`
	Price        float64   `json:"price"`
	ValidFrom    string    `json:"validFrom"`
	ValidTo      string    `json:"validTo"`
	IsActive     bool      `json:"isActive"`
}

type MaterialDTO struct {
	ID                  uuid.UUID `json:"id"`
	Code                string    `json:"code"`
	Description         string    `json:"description"`
	UnitOfMeasure       string    `json:"unitOfMeasure,omitempty"`
	AssignedSupplierIDs []string  `json:"assignedSupplierIds,omitempty"`
	IsActive            bool      `json:"isActive"`
}

type SupplierDTO struct {
	ID           uuid.UUID `json:"id"`
	Number       string    `json:"number"`
	BusinessName string    `json:"businessName"`
	CUIT         string    `json:"cuit,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	IsActive     bool      `json:"isActive"`
}

type StockLevelDTO struct {
	ID              uuid.UUID `json:"id"`
	MaterialID      uuid.UUID `json:"materialId"`
	MaterialCode    string    `json:"materialCode,omitempty"`
	WarehouseCode   string    `json:"warehouseCode"`
	OnHand          float64   `json:"onHand"`
	MinimumLevel    float64   `json:"minimumLevel"`
	ReorderQuantity float64   `json:"reorderQuantity"`
	BelowMinimum    bool      `json:"belowMinimum"`
}

type FileDTO struct {
	ID          uuid.UUID  `json:"id"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"contentType"`
	Size        int64      `json:"size"`
	RFQID       *uuid.UUID `json:"rfqId,omitempty"`
	SupplierID  *uuid.UUID `json:"supplierId,omitempty"`
	CreatedAt   string     `json:"createdAt"`
}

type ActivityDTO struct {
	ID         uuid.UUID          `json:"id"`
	TargetType ActivityTargetType `json:"targetType"`
	TargetID   uuid.UUID          `json:"targetId"`
	Title      string             `json:"title"`
	Body       string             `json:"body,omitempty"`
	ActorID    string             `json:"actorId,omitempty"`
	ActorName  string             `json:"actorName,omitempty"`
	OccurredAt string             `json:"occurredAt"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Request DTOs

type CreatePurchaseRequestRequest struct {
	RequesterID   string                           `json:"requesterId" validate:"required"`
	RequesterName string                           `json:"requesterName"`
	Origin        RequestOrigin                    `json:"origin"`
	Date          *string                          `json:"date"` // ISO 8601, defaults to today
	Items         []CreatePurchaseRequestItemInput `json:"items" validate:"required,min=1,dive"`
}

type CreatePurchaseRequestItemInput struct {
	MaterialID  *uuid.UUID `json:"materialId"`
	Description string     `json:"description" validate:"required"`
	Quantity    float64    `json:"quantity" validate:"required,gt=0"`
	Unit        string     `json:"unit"`
}

type GroupRequestsRequest struct {
	RequestIDs        []uuid.UUID `json:"requestIds" validate:"required,min=1"`
	TargetSupplierIDs []string    `json:"targetSupplierIds"`
}

type UpdateRFQItemsRequest struct {
	Version int                  `json:"version"`
	Items   []UpdateRFQItemInput `json:"items" validate:"required,dive"`
}

type UpdateRFQItemInput struct {
	MaterialID        *uuid.UUID `json:"materialId"`
	Description       string     `json:"description" validate:"required"`
	Quantity          float64    `json:"quantity" validate:"required,gt=0"`
	Unit              string     `json:"unit"`
	TargetSupplierIDs []string   `json:"targetSupplierIds"`
}

type SaveQuotationsRequest struct {
	Version int                  `json:"version"`
	Quotes  []SupplierQuoteInput `json:"quotes" validate:"required,min=1,dive"`
}

type SupplierQuoteInput struct {
	SupplierID     uuid.UUID        `json:"supplierId" validate:"required"`
	QuoteReference string           `json:"quoteReference"`
	Items          []QuoteItemInput `json:"items" validate:"required,dive"`
}

type QuoteItemInput struct {
	Key       string  `json:"key" validate:"required"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
}

type SplitAdjudicationRequest struct {
	Version    int       `json:"version"`
	SupplierID uuid.UUID `json:"supplierId" validate:"required"`
	ItemKeys   []string  `json:"itemKeys" validate:"required,min=1"`
	Amount     float64   `json:"amount" validate:"required,gt=0"`
}

type CreateApprovalRuleRequest struct {
	MinAmount    float64 `json:"minAmount" validate:"gte=0"`
	MaxAmount    float64 `json:"maxAmount" validate:"required,gtfield=MinAmount"`
	ApproverID   string  `json:"approverId" validate:"required"`
	ApproverName string  `json:"approverName"`
}

// Conversions

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ToDTO converts a PurchaseRequest to its API representation
func (pr *PurchaseRequest) ToDTO() PurchaseRequestDTO {
	items := make([]PurchaseRequestItemDTO, len(pr.Items))
	for i, it := range pr.Items {
		items[i] = PurchaseRequestItemDTO{
			ID:          it.ID,
			MaterialID:  it.MaterialID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
		}
	}
	return PurchaseRequestDTO{
		ID:             pr.ID,
		Number:         pr.Number,
		NumberDegraded: pr.NumberDegraded,
		Date:           formatDate(pr.Date),
		RequesterID:    pr.RequesterID,
		RequesterName:  pr.RequesterName,
		Origin:         pr.Origin,
		Status:         pr.Status,
		Items:          items,
		CreatedAt:      formatTime(pr.CreatedAt),
		UpdatedAt:      formatTime(pr.UpdatedAt),
	}
}

// ToDTO converts an RFQ to its API representation
func (r *RFQ) ToDTO() RFQDTO {
	items := make([]RFQItemDTO, len(r.Items))
	for i, it := range r.Items {
		items[i] = RFQItemDTO{
			ID:                it.ID,
			Key:               it.Key(),
			MaterialID:        it.MaterialID,
			Description:       it.Description,
			Quantity:          it.Quantity,
			Unit:              it.Unit,
			TargetSupplierIDs: it.TargetSupplierIDs,
			PurchaseRequestID: it.PurchaseRequestID,
		}
	}
	suppliers := make([]RFQSupplierDTO, len(r.SelectedSuppliers))
	for i, s := range r.SelectedSuppliers {
		suppliers[i] = RFQSupplierDTO{SupplierID: s.SupplierID, SupplierName: s.SupplierName}
	}
	quotes := make([]SupplierQuoteDTO, len(r.Quotes))
	for i := range r.Quotes {
		quotes[i] = r.Quotes[i].ToDTO()
	}
	return RFQDTO{
		ID:                r.ID,
		Number:            r.Number,
		NumberDegraded:    r.NumberDegraded,
		Date:              formatDate(r.Date),
		Status:            r.Status,
		Origin:            r.Origin,
		BuyerID:           r.BuyerID,
		BuyerName:         r.BuyerName,
		Items:             items,
		SelectedSuppliers: suppliers,
		Quotes:            quotes,
		WinnerSupplierID:  r.WinnerSupplierID,
		RelatedRFQNumber:  r.RelatedRFQNumber,
		Version:           r.Version,
		CreatedAt:         formatTime(r.CreatedAt),
		UpdatedAt:         formatTime(r.UpdatedAt),
	}
}

// ToDTO converts a SupplierQuote to its API representation
func (q *SupplierQuote) ToDTO() SupplierQuoteDTO {
	items := make([]QuoteItemDTO, len(q.Items))
	for i, it := range q.Items {
		items[i] = QuoteItemDTO{
			Key:         it.Key(),
			MaterialID:  it.MaterialID,
			Description: it.Description,
			UnitPrice:   it.UnitPrice,
		}
	}
	return SupplierQuoteDTO{
		ID:             q.ID,
		SupplierID:     q.SupplierID,
		SupplierName:   q.SupplierName,
		Price:          q.Price,
		QuoteReference: q.QuoteReference,
		IsSelected:     q.IsSelected,
		Items:          items,
	}
}

// ToDTO converts an ApprovalRule to its API representation
func (r *ApprovalRule) ToDTO() ApprovalRuleDTO {
	return ApprovalRuleDTO{
		ID:           r.ID,
		MinAmount:    r.MinAmount,
		MaxAmount:    r.MaxAmount,
		ApproverID:   r.ApproverID,
		ApproverName: r.ApproverName,
	}
}

// ToDTO converts a Contract to its API representation
func (c *Contract) ToDTO() ContractDTO {
	return ContractDTO{
		ID:           c.ID,
		Number:       c.Number,
		MaterialID:   c.MaterialID,
		SupplierID:   c.SupplierID,
		SupplierName: c.SupplierName,
		Price:        c.Price,
		ValidFrom:    formatDate(c.ValidFrom),
		ValidTo:      formatDate(c.ValidTo),
		IsActive:     c.IsActive,
	}
}

// ToDTO converts a Material to its API representation
func (m *Material) ToDTO() MaterialDTO {
	return MaterialDTO{
		ID:                  m.ID,
		Code:                m.Code,
		Description:         m.Description,
		UnitOfMeasure:       m.UnitOfMeasure,
		AssignedSupplierIDs: m.AssignedSupplierIDs,
		IsActive:            m.IsActive,
	}
}

// ToDTO converts a Supplier to its API representation
func (s *Supplier) ToDTO() SupplierDTO {
	return SupplierDTO{
		ID:           s.ID,
		Number:       s.Number,
		BusinessName: s.BusinessName,
		CUIT:         s.CUIT,
		Email:        s.Email,
		Phone:        s.Phone,
		IsActive:     s.IsActive,
	}
}

// ToDTO converts a StockLevel to its API representation
func (s *StockLevel) ToDTO() StockLevelDTO {
	dto := StockLevelDTO{
		ID:              s.ID,
		MaterialID:      s.MaterialID,
		WarehouseCode:   s.WarehouseCode,
		OnHand:          s.OnHand,
		MinimumLevel:    s.MinimumLevel,
		ReorderQuantity: s.ReorderQuantity,
		BelowMinimum:    s.BelowMinimum(),
	}
	if s.Material != nil {
		dto.MaterialCode = s.Material.Code
	}
	return dto
}

// ToDTO converts a File to its API representation
func (f *File) ToDTO() FileDTO {
	return FileDTO{
		ID:          f.ID,
		Filename:    f.Filename,
		ContentType: f.ContentType,
		Size:        f.Size,
		RFQID:       f.RFQID,
		SupplierID:  f.SupplierID,
		CreatedAt:   formatTime(f.CreatedAt),
	}
}

// ToDTO converts an Activity to its API representation
func (a *Activity) ToDTO() ActivityDTO {
	return ActivityDTO{
		ID:         a.ID,
		TargetType: a.TargetType,
		TargetID:   a.TargetID,
		Title:      a.Title,
		Body:       a.Body,
		ActorID:    a.ActorID,
		ActorName:  a.ActorName,
		OccurredAt: formatTime(a.OccurredAt),
	}
}
