package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the primary key when the database default does not,
// keeping the models portable to the sqlite test database.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// DocumentType identifies a numbered document series
type DocumentType string

const (
	DocumentTypePurchaseRequest DocumentType = "purchase_request"
	DocumentTypeRFQ             DocumentType = "rfq"
	DocumentTypePurchaseOrder   DocumentType = "purchase_order"
	DocumentTypeSupplier        DocumentType = "supplier"
	DocumentTypeClient          DocumentType = "client"
	DocumentTypeContract        DocumentType = "contract"
)

// IsValid checks if the DocumentType is a valid enum value
func (dt DocumentType) IsValid() bool {
	switch dt {
	case DocumentTypePurchaseRequest, DocumentTypeRFQ, DocumentTypePurchaseOrder,
		DocumentTypeSupplier, DocumentTypeClient, DocumentTypeContract:
		return true
	}
	return false
}

// Numerator is a named monotonic counter used to format human-readable
// document numbers. One numerator exists per document series; the formatted
// value is Prefix + zero-padded CurrentValue.
type Numerator struct {
	BaseModel
	Name         string       `gorm:"type:varchar(100);not null"`
	Prefix       string       `gorm:"type:varchar(20);not null"`
	CurrentValue int          `gorm:"not null;default:0;column:current_value"`
	Length       int          `gorm:"not null;default:8"`
	AssignedType DocumentType `gorm:"type:varchar(50);not null;uniqueIndex;column:assigned_type"`
}

// IssuedNumber is the result of drawing from a numerator. Degraded marks a
// fallback value issued while the numerator was missing or unwritable; the
// document carrying it needs manual renumbering.
type IssuedNumber struct {
	Value    string
	Degraded bool
}

// RequestOrigin represents what triggered a purchase request
type RequestOrigin string

const (
	RequestOriginManual      RequestOrigin = "manual"
	RequestOriginWarehouse   RequestOrigin = "warehouse"
	RequestOriginMaintenance RequestOrigin = "maintenance"
)

// RequestStatus represents the status of a purchase request
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusProcessed RequestStatus = "processed"
)

// PurchaseRequest is an internal request for material, pre-dating supplier
// selection. Items are immutable once the request is processed into an RFQ
// or a direct purchase order; requests are never deleted.
type PurchaseRequest struct {
	BaseModel
	Number         string                `gorm:"type:varchar(50);index"`
	NumberDegraded bool                  `gorm:"not null;default:false;column:number_degraded"`
	Date           time.Time             `gorm:"type:date;not null"`
	RequesterID    string                `gorm:"type:varchar(100);not null;column:requester_id"`
	RequesterName  string                `gorm:"type:varchar(200);column:requester_name"`
	Origin         RequestOrigin         `gorm:"type:varchar(50);not null;default:'manual';index"`
	Status         RequestStatus         `gorm:"type:varchar(50);not null;default:'pending';index"`
	Items          []PurchaseRequestItem `gorm:"foreignKey:PurchaseRequestID;constraint:OnDelete:CASCADE"`
}

// PurchaseRequestItem is a requested line. MaterialID is nil for free-text
// lines; the item key is the material id when present, else the description.
type PurchaseRequestItem struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key"`
	PurchaseRequestID uuid.UUID  `gorm:"type:uuid;not null;index;column:purchase_request_id"`
	MaterialID        *uuid.UUID `gorm:"type:uuid;index;column:material_id"`
	Description       string     `gorm:"type:varchar(500);not null"`
	Quantity          float64    `gorm:"type:decimal(12,2);not null"`
	Unit              string     `gorm:"type:varchar(50)"`
}

func (i *PurchaseRequestItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Key returns the identity key used to match a line across requests, RFQs
// and quotes: the material id when the line is catalog-linked, otherwise the
// free-text description.
func (i *PurchaseRequestItem) Key() string {
	if i.MaterialID != nil {
		return i.MaterialID.String()
	}
	return i.Description
}

// RFQOrigin distinguishes how an RFQ/purchase-order record came to be
type RFQOrigin string

const (
	RFQOriginStandard RFQOrigin = "standard"
	RFQOriginContract RFQOrigin = "contract"
)

// RFQ is the central procurement document. It is born as a request for
// quotation and, after adjudication, the split-off records double as
// purchase orders. Version is the optimistic-concurrency token checked on
// every lifecycle mutation.
type RFQ struct {
	BaseModel
	Number            string          `gorm:"type:varchar(50);index"`
	NumberDegraded    bool            `gorm:"not null;default:false;column:number_degraded"`
	Date              time.Time       `gorm:"type:date;not null"`
	Status            RFQStatus       `gorm:"type:varchar(50);not null;default:'draft';index"`
	Origin            RFQOrigin       `gorm:"type:varchar(50);not null;default:'standard'"`
	BuyerID           string          `gorm:"type:varchar(100);column:buyer_id"`
	BuyerName         string          `gorm:"type:varchar(200);column:buyer_name"`
	Items             []RFQItem       `gorm:"foreignKey:RFQID;constraint:OnDelete:CASCADE"`
	SelectedSuppliers []RFQSupplier   `gorm:"foreignKey:RFQID;constraint:OnDelete:CASCADE"`
	Quotes            []SupplierQuote `gorm:"foreignKey:RFQID;constraint:OnDelete:CASCADE"`
	WinnerSupplierID  *uuid.UUID      `gorm:"type:uuid;column:winner_supplier_id"`
	RelatedRFQNumber  string          `gorm:"type:varchar(50);column:related_rfq_number"`
	Version           int             `gorm:"not null;default:0"`
}

func (RFQ) TableName() string {
	return "rfqs"
}

// ItemKeys returns the identity keys of all items, in item order.
func (r *RFQ) ItemKeys() []string {
	keys := make([]string, len(r.Items))
	for i := range r.Items {
		keys[i] = r.Items[i].Key()
	}
	return keys
}

// RFQItem is a quotable line. TargetSupplierIDs names the suppliers invited
// to quote this line; PurchaseRequestID records provenance when the line was
// grouped from a purchase request (first contributor when several merged).
type RFQItem struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key"`
	RFQID             uuid.UUID      `gorm:"type:uuid;not null;index;column:rfq_id"`
	MaterialID        *uuid.UUID     `gorm:"type:uuid;index;column:material_id"`
	Description       string         `gorm:"type:varchar(500);not null"`
	Quantity          float64        `gorm:"type:decimal(12,2);not null"`
	Unit              string         `gorm:"type:varchar(50)"`
	TargetSupplierIDs pq.StringArray `gorm:"type:text[];column:target_supplier_ids"`
	PurchaseRequestID *uuid.UUID     `gorm:"type:uuid;column:purchase_request_id"`
}

func (RFQItem) TableName() string {
	return "rfq_items"
}

func (i *RFQItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Key returns the identity key for matching this line across structures.
func (i *RFQItem) Key() string {
	if i.MaterialID != nil {
		return i.MaterialID.String()
	}
	return i.Description
}

// TargetsSupplier reports whether the given supplier was invited on this line.
func (i *RFQItem) TargetsSupplier(supplierID uuid.UUID) bool {
	id := supplierID.String()
	for _, s := range i.TargetSupplierIDs {
		if s == id {
			return true
		}
	}
	return false
}

// RFQSupplier is one entry of the invited-supplier union across all items.
type RFQSupplier struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	RFQID        uuid.UUID `gorm:"type:uuid;not null;index;column:rfq_id"`
	SupplierID   uuid.UUID `gorm:"type:uuid;not null;column:supplier_id"`
	SupplierName string    `gorm:"type:varchar(200);column:supplier_name"`
}

func (RFQSupplier) TableName() string {
	return "rfq_suppliers"
}

func (s *RFQSupplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SupplierQuote captures one supplier's offer across the lines targeted at
// it. Price is the quoted total; IsSelected marks the awarded quote on a
// purchase-order record (at most one per record).
type SupplierQuote struct {
	ID             uuid.UUID   `gorm:"type:uuid;primary_key"`
	RFQID          uuid.UUID   `gorm:"type:uuid;not null;index;column:rfq_id"`
	SupplierID     uuid.UUID   `gorm:"type:uuid;not null;column:supplier_id"`
	SupplierName   string      `gorm:"type:varchar(200);column:supplier_name"`
	Price          float64     `gorm:"type:decimal(15,2);not null;default:0"`
	QuoteReference string      `gorm:"type:varchar(100);column:quote_reference"`
	IsSelected     bool        `gorm:"not null;default:false;column:is_selected"`
	Items          []QuoteItem `gorm:"foreignKey:SupplierQuoteID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (q *SupplierQuote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// ItemFor returns this quote's entry for the given item key, if any.
func (q *SupplierQuote) ItemFor(key string) *QuoteItem {
	for i := range q.Items {
		if q.Items[i].Key() == key {
			return &q.Items[i]
		}
	}
	return nil
}

// QuoteItem is a per-line unit price within a supplier quote. A unit price
// of exactly zero means the supplier did not actually quote the line.
type QuoteItem struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key"`
	SupplierQuoteID uuid.UUID  `gorm:"type:uuid;not null;index;column:supplier_quote_id"`
	MaterialID      *uuid.UUID `gorm:"type:uuid;column:material_id"`
	Description     string     `gorm:"type:varchar(500)"`
	UnitPrice       float64    `gorm:"type:decimal(15,4);not null;default:0;column:unit_price"`
}

func (i *QuoteItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Key returns the identity key used to match this entry against RFQ items.
func (i *QuoteItem) Key() string {
	if i.MaterialID != nil {
		return i.MaterialID.String()
	}
	return i.Description
}

// ApprovalRule maps a closed monetary band to a single approver.
type ApprovalRule struct {
	BaseModel
	MinAmount    float64 `gorm:"type:decimal(15,2);not null;column:min_amount"`
	MaxAmount    float64 `gorm:"type:decimal(15,2);not null;column:max_amount"`
	ApproverID   string  `gorm:"type:varchar(100);not null;column:approver_id"`
	ApproverName string  `gorm:"type:varchar(200);column:approver_name"`
}

// Matches reports whether the amount falls inside the rule's band.
func (r *ApprovalRule) Matches(amount float64) bool {
	return amount >= r.MinAmount && amount <= r.MaxAmount
}

// Width returns the size of the monetary band, used for narrowest-band
// tie-breaking when rules overlap.
func (r *ApprovalRule) Width() float64 {
	return r.MaxAmount - r.MinAmount
}

// Contract is a framework agreement fixing the price of a material for a
// supplier over a validity window. Read-only to the procurement core.
type Contract struct {
	BaseModel
	Number       string    `gorm:"type:varchar(50);index"`
	MaterialID   uuid.UUID `gorm:"type:uuid;not null;index;column:material_id"`
	SupplierID   uuid.UUID `gorm:"type:uuid;not null;index;column:supplier_id"`
	SupplierName string    `gorm:"type:varchar(200);column:supplier_name"`
	Price        float64   `gorm:"type:decimal(15,4);not null"`
	ValidFrom    time.Time `gorm:"type:date;not null;column:valid_from"`
	ValidTo      time.Time `gorm:"type:date;not null;column:valid_to"`
	IsActive     bool      `gorm:"not null;default:true;column:is_active"`
}

// ActiveOn reports whether the contract covers the given day.
func (c *Contract) ActiveOn(day time.Time) bool {
	return c.IsActive && !day.Before(c.ValidFrom) && !day.After(c.ValidTo)
}

// Material is a catalog entry, synced read-only from the corporate ERP.
type Material struct {
	BaseModel
	Code                string         `gorm:"type:varchar(50);unique;index"`
	Description         string         `gorm:"type:varchar(500);not null"`
	UnitOfMeasure       string         `gorm:"type:varchar(50);column:unit_of_measure"`
	AssignedSupplierIDs pq.StringArray `gorm:"type:text[];column:assigned_supplier_ids"`
	IsActive            bool           `gorm:"not null;default:true;column:is_active"`
}

// Supplier is a vendor master record, synced read-only from the ERP.
type Supplier struct {
	BaseModel
	Number       string `gorm:"type:varchar(50);index"`
	BusinessName string `gorm:"type:varchar(200);not null;index;column:business_name"`
	CUIT         string `gorm:"type:varchar(20);unique;index;column:cuit"`
	Email        string `gorm:"type:varchar(255)"`
	Phone        string `gorm:"type:varchar(50)"`
	IsActive     bool   `gorm:"not null;default:true;column:is_active"`
}

// User represents a system user; approvers are flagged for approval routing.
type User struct {
	ID         string         `gorm:"type:varchar(100);primaryKey" json:"id"`
	Email      string         `gorm:"type:varchar(255);not null;unique" json:"email"`
	FirstName  string         `gorm:"type:varchar(100);column:first_name" json:"firstName,omitempty"`
	LastName   string         `gorm:"type:varchar(100);column:last_name" json:"lastName,omitempty"`
	Roles      pq.StringArray `gorm:"type:text[];not null" json:"roles"`
	IsApprover bool           `gorm:"not null;default:false;column:is_approver" json:"isApprover"`
	IsActive   bool           `gorm:"not null;default:true;column:is_active" json:"isActive"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// FullName returns the user's full name
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Email
}

// StockLevel tracks on-hand quantity per material and warehouse. The
// replenishment sweep raises warehouse-origin purchase requests for levels
// below minimum.
type StockLevel struct {
	BaseModel
	MaterialID      uuid.UUID `gorm:"type:uuid;not null;index;column:material_id"`
	Material        *Material `gorm:"foreignKey:MaterialID"`
	WarehouseCode   string    `gorm:"type:varchar(50);not null;index;column:warehouse_code"`
	OnHand          float64   `gorm:"type:decimal(12,2);not null;default:0;column:on_hand"`
	MinimumLevel    float64   `gorm:"type:decimal(12,2);not null;default:0;column:minimum_level"`
	ReorderQuantity float64   `gorm:"type:decimal(12,2);not null;default:0;column:reorder_quantity"`
}

// BelowMinimum reports whether the level has fallen under its minimum.
func (s *StockLevel) BelowMinimum() bool {
	return s.MinimumLevel > 0 && s.OnHand < s.MinimumLevel
}

// File is an uploaded attachment (typically the supplier's quotation
// document) linked to an RFQ.
type File struct {
	BaseModel
	Filename    string     `gorm:"type:varchar(255);not null"`
	ContentType string     `gorm:"type:varchar(100);not null"`
	Size        int64      `gorm:"not null"`
	StoragePath string     `gorm:"type:varchar(500);not null;unique"`
	RFQID       *uuid.UUID `gorm:"type:uuid;index;column:rfq_id"`
	SupplierID  *uuid.UUID `gorm:"type:uuid;column:supplier_id"`
}

// ActivityTargetType represents the type of entity an activity is logged on
type ActivityTargetType string

const (
	ActivityTargetRFQ             ActivityTargetType = "RFQ"
	ActivityTargetPurchaseRequest ActivityTargetType = "PurchaseRequest"
)

// Activity is the document event trail: sent, quoted, adjudicated, approved,
// reverted, grouped. Written by services, read-only through the API.
type Activity struct {
	BaseModel
	TargetType  ActivityTargetType `gorm:"type:varchar(50);not null;index;column:target_type"`
	TargetID    uuid.UUID          `gorm:"type:uuid;not null;index;column:target_id"`
	Title       string             `gorm:"type:varchar(200);not null"`
	Body        string             `gorm:"type:varchar(2000)"`
	ActorID     string             `gorm:"type:varchar(100);column:actor_id"`
	ActorName   string             `gorm:"type:varchar(200);column:actor_name"`
	OccurredAt  time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP;index;column:occurred_at"`
}
