package receipt

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receipt is a purchase receipt. It owns its inventory lines and
// references exactly one currency and one store.
type Receipt struct {
	ID               int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionDate  time.Time  `gorm:"not null;index" json:"transaction_date"`
	IsInventoryTaxed bool       `gorm:"not null;default:false" json:"is_inventory_taxed"`
	CurrencyID       int64      `gorm:"not null;index" json:"currency_id"`
	StoreID          int64      `gorm:"not null;index" json:"store_id"`
	TransactionID    *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_receipts_transaction_id" json:"transaction_id"`
}

// TableName returns the table name for GORM
func (Receipt) TableName() string {
	return "receipts"
}

// LineDraft is one inventory line of a receipt being created
type LineDraft struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int32           `json:"quantity"`
	Product  ProductRef      `json:"product"`
}

// ReceiptDraft is the payload of a receipt creation.
// It carries no transaction id; the server always assigns one.
type ReceiptDraft struct {
	TransactionDate  time.Time   `json:"transaction_date"`
	IsInventoryTaxed bool        `json:"is_inventory_taxed"`
	Currency         CurrencyRef `json:"currency"`
	Store            StoreRef    `json:"store"`
	Inventories      []LineDraft `json:"inventories"`
}

// NewReceipt creates the receipt row of a draft once its references are resolved
func NewReceipt(draft ReceiptDraft, currencyID, storeID int64, transactionID uuid.UUID) *Receipt {
	txID := transactionID
	return &Receipt{
		TransactionDate:  draft.TransactionDate,
		IsInventoryTaxed: draft.IsInventoryTaxed,
		CurrencyID:       currencyID,
		StoreID:          storeID,
		TransactionID:    &txID,
	}
}

// ReceiptPatch updates the header fields of a receipt
type ReceiptPatch struct {
	TransactionDate  *time.Time `json:"transaction_date"`
	IsInventoryTaxed *bool      `json:"is_inventory_taxed"`
}

// IsEmpty reports whether the patch changes nothing
func (p ReceiptPatch) IsEmpty() bool {
	return p.TransactionDate == nil && p.IsInventoryTaxed == nil
}

// Apply applies the patch. The transaction id is never touched.
func (r *Receipt) Apply(p ReceiptPatch) {
	if p.TransactionDate != nil {
		r.TransactionDate = *p.TransactionDate
	}
	if p.IsInventoryTaxed != nil {
		r.IsInventoryTaxed = *p.IsInventoryTaxed
	}
}
