package receipt

import "github.com/shopspring/decimal"

// Inventory is one line item of a receipt
type Inventory struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Price     decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	Quantity  int32           `gorm:"not null" json:"quantity"`
	ProductID int64           `gorm:"not null;index" json:"product_id"`
	ReceiptID int64           `gorm:"not null;index" json:"receipt_id"`
}

// TableName returns the table name for GORM
func (Inventory) TableName() string {
	return "inventories"
}

// NewInventory creates an inventory line of a receipt
func NewInventory(receiptID, productID int64, price decimal.Decimal, quantity int32) *Inventory {
	return &Inventory{
		Price:     price,
		Quantity:  quantity,
		ProductID: productID,
		ReceiptID: receiptID,
	}
}

// InventoryRef is the (inventory, product) pair collected before a receipt is deleted
type InventoryRef struct {
	ID        int64
	ProductID int64
}

// InventoryPatch updates the price and/or quantity of a line
type InventoryPatch struct {
	Price    *decimal.Decimal `json:"price"`
	Quantity *int32           `json:"quantity"`
}

// IsEmpty reports whether the patch changes nothing
func (p InventoryPatch) IsEmpty() bool {
	return p.Price == nil && p.Quantity == nil
}

// Apply applies the patch
func (i *Inventory) Apply(p InventoryPatch) {
	if p.Price != nil {
		i.Price = *p.Price
	}
	if p.Quantity != nil {
		i.Quantity = *p.Quantity
	}
}
