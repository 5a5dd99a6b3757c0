package receipt

import "github.com/receipts/backend/internal/domain/shared"

// InventoryLine is an inventory row joined with its product
type InventoryLine struct {
	Inventory Inventory
	Product   Product
}

// ReceiptDetail is a receipt joined with its currency, store and lines
type ReceiptDetail struct {
	Receipt  Receipt
	Currency Currency
	Store    Store
	Lines    []InventoryLine
}

// CustomizedInventory is an inventory row joined with every table it relates to
type CustomizedInventory struct {
	Inventory Inventory
	Product   Product
	Receipt   Receipt
	Store     Store
	Currency  Currency
}

// InventoryQuery filters customized inventory listings.
// Currency is an exact match; the other text fields are substring matches.
type InventoryQuery struct {
	Dates        shared.DateRange
	Currency     *string
	StoreName    *string
	StoreAlias   *string
	ProductName  *string
	ProductAlias *string
	ProductBrand *string

	ProductID  *int64
	ReceiptID  *int64
	StoreID    *int64
	CurrencyID *int64
}
