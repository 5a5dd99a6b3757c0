package receipt

import (
	"time"

	"github.com/google/uuid"
	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/shopspring/decimal"
)

// CurrencyResponse represents a currency in API responses
type CurrencyResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StoreResponse represents a store in API responses
type StoreResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Alias   *string `json:"alias"`
	Branch  *string `json:"branch"`
	Address *string `json:"address"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	Alias               *string `json:"alias"`
	Brand               *string `json:"brand"`
	SpecificationAmount *int32  `json:"specification_amount"`
	SpecificationUnit   *string `json:"specification_unit"`
	SpecificationOthers *string `json:"specification_others"`
}

// InventoryResponse represents an inventory line in API responses
type InventoryResponse struct {
	ID       int64           `json:"id"`
	Product  ProductResponse `json:"product"`
	Price    decimal.Decimal `json:"price"`
	Quantity int32           `json:"quantity"`
}

// ReceiptResponse represents a receipt with everything it references
type ReceiptResponse struct {
	ID               int64               `json:"id"`
	TransactionID    *uuid.UUID          `json:"transaction_id"`
	TransactionDate  time.Time           `json:"transaction_date"`
	IsInventoryTaxed bool                `json:"is_inventory_taxed"`
	Currency         CurrencyResponse    `json:"currency"`
	Store            StoreResponse       `json:"store"`
	Inventories      []InventoryResponse `json:"inventories"`
}

// CustomizedInventoryResponse represents an inventory line with its receipt context
type CustomizedInventoryResponse struct {
	ID               int64            `json:"id"`
	Price            decimal.Decimal  `json:"price"`
	Quantity         int32            `json:"quantity"`
	ReceiptID        int64            `json:"receipt_id"`
	TransactionDate  time.Time        `json:"transaction_date"`
	IsInventoryTaxed bool             `json:"is_inventory_taxed"`
	Product          ProductResponse  `json:"product"`
	Store            StoreResponse    `json:"store"`
	Currency         CurrencyResponse `json:"currency"`
}

// CreateReceiptResult identifies a receipt created from a draft
type CreateReceiptResult struct {
	ReceiptID     int64     `json:"receipt_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
}

// ToCurrencyResponse converts a domain Currency to CurrencyResponse
func ToCurrencyResponse(c receipt.Currency) CurrencyResponse {
	return CurrencyResponse{ID: c.ID, Name: c.Name}
}

// ToStoreResponse converts a domain Store to StoreResponse
func ToStoreResponse(s receipt.Store) StoreResponse {
	return StoreResponse{ID: s.ID, Name: s.Name, Alias: s.Alias, Branch: s.Branch, Address: s.Address}
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p receipt.Product) ProductResponse {
	return ProductResponse{
		ID:                  p.ID,
		Name:                p.Name,
		Alias:               p.Alias,
		Brand:               p.Brand,
		SpecificationAmount: p.SpecificationAmount,
		SpecificationUnit:   p.SpecificationUnit,
		SpecificationOthers: p.SpecificationOthers,
	}
}

// ToInventoryResponse converts an inventory line to InventoryResponse
func ToInventoryResponse(l receipt.InventoryLine) InventoryResponse {
	return InventoryResponse{
		ID:       l.Inventory.ID,
		Product:  ToProductResponse(l.Product),
		Price:    l.Inventory.Price,
		Quantity: l.Inventory.Quantity,
	}
}

// ToReceiptResponse converts a receipt detail to ReceiptResponse
func ToReceiptResponse(d receipt.ReceiptDetail) ReceiptResponse {
	lines := make([]InventoryResponse, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = ToInventoryResponse(l)
	}
	return ReceiptResponse{
		ID:               d.Receipt.ID,
		TransactionID:    d.Receipt.TransactionID,
		TransactionDate:  d.Receipt.TransactionDate,
		IsInventoryTaxed: d.Receipt.IsInventoryTaxed,
		Currency:         ToCurrencyResponse(d.Currency),
		Store:            ToStoreResponse(d.Store),
		Inventories:      lines,
	}
}

// ToCustomizedInventoryResponse converts a customized inventory to its response
func ToCustomizedInventoryResponse(c receipt.CustomizedInventory) CustomizedInventoryResponse {
	return CustomizedInventoryResponse{
		ID:               c.Inventory.ID,
		Price:            c.Inventory.Price,
		Quantity:         c.Inventory.Quantity,
		ReceiptID:        c.Receipt.ID,
		TransactionDate:  c.Receipt.TransactionDate,
		IsInventoryTaxed: c.Receipt.IsInventoryTaxed,
		Product:          ToProductResponse(c.Product),
		Store:            ToStoreResponse(c.Store),
		Currency:         ToCurrencyResponse(c.Currency),
	}
}
