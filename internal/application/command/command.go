// Package command serializes every write of the receipts service through a
// single consumer. HTTP handlers submit commands and answer with a ticket;
// the dispatcher executes them one at a time in submission order.
package command

import (
	"github.com/google/uuid"
	"github.com/receipts/backend/internal/domain/receipt"
)

// Command is one queued mutation. The set of commands is closed.
type Command interface {
	// Name identifies the command in logs, metrics and results
	Name() string
	// Ticket identifies this submission
	Ticket() uuid.UUID

	sealed()
}

type ticketed struct {
	ticket uuid.UUID
}

func (t ticketed) Ticket() uuid.UUID { return t.ticket }

func (ticketed) sealed() {}

func newTicketed() ticketed {
	return ticketed{ticket: uuid.New()}
}

// CreateReceipt creates a receipt from a draft.
// Its ticket doubles as the transaction id of the new receipt.
type CreateReceipt struct {
	ticketed
	Draft receipt.ReceiptDraft
}

// NewCreateReceipt creates a CreateReceipt with a fresh transaction id
func NewCreateReceipt(draft receipt.ReceiptDraft) CreateReceipt {
	return CreateReceipt{ticketed: newTicketed(), Draft: draft}
}

// Name implements Command
func (CreateReceipt) Name() string { return "create_receipt" }

// TransactionID is the id the created receipt will carry
func (c CreateReceipt) TransactionID() uuid.UUID { return c.ticket }

// DeleteReceipt deletes a receipt and its orphaned references
type DeleteReceipt struct {
	ticketed
	ReceiptID int64
}

// NewDeleteReceipt creates a DeleteReceipt
func NewDeleteReceipt(id int64) DeleteReceipt {
	return DeleteReceipt{ticketed: newTicketed(), ReceiptID: id}
}

// Name implements Command
func (DeleteReceipt) Name() string { return "delete_receipt" }

// PatchReceipt updates receipt header fields
type PatchReceipt struct {
	ticketed
	ReceiptID int64
	Patch     receipt.ReceiptPatch
}

// NewPatchReceipt creates a PatchReceipt
func NewPatchReceipt(id int64, patch receipt.ReceiptPatch) PatchReceipt {
	return PatchReceipt{ticketed: newTicketed(), ReceiptID: id, Patch: patch}
}

// Name implements Command
func (PatchReceipt) Name() string { return "patch_receipt" }

// PatchCurrency renames a currency
type PatchCurrency struct {
	ticketed
	CurrencyID int64
	Patch      receipt.CurrencyPatch
}

// NewPatchCurrency creates a PatchCurrency
func NewPatchCurrency(id int64, patch receipt.CurrencyPatch) PatchCurrency {
	return PatchCurrency{ticketed: newTicketed(), CurrencyID: id, Patch: patch}
}

// Name implements Command
func (PatchCurrency) Name() string { return "patch_currency" }

// PatchStore updates a store
type PatchStore struct {
	ticketed
	StoreID int64
	Patch   receipt.StorePatch
}

// NewPatchStore creates a PatchStore
func NewPatchStore(id int64, patch receipt.StorePatch) PatchStore {
	return PatchStore{ticketed: newTicketed(), StoreID: id, Patch: patch}
}

// Name implements Command
func (PatchStore) Name() string { return "patch_store" }

// PatchProduct updates a product
type PatchProduct struct {
	ticketed
	ProductID int64
	Patch     receipt.ProductPatch
}

// NewPatchProduct creates a PatchProduct
func NewPatchProduct(id int64, patch receipt.ProductPatch) PatchProduct {
	return PatchProduct{ticketed: newTicketed(), ProductID: id, Patch: patch}
}

// Name implements Command
func (PatchProduct) Name() string { return "patch_product" }

// PatchInventory updates price and/or quantity of an inventory line
type PatchInventory struct {
	ticketed
	InventoryID int64
	Patch       receipt.InventoryPatch
}

// NewPatchInventory creates a PatchInventory
func NewPatchInventory(id int64, patch receipt.InventoryPatch) PatchInventory {
	return PatchInventory{ticketed: newTicketed(), InventoryID: id, Patch: patch}
}

// Name implements Command
func (PatchInventory) Name() string { return "patch_inventory" }
