package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	appreceipt "github.com/receipts/backend/internal/application/receipt"
	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
)

// ErrUnknownCommand is returned for a command type the executor does not handle
var ErrUnknownCommand = shared.NewDomainError("UNKNOWN_COMMAND", "Unknown command")

// Outcome carries what a successful command produced
type Outcome struct {
	ReceiptID     *int64
	TransactionID *uuid.UUID
}

// Handler executes one command to completion
type Handler interface {
	Execute(ctx context.Context, cmd Command) (Outcome, error)
}

// The services the executor drives
type (
	ReceiptWriter interface {
		Create(ctx context.Context, draft receipt.ReceiptDraft, transactionID uuid.UUID) (*appreceipt.CreateReceiptResult, error)
		Delete(ctx context.Context, id int64) error
		Update(ctx context.Context, id int64, patch receipt.ReceiptPatch) error
	}
	CurrencyWriter interface {
		Update(ctx context.Context, id int64, patch receipt.CurrencyPatch) error
	}
	StoreWriter interface {
		Update(ctx context.Context, id int64, patch receipt.StorePatch) error
	}
	ProductWriter interface {
		Update(ctx context.Context, id int64, patch receipt.ProductPatch) error
	}
	InventoryWriter interface {
		Update(ctx context.Context, id int64, patch receipt.InventoryPatch) error
	}
)

// Executor maps commands onto application services
type Executor struct {
	receipts    ReceiptWriter
	currencies  CurrencyWriter
	stores      StoreWriter
	products    ProductWriter
	inventories InventoryWriter
}

// NewExecutor creates a new Executor
func NewExecutor(
	receipts ReceiptWriter,
	currencies CurrencyWriter,
	stores StoreWriter,
	products ProductWriter,
	inventories InventoryWriter,
) *Executor {
	return &Executor{
		receipts:    receipts,
		currencies:  currencies,
		stores:      stores,
		products:    products,
		inventories: inventories,
	}
}

// Execute implements Handler
func (e *Executor) Execute(ctx context.Context, cmd Command) (Outcome, error) {
	switch c := cmd.(type) {
	case CreateReceipt:
		result, err := e.receipts.Create(ctx, c.Draft, c.TransactionID())
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{ReceiptID: &result.ReceiptID, TransactionID: &result.TransactionID}, nil
	case DeleteReceipt:
		return receiptOutcome(c.ReceiptID), e.receipts.Delete(ctx, c.ReceiptID)
	case PatchReceipt:
		return receiptOutcome(c.ReceiptID), e.receipts.Update(ctx, c.ReceiptID, c.Patch)
	case PatchCurrency:
		return Outcome{}, e.currencies.Update(ctx, c.CurrencyID, c.Patch)
	case PatchStore:
		return Outcome{}, e.stores.Update(ctx, c.StoreID, c.Patch)
	case PatchProduct:
		return Outcome{}, e.products.Update(ctx, c.ProductID, c.Patch)
	case PatchInventory:
		return Outcome{}, e.inventories.Update(ctx, c.InventoryID, c.Patch)
	default:
		return Outcome{}, ErrUnknownCommand.WithMessage(fmt.Sprintf("Unknown command %T", cmd))
	}
}

func receiptOutcome(id int64) Outcome {
	return Outcome{ReceiptID: &id}
}

var _ Handler = (*Executor)(nil)

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ctx context.Context, cmd Command) (Outcome, error)

// Execute implements Handler
func (f HandlerFunc) Execute(ctx context.Context, cmd Command) (Outcome, error) {
	return f(ctx, cmd)
}
