package receipt

import (
	"context"

	"github.com/receipts/backend/internal/domain/shared"
)

// CurrencyRepository defines the interface for currency persistence
type CurrencyRepository interface {
	// FindByID finds a currency by its ID
	FindByID(ctx context.Context, id int64) (*Currency, error)

	// ExistsByID checks whether a currency with the ID exists
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// ExistsByName checks whether a currency with the name exists
	ExistsByName(ctx context.Context, name string) (bool, error)

	// FindAll returns one page of currencies whose name contains the keyword, plus the total
	FindAll(ctx context.Context, filter shared.KeywordFilter, page shared.Pagination) ([]Currency, int64, error)

	// Create inserts a currency and sets its ID
	Create(ctx context.Context, currency *Currency) error

	// Save updates an existing currency
	Save(ctx context.Context, currency *Currency) error

	// Delete deletes a currency
	Delete(ctx context.Context, id int64) error
}

// StoreRepository defines the interface for store persistence
type StoreRepository interface {
	FindByID(ctx context.Context, id int64) (*Store, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// ExistsByAttributes matches name and branch exactly, treating a nil branch as NULL
	ExistsByAttributes(ctx context.Context, attrs StoreAttributes) (bool, error)
	FindAll(ctx context.Context, filter shared.KeywordFilter, page shared.Pagination) ([]Store, int64, error)
	Create(ctx context.Context, store *Store) error
	Save(ctx context.Context, store *Store) error
	Delete(ctx context.Context, id int64) error
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*Product, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// ExistsByAttributes matches the whole specification tuple, treating nil fields as NULL
	ExistsByAttributes(ctx context.Context, attrs ProductAttributes) (bool, error)
	FindAll(ctx context.Context, filter shared.KeywordFilter, page shared.Pagination) ([]Product, int64, error)
	Create(ctx context.Context, product *Product) error
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id int64) error
}

// ReceiptRepository defines the interface for receipt persistence
type ReceiptRepository interface {
	FindByID(ctx context.Context, id int64) (*Receipt, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// FindDetailByID loads a receipt with its currency, store and lines
	FindDetailByID(ctx context.Context, id int64) (*ReceiptDetail, error)

	// FindDetails returns one page of receipts within the date range, newest first, plus the total
	FindDetails(ctx context.Context, dates shared.DateRange, page shared.Pagination) ([]ReceiptDetail, int64, error)

	Create(ctx context.Context, receipt *Receipt) error
	Save(ctx context.Context, receipt *Receipt) error
	Delete(ctx context.Context, id int64) error

	// ExistsByStoreID checks whether any receipt references the store
	ExistsByStoreID(ctx context.Context, storeID int64) (bool, error)

	// ExistsByCurrencyID checks whether any receipt references the currency
	ExistsByCurrencyID(ctx context.Context, currencyID int64) (bool, error)
}

// InventoryRepository defines the interface for inventory persistence
type InventoryRepository interface {
	FindByID(ctx context.Context, id int64) (*Inventory, error)

	// FindLineByID loads an inventory row with its product
	FindLineByID(ctx context.Context, id int64) (*InventoryLine, error)

	// FindLines returns one page of inventory rows with their products, plus the total
	FindLines(ctx context.Context, page shared.Pagination) ([]InventoryLine, int64, error)

	// FindRefsByReceiptID returns the (inventory, product) pairs of a receipt
	FindRefsByReceiptID(ctx context.Context, receiptID int64) ([]InventoryRef, error)

	Create(ctx context.Context, inventory *Inventory) error
	Save(ctx context.Context, inventory *Inventory) error

	// DeleteByIDs deletes the given inventory rows
	DeleteByIDs(ctx context.Context, ids []int64) error

	// ExistsByProductID checks whether any inventory row references the product
	ExistsByProductID(ctx context.Context, productID int64) (bool, error)
}

// CustomizedInventoryRepository reads inventory rows joined with all related tables
type CustomizedInventoryRepository interface {
	FindByID(ctx context.Context, id int64) (*CustomizedInventory, error)
	FindAll(ctx context.Context, query InventoryQuery, page shared.Pagination) ([]CustomizedInventory, int64, error)
}
