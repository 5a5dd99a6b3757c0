package receipt

import "github.com/receipts/backend/internal/domain/shared"

// Reference validation and resolution errors
var (
	ErrCurrencyInvalid        = shared.NewKindError(shared.KindValidation, "CURRENCY_INVALID", "Currency reference needs an id or a name")
	ErrCurrencyIDNotExisted   = shared.NewKindError(shared.KindResolution, "CURRENCY_ID_NOT_EXISTED", "Currency id does not exist")
	ErrCurrencyNameDuplicated = shared.NewKindError(shared.KindResolution, "CURRENCY_NAME_DUPLICATED", "Currency with this name already exists")

	ErrStoreInvalid        = shared.NewKindError(shared.KindValidation, "STORE_INVALID", "Store reference needs an id or a name")
	ErrStoreIDNotExisted   = shared.NewKindError(shared.KindResolution, "STORE_ID_NOT_EXISTED", "Store id does not exist")
	ErrStoreNameDuplicated = shared.NewKindError(shared.KindResolution, "STORE_NAME_DUPLICATED", "Store with this name and branch already exists")

	ErrProductInvalid        = shared.NewKindError(shared.KindValidation, "PRODUCT_INVALID", "Product reference needs an id or a name")
	ErrProductIDNotExisted   = shared.NewKindError(shared.KindResolution, "PRODUCT_ID_NOT_EXISTED", "Product id does not exist")
	ErrProductNameDuplicated = shared.NewKindError(shared.KindResolution, "PRODUCT_NAME_DUPLICATED", "Product with this specification already exists")
)

// Persistence errors
var (
	ErrInsertCurrencyFailed  = shared.NewKindError(shared.KindPersistence, "INSERT_CURRENCY_FAILED", "Failed to insert currency")
	ErrInsertStoreFailed     = shared.NewKindError(shared.KindPersistence, "INSERT_STORE_FAILED", "Failed to insert store")
	ErrInsertProductFailed   = shared.NewKindError(shared.KindPersistence, "INSERT_PRODUCT_FAILED", "Failed to insert product")
	ErrInsertReceiptFailed   = shared.NewKindError(shared.KindPersistence, "INSERT_RECEIPT_FAILED", "Failed to insert receipt")
	ErrInsertInventoryFailed = shared.NewKindError(shared.KindPersistence, "INSERT_INVENTORY_FAILED", "Failed to insert inventory")

	ErrUpdateCurrencyFailed  = shared.NewKindError(shared.KindPersistence, "UPDATE_CURRENCY_FAILED", "Failed to update currency")
	ErrUpdateStoreFailed     = shared.NewKindError(shared.KindPersistence, "UPDATE_STORE_FAILED", "Failed to update store")
	ErrUpdateProductFailed   = shared.NewKindError(shared.KindPersistence, "UPDATE_PRODUCT_FAILED", "Failed to update product")
	ErrUpdateReceiptFailed   = shared.NewKindError(shared.KindPersistence, "UPDATE_RECEIPT_FAILED", "Failed to update receipt")
	ErrUpdateInventoryFailed = shared.NewKindError(shared.KindPersistence, "UPDATE_INVENTORY_FAILED", "Failed to update inventory")

	ErrDeleteReceiptIDNotExisted          = shared.NewKindError(shared.KindResolution, "DELETE_RECEIPT_ID_NOT_EXISTED", "Receipt to delete does not exist")
	ErrDeleteReceiptAssociatedEntryFailed = shared.NewKindError(shared.KindPersistence, "DELETE_RECEIPT_ASSOCIATED_ENTRY_FAILED", "Failed to delete inventories or products of receipt")
	ErrDeleteReceiptEntryFailed           = shared.NewKindError(shared.KindPersistence, "DELETE_RECEIPT_ENTRY_FAILED", "Failed to delete receipt")
	ErrDeleteReceiptRelatedEntryFailed    = shared.NewKindError(shared.KindPersistence, "DELETE_RECEIPT_RELATED_ENTRY_FAILED", "Failed to delete store or currency of receipt")
)
