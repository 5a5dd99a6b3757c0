package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	receiptapp "github.com/receipts/backend/internal/application/receipt"
	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/receipts/backend/internal/interfaces/http/dto"
)

// CustomizedInventoryReader reads inventory lines joined with their receipt context
type CustomizedInventoryReader interface {
	GetCustomized(ctx context.Context, id int64) (*receiptapp.CustomizedInventoryResponse, error)
	ListCustomized(ctx context.Context, query receipt.InventoryQuery, page shared.Pagination) (shared.Paginated[receiptapp.CustomizedInventoryResponse], error)
}

// CustomizedInventoryHandler serves inventory lines with product, receipt, store and currency
type CustomizedInventoryHandler struct {
	BaseHandler
	inventories CustomizedInventoryReader
}

// NewCustomizedInventoryHandler creates a new CustomizedInventoryHandler
func NewCustomizedInventoryHandler(inventories CustomizedInventoryReader) *CustomizedInventoryHandler {
	return &CustomizedInventoryHandler{inventories: inventories}
}

// GetByID godoc
//
//	@Summary		Get a customized inventory line
//	@Tags			customized-inventories
//	@Produce		json
//	@Param			id	path		int	true	"Inventory ID"
//	@Success		200	{object}	dto.Response{data=receiptapp.CustomizedInventoryResponse}
//	@Failure		404	{object}	dto.Response
//	@Router			/customized-inventories/{id} [get]
func (h *CustomizedInventoryHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	line, err := h.inventories.GetCustomized(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, line)
}

// List godoc
//
//	@Summary		List customized inventory lines
//	@Description	currency matches exactly; store and product filters match substrings
//	@Tags			customized-inventories
//	@Produce		json
//	@Param			offset			query		int		false	"Offset"
//	@Param			limit			query		int		false	"Limit (max 100)"
//	@Param			start_date		query		string	false	"First day (YYYY-MM-DD)"
//	@Param			end_date		query		string	false	"Last day (YYYY-MM-DD)"
//	@Param			currency		query		string	false	"Currency name"
//	@Param			store_name		query		string	false	"Substring of the store name"
//	@Param			store_alias		query		string	false	"Substring of the store alias"
//	@Param			product_name	query		string	false	"Substring of the product name"
//	@Param			product_alias	query		string	false	"Substring of the product alias"
//	@Param			product_brand	query		string	false	"Substring of the product brand"
//	@Success		200				{object}	dto.Response{data=[]receiptapp.CustomizedInventoryResponse,meta=dto.Meta}
//	@Router			/customized-inventories [get]
func (h *CustomizedInventoryHandler) List(c *gin.Context) {
	h.list(c, nil)
}

// ListByCurrency godoc
//
//	@Summary	List customized inventory lines of a currency
//	@Tags		currencies
//	@Produce	json
//	@Param		id	path		int	true	"Currency ID"
//	@Success	200	{object}	dto.Response{data=[]receiptapp.CustomizedInventoryResponse,meta=dto.Meta}
//	@Router		/currencies/{id}/customized-inventories [get]
func (h *CustomizedInventoryHandler) ListByCurrency(c *gin.Context) {
	h.listByOwner(c, func(q *receipt.InventoryQuery, id int64) { q.CurrencyID = &id })
}

// ListByStore godoc
//
//	@Summary	List customized inventory lines of a store
//	@Tags		stores
//	@Produce	json
//	@Param		id	path		int	true	"Store ID"
//	@Success	200	{object}	dto.Response{data=[]receiptapp.CustomizedInventoryResponse,meta=dto.Meta}
//	@Router		/stores/{id}/customized-inventories [get]
func (h *CustomizedInventoryHandler) ListByStore(c *gin.Context) {
	h.listByOwner(c, func(q *receipt.InventoryQuery, id int64) { q.StoreID = &id })
}

// ListByProduct godoc
//
//	@Summary	List customized inventory lines of a product
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"Product ID"
//	@Success	200	{object}	dto.Response{data=[]receiptapp.CustomizedInventoryResponse,meta=dto.Meta}
//	@Router		/products/{id}/customized-inventories [get]
func (h *CustomizedInventoryHandler) ListByProduct(c *gin.Context) {
	h.listByOwner(c, func(q *receipt.InventoryQuery, id int64) { q.ProductID = &id })
}

// ListByReceipt godoc
//
//	@Summary	List customized inventory lines of a receipt
//	@Tags		receipts
//	@Produce	json
//	@Param		id	path		int	true	"Receipt ID"
//	@Success	200	{object}	dto.Response{data=[]receiptapp.CustomizedInventoryResponse,meta=dto.Meta}
//	@Router		/receipts/{id}/customized-inventories [get]
func (h *CustomizedInventoryHandler) ListByReceipt(c *gin.Context) {
	h.listByOwner(c, func(q *receipt.InventoryQuery, id int64) { q.ReceiptID = &id })
}

func (h *CustomizedInventoryHandler) listByOwner(c *gin.Context, scope func(*receipt.InventoryQuery, int64)) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	h.list(c, func(q *receipt.InventoryQuery) { scope(q, id) })
}

func (h *CustomizedInventoryHandler) list(c *gin.Context, scope func(*receipt.InventoryQuery)) {
	var req dto.CustomizedInventoryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	query := req.Query()
	if scope != nil {
		scope(&query)
	}
	page, err := h.inventories.ListCustomized(c.Request.Context(), query, req.Pagination())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Page(c, page)
}
