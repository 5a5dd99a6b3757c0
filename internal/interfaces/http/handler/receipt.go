package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/receipts/backend/internal/application/command"
	receiptapp "github.com/receipts/backend/internal/application/receipt"
	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/receipts/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// ReceiptReader reads receipts
type ReceiptReader interface {
	GetByID(ctx context.Context, id int64) (*receiptapp.ReceiptResponse, error)
	List(ctx context.Context, dates shared.DateRange, page shared.Pagination) (shared.Paginated[receiptapp.ReceiptResponse], error)
}

// CreateReceiptRequest is the body of POST /receipts.
// A transaction_id sent by the client is ignored.
type CreateReceiptRequest struct {
	TransactionDate  *time.Time          `json:"transaction_date" binding:"required"`
	IsInventoryTaxed bool                `json:"is_inventory_taxed"`
	Currency         receipt.CurrencyRef `json:"currency"`
	Store            receipt.StoreRef    `json:"store"`
	Inventories      []LineRequest       `json:"inventories"`
}

// LineRequest is one inventory line of a new receipt
type LineRequest struct {
	Price    decimal.Decimal    `json:"price"`
	Quantity int32              `json:"quantity"`
	Product  receipt.ProductRef `json:"product"`
}

// Draft converts the request to a receipt draft
func (r CreateReceiptRequest) Draft() receipt.ReceiptDraft {
	lines := make([]receipt.LineDraft, len(r.Inventories))
	for i, l := range r.Inventories {
		lines[i] = receipt.LineDraft{Price: l.Price, Quantity: l.Quantity, Product: l.Product}
	}
	return receipt.ReceiptDraft{
		TransactionDate:  *r.TransactionDate,
		IsInventoryTaxed: r.IsInventoryTaxed,
		Currency:         r.Currency,
		Store:            r.Store,
		Inventories:      lines,
	}
}

// ReceiptHandler handles receipt HTTP requests
type ReceiptHandler struct {
	BaseHandler
	receipts ReceiptReader
	commands CommandSubmitter
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receipts ReceiptReader, commands CommandSubmitter) *ReceiptHandler {
	return &ReceiptHandler{
		receipts: receipts,
		commands: commands,
	}
}

// GetByID godoc
//
//	@Summary		Get receipt by ID
//	@Description	Returns the receipt with its currency, store and inventory lines
//	@Tags			receipts
//	@Produce		json
//	@Param			id	path		int	true	"Receipt ID"
//	@Success		200	{object}	dto.Response{data=receiptapp.ReceiptResponse}
//	@Failure		404	{object}	dto.Response
//	@Router			/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	r, err := h.receipts.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, r)
}

// List godoc
//
//	@Summary		List receipts
//	@Description	The date range applies only when both start_date and end_date are given
//	@Tags			receipts
//	@Produce		json
//	@Param			offset		query		int		false	"Offset"
//	@Param			limit		query		int		false	"Limit (max 100)"
//	@Param			start_date	query		string	false	"First day (YYYY-MM-DD)"
//	@Param			end_date	query		string	false	"Last day (YYYY-MM-DD)"
//	@Success		200			{object}	dto.Response{data=[]receiptapp.ReceiptResponse,meta=dto.Meta}
//	@Router			/receipts [get]
func (h *ReceiptHandler) List(c *gin.Context) {
	var req dto.DateListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.receipts.List(c.Request.Context(), req.Dates(), req.Pagination())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Page(c, page)
}

// Create godoc
//
//	@Summary		Create a receipt
//	@Description	Queues the creation and answers with a ticket; the ticket is also the receipt's transaction_id
//	@Tags			receipts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateReceiptRequest	true	"Receipt draft"
//	@Success		202		{object}	dto.Response{data=dto.AcceptedResponse}
//	@Failure		400		{object}	dto.Response
//	@Failure		503		{object}	dto.Response
//	@Router			/receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	h.Submit(c, h.commands, command.NewCreateReceipt(req.Draft()))
}

// Patch godoc
//
//	@Summary		Update receipt header fields
//	@Tags			receipts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Receipt ID"
//	@Param			request	body		receipt.ReceiptPatch	true	"Fields to change"
//	@Success		202		{object}	dto.Response{data=dto.AcceptedResponse}
//	@Failure		400		{object}	dto.Response
//	@Router			/receipts/{id} [patch]
func (h *ReceiptHandler) Patch(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var patch receipt.ReceiptPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.BindError(c, err)
		return
	}
	if patch.IsEmpty() {
		h.HandleDomainError(c, shared.ErrInvalidParameter.WithMessage("Receipt patch has no fields"))
		return
	}
	h.Submit(c, h.commands, command.NewPatchReceipt(id, patch))
}

// Delete godoc
//
//	@Summary		Delete a receipt
//	@Description	Deletes the receipt, its lines, and every product, store or currency left unreferenced
//	@Tags			receipts
//	@Produce		json
//	@Param			id	path		int	true	"Receipt ID"
//	@Success		202	{object}	dto.Response{data=dto.AcceptedResponse}
//	@Router			/receipts/{id} [delete]
func (h *ReceiptHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	h.Submit(c, h.commands, command.NewDeleteReceipt(id))
}
