package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/receipts/backend/internal/application/command"
	receiptapp "github.com/receipts/backend/internal/application/receipt"
	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/receipts/backend/internal/interfaces/http/dto"
)

// InventoryReader reads inventory lines
type InventoryReader interface {
	GetByID(ctx context.Context, id int64) (*receiptapp.InventoryResponse, error)
	List(ctx context.Context, page shared.Pagination) (shared.Paginated[receiptapp.InventoryResponse], error)
}

// InventoryHandler handles inventory-line HTTP requests
type InventoryHandler struct {
	BaseHandler
	inventories InventoryReader
	commands    CommandSubmitter
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventories InventoryReader, commands CommandSubmitter) *InventoryHandler {
	return &InventoryHandler{
		inventories: inventories,
		commands:    commands,
	}
}

// GetByID godoc
//
//	@Summary		Get inventory line by ID
//	@Tags			inventories
//	@Produce		json
//	@Param			id	path		int	true	"Inventory ID"
//	@Success		200	{object}	dto.Response{data=receiptapp.InventoryResponse}
//	@Failure		404	{object}	dto.Response
//	@Router			/inventories/{id} [get]
func (h *InventoryHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	line, err := h.inventories.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, line)
}

// List godoc
//
//	@Summary		List inventory lines with their products
//	@Tags			inventories
//	@Produce		json
//	@Param			offset	query		int	false	"Offset"
//	@Param			limit	query		int	false	"Limit (max 100)"
//	@Success		200		{object}	dto.Response{data=[]receiptapp.InventoryResponse,meta=dto.Meta}
//	@Router			/inventories [get]
func (h *InventoryHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.inventories.List(c.Request.Context(), req.Pagination())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Page(c, page)
}

// Patch godoc
//
//	@Summary		Update price and/or quantity of a line
//	@Tags			inventories
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Inventory ID"
//	@Param			request	body		receipt.InventoryPatch	true	"Fields to change"
//	@Success		202		{object}	dto.Response{data=dto.AcceptedResponse}
//	@Failure		400		{object}	dto.Response
//	@Router			/inventories/{id} [patch]
func (h *InventoryHandler) Patch(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var patch receipt.InventoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.BindError(c, err)
		return
	}
	if patch.IsEmpty() {
		h.HandleDomainError(c, shared.ErrInvalidParameter.WithMessage("Inventory patch has no fields"))
		return
	}
	h.Submit(c, h.commands, command.NewPatchInventory(id, patch))
}
