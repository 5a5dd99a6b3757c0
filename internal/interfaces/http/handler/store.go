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

// StoreReader reads stores
type StoreReader interface {
	GetByID(ctx context.Context, id int64) (*receiptapp.StoreResponse, error)
	List(ctx context.Context, filter shared.KeywordFilter, page shared.Pagination) (shared.Paginated[receiptapp.StoreResponse], error)
}

// StoreHandler handles store-related HTTP requests
type StoreHandler struct {
	BaseHandler
	stores   StoreReader
	commands CommandSubmitter
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(stores StoreReader, commands CommandSubmitter) *StoreHandler {
	return &StoreHandler{
		stores:   stores,
		commands: commands,
	}
}

// GetByID godoc
//
//	@Summary		Get store by ID
//	@Tags			stores
//	@Produce		json
//	@Param			id	path		int	true	"Store ID"
//	@Success		200	{object}	dto.Response{data=receiptapp.StoreResponse}
//	@Failure		404	{object}	dto.Response
//	@Router			/stores/{id} [get]
func (h *StoreHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	store, err := h.stores.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, store)
}

// List godoc
//
//	@Summary		List stores
//	@Tags			stores
//	@Produce		json
//	@Param			offset	query		int		false	"Offset"
//	@Param			limit	query		int		false	"Limit (max 100)"
//	@Param			keyword	query		string	false	"Substring of the name"
//	@Success		200		{object}	dto.Response{data=[]receiptapp.StoreResponse,meta=dto.Meta}
//	@Router			/stores [get]
func (h *StoreHandler) List(c *gin.Context) {
	var req dto.KeywordListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.stores.List(c.Request.Context(), req.Filter(), req.Pagination())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Page(c, page)
}

// Patch godoc
//
//	@Summary		Update a store
//	@Description	Absent fields are kept, null clears alias, branch or address
//	@Tags			stores
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Store ID"
//	@Param			request	body		receipt.StorePatch	true	"Fields to change"
//	@Success		202		{object}	dto.Response{data=dto.AcceptedResponse}
//	@Failure		400		{object}	dto.Response
//	@Router			/stores/{id} [patch]
func (h *StoreHandler) Patch(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var patch receipt.StorePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.BindError(c, err)
		return
	}
	if patch.IsEmpty() {
		h.HandleDomainError(c, shared.ErrInvalidParameter.WithMessage("Store patch has no fields"))
		return
	}
	h.Submit(c, h.commands, command.NewPatchStore(id, patch))
}
