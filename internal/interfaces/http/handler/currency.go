package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/receipts/backend/internal/application/command"
	receiptapp "github.com/receipts/backend/internal/application/receipt"
	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/receipts/backend/internal/interfaces/http/dto"
)

// CurrencyReader reads currencies
type CurrencyReader interface {
	GetByID(ctx context.Context, id int64) (*receiptapp.CurrencyResponse, error)
	List(ctx context.Context, filter shared.KeywordFilter, page shared.Pagination) (shared.Paginated[receiptapp.CurrencyResponse], error)
}

// CurrencyHandler handles currency-related HTTP requests
type CurrencyHandler struct {
	BaseHandler
	currencies CurrencyReader
	commands   CommandSubmitter
}

// NewCurrencyHandler creates a new CurrencyHandler
func NewCurrencyHandler(currencies CurrencyReader, commands CommandSubmitter) *CurrencyHandler {
	return &CurrencyHandler{
		currencies: currencies,
		commands:   commands,
	}
}

// GetByID godoc
//
//	@Summary		Get currency by ID
//	@Tags			currencies
//	@Produce		json
//	@Param			id	path		int	true	"Currency ID"
//	@Success		200	{object}	dto.Response{data=receiptapp.CurrencyResponse}
//	@Failure		400	{object}	dto.Response
//	@Failure		404	{object}	dto.Response
//	@Router			/currencies/{id} [get]
func (h *CurrencyHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	currency, err := h.currencies.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, currency)
}

// List godoc
//
//	@Summary		List currencies
//	@Description	Currencies whose name contains keyword, paged by offset and limit
//	@Tags			currencies
//	@Produce		json
//	@Param			offset	query		int		false	"Offset"
//	@Param			limit	query		int		false	"Limit (max 100)"
//	@Param			keyword	query		string	false	"Substring of the name"
//	@Success		200		{object}	dto.Response{data=[]receiptapp.CurrencyResponse,meta=dto.Meta}
//	@Router			/currencies [get]
func (h *CurrencyHandler) List(c *gin.Context) {
	var req dto.KeywordListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.currencies.List(c.Request.Context(), req.Filter(), req.Pagination())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Page(c, page)
}

// Patch godoc
//
//	@Summary		Rename a currency
//	@Description	Queues the rename and answers with a ticket
//	@Tags			currencies
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Currency ID"
//	@Param			request	body		receipt.CurrencyPatch	true	"New name"
//	@Success		202		{object}	dto.Response{data=dto.AcceptedResponse}
//	@Failure		400		{object}	dto.Response
//	@Failure		503		{object}	dto.Response
//	@Router			/currencies/{id} [patch]
func (h *CurrencyHandler) Patch(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var patch receipt.CurrencyPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.BindError(c, err)
		return
	}
	if strings.TrimSpace(patch.Name) == "" {
		h.HandleDomainError(c, shared.ErrInvalidParameter.WithMessage("Currency patch needs a name"))
		return
	}
	h.Submit(c, h.commands, command.NewPatchCurrency(id, patch))
}
