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

// ProductReader reads products
type ProductReader interface {
	GetByID(ctx context.Context, id int64) (*receiptapp.ProductResponse, error)
	List(ctx context.Context, filter shared.KeywordFilter, page shared.Pagination) (shared.Paginated[receiptapp.ProductResponse], error)
}

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	BaseHandler
	products ProductReader
	commands CommandSubmitter
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products ProductReader, commands CommandSubmitter) *ProductHandler {
	return &ProductHandler{
		products: products,
		commands: commands,
	}
}

// GetByID godoc
//
//	@Summary		Get product by ID
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int	true	"Product ID"
//	@Success		200	{object}	dto.Response{data=receiptapp.ProductResponse}
//	@Failure		404	{object}	dto.Response
//	@Router			/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// List godoc
//
//	@Summary		List products
//	@Tags			products
//	@Produce		json
//	@Param			offset	query		int		false	"Offset"
//	@Param			limit	query		int		false	"Limit (max 100)"
//	@Param			keyword	query		string	false	"Substring of the name"
//	@Success		200		{object}	dto.Response{data=[]receiptapp.ProductResponse,meta=dto.Meta}
//	@Router			/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var req dto.KeywordListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.products.List(c.Request.Context(), req.Filter(), req.Pagination())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Page(c, page)
}

// Patch godoc
//
//	@Summary		Update a product
//	@Description	Absent fields are kept, null clears alias, brand or a specification field
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Product ID"
//	@Param			request	body		receipt.ProductPatch	true	"Fields to change"
//	@Success		202		{object}	dto.Response{data=dto.AcceptedResponse}
//	@Failure		400		{object}	dto.Response
//	@Router			/products/{id} [patch]
func (h *ProductHandler) Patch(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var patch receipt.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.BindError(c, err)
		return
	}
	if patch.IsEmpty() {
		h.HandleDomainError(c, shared.ErrInvalidParameter.WithMessage("Product patch has no fields"))
		return
	}
	h.Submit(c, h.commands, command.NewPatchProduct(id, patch))
}
