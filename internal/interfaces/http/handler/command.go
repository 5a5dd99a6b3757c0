package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/receipts/backend/internal/interfaces/http/dto"
)

// CommandResultReader looks up the recorded state of a ticket
type CommandResultReader interface {
	Result(ctx context.Context, ticket uuid.UUID) (*shared.CommandResult, error)
}

// CommandHandler serves the state of submitted commands
type CommandHandler struct {
	BaseHandler
	results CommandResultReader
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(results CommandResultReader) *CommandHandler {
	return &CommandHandler{results: results}
}

// GetResult godoc
//
//	@Summary		Get the state of a submitted command
//	@Description	404 when the ticket is unknown, expired, or results are not recorded
//	@Tags			commands
//	@Produce		json
//	@Param			ticket	path		string	true	"Ticket returned by a write endpoint"
//	@Success		200		{object}	dto.Response{data=shared.CommandResult}
//	@Failure		400		{object}	dto.Response
//	@Failure		404		{object}	dto.Response
//	@Router			/commands/{ticket} [get]
func (h *CommandHandler) GetResult(c *gin.Context) {
	var req dto.TicketRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid ticket")
		return
	}
	result, err := h.results.Result(c.Request.Context(), uuid.MustParse(req.Ticket))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}
