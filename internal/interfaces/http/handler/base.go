package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/receipts/backend/internal/application/command"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/receipts/backend/internal/infrastructure/logger"
	"github.com/receipts/backend/internal/interfaces/http/dto"
	"github.com/receipts/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// CommandSubmitter queues write commands
type CommandSubmitter interface {
	Submit(ctx context.Context, cmd command.Command) (uuid.UUID, error)
}

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Page sends one page of a listing with its meta
func Page[T any](c *gin.Context, page shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewPageResponse(page))
}

// Accepted sends a 202 acknowledging a queued command
func (h *BaseHandler) Accepted(c *gin.Context, cmd command.Command, ticket uuid.UUID) {
	resp := dto.AcceptedResponse{
		Ticket:    ticket,
		Command:   cmd.Name(),
		StatusURL: "/api/v1/commands/" + ticket.String(),
	}
	if create, ok := cmd.(command.CreateReceipt); ok {
		id := create.TransactionID()
		resp.TransactionID = &id
	}
	c.Header("Location", resp.StatusURL)
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(resp))
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// BindError answers a failed ShouldBind* call, listing rejected fields when there are any
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	if details := middleware.ValidationDetails(err); details != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Request validation failed",
			middleware.GetRequestID(c),
			details,
		))
		return
	}
	h.BadRequest(c, "Invalid request: "+err.Error())
}

// HandleDomainError converts domain errors to HTTP responses
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Kind)
		if status >= http.StatusInternalServerError {
			logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
		}
		c.JSON(status, dto.NewDomainErrorResponse(domainErr, middleware.GetRequestID(c)))
		return
	}

	logger.GetGinLogger(c).Error("Unexpected error", zap.Error(err))
	h.InternalError(c, "An unexpected error occurred")
}

// Submit queues cmd and answers 202, or 503 when the queue does not take it
func (h *BaseHandler) Submit(c *gin.Context, submitter CommandSubmitter, cmd command.Command) {
	ticket, err := submitter.Submit(c.Request.Context(), cmd)
	if err != nil {
		if errors.Is(err, command.ErrDispatcherStopped) || errors.Is(err, command.ErrSubmissionCanceled) {
			var domainErr *shared.DomainError
			errors.As(err, &domainErr)
			c.JSON(http.StatusServiceUnavailable, dto.NewDomainErrorResponse(domainErr, middleware.GetRequestID(c)))
			return
		}
		h.HandleDomainError(c, err)
		return
	}
	h.Accepted(c, cmd, ticket)
}

// bindID binds the :id path parameter, answering 400 itself on failure
func (h *BaseHandler) bindID(c *gin.Context) (int64, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid id")
		return 0, false
	}
	return req.ID, true
}
