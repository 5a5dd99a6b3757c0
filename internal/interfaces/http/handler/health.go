package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/receipts/backend/internal/application/command"
)

// DatabasePinger checks database connectivity
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// QueueInspector reports the state of the command queue
type QueueInspector interface {
	State() command.State
	Depth() int
	Capacity() int
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string        `json:"status"`
	Database  string        `json:"database"`
	Queue     QueueStatus   `json:"queue"`
	Uptime    string        `json:"uptime"`
	Timestamp time.Time     `json:"timestamp"`
	Latency   time.Duration `json:"latency_ns"`
}

// QueueStatus describes the command queue
type QueueStatus struct {
	State    string `json:"state"`
	Depth    int    `json:"depth"`
	Capacity int    `json:"capacity"`
}

// HealthHandler reports service health
type HealthHandler struct {
	BaseHandler
	db        DatabasePinger
	queue     QueueInspector
	startedAt time.Time
	timeout   time.Duration
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db DatabasePinger, queue QueueInspector) *HealthHandler {
	return &HealthHandler{
		db:        db,
		queue:     queue,
		startedAt: time.Now(),
		timeout:   2 * time.Second,
	}
}

// Health godoc
//
//	@Summary		Service health
//	@Description	Pings the database and reports the command queue
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	start := time.Now()
	resp := HealthResponse{
		Status:   "healthy",
		Database: "up",
		Queue: QueueStatus{
			State:    h.queue.State().String(),
			Depth:    h.queue.Depth(),
			Capacity: h.queue.Capacity(),
		},
		Uptime:    time.Since(h.startedAt).Round(time.Second).String(),
		Timestamp: start.UTC(),
	}

	status := http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "unhealthy"
		resp.Database = "down"
		status = http.StatusServiceUnavailable
	}
	resp.Latency = time.Since(start)
	c.JSON(status, resp)
}
