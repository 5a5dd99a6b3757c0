package shared

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultCommandResultTTL is how long command results stay queryable
const DefaultCommandResultTTL = 24 * time.Hour

// CommandStatus is the lifecycle state of a submitted command
type CommandStatus string

const (
	CommandQueued    CommandStatus = "queued"
	CommandRunning   CommandStatus = "running"
	CommandSucceeded CommandStatus = "succeeded"
	CommandFailed    CommandStatus = "failed"
)

// IsFinal reports whether the command has finished executing
func (s CommandStatus) IsFinal() bool {
	return s == CommandSucceeded || s == CommandFailed
}

// CommandResult is what a client can learn about a command it submitted
type CommandResult struct {
	Ticket        uuid.UUID     `json:"ticket"`
	Command       string        `json:"command"`
	Status        CommandStatus `json:"status"`
	ReceiptID     *int64        `json:"receipt_id,omitempty"`
	TransactionID *uuid.UUID    `json:"transaction_id,omitempty"`
	ErrorCode     string        `json:"error_code,omitempty"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	SubmittedAt   time.Time     `json:"submitted_at"`
	FinishedAt    *time.Time    `json:"finished_at,omitempty"`
}

// Fail marks the result failed with err
func (r *CommandResult) Fail(err error, at time.Time) {
	r.Status = CommandFailed
	r.FinishedAt = &at
	r.ErrorMessage = err.Error()
	var de *DomainError
	if errors.As(err, &de) {
		r.ErrorCode = de.Code
	} else {
		r.ErrorCode = ErrGeneric.Code
	}
}

// Succeed marks the result succeeded
func (r *CommandResult) Succeed(at time.Time) {
	r.Status = CommandSucceeded
	r.FinishedAt = &at
}

// CommandResultStore keeps command results for later lookup by ticket
type CommandResultStore interface {
	// Put stores result, replacing any earlier state of the same ticket
	Put(ctx context.Context, result CommandResult, ttl time.Duration) error

	// Get returns the result of ticket, or ErrNoRecord when it is unknown or expired
	Get(ctx context.Context, ticket uuid.UUID) (*CommandResult, error)

	// Close releases resources
	Close() error
}
