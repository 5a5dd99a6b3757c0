package command

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/receipts/backend/internal/infrastructure/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Dispatcher errors
var (
	ErrDispatcherStopped  = shared.NewDomainError("DISPATCHER_STOPPED", "Command queue is not accepting commands")
	ErrDispatcherStarted  = shared.NewDomainError("DISPATCHER_STARTED", "Command dispatcher already started")
	ErrCommandPanicked    = shared.NewDomainError("COMMAND_PANICKED", "Command panicked")
	ErrSubmissionCanceled = shared.NewDomainError("SUBMISSION_CANCELED", "Command was not queued")
)

// DefaultCapacity is the queue capacity used when none is configured
const DefaultCapacity = 128

// recordTimeout bounds each result store write
const recordTimeout = 2 * time.Second

// State is the state of the consumer loop
type State int32

const (
	// StateIdle means the loop is waiting for the next command
	StateIdle State = iota
	// StateExecuting means the loop is running a command to completion
	StateExecuting
)

// String returns the name of the state
func (s State) String() string {
	if s == StateExecuting {
		return "executing"
	}
	return "idle"
}

// Config holds dispatcher configuration
type Config struct {
	// Capacity bounds the queue; Submit blocks while it is full
	Capacity int
	// ExecutionTimeout bounds one command; zero means no limit
	ExecutionTimeout time.Duration
	// ResultTTL is how long results stay in the result store
	ResultTTL time.Duration
}

// DefaultConfig returns the default dispatcher configuration
func DefaultConfig() Config {
	return Config{
		Capacity:  DefaultCapacity,
		ResultTTL: shared.DefaultCommandResultTTL,
	}
}

// Observer is notified of submissions and executions
type Observer interface {
	CommandSubmitted(ctx context.Context, command string)
	CommandExecuted(ctx context.Context, command string, status shared.CommandStatus, elapsed time.Duration)
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithResultStore records the state of every command in store
func WithResultStore(store shared.CommandResultStore) Option {
	return func(d *Dispatcher) {
		d.results = store
	}
}

// WithObserver reports submissions and executions to o
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) {
		d.observer = o
	}
}

// WithTracer sets the tracer used for command spans
func WithTracer(t trace.Tracer) Option {
	return func(d *Dispatcher) {
		d.tracer = t
	}
}

type envelope struct {
	cmd         Command
	submittedAt time.Time
}

// Dispatcher owns the write queue and its single consumer
type Dispatcher struct {
	handler  Handler
	config   Config
	logger   *zap.Logger
	results  shared.CommandResultStore
	observer Observer
	tracer   trace.Tracer

	queue   chan envelope
	mu      sync.RWMutex
	started bool
	closed  bool
	state   atomic.Int32
	done    chan struct{}
}

// NewDispatcher creates a dispatcher; call Start to begin consuming
func NewDispatcher(handler Handler, cfg Config, log *zap.Logger, opts ...Option) *Dispatcher {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = shared.DefaultCommandResultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		handler: handler,
		config:  cfg,
		logger:  log,
		tracer:  otel.Tracer("receipts/command"),
		queue:   make(chan envelope, cfg.Capacity),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start launches the consumer loop. Commands run with a context detached
// from ctx's cancellation so that Stop can drain the queue.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDispatcherStopped
	}
	if d.started {
		return ErrDispatcherStarted
	}
	d.started = true

	go d.loop(context.WithoutCancel(ctx))

	d.logger.Info("Command dispatcher started",
		zap.Int("capacity", d.config.Capacity),
		zap.Duration("execution_timeout", d.config.ExecutionTimeout),
		zap.Bool("result_store", d.results != nil),
	)
	return nil
}

// Submit queues cmd and returns its ticket without waiting for execution.
// It blocks while the queue is full, until ctx is done.
func (d *Dispatcher) Submit(ctx context.Context, cmd Command) (uuid.UUID, error) {
	if d.isClosed() {
		return uuid.Nil, ErrDispatcherStopped
	}

	env := envelope{cmd: cmd, submittedAt: time.Now()}
	result := newResult(env)
	// queued must be stored before the consumer can record running
	d.record(ctx, result)

	if err := d.enqueue(ctx, env); err != nil {
		result.Fail(err, time.Now())
		d.record(context.WithoutCancel(ctx), result)
		return uuid.Nil, err
	}

	if d.observer != nil {
		d.observer.CommandSubmitted(ctx, cmd.Name())
	}
	logger.FromContext(ctx).Debug("Command queued",
		zap.String("command", cmd.Name()),
		zap.String("ticket", cmd.Ticket().String()),
	)
	return cmd.Ticket(), nil
}

// enqueue sends env under the read lock so Stop cannot close the queue mid-send
func (d *Dispatcher) enqueue(ctx context.Context, env envelope) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherStopped
	}
	select {
	case d.queue <- env:
		return nil
	case <-ctx.Done():
		return ErrSubmissionCanceled.Wrap(ctx.Err())
	}
}

func (d *Dispatcher) isClosed() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.closed
}

// Stop refuses further submissions, then waits until every queued command
// has executed or ctx is done.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	started := d.started
	pending := len(d.queue)
	d.mu.Unlock()

	if !started {
		return nil
	}
	d.logger.Info("Draining command queue", zap.Int("pending", pending))

	select {
	case <-d.done:
		d.logger.Info("Command dispatcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Depth returns the number of commands waiting in the queue
func (d *Dispatcher) Depth() int {
	return len(d.queue)
}

// Capacity returns the queue capacity
func (d *Dispatcher) Capacity() int {
	return cap(d.queue)
}

// State returns the current state of the consumer loop
func (d *Dispatcher) State() State {
	return State(d.state.Load())
}

// Busy reports whether a command is executing
func (d *Dispatcher) Busy() bool {
	return d.State() == StateExecuting
}

// Result returns the recorded state of a ticket
func (d *Dispatcher) Result(ctx context.Context, ticket uuid.UUID) (*shared.CommandResult, error) {
	if d.results == nil {
		return nil, shared.ErrNoRecord.WithMessage("Command results are not recorded")
	}
	return d.results.Get(ctx, ticket)
}

func (d *Dispatcher) loop(ctx context.Context) {
	defer close(d.done)
	for env := range d.queue {
		d.execute(ctx, env)
	}
}

func (d *Dispatcher) execute(base context.Context, env envelope) {
	d.state.Store(int32(StateExecuting))
	defer d.state.Store(int32(StateIdle))

	cmd := env.cmd
	ctx, log := logger.WithTicket(base, d.logger, cmd.Ticket().String())
	ctx, span := d.tracer.Start(ctx, "command."+cmd.Name(), trace.WithAttributes(
		attribute.String("command.name", cmd.Name()),
		attribute.String("command.ticket", cmd.Ticket().String()),
	))
	defer span.End()
	log = logger.WithTraceContext(ctx, log)

	result := newResult(env)
	result.Status = shared.CommandRunning
	d.record(ctx, result)

	if d.config.ExecutionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.ExecutionTimeout)
		defer cancel()
	}

	start := time.Now()
	outcome, err := d.run(ctx, cmd)
	elapsed := time.Since(start)

	if outcome.ReceiptID != nil {
		result.ReceiptID = outcome.ReceiptID
	}
	if outcome.TransactionID != nil {
		result.TransactionID = outcome.TransactionID
	}
	if err != nil {
		result.Fail(err, time.Now())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("Command failed",
			zap.String("command", cmd.Name()),
			zap.String("kind", string(shared.KindOf(err))),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
	} else {
		result.Succeed(time.Now())
		log.Info("Command executed",
			zap.String("command", cmd.Name()),
			zap.Duration("elapsed", elapsed),
		)
	}

	d.record(context.WithoutCancel(ctx), result)
	if d.observer != nil {
		d.observer.CommandExecuted(ctx, cmd.Name(), result.Status, elapsed)
	}
}

func (d *Dispatcher) run(ctx context.Context, cmd Command) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error("Command panicked",
				zap.String("command", cmd.Name()),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			outcome = Outcome{}
			err = ErrCommandPanicked.WithMessage(fmt.Sprintf("Command panicked: %v", r))
		}
	}()
	outcome, err = d.handler.Execute(ctx, cmd)
	if err == nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		d.logger.Warn("Command finished after its execution timeout", zap.String("command", cmd.Name()))
	}
	return outcome, err
}

func (d *Dispatcher) record(ctx context.Context, result shared.CommandResult) {
	if d.results == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()
	if err := d.results.Put(ctx, result, d.config.ResultTTL); err != nil {
		d.logger.Warn("Failed to record command result",
			zap.String("ticket", result.Ticket.String()),
			zap.String("status", string(result.Status)),
			zap.Error(err),
		)
	}
}

func newResult(env envelope) shared.CommandResult {
	result := shared.CommandResult{
		Ticket:      env.cmd.Ticket(),
		Command:     env.cmd.Name(),
		Status:      shared.CommandQueued,
		SubmittedAt: env.submittedAt,
	}
	if c, ok := env.cmd.(CreateReceipt); ok {
		txID := c.TransactionID()
		result.TransactionID = &txID
	}
	return result
}
