package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/receipts/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// QueueStats exposes the state of the write queue for periodic sampling.
type QueueStats interface {
	Depth() int
	Capacity() int
	Busy() bool
}

// CommandMetrics records write queue activity. It satisfies the dispatcher's observer.
type CommandMetrics struct {
	logger *zap.Logger

	submittedTotal *Counter
	executedTotal  *Counter
	duration       *Histogram

	queueDepth    *Gauge
	queueCapacity *Gauge
	executing     *Gauge

	stopChan   chan struct{}
	stopOnce   sync.Once
	sampleOnce sync.Once
	wg         sync.WaitGroup
}

// NewCommandMetrics creates the command instruments on meter.
func NewCommandMetrics(meter metric.Meter, logger *zap.Logger) (*CommandMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cm := &CommandMetrics{
		logger:   logger,
		stopChan: make(chan struct{}),
	}

	var err error
	if cm.submittedTotal, err = NewCounter(meter,
		"receipts_command_submitted_total",
		"Total number of commands accepted into the write queue",
		"{commands}",
	); err != nil {
		return nil, err
	}
	if cm.executedTotal, err = NewCounter(meter,
		"receipts_command_executed_total",
		"Total number of commands executed, by final status",
		"{commands}",
	); err != nil {
		return nil, err
	}
	if cm.duration, err = NewHistogram(meter, HistogramOpts{
		Name:        "receipts_command_duration_seconds",
		Description: "Command execution latency in seconds",
		Unit:        "s",
		Boundaries:  CommandDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if cm.queueDepth, err = NewGauge(meter,
		"receipts_command_queue_depth",
		"Commands waiting in the write queue",
		"{commands}",
	); err != nil {
		return nil, err
	}
	if cm.queueCapacity, err = NewGauge(meter,
		"receipts_command_queue_capacity",
		"Capacity of the write queue",
		"{commands}",
	); err != nil {
		return nil, err
	}
	if cm.executing, err = NewGauge(meter,
		"receipts_command_executing",
		"1 while the consumer is executing a command, 0 while idle",
		"1",
	); err != nil {
		return nil, err
	}

	return cm, nil
}

// CommandSubmitted records a command entering the queue
func (cm *CommandMetrics) CommandSubmitted(ctx context.Context, command string) {
	cm.submittedTotal.Inc(ctx, AttrCommand.String(command))
}

// CommandExecuted records the outcome and latency of one command
func (cm *CommandMetrics) CommandExecuted(ctx context.Context, command string, status shared.CommandStatus, elapsed time.Duration) {
	cm.executedTotal.Inc(ctx,
		AttrCommand.String(command),
		AttrCommandStatus.String(string(status)),
	)
	cm.duration.RecordDuration(ctx, elapsed, AttrCommand.String(command))
}

// StartQueueSampling records the queue gauges every interval until Stop.
// Only the first call has an effect.
func (cm *CommandMetrics) StartQueueSampling(ctx context.Context, queue QueueStats, interval time.Duration) {
	cm.sampleOnce.Do(func() {
		if interval <= 0 {
			interval = 15 * time.Second
		}
		cm.wg.Add(1)
		go cm.runQueueSampling(ctx, queue, interval)
	})
}

func (cm *CommandMetrics) runQueueSampling(ctx context.Context, queue QueueStats, interval time.Duration) {
	defer cm.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	cm.sampleQueue(ctx, queue)
	for {
		select {
		case <-cm.stopChan:
			return
		case <-ctx.Done():
			cm.logger.Debug("Context cancelled, stopping queue sampling")
			return
		case <-ticker.C:
			cm.sampleQueue(ctx, queue)
		}
	}
}

func (cm *CommandMetrics) sampleQueue(ctx context.Context, queue QueueStats) {
	cm.queueDepth.Record(ctx, int64(queue.Depth()))
	cm.queueCapacity.Record(ctx, int64(queue.Capacity()))
	var busy int64
	if queue.Busy() {
		busy = 1
	}
	cm.executing.Record(ctx, busy)
}

// Stop stops queue sampling. Safe to call multiple times.
func (cm *CommandMetrics) Stop() {
	cm.stopOnce.Do(func() {
		close(cm.stopChan)
		cm.wg.Wait()
	})
}
