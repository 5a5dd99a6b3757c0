package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/receipts/backend/internal/domain/shared"
	"github.com/receipts/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newManualMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return reader, provider
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumFor(t *testing.T, m metricdata.Metrics, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	want := attribute.NewSet(attrs...)
	for _, dp := range sum.DataPoints {
		if dp.Attributes.Equals(&want) {
			return dp.Value
		}
	}
	return 0
}

func gaugeValue(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	g, ok := m.Data.(metricdata.Gauge[int64])
	require.True(t, ok, "metric %s is not an int64 gauge", m.Name)
	require.NotEmpty(t, g.DataPoints)
	return g.DataPoints[0].Value
}

type fakeQueue struct {
	depth, capacity int
	busy            bool
}

func (q fakeQueue) Depth() int    { return q.depth }
func (q fakeQueue) Capacity() int { return q.capacity }
func (q fakeQueue) Busy() bool    { return q.busy }

func TestNewCommandMetrics_NilMeter(t *testing.T) {
	cm, err := telemetry.NewCommandMetrics(nil, nil)
	require.Error(t, err)
	assert.Nil(t, cm)
	assert.Equal(t, "NewCommandMetrics: meter cannot be nil", err.Error())
}

func TestCommandMetrics_NoopMeter(t *testing.T) {
	cm, err := telemetry.NewCommandMetrics(noop.NewMeterProvider().Meter("test"), nil)
	require.NoError(t, err)

	cm.CommandSubmitted(context.Background(), "create_receipt")
	cm.CommandExecuted(context.Background(), "create_receipt", shared.CommandSucceeded, time.Millisecond)
	cm.Stop()
}

func TestCommandMetrics_RecordsOutcomes(t *testing.T) {
	reader, provider := newManualMeter(t)
	cm, err := telemetry.NewCommandMetrics(provider.Meter("test"), nil)
	require.NoError(t, err)

	ctx := context.Background()
	cm.CommandSubmitted(ctx, "create_receipt")
	cm.CommandSubmitted(ctx, "create_receipt")
	cm.CommandSubmitted(ctx, "patch_store")
	cm.CommandExecuted(ctx, "create_receipt", shared.CommandSucceeded, 10*time.Millisecond)
	cm.CommandExecuted(ctx, "create_receipt", shared.CommandFailed, 20*time.Millisecond)
	cm.CommandExecuted(ctx, "patch_store", shared.CommandSucceeded, time.Millisecond)

	metrics := collect(t, reader)

	submitted := metrics["receipts_command_submitted_total"]
	assert.Equal(t, int64(2), sumFor(t, submitted, telemetry.AttrCommand.String("create_receipt")))
	assert.Equal(t, int64(1), sumFor(t, submitted, telemetry.AttrCommand.String("patch_store")))

	executed := metrics["receipts_command_executed_total"]
	assert.Equal(t, int64(1), sumFor(t, executed,
		telemetry.AttrCommand.String("create_receipt"),
		telemetry.AttrCommandStatus.String("failed"),
	))

	hist, ok := metrics["receipts_command_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(3), count)
}

func TestCommandMetrics_QueueSampling(t *testing.T) {
	reader, provider := newManualMeter(t)
	cm, err := telemetry.NewCommandMetrics(provider.Meter("test"), nil)
	require.NoError(t, err)

	cm.StartQueueSampling(context.Background(), fakeQueue{depth: 3, capacity: 128, busy: true}, time.Hour)
	defer cm.Stop()

	require.Eventually(t, func() bool {
		_, ok := collect(t, reader)["receipts_command_queue_depth"]
		return ok
	}, time.Second, 5*time.Millisecond)

	metrics := collect(t, reader)
	assert.Equal(t, int64(3), gaugeValue(t, metrics["receipts_command_queue_depth"]))
	assert.Equal(t, int64(128), gaugeValue(t, metrics["receipts_command_queue_capacity"]))
	assert.Equal(t, int64(1), gaugeValue(t, metrics["receipts_command_executing"]))
}
