package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/receipts/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type probe struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&probe{}))
	return db
}

func TestInstrumentDatabase_RecordsQueries(t *testing.T) {
	reader, provider := newManualMeter(t)
	db := openSQLite(t)

	m, err := telemetry.InstrumentDatabase(db, provider.Meter("db"), telemetry.DBConfig{}, nil)
	require.NoError(t, err)
	defer m.Stop()

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Create(&probe{Name: "a"}).Error)
	var out []probe
	require.NoError(t, db.WithContext(ctx).Find(&out).Error)

	metrics := collect(t, reader)
	total := metrics["db_query_total"]
	assert.Equal(t, int64(1), sumFor(t, total, telemetry.AttrDBOperation.String("INSERT")))
	assert.Equal(t, int64(1), sumFor(t, total, telemetry.AttrDBOperation.String("SELECT")))
}

func TestInstrumentDatabase_TracesQueries(t *testing.T) {
	_, provider := newManualMeter(t)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	db := openSQLite(t)

	m, err := telemetry.InstrumentDatabase(db, provider.Meter("db"), telemetry.DBConfig{
		TracingEnabled: true,
		TracerProvider: tp,
	}, nil)
	require.NoError(t, err)
	defer m.Stop()

	require.NoError(t, db.WithContext(context.Background()).Create(&probe{Name: "a"}).Error)

	assert.NotEmpty(t, recorder.Ended())
}

func TestDBMetrics_SlowQuery(t *testing.T) {
	reader, provider := newManualMeter(t)
	m, err := telemetry.NewDBMetrics(provider.Meter("db"), telemetry.DBConfig{SlowQueryThresh: time.Millisecond}, nil)
	require.NoError(t, err)

	m.RecordQuery(context.Background(), "select", "receipts", time.Second)
	m.RecordQuery(context.Background(), "select", "", time.Second)

	metrics := collect(t, reader)
	slow := metrics["db_slow_query_total"]
	assert.Equal(t, int64(1), sumFor(t, slow, telemetry.AttrDBTable.String("receipts")))
	assert.Equal(t, int64(1), sumFor(t, slow, telemetry.AttrDBTable.String("unknown")))
	assert.Equal(t, int64(2), sumFor(t, metrics["db_query_total"], telemetry.AttrDBOperation.String("SELECT")))
}

func TestDBMetrics_PoolStats(t *testing.T) {
	reader, provider := newManualMeter(t)
	db := openSQLite(t)

	m, err := telemetry.InstrumentDatabase(db, provider.Meter("db"), telemetry.DBConfig{PoolStatsInterval: time.Hour}, nil)
	require.NoError(t, err)

	m.StartPoolStatsCollection(context.Background())
	require.Eventually(t, func() bool {
		_, ok := collect(t, reader)["db_pool_connections"]
		return ok
	}, time.Second, 5*time.Millisecond)

	m.Stop()
	m.Stop()
}
