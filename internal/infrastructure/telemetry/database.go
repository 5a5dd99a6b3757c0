package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBConfig holds database instrumentation settings.
type DBConfig struct {
	TracingEnabled    bool
	LogFullSQL        bool          // include query variables in spans; never in production
	SlowQueryThresh   time.Duration // Default: 200ms
	PoolStatsInterval time.Duration // Default: 15s
	TracerProvider    trace.TracerProvider
}

// DBMetrics holds the database instruments and samples the connection pool.
type DBMetrics struct {
	poolConnections *Gauge
	queryTotal      *Counter
	queryDuration   *Histogram
	slowQueryTotal  *Counter

	config   DBConfig
	logger   *zap.Logger
	sqlDB    *sql.DB
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewDBMetrics creates the database instruments on meter.
func NewDBMetrics(meter metric.Meter, cfg DBConfig, logger *zap.Logger) (*DBMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThresh == 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.PoolStatsInterval == 0 {
		cfg.PoolStatsInterval = 15 * time.Second
	}

	m := &DBMetrics{config: cfg, logger: logger, stopCh: make(chan struct{})}

	var err error
	if m.poolConnections, err = NewGauge(meter,
		"db_pool_connections",
		"Number of connections in the pool by state",
		"{connection}",
	); err != nil {
		return nil, err
	}
	if m.queryTotal, err = NewCounter(meter,
		"db_query_total",
		"Total number of database queries by operation type",
		"{query}",
	); err != nil {
		return nil, err
	}
	if m.queryDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency distribution in seconds",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if m.slowQueryTotal, err = NewCounter(meter,
		"db_slow_query_total",
		"Total number of slow database queries",
		"{query}",
	); err != nil {
		return nil, err
	}
	return m, nil
}

// InstrumentDatabase registers tracing (otelgorm) and query metrics on db and
// returns the metrics so the caller can start pool sampling and Stop them.
func InstrumentDatabase(db *gorm.DB, meter metric.Meter, cfg DBConfig, logger *zap.Logger) (*DBMetrics, error) {
	m, err := NewDBMetrics(meter, cfg, logger)
	if err != nil {
		return nil, err
	}

	if m.config.TracingEnabled {
		opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
		if m.config.TracerProvider != nil {
			opts = append(opts, otelgorm.WithTracerProvider(m.config.TracerProvider))
		}
		if !m.config.LogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return nil, err
		}
	}

	if err := m.registerCallbacks(db); err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		m.sqlDB = sqlDB
	}

	m.logger.Info("Database instrumentation registered",
		zap.Bool("tracing", m.config.TracingEnabled),
		zap.Duration("slow_query_threshold", m.config.SlowQueryThresh),
	)
	return m, nil
}

type dbStartTimeKey struct{}

func (m *DBMetrics) registerCallbacks(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		ctx := tx.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		tx.Statement.Context = context.WithValue(ctx, dbStartTimeKey{}, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			op := operation
			if op == "" {
				op = detectOperationType(tx.Statement.SQL.String())
			}
			m.recordStatement(tx, op)
		}
	}

	cb := db.Callback()
	registrations := []func() error{
		func() error {
			if err := cb.Create().Before("gorm:create").Register("receipts_db:before_create", before); err != nil {
				return err
			}
			return cb.Create().After("gorm:create").Register("receipts_db:after_create", after("INSERT"))
		},
		func() error {
			if err := cb.Query().Before("gorm:query").Register("receipts_db:before_query", before); err != nil {
				return err
			}
			return cb.Query().After("gorm:query").Register("receipts_db:after_query", after("SELECT"))
		},
		func() error {
			if err := cb.Update().Before("gorm:update").Register("receipts_db:before_update", before); err != nil {
				return err
			}
			return cb.Update().After("gorm:update").Register("receipts_db:after_update", after("UPDATE"))
		},
		func() error {
			if err := cb.Delete().Before("gorm:delete").Register("receipts_db:before_delete", before); err != nil {
				return err
			}
			return cb.Delete().After("gorm:delete").Register("receipts_db:after_delete", after("DELETE"))
		},
		func() error {
			if err := cb.Row().Before("gorm:row").Register("receipts_db:before_row", before); err != nil {
				return err
			}
			return cb.Row().After("gorm:row").Register("receipts_db:after_row", after(""))
		},
		func() error {
			if err := cb.Raw().Before("gorm:raw").Register("receipts_db:before_raw", before); err != nil {
				return err
			}
			return cb.Raw().After("gorm:raw").Register("receipts_db:after_raw", after(""))
		},
	}
	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

func (m *DBMetrics) recordStatement(tx *gorm.DB, operation string) {
	ctx := tx.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}

	var elapsed time.Duration
	if start, ok := ctx.Value(dbStartTimeKey{}).(time.Time); ok {
		elapsed = time.Since(start)
	}
	m.RecordQuery(ctx, operation, tx.Statement.Table, elapsed)

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.RecordError(tx.Error)
	}
	if elapsed > m.config.SlowQueryThresh {
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", m.config.SlowQueryThresh.Milliseconds()),
		))
	}
}

// RecordQuery records one executed statement
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, elapsed time.Duration) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "UNKNOWN"
	}
	m.queryTotal.Inc(ctx, AttrDBOperation.String(operation))
	m.queryDuration.RecordDuration(ctx, elapsed, AttrDBOperation.String(operation))

	if elapsed > m.config.SlowQueryThresh {
		if table == "" {
			table = "unknown"
		}
		m.slowQueryTotal.Inc(ctx, AttrDBTable.String(table))
	}
}

// StartPoolStatsCollection samples the connection pool until Stop or ctx is done.
func (m *DBMetrics) StartPoolStatsCollection(ctx context.Context) {
	if m.sqlDB == nil {
		m.logger.Warn("Cannot start pool stats collection: sql.DB not available")
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.config.PoolStatsInterval)
		defer ticker.Stop()

		m.collectPoolStats(ctx)
		for {
			select {
			case <-ticker.C:
				m.collectPoolStats(ctx)
			case <-m.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *DBMetrics) collectPoolStats(ctx context.Context) {
	stats := m.sqlDB.Stats()
	m.poolConnections.Record(ctx, int64(stats.Idle), AttrDBState.String("idle"))
	m.poolConnections.Record(ctx, int64(stats.InUse), AttrDBState.String("in_use"))
	m.poolConnections.Record(ctx, int64(stats.OpenConnections), AttrDBState.String("open"))
	m.poolConnections.Record(ctx, int64(stats.MaxOpenConnections), AttrDBState.String("max"))
}

// Stop stops pool sampling. Safe to call multiple times.
func (m *DBMetrics) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		m.wg.Wait()
	})
}

func detectOperationType(statement string) string {
	statement = strings.TrimSpace(strings.ToUpper(statement))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(statement, op) {
			return op
		}
	}
	return "OTHER"
}
