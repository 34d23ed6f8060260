package database

import (
	"time"

	"devswipe/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	startedAtKey = "devswipe:started_at"
	spanKey      = "devswipe:span"
)

// Instrument registers GORM callbacks that record query latency and open a
// span per statement when tracing is enabled.
func Instrument(db *gorm.DB) error {
	type hook struct {
		name   string
		before func(string, func(*gorm.DB)) error
		after  func(string, func(*gorm.DB)) error
	}
	cb := db.Callback()
	hooks := []hook{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}
	for _, h := range hooks {
		if err := h.before("devswipe:before_"+h.name, beforeStatement(h.name)); err != nil {
			return err
		}
		if err := h.after("devswipe:after_"+h.name, afterStatement(h.name)); err != nil {
			return err
		}
	}
	return nil
}

func beforeStatement(op string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		tx.InstanceSet(startedAtKey, time.Now())
		if tx.Statement == nil || tx.Statement.Context == nil {
			return
		}
		ctx, span := observability.Tracer.Start(tx.Statement.Context, "db."+op,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(attribute.String("db.system", tx.Dialector.Name())),
		)
		tx.Statement.Context = ctx
		tx.InstanceSet(spanKey, span)
	}
}

func afterStatement(op string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		table := "unknown"
		if tx.Statement != nil && tx.Statement.Table != "" {
			table = tx.Statement.Table
		}
		if v, ok := tx.InstanceGet(startedAtKey); ok {
			if started, ok := v.(time.Time); ok {
				observability.DatabaseQueryLatency.WithLabelValues(op, table).Observe(time.Since(started).Seconds())
			}
		}
		if v, ok := tx.InstanceGet(spanKey); ok {
			if span, ok := v.(trace.Span); ok {
				span.SetAttributes(attribute.String("db.sql.table", table))
				if tx.Error != nil && tx.Error != gorm.ErrRecordNotFound {
					span.RecordError(tx.Error)
					span.SetStatus(codes.Error, tx.Error.Error())
				}
				span.End()
			}
		}
	}
}
