// Package telemetry installs the process-wide OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// InstrumentationName names the tracer and meter used across the module.
const InstrumentationName = "github.com/leengari/gridtable"

// slogProcessor writes every finished span to a logger.
type slogProcessor struct {
	logger *slog.Logger
}

func (p *slogProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *slogProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	attrs := []any{
		slog.String("span", s.Name()),
		slog.String("trace_id", s.SpanContext().TraceID().String()),
		slog.Duration("duration", s.EndTime().Sub(s.StartTime())),
		slog.String("status", s.Status().Code.String()),
	}
	for _, kv := range s.Attributes() {
		attrs = append(attrs, slogAttr(kv))
	}
	p.logger.Debug("Span finished", attrs...)
}

func (p *slogProcessor) Shutdown(context.Context) error   { return nil }
func (p *slogProcessor) ForceFlush(context.Context) error { return nil }

func slogAttr(kv attribute.KeyValue) slog.Attr {
	key := string(kv.Key)
	switch kv.Value.Type() {
	case attribute.BOOL:
		return slog.Bool(key, kv.Value.AsBool())
	case attribute.INT64:
		return slog.Int64(key, kv.Value.AsInt64())
	case attribute.FLOAT64:
		return slog.Float64(key, kv.Value.AsFloat64())
	case attribute.STRING:
		return slog.String(key, kv.Value.AsString())
	}
	return slog.String(key, kv.Value.Emit())
}

// NewTracerProvider returns a provider sampling every span and logging it to
// logger once it ends.
func NewTracerProvider(logger *slog.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(&slogProcessor{logger: logger}),
	)
}

// Setup installs a logging tracer provider as the global one when enabled.
// The returned function shuts it down. When disabled the global no-op
// provider stays in place.
func Setup(enabled bool, logger *slog.Logger) func(context.Context) error {
	if !enabled {
		return func(context.Context) error { return nil }
	}
	tp := NewTracerProvider(logger)
	otel.SetTracerProvider(tp)
	slog.Debug("Tracing enabled")
	return tp.Shutdown
}
