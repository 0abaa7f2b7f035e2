package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/leengari/gridtable/internal/catalog"
	"github.com/leengari/gridtable/internal/cursor"
	"github.com/leengari/gridtable/internal/grid"
	"github.com/leengari/gridtable/internal/parser"
	"github.com/leengari/gridtable/internal/parser/ast"
	"github.com/leengari/gridtable/internal/parser/lexer"
	"github.com/leengari/gridtable/internal/query/selection"
	"github.com/leengari/gridtable/internal/telemetry"
)

// Result is the answer to one statement, shaped for display and transport.
type Result struct {
	ID      string   `json:"id"`
	Columns []string `json:"columns,omitempty"`
	Rows    [][]any  `json:"rows,omitempty"`
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Engine is the main entry point for running statements against a catalog
type Engine struct {
	catalog   *catalog.Catalog
	observers []Observer // Observers for lifecycle events
	tracer    trace.Tracer
	queries   metric.Int64Counter
	rows      metric.Int64Counter
}

// Option configures an Engine.
type Option func(*Engine)

// WithTracerProvider traces statements with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Engine) { e.tracer = tp.Tracer(telemetry.InstrumentationName) }
}

// WithMeterProvider counts statements with mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(e *Engine) { e.instrument(mp.Meter(telemetry.InstrumentationName)) }
}

// New creates a new Engine instance
func New(c *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog:   c,
		observers: make([]Observer, 0),
		tracer:    otel.Tracer(telemetry.InstrumentationName),
	}
	e.instrument(otel.Meter(telemetry.InstrumentationName))
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) instrument(meter metric.Meter) {
	var err error
	e.queries, err = meter.Int64Counter("gridtable.statements",
		metric.WithDescription("Statements executed"),
		metric.WithUnit("{statement}"),
	)
	if err != nil {
		slog.Warn("failed to create statement counter", slog.Any("error", err))
	}
	e.rows, err = meter.Int64Counter("gridtable.rows_returned",
		metric.WithDescription("Rows returned by SELECT statements"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		slog.Warn("failed to create row counter", slog.Any("error", err))
	}
}

// Catalog returns the catalog the engine reads from.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Execute runs one statement and renders its outcome. Failures are returned
// as errors; the caller decides whether to put them into Result.Error.
func (e *Engine) Execute(ctx context.Context, query string) (*Result, error) {
	id := uuid.New().String()
	ctx, span := e.tracer.Start(ctx, "engine.execute",
		trace.WithAttributes(attribute.String("request_id", id)),
	)
	defer span.End()

	result, kind, err := e.execute(ctx, id, query)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.notify(Event{Type: EventError, RequestID: id, Data: err.Error()})
	} else {
		span.SetAttributes(attribute.Int("rows", len(result.Rows)))
	}
	span.SetAttributes(attribute.String("statement", kind))

	attrs := metric.WithAttributes(
		attribute.String("statement", kind),
		attribute.String("outcome", outcome),
	)
	if e.queries != nil {
		e.queries.Add(ctx, 1, attrs)
	}
	if err != nil {
		return nil, err
	}
	if e.rows != nil && kind == "select" {
		e.rows.Add(ctx, int64(len(result.Rows)))
	}
	result.ID = id
	return result, nil
}

// Query runs a SELECT and returns its result table.
func (e *Engine) Query(ctx context.Context, query string) (*grid.Table, error) {
	id := uuid.New().String()
	ctx, span := e.tracer.Start(ctx, "engine.query",
		trace.WithAttributes(attribute.String("request_id", id)),
	)
	defer span.End()

	stmt, err := e.parse(id, query)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	sel, ok := stmt.(*ast.SelectStatement)
	if !ok {
		err := fmt.Errorf("expected SELECT statement, got %s", stmt.TokenLiteral())
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	t, err := e.runSelect(ctx, id, sel)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return t, nil
}

func (e *Engine) execute(ctx context.Context, id, query string) (*Result, string, error) {
	stmt, err := e.parse(id, query)
	if err != nil {
		return nil, "invalid", err
	}

	switch s := stmt.(type) {
	case *ast.SelectStatement:
		t, err := e.runSelect(ctx, id, s)
		if err != nil {
			return nil, "select", err
		}
		return resultFromTable(t), "select", nil

	case *ast.ShowTablesStatement:
		res := &Result{Columns: []string{"table", "rows", "columns"}}
		err := e.catalog.View(func(snap *catalog.Snapshot) error {
			for _, name := range snap.Names() {
				t := snap.Table(name)
				res.Rows = append(res.Rows, []any{name, t.RowCount(), t.ColumnCount()})
			}
			return nil
		})
		return res, "show", err

	case *ast.DescribeStatement:
		res := &Result{Columns: []string{"position", "title", "cells"}}
		err := e.catalog.View(func(snap *catalog.Snapshot) error {
			t := snap.Table(s.Table.Value)
			if t == nil {
				return newUnknownTable(s.Table.Value)
			}
			for i, col := range t.Columns().All() {
				var title any = "c" + strconv.Itoa(i)
				if col.Title() != nil {
					title = col.Title()
				}
				res.Rows = append(res.Rows, []any{i, title, col.CellCount()})
			}
			return nil
		})
		if err != nil {
			return nil, "describe", err
		}
		return res, "describe", nil
	}
	return nil, "invalid", fmt.Errorf("unsupported statement type: %T", stmt)
}

func (e *Engine) parse(id, query string) (ast.Statement, error) {
	// 1. Tokenize
	e.notify(Event{Type: EventLexStart, RequestID: id, Data: query})
	tokens, err := lexer.Tokenize(query)
	if err != nil {
		return nil, fmt.Errorf("lexer error: %w", err)
	}
	e.notify(Event{Type: EventLexEnd, RequestID: id, Data: len(tokens)})

	// 2. Parse
	e.notify(Event{Type: EventParseStart, RequestID: id})
	stmt, err := parser.New(tokens).Parse()
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	e.notify(Event{Type: EventParseEnd, RequestID: id, Data: fmt.Sprintf("%T", stmt)})
	return stmt, nil
}

func (e *Engine) runSelect(ctx context.Context, id string, stmt *ast.SelectStatement) (*grid.Table, error) {
	var result *grid.Table
	err := e.catalog.View(func(snap *catalog.Snapshot) error {
		// 3. Compile
		e.notify(Event{Type: EventCompileStart, RequestID: id})
		_, compileSpan := e.tracer.Start(ctx, "engine.compile")
		desc, err := compileSelect(stmt, snap, "result")
		compileSpan.End()
		if err != nil {
			return fmt.Errorf("compile error: %w", err)
		}
		e.notify(Event{Type: EventCompileEnd, RequestID: id, Data: len(desc.Tables())})

		// 4. Execute
		e.notify(Event{Type: EventExecStart, RequestID: id})
		_, execSpan := e.tracer.Start(ctx, "selection.execute", trace.WithAttributes(
			attribute.Int("tables", len(desc.Tables())),
			attribute.Int("joins", len(desc.Joins)),
			attribute.Bool("distinct", desc.Distinct),
		))
		result, err = selection.Execute(desc)
		execSpan.End()
		if err != nil {
			return fmt.Errorf("execution error: %w", err)
		}
		e.notify(Event{Type: EventExecEnd, RequestID: id, Data: map[string]any{
			"rows_returned": result.RowCount(),
		}})
		return nil
	})
	return result, err
}

// resultFromTable reads a table through a cursor into a Result.
func resultFromTable(t *grid.Table) *Result {
	cur := cursor.New(t)
	defer cur.Close()

	res := &Result{
		Columns: make([]string, cur.Columns()),
		Rows:    make([][]any, 0, cur.Len()),
	}
	for i := range res.Columns {
		res.Columns[i] = cur.Label(i + 1)
	}
	for cur.Next() {
		values, _ := cur.Values()
		res.Rows = append(res.Rows, values)
	}
	return res
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}
