package driver

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Instrumentation library name
const instrumentationName = "github.com/seuros/gopher-graph/src/driver"

// ObservabilityConfig controls telemetry collection
type ObservabilityConfig struct {
	// EnableTracing enables OpenTelemetry distributed tracing
	EnableTracing bool

	// EnableMetrics enables OpenTelemetry metrics collection
	EnableMetrics bool

	// TracingAttributes are additional attributes to add to all spans
	TracingAttributes []attribute.KeyValue

	// MetricAttributes are additional attributes to add to all metrics
	MetricAttributes []attribute.KeyValue
}

// DefaultObservabilityConfig returns default observability configuration
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		EnableTracing: true,
		EnableMetrics: true,
		TracingAttributes: []attribute.KeyValue{
			attribute.String("db.system", "neo4j"),
			attribute.String("db.driver", "gopher-graph"),
			attribute.String("db.driver.version", Version()),
		},
		MetricAttributes: []attribute.KeyValue{
			attribute.String("db.system", "neo4j"),
			attribute.String("db.driver", "gopher-graph"),
		},
	}
}

// observabilityInstruments holds OpenTelemetry instruments
type observabilityInstruments struct {
	tracer trace.Tracer

	queryDuration    metric.Float64Histogram
	queryCount       metric.Int64Counter
	queryErrors      metric.Int64Counter
	recordsReturned  metric.Int64Counter
	openDrivers      metric.Int64UpDownCounter
	connectionErrors metric.Int64Counter
}

// initObservability builds the instruments from the global providers.
// Instrument errors go to otel.Handle; the noop fallbacks stay usable.
func initObservability() *observabilityInstruments {
	meter := otel.Meter(instrumentationName, metric.WithInstrumentationVersion(Version()))
	oi := &observabilityInstruments{
		tracer: otel.Tracer(instrumentationName, trace.WithInstrumentationVersion(Version())),
	}

	var errs []error
	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		errs = append(errs, err)
		return c
	}

	var err error
	oi.queryDuration, err = meter.Float64Histogram("db.query.duration",
		metric.WithDescription("Duration of graph queries"), metric.WithUnit("s"))
	errs = append(errs, err)
	oi.openDrivers, err = meter.Int64UpDownCounter("db.connection.count",
		metric.WithDescription("Number of open drivers"))
	errs = append(errs, err)

	oi.queryCount = counter("db.query.count", "Number of graph queries executed")
	oi.queryErrors = counter("db.query.errors", "Number of failed graph queries")
	oi.recordsReturned = counter("db.query.records", "Number of records returned by graph queries")
	oi.connectionErrors = counter("db.connection.errors", "Number of failed connectivity checks")

	if err := errors.Join(errs...); err != nil {
		otel.Handle(err)
	}
	return oi
}

// ResultSummary contains query execution metadata
type ResultSummary struct {
	QueryText     string
	ExecutionTime time.Duration

	// Columns lists the result keys in server order
	Columns []string

	// RecordsConsumed is the number of records handed back to the caller
	RecordsConsumed int64

	ServerAddress string
	ServerAgent   string
	Database      string

	// Query classification: READ, WRITE, SCHEMA_WRITE or UNKNOWN
	QueryType string

	// Notifications from server (warnings, deprecations, etc.)
	Notifications []Notification

	// Database statistics from query execution
	NodesCreated         int64
	NodesDeleted         int64
	RelationshipsCreated int64
	RelationshipsDeleted int64
	PropertiesSet        int64
	LabelsAdded          int64
	LabelsRemoved        int64
	ContainsUpdates      bool
}

// Notification represents a server notification
type Notification struct {
	Code        string
	Title       string
	Description string
	Severity    string
}

// spanContext holds span-specific context information
type spanContext struct {
	span      trace.Span
	startTime time.Time
}

// startQuerySpan opens a client span for query. The returned spanContext
// is always usable, even when tracing is off.
func (oi *observabilityInstruments) startQuerySpan(ctx context.Context, query string, config *ObservabilityConfig) (context.Context, *spanContext) {
	sc := &spanContext{startTime: time.Now()}
	if !config.EnableTracing {
		return ctx, sc
	}

	attrs := append(append([]attribute.KeyValue{}, config.TracingAttributes...),
		attribute.String("db.statement", query),
		attribute.String("db.operation", inferQueryType(query)),
	)
	ctx, sc.span = oi.tracer.Start(ctx, "db.query",
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	return ctx, sc
}

// finishQuerySpan records metrics for the query and ends its span.
func (oi *observabilityInstruments) finishQuerySpan(sc *spanContext, summary *ResultSummary, err error, config *ObservabilityConfig) {
	elapsed := time.Since(sc.startTime)

	if config.EnableMetrics {
		oi.recordQuery(elapsed, summary, err, config)
	}
	if !config.EnableTracing || sc.span == nil {
		return
	}

	sc.span.SetAttributes(
		attribute.Int64("db.query.records_returned", summary.RecordsConsumed),
		attribute.Float64("db.query.duration_ms", float64(elapsed.Nanoseconds())/1e6),
		attribute.String("db.query.type", summary.QueryType),
	)
	if summary.ContainsUpdates {
		sc.span.SetAttributes(
			attribute.Int64("db.query.nodes_created", summary.NodesCreated),
			attribute.Int64("db.query.nodes_deleted", summary.NodesDeleted),
			attribute.Int64("db.query.relationships_created", summary.RelationshipsCreated),
			attribute.Int64("db.query.relationships_deleted", summary.RelationshipsDeleted),
			attribute.Int64("db.query.properties_set", summary.PropertiesSet),
		)
	}
	for _, n := range summary.Notifications {
		sc.span.AddEvent("db.notification", trace.WithAttributes(
			attribute.String("notification.code", n.Code),
			attribute.String("notification.title", n.Title),
			attribute.String("notification.severity", n.Severity),
		))
	}

	if err != nil {
		sc.span.RecordError(err)
		sc.span.SetStatus(codes.Error, err.Error())
	} else {
		sc.span.SetStatus(codes.Ok, "")
	}
	sc.span.End()
}

func (oi *observabilityInstruments) recordQuery(elapsed time.Duration, summary *ResultSummary, err error, config *ObservabilityConfig) {
	ctx := context.Background()
	base := metric.WithAttributes(config.MetricAttributes...)
	oi.queryDuration.Record(ctx, elapsed.Seconds(), base)

	status := "success"
	if err != nil {
		status = "error"
	}
	tagged := metric.WithAttributes(append(append([]attribute.KeyValue{}, config.MetricAttributes...),
		attribute.String("query.type", summary.QueryType),
		attribute.String("query.status", status),
	)...)

	if err != nil {
		oi.queryErrors.Add(ctx, 1, tagged)
		return
	}
	oi.queryCount.Add(ctx, 1, tagged)
	if summary.RecordsConsumed > 0 {
		oi.recordsReturned.Add(ctx, summary.RecordsConsumed, base)
	}
}

// connectionEvent is a driver lifecycle transition counted in metrics.
type connectionEvent int

const (
	connectionOpened connectionEvent = iota
	connectionClosed
	connectionVerified
)

func (oi *observabilityInstruments) recordConnectionEvent(event connectionEvent, config *ObservabilityConfig, err error) {
	if !config.EnableMetrics {
		return
	}

	ctx := context.Background()
	attrs := metric.WithAttributes(config.MetricAttributes...)
	switch event {
	case connectionOpened:
		oi.openDrivers.Add(ctx, 1, attrs)
	case connectionClosed:
		oi.openDrivers.Add(ctx, -1, attrs)
	case connectionVerified:
		if err != nil {
			oi.connectionErrors.Add(ctx, 1, attrs)
		}
	}
}

var (
	writeKeywords  = map[string]bool{"CREATE": true, "MERGE": true, "SET": true, "DELETE": true, "REMOVE": true}
	readKeywords   = map[string]bool{"MATCH": true, "RETURN": true, "WITH": true}
	schemaKeywords = map[string]bool{"INDEX": true, "CONSTRAINT": true}
)

// inferQueryType classifies query text by its keywords. Quoted strings are
// skipped so property values never change the classification.
func inferQueryType(query string) string {
	var read, write, schema bool
	prev := ""
	for _, word := range keywords(query) {
		switch {
		case schemaKeywords[word] && (prev == "CREATE" || prev == "DROP"):
			schema = true
		case writeKeywords[word]:
			write = true
		case readKeywords[word]:
			read = true
		}
		prev = word
	}

	switch {
	case schema:
		return "SCHEMA_WRITE"
	case write:
		return "WRITE"
	case read:
		return "READ"
	default:
		return "UNKNOWN"
	}
}

// keywords returns the upper-cased bare words of query outside string
// literals.
func keywords(query string) []string {
	var words []string
	var quoted bool
	for _, field := range strings.FieldsFunc(query, func(r rune) bool {
		if r == '"' {
			quoted = !quoted
			return true
		}
		return quoted || !(r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z')
	}) {
		words = append(words, strings.ToUpper(field))
	}
	return words
}
