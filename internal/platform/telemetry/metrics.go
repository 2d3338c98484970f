package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Result values recorded with AttrResult.
const (
	ResultAccepted = "accepted"
	ResultNoop     = "noop"
	ResultRejected = "rejected"
	ResultError    = "error"
	ResultSuccess  = "success"
	ResultSkipped  = "skipped"

	// ResultCircuitOpen marks client calls refused by the circuit breaker.
	ResultCircuitOpen = "circuit_open"
)

// Metrics holds pre-registered OpenTelemetry metric instruments. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter

	CommandDuration metric.Float64Histogram
	CommandTotal    metric.Int64Counter
	EventsAppended  metric.Int64Counter
	ReactorRuns     metric.Int64Counter
	Deliveries      metric.Int64Counter
	Redriven        metric.Int64Counter
}

// NewMetrics creates all metric instruments on a meter named after scope.
func NewMetrics(mp metric.MeterProvider, scope string) (*Metrics, error) {
	meter := mp.Meter(scope)
	b := &builder{meter: meter}

	m := &Metrics{
		ServerRequestDuration: b.histogram("http.server.request.duration", "Duration of incoming HTTP requests", "s"),
		ServerRequestTotal:    b.counter("http.server.request.total", "Total number of incoming HTTP requests", "{request}"),
		ClientRequestDuration: b.histogram("http.client.request.duration", "Duration of outgoing HTTP requests", "s"),
		ClientRequestTotal:    b.counter("http.client.request.total", "Total number of outgoing HTTP requests", "{request}"),

		CommandDuration: b.histogram("comments.command.duration", "Duration of comment command handling", "s"),
		CommandTotal:    b.counter("comments.commands.total", "Comment commands handled, by outcome", "{command}"),
		EventsAppended:  b.counter("comments.events.appended.total", "Events recorded in the journal", "{event}"),
		ReactorRuns:     b.counter("comments.reactor.runs.total", "Reactor invocations, by outcome", "{run}"),
		Deliveries:      b.counter("comments.bus.deliveries.total", "Event deliveries to subscribers, by outcome", "{delivery}"),
		Redriven:        b.counter("comments.events.redriven.total", "Stalled events published again", "{event}"),
	}
	if b.err != nil {
		return nil, b.err
	}
	return m, nil
}

// RecordServerRequest records one served request. route is the matched
// pattern so that comment ids never become label values.
func (m *Metrics) RecordServerRequest(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if status >= 400 {
		result = ResultError
	}
	attrs := metric.WithAttributes(
		AttrHTTPMethod.String(method),
		AttrHTTPRoute.String(route),
		AttrHTTPStatus.Int(status),
		AttrResult.String(result),
	)
	m.ServerRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
	m.ServerRequestTotal.Add(ctx, 1, attrs)
}

// RecordClientRequest records one call to a downstream service. status is
// zero when no response arrived.
func (m *Metrics) RecordClientRequest(ctx context.Context, peer, method string, status int, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		AttrHTTPMethod.String(method),
		AttrHTTPStatus.Int(status),
		AttrPeerService.String(peer),
		AttrResult.String(result),
	)
	m.ClientRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
	m.ClientRequestTotal.Add(ctx, 1, attrs)
}

// RecordCommand records the outcome and latency of one handled command.
func (m *Metrics) RecordCommand(ctx context.Context, command, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(AttrCommand.String(command), AttrResult.String(result))
	m.CommandDuration.Record(ctx, elapsed.Seconds(), attrs)
	m.CommandTotal.Add(ctx, 1, attrs)
}

// RecordEventAppended counts one event written to the journal.
func (m *Metrics) RecordEventAppended(ctx context.Context, eventType string) {
	if m == nil {
		return
	}
	m.EventsAppended.Add(ctx, 1, metric.WithAttributes(AttrEventType.String(eventType)))
}

// RecordReactorRun counts one reactor invocation.
func (m *Metrics) RecordReactorRun(ctx context.Context, reactor, result string) {
	if m == nil {
		return
	}
	m.ReactorRuns.Add(ctx, 1, metric.WithAttributes(AttrReactor.String(reactor), AttrResult.String(result)))
}

// RecordDelivery counts one delivery attempt sequence to a bus subscriber.
func (m *Metrics) RecordDelivery(ctx context.Context, subscriber, eventType, result string) {
	if m == nil {
		return
	}
	m.Deliveries.Add(ctx, 1, metric.WithAttributes(
		AttrSubscriber.String(subscriber),
		AttrEventType.String(eventType),
		AttrResult.String(result),
	))
}

// RecordRedrive counts one stalled event published again.
func (m *Metrics) RecordRedrive(ctx context.Context, eventType string) {
	if m == nil {
		return
	}
	m.Redriven.Add(ctx, 1, metric.WithAttributes(AttrEventType.String(eventType)))
}

// builder keeps the first instrument creation error so NewMetrics can
// declare every instrument in one place.
type builder struct {
	meter metric.Meter
	err   error
}

func (b *builder) histogram(name, desc, unit string) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit(unit))
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("creating %s: %w", name, err)
	}
	return h
}

func (b *builder) counter(name, desc, unit string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("creating %s: %w", name, err)
	}
	return c
}
