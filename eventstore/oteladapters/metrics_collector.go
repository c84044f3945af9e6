package oteladapters

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/openshelf/circulation-ledger-go/eventstore"
)

// MetricsCollector implements eventstore.ContextualMetricsCollector using the
// OpenTelemetry metrics API:
//   - RecordDuration -> Histogram
//   - IncrementCounter -> Counter
//   - RecordValue -> Gauge
type MetricsCollector struct {
	meter      metric.Meter
	histograms map[string]metric.Float64Histogram
	counters   map[string]metric.Int64Counter
	gauges     map[string]metric.Float64Gauge
}

// NewMetricsCollector creates a new OpenTelemetry metrics collector. The meter
// should come from your MeterProvider; instruments are created on demand.
func NewMetricsCollector(meter metric.Meter) *MetricsCollector {
	return &MetricsCollector{
		meter:      meter,
		histograms: make(map[string]metric.Float64Histogram),
		counters:   make(map[string]metric.Int64Counter),
		gauges:     make(map[string]metric.Float64Gauge),
	}
}

// RecordDuration records a duration measurement using a histogram, in seconds
// per OpenTelemetry convention.
func (m *MetricsCollector) RecordDuration(metricName string, duration time.Duration, labels map[string]string) {
	m.RecordDurationContext(context.TODO(), metricName, duration, labels)
}

// RecordDurationContext records a duration measurement with context for trace
// correlation.
func (m *MetricsCollector) RecordDurationContext(ctx context.Context, metricName string, duration time.Duration, labels map[string]string) {
	histogram := m.getOrCreateHistogram(metricName)
	if histogram == nil {
		return
	}

	histogram.Record(ctx, duration.Seconds(), metric.WithAttributes(attributesFrom(labels)...))
}

// IncrementCounter increments a monotonic counter.
func (m *MetricsCollector) IncrementCounter(metricName string, labels map[string]string) {
	m.IncrementCounterContext(context.TODO(), metricName, labels)
}

// IncrementCounterContext increments a monotonic counter with context for
// trace correlation.
func (m *MetricsCollector) IncrementCounterContext(ctx context.Context, metricName string, labels map[string]string) {
	counter := m.getOrCreateCounter(metricName)
	if counter == nil {
		return
	}

	counter.Add(ctx, 1, metric.WithAttributes(attributesFrom(labels)...))
}

// RecordValue records a current value using a gauge.
func (m *MetricsCollector) RecordValue(metricName string, value float64, labels map[string]string) {
	gauge := m.getOrCreateGauge(metricName)
	if gauge == nil {
		return
	}

	gauge.Record(context.TODO(), value, metric.WithAttributes(attributesFrom(labels)...))
}

func (m *MetricsCollector) getOrCreateHistogram(metricName string) metric.Float64Histogram {
	if histogram, ok := m.histograms[metricName]; ok {
		return histogram
	}

	histogram, err := m.meter.Float64Histogram(metricName)
	if err != nil {
		return nil
	}

	m.histograms[metricName] = histogram

	return histogram
}

func (m *MetricsCollector) getOrCreateCounter(metricName string) metric.Int64Counter {
	if counter, ok := m.counters[metricName]; ok {
		return counter
	}

	counter, err := m.meter.Int64Counter(metricName)
	if err != nil {
		return nil
	}

	m.counters[metricName] = counter

	return counter
}

func (m *MetricsCollector) getOrCreateGauge(metricName string) metric.Float64Gauge {
	if gauge, ok := m.gauges[metricName]; ok {
		return gauge
	}

	gauge, err := m.meter.Float64Gauge(metricName)
	if err != nil {
		return nil
	}

	m.gauges[metricName] = gauge

	return gauge
}

func attributesFrom(labels map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for key, value := range labels {
		attrs = append(attrs, attribute.String(key, value))
	}

	return attrs
}

var _ eventstore.ContextualMetricsCollector = (*MetricsCollector)(nil)
