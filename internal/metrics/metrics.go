package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/mdobak/go-xerrors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"
)

// Metrics owns the prometheus exporter and the HTTP instruments recorded by
// the API middleware.
type Metrics struct {
	exporter  *prometheus.Exporter
	completed metric.Int64Counter
	duration  metric.Float64ValueRecorder
}

func New(serviceName string) (*Metrics, error) {
	config := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(config.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)
	exporter, err := prometheus.New(config, c)
	if err != nil {
		return nil, xerrors.Newf("metrics: failed to initialize prometheus exporter: %w", err)
	}

	meter := exporter.MeterProvider().Meter(serviceName)
	m := &Metrics{exporter: exporter}

	m.completed, err = meter.NewInt64Counter(
		"http_server_completed_requests",
		metric.WithDescription("Count of completed requests, by HTTP method and response status"),
	)
	if err != nil {
		return nil, xerrors.New(err)
	}

	m.duration, err = meter.NewFloat64ValueRecorder(
		"http_server_request_duration_seconds",
		metric.WithDescription("Request latency, by HTTP method"),
	)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return m, nil
}

func (m *Metrics) RecordRequest(ctx context.Context, method string, status int, elapsed time.Duration) {
	m.completed.Add(ctx, 1,
		attribute.String("method", method),
		attribute.String("status", strconv.Itoa(status)),
	)
	m.duration.Record(ctx, elapsed.Seconds(), attribute.String("method", method))
}

// Handler serves the prometheus scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(m.exporter.ServeHTTP)
}
