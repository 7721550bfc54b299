package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "docsmith"

// Metrics holds all docsmith metric instruments.
type Metrics struct {
	GenerationsStarted   metric.Int64Counter
	GenerationsCompleted metric.Int64Counter
	GenerationsFailed    metric.Int64Counter
	ValidationsRun       metric.Int64Counter
	GenerationDuration   metric.Float64Histogram
	DocumentWordCount    metric.Int64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.GenerationsStarted, err = meter.Int64Counter("docsmith.generations.started",
		metric.WithDescription("Number of document generations started"))
	if err != nil {
		return nil, err
	}

	m.GenerationsCompleted, err = meter.Int64Counter("docsmith.generations.completed",
		metric.WithDescription("Number of document generations completed"))
	if err != nil {
		return nil, err
	}

	m.GenerationsFailed, err = meter.Int64Counter("docsmith.generations.failed",
		metric.WithDescription("Number of document generations failed"))
	if err != nil {
		return nil, err
	}

	m.ValidationsRun, err = meter.Int64Counter("docsmith.validations",
		metric.WithDescription("Number of prompt validations performed"))
	if err != nil {
		return nil, err
	}

	m.GenerationDuration, err = meter.Float64Histogram("docsmith.generation.duration_seconds",
		metric.WithDescription("Generation pipeline duration in seconds"))
	if err != nil {
		return nil, err
	}

	m.DocumentWordCount, err = meter.Int64Histogram("docsmith.document.word_count",
		metric.WithDescription("Word count of generated documents"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
