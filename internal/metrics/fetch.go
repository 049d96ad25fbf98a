package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/h2hsecure/usercards/internal/domain"
)

// fetchRecorder implements domain.Recorder.
type fetchRecorder struct {
	fetchCounter  metric.Int64Counter
	durationHisto metric.Float64Histogram
	views         metric.Int64UpDownCounter
}

func NewRecorder(meterProvider metric.MeterProvider, namespace string) (domain.Recorder, error) {
	meter := meterProvider.Meter(namespace)

	fetchCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_fetches_total", namespace),
		metric.WithDescription("Total number of user list fetches by outcome"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_fetch_duration_seconds", namespace),
		metric.WithDescription("User list fetch duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch histogram: %w", err)
	}

	views, err := meter.Int64UpDownCounter(
		fmt.Sprintf("%s_views_mounted", namespace),
		metric.WithDescription("Number of currently mounted views"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, fmt.Errorf("views counter: %w", err)
	}

	return &fetchRecorder{
		fetchCounter:  fetchCounter,
		durationHisto: durationHisto,
		views:         views,
	}, nil
}

func (r *fetchRecorder) RecordFetch(ctx context.Context, outcome string, duration time.Duration) {
	// The fetch context may already be cancelled; measurements do not depend on it.
	ctx = context.WithoutCancel(ctx)
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))

	r.fetchCounter.Add(ctx, 1, attrs)
	r.durationHisto.Record(ctx, duration.Seconds(), attrs)
}

func (r *fetchRecorder) RecordViews(ctx context.Context, delta int64) {
	r.views.Add(context.WithoutCancel(ctx), delta)
}
