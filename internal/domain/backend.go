package domain

import (
	"context"
	"time"
)

// Backend is a source of remote user records.
type Backend interface {
	FetchUsers(ctx context.Context) ([]RemoteUser, error)
}

// ViewStore keeps the published state of mounted views.
type ViewStore interface {
	Save(ctx context.Context, id string, state FetchState) error
	Load(ctx context.Context, id string) (FetchState, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Recorder receives fetch and view lifecycle measurements.
type Recorder interface {
	RecordFetch(ctx context.Context, outcome string, duration time.Duration)
	RecordViews(ctx context.Context, delta int64)
}

type noopRecorder struct{}

func (noopRecorder) RecordFetch(context.Context, string, time.Duration) {}

func (noopRecorder) RecordViews(context.Context, int64) {}

func NoopRecorder() Recorder {
	return noopRecorder{}
}
