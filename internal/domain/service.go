package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type Service struct {
	store    ViewStore
	source   Backend
	recorder Recorder
	cfg      *Config
	now      func() time.Time

	// base outlives request contexts so a fetch survives the mounting request.
	base context.Context

	mu    sync.Mutex
	views map[string]*mounted
}

type mounted struct {
	ctrl      *Controller
	mountedAt time.Time
	seenAt    time.Time
}

type IService interface {
	Mount(context.Context) (View, error)
	View(context.Context, string) (View, error)
	Unmount(context.Context, string) error
	Reap(context.Context, time.Time) int
	Close(context.Context) error
}

type ServiceOp func(*Service)

func WithClock(now func() time.Time) ServiceOp {
	return func(s *Service) {
		s.now = now
	}
}

func WithServiceRecorder(recorder Recorder) ServiceOp {
	return func(s *Service) {
		if recorder != nil {
			s.recorder = recorder
		}
	}
}

func WithBaseContext(ctx context.Context) ServiceOp {
	return func(s *Service) {
		s.base = ctx
	}
}

func NewService(cfg *Config, store ViewStore, source Backend, ops ...ServiceOp) *Service {
	s := &Service{
		store:    store,
		source:   source,
		recorder: NoopRecorder(),
		cfg:      cfg,
		now:      time.Now,
		base:     context.Background(),
		views:    map[string]*mounted{},
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// Mount implements IService.
func (s *Service) Mount(ctx context.Context) (View, error) {
	id := uuid.NewString()
	initial := InitialState()

	if err := s.store.Save(ctx, id, initial); err != nil {
		return View{}, fmt.Errorf("save view: %w", err)
	}

	ctrl := NewController(s.source,
		WithTimeout(s.cfg.Source.Timeout),
		WithRecorder(s.recorder),
		WithPublisher(func(state FetchState) {
			// Runs under the controller lock, so teardown cannot interleave.
			if err := s.store.Save(context.Background(), id, state); err != nil {
				log.Error().Err(err).Str("view", id).Msg("publish state")
			}
		}),
	)

	now := s.now()

	s.mu.Lock()
	s.views[id] = &mounted{ctrl: ctrl, mountedAt: now, seenAt: now}
	s.mu.Unlock()

	s.recorder.RecordViews(ctx, 1)
	ctrl.Activate(s.base)

	log.Info().Str("view", id).Msg("mounted")

	return View{Id: id, State: ctrl.State(), MountedAt: now, SeenAt: now}, nil
}

// View implements IService.
func (s *Service) View(ctx context.Context, id string) (View, error) {
	s.mu.Lock()
	m, has := s.views[id]
	if has {
		m.seenAt = s.now()
	}
	s.mu.Unlock()

	if !has {
		return View{}, fmt.Errorf("view %s: %w", id, ErrNotFound)
	}

	state, err := s.store.Load(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf("load view: %w", err)
	}

	return View{Id: id, State: state, MountedAt: m.mountedAt, SeenAt: m.seenAt}, nil
}

// Unmount implements IService.
func (s *Service) Unmount(ctx context.Context, id string) error {
	s.mu.Lock()
	m, has := s.views[id]
	delete(s.views, id)
	s.mu.Unlock()

	if !has {
		return fmt.Errorf("view %s: %w", id, ErrNotFound)
	}

	m.ctrl.Teardown()
	s.recorder.RecordViews(ctx, -1)

	if err := s.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete view: %w", err)
	}

	log.Info().Str("view", id).Msg("unmounted")

	return nil
}

// Reap implements IService. Views not seen for longer than the configured
// TTL are unmounted.
func (s *Service) Reap(ctx context.Context, now time.Time) int {
	ttl := s.cfg.Views.TTL

	s.mu.Lock()
	idle := lo.Keys(lo.PickBy(s.views, func(_ string, m *mounted) bool {
		return now.Sub(m.seenAt) > ttl
	}))
	s.mu.Unlock()

	reaped := 0
	for _, id := range idle {
		if err := s.Unmount(ctx, id); err != nil {
			if !errors.Is(err, ErrNotFound) {
				log.Warn().Err(err).Str("view", id).Msg("reap")
			}
			continue
		}
		reaped++
	}

	return reaped
}

// Close implements IService. Every mounted view is torn down and the
// fetch goroutines are awaited until ctx expires.
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	ids := lo.Keys(s.views)
	ctrls := lo.MapToSlice(s.views, func(_ string, m *mounted) *Controller {
		return m.ctrl
	})
	s.mu.Unlock()

	var errs []error
	for _, id := range ids {
		if err := s.Unmount(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
			errs = append(errs, err)
		}
	}

	for _, ctrl := range ctrls {
		select {
		case <-ctrl.Done():
		case <-ctx.Done():
			return errors.Join(append(errs, ctx.Err())...)
		}
	}

	return errors.Join(errs...)
}

// Mounted reports how many views are currently mounted.
func (s *Service) Mounted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}
