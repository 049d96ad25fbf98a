package domain

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Publisher is called with the resolved state, under the controller lock.
type Publisher func(FetchState)

// Controller runs the single fetch of one view and owns its FetchState.
type Controller struct {
	source   Backend
	timeout  time.Duration
	recorder Recorder
	publish  Publisher

	mu       sync.Mutex
	state    FetchState
	torndown bool
	cancel   context.CancelFunc

	once sync.Once
	done chan struct{}
}

type ControllerOp func(*Controller)

// WithTimeout bounds the fetch. Zero disables the deadline.
func WithTimeout(timeout time.Duration) ControllerOp {
	return func(c *Controller) {
		c.timeout = timeout
	}
}

func WithRecorder(recorder Recorder) ControllerOp {
	return func(c *Controller) {
		if recorder != nil {
			c.recorder = recorder
		}
	}
}

func WithPublisher(publish Publisher) ControllerOp {
	return func(c *Controller) {
		c.publish = publish
	}
}

func NewController(source Backend, ops ...ControllerOp) *Controller {
	c := &Controller{
		source:   source,
		recorder: NoopRecorder(),
		state:    InitialState(),
		done:     make(chan struct{}),
	}

	for _, op := range ops {
		op(c)
	}

	return c
}

// Activate starts the fetch. Only the first call has an effect.
func (c *Controller) Activate(ctx context.Context) {
	c.once.Do(func() {
		c.mu.Lock()
		if c.torndown {
			c.mu.Unlock()
			close(c.done)
			return
		}

		fetchCtx, cancel := context.WithCancel(ctx)
		c.cancel = cancel
		c.mu.Unlock()

		go c.run(fetchCtx)
	})
}

func (c *Controller) run(ctx context.Context) {
	defer close(c.done)
	defer c.cancel()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	started := time.Now()
	users, err := c.source.FetchUsers(ctx)

	// A deadline hit inside the source may surface as a bare context error.
	if err != nil && errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrTimeout) {
		err = errors.Join(ErrTimeout, err)
	}

	if c.isTorndown() {
		log.Debug().Err(err).Msg("fetch resolved after teardown, dropping")
		return
	}

	c.recorder.RecordFetch(ctx, Outcome(err), time.Since(started))

	if err != nil {
		log.Warn().Err(err).Msg("fetch users")
		c.resolve(FailedState(UserMessage(err)))
		return
	}

	c.resolve(LoadedState(AdaptUsers(users)))
}

func (c *Controller) resolve(state FetchState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.torndown || !c.state.Loading {
		return
	}

	c.state = state
	if c.publish != nil {
		c.publish(state.clone())
	}
}

func (c *Controller) isTorndown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.torndown
}

// State returns a copy of the current FetchState.
func (c *Controller) State() FetchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Done is closed once the fetch goroutine exits, or at teardown of a
// controller that was never activated.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Teardown aborts the in-flight request. Once it returns no resolution
// reaches the state or the publisher.
func (c *Controller) Teardown() {
	c.mu.Lock()
	if c.torndown {
		c.mu.Unlock()
		return
	}
	c.torndown = true
	cancel := c.cancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		return
	}

	// Never activated: make later Activate calls inert and release waiters.
	c.once.Do(func() {
		close(c.done)
	})
}
