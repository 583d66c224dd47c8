// Package controller owns the route request lifecycle: it validates input,
// dispatches a single query to the routing service and keeps the one State
// a front end renders from.
//
// Overlapping submissions are resolved by cancel-and-replace: every Submit
// and Reset starts a new generation, cancels the request of the previous one
// and causes its late completion to be discarded.
package controller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/jask/routefinder/internal/routing"
)

// User-facing messages.
const (
	MsgMissingLocations = "Please enter both start and destination locations"
	MsgSameLocations    = "Start and destination must be different"
	MsgRouteRejected    = "Failed to calculate route"
	MsgUnknownError     = "An error occurred"
)

// ValidationError is a locally detected input problem. It never reaches the
// network.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Sink is notified after every state transition, on the goroutine that
// caused it.
type Sink interface {
	StateChanged(State)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(State)

func (f SinkFunc) StateChanged(s State) { f(s) }

// Fetch performs the network call for one submission. It is safe to run on
// any goroutine; the returned Completion must be handed back to Complete.
type Fetch func() Completion

// Completion is the outcome of one Fetch, tagged with its generation.
type Completion struct {
	Seq    uint64
	Result routing.RouteResult
	Err    error
}

// Controller is the route request state machine.
type Controller struct {
	router routing.Router
	sink   Sink
	logger *slog.Logger

	mu     sync.Mutex
	state  State
	query  routing.RouteQuery
	hasQ   bool
	seq    uint64
	cancel context.CancelFunc
}

// Option customises a Controller.
type Option func(*Controller)

// WithSink registers a render sink.
func WithSink(s Sink) Option {
	return func(c *Controller) { c.sink = s }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Controller in the Idle state.
func New(router routing.Router, opts ...Option) *Controller {
	c := &Controller{
		router: router,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:  Idle(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Query returns the inputs of the last accepted submission.
func (c *Controller) Query() (routing.RouteQuery, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query, c.hasQ
}

// Submit validates start and end and, if they pass, moves to Loading and
// returns the Fetch that performs the request. Invalid input moves straight
// to Failed and returns nil. Either way any earlier in-flight request is
// cancelled and its completion will be ignored.
func (c *Controller) Submit(ctx context.Context, start, end string) Fetch {
	q := routing.RouteQuery{Start: strings.TrimSpace(start), End: strings.TrimSpace(end)}

	c.mu.Lock()
	c.supersedeLocked()
	if err := validateQuery(q); err != nil {
		c.logger.Debug("route query rejected", "seq", c.seq, "reason", err.Message)
		s := c.setLocked(Failed(err.Message))
		c.mu.Unlock()
		c.notify(s)
		return nil
	}
	seq := c.seq
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.query, c.hasQ = q, true
	s := c.setLocked(Loading())
	c.mu.Unlock()
	c.notify(s)

	c.logger.Info("route query submitted", "seq", seq, "start", q.Start, "end", q.End)
	router := c.router
	return func() Completion {
		res, err := router.Route(reqCtx, q)
		return Completion{Seq: seq, Result: res, Err: err}
	}
}

// Complete applies a Fetch outcome. It returns false, leaving the state
// untouched, when the completion belongs to a superseded submission. A
// result without a path is treated as a failure.
func (c *Controller) Complete(done Completion) bool {
	c.mu.Lock()
	if done.Seq != c.seq || !c.state.IsLoading() {
		c.mu.Unlock()
		c.logger.Debug("stale route completion discarded", "seq", done.Seq)
		return false
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	var next State
	switch {
	case done.Err != nil:
		next = Failed(FailureMessage(done.Err))
		c.logger.Warn("route query failed", "seq", done.Seq, "err", done.Err)
	case len(done.Result.Path) == 0:
		// a Succeeded state always carries at least one stop
		next = Failed(MsgUnknownError)
		c.logger.Warn("route query returned no path", "seq", done.Seq)
	default:
		next = Succeeded(done.Result)
		c.logger.Info("route query succeeded", "seq", done.Seq, "stops", done.Result.Stops())
	}
	s := c.setLocked(next)
	c.mu.Unlock()
	c.notify(s)
	return true
}

// Run submits and completes one query on the calling goroutine.
func (c *Controller) Run(ctx context.Context, start, end string) State {
	fetch := c.Submit(ctx, start, end)
	if fetch != nil {
		c.Complete(fetch())
	}
	return c.State()
}

// Reset returns to Idle from any state, forgets the stored query and
// abandons any request in flight.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.supersedeLocked()
	c.query, c.hasQ = routing.RouteQuery{}, false
	s := c.setLocked(Idle())
	c.mu.Unlock()
	c.notify(s)
}

// supersedeLocked starts a new generation and cancels the previous request.
func (c *Controller) supersedeLocked() {
	c.seq++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) setLocked(s State) State {
	c.state = s
	return s
}

func (c *Controller) notify(s State) {
	if c.sink != nil {
		c.sink.StateChanged(s)
	}
}

func validateQuery(q routing.RouteQuery) *ValidationError {
	if q.Start == "" || q.End == "" {
		return &ValidationError{Message: MsgMissingLocations}
	}
	if q.Start == q.End {
		return &ValidationError{Message: MsgSameLocations}
	}
	return nil
}

// FailureMessage maps an error to the text shown in the Failed state.
// Service rejections use the service's detail, anything else uses the
// error's own text, each with a generic fallback.
func FailureMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var rej *routing.ServiceRejection
	if errors.As(err, &rej) {
		if rej.Detail != "" {
			return rej.Detail
		}
		return MsgRouteRejected
	}
	var tf *routing.TransportFailure
	if errors.As(err, &tf) {
		if m := tf.Message(); m != "" {
			return m
		}
		return MsgUnknownError
	}
	if m := strings.TrimSpace(err.Error()); m != "" {
		return m
	}
	return MsgUnknownError
}
