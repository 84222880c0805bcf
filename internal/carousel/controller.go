package carousel

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Makepad-fr/ccauto/internal/model"
)

// DefaultSwipeThreshold is the minimum horizontal travel that counts as a swipe.
const DefaultSwipeThreshold = 50

// RenderFunc displays item using dir as the transition hint.
// It is called with the controller locked and must not call back into it.
type RenderFunc[T any] func(item T, dir model.Direction)

// Option customises a Controller.
type Option func(*options)

type options struct {
	clock  Clock
	logger *zap.Logger
	name   string
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger attaches a logger for silent no-op paths.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithName tags log entries with the carousel name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// Controller drives a Rotation: timed auto-advance, manual navigation and
// swipes all go through goTo, so the renderer cannot tell them apart.
//
// A Controller is Idle after construction and after Stop, and Running after
// Start. Every transition holds mu for the full update + render, so a timer
// tick never interleaves with a manual navigation.
type Controller[T any] struct {
	mu       sync.Mutex
	rot      *Rotation[T]
	render   RenderFunc[T]
	clock    Clock
	log      *zap.Logger
	interval time.Duration
	timer    Timer
	gen      uint64 // bumped on every arm/disarm; ticks from older generations are dropped
	running  bool
}

// New builds an idle controller over fallback. fallback must not be empty.
func New[T any](fallback []T, render RenderFunc[T], opts ...Option) (*Controller[T], error) {
	o := options{clock: SystemClock(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	rot, err := NewRotation(fallback)
	if err != nil {
		return nil, err
	}
	log := o.logger
	if o.name != "" {
		log = log.With(zap.String("carousel", o.name))
	}
	return &Controller[T]{
		rot:    rot,
		render: render,
		clock:  o.clock,
		log:    log,
	}, nil
}

// Start begins auto-advancing every interval. Any running timer is cancelled
// first. A non-positive interval is ignored.
func (c *Controller[T]) Start(interval time.Duration) {
	if interval <= 0 {
		c.log.Warn("start ignored: non-positive interval", zap.Duration("interval", interval))
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = interval
	c.running = true
	c.armLocked()
}

// Stop cancels the active timer. Safe to call when idle.
func (c *Controller[T]) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	c.disarmLocked()
}

// Running reports whether auto-advance is active.
func (c *Controller[T]) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Next shows the following item and defers the next automatic tick by a full interval.
func (c *Controller[T]) Next() {
	c.step(1, model.Forward)
}

// Previous shows the preceding item and defers the next automatic tick by a full interval.
func (c *Controller[T]) Previous() {
	c.step(-1, model.Backward)
}

// GoTo jumps to target (taken modulo the sequence length) and renders it.
// It does not touch the timer.
func (c *Controller[T]) GoTo(target int, dir model.Direction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.goToLocked(target, dir)
}

// HandleSwipe maps a horizontal drag to navigation: a drag to the left of at
// least threshold is Next, to the right is Previous, anything shorter is
// ignored. A non-positive threshold falls back to DefaultSwipeThreshold.
func (c *Controller[T]) HandleSwipe(delta, threshold int) {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	switch {
	case delta <= -threshold:
		c.Next()
	case delta >= threshold:
		c.Previous()
	}
}

// Show renders the current item without moving. Used for the initial display.
func (c *Controller[T]) Show() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderLocked(model.Forward)
}

// Replace swaps in a hydrated sequence, resets to the first item and renders
// it. An empty sequence is logged and ignored; Replace reports whether the
// swap happened.
func (c *Controller[T]) Replace(items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.rot.Replace(items); err != nil {
		c.log.Debug("replace sequence ignored", zap.Error(err))
		return false
	}
	c.renderLocked(model.Forward)
	return true
}

// Index returns the current position.
func (c *Controller[T]) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rot.Index()
}

// Len returns the number of items in rotation.
func (c *Controller[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rot.Len()
}

// Current returns the item on display.
func (c *Controller[T]) Current() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rot.Current()
}

func (c *Controller[T]) step(delta int, dir model.Direction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.goToLocked(c.rot.Index()+delta, dir)
	if c.running {
		c.armLocked()
	}
}

func (c *Controller[T]) goToLocked(target int, dir model.Direction) {
	c.rot.Advance(target - c.rot.Index())
	c.renderLocked(dir)
}

func (c *Controller[T]) renderLocked(dir model.Direction) {
	if c.render == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn("render failed", zap.Any("panic", r), zap.Int("index", c.rot.Index()))
		}
	}()
	c.render(c.rot.Current(), dir)
}

func (c *Controller[T]) armLocked() {
	c.disarmLocked()
	gen := c.gen
	c.timer = c.clock.AfterFunc(c.interval, func() { c.tick(gen) })
}

func (c *Controller[T]) disarmLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

func (c *Controller[T]) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || gen != c.gen {
		return
	}
	c.goToLocked(c.rot.Index()+1, model.Forward)
	c.armLocked()
}
