// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixelate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
)

// ParallaxYPercent is the inner element offset, in percent of its height,
// reached when the block leaves the top of the viewport.
const ParallaxYPercent = -100

// State is the lifecycle state of a Controller.
type State uint8

const (
	// StateIdle is the state after New, before Start.
	StateIdle State = iota

	// StateLoading means the source image is being loaded.
	StateLoading

	// StateLayout means the image is loaded and the controller waits for
	// the container to be laid out.
	StateLayout

	// StateReady means the surface is rendered and events are wired.
	StateReady

	// StateFailed means loading or layout failed; nothing is rendered.
	StateFailed

	// StateClosed means Close was called.
	StateClosed
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StateLayout:
		return "Layout"
	case StateReady:
		return "Ready"
	case StateFailed:
		return "Failed"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// ImageAsset is a decoded source image with its native geometry.
type ImageAsset struct {
	Image         image.Image
	Width, Height int
	Ratio         float64 // Width / Height
}

// Frame describes one completed render.
type Frame struct {
	Level     int
	Scale     float64
	Smoothing bool
	Placement Placement
}

// Controller runs the pixelation reveal for one content block.
//
// It loads the block's image, keeps the surface fitted to the block's box,
// renders the level currently selected by its Sequencer and starts the
// sequencer once when the block enters the viewport.
//
// Controller is safe for concurrent use. Host callbacks, timers and the
// loader goroutine are serialized by an internal mutex.
type Controller struct {
	mu sync.Mutex

	block   Block
	src     string
	opts    options
	surface *Surface
	seq     *Sequencer

	state    State
	err      error
	asset    ImageAsset
	level    int   // level currently shown
	retry    Timer // pending layout retry
	attempts int
	renders  int
	cancels  []func()

	settled    chan struct{}
	settleOnce sync.Once
}

// New creates a controller for block and attaches its surface to the
// block's mount point. Call Start to load the image.
//
// Returns ErrNilBlock for a nil block, ErrInvalidSequence for a bad
// WithSequence option and ErrInvalidDimensions for a bad WithMargin option.
func New(block Block, opts ...Option) (*Controller, error) {
	if block == nil {
		return nil, ErrNilBlock
	}
	o := newOptions(opts)
	if o.sequenceErr != nil {
		return nil, o.sequenceErr
	}
	if err := o.cover.validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		block:   block,
		src:     block.Source(),
		opts:    o,
		level:   o.sequence.Level(0),
		surface: NewSurface(o.deviceScale),
		settled: make(chan struct{}),
	}
	c.seq = NewSequencer(o.sequence, o.scheduler, o.firstDelay, o.stepDelay, c.renderStep)
	block.Mount().Attach(c.surface)
	return c, nil
}

// Start begins loading the image in the background. Calling Start on a
// started controller is a no-op; on a closed one it returns ErrClosed.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateIdle:
		c.state = StateLoading
	case StateClosed:
		c.mu.Unlock()
		return ErrClosed
	default:
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	Logger().Debug("pixelate: loading", "src", c.src)
	go c.load(ctx)
	return nil
}

func (c *Controller) load(ctx context.Context) {
	img, err := c.opts.loader.Load(ctx, c.src)
	if err == nil && (img == nil || img.Bounds().Empty()) {
		err = errors.New("empty image")
	}

	c.mu.Lock()
	if c.state != StateLoading {
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.failLocked(fmt.Errorf("%w: %s: %w", ErrLoadFailed, c.src, err))
		c.mu.Unlock()
		return
	}

	b := img.Bounds()
	c.asset = ImageAsset{
		Image:  img,
		Width:  b.Dx(),
		Height: b.Dy(),
		Ratio:  float64(b.Dx()) / float64(b.Dy()),
	}
	c.state = StateLayout
	Logger().Info("pixelate: image loaded", "src", c.src, "width", c.asset.Width, "height", c.asset.Height)

	first := c.layoutLocked()
	c.mu.Unlock()
	if first {
		c.wire()
	}
}

// layoutLocked fits the surface to the block box and renders the level
// currently shown. It reports whether this completed the first layout.
// While a retry is pending the request is absorbed by it.
func (c *Controller) layoutLocked() bool {
	if c.retry != nil {
		return false
	}
	w, h := c.block.Box()
	if _, err := c.surface.Fit(w, h); err != nil {
		c.scheduleRetryLocked(err)
		return false
	}
	c.attempts = 0
	c.renderLocked(c.level)
	if c.state != StateLayout {
		return false
	}
	c.state = StateReady
	return true
}

func (c *Controller) scheduleRetryLocked(cause error) {
	c.attempts++
	if limit := c.opts.maxRetries; limit > 0 && c.attempts > limit {
		if c.state == StateLayout {
			c.failLocked(fmt.Errorf("%w: %s after %d retries: %w", ErrLayoutTimeout, c.src, limit, cause))
		} else {
			Logger().Warn("pixelate: giving up relayout", "src", c.src, "retries", limit)
			c.attempts = 0
		}
		return
	}
	Logger().Warn("pixelate: container not laid out, retrying",
		"src", c.src, "attempt", c.attempts, "delay", c.opts.retryDelay)
	c.retry = c.opts.scheduler.AfterFunc(c.opts.retryDelay, c.onRetry)
}

func (c *Controller) onRetry() {
	c.mu.Lock()
	c.retry = nil
	if c.state != StateLayout && c.state != StateReady {
		c.mu.Unlock()
		return
	}
	first := c.layoutLocked()
	c.mu.Unlock()
	if first {
		c.wire()
	}
}

// wire registers the host subscriptions. It runs without the lock so hosts
// may invoke callbacks synchronously from a registration.
func (c *Controller) wire() {
	h := c.opts.host
	cancels := []func(){
		h.OnResize(c.Resize),
		h.OnEnter(c.block, c.enter, true),
		h.Scrub(c.block, c.block.Inner(), 0, ParallaxYPercent),
		h.OnEnter(c.block, c.reveal, true),
	}

	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		for _, cancel := range cancels {
			cancel()
		}
		return
	}
	c.cancels = append(c.cancels, cancels...)
	c.mu.Unlock()

	Logger().Info("pixelate: controller ready", "src", c.src)
	c.settle()
}

func (c *Controller) enter() {
	if c.seq.Start() {
		Logger().Debug("pixelate: block entered viewport", "src", c.src)
	}
}

func (c *Controller) reveal() {
	c.mu.Lock()
	closed := c.state == StateClosed
	c.mu.Unlock()
	if !closed {
		c.block.Mount().SetOpacity(1)
	}
}

// Resize refits the surface to the block box and re-renders the level
// currently shown, without restarting the reveal. If the box has no area a
// retry is scheduled; at most one retry is pending at a time.
func (c *Controller) Resize() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return
	}
	c.layoutLocked()
}

// renderStep is the sequencer's render callback.
func (c *Controller) renderStep(level int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return
	}
	// Pick up size changes that arrived without a resize event; a collapsed
	// box keeps the previous surface.
	if w, h := c.block.Box(); c.retry == nil {
		if _, err := c.surface.Fit(w, h); err != nil {
			Logger().Debug("pixelate: step on stale surface", "src", c.src, "err", err)
		}
	}
	c.level = level
	c.renderLocked(level)
}

func (c *Controller) renderLocked(level int) {
	w, h := c.surface.Size()
	p, err := Cover(c.asset.Ratio, w, h, c.opts.cover)
	if err != nil {
		Logger().Warn("pixelate: render skipped", "src", c.src, "err", err)
		return
	}
	Render(c.surface, c.asset.Image, p, level)
	c.renders++
	Logger().Debug("pixelate: render", "src", c.src, "level", level)

	if c.opts.onRender != nil {
		c.opts.onRender(Frame{
			Level:     level,
			Scale:     LevelScale(level),
			Smoothing: c.surface.Smoothing(),
			Placement: p,
		})
	}
}

func (c *Controller) failLocked(err error) {
	c.state = StateFailed
	c.err = err
	Logger().Error("pixelate: controller failed", "src", c.src, "err", err)
	c.settle()
}

func (c *Controller) settle() {
	c.settleOnce.Do(func() { close(c.settled) })
}

// Close stops the reveal, cancels pending retries and removes every host
// subscription. Close is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	c.state = StateClosed
	c.seq.Stop()
	if c.retry != nil {
		c.retry.Stop()
		c.retry = nil
	}
	cancels := c.cancels
	c.cancels = nil
	c.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	c.settle()
}

// Wait blocks until the controller is ready, has failed or is closed.
// It returns nil when ready, the failure cause, ErrClosed, or ctx.Err().
func (c *Controller) Wait(ctx context.Context) error {
	select {
	case <-c.settled:
	case <-ctx.Done():
		return ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.err != nil:
		return c.err
	case c.state == StateClosed:
		return ErrClosed
	default:
		return nil
	}
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the failure cause, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Asset returns the loaded image, once available.
func (c *Controller) Asset() (ImageAsset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.asset, c.asset.Image != nil
}

// Renders returns the number of completed renders.
func (c *Controller) Renders() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renders
}

// Surface returns the controller's raster surface.
func (c *Controller) Surface() *Surface { return c.surface }

// Source returns the image reference.
func (c *Controller) Source() string { return c.src }

// Cursor returns the index of the pixelation level currently shown.
func (c *Controller) Cursor() int { return c.seq.Cursor() }

// Level returns the pixelation level currently shown.
func (c *Controller) Level() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.level
}

// Phase returns the reveal state.
func (c *Controller) Phase() Phase { return c.seq.Phase() }

// Finished is closed once the reveal has rendered its last level.
func (c *Controller) Finished() <-chan struct{} { return c.seq.Done() }
