// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixelate

import (
	"time"

	"github.com/gogpu/pixelate/internal/clock"
	"github.com/gogpu/pixelate/internal/imageio"
)

// Option configures a Controller or a Page during creation.
//
// Example:
//
//	c, err := pixelate.New(block,
//	    pixelate.WithHost(host),
//	    pixelate.WithDeviceScale(2),
//	    pixelate.WithMargin(0.05),
//	)
type Option func(*options)

// DefaultRetryDelay is the wait between layout attempts while the
// container has no area.
const DefaultRetryDelay = 100 * time.Millisecond

// options holds optional configuration for Controller creation.
type options struct {
	sequence    Sequence
	sequenceErr error
	firstDelay  time.Duration
	stepDelay   time.Duration
	deviceScale float64
	cover       CoverOptions
	scheduler   Scheduler
	retryDelay  time.Duration
	maxRetries  int
	loader      Loader
	host        Host
	onRender    func(Frame)
}

// defaultOptions returns the default controller options.
func defaultOptions() options {
	return options{
		sequence:    DefaultSequence(),
		firstDelay:  DefaultFirstDelay,
		stepDelay:   DefaultStepDelay,
		deviceScale: 1,
		scheduler:   clock.Real{},
		retryDelay:  DefaultRetryDelay,
		loader:      imageio.FileLoader{},
		host:        nopHost{},
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSequence replaces the pixelation levels. Invalid levels make New fail
// with ErrInvalidSequence.
func WithSequence(levels ...int) Option {
	return func(o *options) {
		o.sequence, o.sequenceErr = NewSequence(levels...)
	}
}

// WithDelays sets the wait before the first step and between later steps.
func WithDelays(first, step time.Duration) Option {
	return func(o *options) {
		o.firstDelay = first
		o.stepDelay = step
	}
}

// WithDeviceScale sets the number of backing pixels per logical unit,
// e.g. 2 for high-density displays.
func WithDeviceScale(scale float64) Option {
	return func(o *options) {
		o.deviceScale = scale
	}
}

// WithMargin oversizes the cover box by the given fraction (0.05 = 5%).
func WithMargin(margin float64) Option {
	return func(o *options) {
		o.cover.Margin = margin
	}
}

// WithAlign sets the vertical crop anchor.
func WithAlign(a Align) Option {
	return func(o *options) {
		o.cover.Align = a
	}
}

// WithScheduler injects the timer source for steps and layout retries.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.scheduler = s
		}
	}
}

// WithRetryDelay sets the wait between layout attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(o *options) {
		o.retryDelay = d
	}
}

// WithMaxRetries caps layout attempts. Zero means retry until the container
// is laid out; exceeding a positive cap fails the controller with
// ErrLayoutTimeout.
func WithMaxRetries(n int) Option {
	return func(o *options) {
		o.maxRetries = max(n, 0)
	}
}

// WithLoader sets the image loader. The default reads files.
func WithLoader(l Loader) Option {
	return func(o *options) {
		if l != nil {
			o.loader = l
		}
	}
}

// WithHost sets the page collaborators: resize events, viewport triggers and
// the scroll timeline. Without a host the controller renders once and never
// animates.
func WithHost(h Host) Option {
	return func(o *options) {
		if h != nil {
			o.host = h
		}
	}
}

// WithRenderHook registers fn to be called after every render. fn runs
// while the controller is locked: it may read the surface but must not call
// other Controller methods.
func WithRenderHook(fn func(Frame)) Option {
	return func(o *options) {
		o.onRender = fn
	}
}
