// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scroll provides the page collaborators of a pixelate reveal:
// a smooth scroll engine, scroll position triggers, scrubbed tweens and a
// pixelate.Host built on them.
package scroll

import (
	"math"
	"sync"
)

// DefaultLerp is the fraction of the remaining distance covered per frame.
const DefaultLerp = 0.1

// snapDistance is the distance below which the engine jumps to its target.
const snapDistance = 0.01

// Engine smooths vertical scrolling: input moves a target position and every
// frame (Raf) moves the current position a fixed fraction toward it.
type Engine struct {
	mu        sync.Mutex
	lerp      float64
	current   float64
	target    float64
	limit     float64
	listeners map[int]func(y float64)
	next      int
}

// NewEngine creates an engine at position 0. A lerp outside (0, 1] uses
// DefaultLerp.
func NewEngine(lerp float64) *Engine {
	if !(lerp > 0 && lerp <= 1) {
		lerp = DefaultLerp
	}
	return &Engine{
		lerp:      lerp,
		limit:     math.Inf(1),
		listeners: make(map[int]func(float64)),
	}
}

// SetLimit sets the maximum scroll position and clamps the target to it.
func (e *Engine) SetLimit(limit float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.limit = math.Max(limit, 0)
	e.target = e.clampLocked(e.target)
}

// ScrollBy moves the target by delta.
func (e *Engine) ScrollBy(delta float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.target = e.clampLocked(e.target + delta)
}

// ScrollTo sets the target position.
func (e *Engine) ScrollTo(y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.target = e.clampLocked(y)
}

// Position returns the current, smoothed position.
func (e *Engine) Position() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Target returns the position the engine is moving toward.
func (e *Engine) Target() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.target
}

// Raf advances one animation frame. Scroll listeners are notified when the
// position changed. It reports whether the engine is still moving.
func (e *Engine) Raf() bool {
	e.mu.Lock()
	prev := e.current
	diff := e.target - e.current
	if math.Abs(diff) < snapDistance {
		e.current = e.target
	} else {
		e.current += diff * e.lerp
	}
	y := e.current
	moving := e.current != e.target
	var fns []func(float64)
	if y != prev {
		fns = make([]func(float64), 0, len(e.listeners))
		for _, fn := range e.listeners {
			fns = append(fns, fn)
		}
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(y)
	}
	return moving
}

// OnScroll registers fn to be called with the new position whenever it
// changes.
func (e *Engine) OnScroll(fn func(y float64)) (cancel func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.next++
	id := e.next
	e.listeners[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners, id)
	}
}

func (e *Engine) clampLocked(y float64) float64 {
	return math.Min(math.Max(y, 0), e.limit)
}
