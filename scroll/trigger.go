// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scroll

import (
	"math"
	"sync"
)

// Rect is the vertical extent of an element in document coordinates.
type Rect struct {
	Top, Height float64
}

// Bottom returns the document position of the element's bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Triggers tracks elements against the viewport as the page scrolls.
//
// An enter trigger fires when the element's top crosses the bottom of the
// viewport while scrolling down ("top bottom"). A scrub reports progress
// from 0, at that same point, to 1, when the element's bottom passes the top
// of the viewport ("bottom top").
//
// Callbacks run on the goroutine that called Update, SetViewport or the
// registration, never with the internal lock held.
type Triggers struct {
	mu       sync.Mutex
	viewport float64
	scroll   float64
	enters   map[int]*enterTrigger
	scrubs   map[int]*scrubTrigger
	next     int
}

type enterTrigger struct {
	rect   func() Rect
	fn     func()
	once   bool
	passed bool
}

type scrubTrigger struct {
	rect     func() Rect
	fn       func(progress float64)
	progress float64
	primed   bool
}

// NewTriggers creates a registry for a viewport of the given height.
func NewTriggers(viewport float64) *Triggers {
	return &Triggers{
		viewport: viewport,
		enters:   make(map[int]*enterTrigger),
		scrubs:   make(map[int]*scrubTrigger),
	}
}

// Follow subscribes the registry to an engine's scroll updates.
func (t *Triggers) Follow(e *Engine) (cancel func()) {
	return e.OnScroll(t.Update)
}

// Update re-evaluates every trigger at scroll position y.
func (t *Triggers) Update(y float64) {
	t.mu.Lock()
	t.scroll = y
	calls := t.evaluateLocked()
	t.mu.Unlock()
	run(calls)
}

// SetViewport changes the viewport height and re-evaluates every trigger.
func (t *Triggers) SetViewport(h float64) {
	t.mu.Lock()
	t.viewport = h
	calls := t.evaluateLocked()
	t.mu.Unlock()
	run(calls)
}

// Scroll returns the last scroll position seen.
func (t *Triggers) Scroll() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scroll
}

// OnEnter registers fn for the moment rect's top crosses the viewport bottom.
// An element whose top sits exactly on the viewport bottom has not entered.
// If it already entered, fn runs during registration. With once set the
// trigger is removed after firing; otherwise it re-arms when the element
// goes back below the viewport.
func (t *Triggers) OnEnter(rect func() Rect, fn func(), once bool) (cancel func()) {
	t.mu.Lock()
	t.next++
	id := t.next
	t.enters[id] = &enterTrigger{rect: rect, fn: fn, once: once}
	calls := t.evaluateLocked()
	t.mu.Unlock()
	run(calls)

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.enters, id)
	}
}

// Scrub registers fn to receive the element's scroll progress in [0, 1].
// fn is called during registration and whenever the progress changes.
func (t *Triggers) Scrub(rect func() Rect, fn func(progress float64)) (cancel func()) {
	t.mu.Lock()
	t.next++
	id := t.next
	t.scrubs[id] = &scrubTrigger{rect: rect, fn: fn}
	calls := t.evaluateLocked()
	t.mu.Unlock()
	run(calls)

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.scrubs, id)
	}
}

func (t *Triggers) evaluateLocked() []func() {
	var calls []func()
	for id, e := range t.enters {
		r := e.rect()
		start := r.Top - t.viewport
		switch {
		case !e.passed && t.scroll > start:
			e.passed = true
			calls = append(calls, e.fn)
			if e.once {
				delete(t.enters, id)
			}
		case e.passed && t.scroll <= start:
			e.passed = false
		}
	}
	for _, s := range t.scrubs {
		p := Progress(s.rect(), t.viewport, t.scroll)
		if s.primed && p == s.progress {
			continue
		}
		s.primed = true
		s.progress = p
		fn := s.fn
		calls = append(calls, func() { fn(p) })
	}
	return calls
}

// Progress returns how far an element has travelled through the viewport:
// 0 when its top meets the viewport bottom, 1 when its bottom meets the
// viewport top.
func Progress(r Rect, viewport, scroll float64) float64 {
	start := r.Top - viewport
	end := r.Bottom()
	if end <= start {
		if scroll >= start {
			return 1
		}
		return 0
	}
	return math.Min(math.Max((scroll-start)/(end-start), 0), 1)
}

func run(calls []func()) {
	for _, fn := range calls {
		fn()
	}
}
