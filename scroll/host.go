// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scroll

import (
	"sync"

	"github.com/gogpu/pixelate"
)

// Host implements pixelate.Host on top of a Triggers registry.
// layout reports where a block sits in the document.
type Host struct {
	triggers *Triggers
	layout   func(pixelate.Block) Rect

	mu     sync.Mutex
	resize map[int]func()
	next   int
}

var _ pixelate.Host = (*Host)(nil)

// NewHost creates a host over t.
func NewHost(t *Triggers, layout func(pixelate.Block) Rect) *Host {
	return &Host{
		triggers: t,
		layout:   layout,
		resize:   make(map[int]func()),
	}
}

// Triggers returns the underlying registry.
func (h *Host) Triggers() *Triggers { return h.triggers }

// Resize records a new viewport height, re-evaluates the triggers and
// notifies the resize listeners.
func (h *Host) Resize(viewport float64) {
	h.triggers.SetViewport(viewport)

	h.mu.Lock()
	fns := make([]func(), 0, len(h.resize))
	for _, fn := range h.resize {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	run(fns)
}

// OnResize implements pixelate.Host.
func (h *Host) OnResize(fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	id := h.next
	h.resize[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.resize, id)
	}
}

// OnEnter implements pixelate.Host.
func (h *Host) OnEnter(b pixelate.Block, fn func(), once bool) func() {
	return h.triggers.OnEnter(h.rect(b), fn, once)
}

// Scrub implements pixelate.Host with a linear tween of the target's
// vertical offset.
func (h *Host) Scrub(b pixelate.Block, target pixelate.Inner, from, to float64) func() {
	tw := Tween{From: from, To: to, Ease: Linear}
	return h.triggers.Scrub(h.rect(b), func(p float64) {
		target.SetYPercent(tw.At(p))
	})
}

func (h *Host) rect(b pixelate.Block) func() Rect {
	return func() Rect { return h.layout(b) }
}
