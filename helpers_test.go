// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixelate

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/pixelate/internal/clock"
)

type fakeMount struct {
	mu       sync.Mutex
	surface  *Surface
	opacity  float64
	revealed int
}

func (m *fakeMount) Attach(s *Surface) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.surface = s
}

func (m *fakeMount) SetOpacity(o float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opacity = o
	m.revealed++
}

func (m *fakeMount) Opacity() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opacity
}

type fakeInner struct {
	mu       sync.Mutex
	yPercent float64
}

func (in *fakeInner) SetYPercent(p float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.yPercent = p
}

type fakeBlock struct {
	mu    sync.Mutex
	w, h  float64
	src   string
	mount *fakeMount
	inner *fakeInner
}

func newFakeBlock(src string, w, h float64) *fakeBlock {
	return &fakeBlock{w: w, h: h, src: src, mount: &fakeMount{}, inner: &fakeInner{}}
}

func (b *fakeBlock) Box() (float64, float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.w, b.h
}

func (b *fakeBlock) SetBox(w, h float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.w, b.h = w, h
}

func (b *fakeBlock) Source() string { return b.src }
func (b *fakeBlock) Mount() Mount   { return b.mount }
func (b *fakeBlock) Inner() Inner   { return b.inner }

// fakeHost records subscriptions and lets tests fire them.
type fakeHost struct {
	mu       sync.Mutex
	resize   map[int]func()
	enter    map[int]func()
	scrubs   map[int]scrubCall
	next     int
	canceled int
}

type scrubCall struct {
	target   Inner
	from, to float64
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		resize: make(map[int]func()),
		enter:  make(map[int]func()),
		scrubs: make(map[int]scrubCall),
	}
}

func (h *fakeHost) add(register func(id int)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	id := h.next
	register(id)
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.resize, id)
		delete(h.enter, id)
		delete(h.scrubs, id)
		h.canceled++
	}
}

func (h *fakeHost) OnResize(fn func()) func() {
	return h.add(func(id int) { h.resize[id] = fn })
}

func (h *fakeHost) OnEnter(_ Block, fn func(), _ bool) func() {
	return h.add(func(id int) { h.enter[id] = fn })
}

func (h *fakeHost) Scrub(_ Block, target Inner, from, to float64) func() {
	return h.add(func(id int) { h.scrubs[id] = scrubCall{target: target, from: from, to: to} })
}

func (h *fakeHost) snapshot(m map[int]func()) []func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	fns := make([]func(), 0, len(m))
	for _, fn := range m {
		fns = append(fns, fn)
	}
	return fns
}

func (h *fakeHost) Enter() {
	for _, fn := range h.snapshot(h.enter) {
		fn()
	}
}

func (h *fakeHost) Resize() {
	for _, fn := range h.snapshot(h.resize) {
		fn()
	}
}

func (h *fakeHost) Subscriptions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.resize) + len(h.enter) + len(h.scrubs)
}

type loaderFunc func(ctx context.Context, src string) (image.Image, error)

func (f loaderFunc) Load(ctx context.Context, src string) (image.Image, error) { return f(ctx, src) }

func staticLoader(img image.Image) Loader {
	return loaderFunc(func(context.Context, string) (image.Image, error) { return img, nil })
}

var errBroken = errors.New("broken image")

func failingLoader() Loader {
	return loaderFunc(func(context.Context, string) (image.Image, error) { return nil, errBroken })
}

// frameLog records render frames with the manual clock time.
type frameLog struct {
	mu     sync.Mutex
	m      *clock.Manual
	frames []loggedFrame
}

type loggedFrame struct {
	At time.Duration
	Frame
}

func (l *frameLog) hook(f Frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.frames = append(l.frames, loggedFrame{At: l.m.Now().Sub(epoch), Frame: f})
}

func (l *frameLog) Frames() []loggedFrame {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]loggedFrame(nil), l.frames...)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}
