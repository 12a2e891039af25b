// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/pixelate"
	"github.com/gogpu/pixelate/scroll"
)

// frameBlock is a fixed size block that is in view from the start.
type frameBlock struct {
	src   string
	w, h  float64
	mount frameMount
}

func (b *frameBlock) Box() (float64, float64) { return b.w, b.h }
func (b *frameBlock) Source() string          { return b.src }
func (b *frameBlock) Mount() pixelate.Mount   { return &b.mount }
func (b *frameBlock) Inner() pixelate.Inner   { return nopInner{} }

type frameMount struct {
	surface *pixelate.Surface
}

func (m *frameMount) Attach(s *pixelate.Surface) { m.surface = s }
func (m *frameMount) SetOpacity(float64)         {}

type nopInner struct{}

func (nopInner) SetYPercent(float64) {}

// frameWriter saves the surface after every render.
type frameWriter struct {
	dir     string
	surface *pixelate.Surface

	mu  sync.Mutex
	n   int
	err error
}

func (w *frameWriter) write(pixelate.Frame) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return
	}
	path := filepath.Join(w.dir, fmt.Sprintf("frame-%02d.png", w.n))
	if err := w.surface.SavePNG(path); err != nil {
		w.err = err
		return
	}
	w.n++
}

func (w *frameWriter) result() (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.n, w.err
}

// exportFrames runs one reveal of src on the real clock and writes each
// rendered frame to dir. It returns the number of frames written.
func exportFrames(ctx context.Context, src, dir string, width, height int, scale float64, opts ...pixelate.Option) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	b := &frameBlock{src: src, w: float64(width), h: float64(height)}
	host := scroll.NewHost(scroll.NewTriggers(b.h), func(pixelate.Block) scroll.Rect {
		return scroll.Rect{Height: b.h}
	})
	w := &frameWriter{dir: dir}

	opts = append([]pixelate.Option{
		pixelate.WithHost(host),
		pixelate.WithDeviceScale(scale),
		pixelate.WithMaxRetries(1),
		pixelate.WithRenderHook(w.write),
	}, opts...)
	c, err := pixelate.New(b, opts...)
	if err != nil {
		return 0, err
	}
	defer c.Close()
	w.surface = b.mount.surface

	if err := c.Start(ctx); err != nil {
		return 0, err
	}
	if err := c.Wait(ctx); err != nil {
		return 0, err
	}

	select {
	case <-c.Finished():
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	return w.result()
}
