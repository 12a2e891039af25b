// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/pixelate"
	"github.com/gogpu/pixelate/scroll"
)

var titleCaser = cases.Title(language.English)

// title turns an image path into a display title: "sunset_over-bay.jpg"
// becomes "Sunset Over Bay".
func title(src string) string {
	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return titleCaser.String(strings.Join(strings.Fields(name), " "))
}

// termBlock is a content block laid out in terminal cells. Each cell row
// holds two pixel rows.
type termBlock struct {
	src   string
	title string
	index int

	mu         sync.Mutex
	cols, rows int
	surface    *pixelate.Surface
	opacity    float64
	yPercent   float64
}

func newTermBlock(index int, src string) *termBlock {
	return &termBlock{src: src, title: title(src), index: index}
}

// layout sets the block's size from the terminal size.
func (b *termBlock) layout(cols, rows int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cols, b.rows = cols, rows
}

// rect places the block in the document: one intro screen followed by one
// screen per block.
func (b *termBlock) rect() scroll.Rect {
	b.mu.Lock()
	defer b.mu.Unlock()
	return scroll.Rect{Top: float64((b.index + 1) * b.rows), Height: float64(b.rows)}
}

func (b *termBlock) Box() (float64, float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return float64(b.cols), float64(b.rows * 2)
}

func (b *termBlock) Source() string        { return b.src }
func (b *termBlock) Mount() pixelate.Mount { return b }
func (b *termBlock) Inner() pixelate.Inner { return (*termInner)(b) }

func (b *termBlock) Attach(s *pixelate.Surface) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.surface = s
}

func (b *termBlock) SetOpacity(o float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opacity = o
}

// state returns what the viewer needs to draw the block.
func (b *termBlock) state() (s *pixelate.Surface, visible bool, yPercent float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface, b.opacity > 0, b.yPercent
}

// termInner is the block's title, moved by the parallax scrub.
type termInner termBlock

func (in *termInner) SetYPercent(p float64) {
	b := (*termBlock)(in)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.yPercent = p
}

// termDocument tracks the page loading flag for the status line.
type termDocument struct {
	mu      sync.Mutex
	loading bool
}

func (d *termDocument) SetLoading(loading bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = loading
}

func (d *termDocument) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}
