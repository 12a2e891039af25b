// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixelate

import (
	"context"
	"image"
)

// Block is one content block of the page: a container holding the raster
// mount point, the source image reference and the inner parallax element.
type Block interface {
	// Box returns the layout size of the mount point in logical units.
	// A block that is not laid out yet reports zero.
	Box() (width, height float64)

	// Source returns the image reference handed to the Loader.
	Source() string

	// Mount is where the surface is attached.
	Mount() Mount

	// Inner is the element moved by the parallax timeline.
	Inner() Inner
}

// Mount receives the surface and is revealed on viewport entry.
type Mount interface {
	Attach(s *Surface)
	SetOpacity(opacity float64)
}

// Inner is an element translated vertically by a percentage of its height.
type Inner interface {
	SetYPercent(p float64)
}

// Loader resolves an image reference to a decoded image.
type Loader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// Host provides the page level collaborators a controller subscribes to.
// Each registration returns a function that removes it.
type Host interface {
	// OnResize calls fn whenever the viewport is resized.
	OnResize(fn func()) (cancel func())

	// OnEnter calls fn when the block's top crosses the bottom of the
	// viewport. With once set, fn runs at most one time.
	OnEnter(b Block, fn func(), once bool) (cancel func())

	// Scrub animates target's vertical offset from `from` to `to` percent as
	// the block scrolls from entering the viewport to leaving it.
	Scrub(b Block, target Inner, from, to float64) (cancel func())
}

// Document is the page root carrying the loading state.
type Document interface {
	SetLoading(loading bool)
}

type nopHost struct{}

func (nopHost) OnResize(func()) func()                      { return func() {} }
func (nopHost) OnEnter(Block, func(), bool) func()          { return func() {} }
func (nopHost) Scrub(Block, Inner, float64, float64) func() { return func() {} }
