// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixelate

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"
)

// Surface is the raster target of one controller: a backing RGBA buffer
// sized to a logical box, optionally at a higher device resolution.
//
// All drawing coordinates are logical; the surface matrix maps them to
// backing pixels. Surface is safe for concurrent use: renders take the write
// lock, readers (View, At, EncodePNG) take the read lock.
type Surface struct {
	mu sync.RWMutex

	width, height float64 // logical box
	deviceScale   float64
	matrix        Matrix
	img           *image.RGBA
	scratch       *image.RGBA // reduced pass of the pixelated draw
	smoothing     bool
}

// NewSurface creates an empty surface. deviceScale is the number of backing
// pixels per logical unit; values <= 0 are treated as 1.
// The surface has no pixels until the first successful Fit.
func NewSurface(deviceScale float64) *Surface {
	if !positive(deviceScale) {
		deviceScale = 1
	}
	return &Surface{
		deviceScale: deviceScale,
		matrix:      Scale(deviceScale, deviceScale),
		img:         image.NewRGBA(image.Rectangle{}),
	}
}

// Fit synchronizes the backing buffer with a logical box of width x height.
// It reports whether the backing buffer was reallocated.
//
// A box without area returns ErrSurfaceNotReady and leaves the surface
// untouched. Fitting the same box twice is a no-op.
func (s *Surface) Fit(width, height float64) (bool, error) {
	if !positive(width) || !positive(height) {
		return false, fmt.Errorf("%w: box %gx%g", ErrSurfaceNotReady, width, height)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.width, s.height = width, height
	bw := int(math.Ceil(width * s.deviceScale))
	bh := int(math.Ceil(height * s.deviceScale))
	if b := s.img.Bounds(); b.Dx() == bw && b.Dy() == bh {
		return false, nil
	}
	s.img = image.NewRGBA(image.Rect(0, 0, bw, bh))
	return true, nil
}

// Size returns the logical size of the surface.
func (s *Surface) Size() (width, height float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// Backing returns the size of the backing buffer in pixels.
func (s *Surface) Backing() (width, height int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// DeviceScale returns the number of backing pixels per logical unit.
func (s *Surface) DeviceScale() float64 {
	return s.deviceScale
}

// Matrix returns the logical to backing pixel transform.
func (s *Surface) Matrix() Matrix {
	return s.matrix
}

// Smoothing reports whether the most recent render used a smoothing
// interpolator.
func (s *Surface) Smoothing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.smoothing
}

// Clear resets every backing pixel to transparent.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Surface) clearLocked() {
	clear(s.img.Pix)
}

// View calls fn with the backing buffer under the read lock.
// fn must not retain img or call other Surface methods that lock.
func (s *Surface) View(fn func(img *image.RGBA)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.img)
}

// Snapshot returns a copy of the backing buffer.
func (s *Surface) Snapshot() *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img := image.NewRGBA(s.img.Rect)
	copy(img.Pix, s.img.Pix)
	return img
}

// EncodePNG writes the backing buffer as PNG to the given writer.
func (s *Surface) EncodePNG(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("pixelate: encode PNG: %w", err)
	}
	return nil
}

// SavePNG saves the backing buffer to a PNG file.
func (s *Surface) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("pixelate: create file: %w", err)
	}
	if err := s.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (s *Surface) At(x, y int) color.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img.At(x, y)
}

// Bounds implements the image.Image interface.
func (s *Surface) Bounds() image.Rectangle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img.Bounds()
}

// ColorModel implements the image.Image interface.
func (s *Surface) ColorModel() color.Model {
	return color.RGBAModel
}

// scratchLocked returns a cleared reduced-pass buffer of the given size,
// reusing the previous one when it is large enough.
func (s *Surface) scratchLocked(w, h int) *image.RGBA {
	if s.scratch == nil || s.scratch.Rect.Dx() < w || s.scratch.Rect.Dy() < h {
		s.scratch = image.NewRGBA(image.Rect(0, 0, w, h))
		return s.scratch
	}
	sub := s.scratch.SubImage(image.Rect(0, 0, w, h)).(*image.RGBA)
	for y := 0; y < h; y++ {
		row := sub.Pix[y*sub.Stride : y*sub.Stride+w*4]
		clear(row)
	}
	return sub
}
