// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixelate

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Interpolators used by Render. Nearest-neighbor keeps pixel blocks hard
// edged; Catmull-Rom is the smoothed final pass.
var (
	pixelInterp  xdraw.Interpolator = xdraw.NearestNeighbor
	smoothInterp xdraw.Interpolator = xdraw.CatmullRom
)

// Render draws src into placement p on s at pixelation level.
//
// The whole surface is cleared first. At level 100 the image is drawn once
// with smoothing. Below that, smoothing is disabled: the image is first
// reduced to level/100 of the placement size, then the reduced copy is
// enlarged back to the full placement with nearest-neighbor sampling, which
// yields square blocks of roughly 100/level pixels.
//
// Render only mutates s. The caller guarantees that src is decoded.
func Render(s *Surface, src image.Image, p Placement, level int) {
	scale := LevelScale(level)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()
	full := s.matrix.TransformRect(p.X, p.Y, p.Width, p.Height)
	if full.Empty() {
		return
	}

	if scale >= 1 {
		s.smoothing = true
		smoothInterp.Scale(s.img, full, src, src.Bounds(), xdraw.Over, nil)
		return
	}

	s.smoothing = false
	rw := max(1, int(math.Round(float64(full.Dx())*scale)))
	rh := max(1, int(math.Round(float64(full.Dy())*scale)))
	reduced := s.scratchLocked(rw, rh)
	pixelInterp.Scale(reduced, reduced.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	pixelInterp.Scale(s.img, full, reduced, reduced.Bounds(), xdraw.Over, nil)
}
