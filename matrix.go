// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixelate

import (
	"image"
	"math"
)

// Matrix is a 2D affine transformation in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// A Surface uses it to map logical draw coordinates to backing pixels.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformRect maps an axis-aligned logical rectangle to the pixel grid.
// Edges are rounded independently so adjacent rectangles share edges.
// The matrix must not rotate or shear.
func (m Matrix) TransformRect(x, y, w, h float64) image.Rectangle {
	p0 := m.TransformPoint(Pt(x, y))
	p1 := m.TransformPoint(Pt(x+w, y+h))
	return image.Rect(
		int(math.Round(p0.X)), int(math.Round(p0.Y)),
		int(math.Round(p1.X)), int(math.Round(p1.Y)),
	)
}
