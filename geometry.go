// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixelate

import (
	"fmt"
	"math"
)

// Point represents a 2D point in logical units.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Align selects where the crop is anchored on the vertical axis when a
// taller image overflows its box.
type Align uint8

const (
	// AlignCenter centers the overflow on both axes.
	AlignCenter Align = iota

	// AlignTop keeps the top edge of the image at the top of the box.
	AlignTop
)

// String returns a string representation of the alignment.
func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "Center"
	case AlignTop:
		return "Top"
	default:
		return "Unknown"
	}
}

// CoverOptions tunes the cover-fit placement.
type CoverOptions struct {
	// Margin enlarges the target box by this fraction of its size,
	// distributed evenly around its center. It hides edge gaps at coarse
	// pixelation levels. Zero disables it.
	Margin float64

	// Align anchors the vertical crop.
	Align Align
}

// Placement is where the source image is drawn, in logical surface units.
// Negative offsets mean the image is cropped on that side.
type Placement struct {
	X, Y          float64
	Width, Height float64
}

// Cover computes the placement that makes an image with the given aspect
// ratio (width / height) fully cover a width x height box, preserving the
// ratio and cropping the overflowing axis.
//
// Returns ErrInvalidDimensions if any argument is not a positive finite number.
func Cover(ratio, width, height float64, opts CoverOptions) (Placement, error) {
	if !positive(ratio) || !positive(width) || !positive(height) {
		return Placement{}, fmt.Errorf("%w: ratio=%g, width=%g, height=%g", ErrInvalidDimensions, ratio, width, height)
	}
	if err := opts.validate(); err != nil {
		return Placement{}, err
	}

	// Grow the box around its center.
	boxW := width * (1 + opts.Margin)
	boxH := height * (1 + opts.Margin)
	originX := (width - boxW) / 2
	originY := (height - boxH) / 2

	var p Placement
	if ratio > boxW/boxH {
		// Relatively wider: fill the height, center horizontally.
		p.Width = boxH * ratio
		p.Height = boxH
		p.X = originX + (boxW-p.Width)/2
		p.Y = originY
	} else {
		// Relatively taller: fill the width, crop vertically.
		p.Width = boxW
		p.Height = boxW / ratio
		p.X = originX
		p.Y = originY
		if opts.Align == AlignCenter {
			p.Y += (boxH - p.Height) / 2
		}
	}
	return p, nil
}

func (o CoverOptions) validate() error {
	if o.Margin < 0 || math.IsNaN(o.Margin) || math.IsInf(o.Margin, 0) {
		return fmt.Errorf("%w: margin=%g", ErrInvalidDimensions, o.Margin)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
