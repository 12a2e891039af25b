// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scroll

// Ease maps linear progress in [0, 1] to eased progress.
type Ease func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// Tween interpolates a value between From and To.
type Tween struct {
	From, To float64
	Ease     Ease
}

// At returns the value at progress p, clamped to [0, 1].
func (tw Tween) At(p float64) float64 {
	p = min(max(p, 0), 1)
	if tw.Ease != nil {
		p = tw.Ease(p)
	}
	return tw.From + (tw.To-tw.From)*p
}
