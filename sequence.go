// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixelate

import (
	"fmt"
	"slices"
)

// Pixelation level bounds. A level is a relative block size factor:
// MinLevel gives the coarsest blocks, SharpLevel draws the image unpixelated.
const (
	MinLevel   = 1
	SharpLevel = 100
)

// DefaultLevels starts with small values so the big blocks stay visible
// longer, and sharpens quickly at the end.
var DefaultLevels = []int{1, 2, 4, 9, 100}

// Sequence is an immutable, ordered list of pixelation levels.
type Sequence struct {
	levels []int
}

// NewSequence validates and copies levels.
// Returns ErrInvalidSequence if levels is empty or a level is outside
// [MinLevel, SharpLevel].
func NewSequence(levels ...int) (Sequence, error) {
	if len(levels) == 0 {
		return Sequence{}, fmt.Errorf("%w: empty", ErrInvalidSequence)
	}
	for i, l := range levels {
		if l < MinLevel || l > SharpLevel {
			return Sequence{}, fmt.Errorf("%w: level[%d]=%d outside [%d, %d]",
				ErrInvalidSequence, i, l, MinLevel, SharpLevel)
		}
	}
	return Sequence{levels: slices.Clone(levels)}, nil
}

// DefaultSequence returns the sequence built from DefaultLevels.
func DefaultSequence() Sequence {
	return Sequence{levels: slices.Clone(DefaultLevels)}
}

// Len returns the number of levels.
func (s Sequence) Len() int { return len(s.levels) }

// Level returns the level at index i, clamped to the valid index range.
func (s Sequence) Level(i int) int {
	if len(s.levels) == 0 {
		return SharpLevel
	}
	return s.levels[min(max(i, 0), len(s.levels)-1)]
}

// Levels returns a copy of the levels.
func (s Sequence) Levels() []int { return slices.Clone(s.levels) }

// LevelScale maps a pixelation level to the draw scale in (0, 1].
func LevelScale(level int) float64 {
	level = min(max(level, MinLevel), SharpLevel)
	return float64(level) / SharpLevel
}
