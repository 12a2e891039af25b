// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixelate

import "errors"

// Common errors returned by pixelate operations.
var (
	// ErrInvalidDimensions is returned when a geometry input is not a positive finite number.
	ErrInvalidDimensions = errors.New("pixelate: invalid dimensions")

	// ErrSurfaceNotReady is returned when the container box has no area yet.
	ErrSurfaceNotReady = errors.New("pixelate: surface not ready")

	// ErrLayoutTimeout is returned when the container never gets an area
	// within the configured number of retries.
	ErrLayoutTimeout = errors.New("pixelate: layout timeout")

	// ErrLoadFailed is returned when the source image could not be loaded.
	ErrLoadFailed = errors.New("pixelate: image load failed")

	// ErrInvalidSequence is returned for empty sequences or levels outside [1, 100].
	ErrInvalidSequence = errors.New("pixelate: invalid pixelation sequence")

	// ErrClosed is returned when operations are attempted on a closed controller.
	ErrClosed = errors.New("pixelate: controller is closed")

	// ErrNilBlock is returned when a controller is created without a content block.
	ErrNilBlock = errors.New("pixelate: nil block")
)
