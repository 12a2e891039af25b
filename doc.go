// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pixelate renders a progressive pixelated-to-sharp reveal of images
// in scrollable content blocks.
//
// # Overview
//
// Each content block gets a [Controller]. The controller loads the block's
// image, fits a raster [Surface] to the block, draws the image with cover
// fitting at the coarsest pixelation level and waits. When the block enters
// the viewport a [Sequencer] redraws it at each level of a [Sequence]
// (by default 1, 2, 4, 9, 100), first after 300ms then every 80ms, ending
// fully sharp. Resizes re-render the level currently shown.
//
// # Quick Start
//
//	page, err := pixelate.NewPage(doc, blocks,
//	    pixelate.WithHost(host),
//	    pixelate.WithDeviceScale(2),
//	)
//	if err != nil {
//	    return err
//	}
//	defer page.Close()
//	err = page.Run(ctx)
//
// # Rendering
//
// A level p draws the image at p/100 of its placed size with nearest-neighbor
// sampling and enlarges that back with nearest-neighbor sampling, producing
// square blocks. Level 100 draws once with Catmull-Rom smoothing. See
// [Render] and [Cover].
//
// # Collaborators
//
// The page machinery (resize events, viewport triggers, the scroll timeline
// used for the parallax of the block's inner element) is reached through the
// [Host] interface. Package scroll provides an implementation with a smooth
// scroll engine.
//
// # Logging
//
// pixelate is silent by default. Use [SetLogger] to enable log/slog output.
package pixelate
