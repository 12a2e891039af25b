// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// upperHalf draws the top pixel in the foreground and the bottom pixel in
// the background of one cell.
const upperHalf = '▀'

type cellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// blit draws img with its top left corner at cell (x0, y0). Cells outside
// clip are skipped.
func blit(dst cellSetter, img *image.RGBA, x0, y0 int, clip image.Rectangle) {
	b := img.Bounds()
	for py := b.Min.Y; py < b.Max.Y; py += 2 {
		y := y0 + (py-b.Min.Y)/2
		if y < clip.Min.Y || y >= clip.Max.Y {
			continue
		}
		for px := b.Min.X; px < b.Max.X; px++ {
			x := x0 + px - b.Min.X
			if x < clip.Min.X || x >= clip.Max.X {
				continue
			}
			top := rgb(img, px, py)
			bottom := tcell.ColorBlack
			if py+1 < b.Max.Y {
				bottom = rgb(img, px, py+1)
			}
			dst.SetContent(x, y, upperHalf, nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
}

func rgb(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// drawText writes s starting at cell (x, y) and returns the column after it.
func drawText(dst cellSetter, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		dst.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

// drawCentered writes s centered on row y of a width columns wide area.
func drawCentered(dst cellSetter, width, y int, s string, style tcell.Style) {
	x := (width - runewidth.StringWidth(s)) / 2
	drawText(dst, max(x, 0), y, s, style)
}
