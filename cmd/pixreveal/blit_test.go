// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func simScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func cellColors(s tcell.Screen, x, y int) (r rune, fg, bg tcell.Color) {
	r, _, style, _ := s.GetContent(x, y)
	fg, bg, _ = style.Decompose()
	return r, fg, bg
}

func TestBlit(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{G: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{B: 255, A: 255})
	img.SetRGBA(1, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	s := simScreen(t, 10, 5)
	blit(s, img, 3, 1, image.Rect(0, 0, 10, 5))

	tests := []struct {
		x, y    int
		fg, bg  tcell.Color
		comment string
	}{
		{3, 1, tcell.NewRGBColor(255, 0, 0), tcell.NewRGBColor(0, 255, 0), "red over green"},
		{4, 1, tcell.NewRGBColor(0, 0, 255), tcell.NewRGBColor(0, 0, 0), "blue over empty"},
		{4, 2, tcell.NewRGBColor(10, 20, 30), tcell.ColorBlack, "odd last row"},
	}
	for _, tt := range tests {
		r, fg, bg := cellColors(s, tt.x, tt.y)
		if r != upperHalf || fg != tt.fg || bg != tt.bg {
			t.Errorf("%s: cell (%d,%d) = %q fg %v bg %v, want %q fg %v bg %v",
				tt.comment, tt.x, tt.y, r, fg, bg, upperHalf, tt.fg, tt.bg)
		}
	}
	if r, _, _ := cellColors(s, 2, 1); r == upperHalf {
		t.Error("blit drew left of its origin")
	}
}

func TestBlitClip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 8))
	s := simScreen(t, 10, 10)
	blit(s, img, -1, -2, image.Rect(0, 0, 2, 1))

	for y := range 10 {
		for x := range 10 {
			r, _, _ := cellColors(s, x, y)
			inside := x < 2 && y < 1
			if (r == upperHalf) != inside {
				t.Errorf("cell (%d,%d) drawn = %v, want %v", x, y, r == upperHalf, inside)
			}
		}
	}
}

func TestDrawCentered(t *testing.T) {
	s := simScreen(t, 10, 1)
	drawCentered(s, 10, 0, "abcd", tcell.StyleDefault)
	if r, _, _ := cellColors(s, 3, 0); r != 'a' {
		t.Errorf("cell 3 = %q, want 'a'", r)
	}
	if r, _, _ := cellColors(s, 6, 0); r != 'd' {
		t.Errorf("cell 6 = %q, want 'd'", r)
	}

	if next := drawText(s, 0, 0, "界x", tcell.StyleDefault); next != 3 {
		t.Errorf("drawText() next column = %d, want 3", next)
	}
}
