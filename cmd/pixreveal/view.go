// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/pixelate"
	"github.com/gogpu/pixelate/scroll"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	lineStep      = 3
	wheelStep     = 2
)

var (
	titleStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	hintStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// viewer scrolls a page of reveal blocks in the terminal.
type viewer struct {
	screen     tcell.Screen
	engine     *scroll.Engine
	triggers   *scroll.Triggers
	host       *scroll.Host
	doc        *termDocument
	page       *pixelate.Page
	blocks     []*termBlock
	cols, rows int
}

func newViewer(screen tcell.Screen, srcs []string, opts ...pixelate.Option) (*viewer, error) {
	v := &viewer{
		screen: screen,
		engine: scroll.NewEngine(scroll.DefaultLerp),
		doc:    &termDocument{},
	}
	v.cols, v.rows = screen.Size()

	blocks := make([]pixelate.Block, len(srcs))
	for i, src := range srcs {
		b := newTermBlock(i, src)
		b.layout(v.cols, v.rows)
		v.blocks = append(v.blocks, b)
		blocks[i] = b
	}

	v.triggers = scroll.NewTriggers(float64(v.rows))
	v.triggers.Follow(v.engine)
	v.host = scroll.NewHost(v.triggers, func(b pixelate.Block) scroll.Rect {
		return b.(*termBlock).rect()
	})
	v.engine.SetLimit(v.limit())

	page, err := pixelate.NewPage(v.doc, blocks, append([]pixelate.Option{pixelate.WithHost(v.host)}, opts...)...)
	if err != nil {
		return nil, err
	}
	v.page = page
	return v, nil
}

// limit is the largest scroll position: the document is one intro screen
// plus one screen per block.
func (v *viewer) limit() float64 {
	return float64(len(v.blocks) * v.rows)
}

// view runs the interactive viewer until the user quits or ctx is done.
func view(ctx context.Context, srcs []string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	v, err := newViewer(screen, srcs)
	if err != nil {
		return err
	}
	defer v.page.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := v.page.Run(ctx); err != nil {
			pixelate.Logger().Warn("pixreveal: some images failed", "err", err)
		}
	}()

	return v.run(ctx)
}

func (v *viewer) run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !v.handle(ev) {
				return nil
			}
		case <-ticker.C:
			v.engine.Raf()
			v.draw()
		}
	}
}

// handle applies one input event. It returns false when the viewer should
// exit.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			v.engine.ScrollBy(-lineStep)
		case tcell.KeyDown:
			v.engine.ScrollBy(lineStep)
		case tcell.KeyPgUp:
			v.engine.ScrollBy(-float64(v.rows))
		case tcell.KeyPgDn:
			v.engine.ScrollBy(float64(v.rows))
		case tcell.KeyHome:
			v.engine.ScrollTo(0)
		case tcell.KeyEnd:
			v.engine.ScrollTo(v.limit())
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ', 'j':
				v.engine.ScrollBy(lineStep)
			case 'k':
				v.engine.ScrollBy(-lineStep)
			}
		}

	case *tcell.EventMouse:
		switch btn := ev.Buttons(); {
		case btn&tcell.WheelUp != 0:
			v.engine.ScrollBy(-wheelStep)
		case btn&tcell.WheelDown != 0:
			v.engine.ScrollBy(wheelStep)
		}

	case *tcell.EventResize:
		v.screen.Sync()
		v.resize(v.screen.Size())
	}
	return true
}

// resize lays the blocks out for a cols x rows terminal and lets the
// controllers refit their surfaces.
func (v *viewer) resize(cols, rows int) {
	if cols == v.cols && rows == v.rows {
		return
	}
	v.cols, v.rows = cols, rows
	for _, b := range v.blocks {
		b.layout(cols, rows)
	}
	v.engine.SetLimit(v.limit())
	v.host.Resize(float64(rows))
}

func (v *viewer) draw() {
	v.screen.Clear()
	clip := image.Rect(0, 0, v.cols, v.rows-1)
	pos := v.engine.Position()

	intro := int(math.Round(-pos))
	if intro+v.rows > 0 {
		drawCentered(v.screen, v.cols, intro+v.rows/2-1, "pixreveal", titleStyle)
		drawCentered(v.screen, v.cols, intro+v.rows/2+1, "scroll with the wheel, arrows or PgUp/PgDn; q quits", hintStyle)
	}

	for _, b := range v.blocks {
		r := b.rect()
		top := int(math.Round(r.Top - pos))
		if top >= v.rows || top+v.rows <= 0 {
			continue
		}
		s, visible, yPercent := b.state()
		if visible && s != nil {
			s.View(func(img *image.RGBA) {
				blit(v.screen, img, 0, top, clip)
			})
		}
		ty := top + v.rows/2 + int(math.Round(yPercent/100*float64(v.rows)/2))
		if ty >= clip.Min.Y && ty < clip.Max.Y {
			drawCentered(v.screen, v.cols, ty, " "+b.title+" ", titleStyle)
		}
	}

	v.drawStatus()
	v.screen.Show()
}

func (v *viewer) drawStatus() {
	y := v.rows - 1
	for x := 0; x < v.cols; x++ {
		v.screen.SetContent(x, y, ' ', nil, statusStyle)
	}
	status := fmt.Sprintf(" %d images  scroll %.0f/%.0f", len(v.blocks), v.engine.Position(), v.limit())
	if v.doc.Loading() {
		status += "  loading..."
	}
	for i, c := range v.page.Controllers() {
		status += fmt.Sprintf("  #%d %s", i+1, c.State())
		if c.State() == pixelate.StateReady {
			status += fmt.Sprintf(" p=%d", c.Level())
		}
	}
	drawText(v.screen, 0, y, status, statusStyle)
}
