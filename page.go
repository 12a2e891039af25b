// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixelate

import (
	"context"
	"errors"
	"fmt"
)

// Page runs one Controller per content block of a document.
//
// Run marks the document as loading, starts every controller, preloads all
// images and then clears the loading flag. Controllers are independent: one
// block failing to load does not affect the others.
type Page struct {
	doc         Document
	controllers []*Controller
	loader      Loader
}

// NewPage creates a controller for every block. The options apply to all of
// them; the loader is wrapped with CacheLoader so preloading and the
// controllers share decoded images.
func NewPage(doc Document, blocks []Block, opts ...Option) (*Page, error) {
	o := newOptions(opts)
	loader := CacheLoader(o.loader)

	p := &Page{doc: doc, loader: loader}
	opts = append(opts[:len(opts):len(opts)], WithLoader(loader))
	for i, b := range blocks {
		c, err := New(b, opts...)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		p.controllers = append(p.controllers, c)
	}
	return p, nil
}

// Controllers returns the page controllers in block order.
func (p *Page) Controllers() []*Controller {
	return p.controllers
}

// Run starts every controller and waits until each one is ready, has
// failed or ctx is done. The returned error joins the per-block failures.
func (p *Page) Run(ctx context.Context) error {
	if p.doc != nil {
		p.doc.SetLoading(true)
	}

	var errs []error
	started := make([]*Controller, 0, len(p.controllers))
	srcs := make([]string, 0, len(p.controllers))
	for _, c := range p.controllers {
		if err := c.Start(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Source(), err))
			continue
		}
		started = append(started, c)
		srcs = append(srcs, c.Source())
	}

	if err := Preload(ctx, p.loader, srcs); err != nil {
		Logger().Warn("pixelate: preload incomplete", "err", err)
	}
	if p.doc != nil {
		p.doc.SetLoading(false)
	}

	for _, c := range started {
		if err := c.Wait(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every controller.
func (p *Page) Close() {
	for _, c := range p.controllers {
		c.Close()
	}
}
