// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixelate

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/pixelate/internal/clock"
	"github.com/gogpu/pixelate/internal/imageio"
)

type fakeDocument struct {
	mu      sync.Mutex
	changes []bool
}

func (d *fakeDocument) SetLoading(loading bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.changes = append(d.changes, loading)
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

type countingLoader struct {
	next  Loader
	calls atomic.Int32
}

func (l *countingLoader) Load(ctx context.Context, src string) (image.Image, error) {
	l.calls.Add(1)
	return l.next.Load(ctx, src)
}

func TestPageRun(t *testing.T) {
	loader := &countingLoader{next: imageio.BytesLoader{
		"a.png": pngBytes(t, gradientImage(40, 20)),
		"b.png": pngBytes(t, gradientImage(20, 40)),
	}}
	blocks := []*fakeBlock{
		newFakeBlock("a.png", 400, 300),
		newFakeBlock("missing.png", 400, 300),
		newFakeBlock("b.png", 400, 300),
	}
	doc := &fakeDocument{}
	host := newFakeHost()
	m := clock.NewManual(epoch)

	page, err := NewPage(doc, []Block{blocks[0], blocks[1], blocks[2]},
		WithLoader(loader), WithHost(host), WithScheduler(m))
	if err != nil {
		t.Fatalf("NewPage() error = %v", err)
	}
	defer page.Close()

	err = page.Run(waitCtx(t))
	if !errors.Is(err, ErrLoadFailed) || !errors.Is(err, imageio.ErrNotFound) {
		t.Fatalf("Run() error = %v, want ErrLoadFailed for the missing block", err)
	}

	if diff := cmp.Diff([]bool{true, false}, doc.changes); diff != "" {
		t.Errorf("loading flag changes (-want +got):\n%s", diff)
	}

	cs := page.Controllers()
	wantStates := []State{StateReady, StateFailed, StateReady}
	for i, c := range cs {
		if got := c.State(); got != wantStates[i] {
			t.Errorf("controller %d State() = %v, want %v", i, got, wantStates[i])
		}
	}

	// The failing block does not hold back its siblings.
	host.Enter()
	m.Advance(DefaultFirstDelay + 4*DefaultStepDelay)
	for _, i := range []int{0, 2} {
		if cs[i].Phase() != PhaseDone {
			t.Errorf("controller %d Phase() = %v, want Done", i, cs[i].Phase())
		}
	}
	if cs[1].Renders() != 0 {
		t.Errorf("failed controller rendered %d times", cs[1].Renders())
	}

	// Two successful sources decoded once each; the missing one is retried.
	if got := loader.calls.Load(); got < 3 || got > 4 {
		t.Errorf("underlying loads = %d, want 3 or 4", got)
	}
}

// TestPageRunClosedController tests that a controller that cannot start
// neither stops its siblings nor leaves the document loading.
func TestPageRunClosedController(t *testing.T) {
	loader := imageio.BytesLoader{
		"a.png": pngBytes(t, gradientImage(40, 20)),
		"b.png": pngBytes(t, gradientImage(20, 40)),
		"c.png": pngBytes(t, gradientImage(30, 30)),
	}
	doc := &fakeDocument{}
	page, err := NewPage(doc, []Block{
		newFakeBlock("a.png", 400, 300),
		newFakeBlock("b.png", 400, 300),
		newFakeBlock("c.png", 400, 300),
	}, WithLoader(loader), WithHost(newFakeHost()), WithScheduler(clock.NewManual(epoch)))
	if err != nil {
		t.Fatalf("NewPage() error = %v", err)
	}
	defer page.Close()

	cs := page.Controllers()
	cs[0].Close()

	err = page.Run(waitCtx(t))
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("Run() error = %v, want ErrClosed", err)
	}
	if diff := cmp.Diff([]bool{true, false}, doc.changes); diff != "" {
		t.Errorf("loading flag changes (-want +got):\n%s", diff)
	}
	wantStates := []State{StateClosed, StateReady, StateReady}
	for i, c := range cs {
		if got := c.State(); got != wantStates[i] {
			t.Errorf("controller %d State() = %v, want %v", i, got, wantStates[i])
		}
	}
}

func TestNewPageInvalidOptions(t *testing.T) {
	_, err := NewPage(nil, []Block{newFakeBlock("a.png", 1, 1)}, WithSequence())
	if !errors.Is(err, ErrInvalidSequence) {
		t.Errorf("NewPage() error = %v, want ErrInvalidSequence", err)
	}
}

func TestCacheLoader(t *testing.T) {
	counting := &countingLoader{next: staticLoader(gradientImage(4, 4))}
	l := CacheLoader(counting)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Load(context.Background(), "same.png"); err != nil {
				t.Errorf("Load() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if got := counting.calls.Load(); got != 1 {
		t.Errorf("underlying loads = %d, want 1", got)
	}
	if CacheLoader(l) != l {
		t.Error("CacheLoader() wrapped an already cached loader")
	}
}

func TestCacheLoaderDoesNotCacheErrors(t *testing.T) {
	counting := &countingLoader{next: failingLoader()}
	l := CacheLoader(counting)

	for range 2 {
		if _, err := l.Load(context.Background(), "x.png"); !errors.Is(err, errBroken) {
			t.Fatalf("Load() error = %v, want errBroken", err)
		}
	}
	if got := counting.calls.Load(); got != 2 {
		t.Errorf("underlying loads = %d, want 2", got)
	}
}

func TestPreloadWaitsForAll(t *testing.T) {
	var loaded atomic.Int32
	l := loaderFunc(func(_ context.Context, src string) (image.Image, error) {
		loaded.Add(1)
		if src == "bad" {
			return nil, errBroken
		}
		return gradientImage(2, 2), nil
	})

	err := Preload(context.Background(), l, []string{"a", "bad", "b", "c"})
	if !errors.Is(err, errBroken) {
		t.Errorf("Preload() error = %v, want errBroken", err)
	}
	if got := loaded.Load(); got != 4 {
		t.Errorf("loaded %d sources, want 4", got)
	}
}

func TestBoundedCacheLoader(t *testing.T) {
	counting := &countingLoader{next: staticLoader(gradientImage(4, 4))}
	l := BoundedCacheLoader(counting, 2)
	ctx := context.Background()

	for _, src := range []string{"a", "b", "a", "c", "a", "b"} {
		if _, err := l.Load(ctx, src); err != nil {
			t.Fatal(err)
		}
	}
	// a, b, c miss; the second b was evicted by c.
	if got := counting.calls.Load(); got != 4 {
		t.Errorf("underlying loads = %d, want 4", got)
	}
	if BoundedCacheLoader(l, 2) != l {
		t.Error("BoundedCacheLoader() rewrapped a loader of the same capacity")
	}
	if BoundedCacheLoader(l, 5) == l {
		t.Error("BoundedCacheLoader() reused a loader of a different capacity")
	}
}
