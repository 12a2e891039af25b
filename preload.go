// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixelate

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/gogpu/pixelate/internal/cache"
)

// Preload loads every source concurrently and returns once all of them have
// finished. A failing source does not cancel the others; the first error is
// returned after all loads complete.
func Preload(ctx context.Context, l Loader, srcs []string) error {
	var g errgroup.Group
	for _, src := range srcs {
		g.Go(func() error {
			_, err := l.Load(ctx, src)
			return err
		})
	}
	return g.Wait()
}

// CacheLoader wraps l so that each source is decoded once. Concurrent
// requests for the same source share one load; failures are not cached.
func CacheLoader(l Loader) Loader {
	return BoundedCacheLoader(l, 0)
}

// BoundedCacheLoader is CacheLoader keeping at most capacity decoded images,
// evicting the least recently used. A capacity of 0 means unlimited.
func BoundedCacheLoader(l Loader, capacity int) Loader {
	if c, ok := l.(*cacheLoader); ok && c.images.Capacity() == max(capacity, 0) {
		return c
	}
	return &cacheLoader{next: l, images: cache.New[string, image.Image](capacity)}
}

type cacheLoader struct {
	next   Loader
	group  singleflight.Group
	images *cache.Cache[string, image.Image]
}

func (l *cacheLoader) Load(ctx context.Context, src string) (image.Image, error) {
	if img, ok := l.images.Get(src); ok {
		return img, nil
	}

	v, err, _ := l.group.Do(src, func() (any, error) {
		img, err := l.next.Load(ctx, src)
		if err != nil {
			return nil, err
		}
		l.images.Set(src, img)
		st := l.images.Stats()
		Logger().Debug("pixelate: image cached", "src", src,
			"cached", st.Len, "hits", st.Hits, "misses", st.Misses, "evictions", st.Evictions)
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}
