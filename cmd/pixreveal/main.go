// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command pixreveal plays the pixelate reveal for a list of images in the
// terminal, or writes every frame of one reveal to PNG files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/pixelate"
)

func main() {
	var (
		frames  = flag.String("frames", "", "write every frame of the first image to this directory instead of opening the viewer")
		width   = flag.Int("width", 800, "frame width for -frames")
		height  = flag.Int("height", 600, "frame height for -frames")
		scale   = flag.Float64("scale", 1, "device pixel ratio for -frames")
		logFile = flag.String("log", "", "write debug logs to this file")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: pixreveal [flags] image...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatalf("Failed to open log: %v", err)
		}
		defer f.Close()
		pixelate.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *frames != "" {
		n, err := exportFrames(ctx, flag.Arg(0), *frames, *width, *height, *scale)
		if err != nil {
			log.Fatalf("Failed to export frames: %v", err)
		}
		log.Printf("Wrote %d frames to %s (%dx%d)\n", n, *frames, *width, *height)
		return
	}

	if err := view(ctx, flag.Args()); err != nil {
		log.Fatalf("Viewer failed: %v", err)
	}
}
