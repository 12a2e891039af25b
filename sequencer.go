// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixelate

import (
	"sync"
	"time"

	"github.com/gogpu/pixelate/internal/clock"
)

// Scheduler runs callbacks after a delay. Timer cancels one scheduled callback.
type (
	Scheduler = clock.Scheduler
	Timer     = clock.Timer
)

// Default step delays. The first delay is longer so the coarsest state
// registers before sharpening starts.
const (
	DefaultFirstDelay = 300 * time.Millisecond
	DefaultStepDelay  = 80 * time.Millisecond
)

// Phase is the state of a Sequencer.
type Phase uint8

const (
	// PhaseIdle is the state before the run is triggered.
	PhaseIdle Phase = iota

	// PhaseRunning means steps are being rendered.
	PhaseRunning

	// PhaseDone means the last level has been rendered.
	PhaseDone
)

// String returns a string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhaseDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Sequencer walks a Sequence once, rendering each level after a delay.
//
// The cursor is the index of the level currently shown. It starts at 0,
// never decreases and ends at Len()-1. The render callback is invoked
// without holding the sequencer lock; the cursor moves only after it returns.
type Sequencer struct {
	mu sync.Mutex

	seq         Sequence
	first, step time.Duration
	sched       Scheduler
	render      func(level int)

	phase    Phase
	cursor   int
	rendered int // renders performed by the run
	timer    Timer
	stopped  bool
	done     chan struct{}
}

// NewSequencer creates an idle sequencer. render is called once per step
// with the level to draw.
func NewSequencer(seq Sequence, sched Scheduler, first, step time.Duration, render func(level int)) *Sequencer {
	if sched == nil {
		sched = clock.Real{}
	}
	return &Sequencer{
		seq:    seq,
		first:  first,
		step:   step,
		sched:  sched,
		render: render,
		done:   make(chan struct{}),
	}
}

// Start triggers the run. Only the first call has an effect; it reports
// whether the run was started.
func (s *Sequencer) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseIdle || s.stopped {
		return false
	}
	s.phase = PhaseRunning
	Logger().Debug("pixelate: reveal started", "steps", s.seq.Len())
	s.timer = s.sched.AfterFunc(s.first, s.fire)
	return true
}

// fire renders the next level and schedules the following step.
func (s *Sequencer) fire() {
	s.mu.Lock()
	if s.phase != PhaseRunning || s.stopped {
		s.mu.Unlock()
		return
	}
	next := s.rendered
	s.timer = nil
	s.mu.Unlock()

	s.render(s.seq.Level(next))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = next
	s.rendered = next + 1
	if s.rendered >= s.seq.Len() {
		s.cursor = s.seq.Len() - 1
		s.phase = PhaseDone
		close(s.done)
		Logger().Info("pixelate: reveal done", "level", s.seq.Level(s.cursor))
		return
	}
	if s.stopped {
		return
	}
	s.timer = s.sched.AfterFunc(s.step, s.fire)
}

// Stop cancels the pending step, if any. A stopped sequencer never renders
// again and cannot be started.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Cursor returns the index of the level currently shown.
func (s *Sequencer) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Level returns the level currently shown.
func (s *Sequencer) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Level(s.cursor)
}

// Phase returns the sequencer state.
func (s *Sequencer) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Done is closed when the last level has been rendered.
func (s *Sequencer) Done() <-chan struct{} {
	return s.done
}
