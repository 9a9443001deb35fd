// SPDX-License-Identifier: MIT
// Package multistart: bounded fan-out of independent attempts.

package multistart

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

const panicWorkers = "multistart: WithWorkers requires n ≥ 1"

// Attempt performs one optimization and reports it. Index and ID are filled
// in by the Session when left zero.
type Attempt func(ctx context.Context) Run

// Observer receives every finished run and every selection.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveRun(Run)
	ObserveSelection(Selection)
}

// Option configures a Session.
type Option func(*Session)

// WithWorkers bounds concurrent attempts. Default GOMAXPROCS.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkers)
	}
	return func(s *Session) { s.workers = n }
}

// WithLogger attaches a structured logger. Default is zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithObserver attaches an observer (e.g. a metrics collector).
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// Session executes attempts. It holds no per-run state and may be reused.
type Session struct {
	workers  int
	logger   zerolog.Logger
	observer Observer
}

// NewSession builds a Session.
func NewSession(opts ...Option) *Session {
	s := &Session{workers: runtime.GOMAXPROCS(0), logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.logger = s.logger.With().Str("component", "multistart").Logger()
	return s
}

// Run executes every attempt and returns the runs in attempt order.
//
// Contract:
//   - Run.Index is the attempt's position in attempts.
//   - A panic inside an attempt becomes Run.Err wrapping ErrAttemptPanicked.
//   - Attempts not started before ctx is done report ctx.Err() without running.
func (s *Session) Run(ctx context.Context, attempts []Attempt) []Run {
	p := pool.NewWithResults[Run]().WithMaxGoroutines(s.workers)
	for i, a := range attempts {
		p.Go(func() Run { return s.execute(ctx, i, a) })
	}
	runs := p.Wait()
	sort.Slice(runs, func(a, b int) bool { return runs[a].Index < runs[b].Index })
	return runs
}

// RunAndSelect executes attempts and reduces them with c.
func (s *Session) RunAndSelect(ctx context.Context, attempts []Attempt, c Criteria) ([]Run, Selection) {
	runs := s.Run(ctx, attempts)
	sel := Select(runs, c)

	ev := s.logger.Info()
	if !sel.Valid {
		ev = s.logger.Warn().Err(sel.Err)
	}
	ev.Int("runs", sel.Stats.Total).
		Int("valid", sel.Stats.Valid).
		Float64("quality", sel.Quality).
		Float64("deviation", sel.Deviation).
		Str("run_id", sel.Best.ID.String()).
		Msg("selection")
	if s.observer != nil {
		s.observer.ObserveSelection(sel)
	}
	return runs, sel
}

func (s *Session) execute(ctx context.Context, i int, a Attempt) (r Run) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			r = failedRun(fmt.Errorf("attempt %d: %v: %w", i, rec, ErrAttemptPanicked))
		}
		r.Index = i
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		if r.Elapsed == 0 {
			r.Elapsed = time.Since(start)
		}
		s.logger.Debug().
			Int("attempt", i).
			Str("run_id", r.ID.String()).
			Str("ansatz", r.Circuit).
			Str("optimizer", r.Optimizer.String()).
			Bool("converged", r.Converged).
			Float64("cost", r.Cost).
			Int("iterations", r.Iterations).
			Err(r.Err).
			Msg("attempt finished")
		if s.observer != nil {
			s.observer.ObserveRun(r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return failedRun(err)
	}
	if a == nil {
		return failedRun(fmt.Errorf("attempt %d: %w", i, ErrNilAttempt))
	}
	return a(ctx)
}

func failedRun(err error) Run {
	return Run{Cost: math.NaN(), Err: multistartErrorf(opAttempt, err)}
}
