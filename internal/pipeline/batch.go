package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// BatchResult pairs one transcript's interpretation with its input index.
type BatchResult struct {
	Index  int
	Result *Result
	Err    error
}

// Monitor receives batch progress callbacks.
type Monitor interface {
	OnStart(total int)
	OnProgress(done, total int)
	OnComplete(done, failed int)
}

// NopMonitor discards all progress callbacks.
type NopMonitor struct{}

func (NopMonitor) OnStart(int) {}

func (NopMonitor) OnProgress(int, int) {}

func (NopMonitor) OnComplete(int, int) {}

// Batch interprets transcripts across the given number of workers and
// returns results in input order. Hands are independent, so no
// synchronization is needed beyond collecting results; a failed hand is
// recorded in its slot and never aborts the rest of the batch.
func (ip *Interpreter) Batch(ctx context.Context, raws []string, workers int, monitor Monitor) []BatchResult {
	if workers < 1 {
		workers = 1
	}
	if monitor == nil {
		monitor = NopMonitor{}
	}

	results := make([]BatchResult, len(raws))
	var done atomic.Int64
	monitor.OnStart(len(raws))

	progressCtx, stopProgress := context.WithCancel(ctx)
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		ticker := ip.clock.NewTicker(progressInterval, "batch-progress")
		defer ticker.Stop()
		for {
			select {
			case <-progressCtx.Done():
				return
			case <-ticker.C:
				monitor.OnProgress(int(done.Load()), len(raws))
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, raw := range raws {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = BatchResult{Index: i, Err: err}
				return nil
			}
			result, err := ip.Interpret(raw)
			results[i] = BatchResult{Index: i, Result: result, Err: err}
			done.Add(1)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors, failures live in results

	stopProgress()
	<-progressDone

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	monitor.OnComplete(int(done.Load()), failed)
	return results
}

const progressInterval = 2 * time.Second

// LogMonitor logs batch progress at a fixed interval. The clock is
// injectable so tests can drive ticks deterministically.
type LogMonitor struct {
	logger   zerolog.Logger
	clock    quartz.Clock
	interval time.Duration
	started  time.Time
	total    int
}

// NewLogMonitor returns a Monitor that writes progress to the logger.
func NewLogMonitor(logger zerolog.Logger, clock quartz.Clock, interval time.Duration) *LogMonitor {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if interval <= 0 {
		interval = progressInterval
	}
	return &LogMonitor{logger: logger, clock: clock, interval: interval}
}

// OnStart implements Monitor.
func (m *LogMonitor) OnStart(total int) {
	m.total = total
	m.started = m.clock.Now()
	m.logger.Info().Int("hands", total).Msg("starting batch")
}

// OnProgress implements Monitor.
func (m *LogMonitor) OnProgress(done, total int) {
	elapsed := m.clock.Since(m.started)
	m.logger.Info().
		Int("done", done).
		Int("total", total).
		Dur("elapsed", elapsed).
		Msg("batch progress")
}

// OnComplete implements Monitor.
func (m *LogMonitor) OnComplete(done, failed int) {
	m.logger.Info().
		Int("done", done).
		Int("failed", failed).
		Dur("elapsed", m.clock.Since(m.started)).
		Msg("batch complete")
}
