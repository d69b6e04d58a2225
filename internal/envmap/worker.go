package envmap

import (
	"context"

	"spincube/internal/background"
	"spincube/internal/config"
	"spincube/internal/logger"
)

// job is one render request. cfg is a snapshot owned by the worker goroutine.
type job struct {
	cfg *config.Config
	sky background.Uniforms
}

// Worker regenerates environment maps on one background goroutine.
// Sky setters, UpdateEnvironmentMap and Poll belong to the frame thread; Run owns the goroutine.
// Requests and results each go through a one-slot mailbox where the newest entry replaces
// an unconsumed one, so a slow render never queues stale work.
type Worker struct {
	cfg *config.Config
	log *logger.Logger

	sky     background.Uniforms
	jobs    chan job
	results chan *Map
	stopped chan struct{}
	dropped int
}

func NewWorker(cfg *config.Config, log *logger.Logger) *Worker {
	return &Worker{
		cfg:     cfg,
		log:     log,
		jobs:    make(chan job, 1),
		results: make(chan *Map, 1),
		stopped: make(chan struct{}),
	}
}

func (w *Worker) SetTime(t float64)          { w.sky.Time = t }
func (w *Worker) SetCheckerScale(v float64)  { w.sky.CheckerScale = v }
func (w *Worker) SetWarpAmount(v float64)    { w.sky.WarpAmount = v }
func (w *Worker) SetWarpFrequency(v float64) { w.sky.WarpFrequency = v }
func (w *Worker) SetWarpSpeed(v float64)     { w.sky.WarpSpeed = v }
func (w *Worker) SetUVOffset(x, y float64)   { w.sky.UVOffset.X, w.sky.UVOffset.Y = x, y }

// Sky returns the uniforms most recently set.
func (w *Worker) Sky() background.Uniforms { return w.sky }

// UpdateEnvironmentMap snapshots the sky and the configuration and queues a render.
func (w *Worker) UpdateEnvironmentMap(elapsed float64) {
	j := job{cfg: w.cfg.Clone(), sky: w.sky}
	j.sky.Time = elapsed
	j.sky.Intense = j.cfg.UseIntenseBackground
	if replaced := offer(w.jobs, j); replaced {
		w.dropped++
	}
}

// Dropped counts requests replaced before the worker picked them up.
func (w *Worker) Dropped() int { return w.dropped }

// Poll returns the newest finished map, if one arrived since the last call.
func (w *Worker) Poll() (*Map, bool) {
	select {
	case m := <-w.results:
		return m, true
	default:
		return nil, false
	}
}

// Stopped is closed once Run has returned.
func (w *Worker) Stopped() <-chan struct{} { return w.stopped }

// Run renders queued jobs until ctx is cancelled. Call it once.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.stopped)
	defer w.log.Log("envmap: worker stopped")
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-w.jobs:
			m := NewGenerator(j.cfg).Render(j.sky)
			if ctx.Err() != nil {
				return
			}
			offer(w.results, m)
		}
	}
}

// offer puts v in a one-slot channel, evicting an unread value. It reports whether one was evicted.
// Only one goroutine may send on ch.
func offer[T any](ch chan T, v T) bool {
	replaced := false
	for {
		select {
		case ch <- v:
			return replaced
		default:
		}
		select {
		case <-ch:
			replaced = true
		default:
		}
	}
}
