// Package engine orchestrates the pipeline: it launches the nearest-point
// and farthest-point Voronoi producers as independent goroutines, waits for
// both to finish via one-shot completion handles, then runs the annulus
// finder consumer. Grounded on main.cc's three-std::async dance: two
// producer futures launched concurrently, a third stage blocking on both
// before merging.
package engine

import (
	"time"

	"github.com/arl/annulus/annulus"
	"github.com/arl/annulus/fpvoronoi"
	"github.com/arl/annulus/model"
	"github.com/arl/annulus/voronoi"
)

// Future is a one-shot completion handle for a producer goroutine: the Go
// rendition of the source's std::future<void>. It is resolved exactly once,
// by the goroutine that owns it, and Wait may be called any number of times
// by any number of waiters.
type Future struct {
	done chan struct{}
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve() {
	close(f.done)
}

// Wait blocks until the producer that owns f has finished.
func (f *Future) Wait() {
	<-f.done
}

// Run builds the nearest-point and farthest-point Voronoi diagrams of m's
// sites concurrently, then merges them into the winning annulus. It blocks
// until the whole pipeline has run to completion; there is no cancellation
// and no timeout.
func Run(m *model.Model, ctx *model.BuildContext, s Settings) {
	nearest, farthest := RunProducers(m, ctx, s)
	nearest.Wait()
	farthest.Wait()

	annulus.New(m, ctx).Find()
}

// RunProducers launches the two producers and returns their completion
// handles without waiting on them, for callers (tests, the viewer) that
// want to observe the model mid-build.
func RunProducers(m *model.Model, ctx *model.BuildContext, s Settings) (nearest, farthest *Future) {
	nearest = newFuture()
	farthest = newFuture()

	go func() {
		defer nearest.resolve()
		voronoi.New(m, ctx).Build()
	}()
	go func() {
		defer farthest.resolve()
		fpv := fpvoronoi.New(m, ctx, s.Seed)
		fpv.InsertDelay = time.Duration(s.InsertDelayMs) * time.Millisecond
		fpv.Build()
	}()

	return nearest, farthest
}
