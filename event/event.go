// Package event implements Fortune's sweep-line event queue: a priority
// queue of site and circle events ordered by decreasing y, ties broken by
// increasing x.
package event

import (
	"container/heap"

	"github.com/arl/annulus/geom"
)

// Kind distinguishes a site event from a circle event.
type Kind byte

const (
	KindSite   Kind = 's'
	KindCircle Kind = 'c'
)

// ArcRef is the minimal view of a beach-line arc that a circle event needs:
// its generation at scheduling time. The beachline package's arc type
// implements this. Declaring the interface here, rather than importing
// beachline directly, avoids the circular dependency the source has between
// beach_line.h (which forward-declares CircleEvent) and event.h (which
// forward-declares LeafNode): per spec's generation-counter design, a circle
// event only ever needs to ask "has my arc moved on", never to reach back
// into beach-line internals.
type ArcRef interface {
	Generation() uint64
}

// Event is a single site or circle event.
type Event struct {
	X, Y float64
	Kind Kind

	// Site identifies the input site for a site event.
	Site int

	// Center is the circumcenter for a circle event.
	Center geom.Point

	// Arc is the disappearing arc and Generation is its generation at the
	// time this event was scheduled, for a circle event. The event is a
	// false alarm if Arc.Generation() != Generation by the time it is
	// popped.
	Arc        ArcRef
	Generation uint64
}

// NewSite returns a site event for the given site at point p.
func NewSite(p geom.Point, site int) Event {
	return Event{X: p.X, Y: p.Y, Kind: KindSite, Site: site}
}

// NewCircle returns a circle event at the circle's bottom y, with center c,
// scheduled against arc at its current generation.
func NewCircle(y float64, c geom.Point, arc ArcRef) Event {
	return Event{X: c.X, Y: y, Kind: KindCircle, Center: c, Arc: arc, Generation: arc.Generation()}
}

// FalseAlarm reports whether a circle event's arc has moved on since it was
// scheduled (inserted into, or deleted from, the beach line), making the
// event stale.
func (e Event) FalseAlarm() bool {
	return e.Kind == KindCircle && e.Arc.Generation() != e.Generation
}

// less reports whether a sorts before b in pop order: larger y first, ties
// broken by smaller x first.
func less(a, b Event) bool {
	if a.Y == b.Y {
		return a.X < b.X
	}
	return a.Y > b.Y
}

// Queue is a priority queue of Events ordered for Fortune's sweep: the next
// Pop always returns the event with the largest y (ties broken by smallest
// x).
type Queue struct {
	items items
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	heap.Init(&q.items)
	return q
}

// Push inserts e into the queue.
func (q *Queue) Push(e Event) {
	heap.Push(&q.items, e)
}

// Pop removes and returns the next event in sweep order. It panics if the
// queue is empty; callers must check Empty first.
func (q *Queue) Pop() Event {
	return heap.Pop(&q.items).(Event)
}

// Empty reports whether the queue has no events left.
func (q *Queue) Empty() bool {
	return len(q.items) == 0
}

// Len returns the number of events currently queued.
func (q *Queue) Len() int {
	return len(q.items)
}

// items implements container/heap.Interface over a slice of Event.
type items []Event

func (it items) Len() int            { return len(it) }
func (it items) Less(i, j int) bool  { return less(it[i], it[j]) }
func (it items) Swap(i, j int)       { it[i], it[j] = it[j], it[i] }
func (it *items) Push(x interface{}) { *it = append(*it, x.(Event)) }
func (it *items) Pop() interface{} {
	old := *it
	n := len(old)
	e := old[n-1]
	*it = old[:n-1]
	return e
}
