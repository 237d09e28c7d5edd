// Package model holds the pipeline's shared state: the input sites, the
// convex hull, both DCELs, the sweep-line position, the candidate list and
// the winning annulus, all guarded by one mutex. Every mutation of the
// model's contents is expected to hold the mutex for the duration of the
// structural step it belongs to (a full incremental insertion, a Fortune
// event handler, a bounding-box pass), matching the teacher's own
// single-coarse-lock philosophy.
package model

import (
	"sort"
	"sync"

	"github.com/arl/annulus/dcel"
	"github.com/arl/annulus/geom"
)

// Model is the shared state threaded through the pipeline.
type Model struct {
	mu sync.Mutex

	points []geom.Point
	hull   []geom.Point

	sweepY float64

	VoronoiDcel   *dcel.Dcel
	FPVoronoiDcel *dcel.Dcel

	annulus    geom.Annulus
	candidates []geom.Annulus
}

// New builds a Model over points, with the nearest-Voronoi sweep line
// primed above every site, and both DCELs allocated empty.
func New(points []geom.Point) *Model {
	m := &Model{
		points:        points,
		VoronoiDcel:   dcel.New(),
		FPVoronoiDcel: dcel.New(),
		annulus:       geom.UnsetAnnulus(),
	}
	m.initSweepY()
	return m
}

func (m *Model) initSweepY() {
	y := m.points[0].Y + 10
	for _, p := range m.points {
		if p.Y+10 > y {
			y = p.Y + 10
		}
	}
	m.sweepY = y
}

// Lock acquires the model's mutex for the duration of a structural step.
func (m *Model) Lock() {
	m.mu.Lock()
}

// Unlock releases the model's mutex.
func (m *Model) Unlock() {
	m.mu.Unlock()
}

// SweepY returns the current nearest-Voronoi sweep-line position. Callers
// mutating shared state must hold the lock; this getter does not take it
// itself so producers can read-then-write atomically across one critical
// section.
func (m *Model) SweepY() float64 {
	return m.sweepY
}

// SetSweepY updates the sweep-line position.
func (m *Model) SetSweepY(y float64) {
	m.sweepY = y
}

// Points returns the input site set, input order.
func (m *Model) Points() []geom.Point {
	return m.points
}

// Point returns the input site at idx.
func (m *Model) Point(idx int) geom.Point {
	return m.points[idx]
}

// NumSites returns len(Points()).
func (m *Model) NumSites() int {
	return len(m.points)
}

// Hull returns the convex hull in CCW order, as computed for the
// farthest-point diagram.
func (m *Model) Hull() []geom.Point {
	return m.hull
}

// SetHull records the convex hull.
func (m *Model) SetHull(hull []geom.Point) {
	m.hull = hull
}

// HullPoint returns the hull vertex at idx.
func (m *Model) HullPoint(idx int) geom.Point {
	return m.hull[idx]
}

// AddAnnulusCandidate appends a to the candidate list.
func (m *Model) AddAnnulusCandidate(a geom.Annulus) {
	m.candidates = append(m.candidates, a)
}

// Candidates returns every candidate annulus recorded so far.
func (m *Model) Candidates() []geom.Annulus {
	return m.candidates
}

// FindBestAnnulus sorts the candidates ascending by width and records the
// narrowest as the winning annulus. It asserts the candidate list is
// non-empty: per the documented n>=2 domain, at least the edge-intersection
// family always produces one for a well-formed input.
func (m *Model) FindBestAnnulus() {
	assertNonEmptyCandidates(m.candidates)
	sort.Slice(m.candidates, func(i, j int) bool {
		return m.candidates[i].Width() < m.candidates[j].Width()
	})
	m.annulus = m.candidates[0]
}

// Annulus returns the winning annulus (the sentinel UnsetAnnulus before
// FindBestAnnulus runs).
func (m *Model) Annulus() geom.Annulus {
	return m.annulus
}
