// Package annulus merges the nearest-point and farthest-point Voronoi
// diagrams of a Model into the minimum-width annulus enclosing its sites: it
// builds a point locator over each completed DCEL, enumerates the three
// candidate-center families spec.md §4.9 describes, records every candidate
// on the Model, and leaves the final selection to Model.FindBestAnnulus.
package annulus

import (
	"github.com/arl/annulus/dcel"
	"github.com/arl/annulus/geom"
	"github.com/arl/annulus/locator"
	"github.com/arl/annulus/model"
)

// Finder enumerates annulus candidates over a Model whose two DCELs have
// already been built by their respective producers.
type Finder struct {
	m        *model.Model
	ctx      *model.BuildContext
	nearest  *locator.Locator
	farthest *locator.Locator
}

// New returns a Finder over m. Callers must not invoke Find until both
// producers have finished (see engine.Run, which enforces this via
// completion handles).
func New(m *model.Model, ctx *model.BuildContext) *Finder {
	return &Finder{
		m:        m,
		ctx:      ctx,
		nearest:  locator.New(),
		farthest: locator.New(),
	}
}

// Find loads both point locators, enumerates all three candidate families
// onto the Model, and selects the winner.
func (f *Finder) Find() {
	f.ctx.StartTimer(model.TimerAnnulus)
	defer f.ctx.StopTimer(model.TimerAnnulus)

	f.m.Lock()
	f.nearest.Load(f.m.VoronoiDcel)
	f.farthest.Load(f.m.FPVoronoiDcel)
	f.m.Unlock()

	f.nearestVertices()
	f.farthestVertices()
	f.edgeIntersections()

	f.m.Lock()
	f.m.FindBestAnnulus()
	f.m.Unlock()

	f.ctx.Progressf("annulus solved: %d candidates, width=%.2f", len(f.m.Candidates()), f.m.Annulus().Width())
}

// nearestVertices is candidate family 1: every non-box vertex of the
// nearest-point Voronoi diagram, paired with its farthest site via the
// farthest-point locator.
func (f *Finder) nearestVertices() {
	f.m.Lock()
	defer f.m.Unlock()

	for _, v := range f.m.VoronoiDcel.Vertices {
		if v.Box {
			continue
		}
		site := v.Incident.Incident.Site
		rInner := geom.Dist(v.Point, f.m.Point(site))

		hullIdx := f.farthest.Locate(v.Point)
		rOuter := geom.Dist(v.Point, f.m.HullPoint(hullIdx))

		f.m.AddAnnulusCandidate(geom.Annulus{Center: v.Point, RInner: rInner, ROuter: rOuter})
	}
}

// farthestVertices is candidate family 2: every non-box vertex of the
// farthest-point Voronoi diagram, paired with its nearest site via the
// nearest-point locator.
func (f *Finder) farthestVertices() {
	f.m.Lock()
	defer f.m.Unlock()

	for _, v := range f.m.FPVoronoiDcel.Vertices {
		if v.Box {
			continue
		}
		hullIdx := v.Incident.Incident.Site
		rOuter := geom.Dist(v.Point, f.m.HullPoint(hullIdx))

		site := f.nearest.Locate(v.Point)
		rInner := geom.Dist(v.Point, f.m.Point(site))

		f.m.AddAnnulusCandidate(geom.Annulus{Center: v.Point, RInner: rInner, ROuter: rOuter})
	}
}

// edgeIntersections is candidate family 3: every pair of a nearest-Voronoi
// edge and a farthest-Voronoi edge whose supporting lines cross at a point
// lying on both edges.
func (f *Finder) edgeIntersections() {
	f.m.Lock()
	defer f.m.Unlock()

	nearestEdges := realEdges(f.m.VoronoiDcel)
	farthestEdges := realEdges(f.m.FPVoronoiDcel)

	for _, ne := range nearestEdges {
		for _, fe := range farthestEdges {
			if geom.Parallel(ne.Line, fe.Line) {
				continue
			}
			inter := geom.LineIntersection(ne.Line, fe.Line)
			if !onEdge(inter, ne) || !onEdge(inter, fe) {
				continue
			}

			rInner := geom.Dist(inter, f.m.Point(ne.Incident.Site))
			rOuter := geom.Dist(inter, f.m.HullPoint(fe.Incident.Site))
			f.m.AddAnnulusCandidate(geom.Annulus{Center: inter, RInner: rInner, ROuter: rOuter})
		}
	}
}

// realEdges returns one half-edge per undirected edge of d, skipping edges
// whose both endpoints are box vertices (the bounding rectangle's own
// sides, which trace no bisector). Dedup uses the smaller of the two
// incident sites as a stable key, per spec.md §9's documented fix for the
// source's nondeterministic address comparison (see locator.dedupKey).
func realEdges(d *dcel.Dcel) []*dcel.HalfEdge {
	var out []*dcel.HalfEdge
	for _, he := range d.HalfEdges {
		if he.Origin.Box && he.Twin.Origin.Box {
			continue
		}
		if he.Incident.Site >= he.Twin.Incident.Site {
			continue
		}
		out = append(out, he)
	}
	return out
}

// onEdge reports whether p, already known to lie on he's supporting line,
// lies within he's actual extent: a half-line side-check for an edge
// clipped by the box at one end, an axis-range check otherwise.
func onEdge(p geom.Point, he *dcel.HalfEdge) bool {
	if he.Origin.Box {
		return geom.CheckHalflineSide(p, he.Twin.Line, he.Twin.Origin.Point)
	}
	if he.Twin.Origin.Box {
		return geom.CheckHalflineSide(p, he.Line, he.Origin.Point)
	}
	return geom.CheckOrder(he.Origin.Point, p, he.Twin.Origin.Point)
}
