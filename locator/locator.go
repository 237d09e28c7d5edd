// Package locator preprocesses a completed DCEL into vertical slabs and
// answers O(log n) face queries against it: "which site's cell contains
// this point".
package locator

import (
	"math"
	"sort"

	"github.com/arl/annulus/dcel"
	"github.com/arl/annulus/geom"
)

// info is a single line crossing a slab, annotated with the site of the face
// immediately below it and immediately above it.
type info struct {
	line                  geom.Line
	siteBelow, siteAbove int
}

// slab is one vertical strip, keyed by its right-x boundary, holding every
// line that crosses it sorted bottom to top at that boundary.
type slab struct {
	rightX float64
	lines  []info
}

// Locator answers point-location queries against one preprocessed DCEL.
type Locator struct {
	slabs []slab

	verticals bool
	vertL     int
	vertR     int
	vertX     float64
}

// New returns a Locator with no DCEL loaded yet; call Load before Locate.
func New() *Locator {
	return &Locator{}
}

// Load preprocesses d into vertical slabs. Must be called exactly once,
// after d's producer has finished (including the bounding-box pass).
func (loc *Locator) Load(d *dcel.Dcel) {
	xs := map[float64]bool{}
	maxX := d.Vertices[0].Point.X
	for _, v := range d.Vertices {
		if v.Box {
			continue
		}
		xs[v.Point.X] = true
		if v.Point.X > maxX {
			maxX = v.Point.X
		}
	}
	xs[maxX+100] = true

	sortedXs := make([]float64, 0, len(xs))
	for x := range xs {
		sortedXs = append(sortedXs, x)
	}
	sort.Float64s(sortedXs)

	loc.slabs = make([]slab, len(sortedXs))
	for i, x := range sortedXs {
		loc.slabs[i] = slab{rightX: x}
	}

	loc.verticals = true
	for _, he := range d.HalfEdges {
		if dedupKey(he) >= dedupKey(he.Twin) {
			continue
		}
		if he.Origin.Box && he.Twin.Origin.Box {
			continue
		}

		if !he.Origin.Box && !he.Twin.Origin.Box {
			loc.insertSegment(he)
		} else {
			loc.insertClipped(he)
		}
	}

	if loc.verticals {
		return
	}

	lastX := loc.slabs[0].rightX - 10
	for i := range loc.slabs {
		x := loc.slabs[i].rightX
		lx := lastX
		lines := loc.slabs[i].lines
		sort.Slice(lines, func(i, j int) bool {
			ay := lines[i].line.K*x + lines[i].line.N
			by := lines[j].line.K*x + lines[j].line.N
			if math.Abs(ay-by) < geom.Tolerance {
				ay2 := lines[i].line.K*lx + lines[i].line.N
				by2 := lines[j].line.K*lx + lines[j].line.N
				return ay2 < by2
			}
			return ay < by
		})
		lastX = x
	}
}

// dedupKey returns a stable ordering key for a half-edge's incident face,
// used to visit each undirected edge exactly once. The original source
// compares raw pointers (he->incident_face < he->twin->incident_face), which
// is nondeterministic across runs; this uses the smaller of the two incident
// sites instead, per the documented fix for this open question.
func dedupKey(he *dcel.HalfEdge) int {
	return he.Incident.Site
}

// insertSegment inserts an edge with both endpoints on the diagram proper
// into every slab between its left and right endpoint x.
func (loc *Locator) insertSegment(he *dcel.HalfEdge) {
	if he.Origin.Point.X > he.Twin.Origin.Point.X {
		he = he.Twin
	}
	start := loc.lowerBound(he.Origin.Point.X)
	start++
	r := he.Twin.Origin.Point.X
	for i := start; i < len(loc.slabs); i++ {
		if loc.slabs[i].rightX < r || math.Abs(loc.slabs[i].rightX-r) < geom.Tolerance {
			loc.slabs[i].lines = append(loc.slabs[i].lines, info{
				line:      he.Line,
				siteBelow: he.Incident.Site,
				siteAbove: he.Twin.Incident.Site,
			})
			loc.verticals = false
			continue
		}
		break
	}
}

// insertClipped inserts a half-infinite edge, cut short by the box at one
// end, into every slab from its real endpoint outward in the direction given
// by its Dir tag.
func (loc *Locator) insertClipped(he *dcel.HalfEdge) {
	if he.Origin.Box {
		he = he.Twin
	}
	if he.Line.Vertical {
		if he.Line.Dir == geom.DirDown {
			loc.vertL = he.Incident.Site
			loc.vertR = he.Twin.Incident.Site
		} else {
			loc.vertL = he.Twin.Incident.Site
			loc.vertR = he.Incident.Site
		}
		loc.vertX = he.Line.X
		return
	}

	idx := loc.lowerBound(he.Origin.Point.X)
	if he.Line.Dir == geom.DirRight {
		idx++
	}
	for idx >= 0 && idx < len(loc.slabs) {
		siteBelow, siteAbove := he.Twin.Incident.Site, he.Incident.Site
		if he.Line.Dir == geom.DirRight {
			siteBelow, siteAbove = he.Incident.Site, he.Twin.Incident.Site
		}
		loc.slabs[idx].lines = append(loc.slabs[idx].lines, info{
			line:      he.Line,
			siteBelow: siteBelow,
			siteAbove: siteAbove,
		})
		loc.verticals = false

		if he.Line.Dir == geom.DirRight {
			idx++
		} else {
			if idx == 0 {
				break
			}
			idx--
		}
	}
}

// lowerBound returns the index of the first slab whose rightX >= x.
func (loc *Locator) lowerBound(x float64) int {
	return sort.Search(len(loc.slabs), func(i int) bool {
		return loc.slabs[i].rightX >= x
	})
}

// Locate returns the site index of the face containing pt.
func (loc *Locator) Locate(pt geom.Point) int {
	if loc.verticals {
		if pt.X <= loc.vertX {
			return loc.vertL
		}
		return loc.vertR
	}

	idx := loc.lowerBound(pt.X)
	if idx == len(loc.slabs) {
		idx--
	}
	lines := loc.slabs[idx].lines

	lo, hi := 0, len(lines)-1
	for lo < hi {
		pivot := (lo + hi) / 2
		y := lines[pivot].line.K*pt.X + lines[pivot].line.N
		if y >= pt.Y {
			hi = pivot
		} else {
			lo = pivot + 1
		}
	}

	y := lines[lo].line.K*pt.X + lines[lo].line.N
	if y > pt.Y {
		return lines[lo].siteBelow
	}
	return lines[len(lines)-1].siteAbove
}
