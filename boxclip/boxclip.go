// Package boxclip clips the half-infinite edges of a completed Voronoi DCEL
// against a bounding rectangle, closing every face's boundary.
package boxclip

import (
	"math"
	"sort"

	"github.com/arl/annulus/dcel"
	"github.com/arl/annulus/geom"
)

// AddBox computes a square bounding box strictly containing every site and
// already-placed vertex, clips every half-infinite edge against it, and
// connects the resulting box vertices into a closed boundary incident to
// openFace on its outward side. It returns one half-edge incident to
// openFace.
func AddBox(sites []geom.Point, openFace *dcel.Face, d *dcel.Dcel) *dcel.HalfEdge {
	box := boundingSquare(sites, d.Vertices)

	// The four corners are not yet added to the arena: every box vertex,
	// corner or clipped, is appended once below while wiring the box edges.
	boxVerts := []*dcel.Vertex{
		{Point: geom.Point{X: box.X1, Y: box.Y1}, Box: true},
		{Point: geom.Point{X: box.X2, Y: box.Y2}, Box: true},
		{Point: geom.Point{X: box.X1, Y: box.Y2}, Box: true},
		{Point: geom.Point{X: box.X2, Y: box.Y1}, Box: true},
	}

	for _, edge := range d.HalfEdges {
		if edge.Twin.Origin != nil {
			continue
		}
		inter := geom.RectHalfLineIntersection(box, edge.Line, edge.Origin.Point)

		vert := &dcel.Vertex{Point: inter, Box: true}
		isNew := true
		for _, existing := range boxVerts {
			if existing.Point.X == vert.Point.X && existing.Point.Y == vert.Point.Y {
				vert = existing
				isNew = false
				break
			}
		}
		edge.Twin.Origin = vert
		vert.Incident = edge.Twin
		if isNew {
			boxVerts = append(boxVerts, vert)
		}
	}

	mid := geom.Point{X: (box.X1 + box.X2) / 2, Y: (box.Y1 + box.Y2) / 2}
	sort.Slice(boxVerts, func(i, j int) bool {
		angA := math.Atan2(mid.Y-boxVerts[i].Point.Y, mid.X-boxVerts[i].Point.X)
		angB := math.Atan2(mid.Y-boxVerts[j].Point.Y, mid.X-boxVerts[j].Point.X)
		return angA > angB
	})

	n := len(boxVerts)
	fwds := make([]*dcel.HalfEdge, n)
	bwds := make([]*dcel.HalfEdge, n)
	faces := make([]*dcel.Face, n)
	for i := 0; i < n; i++ {
		fwds[i] = d.NewHalfEdge()
		bwds[i] = d.NewHalfEdge()

		// Looked up before the loop below gives corners an incident edge, so
		// the search stops only at vertices produced by the clipping loop.
		idx := i
		for boxVerts[idx].Incident == nil {
			idx = (idx + n - 1) % n
		}
		faces[i] = boxVerts[idx].Incident.Twin.Incident
	}

	for i := 0; i < n; i++ {
		d.Vertices = append(d.Vertices, boxVerts[i])
		iNxt := (i + 1) % n
		iPrev := (i + n - 1) % n

		fwd, bwd := fwds[i], bwds[i]
		fwd.Twin, bwd.Twin = bwd, fwd
		fwd.Origin = boxVerts[i]
		bwd.Origin = boxVerts[iNxt]

		bwd.Incident = openFace

		fwd.Incident = faces[i]

		bwds[iPrev].Prev = bwds[i]
		bwds[i].Next = bwds[iPrev]

		if boxVerts[i].Incident == nil {
			// A corner vertex the clipping loop never touched: its two
			// box half-edges are each other's neighbors.
			fwds[i].Prev = fwds[iPrev]
			fwds[iPrev].Next = fwds[i]
			boxVerts[i].Incident = fwds[i]
		} else {
			fwds[i].Prev = boxVerts[i].Incident.Twin
			boxVerts[i].Incident.Twin.Next = fwds[i]

			fwds[iPrev].Next = boxVerts[i].Incident
			boxVerts[i].Incident.Prev = fwds[iPrev]
		}
	}

	return bwds[0]
}

// boundingSquare returns the smallest axis-aligned square, padded by 50 on
// each side before squaring, that strictly contains every site and vertex.
func boundingSquare(sites []geom.Point, vertices []*dcel.Vertex) geom.Rect {
	box := geom.Rect{X1: sites[0].X, X2: sites[0].X, Y1: sites[0].Y, Y2: sites[0].Y}
	grow := func(p geom.Point) {
		box.X1 = math.Min(box.X1, p.X)
		box.Y1 = math.Min(box.Y1, p.Y)
		box.X2 = math.Max(box.X2, p.X)
		box.Y2 = math.Max(box.Y2, p.Y)
	}
	for _, s := range sites {
		grow(s)
	}
	for _, v := range vertices {
		grow(v.Point)
	}

	box.X1 -= 50
	box.Y1 -= 50
	box.X2 += 50
	box.Y2 += 50

	size := math.Max(box.Y2-box.Y1, box.X2-box.X1)
	xDiff := size - (box.X2 - box.X1)
	box.X1 -= xDiff / 2
	box.X2 += xDiff / 2
	yDiff := size - (box.Y2 - box.Y1)
	box.Y1 -= yDiff / 2
	box.Y2 += yDiff / 2

	return box
}
