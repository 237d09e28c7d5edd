// Package dcel implements a doubly-connected edge list: the planar
// subdivision representation shared by the nearest-point and farthest-point
// Voronoi diagrams. A Dcel is an arena of owned vertices, faces and
// half-edges; the structural rewiring (splitting edges, wiring next/prev,
// twinning) is done by producers directly on the returned pointers, not by
// the arena itself.
package dcel

import "github.com/arl/annulus/geom"

// Vertex owns a point and a distinguished incident half-edge. Box marks a
// vertex that was added while clipping against the bounding rectangle rather
// than produced by the diagram itself.
type Vertex struct {
	Point    geom.Point
	Incident *HalfEdge
	Box      bool
}

// Face owns a site index, an outer boundary half-edge (unset until the
// bounding box closes the diagram) and zero or more inner-component
// half-edges, one per hole. The distinguished outer/unbounded face of the
// plane uses its Inner slice to enumerate every bounded face's outer edge
// after the box is added.
type Face struct {
	Outer *HalfEdge
	Inner []*HalfEdge
	Site  int
}

// HalfEdge owns an origin vertex, a twin, an incident face, next/prev
// pointers along its face boundary, and the supporting line of the edge
// (carrying a direction tag while the edge is still half-infinite).
type HalfEdge struct {
	Origin   *Vertex
	Twin     *HalfEdge
	Incident *Face
	Next     *HalfEdge
	Prev     *HalfEdge
	Line     geom.Line
}

// Dcel is an arena of owned vertices, faces and half-edges. Its only
// operations are append, iterate, and destroy all; every structural
// invariant (twin symmetry, next/prev consistency, origin consistency) is
// maintained by the producer that wires the returned pointers together.
type Dcel struct {
	Vertices  []*Vertex
	Faces     []*Face
	HalfEdges []*HalfEdge
}

// New returns an empty arena.
func New() *Dcel {
	return &Dcel{}
}

// NewVertex appends and returns a new vertex at p.
func (d *Dcel) NewVertex(p geom.Point) *Vertex {
	v := &Vertex{Point: p}
	d.Vertices = append(d.Vertices, v)
	return v
}

// NewBoxVertex appends and returns a new box vertex at p.
func (d *Dcel) NewBoxVertex(p geom.Point) *Vertex {
	v := &Vertex{Point: p, Box: true}
	d.Vertices = append(d.Vertices, v)
	return v
}

// NewFace appends and returns a new face for the given site index.
func (d *Dcel) NewFace(site int) *Face {
	f := &Face{Site: site}
	d.Faces = append(d.Faces, f)
	return f
}

// NewHalfEdge appends and returns a new, otherwise zero-valued half-edge.
func (d *Dcel) NewHalfEdge() *HalfEdge {
	he := &HalfEdge{}
	d.HalfEdges = append(d.HalfEdges, he)
	return he
}

// NewTwins appends a twinned pair of half-edges carrying the given lines and
// wires their Twin pointers to each other.
func (d *Dcel) NewTwins(lineA, lineB geom.Line) (a, b *HalfEdge) {
	a = d.NewHalfEdge()
	b = d.NewHalfEdge()
	a.Line = lineA
	b.Line = lineB
	a.Twin = b
	b.Twin = a
	return a, b
}

// Destroy drops every owned vertex, face and half-edge, leaving the arena
// empty. Since Go has no manual delete chains, this only releases the
// arena's own references; the garbage collector reclaims the graph once
// nothing else reaches it.
func (d *Dcel) Destroy() {
	d.Vertices = nil
	d.Faces = nil
	d.HalfEdges = nil
}
