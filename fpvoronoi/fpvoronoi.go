// Package fpvoronoi builds the farthest-point Voronoi diagram of the convex
// hull of a model's sites, by randomized incremental insertion, into the
// model's farthest-point DCEL.
package fpvoronoi

import (
	"math/rand"
	"time"

	assert "github.com/arl/assertgo"
	"github.com/arl/annulus/boxclip"
	"github.com/arl/annulus/dcel"
	"github.com/arl/annulus/geom"
	"github.com/arl/annulus/model"
)

// Builder drives the randomized incremental construction over a Model's
// convex hull, filling its farthest-point-Voronoi DCEL.
//
// InsertDelay paces successive point insertions for an external viewer; it is
// zero (no pause) by default, the headless mode spec.md §5 calls for.
type Builder struct {
	m     *model.Model
	ctx   *model.BuildContext
	sites []geom.Point
	dcel  *dcel.Dcel
	rng   *rand.Rand

	InsertDelay time.Duration

	hull []geom.Point
	cw   []int
	ccw  []int
	inv  []int

	firstEdge map[int]*dcel.HalfEdge
	openFace  *dcel.Face

	edgesPruned    map[*dcel.HalfEdge]bool
	verticesPruned map[*dcel.Vertex]bool
}

// New returns a Builder over m, seeding its own source so the randomized
// permutation is reproducible given a fixed seed, logging and timing through
// ctx.
func New(m *model.Model, ctx *model.BuildContext, seed int64) *Builder {
	return &Builder{
		m:              m,
		ctx:            ctx,
		sites:          m.Points(),
		dcel:           m.FPVoronoiDcel,
		rng:            rand.New(rand.NewSource(seed)),
		firstEdge:      map[int]*dcel.HalfEdge{},
		edgesPruned:    map[*dcel.HalfEdge]bool{},
		verticesPruned: map[*dcel.Vertex]bool{},
	}
}

// Build runs the incremental algorithm to completion, then clips the diagram
// against a bounding box. Safe to call from its own goroutine; every
// structural step holds the model's mutex for its duration.
func (b *Builder) Build() {
	b.ctx.StartTimer(model.TimerFPVoronoi)
	defer b.ctx.StopTimer(model.TimerFPVoronoi)

	if geom.AllCollinear(b.sites) {
		b.processAllCollinear()
	} else {
		b.processRegular()
	}

	b.m.Lock()
	defer b.m.Unlock()

	openEdge := boxclip.AddBox(b.sites, b.openFace, b.dcel)
	for _, he := range b.dcel.HalfEdges {
		face := he.Incident
		if face != b.openFace && face.Outer == nil {
			face.Outer = openEdge
			b.openFace.Inner = append(b.openFace.Inner, he)
		}
	}
	b.ctx.Progressf("farthest-point Voronoi diagram built (%d hull points)", len(b.hull))
}

// processAllCollinear handles the degenerate case: the hull is just the two
// extreme sites, and their single bisector is the entire diagram.
func (b *Builder) processAllCollinear() {
	min := b.sites[0]
	for _, s := range b.sites {
		if s.X < min.X || (s.X == min.X && s.Y < min.Y) {
			min = s
		}
	}
	max := b.sites[0]
	for _, s := range b.sites {
		if s.Idx == min.Idx {
			continue
		}
		if geom.Dist(s, min) > geom.Dist(max, min) {
			max = s
		}
	}

	b.hull = []geom.Point{max, min}

	b.m.Lock()
	defer b.m.Unlock()
	b.m.SetHull(b.hull)

	// Face sites are hull indices: hull[0] is max, hull[1] is min. The half
	// plane nearer min is farthest from max, so min's side carries face 0.
	b.dcel.NewFace(0)
	b.dcel.NewFace(1)
	b.openFace = b.dcel.NewFace(2)

	mid := geom.Midpoint(min, max)
	v := b.dcel.NewVertex(mid)

	upperUp, upperDown := b.dcel.NewTwins(geom.Line{}, geom.Line{})
	lowerUp, lowerDown := b.dcel.NewTwins(geom.Line{}, geom.Line{})

	upperUp.Origin = v
	lowerDown.Origin = v
	v.Incident = upperUp

	lowerUp.Next, upperUp.Prev = upperUp, lowerUp
	upperDown.Next, lowerDown.Prev = lowerDown, upperDown

	upperUp.Incident = b.dcel.Faces[1]
	lowerUp.Incident = b.dcel.Faces[1]
	upperDown.Incident = b.dcel.Faces[0]
	lowerDown.Incident = b.dcel.Faces[0]

	bis := geom.Bisector(min, max)
	if bis.Vertical {
		bis.Dir = geom.DirUp
		upperUp.Line, upperDown.Line = bis, bis
		bis.Dir = geom.DirDown
		lowerUp.Line, lowerDown.Line = bis, bis
	} else {
		fst, snd := geom.DirLeft, geom.DirRight
		if min.Y >= max.Y {
			fst, snd = geom.DirRight, geom.DirLeft
		}
		bis.Dir = fst
		upperUp.Line, upperDown.Line = bis, bis
		bis.Dir = snd
		lowerUp.Line, lowerDown.Line = bis, bis
	}
}

// processRegular builds the hull, randomly permutes it, deletes down to a
// starting triangle, computes the initial solution over that triangle, and
// inserts every remaining hull point one at a time.
func (b *Builder) processRegular() {
	b.hull = geom.GrahamScanHull(b.sites)
	hsz := len(b.hull)

	for i := range b.hull {
		b.hull[i].Idx = i
	}
	b.m.Lock()
	b.m.SetHull(b.hull)
	b.m.Unlock()

	b.ccw = make([]int, hsz)
	b.cw = make([]int, hsz)
	for i := 0; i < hsz; i++ {
		b.ccw[i] = (i + 1) % hsz
		b.cw[i] = (i - 1 + hsz) % hsz
	}

	shuffled := append([]geom.Point(nil), b.hull...)
	b.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	b.hull = shuffled

	b.inv = make([]int, hsz)
	for i := 0; i < hsz; i++ {
		b.inv[b.hull[i].Idx] = i
	}

	for i := hsz - 1; i >= 4; i-- {
		idx := b.hull[i].Idx
		b.ccw[b.cw[idx]] = b.ccw[idx]
		b.cw[b.ccw[idx]] = b.cw[idx]
	}

	b.m.Lock()
	for i := 0; i < hsz; i++ {
		b.dcel.NewFace(i)
	}
	b.openFace = b.dcel.NewFace(hsz)
	b.m.Unlock()

	b.computeInitialSolution(b.hull[0], b.hull[1], b.hull[2])
	for i := 3; i < hsz; i++ {
		b.m.Lock()
		b.addPoint(b.hull[i])
		b.m.Unlock()
		b.prune()
		if b.InsertDelay > 0 {
			time.Sleep(b.InsertDelay)
		}
	}
}

func orientBisector(bis *geom.Line, a, b geom.Point) {
	if bis.Vertical {
		if a.X > b.X {
			bis.Dir = geom.DirDown
		} else {
			bis.Dir = geom.DirUp
		}
	} else {
		if a.Y > b.Y {
			bis.Dir = geom.DirRight
		} else {
			bis.Dir = geom.DirLeft
		}
	}
}

// addHalfEdges appends a twinned pair of half-edges on bis anchored at
// vertex, with fst's face as the "out" incident face and snd's as the "in"
// incident face.
func (b *Builder) addHalfEdges(vertex *dcel.Vertex, bis geom.Line, fst, snd int) (in, out *dcel.HalfEdge) {
	out, in = b.dcel.NewTwins(bis, bis)
	out.Origin = vertex
	out.Incident = b.dcel.Faces[fst]
	in.Incident = b.dcel.Faces[snd]
	return in, out
}

// computeInitialSolution builds the starting triangle's dual: a single
// vertex (the circumcenter) with three bisector edges fanning out to the
// three hull neighbors.
func (b *Builder) computeInitialSolution(a, bb, c geom.Point) {
	if geom.Turn(a, bb, c) == -1 {
		bb, c = c, bb
	}

	center := geom.Circumcenter(a, bb, c)
	abBis := geom.Bisector(a, bb)
	bcBis := geom.Bisector(bb, c)
	caBis := geom.Bisector(c, a)

	orientBisector(&abBis, a, bb)
	orientBisector(&bcBis, bb, c)
	orientBisector(&caBis, c, a)

	b.m.Lock()
	defer b.m.Unlock()

	vertex := b.dcel.NewVertex(center)

	abIn, abOut := b.addHalfEdges(vertex, abBis, a.Idx, bb.Idx)
	bcIn, bcOut := b.addHalfEdges(vertex, bcBis, bb.Idx, c.Idx)
	caIn, caOut := b.addHalfEdges(vertex, caBis, c.Idx, a.Idx)

	b.firstEdge[a.Idx] = caIn
	b.firstEdge[bb.Idx] = abIn
	b.firstEdge[c.Idx] = bcIn
	vertex.Incident = abOut

	abIn.Next = bcOut
	bcOut.Prev = abIn

	bcIn.Next = caOut
	caOut.Prev = bcIn

	caIn.Next = abOut
	abOut.Prev = caIn
}

// addPoint inserts pt into the current diagram by walking CCW from pt's CCW
// hull neighbor's first edge, cutting every face the new cell eats into and
// closing on pt's CW neighbor.
func (b *Builder) addPoint(pt geom.Point) {
	curr := b.firstEdge[b.ccw[pt.Idx]]
	var lastPtFwd, lastOptFwd, lastOptBwd, lastPtBwd *dcel.HalfEdge
	var lastVertex *dcel.Vertex
	var opt, inter geom.Point

	for {
		var hasIntersection, done bool
		for {
			if len(b.edgesPruned) > 0 {
				if curr.Next == nil {
					done = true
					break
				}
				curr = curr.Next
			}

			if curr.Origin != nil {
				b.verticesPruned[curr.Origin] = true
			}
			b.edgesPruned[curr] = true
			b.edgesPruned[curr.Twin] = true

			opt = b.hull[b.inv[curr.Incident.Site]]
			bis := geom.Bisector(pt, opt)
			inter = geom.LineIntersection(curr.Line, bis)

			if curr.Origin == nil || curr.Twin.Origin == nil {
				var orig geom.Point
				if curr.Origin != nil {
					orig = curr.Origin.Point
				} else {
					orig = curr.Twin.Origin.Point
				}
				hasIntersection = geom.CheckHalflineSide(inter, curr.Line, orig)
			} else {
				hasIntersection = geom.CheckOrder(curr.Origin.Point, inter, curr.Twin.Origin.Point)
			}
			if hasIntersection {
				break
			}
		}

		if done {
			L := leftEndpoint(curr)
			R := rightEndpoint(curr)
			opt = b.hull[b.inv[b.cw[pt.Idx]]]

			ptFwd, ptBwd := b.dcel.NewTwins(geom.Line{}, geom.Line{})
			b.firstEdge[pt.Idx] = ptFwd
			ptBwd.Origin = lastVertex
			ptFwd.Incident = b.dcel.Faces[pt.Idx]
			ptBwd.Incident = b.dcel.Faces[opt.Idx]

			bis := geom.Bisector(pt, opt)
			if bis.Vertical {
				bis.Dir = geom.DirDown
				nxt := bis.ForwardPoint(inter)
				if geom.Turn(L, R, nxt) == 1 {
					bis.Dir = geom.DirUp
				}
			} else {
				bis.Dir = geom.DirLeft
				nxt := bis.ForwardPoint(inter)
				if geom.Turn(L, R, nxt) == 1 {
					bis.Dir = geom.DirRight
				}
			}
			ptFwd.Line, ptBwd.Line = bis, bis

			ptBwd.Next = nil
			ptBwd.Prev = lastOptBwd
			if lastOptBwd != nil {
				lastOptBwd.Next = ptBwd
			}

			ptFwd.Next = lastPtFwd
			if lastPtFwd != nil {
				lastPtFwd.Prev = ptFwd
			}
			ptFwd.Prev = nil
			break
		}

		L := leftEndpoint(curr)
		R := rightEndpoint(curr)

		vertex := b.dcel.NewVertex(inter)
		optFwd, optBwd := b.dcel.NewTwins(geom.Line{}, geom.Line{})
		ptFwd, ptBwd := b.dcel.NewTwins(geom.Line{}, geom.Line{})

		if curr.Twin.Origin != nil {
			curr.Twin.Origin.Incident = optBwd
		}

		vertex.Incident = ptFwd
		ptFwd.Origin = vertex
		optFwd.Origin = vertex
		optBwd.Origin = curr.Twin.Origin
		ptBwd.Origin = lastVertex

		ptFwd.Incident = b.dcel.Faces[pt.Idx]
		ptBwd.Incident = b.dcel.Faces[opt.Idx]
		optFwd.Incident = b.dcel.Faces[opt.Idx]
		optBwd.Incident = b.dcel.Faces[curr.Twin.Incident.Site]

		optBwd.Line = curr.Line
		optFwd.Line = curr.Line

		bis := geom.Bisector(pt, opt)
		if bis.Vertical {
			bis.Dir = geom.DirDown
			nxt := bis.ForwardPoint(inter)
			if geom.Turn(L, R, nxt) == 1 {
				bis.Dir = geom.DirUp
			}
		} else {
			bis.Dir = geom.DirLeft
			nxt := bis.ForwardPoint(inter)
			if geom.Turn(L, R, nxt) == 1 {
				bis.Dir = geom.DirRight
			}
		}
		ptFwd.Line, ptBwd.Line = bis, bis

		ptBwd.Next = optFwd
		optFwd.Prev = ptBwd

		ptBwd.Prev = lastOptBwd
		if lastOptBwd != nil {
			lastOptBwd.Next = ptBwd
		}

		optFwd.Next = curr.Next
		if curr.Next != nil {
			curr.Next.Prev = optFwd
		}

		ptFwd.Next = lastPtFwd
		if lastPtFwd != nil {
			lastPtFwd.Prev = ptFwd
		}

		optBwd.Prev = curr.Twin.Prev
		if curr.Twin.Prev != nil {
			curr.Twin.Prev.Next = optBwd
		}

		if lastPtBwd == nil {
			b.firstEdge[opt.Idx] = ptBwd
		}
		if optBwd.Origin == nil {
			b.firstEdge[optBwd.Incident.Site] = optBwd
		}

		lastOptFwd = optFwd
		lastPtFwd = ptFwd
		lastOptBwd = optBwd
		lastPtBwd = ptBwd
		lastVertex = vertex
		curr = curr.Twin
	}
	_ = lastOptFwd
}

// leftEndpoint/rightEndpoint return the known or extrapolated endpoints of a
// half-infinite or regular edge, used to orient a new bisector consistently
// with the edge it's cutting.
func leftEndpoint(he *dcel.HalfEdge) geom.Point {
	if he.Origin != nil {
		return he.Origin.Point
	}
	return he.Twin.Line.ForwardPoint(he.Twin.Origin.Point)
}

func rightEndpoint(he *dcel.HalfEdge) geom.Point {
	if he.Twin.Origin != nil {
		return he.Twin.Origin.Point
	}
	return he.Line.ForwardPoint(he.Origin.Point)
}

// prune drops every half-edge and vertex discarded during the last insertion
// step. Called outside the model lock's critical section per insertion, as a
// separate structural step, matching the source's own separate
// locked/unlocked phases.
func (b *Builder) prune() {
	if len(b.edgesPruned) == 0 && len(b.verticesPruned) == 0 {
		return
	}
	b.m.Lock()
	defer b.m.Unlock()

	kept := b.dcel.HalfEdges[:0:0]
	for _, he := range b.dcel.HalfEdges {
		if !b.edgesPruned[he] {
			kept = append(kept, he)
		}
	}
	b.dcel.HalfEdges = kept
	b.edgesPruned = map[*dcel.HalfEdge]bool{}

	keptV := b.dcel.Vertices[:0:0]
	for _, v := range b.dcel.Vertices {
		if !b.verticesPruned[v] {
			keptV = append(keptV, v)
		}
	}
	b.dcel.Vertices = keptV
	b.verticesPruned = map[*dcel.Vertex]bool{}

	assert.True(len(b.edgesPruned) == 0, "prune: pruned edges not drained")
	assert.True(len(b.verticesPruned) == 0, "prune: pruned vertices not drained")
}
