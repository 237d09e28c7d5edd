// Package voronoi drives Fortune's sweep-line algorithm to build the
// nearest-point Voronoi diagram of the model's sites into the model's
// nearest-Voronoi DCEL.
package voronoi

import (
	"sort"

	assert "github.com/arl/assertgo"
	"github.com/arl/annulus/beachline"
	"github.com/arl/annulus/boxclip"
	"github.com/arl/annulus/dcel"
	"github.com/arl/annulus/event"
	"github.com/arl/annulus/geom"
	"github.com/arl/annulus/model"
)

// Builder drives Fortune's algorithm over a Model's sites, filling its
// nearest-Voronoi DCEL.
type Builder struct {
	m     *model.Model
	ctx   *model.BuildContext
	sites []geom.Point
	dcel  *dcel.Dcel
	bl    *beachline.BeachLine
	queue *event.Queue

	openFace *dcel.Face
}

// New returns a Builder over m, logging and timing through ctx.
func New(m *model.Model, ctx *model.BuildContext) *Builder {
	sites := m.Points()
	return &Builder{
		m:     m,
		ctx:   ctx,
		sites: sites,
		dcel:  m.VoronoiDcel,
		bl:    beachline.New(sites),
		queue: event.NewQueue(),
	}
}

// Build runs Fortune's algorithm to completion, then clips the diagram
// against a bounding box. Safe to call from its own goroutine; every
// structural step holds the model's mutex for its duration.
func (b *Builder) Build() {
	b.ctx.StartTimer(model.TimerVoronoi)
	defer b.ctx.StopTimer(model.TimerVoronoi)

	b.m.Lock()
	for i := range b.sites {
		b.dcel.NewFace(i)
	}
	b.openFace = b.dcel.NewFace(len(b.sites))
	b.m.Unlock()

	if geom.AllCollinear(b.sites) {
		b.processAllCollinear()
	} else {
		b.processEvents()
	}

	b.m.Lock()
	defer b.m.Unlock()

	openEdge := boxclip.AddBox(b.sites, b.openFace, b.dcel)

	for _, v := range b.dcel.Vertices {
		if v.Point.Y-10 < b.m.SweepY() {
			b.m.SetSweepY(v.Point.Y - 10)
		}
	}

	for _, he := range b.dcel.HalfEdges {
		face := he.Incident
		if face != b.openFace && face.Outer == nil {
			face.Outer = openEdge
			b.openFace.Inner = append(b.openFace.Inner, he)
		}
	}

	b.ctx.Progressf("nearest-point Voronoi diagram built (%d sites)", len(b.sites))
}

// detectCircleEvent finds the circle event defined by consecutive arcs
// (a, b, c) at sweep position sweepY, or returns (Event{}, false) if none
// applies.
func (b *Builder) detectCircleEvent(a, bArc, c *beachline.Node, sweepY float64) (event.Event, bool) {
	if a.Site == c.Site || b.sites[bArc.Site].Y == sweepY {
		return event.Event{}, false
	}

	ab := geom.ParabolaIntersection(b.sites[a.Site], b.sites[bArc.Site], sweepY)
	bc := geom.ParabolaIntersection(b.sites[bArc.Site], b.sites[c.Site], sweepY)
	if geom.Dist(ab, bc) <= geom.Tolerance {
		return event.NewCircle(sweepY, ab, bArc), true
	}

	if geom.Turn(b.sites[a.Site], b.sites[bArc.Site], b.sites[c.Site]) == 0 {
		return event.Event{}, false
	}

	center := geom.Circumcenter(b.sites[a.Site], b.sites[bArc.Site], b.sites[c.Site])
	radius := geom.Dist(b.sites[a.Site], center)
	bottomY := center.Y - radius

	if bottomY >= sweepY {
		return event.Event{}, false
	}
	if geom.Turn(b.sites[a.Site], b.sites[bArc.Site], b.sites[c.Site]) == 1 {
		return event.Event{}, false
	}

	return event.NewCircle(bottomY, center, bArc), true
}

func (b *Builder) handleInitialSiteEvent(e event.Event) {
	if b.bl.Root() == nil {
		b.bl.SetRoot(&beachline.Node{IsLeaf: true, Site: e.Site})
		return
	}
	firstLeaf := b.bl.FirstLeaf()

	line := geom.Bisector(b.sites[e.Site], b.sites[firstLeaf.Site])
	line.Dir = geom.DirUp
	up, _ := b.dcel.NewTwins(line, line)
	b.bl.InitialInsert(e.Site, up)
}

func (b *Builder) handleSiteEvent(e event.Event) {
	arcAbove := b.bl.FindArcAbove(b.sites[e.Site].X, b.sites[e.Site].Y)

	line := geom.Bisector(b.sites[e.Site], b.sites[arcAbove.Site])
	upper, lower := b.dcel.NewTwins(line, line)

	node := b.bl.Insert(arcAbove, e.Site, upper, lower)
	left := b.bl.FindPred(node)
	right := b.bl.FindSucc(node)
	farLeft := b.bl.FindPred(left)
	farRight := b.bl.FindSucc(right)

	if farLeft != nil {
		if ce, ok := b.detectCircleEvent(farLeft, left, node, e.Y); ok {
			b.queue.Push(ce)
		}
	}
	if farRight != nil {
		if ce, ok := b.detectCircleEvent(node, right, farRight, e.Y); ok {
			b.queue.Push(ce)
		}
	}
}

// refreshCircleEvent invalidates any circle event already scheduled against
// arc (its neighborhood changed) and schedules a fresh one if warranted.
func (b *Builder) refreshCircleEvent(arc *beachline.Node, sweepY float64) {
	arc.Invalidate()

	pred := b.bl.FindPred(arc)
	succ := b.bl.FindSucc(arc)
	if pred == nil || succ == nil {
		return
	}
	if ce, ok := b.detectCircleEvent(pred, arc, succ, sweepY); ok {
		b.queue.Push(ce)
	}
}

func (b *Builder) handleCircleEvent(e event.Event) {
	arc := e.Arc.(*beachline.Node)
	site := arc.Site

	vertex := b.dcel.NewVertex(e.Center)

	pred := b.bl.FindPred(arc)
	succ := b.bl.FindSucc(arc)
	assert.True(pred != nil && succ != nil, "handleCircleEvent: disappearing arc must have both neighbors")

	line := geom.Bisector(b.sites[pred.Site], b.sites[succ.Site])
	down, up := b.dcel.NewTwins(line, line)
	down.Origin = vertex
	down.Incident = b.dcel.Faces[pred.Site]
	up.Incident = b.dcel.Faces[succ.Site]
	vertex.Incident = down

	first, second := b.bl.Delete(arc, up)

	b.refreshCircleEvent(pred, e.Y)
	b.refreshCircleEvent(succ, e.Y)

	first.Origin = vertex
	first.Incident = b.dcel.Faces[site]
	first.Twin.Incident = b.dcel.Faces[pred.Site]

	second.Origin = vertex
	second.Incident = b.dcel.Faces[succ.Site]
	second.Twin.Incident = b.dcel.Faces[site]

	first.Prev = second.Twin
	second.Twin.Next = first

	second.Prev = up
	up.Next = second

	down.Prev = first.Twin
	first.Twin.Next = down
}

func (b *Builder) processAllCollinear() {
	minPt := b.sites[0]
	for _, p := range b.sites {
		if p.X < minPt.X || (p.X == minPt.X && p.Y < minPt.Y) {
			minPt = p
		}
	}

	sites := append([]geom.Point(nil), b.sites...)
	for i := range sites {
		sites[i].Idx = i
	}
	sort.Slice(sites, func(i, j int) bool {
		return geom.Dist(minPt, sites[i]) < geom.Dist(minPt, sites[j])
	})

	b.m.Lock()
	defer b.m.Unlock()
	for i := 0; i < len(sites)-1; i++ {
		mid := geom.Midpoint(sites[i], sites[i+1])
		v := b.dcel.NewVertex(mid)

		upperUp, upperDown := b.dcel.NewTwins(geom.Line{}, geom.Line{})
		lowerUp, lowerDown := b.dcel.NewTwins(geom.Line{}, geom.Line{})

		upperUp.Origin = v
		lowerDown.Origin = v
		v.Incident = upperUp

		lowerUp.Next, upperUp.Prev = upperUp, lowerUp
		upperDown.Next, lowerDown.Prev = lowerDown, upperDown

		upperUp.Incident = b.dcel.Faces[sites[i+1].Idx]
		lowerUp.Incident = b.dcel.Faces[sites[i+1].Idx]
		upperDown.Incident = b.dcel.Faces[sites[i].Idx]
		lowerDown.Incident = b.dcel.Faces[sites[i].Idx]

		bis := geom.Bisector(sites[i], sites[i+1])
		if bis.Vertical {
			bis.Dir = geom.DirUp
			upperUp.Line, upperDown.Line = bis, bis
			bis.Dir = geom.DirDown
			lowerUp.Line, lowerDown.Line = bis, bis
		} else {
			fst, snd := geom.DirLeft, geom.DirRight
			if sites[i].Y >= sites[i+1].Y {
				fst, snd = geom.DirRight, geom.DirLeft
			}
			bis.Dir = fst
			upperUp.Line, upperDown.Line = bis, bis
			bis.Dir = snd
			lowerUp.Line, lowerDown.Line = bis, bis
		}
	}
}

func (b *Builder) processEvents() {
	maxY := b.sites[0].Y
	for i, s := range b.sites {
		b.queue.Push(event.NewSite(s, i))
		if s.Y > maxY {
			maxY = s.Y
		}
	}

	for !b.queue.Empty() {
		e := b.queue.Pop()

		b.m.Lock()
		b.m.SetSweepY(e.Y)
		switch {
		case b.m.SweepY() == maxY:
			b.handleInitialSiteEvent(e)
		case e.Kind == event.KindSite:
			b.handleSiteEvent(e)
		default:
			if !e.FalseAlarm() {
				b.handleCircleEvent(e)
			}
		}
		b.m.Unlock()
	}

	b.m.Lock()
	b.m.SetSweepY(b.m.SweepY() - 10)
	b.bl.SetOrientations(b.m.SweepY())
	b.m.Unlock()
}
