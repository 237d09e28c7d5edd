package boxclip

import (
	"testing"

	"github.com/arl/annulus/dcel"
	"github.com/arl/annulus/geom"
)

// TestAddBoxSingleBisector builds the simplest possible nearest-Voronoi
// DCEL (two sites, one bisector) the way Voronoi.HandleInitialSiteEvent
// would, and checks that AddBox closes it into a consistent planar
// subdivision.
func TestAddBoxSingleBisector(t *testing.T) {
	sites := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	d := dcel.New()
	faceA := d.NewFace(0)
	faceB := d.NewFace(1)
	open := d.NewFace(2)

	line := geom.Bisector(sites[0], sites[1])
	line.Dir = geom.DirUp
	up, down := d.NewTwins(line, line)
	up.Incident = faceA
	down.Incident = faceB

	// Fortune's algorithm never leaves a bisector infinite on both ends: by
	// the time AddBox runs, exactly one side already terminates at a real
	// vertex (here simulated, as if from an earlier circle event) and the
	// other is the true half-infinite ray AddBox must clip.
	origin := d.NewVertex(geom.Point{X: 5, Y: -20})
	up.Origin = origin
	origin.Incident = up
	// Wiring at the real vertex is the producer's job, not AddBox's: with no
	// other edge there, the edge turns back on itself.
	down.Next, up.Prev = up, down

	openEdge := AddBox(sites, open, d)
	if openEdge == nil {
		t.Fatal("AddBox must return a half-edge incident to the open face")
	}
	if openEdge.Incident != open {
		t.Fatalf("returned edge must be incident to open face, got %+v", openEdge.Incident)
	}

	for _, he := range d.HalfEdges {
		if he.Twin.Twin != he {
			t.Fatalf("twin.twin must be self for %+v", he)
		}
		if he.Next == nil || he.Prev == nil {
			t.Fatalf("every half-edge must be wired into a closed loop after AddBox: %+v", he)
		}
		if he.Next.Prev != he {
			t.Fatalf("next.prev must be self for %+v", he)
		}
	}

	var boxCount int
	for _, v := range d.Vertices {
		if v.Box {
			boxCount++
		}
	}
	if boxCount < 4 {
		t.Fatalf("expected at least 4 box vertices (the corners), got %d", boxCount)
	}
}
