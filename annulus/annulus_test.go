package annulus

import (
	"math"
	"testing"

	"github.com/arl/annulus/fpvoronoi"
	"github.com/arl/annulus/geom"
	"github.com/arl/annulus/model"
	"github.com/arl/annulus/voronoi"
)

func solve(t *testing.T, pts []geom.Point, seed int64) *model.Model {
	t.Helper()
	for i := range pts {
		pts[i].Idx = i
	}
	m := model.New(pts)
	ctx := model.NewBuildContext(false)
	voronoi.New(m, ctx).Build()
	fpvoronoi.New(m, ctx, seed).Build()
	New(m, ctx).Find()
	return m
}

func TestWinnerIsNarrowestCandidate(t *testing.T) {
	m := solve(t, []geom.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 1}, {X: 5, Y: 9}, {X: 10, Y: 10},
	}, 1)

	if len(m.Candidates()) == 0 {
		t.Fatal("candidate list must not be empty")
	}
	winner := m.Annulus()
	for _, c := range m.Candidates() {
		if winner.Width() > c.Width()+1e-12 {
			t.Fatalf("winner width %v exceeds candidate width %v", winner.Width(), c.Width())
		}
	}
}

func TestWinnerContainsAllSites(t *testing.T) {
	pts := []geom.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 1}, {X: 5, Y: 9}, {X: 10, Y: 10},
	}
	m := solve(t, pts, 1)

	// The winning annulus, centered as reported, must contain every site
	// between its radii.
	ann := m.Annulus()
	for _, p := range pts {
		d := geom.Dist(ann.Center, p)
		if d < ann.RInner-1e-6 || d > ann.ROuter+1e-6 {
			t.Fatalf("site %+v at distance %v outside annulus [%v, %v]",
				p, d, ann.RInner, ann.ROuter)
		}
	}
}

func TestPermutationInvariantWidth(t *testing.T) {
	pts := []geom.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 1}, {X: 5, Y: 9}, {X: 10, Y: 10},
	}
	perm := []geom.Point{
		{X: 5, Y: 9}, {X: 10, Y: 10}, {X: 0, Y: 0}, {X: 5, Y: 1}, {X: 10, Y: 0},
	}

	w1 := solve(t, pts, 1).Annulus().Width()
	w2 := solve(t, perm, 5).Annulus().Width()
	if math.Abs(w1-w2) > 1e-6 {
		t.Fatalf("widths differ across a site permutation: %v vs %v", w1, w2)
	}
}

func TestOffCenterFifthSiteCenter(t *testing.T) {
	m := solve(t, []geom.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}, {X: 0, Y: 3}, {X: 2, Y: 1.4},
	}, 1)

	ann := m.Annulus()
	if ann.Width() <= 0 {
		t.Fatalf("expected a positive width, got %v", ann.Width())
	}
	if math.Abs(ann.Center.X-2) > 0.1 || math.Abs(ann.Center.Y-1.5) > 0.2 {
		t.Fatalf("expected a center close to (2, 1.5), got %+v", ann.Center)
	}
}
