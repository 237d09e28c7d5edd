package engine

import (
	"math"
	"testing"

	"github.com/arl/annulus/geom"
	"github.com/arl/annulus/model"
)

// solve runs the full pipeline over pts and returns the resulting annulus
// width.
func solve(t *testing.T, pts []geom.Point) float64 {
	t.Helper()
	for i := range pts {
		pts[i].Idx = i
	}
	m := model.New(pts)
	ctx := model.NewBuildContext(false)
	Run(m, ctx, Settings{Seed: 1})
	return m.Annulus().Width()
}

func almostZero(w float64) bool {
	return math.Abs(w) < 0.01
}

func TestEndToEndCases(t *testing.T) {
	tests := []struct {
		name     string
		pts      []geom.Point
		wantZero bool
	}{
		{
			name: "triangle, circumscribed circle is the only annulus",
			pts: []geom.Point{
				{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1},
			},
			wantZero: true,
		},
		{
			name: "four cocircular corners of a square",
			pts: []geom.Point{
				{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 2},
			},
			wantZero: true,
		},
		{
			name: "three collinear sites",
			pts: []geom.Point{
				{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
			},
			wantZero: true,
		},
		{
			name:     "regular pentagon on unit circle",
			pts:      regularPolygon(5, 1),
			wantZero: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := solve(t, tt.pts)
			if w < 0 {
				t.Fatalf("width must not be negative, got %v", w)
			}
			if tt.wantZero && !almostZero(w) {
				t.Fatalf("expected width ~0, got %v", w)
			}
		})
	}
}

func TestFivePointsFinitePositiveWidth(t *testing.T) {
	pts := []geom.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 1}, {X: 5, Y: 9}, {X: 10, Y: 10},
	}
	w := solve(t, pts)
	if w <= 0 {
		t.Fatalf("expected a finite positive width, got %v", w)
	}
}

func TestOffCenterFifthSiteShiftsWidthOffZero(t *testing.T) {
	pts := []geom.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}, {X: 0, Y: 3}, {X: 2, Y: 1.4},
	}
	w := solve(t, pts)
	if w <= 0 {
		t.Fatalf("expected a finite positive width, got %v", w)
	}
}

// regularPolygon returns n points evenly spaced on the unit circle scaled by
// radius, which are therefore all cocircular: the minimum annulus width is
// 0.
func regularPolygon(n int, radius float64) []geom.Point {
	pts := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Point{X: radius * math.Cos(theta), Y: radius * math.Sin(theta), Idx: i}
	}
	return pts
}
