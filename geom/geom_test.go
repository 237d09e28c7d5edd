package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBisectorAxisAligned(t *testing.T) {
	l := Bisector(Point{X: 0, Y: 0}, Point{X: 2, Y: 0})
	if !l.Vertical || l.X != 1 {
		t.Fatalf("expected vertical bisector at x=1, got %+v", l)
	}

	l = Bisector(Point{X: 0, Y: 0}, Point{X: 0, Y: 2})
	if l.Vertical || l.K != 0 || l.N != 1 {
		t.Fatalf("expected horizontal bisector y=1, got %+v", l)
	}
}

func TestBisectorGeneral(t *testing.T) {
	l := Bisector(Point{X: 0, Y: 0}, Point{X: 2, Y: 2})
	mid := Midpoint(Point{X: 0, Y: 0}, Point{X: 2, Y: 2})
	if !almostEqual(l.K*mid.X+l.N, mid.Y) {
		t.Fatalf("bisector does not pass through midpoint: %+v", l)
	}
	if !almostEqual(l.K, -1) {
		t.Fatalf("expected slope -1, got %v", l.K)
	}
}

func TestLineIntersection(t *testing.T) {
	a := NewLine(1, 0)
	b := NewLine(-1, 4)
	p := LineIntersection(a, b)
	if !almostEqual(p.X, 2) || !almostEqual(p.Y, 2) {
		t.Fatalf("expected (2,2), got %+v", p)
	}
}

func TestTurn(t *testing.T) {
	cases := []struct {
		a, b, c Point
		want    int
	}{
		{Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, Point{X: 1, Y: 1}, 1},
		{Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, Point{X: 1, Y: -1}, -1},
		{Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, Point{X: 2, Y: 0}, 0},
	}
	for _, c := range cases {
		if got := Turn(c.a, c.b, c.c); got != c.want {
			t.Errorf("Turn(%v,%v,%v) = %d, want %d", c.a, c.b, c.c, got, c.want)
		}
	}
}

func TestDoIntersect(t *testing.T) {
	if !DoIntersect(Point{X: 0, Y: 0}, Point{X: 2, Y: 2}, Point{X: 0, Y: 2}, Point{X: 2, Y: 0}) {
		t.Fatal("expected crossing diagonals to intersect")
	}
	if DoIntersect(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, Point{X: 0, Y: 1}, Point{X: 1, Y: 1}) {
		t.Fatal("expected parallel segments not to intersect")
	}
}

func TestCircumcenter(t *testing.T) {
	c := Circumcenter(Point{X: 0, Y: 0}, Point{X: 2, Y: 0}, Point{X: 0, Y: 2})
	if !almostEqual(c.X, 1) || !almostEqual(c.Y, 1) {
		t.Fatalf("expected (1,1), got %+v", c)
	}
}

func TestGrahamScanHullSquare(t *testing.T) {
	pts := []Point{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2},
		{X: 1, Y: 0}, // collinear with two hull edge endpoints, must be dropped
	}
	hull := GrahamScanHull(pts)
	if len(hull) != 4 {
		t.Fatalf("expected 4 hull points (collinear point dropped), got %d: %+v", len(hull), hull)
	}
	for i := 0; i < len(hull); i++ {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		c := hull[(i+2)%len(hull)]
		if Turn(a, b, c) != 1 {
			t.Fatalf("hull %v is not in strict CCW order at %d", hull, i)
		}
	}
}

func TestGrahamScanHullPermutationInvariant(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}, {X: 2, Y: 2}}
	perm := []Point{{X: 4, Y: 4}, {X: 0, Y: 4}, {X: 2, Y: 2}, {X: 0, Y: 0}, {X: 4, Y: 0}}

	h1 := GrahamScanHull(pts)
	h2 := GrahamScanHull(perm)
	if len(h1) != len(h2) {
		t.Fatalf("hull sizes differ: %d vs %d", len(h1), len(h2))
	}

	rotated := rotateToMatch(h2, h1[0])
	for i := range h1 {
		if h1[i].X != rotated[i].X || h1[i].Y != rotated[i].Y {
			t.Fatalf("hulls differ up to rotation: %+v vs %+v", h1, rotated)
		}
	}
}

func rotateToMatch(pts []Point, anchor Point) []Point {
	for i, p := range pts {
		if p.X == anchor.X && p.Y == anchor.Y {
			return append(append([]Point{}, pts[i:]...), pts[:i]...)
		}
	}
	return pts
}

func TestAllCollinear(t *testing.T) {
	if !AllCollinear([]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}) {
		t.Fatal("expected collinear points to be detected")
	}
	if AllCollinear([]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}) {
		t.Fatal("expected non-collinear points not to be flagged")
	}
}

func TestParabolaIntersectionDegenerateFocalLength(t *testing.T) {
	// l sits exactly on the sweep line: its parabola degenerates to the
	// vertical line x=l.X.
	l := Point{X: 3, Y: 5}
	r := Point{X: 7, Y: 9}
	p := ParabolaIntersection(l, r, 5)
	if !almostEqual(p.X, 3) {
		t.Fatalf("expected x=3 on the degenerate branch, got %+v", p)
	}
}

func TestRectHalfLineIntersection(t *testing.T) {
	rect := Rect{X1: -10, X2: 10, Y1: -10, Y2: 10}
	line := Line{Vertical: false, K: 0, N: 0, Dir: DirRight}
	p := RectHalfLineIntersection(rect, line, Point{X: 0, Y: 0})
	if !almostEqual(p.X, 10) || !almostEqual(p.Y, 0) {
		t.Fatalf("expected (10,0), got %+v", p)
	}
}

func TestSelfIntersecting(t *testing.T) {
	bowtie := []Point{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 2, Y: 0}, {X: 0, Y: 2}}
	if !SelfIntersecting(bowtie) {
		t.Fatal("expected the bowtie quad to self-intersect")
	}
	square := []Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	if SelfIntersecting(square) {
		t.Fatal("expected the square not to self-intersect")
	}
}

func TestPolygonArea(t *testing.T) {
	square := []Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	if got := PolygonArea(square); !almostEqual(got, 4) {
		t.Fatalf("expected area 4, got %v", got)
	}
}
