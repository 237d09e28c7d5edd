package beachline

import (
	"testing"

	"github.com/arl/annulus/dcel"
	"github.com/arl/annulus/geom"
)

func TestInitialInsert(t *testing.T) {
	sites := []geom.Point{{X: 0, Y: 10}, {X: 5, Y: 10}}
	b := New(sites)
	b.SetRoot(&Node{IsLeaf: true, Site: 0})
	b.InitialInsert(1, &dcel.HalfEdge{})

	if b.Root().IsLeaf {
		t.Fatal("root should now be an internal breakpoint")
	}
	leftmost := b.FirstLeaf()
	if leftmost.Site != 1 {
		t.Fatalf("expected leftmost site 1, got %d", leftmost.Site)
	}
}

func TestInsertAndDeleteRoundtrip(t *testing.T) {
	sites := []geom.Point{
		{X: 0, Y: 0},
		{X: 5, Y: 5},
		{X: 10, Y: 0},
	}
	b := New(sites)
	root := &Node{IsLeaf: true, Site: 0}
	b.SetRoot(root)

	// Split the single arc with site 1 in the middle.
	mid := b.Insert(root, 1, &dcel.HalfEdge{}, &dcel.HalfEdge{})
	if mid.Site != 1 {
		t.Fatalf("expected middle leaf to carry the inserted site, got %d", mid.Site)
	}
	if root.Generation() != 1 {
		t.Fatalf("splitting an arc must bump its generation, got %d", root.Generation())
	}

	pred := b.FindPred(mid)
	succ := b.FindSucc(mid)
	if pred == nil || pred.Site != 0 {
		t.Fatalf("expected predecessor site 0, got %+v", pred)
	}
	if succ == nil || succ.Site != 0 {
		t.Fatalf("expected successor site 0, got %+v", succ)
	}

	// Split the left copy of site 0 with site 2, giving 5 leaves (0, 2, 0,
	// 1, 0), so that Delete runs with mid's predecessor in a deeper subtree.
	b.Insert(pred, 2, &dcel.HalfEdge{}, &dcel.HalfEdge{})

	down := &dcel.HalfEdge{}
	first, second := b.Delete(mid, down)
	if first == nil || second == nil {
		t.Fatal("Delete must return both terminated half-edges")
	}
}
