// Package beachline implements Fortune's beach line: a binary search tree
// whose leaves are the parabolic arcs currently on the sweep-line wavefront
// and whose internal nodes are the breakpoints between adjacent arcs, each
// tracing a growing Voronoi half-edge.
//
// The tree has no balancing requirement for correctness; an unbalanced BST
// suffices, matching the source this package is ported from. Leaf and
// internal payloads are kept on one tagged Node type rather than two
// polymorphic classes, per the project's sum-type convention for disjoint
// node kinds.
package beachline

import (
	assert "github.com/arl/assertgo"
	"github.com/arl/annulus/dcel"
	"github.com/arl/annulus/geom"
)

// Node is either a leaf (an arc: Site, Generation) or an internal node (a
// breakpoint: Sites, HalfEdge), discriminated by IsLeaf.
type Node struct {
	IsLeaf bool

	Left, Right, Parent *Node

	// Leaf payload.
	Site int
	// Generation is bumped every time this arc is invalidated by an
	// Insert that splits it. A scheduled circle event captures Generation
	// at creation time; the event is a false alarm once the two no longer
	// match. See event.ArcRef.
	generation uint64

	// Internal payload.
	Sites    [2]int
	HalfEdge *dcel.HalfEdge
}

// Generation implements event.ArcRef.
func (n *Node) Generation() uint64 {
	return n.generation
}

// Invalidate bumps this arc's generation, turning any circle event already
// scheduled against it into a future false alarm. Callers use this when an
// arc's neighborhood changes (a neighbor disappeared) without the arc
// itself being split or removed.
func (n *Node) Invalidate() {
	n.generation++
}

func newLeaf(site int) *Node {
	return &Node{IsLeaf: true, Site: site}
}

func newInternal(left, right int, he *dcel.HalfEdge) *Node {
	return &Node{Sites: [2]int{left, right}, HalfEdge: he}
}

// BeachLine is the tree itself, plus the site coordinates it needs to
// evaluate breakpoint positions.
type BeachLine struct {
	sites []geom.Point
	root  *Node
}

// New returns an empty beach line over the given sites, indexed by Point.Idx
// order (sites[i] is the site with input index i).
func New(sites []geom.Point) *BeachLine {
	return &BeachLine{sites: sites}
}

// Root returns the tree's root, or nil if empty.
func (b *BeachLine) Root() *Node {
	return b.root
}

// SetRoot replaces the tree's root.
func (b *BeachLine) SetRoot(n *Node) {
	b.root = n
}

// FindArcAbove descends from the root to the arc directly above x at the
// current sweep position sweepY. Returns nil if the tree is empty.
func (b *BeachLine) FindArcAbove(x, sweepY float64) *Node {
	if b.root == nil {
		return nil
	}
	curr := b.root
	for !curr.IsLeaf {
		inter := geom.ParabolaIntersection(b.sites[curr.Sites[0]], b.sites[curr.Sites[1]], sweepY)
		if inter.X < x {
			curr = curr.Right
		} else {
			curr = curr.Left
		}
	}
	return curr
}

// FindPredLca returns the internal node whose breakpoint lies between leaf
// and its in-order predecessor, or nil if leaf has no predecessor.
func (b *BeachLine) FindPredLca(leaf *Node) *Node {
	if leaf == nil {
		return nil
	}
	curr := leaf
	for curr.Parent != nil && curr.Parent.Left == curr {
		curr = curr.Parent
	}
	if curr.Parent == nil {
		return nil
	}
	return curr.Parent
}

// FindPred returns leaf's in-order predecessor arc, or nil if none.
func (b *BeachLine) FindPred(leaf *Node) *Node {
	lca := b.FindPredLca(leaf)
	if lca == nil {
		return nil
	}
	curr := lca.Left
	for curr.Right != nil {
		curr = curr.Right
	}
	return curr
}

// FindSuccLca returns the internal node whose breakpoint lies between leaf
// and its in-order successor, or nil if leaf has no successor.
func (b *BeachLine) FindSuccLca(leaf *Node) *Node {
	if leaf == nil {
		return nil
	}
	curr := leaf
	for curr.Parent != nil && curr.Parent.Right == curr {
		curr = curr.Parent
	}
	if curr.Parent == nil {
		return nil
	}
	return curr.Parent
}

// FindSucc returns leaf's in-order successor arc, or nil if none.
func (b *BeachLine) FindSucc(leaf *Node) *Node {
	lca := b.FindSuccLca(leaf)
	if lca == nil {
		return nil
	}
	curr := lca.Right
	for curr.Left != nil {
		curr = curr.Left
	}
	return curr
}

// FirstLeaf returns the leftmost arc, or nil if the tree is empty.
func (b *BeachLine) FirstLeaf() *Node {
	if b.root == nil {
		return nil
	}
	curr := b.root
	for !curr.IsLeaf {
		curr = curr.Left
	}
	return curr
}

// InitialInsert handles the very first site inserted above the current
// leftmost root: it replaces the root with a new breakpoint tracing he
// between the new site (left) and whatever the tree currently holds
// (right).
func (b *BeachLine) InitialInsert(site int, he *dcel.HalfEdge) {
	var leftmostSite int
	if b.root.IsLeaf {
		leftmostSite = b.root.Site
	} else {
		leftmostSite = b.root.Sites[0]
	}

	newRoot := newInternal(site, leftmostSite, he)
	leaf := newLeaf(site)
	newRoot.Left = leaf
	leaf.Parent = newRoot
	newRoot.Right = b.root
	b.root.Parent = newRoot
	b.root = newRoot
}

// Insert splits curr into three leaves (same site, new site, same site)
// joined by two new breakpoints tracing upper and lower, and returns the
// new middle leaf. curr's generation is bumped so any circle event already
// scheduled against it becomes a false alarm once popped.
func (b *BeachLine) Insert(curr *Node, site int, upper, lower *dcel.HalfEdge) *Node {
	assert.True(curr.IsLeaf, "Insert: curr must be a leaf")
	other := curr.Site
	parent := curr.Parent
	var leftChild bool
	if parent != nil {
		leftChild = parent.Left == curr
	}
	curr.generation++

	leaf1 := newLeaf(other)
	leaf2 := newLeaf(site)
	leaf3 := newLeaf(other)
	internal1 := newInternal(other, site, upper)
	internal2 := newInternal(site, other, lower)

	if parent == nil {
		b.root = internal1
	} else if leftChild {
		parent.Left = internal1
		internal1.Parent = parent
	} else {
		parent.Right = internal1
		internal1.Parent = parent
	}

	internal1.Left = leaf1
	leaf1.Parent = internal1
	internal1.Right = internal2
	internal2.Parent = internal1
	internal2.Left = leaf2
	leaf2.Parent = internal2
	internal2.Right = leaf3
	leaf3.Parent = internal2

	return leaf2
}

// Delete removes arc and its parent breakpoint from the tree. The other
// breakpoint flanking arc, an ancestor of that parent (found by climbing
// while arc stays on the same side), survives with its traced edge replaced
// by down and its site pair updated to {new predecessor, new successor}. It
// returns the two half-edges terminated at the circle-event vertex: the first belongs to
// the old predecessor's side, the second to the old successor's side.
func (b *BeachLine) Delete(arc *Node, down *dcel.HalfEdge) (first, second *dcel.HalfEdge) {
	assert.True(arc.IsLeaf, "Delete: arc must be a leaf")
	pred := b.FindPred(arc)
	succ := b.FindSucc(arc)
	assert.True(pred != nil && succ != nil, "Delete: disappearing arc must have both neighbors")

	parent := arc.Parent
	leftChild := parent.Left == arc
	var sibling *Node
	if leftChild {
		sibling = parent.Right
	} else {
		sibling = parent.Left
	}

	// Climb to find the other LCA: the breakpoint whose traced edge
	// survives, carrying the merged edge and site pair.
	lowNode := parent
	highNode := parent.Parent
	assert.True(highNode != nil, "Delete: arc's parent must not be the root")
	for (leftChild && highNode.Left == lowNode) || (!leftChild && highNode.Right == lowNode) {
		lowNode = highNode
		highNode = highNode.Parent
		assert.True(highNode != nil, "Delete: ran off the top of the tree while climbing to the other LCA")
	}
	otherLCA := highNode

	if !leftChild {
		first, second = parent.HalfEdge, otherLCA.HalfEdge
	} else {
		first, second = otherLCA.HalfEdge, parent.HalfEdge
	}
	otherLCA.HalfEdge = down

	if leftChild {
		otherLCA.Sites = [2]int{otherLCA.Sites[0], succ.Site}
	} else {
		otherLCA.Sites = [2]int{pred.Site, otherLCA.Sites[1]}
	}

	grandpa := parent.Parent
	if grandpa.Left == parent {
		grandpa.Left = sibling
	} else {
		grandpa.Right = sibling
	}
	sibling.Parent = grandpa

	return first, second
}

// SetOrientations walks every internal node and assigns a direction tag to
// each traced half-edge's line, comparing the edge's known origin against
// the current breakpoint position at sweepY.
func (b *BeachLine) SetOrientations(sweepY float64) {
	if b.root != nil && !b.root.IsLeaf {
		b.setOrientation(b.root, sweepY)
	}
}

func (b *BeachLine) setOrientation(curr *Node, sweepY float64) {
	he := curr.HalfEdge
	edge := he
	if he.Origin == nil {
		edge = he.Twin
	}

	near := edge.Origin.Point
	far := geom.ParabolaIntersection(b.sites[curr.Sites[0]], b.sites[curr.Sites[1]], sweepY)

	if edge.Line.Vertical {
		if near.Y < far.Y {
			edge.Line.Dir = geom.DirUp
		} else {
			edge.Line.Dir = geom.DirDown
		}
	} else {
		if near.X < far.X {
			edge.Line.Dir = geom.DirRight
		} else if near.X > far.X {
			edge.Line.Dir = geom.DirLeft
		}
	}

	if curr.Left != nil && !curr.Left.IsLeaf {
		b.setOrientation(curr.Left, sweepY)
	}
	if curr.Right != nil && !curr.Right.IsLeaf {
		b.setOrientation(curr.Right, sweepY)
	}
}
