package model

import (
	"testing"

	"github.com/arl/annulus/geom"
)

func TestFindBestAnnulusPicksNarrowest(t *testing.T) {
	m := New([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
	m.AddAnnulusCandidate(geom.Annulus{RInner: 1, ROuter: 5})
	m.AddAnnulusCandidate(geom.Annulus{RInner: 2, ROuter: 3})
	m.AddAnnulusCandidate(geom.Annulus{RInner: 0, ROuter: 9})

	m.FindBestAnnulus()
	if got := m.Annulus().Width(); got != 1 {
		t.Fatalf("expected width 1, got %v", got)
	}
}

func TestSweepYInitializedAboveAllSites(t *testing.T) {
	m := New([]geom.Point{{X: 0, Y: 3}, {X: 1, Y: 7}, {X: 2, Y: -2}})
	if m.SweepY() <= 7 {
		t.Fatalf("expected sweep line above every site, got %v", m.SweepY())
	}
}

func TestBuildContextTimer(t *testing.T) {
	ctx := NewBuildContext(true)
	ctx.StartTimer(TimerVoronoi)
	ctx.StopTimer(TimerVoronoi)
	if ctx.AccumulatedTime(TimerVoronoi) < 0 {
		t.Fatal("accumulated time should be non-negative")
	}

	disabled := NewBuildContext(false)
	disabled.StartTimer(TimerVoronoi)
	disabled.StopTimer(TimerVoronoi)
	if disabled.AccumulatedTime(TimerVoronoi) != 0 {
		t.Fatal("disabled timers must report zero accumulated time")
	}
}
