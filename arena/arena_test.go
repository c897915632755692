package arena

import (
	"testing"

	"github.com/halfcourt/dodgebrawl/shared/netconfig"
)

func TestSideAtSplitsOnCenterLine(t *testing.T) {
	a := Default()
	if got := a.SideAt(0); got != netconfig.SideLeft {
		t.Fatalf("SideAt(0) = %v, want left", got)
	}
	if got := a.SideAt(a.Width); got != netconfig.SideRight {
		t.Fatalf("SideAt(width) = %v, want right", got)
	}
	if got := a.SideAt(a.CenterX()); got != netconfig.SideRight {
		t.Fatalf("SideAt(center) = %v, the center line belongs to the right half", got)
	}
}

func TestSpawnsAreOnTheirOwnHalves(t *testing.T) {
	a := Default()
	if a.SideAt(a.Spawn(netconfig.SideLeft).X) != netconfig.SideLeft {
		t.Fatal("left spawn not on the left half")
	}
	if a.SideAt(a.Spawn(netconfig.SideRight).X) != netconfig.SideRight {
		t.Fatal("right spawn not on the right half")
	}
}

func TestContainsAllowsMargin(t *testing.T) {
	a := Default()
	if !a.Contains(-10, 10) {
		t.Fatal("position just outside the edge should still count as in")
	}
	if a.Contains(-500, 10) {
		t.Fatal("position far outside the court counted as in")
	}
	if a.Contains(a.Width/2, a.Height+500) {
		t.Fatal("position far below the court counted as in")
	}
}

func TestBuildSpaceContainsSolids(t *testing.T) {
	a := Default()
	space := a.BuildSpace()
	if got := len(space.Objects()); got != len(a.Solids) {
		t.Fatalf("space objects = %d, want %d", got, len(a.Solids))
	}
}
