// Package arena provides court geometry shared by both peers: bounds, solid
// collision, spawn points per side, and the center line that separates the
// two halves. Arenas load from TMX files or fall back to a built-in court.
package arena

import (
	"github.com/solarlune/resolv"

	"github.com/halfcourt/dodgebrawl/shared/netconfig"
	"github.com/halfcourt/dodgebrawl/tags"
)

// Rect is a solid collision rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Point is a spawn location.
type Point struct {
	X, Y float64
}

// Arena holds all collision-relevant court data.
type Arena struct {
	Width, Height float64
	Solids        []Rect
	LeftSpawn     Point
	RightSpawn    Point
}

// Default returns the built-in court used offline and in tests: a flat floor
// with walls at both ends.
func Default() *Arena {
	const w, h = 960.0, 540.0
	const floorH = 40.0
	return &Arena{
		Width:  w,
		Height: h,
		Solids: []Rect{
			{X: 0, Y: h - floorH, W: w, H: floorH},  // floor
			{X: 0, Y: 0, W: 16, H: h - floorH},      // left wall
			{X: w - 16, Y: 0, W: 16, H: h - floorH}, // right wall
		},
		LeftSpawn:  Point{X: w * 0.2, Y: h - floorH - 40},
		RightSpawn: Point{X: w * 0.8, Y: h - floorH - 40},
	}
}

// CenterX is the line separating the two halves.
func (a *Arena) CenterX() float64 {
	return a.Width / 2
}

// SideAt returns the half of the court containing x.
func (a *Arena) SideAt(x float64) netconfig.Side {
	if x < a.CenterX() {
		return netconfig.SideLeft
	}
	return netconfig.SideRight
}

// Spawn returns the spawn point for a side.
func (a *Arena) Spawn(side netconfig.Side) Point {
	if side == netconfig.SideLeft {
		return a.LeftSpawn
	}
	return a.RightSpawn
}

// Contains reports whether a position is inside the court bounds, with a
// small margin so a ball is not considered out while clipping an edge.
func (a *Arena) Contains(x, y float64) bool {
	const margin = 64.0
	return x >= -margin && x <= a.Width+margin && y >= -margin && y <= a.Height+margin
}

// BuildSpace constructs a resolv space containing the arena solids.
func (a *Arena) BuildSpace() *resolv.Space {
	space := resolv.NewSpace(int(a.Width)+128, int(a.Height)+128, 16, 16)
	for _, s := range a.Solids {
		obj := resolv.NewObject(s.X, s.Y, s.W, s.H, tags.ResolvSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, s.W, s.H))
		space.Add(obj)
	}
	return space
}
