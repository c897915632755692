package systems

import (
	"math"

	"github.com/yohamta/donburi"

	"github.com/halfcourt/dodgebrawl/components"
	"github.com/halfcourt/dodgebrawl/shared/netconfig"
	"github.com/halfcourt/dodgebrawl/tags"
)

// MatchBall returns the singleton court ball. Volley projectiles carry
// the Projectile tag instead and are never returned here.
func MatchBall(world donburi.World) (*donburi.Entry, bool) {
	return tags.Ball.First(world)
}

// MatchState returns the singleton match entry.
func MatchState(world donburi.World) (*donburi.Entry, bool) {
	return components.Match.First(world)
}

// CharacterBySide returns the character fighting on the given side of the court.
func CharacterBySide(world donburi.World, side netconfig.Side) (*donburi.Entry, bool) {
	var found *donburi.Entry
	tags.Character.Each(world, func(e *donburi.Entry) {
		if components.Character.Get(e).Side == side {
			found = e
		}
	})
	return found, found != nil
}

// Opponent returns the character on the other side of the court.
func Opponent(world donburi.World, entry *donburi.Entry) (*donburi.Entry, bool) {
	side := components.Character.Get(entry).Side
	return CharacterBySide(world, side.Opposite())
}

func centerDistance(a, b *donburi.Entry) float64 {
	ao := components.Object.Get(a)
	bo := components.Object.Get(b)
	dx := ao.CenterX() - bo.CenterX()
	dy := ao.CenterY() - bo.CenterY()
	return math.Sqrt(dx*dx + dy*dy)
}
