package components

import (
	"github.com/yohamta/donburi"

	"github.com/halfcourt/dodgebrawl/shared/netconfig"
)

// BallData is the possession state of the match ball. Exactly one ball entity
// exists per match; extra volley projectiles carry BallData too but are
// tagged Projectile and expire on their own.
//
// All transitions go through systems/possession.go — nothing else may write
// State, Holder or Thrower.
type BallData struct {
	State   netconfig.BallState
	Holder  donburi.Entity // valid only while Held
	Thrower donburi.Entity // valid only while Thrown
	Variant netconfig.ThrowVariant

	Damage int
	Speed  float64

	// Oscillating flight
	OscTicks int // elapsed ticks of sinusoidal flight, -1 when inactive

	// Volley projectile lifetime; -1 for the match ball
	LifetimeTicks int

	// Ticks since thrown; also used to arm self-catch (a thrower may not
	// catch their own ball until it has left their capture radius once).
	FlightTicks int
	LeftThrower bool

	// A crouching target earns dodge charge at most once per flight.
	DodgeCredited bool
}

var Ball = donburi.NewComponentType[BallData]()

// HasHolder reports whether the ball is currently possessed.
func (b *BallData) HasHolder() bool {
	return b.State == netconfig.BallHeld
}
