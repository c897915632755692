package components

import (
	"github.com/yohamta/donburi"

	"github.com/halfcourt/dodgebrawl/shared/netconfig"
)

// Facing is the horizontal direction a character looks.
type Facing int

const (
	FacingLeft  Facing = -1
	FacingRight Facing = 1
)

// CharacterData is the per-character runtime state. It is created at match
// load, reset (not destroyed) between rounds, and destroyed at teardown.
type CharacterData struct {
	Health      int
	MaxHealth   int
	InvulnTicks int // remaining invulnerability, 0 = vulnerable

	HasBall  bool
	Grounded bool
	Ducking  bool

	MovementEnabled bool
	InputEnabled    bool

	Facing        Facing
	Side          netconfig.Side
	IsTeleporting bool
	Defeated      bool

	DashTicks    int // remaining dash impulse
	DashCooldown int

	// Ticks the throw button has been held; decides basic vs charged release.
	ThrowChargeTicks int

	SpawnX, SpawnY float64
}

var Character = donburi.NewComponentType[CharacterData]()

// Invulnerable reports whether damage is currently ignored.
func (c *CharacterData) Invulnerable() bool {
	return c.InvulnTicks > 0
}

// ResetForRound restores round-start state in place, preserving identity
// fields (side, spawn, max health).
func (c *CharacterData) ResetForRound() {
	c.Health = c.MaxHealth
	c.InvulnTicks = 0
	c.HasBall = false
	c.Ducking = false
	c.MovementEnabled = true
	c.InputEnabled = true
	c.IsTeleporting = false
	c.Defeated = false
	c.DashTicks = 0
	c.DashCooldown = 0
	c.ThrowChargeTicks = 0
	if c.Side == netconfig.SideLeft {
		c.Facing = FacingRight
	} else {
		c.Facing = FacingLeft
	}
}
