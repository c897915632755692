package config

import "github.com/halfcourt/dodgebrawl/shared/netconfig"

// AbilityConfig tunes every ability variant routine.
type AbilityConfig struct {
	// Volley (Ultimate)
	VolleyCount      int
	VolleySpreadRad  float64 // total spread angle divided evenly across projectiles
	VolleyDelayTicks int     // inter-spawn delay
	VolleyLifetime   int     // projectile lifetime, ticks

	// Oscillating throw (Ultimate)
	OscAmplitude float64 // vertical velocity amplitude
	OscFrequency float64 // radians per tick
	OscDuration  int     // ticks of sinusoidal flight before normal decay

	// Slow (Trick)
	SlowFactor   float64
	SlowDuration int

	// Freeze (Trick)
	FreezeDuration int

	// Shock (Trick)
	ShockDamage int

	// Shield (Treat)
	ShieldDuration int

	// Blink (Treat)
	BlinkTravelTicks float64 // seconds-equivalent tween duration, in ticks
	BlinkHoldTicks   int
	BlinkDodgeOffset float64 // vertical offset when dodging an inbound ball
	BlinkFlankOffset float64 // horizontal offset behind the opponent

	// Haste (Treat)
	HasteFactor   float64
	HasteDuration int
}

// Loadout maps each ability slot to the variant a character has equipped.
type Loadout [netconfig.SlotCount]netconfig.VariantID

// DefaultLoadout is the starter kit: empowered throw, freeze, shield.
func DefaultLoadout() Loadout {
	return Loadout{
		netconfig.SlotUltimate: netconfig.VariantEmpoweredThrow,
		netconfig.SlotTrick:    netconfig.VariantFreeze,
		netconfig.SlotTreat:    netconfig.VariantShield,
	}
}

var Ability AbilityConfig

func init() {
	Ability = AbilityConfig{
		VolleyCount:      5,
		VolleySpreadRad:  0.35,
		VolleyDelayTicks: 5,
		VolleyLifetime:   3 * TickRate,

		OscAmplitude: 4.5,
		OscFrequency: 0.18,
		OscDuration:  90,

		SlowFactor:   0.5,
		SlowDuration: 4 * TickRate,

		FreezeDuration: 2 * TickRate,

		ShockDamage: 15,

		ShieldDuration: 3 * TickRate,

		BlinkTravelTicks: 12,
		BlinkHoldTicks:   30,
		BlinkDodgeOffset: 80,
		BlinkFlankOffset: 48,

		HasteFactor:   1.6,
		HasteDuration: 4 * TickRate,
	}
}
