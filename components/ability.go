package components

import (
	"github.com/yohamta/donburi"

	"github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/shared/netconfig"
)

// AbilitySlot is one independent charge/cooldown/activation state machine.
// Charge accumulates toward Required, clamps there, and is zeroed the instant
// the slot activates.
type AbilitySlot struct {
	Charge        float64
	Required      float64
	Rate          float64 // charge rate multiplier
	CooldownTicks int     // remaining cooldown, 0 = off cooldown
	CooldownTotal int     // armed on every activation
}

// Ready reports whether the slot could activate right now.
func (s *AbilitySlot) Ready() bool {
	return s.Charge >= s.Required && s.CooldownTicks == 0
}

// AddCharge accumulates charge scaled by the slot rate, clamped at Required.
// Once the slot is full but unconsumed, further grants are no-ops.
func (s *AbilitySlot) AddCharge(amount float64) {
	if s.Charge >= s.Required {
		return
	}
	s.Charge += amount * s.Rate
	if s.Charge > s.Required {
		s.Charge = s.Required
	}
}

// TryActivate consumes the slot if it is ready. On success the charge is
// zeroed and the cooldown armed; failure is silent.
func (s *AbilitySlot) TryActivate() bool {
	if !s.Ready() {
		return false
	}
	s.Charge = 0
	s.CooldownTicks = s.CooldownTotal
	return true
}

// Tick advances the cooldown by one simulation tick.
func (s *AbilitySlot) Tick() {
	if s.CooldownTicks > 0 {
		s.CooldownTicks--
	}
}

// AbilityData holds the three slots and the equipped variant per slot.
type AbilityData struct {
	Slots   [netconfig.SlotCount]AbilitySlot
	Loadout config.Loadout

	// Volley spawning in progress: projectiles remaining and delay ticks
	// until the next spawn. Zero when idle.
	VolleyRemaining int
	VolleyDelay     int
	VolleyAngle     float64 // spread step, radians
	VolleyBaseAngle float64
}

var Ability = donburi.NewComponentType[AbilityData]()

// NewAbilityData builds slots from config with the given loadout.
func NewAbilityData(loadout config.Loadout) AbilityData {
	var a AbilityData
	a.Loadout = loadout
	for i := range a.Slots {
		a.Slots[i] = AbilitySlot{
			Required:      config.Charge.Required[i],
			Rate:          1.0,
			CooldownTotal: config.Charge.Cooldown[i],
		}
	}
	return a
}

// ChargeAll grants the same base amount to every slot. Per-source weighting
// is applied by the caller; per-slot weighting via each slot's Rate.
func (a *AbilityData) ChargeAll(amount float64) {
	for i := range a.Slots {
		a.Slots[i].AddCharge(amount)
	}
}

// Charges returns the three current charge values in slot order.
func (a *AbilityData) Charges() [3]float64 {
	return [3]float64{a.Slots[0].Charge, a.Slots[1].Charge, a.Slots[2].Charge}
}
