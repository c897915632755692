package components

import "github.com/yohamta/donburi"

// DamageSource identifies what produced a damage event.
type DamageSource int

const (
	DamageBallHit DamageSource = iota
	DamageShock                // instant ability damage, bypasses mitigation ordering checks
)

// DamageEventData queues damage against an entity. Attached at the point of
// impact and drained once by the damage system.
type DamageEventData struct {
	Amount   int
	Source   DamageSource
	Attacker donburi.Entity
}

var DamageEvent = donburi.NewComponentType[DamageEventData]()
