package messages

import (
	"github.com/leap-fish/necs/esync"

	"github.com/halfcourt/dodgebrawl/shared/netconfig"
)

// Discrete action events travel over the reliable ordered channel and must be
// applied by the receiver in send order. Entity references are network ids.

// PickupEvent announces that a character took possession of the free ball.
type PickupEvent struct {
	CharacterID esync.NetworkId
	Peer        esync.NetworkId
	Tick        int64 // sender tick, for simultaneous-claim resolution
}

// ThrowEvent announces a throw, including everything a mirror needs to spawn
// the flight locally.
type ThrowEvent struct {
	ThrowerID  esync.NetworkId
	Variant    netconfig.ThrowVariant
	X, Y       float64
	DirX, DirY float64
	Speed      float64
	Damage     int
}

// CatchEvent announces a successful catch and its grade.
type CatchEvent struct {
	CatcherID esync.NetworkId
	Grade     netconfig.CatchGrade
}

// CatchFailEvent announces a graded but unsuccessful attempt (cosmetic on the
// remote side; the ball keeps flying).
type CatchFailEvent struct {
	CharacterID esync.NetworkId
	Grade       netconfig.CatchGrade
}

// AbilityEvent announces an ability activation. The variant routine runs on
// both peers; possession-dependent routines may still no-op on arrival.
type AbilityEvent struct {
	CharacterID esync.NetworkId
	Slot        netconfig.SlotID
	Variant     netconfig.VariantID
}

// JumpEvent mirrors a discrete jump for remote presentation.
type JumpEvent struct {
	CharacterID esync.NetworkId
}

// DashEvent mirrors a discrete dash.
type DashEvent struct {
	CharacterID esync.NetworkId
	Direction   int // -1 left, 1 right
}

// DamageEvent announces damage applied by the authoritative peer of the
// damaged character.
type DamageEvent struct {
	TargetID   esync.NetworkId
	AttackerID esync.NetworkId
	Amount     int
}

// ReviveEvent announces a round respawn of a defeated character.
type ReviveEvent struct {
	CharacterID esync.NetworkId
}

// RoundResetEvent forces both peers back to round-start state.
type RoundResetEvent struct {
	Round int
}
