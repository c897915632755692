package messages

import (
	"github.com/leap-fish/necs/esync"

	"github.com/halfcourt/dodgebrawl/shared/netconfig"
)

// Snapshots travel over the best-effort periodic channel. They carry a tick
// timestamp; a receiver discards any snapshot older than one already applied
// for the same entity ("most recent wins").

// CharacterSnapshot is the fixed per-frame observable state of a character.
type CharacterSnapshot struct {
	CharacterID esync.NetworkId
	Tick        int64

	X, Y       float64
	VelX, VelY float64

	Grounded bool
	Ducking  bool
	HasBall  bool
	Facing   int // -1 left, 1 right

	Health  int
	Charges [3]float64
}

// BallSnapshot is published by the ball's current authority.
type BallSnapshot struct {
	Tick int64

	State     netconfig.BallState
	HolderID  esync.NetworkId // 0 when none
	ThrowerID esync.NetworkId

	X, Y       float64
	VelX, VelY float64
	Variant    netconfig.ThrowVariant
}
