// Package netconfig defines lightweight enums shared between both peers and
// the relay for network serialization. It must have zero dependencies on the
// ECS or any engine package so the relay binary stays small.
package netconfig

// Side is the half of the arena a character occupies. Throw direction is a
// function of side, never of aim.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Opposite returns the other side of the arena.
func (s Side) Opposite() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// BallState identifies the possession state of the ball.
type BallState int

const (
	BallFree BallState = iota
	BallHeld
	BallThrown
	BallCaught // transient, observable only inside a catch resolution
)

func (b BallState) String() string {
	switch b {
	case BallFree:
		return "free"
	case BallHeld:
		return "held"
	case BallThrown:
		return "thrown"
	case BallCaught:
		return "caught"
	}
	return "unknown"
}

// ThrowVariant identifies how a ball was thrown. It selects damage and speed
// and, for the ability variants, extra flight behavior.
type ThrowVariant int

const (
	ThrowBasic ThrowVariant = iota
	ThrowCharged
	ThrowJump
	ThrowUltimate
	ThrowVolley
	ThrowOscillating
)

// SlotID identifies one of the three ability slots on a character.
type SlotID int

const (
	SlotUltimate SlotID = iota // offensive
	SlotTrick                  // opponent debuff
	SlotTreat                  // self buff
	SlotCount
)

func (s SlotID) String() string {
	switch s {
	case SlotUltimate:
		return "ultimate"
	case SlotTrick:
		return "trick"
	case SlotTreat:
		return "treat"
	}
	return "unknown"
}

// VariantID selects the effect routine executed when a slot activates.
type VariantID int

const (
	VariantNone VariantID = iota

	// Ultimate slot
	VariantEmpoweredThrow
	VariantVolley
	VariantOscillating

	// Trick slot
	VariantSlow
	VariantFreeze
	VariantShock

	// Treat slot
	VariantShield
	VariantBlink
	VariantHaste
)

// CatchGrade classifies a catch attempt by reaction time.
type CatchGrade int

const (
	CatchPerfect CatchGrade = iota
	CatchGood
	CatchTooLate
	CatchMiss
)

// Success reports whether the grade resolves to a completed catch.
func (g CatchGrade) Success() bool {
	return g == CatchPerfect || g == CatchGood
}

func (g CatchGrade) String() string {
	switch g {
	case CatchPerfect:
		return "perfect"
	case CatchGood:
		return "good"
	case CatchTooLate:
		return "toolate"
	}
	return "miss"
}

// MatchStateID represents the current state of a match.
type MatchStateID int

const (
	MatchStateWaiting MatchStateID = iota
	MatchStateCountdown
	MatchStatePlaying
	MatchStateRoundOver
	MatchStateFinished
)
