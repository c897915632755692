package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// BlinkPhase tracks the reposition/teleport sequence.
type BlinkPhase int

const (
	BlinkIdle BlinkPhase = iota
	BlinkOut              // tweening to the tactical position
	BlinkHold             // holding at the tactical position
	BlinkBack             // tweening back to the home-side safe position
)

// StatusData holds every timed effect on a character. Effects are advanced
// once per tick by systems/status.go, which restores the captured pre-effect
// values exactly when a timer expires or the effect is cancelled.
type StatusData struct {
	// Slow (opponent debuff): scaled MaxSpeed, original captured for restore.
	SlowTicks    int
	SlowOriginal float64

	// Freeze: movement and input both disabled while > 0.
	FreezeTicks int

	// Shield: timed invulnerability.
	ShieldTicks int

	// Haste (self buff): same capture/restore discipline as Slow.
	HasteTicks    int
	HasteOriginal float64

	// Blink reposition sequence.
	BlinkPhase     BlinkPhase
	BlinkHoldTicks int
	BlinkTweenX    *gween.Tween
	BlinkTweenY    *gween.Tween
	BlinkReturnX   float64
	BlinkReturnY   float64
}

var Status = donburi.NewComponentType[StatusData]()

// AnyActive reports whether any timed effect is currently running.
func (s *StatusData) AnyActive() bool {
	return s.SlowTicks > 0 || s.FreezeTicks > 0 || s.ShieldTicks > 0 ||
		s.HasteTicks > 0 || s.BlinkPhase != BlinkIdle
}
