package components

import "github.com/yohamta/donburi"

// InputSnapshot is the per-tick debounced input state supplied by the host.
// The core never polls devices; a source (human frontend or bot) fills one of
// these each tick for every character it controls.
type InputSnapshot struct {
	Horizontal float64 // [-1, 1]

	JumpPressed   bool
	DuckHeld      bool
	ThrowPressed  bool
	ThrowHeld     bool
	CatchPressed  bool
	PickupPressed bool
	DashPressed   bool

	UltimatePressed bool
	TrickPressed    bool
	TreatPressed    bool
}

// InputData carries the snapshot applied to a character this tick.
type InputData struct {
	Snapshot InputSnapshot
}

var Input = donburi.NewComponentType[InputData]()
