package components

import "github.com/yohamta/donburi"

// NetInterpData stores interpolation state for smooth movement of mirrored
// entities between snapshots. Mirrors blend toward the last received target;
// they never extrapolate, and they snap when the delta is too large.
type NetInterpData struct {
	PrevX, PrevY     float64
	TargetX, TargetY float64
	T                float64
	Initialized      bool
	LastTimestamp    int64 // tick stamp of the applied snapshot; older ones are discarded
}

var NetInterp = donburi.NewComponentType[NetInterpData]()
