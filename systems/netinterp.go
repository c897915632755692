package systems

import (
	"math"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/network"
)

// NewNetInterpSystem blends every mirrored entity toward its latest snapshot
// target. Mirrors never extrapolate past the target; a delta beyond the snap
// threshold teleports instead of sliding across the court.
func NewNetInterpSystem(resolver *network.Resolver) func(e *ecs.ECS) {
	return func(e *ecs.ECS) {
		components.NetInterp.Each(e.World, func(entry *donburi.Entry) {
			if resolver.IsMine(entry) {
				return
			}
			stepInterp(entry)
		})
	}
}

func stepInterp(entry *donburi.Entry) {
	interp := components.NetInterp.Get(entry)
	if !interp.Initialized || interp.T >= 1 {
		return
	}
	obj := components.Object.Get(entry)

	dx := interp.TargetX - interp.PrevX
	dy := interp.TargetY - interp.PrevY
	if math.Abs(dx) > cfg.Net.SnapThreshold || math.Abs(dy) > cfg.Net.SnapThreshold {
		obj.X = interp.TargetX
		obj.Y = interp.TargetY
		obj.Update()
		interp.T = 1
		return
	}

	interp.T += 1.0 / float64(cfg.Net.InterpTicks)
	if interp.T > 1 {
		interp.T = 1
	}
	obj.X = interp.PrevX + dx*interp.T
	obj.Y = interp.PrevY + dy*interp.T
	obj.Update()
}
