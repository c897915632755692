package systems

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/network"
	"github.com/halfcourt/dodgebrawl/tags"
)

// NewStatusSystem advances every timed effect one tick on locally simulated
// characters and restores the captured pre-effect values exactly when a timer
// runs out. Invulnerability and dash cooldowns tick here too.
func NewStatusSystem(resolver *network.Resolver) func(e *ecs.ECS) {
	return func(e *ecs.ECS) {
		tags.Character.Each(e.World, func(entry *donburi.Entry) {
			if !resolver.IsMine(entry) {
				return
			}
			stepStatus(entry)
		})
	}
}

func stepStatus(entry *donburi.Entry) {
	char := components.Character.Get(entry)
	status := components.Status.Get(entry)
	phys := components.Physics.Get(entry)

	if char.InvulnTicks > 0 {
		char.InvulnTicks--
	}
	if char.DashCooldown > 0 {
		char.DashCooldown--
	}

	if status.SlowTicks > 0 {
		status.SlowTicks--
		if status.SlowTicks == 0 {
			phys.MaxSpeed = status.SlowOriginal
		}
	}

	if status.FreezeTicks > 0 {
		status.FreezeTicks--
		if status.FreezeTicks == 0 {
			char.MovementEnabled = true
			if !char.Defeated {
				char.InputEnabled = true
			}
		}
	}

	if status.ShieldTicks > 0 {
		status.ShieldTicks--
	}

	if status.HasteTicks > 0 {
		status.HasteTicks--
		if status.HasteTicks == 0 {
			phys.MaxSpeed = status.HasteOriginal
		}
	}

	stepBlink(entry)
}

func stepBlink(entry *donburi.Entry) {
	char := components.Character.Get(entry)
	status := components.Status.Get(entry)
	obj := components.Object.Get(entry)

	switch status.BlinkPhase {
	case components.BlinkOut:
		x, _ := status.BlinkTweenX.Update(1)
		y, doneY := status.BlinkTweenY.Update(1)
		obj.X = float64(x)
		obj.Y = float64(y)
		obj.Update()
		if doneY {
			status.BlinkPhase = components.BlinkHold
		}

	case components.BlinkHold:
		status.BlinkHoldTicks--
		if status.BlinkHoldTicks <= 0 {
			status.BlinkTweenX = newBlinkTween(obj.X, status.BlinkReturnX)
			status.BlinkTweenY = newBlinkTween(obj.Y, status.BlinkReturnY)
			status.BlinkPhase = components.BlinkBack
		}

	case components.BlinkBack:
		x, _ := status.BlinkTweenX.Update(1)
		y, doneY := status.BlinkTweenY.Update(1)
		obj.X = float64(x)
		obj.Y = float64(y)
		obj.Update()
		if doneY {
			endBlink(char, status, components.Physics.Get(entry))
		}
	}
}

func endBlink(char *components.CharacterData, status *components.StatusData, phys *components.PhysicsData) {
	status.BlinkPhase = components.BlinkIdle
	status.BlinkTweenX = nil
	status.BlinkTweenY = nil
	char.IsTeleporting = false
	if !char.Defeated {
		char.MovementEnabled = true
	}
	phys.SpeedX = 0
	phys.SpeedY = 0
}

func newBlinkTween(from, to float64) *gween.Tween {
	return gween.New(float32(from), float32(to), float32(cfg.Ability.BlinkTravelTicks), ease.Linear)
}

// CancelEffects force-expires every timed effect, restoring captured values.
// Used at round boundaries so nothing carries across a reset.
func CancelEffects(entry *donburi.Entry) {
	char := components.Character.Get(entry)
	status := components.Status.Get(entry)
	physics := components.Physics.Get(entry)

	if status.SlowTicks > 0 {
		physics.MaxSpeed = status.SlowOriginal
		status.SlowTicks = 0
	}
	if status.FreezeTicks > 0 {
		char.MovementEnabled = true
		char.InputEnabled = true
		status.FreezeTicks = 0
	}
	status.ShieldTicks = 0
	if status.HasteTicks > 0 {
		physics.MaxSpeed = status.HasteOriginal
		status.HasteTicks = 0
	}
	if status.BlinkPhase != components.BlinkIdle {
		endBlink(char, status, physics)
	}
}
