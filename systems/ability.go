package systems

import (
	"log"
	"math"

	"github.com/leap-fish/necs/esync"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/arena"
	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/fx"
	"github.com/halfcourt/dodgebrawl/network"
	"github.com/halfcourt/dodgebrawl/shared/messages"
	"github.com/halfcourt/dodgebrawl/shared/netconfig"
	"github.com/halfcourt/dodgebrawl/systems/factory"
	"github.com/halfcourt/dodgebrawl/tags"
)

// NewAbilitySystem ticks slot cooldowns, spawns in-progress volley
// projectiles, and dispatches slot activations for locally simulated
// characters. Remote activations arrive as AbilityEvents and run the same
// variant routines through ExecuteVariant.
func NewAbilitySystem(a *arena.Arena, sink fx.Sink, resolver *network.Resolver, peer *network.Peer) func(e *ecs.ECS) {
	return func(e *ecs.ECS) {
		tags.Character.Each(e.World, func(entry *donburi.Entry) {
			if !resolver.IsMine(entry) {
				return
			}
			ab := components.Ability.Get(entry)
			for i := range ab.Slots {
				ab.Slots[i].Tick()
			}
			stepVolley(e, entry, a)

			char := components.Character.Get(entry)
			if char.Defeated || !char.InputEnabled {
				return
			}
			input := components.Input.Get(entry)
			if input.Snapshot.UltimatePressed {
				ActivateSlot(e, a, sink, peer, entry, netconfig.SlotUltimate)
			}
			if input.Snapshot.TrickPressed {
				ActivateSlot(e, a, sink, peer, entry, netconfig.SlotTrick)
			}
			if input.Snapshot.TreatPressed {
				ActivateSlot(e, a, sink, peer, entry, netconfig.SlotTreat)
			}
		})
	}
}

// ActivateSlot consumes the slot if ready and runs its equipped variant. The
// charge is spent and the cooldown armed the moment activation succeeds; a
// possession-dependent variant fired without the ball still burns the slot
// and no-ops inside its routine.
func ActivateSlot(e *ecs.ECS, a *arena.Arena, sink fx.Sink, peer *network.Peer, entry *donburi.Entry, slot netconfig.SlotID) bool {
	ab := components.Ability.Get(entry)
	variant := ab.Loadout[slot]
	if variant == netconfig.VariantNone {
		return false
	}
	if !ab.Slots[slot].TryActivate() {
		return false
	}

	ExecuteVariant(e, a, entry, variant)
	log.Printf("[ability] %s slot fired %d", slot, variant)

	obj := components.Object.Get(entry)
	fx.Emit(sink, fx.Request{Kind: fx.Flash, X: obj.CenterX(), Y: obj.CenterY(), Magnitude: 1})

	if peer != nil {
		if id := esync.GetNetworkId(entry); id != nil {
			if err := peer.SendEvent(messages.AbilityEvent{CharacterID: *id, Slot: slot, Variant: variant}); err != nil {
				log.Printf("[ability] event send: %v", err)
			}
		}
	}
	return true
}

// ExecuteVariant runs one ability effect routine against the world. It is
// called for both local activations and replicated remote ones, so it must
// not touch slot charge or cooldowns.
func ExecuteVariant(e *ecs.ECS, a *arena.Arena, entry *donburi.Entry, variant netconfig.VariantID) {
	switch variant {
	case netconfig.VariantEmpoweredThrow:
		ThrowHeldBall(e.World, entry, netconfig.ThrowUltimate)

	case netconfig.VariantVolley:
		startVolley(e, entry)

	case netconfig.VariantOscillating:
		ThrowHeldBall(e.World, entry, netconfig.ThrowOscillating)

	case netconfig.VariantSlow:
		if opp, ok := Opponent(e.World, entry); ok {
			applySlow(opp)
		}

	case netconfig.VariantFreeze:
		if opp, ok := Opponent(e.World, entry); ok {
			applyFreeze(opp)
		}

	case netconfig.VariantShock:
		if opp, ok := Opponent(e.World, entry); ok {
			QueueDamage(opp, cfg.Ability.ShockDamage, components.DamageShock, entry.Entity())
		}

	case netconfig.VariantShield:
		status := components.Status.Get(entry)
		status.ShieldTicks = cfg.Ability.ShieldDuration
		char := components.Character.Get(entry)
		if char.InvulnTicks < cfg.Ability.ShieldDuration {
			char.InvulnTicks = cfg.Ability.ShieldDuration
		}

	case netconfig.VariantBlink:
		startBlink(e, a, entry)

	case netconfig.VariantHaste:
		applyHaste(entry)
	}
}

// startVolley throws the held ball down the center line and queues the extra
// projectiles to fan out around it over the next few ticks.
func startVolley(e *ecs.ECS, entry *donburi.Entry) {
	ballEntry, ok := ThrowHeldBall(e.World, entry, netconfig.ThrowVolley)
	if !ok {
		return
	}
	phys := components.Physics.Get(ballEntry)

	ab := components.Ability.Get(entry)
	ab.VolleyRemaining = cfg.Ability.VolleyCount - 1
	ab.VolleyDelay = cfg.Ability.VolleyDelayTicks
	ab.VolleyBaseAngle = math.Atan2(phys.SpeedY, phys.SpeedX)
	if cfg.Ability.VolleyCount > 1 {
		ab.VolleyAngle = cfg.Ability.VolleySpreadRad / float64(cfg.Ability.VolleyCount-1)
	}
}

// stepVolley spawns one queued volley projectile whenever the inter-spawn
// delay elapses, fanning alternately above and below the center line.
func stepVolley(e *ecs.ECS, entry *donburi.Entry, a *arena.Arena) {
	ab := components.Ability.Get(entry)
	if ab.VolleyRemaining <= 0 {
		return
	}
	char := components.Character.Get(entry)
	if char.Defeated {
		ab.VolleyRemaining = 0
		return
	}

	ab.VolleyDelay--
	if ab.VolleyDelay > 0 {
		return
	}
	ab.VolleyDelay = cfg.Ability.VolleyDelayTicks

	idx := cfg.Ability.VolleyCount - 1 - ab.VolleyRemaining // 0-based among extras
	ab.VolleyRemaining--

	step := float64(idx/2+1) * ab.VolleyAngle
	if idx%2 == 1 {
		step = -step
	}
	angle := ab.VolleyBaseAngle + step

	obj := components.Object.Get(entry)
	x := obj.CenterX() + throwDirX(char.Side)*(obj.W/2+cfg.Ball.Radius)
	y := obj.Y + obj.H*0.25
	factory.CreateProjectile(e, entry, x, y, math.Cos(angle), math.Sin(angle))
}

func applySlow(entry *donburi.Entry) {
	status := components.Status.Get(entry)
	phys := components.Physics.Get(entry)
	if status.SlowTicks == 0 {
		status.SlowOriginal = phys.MaxSpeed
		phys.MaxSpeed *= cfg.Ability.SlowFactor
	}
	status.SlowTicks = cfg.Ability.SlowDuration
}

func applyFreeze(entry *donburi.Entry) {
	status := components.Status.Get(entry)
	char := components.Character.Get(entry)
	status.FreezeTicks = cfg.Ability.FreezeDuration
	char.MovementEnabled = false
	char.InputEnabled = false
}

func applyHaste(entry *donburi.Entry) {
	status := components.Status.Get(entry)
	phys := components.Physics.Get(entry)
	if status.HasteTicks == 0 {
		status.HasteOriginal = phys.MaxSpeed
		phys.MaxSpeed *= cfg.Ability.HasteFactor
	}
	status.HasteTicks = cfg.Ability.HasteDuration
}

// startBlink picks a tactical destination and begins the out tween. The
// character is untargetable for the whole sequence and returns to a safe spot
// on its own half.
func startBlink(e *ecs.ECS, a *arena.Arena, entry *donburi.Entry) {
	char := components.Character.Get(entry)
	status := components.Status.Get(entry)
	if status.BlinkPhase != components.BlinkIdle {
		return
	}
	obj := components.Object.Get(entry)

	targetX, targetY := blinkTarget(e, a, entry)

	spawn := a.Spawn(char.Side)
	status.BlinkReturnX = spawn.X
	status.BlinkReturnY = spawn.Y
	status.BlinkPhase = components.BlinkOut
	status.BlinkHoldTicks = cfg.Ability.BlinkHoldTicks
	status.BlinkTweenX = gween.New(float32(obj.X), float32(targetX), float32(cfg.Ability.BlinkTravelTicks), ease.Linear)
	status.BlinkTweenY = gween.New(float32(obj.Y), float32(targetY), float32(cfg.Ability.BlinkTravelTicks), ease.Linear)

	char.IsTeleporting = true
	char.MovementEnabled = false
}

// blinkTarget decides where the blink lands: above an inbound ball if one
// threatens, behind the opponent if they are close, or center court.
func blinkTarget(e *ecs.ECS, a *arena.Arena, entry *donburi.Entry) (float64, float64) {
	obj := components.Object.Get(entry)

	if ballEntry, ok := MatchBall(e.World); ok {
		ball := components.Ball.Get(ballEntry)
		if ball.State == netconfig.BallThrown && ball.Thrower != entry.Entity() {
			phys := components.Physics.Get(ballEntry)
			ballObj := components.Object.Get(ballEntry)
			inbound := (phys.SpeedX > 0) == (obj.CenterX() > ballObj.CenterX())
			if inbound {
				return obj.X, obj.Y - cfg.Ability.BlinkDodgeOffset
			}
		}
	}

	if opp, ok := Opponent(e.World, entry); ok {
		oppObj := components.Object.Get(opp)
		if math.Abs(oppObj.CenterX()-obj.CenterX()) < a.Width/3 {
			behind := oppObj.X + cfg.Ability.BlinkFlankOffset
			if oppObj.CenterX() > a.CenterX() {
				behind = oppObj.X - cfg.Ability.BlinkFlankOffset
			}
			return behind, oppObj.Y
		}
	}

	return a.CenterX() - obj.W/2, obj.Y
}
