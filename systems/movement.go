package systems

import (
	"log"

	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/network"
	"github.com/halfcourt/dodgebrawl/shared/messages"
	"github.com/halfcourt/dodgebrawl/shared/netconfig"
	"github.com/halfcourt/dodgebrawl/tags"
)

// NewMovementSystem applies the tick's input snapshot to every locally
// simulated character and integrates physics against the collision space.
// Mirrored characters are positioned by the interpolation system instead.
func NewMovementSystem(resolver *network.Resolver, peer *network.Peer) func(e *ecs.ECS) {
	return func(e *ecs.ECS) {
		tags.Character.Each(e.World, func(entry *donburi.Entry) {
			if !resolver.IsMine(entry) {
				return
			}
			char := components.Character.Get(entry)
			if char.IsTeleporting {
				return // the blink tweens own the position
			}
			applyInput(e, entry, peer)
			integrateCharacter(entry)
		})
	}
}

func applyInput(e *ecs.ECS, entry *donburi.Entry, peer *network.Peer) {
	char := components.Character.Get(entry)
	phys := components.Physics.Get(entry)
	in := components.Input.Get(entry).Snapshot

	if char.Defeated || !char.InputEnabled || !char.MovementEnabled {
		phys.SpeedX = 0
		return
	}

	char.Ducking = in.DuckHeld && char.Grounded

	maxSpeed := phys.MaxSpeed
	if char.Ducking {
		maxSpeed = cfg.Player.CrouchSpeed
	}

	if in.Horizontal != 0 {
		phys.SpeedX += in.Horizontal * cfg.Player.Acceleration
		if phys.SpeedX > maxSpeed {
			phys.SpeedX = maxSpeed
		} else if phys.SpeedX < -maxSpeed {
			phys.SpeedX = -maxSpeed
		}
		if in.Horizontal > 0 {
			char.Facing = components.FacingRight
		} else {
			char.Facing = components.FacingLeft
		}
	} else {
		switch {
		case phys.SpeedX > phys.Friction:
			phys.SpeedX -= phys.Friction
		case phys.SpeedX < -phys.Friction:
			phys.SpeedX += phys.Friction
		default:
			phys.SpeedX = 0
		}
	}

	if in.JumpPressed && char.Grounded && !char.Ducking {
		phys.SpeedY = -cfg.Player.JumpSpeed
		char.Grounded = false
		sendSimple(peer, entry, func(id esync.NetworkId) any { return messages.JumpEvent{CharacterID: id} })
	}

	if in.DashPressed && char.DashCooldown == 0 && char.DashTicks == 0 {
		char.DashTicks = cfg.Player.DashTicks
		char.DashCooldown = cfg.Player.DashCooldown
		creditDashDodge(e, entry)
		sendSimple(peer, entry, func(id esync.NetworkId) any {
			return messages.DashEvent{CharacterID: id, Direction: int(char.Facing)}
		})
	}
	if char.DashTicks > 0 {
		char.DashTicks--
		phys.SpeedX = float64(char.Facing) * cfg.Player.DashSpeed
	}

	handleThrowInput(e, entry, peer, in)

	if in.PickupPressed && TryPickup(e.World, entry) {
		sendPickup(e, entry, peer)
	}
}

// handleThrowInput runs the press-hold-release throw cycle. Releasing after a
// long hold produces a charged throw; releasing airborne a jump throw.
func handleThrowInput(e *ecs.ECS, entry *donburi.Entry, peer *network.Peer, in components.InputSnapshot) {
	char := components.Character.Get(entry)
	if !char.HasBall {
		char.ThrowChargeTicks = 0
		return
	}

	if in.ThrowPressed && char.ThrowChargeTicks == 0 {
		char.ThrowChargeTicks = 1
		return
	}
	if char.ThrowChargeTicks == 0 {
		return
	}
	if in.ThrowHeld {
		char.ThrowChargeTicks++
		return
	}

	variant := netconfig.ThrowBasic
	if !char.Grounded {
		variant = netconfig.ThrowJump
	} else if char.ThrowChargeTicks >= cfg.Ball.ChargedThrowTicks {
		variant = netconfig.ThrowCharged
	}
	char.ThrowChargeTicks = 0

	if ballEntry, ok := ThrowHeldBall(e.World, entry, variant); ok {
		sendThrow(entry, ballEntry, peer)
	}
}

// creditDashDodge grants dodge charge when a dash starts while a hostile
// thrown ball is closing in.
func creditDashDodge(e *ecs.ECS, entry *donburi.Entry) {
	ballEntry, ok := MatchBall(e.World)
	if !ok {
		return
	}
	ball := components.Ball.Get(ballEntry)
	if ball.State != netconfig.BallThrown || ball.Thrower == entry.Entity() || ball.DodgeCredited {
		return
	}
	if centerDistance(entry, ballEntry) > cfg.Catch.CaptureRadius*2 {
		return
	}
	ball.DodgeCredited = true
	components.Ability.Get(entry).ChargeAll(cfg.Charge.DodgeGrant)
}

func integrateCharacter(entry *donburi.Entry) {
	char := components.Character.Get(entry)
	phys := components.Physics.Get(entry)
	obj := components.Object.Get(entry)

	phys.SpeedY += phys.Gravity
	if phys.SpeedY > cfg.Player.MaxFallSpeed {
		phys.SpeedY = cfg.Player.MaxFallSpeed
	}

	// Horizontal sweep against walls.
	if dx := phys.SpeedX; dx != 0 {
		if check := obj.Check(dx, 0, tags.ResolvSolid); check != nil {
			if solids := check.ObjectsByTags(tags.ResolvSolid); len(solids) > 0 {
				dx = check.ContactWithObject(solids[0]).X()
				phys.SpeedX = 0
			}
		}
		obj.X += dx
	}

	// Vertical sweep; an extra pixel downward keeps grounding stable.
	dy := phys.SpeedY
	checkDist := dy
	if dy >= 0 {
		checkDist++
	}
	phys.OnGround = nil
	if check := obj.Check(0, checkDist, tags.ResolvSolid); check != nil {
		if solids := check.ObjectsByTags(tags.ResolvSolid); len(solids) > 0 {
			dy = check.ContactWithObject(solids[0]).Y()
			if phys.SpeedY >= 0 {
				phys.OnGround = solids[0]
			}
			phys.SpeedY = 0
		}
	}
	obj.Y += dy
	obj.Update()

	char.Grounded = phys.OnGround != nil
}

func sendThrow(entry, ballEntry *donburi.Entry, peer *network.Peer) {
	if peer == nil {
		return
	}
	id := esync.GetNetworkId(entry)
	if id == nil {
		return
	}
	ball := components.Ball.Get(ballEntry)
	obj := components.Object.Get(ballEntry)
	phys := components.Physics.Get(ballEntry)
	err := peer.SendEvent(messages.ThrowEvent{
		ThrowerID: *id,
		Variant:   ball.Variant,
		X:         obj.X,
		Y:         obj.Y,
		DirX:      phys.SpeedX,
		DirY:      phys.SpeedY,
		Speed:     ball.Speed,
		Damage:    ball.Damage,
	})
	if err != nil {
		log.Printf("[movement] throw event send: %v", err)
	}
}

func sendPickup(e *ecs.ECS, entry *donburi.Entry, peer *network.Peer) {
	if peer == nil {
		return
	}
	id := esync.GetNetworkId(entry)
	if id == nil {
		return
	}
	var tick int64
	if matchEntry, ok := MatchState(e.World); ok {
		tick = components.Match.Get(matchEntry).Tick
	}
	owner := components.Owner.Get(entry)
	err := peer.SendEvent(messages.PickupEvent{
		CharacterID: *id,
		Peer:        owner.Peer,
		Tick:        tick,
	})
	if err != nil {
		log.Printf("[movement] pickup event send: %v", err)
	}
}

func sendSimple(peer *network.Peer, entry *donburi.Entry, build func(id esync.NetworkId) any) {
	if peer == nil {
		return
	}
	id := esync.GetNetworkId(entry)
	if id == nil {
		return
	}
	if err := peer.SendEvent(build(*id)); err != nil {
		log.Printf("[movement] event send: %v", err)
	}
}
