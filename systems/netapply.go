package systems

import (
	"log"

	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/arena"
	"github.com/halfcourt/dodgebrawl/components"
	"github.com/halfcourt/dodgebrawl/fx"
	"github.com/halfcourt/dodgebrawl/network"
	"github.com/halfcourt/dodgebrawl/shared/messages"
	"github.com/halfcourt/dodgebrawl/shared/netconfig"
)

// NewNetApplySystem drains the peer's inbound queues at the top of the tick
// and applies remote state to mirrored entities. Discrete events are applied
// in arrival order (the relay preserves send order per peer); snapshots keep
// only the most recent and are folded into the interpolation targets.
func NewNetApplySystem(a *arena.Arena, sink fx.Sink, resolver *network.Resolver, peer *network.Peer) func(e *ecs.ECS) {
	return func(e *ecs.ECS) {
		if peer == nil {
			return
		}
		applyEvents(e, a, sink, resolver, peer)
		applySnapshots(e, resolver, peer)
	}
}

func applyEvents(e *ecs.ECS, a *arena.Arena, sink fx.Sink, resolver *network.Resolver, peer *network.Peer) {
	for _, ev := range peer.DrainPickupEvents() {
		if entry, ok := entryByNetID(e.World, ev.CharacterID); ok {
			if !ResolvePickupClaim(e.World, entry) {
				log.Printf("[netapply] pickup claim by peer %d rejected", ev.Peer)
			}
		}
	}

	for _, ev := range peer.DrainThrowEvents() {
		applyRemoteThrow(e, ev)
	}

	for _, ev := range peer.DrainCatchEvents() {
		entry, ok := entryByNetID(e.World, ev.CatcherID)
		if !ok {
			continue
		}
		ballEntry, hasBall := MatchBall(e.World)
		if !hasBall {
			continue
		}
		if CatchBall(e.World, entry, ballEntry, ev.Grade) {
			obj := components.Object.Get(entry)
			fx.Emit(sink, fx.Request{Kind: fx.Glow, X: obj.CenterX(), Y: obj.CenterY(), Magnitude: 1})
		}
	}

	for range peer.DrainCatchFailEvents() {
		// Cosmetic on this side; the ball flies on.
	}

	for _, ev := range peer.DrainAbilityEvents() {
		if entry, ok := entryByNetID(e.World, ev.CharacterID); ok {
			ExecuteVariant(e, a, entry, ev.Variant)
		}
	}

	for range peer.DrainJumpEvents() {
		// Presentation only; position arrives via snapshots.
	}
	for range peer.DrainDashEvents() {
	}

	for _, ev := range peer.DrainDamageEvents() {
		applyRemoteDamage(e, sink, resolver, ev)
	}

	for _, ev := range peer.DrainReviveEvents() {
		if entry, ok := entryByNetID(e.World, ev.CharacterID); ok {
			char := components.Character.Get(entry)
			char.Defeated = false
			char.Health = char.MaxHealth
		}
	}

	for _, ev := range peer.DrainRoundResetEvents() {
		applyRemoteRoundReset(e, a, ev)
	}
}

// applyRemoteThrow replays the opponent's throw so the flight exists here
// before the first ball snapshot lands.
func applyRemoteThrow(e *ecs.ECS, ev messages.ThrowEvent) {
	throwerEntry, ok := entryByNetID(e.World, ev.ThrowerID)
	if !ok {
		return
	}
	ballEntry, ok := MatchBall(e.World)
	if !ok {
		return
	}
	ball := components.Ball.Get(ballEntry)
	if ball.State == netconfig.BallHeld && ball.Holder != throwerEntry.Entity() {
		return // stale event, someone else took the ball meanwhile
	}

	components.Character.Get(throwerEntry).HasBall = false

	ball.State = netconfig.BallThrown
	ball.Thrower = throwerEntry.Entity()
	ball.Holder = 0
	ball.Variant = ev.Variant
	ball.Damage = ev.Damage
	ball.Speed = ev.Speed
	ball.FlightTicks = 0
	ball.LeftThrower = false
	ball.DodgeCredited = false
	if ev.Variant == netconfig.ThrowOscillating {
		ball.OscTicks = 0
	} else {
		ball.OscTicks = -1
	}

	obj := components.Object.Get(ballEntry)
	obj.X = ev.X
	obj.Y = ev.Y
	obj.Update()

	phys := components.Physics.Get(ballEntry)
	phys.SpeedX = ev.DirX
	phys.SpeedY = ev.DirY
}

// applyRemoteDamage lands opponent-reported damage on the local character.
// Characters the remote peer owns carry their health in snapshots already.
func applyRemoteDamage(e *ecs.ECS, sink fx.Sink, resolver *network.Resolver, ev messages.DamageEvent) {
	entry, ok := entryByNetID(e.World, ev.TargetID)
	if !ok || !resolver.IsMine(entry) {
		return
	}
	var attacker donburi.Entity
	if attackerEntry, ok := entryByNetID(e.World, ev.AttackerID); ok {
		attacker = attackerEntry.Entity()
	}
	QueueDamage(entry, ev.Amount, components.DamageBallHit, attacker)
}

func applyRemoteRoundReset(e *ecs.ECS, a *arena.Arena, ev messages.RoundResetEvent) {
	matchEntry, ok := MatchState(e.World)
	if !ok {
		return
	}
	match := components.Match.Get(matchEntry)
	if match.Round >= ev.Round {
		return // already resolved locally
	}
	ResetRound(e, a, match)
	match.Round = ev.Round
	startCountdown(e, match)
	log.Printf("[netapply] round reset to %d from remote", ev.Round)
}

// applySnapshots folds the freshest remote snapshots into mirror entities.
// Position feeds the interpolation targets; discrete fields apply directly.
func applySnapshots(e *ecs.ECS, resolver *network.Resolver, peer *network.Peer) {
	esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
		if resolver.IsMine(entry) || !entry.HasComponent(components.Character) {
			return
		}
		id := esync.GetNetworkId(entry)
		if id == nil {
			return
		}
		snap, ok := peer.LatestCharacterSnapshot(*id)
		if !ok {
			return
		}
		applyCharacterSnapshot(entry, snap)
	})

	if ballEntry, ok := MatchBall(e.World); ok && !resolver.IsMine(ballEntry) {
		if snap, ok := peer.LatestBallSnapshot(); ok {
			applyBallSnapshot(e.World, ballEntry, snap)
		}
	}
}

func applyCharacterSnapshot(entry *donburi.Entry, snap messages.CharacterSnapshot) {
	interp := components.NetInterp.Get(entry)
	if snap.Tick < interp.LastTimestamp {
		return // stale
	}
	setInterpTarget(entry, interp, snap.X, snap.Y, snap.Tick)

	char := components.Character.Get(entry)
	char.Grounded = snap.Grounded
	char.Ducking = snap.Ducking
	char.HasBall = snap.HasBall
	char.Health = snap.Health
	if snap.Facing < 0 {
		char.Facing = components.FacingLeft
	} else {
		char.Facing = components.FacingRight
	}
	if snap.Health == 0 {
		char.Defeated = true
	}

	ab := components.Ability.Get(entry)
	for i := range ab.Slots {
		ab.Slots[i].Charge = snap.Charges[i]
	}

	phys := components.Physics.Get(entry)
	phys.SpeedX = snap.VelX
	phys.SpeedY = snap.VelY
}

func applyBallSnapshot(world donburi.World, ballEntry *donburi.Entry, snap messages.BallSnapshot) {
	interp := components.NetInterp.Get(ballEntry)
	if snap.Tick < interp.LastTimestamp {
		return
	}
	setInterpTarget(ballEntry, interp, snap.X, snap.Y, snap.Tick)

	ball := components.Ball.Get(ballEntry)
	ball.State = snap.State
	ball.Variant = snap.Variant
	ball.Holder = 0
	ball.Thrower = 0
	if holderEntry, ok := entryByNetID(world, snap.HolderID); ok {
		ball.Holder = holderEntry.Entity()
	}
	if throwerEntry, ok := entryByNetID(world, snap.ThrowerID); ok {
		ball.Thrower = throwerEntry.Entity()
	}

	phys := components.Physics.Get(ballEntry)
	phys.SpeedX = snap.VelX
	phys.SpeedY = snap.VelY
}

func setInterpTarget(entry *donburi.Entry, interp *components.NetInterpData, x, y float64, tick int64) {
	obj := components.Object.Get(entry)
	if !interp.Initialized {
		obj.X = x
		obj.Y = y
		obj.Update()
		interp.PrevX, interp.PrevY = x, y
		interp.TargetX, interp.TargetY = x, y
		interp.T = 1
		interp.Initialized = true
	} else if interp.TargetX != x || interp.TargetY != y {
		interp.PrevX, interp.PrevY = obj.X, obj.Y
		interp.TargetX, interp.TargetY = x, y
		interp.T = 0
	}
	interp.LastTimestamp = tick
}

func entryByNetID(world donburi.World, id esync.NetworkId) (*donburi.Entry, bool) {
	if id == 0 {
		return nil, false
	}
	entity := esync.FindByNetworkId(world, id)
	if !world.Valid(entity) {
		return nil, false
	}
	return world.Entry(entity), true
}
