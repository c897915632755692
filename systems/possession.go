package systems

import (
	"log"
	"math"

	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/arena"
	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/fx"
	"github.com/halfcourt/dodgebrawl/network"
	"github.com/halfcourt/dodgebrawl/shared/messages"
	"github.com/halfcourt/dodgebrawl/shared/netconfig"
	"github.com/halfcourt/dodgebrawl/shared/protocol"
	"github.com/halfcourt/dodgebrawl/systems/factory"
	"github.com/halfcourt/dodgebrawl/tags"
)

// Every ball state transition in the game funnels through the functions in
// this file. Systems and remote event handlers call these; nothing else
// writes BallData.State.

// TryPickup moves a Free ball to Held by the given character. Fails if the
// ball is not Free, out of pickup range, or the character already holds it.
func TryPickup(world donburi.World, charEntry *donburi.Entry) bool {
	ballEntry, ok := MatchBall(world)
	if !ok {
		return false
	}
	ball := components.Ball.Get(ballEntry)
	if ball.State != netconfig.BallFree {
		return false
	}

	char := components.Character.Get(charEntry)
	if char.HasBall || char.Defeated || !char.InputEnabled {
		return false
	}
	if centerDistance(charEntry, ballEntry) > cfg.Player.PickupRange+cfg.Ball.Radius {
		return false
	}

	grantPossession(ballEntry, charEntry)
	return true
}

// ResolvePickupClaim applies a remote peer's pickup of the ball. If both
// peers claimed the ball on the same tick the lower peer id wins; the local
// holder silently loses possession in that case.
func ResolvePickupClaim(world donburi.World, claimant *donburi.Entry) bool {
	ballEntry, ok := MatchBall(world)
	if !ok {
		return false
	}
	ball := components.Ball.Get(ballEntry)
	claimPeer := components.Owner.Get(claimant).Peer

	switch ball.State {
	case netconfig.BallFree:
		grantPossession(ballEntry, claimant)
		return true
	case netconfig.BallHeld:
		if ball.Holder == claimant.Entity() {
			return true // duplicate claim, already applied
		}
		holderEntry := world.Entry(ball.Holder)
		if claimPeer < components.Owner.Get(holderEntry).Peer {
			components.Character.Get(holderEntry).HasBall = false
			grantPossession(ballEntry, claimant)
			log.Printf("[possession] pickup conflict, peer %d wins", claimPeer)
			return true
		}
		return false
	default:
		return false
	}
}

func grantPossession(ballEntry, charEntry *donburi.Entry) {
	ball := components.Ball.Get(ballEntry)
	char := components.Character.Get(charEntry)

	ball.State = netconfig.BallHeld
	ball.Holder = charEntry.Entity()
	ball.Thrower = 0
	ball.Variant = netconfig.ThrowBasic
	ball.OscTicks = -1
	ball.FlightTicks = 0
	ball.LeftThrower = false
	ball.DodgeCredited = false
	char.HasBall = true

	phys := components.Physics.Get(ballEntry)
	phys.SpeedX = 0
	phys.SpeedY = 0

	// Ball authority follows possession.
	components.Owner.Get(ballEntry).Peer = components.Owner.Get(charEntry).Peer
	pinToHolder(ballEntry, charEntry)
}

// ThrowHeldBall transitions Held -> Thrown toward the opponent half of the
// court, with the variant's damage and speed. Direction is a function of the
// thrower's side, never of facing or input. The thrower earns the flat throw
// charge grant on success. Returns the ball entry so callers can publish the
// event.
func ThrowHeldBall(world donburi.World, charEntry *donburi.Entry, variant netconfig.ThrowVariant) (*donburi.Entry, bool) {
	ballEntry, ok := MatchBall(world)
	if !ok {
		return nil, false
	}
	ball := components.Ball.Get(ballEntry)
	char := components.Character.Get(charEntry)
	if ball.State != netconfig.BallHeld || ball.Holder != charEntry.Entity() {
		return nil, false
	}

	dirX := throwDirX(char.Side)
	dirY := -cfg.Ball.ThrowArc
	switch variant {
	case netconfig.ThrowJump, netconfig.ThrowUltimate, netconfig.ThrowOscillating:
		dirY = 0
	}

	charObj := components.Object.Get(charEntry)
	obj := components.Object.Get(ballEntry)
	obj.X = charObj.CenterX() + dirX*(charObj.W/2+cfg.Ball.Radius) - obj.W/2
	obj.Y = charObj.Y + charObj.H*0.25
	obj.Update()

	ball.State = netconfig.BallThrown
	ball.Thrower = charEntry.Entity()
	ball.Holder = 0
	ball.Variant = variant
	ball.Damage = VariantDamage(variant)
	ball.Speed = VariantSpeed(variant)
	ball.FlightTicks = 0
	ball.LeftThrower = false
	ball.DodgeCredited = false
	if variant == netconfig.ThrowOscillating {
		ball.OscTicks = 0
	} else {
		ball.OscTicks = -1
	}

	phys := components.Physics.Get(ballEntry)
	phys.SpeedX = dirX * ball.Speed
	phys.SpeedY = dirY

	char.HasBall = false
	components.Ability.Get(charEntry).ChargeAll(cfg.Charge.ThrowGrant)
	recordThrow(world, char.Side)
	return ballEntry, true
}

// CatchBall transitions Thrown -> Caught -> Held atomically: the trajectory
// is cleared and possession lands on the catcher in the same tick. Charge is
// granted per the grade, with the perfect bonus on top.
func CatchBall(world donburi.World, catcherEntry, ballEntry *donburi.Entry, grade netconfig.CatchGrade) bool {
	if !grade.Success() {
		return false
	}
	ball := components.Ball.Get(ballEntry)
	if ball.State != netconfig.BallThrown {
		return false
	}
	catcher := components.Character.Get(catcherEntry)
	if catcher.Defeated {
		return false
	}

	ball.State = netconfig.BallCaught
	grantPossession(ballEntry, catcherEntry)

	ab := components.Ability.Get(catcherEntry)
	ab.ChargeAll(cfg.Charge.CatchGrant)
	if grade == netconfig.CatchPerfect {
		ab.ChargeAll(cfg.Charge.PerfectBonus)
	}
	recordCatch(world, catcher.Side)
	return true
}

// DropBallFree transitions Thrown -> Free in place, keeping whatever speeds
// the caller left on the ball.
func DropBallFree(ballEntry *donburi.Entry) {
	ball := components.Ball.Get(ballEntry)
	ball.State = netconfig.BallFree
	ball.Holder = 0
	ball.Thrower = 0
	ball.OscTicks = -1
	ball.LeftThrower = false
	ball.DodgeCredited = false
}

// ForceResetBall returns the ball to center court at rest, Free, with
// authority handed back to the left peer. Used at round boundaries and when
// the ball escapes the arena.
func ForceResetBall(ballEntry *donburi.Entry, a *arena.Arena) {
	ball := components.Ball.Get(ballEntry)
	ball.State = netconfig.BallFree
	ball.Holder = 0
	ball.Thrower = 0
	ball.Variant = netconfig.ThrowBasic
	ball.OscTicks = -1
	ball.FlightTicks = 0
	ball.LeftThrower = false
	ball.DodgeCredited = false

	obj := components.Object.Get(ballEntry)
	obj.X = a.CenterX() - obj.W/2
	obj.Y = a.Height * 0.4
	obj.Update()

	phys := components.Physics.Get(ballEntry)
	phys.SpeedX = 0
	phys.SpeedY = 0

	components.Owner.Get(ballEntry).Peer = protocol.PeerLeft
}

// throwDirX maps a court side to its launch direction. The left side throws
// right and the right side throws left, toward the opponent.
func throwDirX(side netconfig.Side) float64 {
	if side == netconfig.SideRight {
		return -1
	}
	return 1
}

// VariantDamage maps a throw variant to its impact damage.
func VariantDamage(v netconfig.ThrowVariant) int {
	switch v {
	case netconfig.ThrowCharged:
		return cfg.Ball.ChargedDamage
	case netconfig.ThrowJump:
		return cfg.Ball.JumpDamage
	case netconfig.ThrowUltimate, netconfig.ThrowOscillating:
		return cfg.Ball.UltimateDamage
	case netconfig.ThrowVolley:
		return cfg.Ball.VolleyDamage
	default:
		return cfg.Ball.BasicDamage
	}
}

// VariantSpeed maps a throw variant to its launch speed.
func VariantSpeed(v netconfig.ThrowVariant) float64 {
	switch v {
	case netconfig.ThrowCharged:
		return cfg.Ball.ChargedSpeed
	case netconfig.ThrowJump:
		return cfg.Ball.JumpSpeed
	case netconfig.ThrowUltimate, netconfig.ThrowOscillating:
		return cfg.Ball.UltimateSpeed
	case netconfig.ThrowVolley:
		return cfg.Ball.VolleySpeed
	default:
		return cfg.Ball.BasicSpeed
	}
}

func recordThrow(world donburi.World, side netconfig.Side) {
	if matchEntry, ok := MatchState(world); ok {
		components.Match.Get(matchEntry).Scores[side].Throws++
	}
}

func recordCatch(world donburi.World, side netconfig.Side) {
	if matchEntry, ok := MatchState(world); ok {
		components.Match.Get(matchEntry).Scores[side].Catches++
	}
}

func pinToHolder(ballEntry, holderEntry *donburi.Entry) {
	holder := components.Character.Get(holderEntry)
	charObj := components.Object.Get(holderEntry)
	obj := components.Object.Get(ballEntry)
	obj.X = charObj.CenterX() + float64(holder.Facing)*(charObj.W/2) - obj.W/2
	obj.Y = charObj.Y + charObj.H*0.25
	obj.Update()
}

// NewBallSystem steps ball flight. The match ball is stepped only by its
// authority; mirrors position it from snapshots. Volley projectiles fly
// deterministically from their spawn, so mirrors step their motion too, but
// only the authoritative side resolves hits.
func NewBallSystem(a *arena.Arena, sink fx.Sink, resolver *network.Resolver, peer *network.Peer) func(e *ecs.ECS) {
	return func(e *ecs.ECS) {
		var expired []*donburi.Entry
		components.Ball.Each(e.World, func(entry *donburi.Entry) {
			mine := resolver.IsMine(entry)
			if !mine && !entry.HasComponent(tags.Projectile) {
				return
			}
			if stepBall(e, entry, a, sink, peer, mine) {
				expired = append(expired, entry)
			}
		})
		for _, entry := range expired {
			factory.DestroyProjectile(e, entry)
		}
	}
}

// stepBall advances one ball a single tick. Reports true when a volley
// projectile has expired and should be destroyed.
func stepBall(e *ecs.ECS, entry *donburi.Entry, a *arena.Arena, sink fx.Sink, peer *network.Peer, authoritative bool) bool {
	ball := components.Ball.Get(entry)

	if ball.LifetimeTicks > 0 {
		ball.LifetimeTicks--
		if ball.LifetimeTicks == 0 {
			return entry.HasComponent(tags.Projectile)
		}
	}

	switch ball.State {
	case netconfig.BallHeld:
		if !e.World.Valid(ball.Holder) {
			DropBallFree(entry)
			return false
		}
		holderEntry := e.World.Entry(ball.Holder)
		if components.Character.Get(holderEntry).Defeated {
			components.Character.Get(holderEntry).HasBall = false
			DropBallFree(entry)
			return false
		}
		pinToHolder(entry, holderEntry)
	case netconfig.BallThrown:
		stepThrown(e, entry, a, sink, peer, authoritative)
	case netconfig.BallFree:
		stepFree(entry, a)
	}
	return false
}

func stepThrown(e *ecs.ECS, entry *donburi.Entry, a *arena.Arena, sink fx.Sink, peer *network.Peer, authoritative bool) {
	ball := components.Ball.Get(entry)
	phys := components.Physics.Get(entry)
	obj := components.Object.Get(entry)

	ball.FlightTicks++

	// Self-catch arms once the ball has left the thrower's capture radius.
	if !ball.LeftThrower && e.World.Valid(ball.Thrower) {
		throwerEntry := e.World.Entry(ball.Thrower)
		if centerDistance(entry, throwerEntry) > cfg.Catch.CaptureRadius {
			ball.LeftThrower = true
		}
	}

	switch {
	case ball.OscTicks >= 0:
		phys.SpeedY = math.Sin(float64(ball.OscTicks)*cfg.Ability.OscFrequency) * cfg.Ability.OscAmplitude
		ball.OscTicks++
		if ball.OscTicks >= cfg.Ability.OscDuration {
			// Sinusoid over; normal decay takes the ball from here.
			ball.OscTicks = -1
		}
	case ball.Variant == netconfig.ThrowUltimate:
		// Empowered throws fly flat.
	default:
		phys.SpeedY += cfg.Ball.Gravity
	}

	if hit := moveBall(obj, phys); hit {
		// Environment kills the trajectory.
		if entry.HasComponent(tags.Projectile) {
			ball.LifetimeTicks = 1 // destroyed on the next step
			return
		}
		phys.SpeedX = -phys.SpeedX * cfg.Ball.BounceDamp
		phys.SpeedY = -math.Abs(phys.SpeedY) * cfg.Ball.BounceDamp
		DropBallFree(entry)
		return
	}

	if authoritative {
		checkCharacterHit(e, entry, sink, peer)
	}

	if !a.Contains(obj.CenterX(), obj.CenterY()) {
		if entry.HasComponent(tags.Projectile) {
			ball.LifetimeTicks = 1
			return
		}
		ForceResetBall(entry, a)
	}
}

func stepFree(entry *donburi.Entry, a *arena.Arena) {
	phys := components.Physics.Get(entry)
	obj := components.Object.Get(entry)

	phys.SpeedY += cfg.Ball.Gravity
	if phys.SpeedY > cfg.Player.MaxFallSpeed {
		phys.SpeedY = cfg.Player.MaxFallSpeed
	}
	if phys.OnGround != nil {
		switch {
		case phys.SpeedX > cfg.Ball.FreeFriction:
			phys.SpeedX -= cfg.Ball.FreeFriction
		case phys.SpeedX < -cfg.Ball.FreeFriction:
			phys.SpeedX += cfg.Ball.FreeFriction
		default:
			phys.SpeedX = 0
		}
	}

	moveBallFree(obj, phys)

	if !a.Contains(obj.CenterX(), obj.CenterY()) {
		ForceResetBall(entry, a)
	}
}

// moveBall advances a thrown ball and reports whether it struck a solid.
func moveBall(obj *components.ObjectData, phys *components.PhysicsData) bool {
	if check := obj.Check(phys.SpeedX, phys.SpeedY, tags.ResolvSolid); check != nil {
		if solids := check.ObjectsByTags(tags.ResolvSolid); len(solids) > 0 {
			contact := check.ContactWithObject(solids[0])
			obj.X += contact.X()
			obj.Y += contact.Y()
			obj.Update()
			return true
		}
	}
	obj.X += phys.SpeedX
	obj.Y += phys.SpeedY
	obj.Update()
	return false
}

// moveBallFree advances a loose ball, stopping on the floor and damping off
// walls.
func moveBallFree(obj *components.ObjectData, phys *components.PhysicsData) {
	if check := obj.Check(phys.SpeedX, 0, tags.ResolvSolid); check != nil {
		if solids := check.ObjectsByTags(tags.ResolvSolid); len(solids) > 0 {
			obj.X += check.ContactWithObject(solids[0]).X()
			phys.SpeedX = -phys.SpeedX * cfg.Ball.BounceDamp
		}
	} else {
		obj.X += phys.SpeedX
	}

	phys.OnGround = nil
	checkDist := phys.SpeedY
	if phys.SpeedY >= 0 {
		checkDist++
	}
	if check := obj.Check(0, checkDist, tags.ResolvSolid); check != nil {
		if solids := check.ObjectsByTags(tags.ResolvSolid); len(solids) > 0 {
			if phys.SpeedY >= 0 {
				obj.Y += check.ContactWithObject(solids[0]).Y()
				phys.OnGround = solids[0]
				phys.SpeedY = 0
			} else {
				obj.Y += check.ContactWithObject(solids[0]).Y()
				phys.SpeedY = 0
			}
		}
	} else {
		obj.Y += phys.SpeedY
	}
	obj.Update()
}

// checkCharacterHit resolves a thrown ball touching a character. Crouching
// under a high ball dodges it and earns dodge charge once per flight; any
// other contact queues damage and frees the ball.
func checkCharacterHit(e *ecs.ECS, entry *donburi.Entry, sink fx.Sink, peer *network.Peer) {
	ball := components.Ball.Get(entry)
	obj := components.Object.Get(entry)
	phys := components.Physics.Get(entry)

	check := obj.Check(0, 0, tags.ResolvCharacter)
	if check == nil {
		return
	}
	for _, targetObj := range check.ObjectsByTags(tags.ResolvCharacter) {
		targetEntry, ok := targetObj.Data.(*donburi.Entry)
		if !ok || !targetEntry.Valid() {
			continue
		}
		if targetEntry.Entity() == ball.Thrower {
			continue
		}
		target := components.Character.Get(targetEntry)
		if target.Defeated || target.IsTeleporting {
			continue
		}

		if target.Ducking && obj.CenterY() < targetObj.Y+targetObj.H*0.5 {
			if !ball.DodgeCredited {
				ball.DodgeCredited = true
				components.Ability.Get(targetEntry).ChargeAll(cfg.Charge.DodgeGrant)
			}
			continue
		}

		QueueDamage(targetEntry, ball.Damage, components.DamageBallHit, ball.Thrower)
		if peer != nil {
			sendDamageEvent(peer, targetEntry, ball.Thrower, ball.Damage, e.World)
		}
		fx.Emit(sink, fx.Request{Kind: fx.ScreenShake, X: obj.CenterX(), Y: obj.CenterY(), Magnitude: float64(ball.Damage) / 4})

		if entry.HasComponent(tags.Projectile) {
			ball.LifetimeTicks = 1
			return
		}
		phys.SpeedX = -phys.SpeedX * cfg.Ball.BounceDamp
		phys.SpeedY = -math.Abs(phys.SpeedY)*cfg.Ball.BounceDamp - 1
		DropBallFree(entry)
		return
	}
}

func sendDamageEvent(peer *network.Peer, targetEntry *donburi.Entry, attacker donburi.Entity, amount int, world donburi.World) {
	targetID := esync.GetNetworkId(targetEntry)
	if targetID == nil {
		return
	}
	var attackerID esync.NetworkId
	if world.Valid(attacker) {
		if id := esync.GetNetworkId(world.Entry(attacker)); id != nil {
			attackerID = *id
		}
	}
	if err := peer.SendEvent(messages.DamageEvent{TargetID: *targetID, AttackerID: attackerID, Amount: amount}); err != nil {
		log.Printf("[possession] damage event send: %v", err)
	}
}
