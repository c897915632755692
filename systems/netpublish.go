package systems

import (
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/network"
	"github.com/halfcourt/dodgebrawl/shared/messages"
	"github.com/halfcourt/dodgebrawl/tags"
)

// NewNetPublishSystem publishes snapshots of every locally authoritative
// entity at the configured interval. Events are sent at their mutation sites;
// this system only carries the periodic state stream.
func NewNetPublishSystem(resolver *network.Resolver, peer *network.Peer) func(e *ecs.ECS) {
	return func(e *ecs.ECS) {
		if peer == nil || !peer.Ready() {
			return
		}
		matchEntry, ok := MatchState(e.World)
		if !ok {
			return
		}
		tick := components.Match.Get(matchEntry).Tick
		if tick%int64(cfg.Net.SnapshotInterval) != 0 {
			return
		}

		tags.Character.Each(e.World, func(entry *donburi.Entry) {
			if !resolver.IsMine(entry) {
				return
			}
			publishCharacter(peer, entry, tick)
		})

		if ballEntry, ok := MatchBall(e.World); ok && resolver.IsMine(ballEntry) {
			publishBall(e.World, peer, ballEntry, tick)
		}
	}
}

func publishCharacter(peer *network.Peer, entry *donburi.Entry, tick int64) {
	id := esync.GetNetworkId(entry)
	if id == nil {
		return
	}
	char := components.Character.Get(entry)
	obj := components.Object.Get(entry)
	phys := components.Physics.Get(entry)

	peer.PublishSnapshot(messages.CharacterSnapshot{
		CharacterID: *id,
		Tick:        tick,
		X:           obj.X,
		Y:           obj.Y,
		VelX:        phys.SpeedX,
		VelY:        phys.SpeedY,
		Grounded:    char.Grounded,
		Ducking:     char.Ducking,
		HasBall:     char.HasBall,
		Facing:      int(char.Facing),
		Health:      char.Health,
		Charges:     components.Ability.Get(entry).Charges(),
	})
}

func publishBall(world donburi.World, peer *network.Peer, entry *donburi.Entry, tick int64) {
	ball := components.Ball.Get(entry)
	obj := components.Object.Get(entry)
	phys := components.Physics.Get(entry)

	snap := messages.BallSnapshot{
		Tick:    tick,
		State:   ball.State,
		X:       obj.X,
		Y:       obj.Y,
		VelX:    phys.SpeedX,
		VelY:    phys.SpeedY,
		Variant: ball.Variant,
	}
	if world.Valid(ball.Holder) {
		if id := esync.GetNetworkId(world.Entry(ball.Holder)); id != nil {
			snap.HolderID = *id
		}
	}
	if world.Valid(ball.Thrower) {
		if id := esync.GetNetworkId(world.Entry(ball.Thrower)); id != nil {
			snap.ThrowerID = *id
		}
	}
	peer.PublishSnapshot(snap)
}
