package factory

import (
	"github.com/leap-fish/necs/esync"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/archetypes"
	"github.com/halfcourt/dodgebrawl/arena"
	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/shared/netconfig"
	"github.com/halfcourt/dodgebrawl/shared/protocol"
	"github.com/halfcourt/dodgebrawl/tags"
)

// CreateBall spawns the single match ball, free at center court. The lower
// peer id starts as ball authority.
func CreateBall(e *ecs.ECS, a *arena.Arena) *donburi.Entry {
	entry := archetypes.Ball.Spawn(e)

	size := cfg.Ball.Radius * 2
	obj := resolv.NewObject(a.CenterX()-cfg.Ball.Radius, a.Height/2, size, size, tags.ResolvBall)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	obj.Data = entry
	components.Object.SetValue(entry, components.ObjectData{Object: obj})

	if spaceEntry, ok := components.Space.First(e.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}

	components.Ball.SetValue(entry, components.BallData{
		State:         netconfig.BallFree,
		OscTicks:      -1,
		LifetimeTicks: -1,
	})
	components.Physics.SetValue(entry, components.PhysicsData{
		Gravity:  cfg.Ball.Gravity,
		Friction: cfg.Ball.FreeFriction,
	})
	components.Owner.SetValue(entry, components.OwnerData{Peer: protocol.PeerLeft})

	entry.AddComponent(esync.NetworkIdComponent)
	esync.NetworkIdComponent.SetValue(entry, protocol.BallID)

	return entry
}

// CreateProjectile spawns one volley projectile already in flight. Volley
// projectiles are not the match ball: they expire after a fixed lifetime and
// are destroyed outright rather than going Free.
func CreateProjectile(e *ecs.ECS, thrower *donburi.Entry, x, y, dirX, dirY float64) *donburi.Entry {
	entry := archetypes.Projectile.Spawn(e)

	size := cfg.Ball.Radius * 2
	obj := resolv.NewObject(x-cfg.Ball.Radius, y-cfg.Ball.Radius, size, size, tags.ResolvBall)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	obj.Data = entry
	components.Object.SetValue(entry, components.ObjectData{Object: obj})

	if spaceEntry, ok := components.Space.First(e.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}

	components.Ball.SetValue(entry, components.BallData{
		State:         netconfig.BallThrown,
		Thrower:       thrower.Entity(),
		Variant:       netconfig.ThrowVolley,
		Damage:        cfg.Ball.VolleyDamage,
		Speed:         cfg.Ball.VolleySpeed,
		OscTicks:      -1,
		LifetimeTicks: cfg.Ability.VolleyLifetime,
	})
	components.Physics.SetValue(entry, components.PhysicsData{
		SpeedX: dirX * cfg.Ball.VolleySpeed,
		SpeedY: dirY * cfg.Ball.VolleySpeed,
	})
	components.Owner.SetValue(entry, components.OwnerData{
		Peer: components.Owner.Get(thrower).Peer,
	})

	return entry
}

// DestroyProjectile removes a volley projectile and its collision object. If
// the projectile somehow ended up held, the holder's flag is cleared so the
// character is not stuck holding a destroyed entity.
func DestroyProjectile(e *ecs.ECS, entry *donburi.Entry) {
	ball := components.Ball.Get(entry)
	if ball.State == netconfig.BallHeld && e.World.Valid(ball.Holder) {
		components.Character.Get(e.World.Entry(ball.Holder)).HasBall = false
	}
	if entry.HasComponent(components.Object) {
		obj := components.Object.Get(entry)
		if spaceEntry, ok := components.Space.First(e.World); ok {
			components.Space.Get(spaceEntry).Remove(obj.Object)
		}
	}
	e.World.Remove(entry.Entity())
}
