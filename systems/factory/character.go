package factory

import (
	"math/rand"

	"github.com/leap-fish/necs/esync"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/archetypes"
	"github.com/halfcourt/dodgebrawl/arena"
	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/shared/protocol"
	"github.com/halfcourt/dodgebrawl/tags"
)

// CreateCharacter spawns a character on its side's spawn point. The entity's
// network id is its owning peer's id.
func CreateCharacter(e *ecs.ECS, a *arena.Arena, peer esync.NetworkId, loadout cfg.Loadout) *donburi.Entry {
	entry := archetypes.Character.Spawn(e)

	side := protocol.SideFor(peer)
	spawn := a.Spawn(side)

	obj := resolv.NewObject(spawn.X, spawn.Y, cfg.Player.CollisionWidth, cfg.Player.CollisionHeight, tags.ResolvCharacter)
	obj.SetShape(resolv.NewRectangle(0, 0, cfg.Player.CollisionWidth, cfg.Player.CollisionHeight))
	obj.Data = entry
	components.Object.SetValue(entry, components.ObjectData{Object: obj})

	if spaceEntry, ok := components.Space.First(e.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}

	char := components.CharacterData{
		Health:          cfg.Player.Health,
		MaxHealth:       cfg.Player.Health,
		MovementEnabled: true,
		InputEnabled:    true,
		Side:            side,
		SpawnX:          spawn.X,
		SpawnY:          spawn.Y,
	}
	char.ResetForRound()
	components.Character.SetValue(entry, char)

	components.Ability.SetValue(entry, components.NewAbilityData(loadout))
	components.Physics.SetValue(entry, components.PhysicsData{
		Gravity:  cfg.Player.Gravity,
		Friction: cfg.Player.Friction,
		MaxSpeed: cfg.Player.MaxSpeed,
	})
	components.Owner.SetValue(entry, components.OwnerData{Peer: peer})

	entry.AddComponent(esync.NetworkIdComponent)
	esync.NetworkIdComponent.SetValue(entry, peer)

	return entry
}

// MarkBot tags a character as bot-driven and attaches its AI brain.
func MarkBot(entry *donburi.Entry, difficulty cfg.BotDifficulty, rng *rand.Rand) {
	entry.AddComponent(tags.Bot)
	entry.AddComponent(components.Bot)
	components.Bot.SetValue(entry, components.BotData{
		Difficulty: difficulty,
		Rand:       rng,
	})
}
