package archetypes

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/tags"
)

var (
	Character = newArchetype(
		tags.Character,
		components.Character,
		components.Ability,
		components.Status,
		components.CatchWindow,
		components.Input,
		components.Object,
		components.Physics,
		components.Owner,
		components.NetInterp,
	)
	Ball = newArchetype(
		tags.Ball,
		components.Ball,
		components.Object,
		components.Physics,
		components.Owner,
		components.NetInterp,
	)
	Projectile = newArchetype(
		tags.Projectile,
		components.Ball,
		components.Object,
		components.Physics,
		components.Owner,
	)
	Space = newArchetype(
		components.Space,
	)
	Match = newArchetype(
		components.Match,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
