package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/archetypes"
	"github.com/halfcourt/dodgebrawl/arena"
	"github.com/halfcourt/dodgebrawl/components"
)

// CreateSpace builds the collision space singleton from the arena solids.
func CreateSpace(e *ecs.ECS, a *arena.Arena) *donburi.Entry {
	entry := archetypes.Space.Spawn(e)
	components.Space.SetValue(entry, components.SpaceData{Space: a.BuildSpace()})
	return entry
}
