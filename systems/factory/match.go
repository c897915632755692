package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/archetypes"
	"github.com/halfcourt/dodgebrawl/components"
)

// CreateMatch spawns the match-state singleton in the waiting phase.
func CreateMatch(e *ecs.ECS) *donburi.Entry {
	entry := archetypes.Match.Spawn(e)
	components.Match.SetValue(entry, components.NewMatchData())
	return entry
}
