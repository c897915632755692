package components

import (
	"math/rand"

	"github.com/yohamta/donburi"

	"github.com/halfcourt/dodgebrawl/config"
)

// BotData is the offline AI brain attached next to the Bot tag. Decisions
// are re-rolled whenever the reaction timer expires.
type BotData struct {
	Difficulty config.BotDifficulty

	ReactionTicks  int // ticks until the next decision
	ThrowHoldTicks int // remaining ticks to keep the throw button held

	Rand *rand.Rand
}

var Bot = donburi.NewComponentType[BotData]()
