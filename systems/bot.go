package systems

import (
	"math"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/shared/netconfig"
	"github.com/halfcourt/dodgebrawl/tags"
)

// NewBotSystem drives Bot-tagged characters by writing their input snapshot
// each tick, exactly as a human frontend would. It runs before the movement
// system so the snapshot is consumed in the same tick.
func NewBotSystem() func(e *ecs.ECS) {
	return func(e *ecs.ECS) {
		tags.Bot.Each(e.World, func(entry *donburi.Entry) {
			stepBot(e, entry)
		})
	}
}

func stepBot(e *ecs.ECS, entry *donburi.Entry) {
	bot := components.Bot.Get(entry)
	char := components.Character.Get(entry)
	input := components.Input.Get(entry)
	input.Snapshot = components.InputSnapshot{}

	if char.Defeated || !char.InputEnabled || bot.Rand == nil {
		return
	}
	diff := cfg.Bot.Difficulties[bot.Difficulty]

	if bot.ReactionTicks > 0 {
		bot.ReactionTicks--
	}

	ballEntry, ok := MatchBall(e.World)
	if !ok {
		return
	}
	ball := components.Ball.Get(ballEntry)
	obj := components.Object.Get(entry)
	ballObj := components.Object.Get(ballEntry)

	switch {
	case char.HasBall:
		botThrowPlan(e, entry, bot, diff)

	case ball.State == netconfig.BallFree:
		// Chase the loose ball.
		dx := ballObj.CenterX() - obj.CenterX()
		if math.Abs(dx) > 4 {
			input.Snapshot.Horizontal = math.Copysign(1, dx)
		}
		if math.Abs(dx) < cfg.Player.PickupRange {
			input.Snapshot.PickupPressed = true
		}

	case ball.State == netconfig.BallThrown && ball.Thrower != entry.Entity():
		botDefensePlan(e, entry, bot, diff)

	default:
		// Drift back toward the home spawn while waiting.
		dx := char.SpawnX - obj.X
		if math.Abs(dx) > 12 {
			input.Snapshot.Horizontal = math.Copysign(1, dx)
		}
	}
}

// botThrowPlan closes to throw range and releases, sometimes charged,
// sometimes through a ready ability slot.
func botThrowPlan(e *ecs.ECS, entry *donburi.Entry, bot *components.BotData, diff cfg.BotDifficultyConfig) {
	char := components.Character.Get(entry)
	input := components.Input.Get(entry)
	obj := components.Object.Get(entry)

	opp, ok := Opponent(e.World, entry)
	if !ok {
		return
	}
	oppObj := components.Object.Get(opp)
	dx := oppObj.CenterX() - obj.CenterX()

	if math.Abs(dx) > diff.ThrowRange {
		input.Snapshot.Horizontal = math.Copysign(1, dx)
		return
	}
	if bot.ReactionTicks > 0 {
		return
	}

	if bot.Rand.Float64() < diff.AbilityChance {
		ab := components.Ability.Get(entry)
		for slot := netconfig.SlotID(0); slot < netconfig.SlotCount; slot++ {
			if ab.Slots[slot].Ready() {
				switch slot {
				case netconfig.SlotUltimate:
					input.Snapshot.UltimatePressed = true
				case netconfig.SlotTrick:
					input.Snapshot.TrickPressed = true
				case netconfig.SlotTreat:
					input.Snapshot.TreatPressed = true
				}
				bot.ReactionTicks = diff.ReactionDelay
				return
			}
		}
	}

	// Hold for a charged throw roughly half the time.
	if bot.ThrowHoldTicks == 0 && char.ThrowChargeTicks == 0 {
		input.Snapshot.ThrowPressed = true
		if bot.Rand.Float64() < 0.5 {
			bot.ThrowHoldTicks = cfg.Ball.ChargedThrowTicks + 2
		} else {
			bot.ThrowHoldTicks = 2
		}
	}
	if bot.ThrowHoldTicks > 0 {
		bot.ThrowHoldTicks--
		input.Snapshot.ThrowHeld = bot.ThrowHoldTicks > 0
		if bot.ThrowHoldTicks == 0 {
			bot.ReactionTicks = diff.ReactionDelay
		}
	}
}

// botDefensePlan reacts to an inbound ball: attempt a catch, dodge, or eat
// the hit when the dice say so.
func botDefensePlan(e *ecs.ECS, entry *donburi.Entry, bot *components.BotData, diff cfg.BotDifficultyConfig) {
	input := components.Input.Get(entry)
	window := components.CatchWindow.Get(entry)

	if window.Active && bot.ReactionTicks == 0 {
		roll := bot.Rand.Float64()
		switch {
		case roll < diff.CatchChance:
			input.Snapshot.CatchPressed = true
		case roll < diff.CatchChance+diff.DodgeChance:
			input.Snapshot.DuckHeld = true
		}
		bot.ReactionTicks = diff.ReactionDelay
	}
}
