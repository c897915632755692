package config

// BotDifficulty affects reaction time and decision quality
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

// BotDifficultyConfig holds tuning values for bot behavior at a specific difficulty
type BotDifficultyConfig struct {
	ReactionDelay  int     // ticks to delay reactions
	CatchChance    float64 // probability the bot attempts a catch in its window
	DodgeChance    float64 // probability the bot jumps away from an inbound ball
	ThrowRange     float64 // horizontal distance at which the bot throws
	AbilityChance  float64 // per-decision probability of using a ready ability
}

// BotConfigData holds all bot-related configuration
type BotConfigData struct {
	Difficulties map[BotDifficulty]BotDifficultyConfig
}

// Bot holds bot AI configuration
var Bot BotConfigData

func init() {
	Bot = BotConfigData{
		Difficulties: map[BotDifficulty]BotDifficultyConfig{
			BotDifficultyEasy: {
				ReactionDelay: 30,
				CatchChance:   0.25,
				DodgeChance:   0.3,
				ThrowRange:    420,
				AbilityChance: 0.1,
			},
			BotDifficultyNormal: {
				ReactionDelay: 15,
				CatchChance:   0.5,
				DodgeChance:   0.55,
				ThrowRange:    520,
				AbilityChance: 0.25,
			},
			BotDifficultyHard: {
				ReactionDelay: 6,
				CatchChance:   0.8,
				DodgeChance:   0.8,
				ThrowRange:    640,
				AbilityChance: 0.45,
			},
		},
	}
}
