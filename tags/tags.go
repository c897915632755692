package tags

import "github.com/yohamta/donburi"

var (
	Character  = donburi.NewTag().SetName("Character")
	Ball       = donburi.NewTag().SetName("Ball")
	Projectile = donburi.NewTag().SetName("Projectile")
	Bot        = donburi.NewTag().SetName("Bot")
)

// Resolv tags for the collision space
const (
	ResolvSolid     = "solid"
	ResolvCharacter = "Character"
	ResolvBall      = "Ball"
	ResolvDeadZone  = "deadzone"
)
