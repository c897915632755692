package components

import "github.com/yohamta/donburi"

// CatchWindowData tracks an in-progress catch attempt: which thrown ball is
// inside the character's capture radius and for how long. Zero value means no
// active attempt.
type CatchWindowData struct {
	Active       bool
	WatchedBall  donburi.Entity
	ElapsedTicks int
	RetryTicks   int // cooldown before the next attempt may be graded
}

var CatchWindow = donburi.NewComponentType[CatchWindowData]()

// Clear invalidates the current attempt without touching the retry cooldown.
func (c *CatchWindowData) Clear() {
	c.Active = false
	c.WatchedBall = 0
	c.ElapsedTicks = 0
}
