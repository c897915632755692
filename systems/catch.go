package systems

import (
	"log"

	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/fx"
	"github.com/halfcourt/dodgebrawl/network"
	"github.com/halfcourt/dodgebrawl/shared/messages"
	"github.com/halfcourt/dodgebrawl/shared/netconfig"
	"github.com/halfcourt/dodgebrawl/tags"
)

// ClassifyCatch grades a catch attempt by how long the ball has been inside
// the capture radius. Grades are monotonic in elapsed time.
func ClassifyCatch(elapsedTicks int) netconfig.CatchGrade {
	switch {
	case elapsedTicks <= cfg.Catch.PerfectTicks:
		return netconfig.CatchPerfect
	case elapsedTicks <= cfg.Catch.GoodTicks:
		return netconfig.CatchGood
	default:
		return netconfig.CatchTooLate
	}
}

// NewCatchSystem maintains the catch window on every locally simulated
// character and resolves catch attempts. A window opens when a catchable
// thrown ball enters the capture radius, accumulates elapsed ticks while it
// stays, and is invalidated the moment the ball leaves, lands, or is caught
// by someone else. Attempts outside any window grade as Miss.
func NewCatchSystem(sink fx.Sink, resolver *network.Resolver, peer *network.Peer) func(e *ecs.ECS) {
	return func(e *ecs.ECS) {
		tags.Character.Each(e.World, func(entry *donburi.Entry) {
			if !resolver.IsMine(entry) {
				return
			}
			updateCatchWindow(e, entry)

			char := components.Character.Get(entry)
			input := components.Input.Get(entry)
			if !input.Snapshot.CatchPressed || char.Defeated || !char.InputEnabled {
				return
			}
			resolveCatchAttempt(e, entry, sink, peer)
		})
	}
}

func updateCatchWindow(e *ecs.ECS, entry *donburi.Entry) {
	window := components.CatchWindow.Get(entry)
	if window.RetryTicks > 0 {
		window.RetryTicks--
	}

	ballEntry, ok := catchableBall(e, entry)
	if !ok {
		window.Clear()
		return
	}

	if !window.Active || window.WatchedBall != ballEntry.Entity() {
		// New window: a different ball entered the radius.
		window.Active = true
		window.WatchedBall = ballEntry.Entity()
		window.ElapsedTicks = 0
		return
	}
	window.ElapsedTicks++
}

// catchableBall returns the nearest thrown ball inside the character's
// capture radius that this character is allowed to catch. Volley projectiles
// are never catchable; they live out their timeout and expire. A thrower may
// not catch their own ball until it has left their capture radius once.
func catchableBall(e *ecs.ECS, charEntry *donburi.Entry) (*donburi.Entry, bool) {
	var best *donburi.Entry
	bestDist := cfg.Catch.CaptureRadius
	components.Ball.Each(e.World, func(ballEntry *donburi.Entry) {
		if ballEntry.HasComponent(tags.Projectile) {
			return
		}
		ball := components.Ball.Get(ballEntry)
		if ball.State != netconfig.BallThrown {
			return
		}
		if ball.Thrower == charEntry.Entity() && !ball.LeftThrower {
			return
		}
		if d := centerDistance(charEntry, ballEntry); d <= bestDist {
			best = ballEntry
			bestDist = d
		}
	})
	return best, best != nil
}

func resolveCatchAttempt(e *ecs.ECS, entry *donburi.Entry, sink fx.Sink, peer *network.Peer) {
	window := components.CatchWindow.Get(entry)
	if window.RetryTicks > 0 {
		return
	}
	window.RetryTicks = cfg.Catch.RetryCooldown

	grade := netconfig.CatchMiss
	var ballEntry *donburi.Entry
	if window.Active && e.World.Valid(window.WatchedBall) {
		ballEntry = e.World.Entry(window.WatchedBall)
		grade = ClassifyCatch(window.ElapsedTicks)
	}

	if grade.Success() && CatchBall(e.World, entry, ballEntry, grade) {
		window.Clear()
		obj := components.Object.Get(entry)
		fx.Emit(sink, fx.Request{Kind: fx.Glow, X: obj.CenterX(), Y: obj.CenterY(), Magnitude: 1})
		if peer != nil {
			if id := esync.GetNetworkId(entry); id != nil {
				if err := peer.SendEvent(messages.CatchEvent{CatcherID: *id, Grade: grade}); err != nil {
					log.Printf("[catch] event send: %v", err)
				}
			}
		}
		return
	}

	// Graded but failed, or pressed with no window. The ball flies on.
	log.Printf("[catch] attempt graded %s", grade)
	if peer != nil {
		if id := esync.GetNetworkId(entry); id != nil {
			if err := peer.SendEvent(messages.CatchFailEvent{CharacterID: *id, Grade: grade}); err != nil {
				log.Printf("[catch] event send: %v", err)
			}
		}
	}
}
