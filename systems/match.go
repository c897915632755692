package systems

import (
	"log"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/arena"
	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/network"
	"github.com/halfcourt/dodgebrawl/shared/messages"
	"github.com/halfcourt/dodgebrawl/shared/netconfig"
	"github.com/halfcourt/dodgebrawl/shared/protocol"
	"github.com/halfcourt/dodgebrawl/systems/factory"
	"github.com/halfcourt/dodgebrawl/tags"
)

// NewMatchSystem advances the match state machine. Both peers run it over
// the same replicated state; the left peer additionally announces round
// resets so a peer that resolves the round late snaps into agreement.
func NewMatchSystem(a *arena.Arena, resolver *network.Resolver, peer *network.Peer) func(e *ecs.ECS) {
	return func(e *ecs.ECS) {
		matchEntry, ok := MatchState(e.World)
		if !ok {
			return
		}
		match := components.Match.Get(matchEntry)
		match.Tick++

		switch match.State {
		case netconfig.MatchStateWaiting:
			if resolver.Mode() == network.ModeOffline || (peer != nil && peer.Ready()) {
				startCountdown(e, match)
			}

		case netconfig.MatchStateCountdown:
			match.Timer--
			match.CountdownValue = match.Timer/cfg.TickRate + 1
			if match.Timer <= 0 {
				match.CountdownValue = -1
				match.State = netconfig.MatchStatePlaying
				setInputEnabled(e, true)
				log.Printf("[match] round %d live", match.Round)
			}

		case netconfig.MatchStatePlaying:
			resolveDefeats(e, match)

		case netconfig.MatchStateRoundOver:
			match.Timer--
			if match.Timer > 0 {
				return
			}
			winnerSide := netconfig.Side(match.RoundWinner)
			if match.Scores[winnerSide].RoundWins >= cfg.Match.RoundsToWin {
				match.State = netconfig.MatchStateFinished
				match.Timer = cfg.Match.ResultTicks
				match.WinnerSide = match.RoundWinner
				log.Printf("[match] %s side wins the match", winnerSide)
				return
			}
			ResetRound(e, a, match)
			if resolver.Mode() == network.ModeNetworked && resolver.LocalPeer() == protocol.PeerLeft && peer != nil {
				if err := peer.SendEvent(messages.RoundResetEvent{Round: match.Round}); err != nil {
					log.Printf("[match] round reset send: %v", err)
				}
			}
			startCountdown(e, match)

		case netconfig.MatchStateFinished:
			if match.Timer > 0 {
				match.Timer--
			}
		}
	}
}

func startCountdown(e *ecs.ECS, match *components.MatchData) {
	match.State = netconfig.MatchStateCountdown
	match.Timer = cfg.Match.CountdownTicks
	match.CountdownValue = match.Timer/cfg.TickRate + 1
	setInputEnabled(e, false)
}

func resolveDefeats(e *ecs.ECS, match *components.MatchData) {
	tags.Character.Each(e.World, func(entry *donburi.Entry) {
		char := components.Character.Get(entry)
		if !char.Defeated || match.State != netconfig.MatchStatePlaying {
			return
		}
		winner := char.Side.Opposite()
		match.Scores[winner].RoundWins++
		match.RoundWinner = int(winner)
		match.State = netconfig.MatchStateRoundOver
		match.Timer = cfg.Match.RoundOverTicks
		log.Printf("[match] round %d to %s (%d-%d)", match.Round, winner,
			match.Scores[netconfig.SideLeft].RoundWins, match.Scores[netconfig.SideRight].RoundWins)
	})
}

// ResetRound restores round-start state: characters back on their spawns
// with effects cancelled and brief spawn protection, the ball free at center
// court, and every leftover volley projectile removed.
func ResetRound(e *ecs.ECS, a *arena.Arena, match *components.MatchData) {
	match.Round++
	match.RoundWinner = -1

	tags.Character.Each(e.World, func(entry *donburi.Entry) {
		CancelEffects(entry)
		char := components.Character.Get(entry)
		char.ResetForRound()
		char.InvulnTicks = cfg.Match.RespawnInvulnTicks

		phys := components.Physics.Get(entry)
		phys.SpeedX = 0
		phys.SpeedY = 0
		phys.MaxSpeed = cfg.Player.MaxSpeed

		obj := components.Object.Get(entry)
		obj.X = char.SpawnX
		obj.Y = char.SpawnY
		obj.Update()

		components.CatchWindow.Get(entry).Clear()
		components.Ability.Get(entry).VolleyRemaining = 0
	})

	var projectiles []*donburi.Entry
	tags.Projectile.Each(e.World, func(entry *donburi.Entry) {
		projectiles = append(projectiles, entry)
	})
	for _, entry := range projectiles {
		factory.DestroyProjectile(e, entry)
	}

	if ballEntry, ok := MatchBall(e.World); ok {
		ForceResetBall(ballEntry, a)
	}
}

func setInputEnabled(e *ecs.ECS, enabled bool) {
	tags.Character.Each(e.World, func(entry *donburi.Entry) {
		char := components.Character.Get(entry)
		if !char.Defeated {
			char.InputEnabled = enabled
		}
	})
}
