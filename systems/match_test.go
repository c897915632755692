package systems

import (
	"testing"

	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/shared/netconfig"
)

func TestMatchFlowsFromWaitingToPlaying(t *testing.T) {
	env := newTestEnv(t)
	step := NewMatchSystem(env.arena, env.resolver, nil)

	step(env.ecs)
	match := components.Match.Get(env.match)
	if match.State != netconfig.MatchStateCountdown {
		t.Fatalf("state = %v, want countdown offline", match.State)
	}
	if components.Character.Get(env.left).InputEnabled {
		t.Fatal("input enabled during countdown")
	}

	for i := 0; i < cfg.Match.CountdownTicks+1; i++ {
		step(env.ecs)
	}
	if match.State != netconfig.MatchStatePlaying {
		t.Fatalf("state = %v, want playing after countdown", match.State)
	}
	if !components.Character.Get(env.left).InputEnabled {
		t.Fatal("input not re-enabled at round start")
	}
}

func TestDefeatEndsRoundAndResets(t *testing.T) {
	env := newTestEnv(t)
	step := NewMatchSystem(env.arena, env.resolver, nil)

	match := components.Match.Get(env.match)
	match.State = netconfig.MatchStatePlaying

	right := components.Character.Get(env.right)
	right.Health = 0
	right.Defeated = true

	step(env.ecs)
	if match.State != netconfig.MatchStateRoundOver {
		t.Fatalf("state = %v, want round over", match.State)
	}
	if match.Scores[netconfig.SideLeft].RoundWins != 1 {
		t.Fatalf("left wins = %d, want 1", match.Scores[netconfig.SideLeft].RoundWins)
	}

	for i := 0; i < cfg.Match.RoundOverTicks+1; i++ {
		step(env.ecs)
	}
	if match.State != netconfig.MatchStateCountdown {
		t.Fatalf("state = %v, want countdown for the next round", match.State)
	}
	if match.Round != 2 {
		t.Fatalf("round = %d, want 2", match.Round)
	}
	if right.Defeated || right.Health != right.MaxHealth {
		t.Fatal("defeated character not revived by the reset")
	}
	if env.ballData().State != netconfig.BallFree {
		t.Fatal("ball not reset between rounds")
	}
}

func TestMatchFinishesAtRoundsToWin(t *testing.T) {
	env := newTestEnv(t)
	step := NewMatchSystem(env.arena, env.resolver, nil)

	match := components.Match.Get(env.match)
	match.State = netconfig.MatchStatePlaying
	match.Scores[netconfig.SideLeft].RoundWins = cfg.Match.RoundsToWin - 1

	components.Character.Get(env.right).Defeated = true
	step(env.ecs)

	for i := 0; i < cfg.Match.RoundOverTicks+1; i++ {
		step(env.ecs)
	}
	if match.State != netconfig.MatchStateFinished {
		t.Fatalf("state = %v, want finished", match.State)
	}
	if match.WinnerSide != int(netconfig.SideLeft) {
		t.Fatalf("winner = %d, want left", match.WinnerSide)
	}
}

func TestRoundResetCancelsEffects(t *testing.T) {
	env := newTestEnv(t)

	phys := components.Physics.Get(env.right)
	original := phys.MaxSpeed
	ExecuteVariant(env.ecs, env.arena, env.left, netconfig.VariantSlow)

	match := components.Match.Get(env.match)
	ResetRound(env.ecs, env.arena, match)

	if phys.MaxSpeed != original {
		t.Fatalf("speed = %v after reset, want %v", phys.MaxSpeed, original)
	}
	if components.Character.Get(env.right).InvulnTicks != cfg.Match.RespawnInvulnTicks {
		t.Fatal("respawn protection not armed")
	}
	obj := components.Object.Get(env.right)
	char := components.Character.Get(env.right)
	if obj.X != char.SpawnX || obj.Y != char.SpawnY {
		t.Fatal("character not returned to spawn")
	}
}
