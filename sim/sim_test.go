package sim

import (
	"testing"

	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/fx"
	"github.com/halfcourt/dodgebrawl/network"
	"github.com/halfcourt/dodgebrawl/shared/netconfig"
)

func inputRight() components.InputSnapshot {
	return components.InputSnapshot{Horizontal: 1}
}

func newOfflineSim(seed int64) *Simulation {
	return New(Config{
		Mode:          network.ModeOffline,
		Bot:           true,
		BotDifficulty: cfg.BotDifficultyNormal,
		Seed:          seed,
		LeftLoadout:   cfg.DefaultLoadout(),
		RightLoadout:  cfg.DefaultLoadout(),
	})
}

func TestOfflineSimReachesPlaying(t *testing.T) {
	s := newOfflineSim(1)

	for i := 0; i < cfg.Match.CountdownTicks+10; i++ {
		s.Step()
	}
	if got := s.Match().State; got != netconfig.MatchStatePlaying {
		t.Fatalf("match state = %v, want playing", got)
	}
	if s.Match().Tick == 0 {
		t.Fatal("tick counter never advanced")
	}
}

func TestBotMatchRunsWithoutStalling(t *testing.T) {
	s := newOfflineSim(42)
	s.MarkBot(netconfig.SideLeft, cfg.BotDifficultyNormal, 43)

	// A couple of simulated minutes; the bots must at least contest the ball.
	for i := 0; i < 120*cfg.TickRate && !s.Finished(); i++ {
		s.Step()
	}

	match := s.Match()
	throws := match.Scores[netconfig.SideLeft].Throws + match.Scores[netconfig.SideRight].Throws
	if throws == 0 {
		t.Fatal("no throws in two minutes of bot play")
	}
}

func TestFxRequestsFlowToSink(t *testing.T) {
	rec := &fx.Recorder{}
	s := New(Config{
		Mode:          network.ModeOffline,
		Bot:           true,
		BotDifficulty: cfg.BotDifficultyHard,
		Seed:          7,
		LeftLoadout:   cfg.DefaultLoadout(),
		RightLoadout:  cfg.DefaultLoadout(),
		FX:            rec,
	})
	s.MarkBot(netconfig.SideLeft, cfg.BotDifficultyHard, 8)

	for i := 0; i < 120*cfg.TickRate && len(rec.Requests) == 0; i++ {
		s.Step()
	}
	if len(rec.Requests) == 0 {
		t.Fatal("no presentation requests after two minutes of play")
	}
}

func TestSetInputDrivesCharacter(t *testing.T) {
	s := New(Config{
		Mode:         network.ModeOffline,
		LeftLoadout:  cfg.DefaultLoadout(),
		RightLoadout: cfg.DefaultLoadout(),
	})

	// Skip the countdown so input is live.
	for i := 0; i < cfg.Match.CountdownTicks+10; i++ {
		s.Step()
	}

	for i := 0; i < 30; i++ {
		s.SetInput(netconfig.SideLeft, inputRight())
		s.Step()
	}
	if s.Character(netconfig.SideLeft) == nil {
		t.Fatal("left character missing")
	}
	if got := s.Character(netconfig.SideLeft).Facing; got != 1 {
		t.Fatalf("facing = %d, want right", got)
	}
}
