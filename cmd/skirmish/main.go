// Command skirmish runs a headless offline match between two bots and prints
// the result. Useful for balance passes and as a smoke test of the full
// gameplay core without a frontend.
package main

import (
	"flag"
	"log"
	"time"

	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/network"
	"github.com/halfcourt/dodgebrawl/progression"
	"github.com/halfcourt/dodgebrawl/shared/netconfig"
	"github.com/halfcourt/dodgebrawl/sim"
)

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "bot RNG seed")
	difficulty := flag.Int("difficulty", int(cfg.BotDifficultyNormal), "bot difficulty (0-2)")
	realtime := flag.Bool("realtime", false, "step at the real tick rate instead of flat out")
	persist := flag.Bool("persist", false, "record the left side's result to the local profile")
	flag.Parse()

	var recorder progression.Recorder = progression.NopRecorder{}
	if *persist {
		r, err := progression.Open("dodgebrawl")
		if err != nil {
			log.Fatalf("[skirmish] progression storage: %v", err)
		}
		recorder = r
	}

	s := sim.New(sim.Config{
		Mode:          network.ModeOffline,
		Bot:           true,
		BotDifficulty: cfg.BotDifficulty(*difficulty),
		Seed:          *seed,
		LeftLoadout:   cfg.DefaultLoadout(),
		RightLoadout:  cfg.DefaultLoadout(),
		Recorder:      recorder,
	})
	s.MarkBot(netconfig.SideLeft, cfg.BotDifficulty(*difficulty), *seed+1)

	ticker := time.NewTicker(time.Second / cfg.TickRate)
	defer ticker.Stop()

	const maxTicks = 30 * 60 * cfg.TickRate // 30 minute safety cap
	for tick := 0; tick < maxTicks && !s.Finished(); tick++ {
		if *realtime {
			<-ticker.C
		}
		s.Step()
	}

	match := s.Match()
	if !s.Finished() {
		log.Printf("[skirmish] match did not finish within the cap")
		return
	}
	winner := netconfig.Side(match.WinnerSide)
	log.Printf("[skirmish] %s side wins %d-%d after %d rounds",
		winner,
		match.Scores[winner].RoundWins,
		match.Scores[winner.Opposite()].RoundWins,
		match.Round)
	for _, side := range []netconfig.Side{netconfig.SideLeft, netconfig.SideRight} {
		sc := match.Scores[side]
		log.Printf("[skirmish] %s: throws=%d catches=%d dealt=%d taken=%d",
			side, sc.Throws, sc.Catches, sc.DamageDealt, sc.DamageTaken)
	}
}
