// Package sim assembles the gameplay core: world creation, system ordering,
// and the fixed-rate step both frontends and the headless runner drive.
package sim

import (
	"log"
	"math/rand"

	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/arena"
	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/fx"
	"github.com/halfcourt/dodgebrawl/network"
	"github.com/halfcourt/dodgebrawl/progression"
	"github.com/halfcourt/dodgebrawl/shared/netconfig"
	"github.com/halfcourt/dodgebrawl/shared/protocol"
	"github.com/halfcourt/dodgebrawl/systems"
	"github.com/halfcourt/dodgebrawl/systems/factory"
)

// Config selects how a simulation is assembled.
type Config struct {
	Mode  network.Mode
	Arena *arena.Arena

	// Networked mode only.
	Peer      *network.Peer
	LocalPeer esync.NetworkId

	// Offline mode only: the right side is bot-driven.
	Bot           bool
	BotDifficulty cfg.BotDifficulty
	Seed          int64

	LeftLoadout  cfg.Loadout
	RightLoadout cfg.Loadout

	FX       fx.Sink
	Recorder progression.Recorder
}

// Simulation owns the world and steps it at the fixed tick rate.
type Simulation struct {
	ECS      *ecs.ECS
	Resolver *network.Resolver

	arena    *arena.Arena
	peer     *network.Peer
	recorder progression.Recorder
	recorded bool

	left  *donburi.Entry
	right *donburi.Entry
	ball  *donburi.Entry
	match *donburi.Entry
}

// New builds a ready-to-step simulation. System registration order is the
// per-tick execution order: inbound replication first, then input sources,
// local simulation, and outbound replication last.
func New(c Config) *Simulation {
	if c.Arena == nil {
		c.Arena = arena.Default()
	}
	if c.Recorder == nil {
		c.Recorder = progression.NopRecorder{}
	}

	e := ecs.NewECS(donburi.NewWorld())
	resolver := network.NewResolver(c.Mode)
	if c.Mode == network.ModeNetworked {
		resolver.SetLocalPeer(c.LocalPeer)
	}

	s := &Simulation{
		ECS:      e,
		Resolver: resolver,
		arena:    c.Arena,
		peer:     c.Peer,
		recorder: c.Recorder,
	}

	factory.CreateSpace(e, c.Arena)
	s.match = factory.CreateMatch(e)
	s.left = factory.CreateCharacter(e, c.Arena, protocol.PeerLeft, c.LeftLoadout)
	s.right = factory.CreateCharacter(e, c.Arena, protocol.PeerRight, c.RightLoadout)
	s.ball = factory.CreateBall(e, c.Arena)

	if c.Mode == network.ModeOffline && c.Bot {
		factory.MarkBot(s.right, c.BotDifficulty, rand.New(rand.NewSource(c.Seed)))
	}

	e.AddSystem(systems.NewNetApplySystem(c.Arena, c.FX, resolver, c.Peer))
	e.AddSystem(systems.NewBotSystem())
	e.AddSystem(systems.NewMovementSystem(resolver, c.Peer))
	e.AddSystem(systems.NewBallSystem(c.Arena, c.FX, resolver, c.Peer))
	e.AddSystem(systems.NewCatchSystem(c.FX, resolver, c.Peer))
	e.AddSystem(systems.NewAbilitySystem(c.Arena, c.FX, resolver, c.Peer))
	e.AddSystem(systems.NewStatusSystem(resolver))
	e.AddSystem(systems.NewDamageSystem(c.FX, resolver))
	e.AddSystem(systems.NewMatchSystem(c.Arena, resolver, c.Peer))
	e.AddSystem(systems.NewNetPublishSystem(resolver, c.Peer))
	e.AddSystem(systems.NewNetInterpSystem(resolver))

	return s
}

// Step advances the world one tick. In networked mode it first mirrors the
// peer's connection state into the ownership resolver.
func (s *Simulation) Step() {
	if s.peer != nil {
		s.Resolver.SetReady(s.peer.Ready())
		if id := s.peer.PeerID(); id != 0 && id != s.Resolver.LocalPeer() {
			s.Resolver.SetLocalPeer(id)
		}
	}
	s.ECS.Update()
	s.recordIfFinished()
}

// MarkBot hands a side's character to the built-in AI. Only meaningful in
// offline mode.
func (s *Simulation) MarkBot(side netconfig.Side, difficulty cfg.BotDifficulty, seed int64) {
	entry := s.characterBySide(side)
	if entry == nil {
		return
	}
	factory.MarkBot(entry, difficulty, rand.New(rand.NewSource(seed)))
}

// SetInput supplies the tick's input snapshot for a side's character. The
// snapshot is consumed by this tick's movement, catch and ability systems.
func (s *Simulation) SetInput(side netconfig.Side, snapshot components.InputSnapshot) {
	entry := s.characterBySide(side)
	if entry == nil {
		return
	}
	components.Input.Get(entry).Snapshot = snapshot
}

// Character returns a side's character state.
func (s *Simulation) Character(side netconfig.Side) *components.CharacterData {
	entry := s.characterBySide(side)
	if entry == nil {
		return nil
	}
	return components.Character.Get(entry)
}

// Charges returns a side's three slot charge values.
func (s *Simulation) Charges(side netconfig.Side) [3]float64 {
	entry := s.characterBySide(side)
	if entry == nil {
		return [3]float64{}
	}
	return components.Ability.Get(entry).Charges()
}

// Ball returns the match ball state.
func (s *Simulation) Ball() *components.BallData {
	return components.Ball.Get(s.ball)
}

// Match returns the match state singleton.
func (s *Simulation) Match() *components.MatchData {
	return components.Match.Get(s.match)
}

// Finished reports whether the match has resolved.
func (s *Simulation) Finished() bool {
	return s.Match().State == netconfig.MatchStateFinished
}

func (s *Simulation) characterBySide(side netconfig.Side) *donburi.Entry {
	if side == netconfig.SideLeft {
		return s.left
	}
	return s.right
}

// recordIfFinished writes the local player's result to the progression
// recorder exactly once per match.
func (s *Simulation) recordIfFinished() {
	if s.recorded || !s.Finished() {
		return
	}
	s.recorded = true

	localSide := netconfig.SideLeft
	if s.Resolver.Mode() == network.ModeNetworked {
		localSide = protocol.SideFor(s.Resolver.LocalPeer())
	}
	match := s.Match()
	score := match.Scores[localSide]
	result := progression.MatchResult{
		Won:         match.WinnerSide == int(localSide),
		RoundsWon:   score.RoundWins,
		RoundsLost:  match.Scores[localSide.Opposite()].RoundWins,
		DamageDealt: score.DamageDealt,
		DamageTaken: score.DamageTaken,
		Catches:     score.Catches,
		Throws:      score.Throws,
	}
	if err := s.recorder.RecordMatch(result); err != nil {
		log.Printf("[sim] match result not recorded: %v", err)
	}
}
