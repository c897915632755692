package systems

import (
	"testing"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/arena"
	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/network"
	"github.com/halfcourt/dodgebrawl/shared/protocol"
	"github.com/halfcourt/dodgebrawl/systems/factory"
)

// testEnv is a fully assembled offline world with two characters and the
// match ball, no systems registered. Tests drive system closures directly.
type testEnv struct {
	ecs      *ecs.ECS
	arena    *arena.Arena
	resolver *network.Resolver

	left  *donburi.Entry
	right *donburi.Entry
	ball  *donburi.Entry
	match *donburi.Entry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	a := arena.Default()
	e := ecs.NewECS(donburi.NewWorld())

	env := &testEnv{
		ecs:      e,
		arena:    a,
		resolver: network.NewResolver(network.ModeOffline),
	}
	factory.CreateSpace(e, a)
	env.match = factory.CreateMatch(e)
	env.left = factory.CreateCharacter(e, a, protocol.PeerLeft, cfg.DefaultLoadout())
	env.right = factory.CreateCharacter(e, a, protocol.PeerRight, cfg.DefaultLoadout())
	env.ball = factory.CreateBall(e, a)
	return env
}

// giveBall moves the free ball next to the character and picks it up.
func (env *testEnv) giveBall(t *testing.T, entry *donburi.Entry) {
	t.Helper()

	charObj := components.Object.Get(entry)
	ballObj := components.Object.Get(env.ball)
	ballObj.X = charObj.X
	ballObj.Y = charObj.Y
	ballObj.Update()

	if !TryPickup(env.ecs.World, entry) {
		t.Fatal("pickup failed in test setup")
	}
}

func (env *testEnv) ballData() *components.BallData {
	return components.Ball.Get(env.ball)
}
