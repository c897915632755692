package systems

import (
	"testing"

	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/shared/netconfig"
	"github.com/halfcourt/dodgebrawl/shared/protocol"
)

func TestPickupRequiresProximity(t *testing.T) {
	env := newTestEnv(t)

	// Ball spawns at center court, far from the left spawn.
	if TryPickup(env.ecs.World, env.left) {
		t.Fatal("pickup succeeded out of range")
	}
	if env.ballData().State != netconfig.BallFree {
		t.Fatalf("ball state = %v, want free", env.ballData().State)
	}
}

func TestPickupGrantsPossessionAndAuthority(t *testing.T) {
	env := newTestEnv(t)
	env.giveBall(t, env.left)

	ball := env.ballData()
	if ball.State != netconfig.BallHeld {
		t.Fatalf("ball state = %v, want held", ball.State)
	}
	if ball.Holder != env.left.Entity() {
		t.Fatal("holder is not the picking character")
	}
	if !components.Character.Get(env.left).HasBall {
		t.Fatal("character HasBall not set")
	}
	if got := components.Owner.Get(env.ball).Peer; got != protocol.PeerLeft {
		t.Fatalf("ball authority = %d, want %d", got, protocol.PeerLeft)
	}
}

func TestPickupWhileHeldFails(t *testing.T) {
	env := newTestEnv(t)
	env.giveBall(t, env.left)

	// Move the holder's opponent onto the ball; it is not free anymore.
	rightObj := components.Object.Get(env.right)
	ballObj := components.Object.Get(env.ball)
	rightObj.X = ballObj.X
	rightObj.Y = ballObj.Y
	rightObj.Update()

	if TryPickup(env.ecs.World, env.right) {
		t.Fatal("picked up a held ball")
	}
	if env.ballData().Holder != env.left.Entity() {
		t.Fatal("possession moved without a throw")
	}
}

func TestThrowTransitionsAndGrantsCharge(t *testing.T) {
	env := newTestEnv(t)
	env.giveBall(t, env.left)

	before := components.Ability.Get(env.left).Charges()
	ballEntry, ok := ThrowHeldBall(env.ecs.World, env.left, netconfig.ThrowBasic)
	if !ok {
		t.Fatal("throw failed")
	}

	ball := components.Ball.Get(ballEntry)
	if ball.State != netconfig.BallThrown {
		t.Fatalf("ball state = %v, want thrown", ball.State)
	}
	if ball.Thrower != env.left.Entity() {
		t.Fatal("thrower not recorded")
	}
	if components.Character.Get(env.left).HasBall {
		t.Fatal("thrower still marked holding")
	}
	if ball.Damage != cfg.Ball.BasicDamage || ball.Speed != cfg.Ball.BasicSpeed {
		t.Fatalf("variant stats = (%d, %v), want (%d, %v)",
			ball.Damage, ball.Speed, cfg.Ball.BasicDamage, cfg.Ball.BasicSpeed)
	}

	after := components.Ability.Get(env.left).Charges()
	for i := range after {
		if after[i] != before[i]+cfg.Charge.ThrowGrant {
			t.Fatalf("slot %d charge = %v, want %v", i, after[i], before[i]+cfg.Charge.ThrowGrant)
		}
	}
}

func TestThrowAlwaysTravelsTowardOpponentSide(t *testing.T) {
	env := newTestEnv(t)

	// Left thrower facing their own half still throws right.
	env.giveBall(t, env.left)
	components.Character.Get(env.left).Facing = -1
	if _, ok := ThrowHeldBall(env.ecs.World, env.left, netconfig.ThrowBasic); !ok {
		t.Fatal("throw failed")
	}
	if phys := components.Physics.Get(env.ball); phys.SpeedX <= 0 {
		t.Fatalf("left thrower speed x = %v, want positive", phys.SpeedX)
	}

	// And the mirror case from the right side.
	DropBallFree(env.ball)
	env.giveBall(t, env.right)
	components.Character.Get(env.right).Facing = 1
	if _, ok := ThrowHeldBall(env.ecs.World, env.right, netconfig.ThrowBasic); !ok {
		t.Fatal("throw failed")
	}
	if phys := components.Physics.Get(env.ball); phys.SpeedX >= 0 {
		t.Fatalf("right thrower speed x = %v, want negative", phys.SpeedX)
	}
}

func TestThrowWithoutBallFails(t *testing.T) {
	env := newTestEnv(t)
	if _, ok := ThrowHeldBall(env.ecs.World, env.left, netconfig.ThrowBasic); ok {
		t.Fatal("threw a ball nobody holds")
	}
}

func TestCatchRotatesPossession(t *testing.T) {
	env := newTestEnv(t)
	env.giveBall(t, env.left)
	if _, ok := ThrowHeldBall(env.ecs.World, env.left, netconfig.ThrowBasic); !ok {
		t.Fatal("throw failed")
	}

	before := components.Ability.Get(env.right).Charges()
	if !CatchBall(env.ecs.World, env.right, env.ball, netconfig.CatchPerfect) {
		t.Fatal("catch failed")
	}

	ball := env.ballData()
	if ball.State != netconfig.BallHeld {
		t.Fatalf("ball state = %v, want held", ball.State)
	}
	if ball.Holder != env.right.Entity() {
		t.Fatal("catcher did not take possession")
	}
	if got := components.Owner.Get(env.ball).Peer; got != protocol.PeerRight {
		t.Fatalf("ball authority = %d, want %d", got, protocol.PeerRight)
	}

	want := cfg.Charge.CatchGrant + cfg.Charge.PerfectBonus
	after := components.Ability.Get(env.right).Charges()
	for i := range after {
		if after[i] != before[i]+want {
			t.Fatalf("slot %d charge = %v, want %v", i, after[i], before[i]+want)
		}
	}
}

func TestCatchFailsOnFreeBall(t *testing.T) {
	env := newTestEnv(t)
	if CatchBall(env.ecs.World, env.right, env.ball, netconfig.CatchGood) {
		t.Fatal("caught a ball that was never thrown")
	}
}

func TestCatchWithFailingGradeRejected(t *testing.T) {
	env := newTestEnv(t)
	env.giveBall(t, env.left)
	ThrowHeldBall(env.ecs.World, env.left, netconfig.ThrowBasic)

	if CatchBall(env.ecs.World, env.right, env.ball, netconfig.CatchTooLate) {
		t.Fatal("too-late grade completed a catch")
	}
	if env.ballData().State != netconfig.BallThrown {
		t.Fatal("failed catch changed ball state")
	}
}

func TestPickupConflictLowerPeerWins(t *testing.T) {
	env := newTestEnv(t)
	env.giveBall(t, env.right)

	// Left's claim arrives after right already holds; left has the lower id.
	if !ResolvePickupClaim(env.ecs.World, env.left) {
		t.Fatal("lower peer id claim rejected")
	}
	if env.ballData().Holder != env.left.Entity() {
		t.Fatal("possession not transferred to lower peer id")
	}
	if components.Character.Get(env.right).HasBall {
		t.Fatal("loser still marked holding")
	}

	// The mirror case: right's late claim against left's possession loses.
	if ResolvePickupClaim(env.ecs.World, env.right) {
		t.Fatal("higher peer id claim accepted against a holder")
	}
}

func TestForceResetBall(t *testing.T) {
	env := newTestEnv(t)
	env.giveBall(t, env.right)

	ForceResetBall(env.ball, env.arena)

	ball := env.ballData()
	if ball.State != netconfig.BallFree {
		t.Fatalf("ball state = %v, want free", ball.State)
	}
	if got := components.Owner.Get(env.ball).Peer; got != protocol.PeerLeft {
		t.Fatalf("ball authority = %d, want %d", got, protocol.PeerLeft)
	}
	obj := components.Object.Get(env.ball)
	if obj.CenterX() != env.arena.CenterX() {
		t.Fatalf("ball x = %v, want center %v", obj.CenterX(), env.arena.CenterX())
	}
}

func TestOscillationRevertsToGravity(t *testing.T) {
	env := newTestEnv(t)
	env.giveBall(t, env.left)
	if _, ok := ThrowHeldBall(env.ecs.World, env.left, netconfig.ThrowOscillating); !ok {
		t.Fatal("throw failed")
	}

	// Jump to the final sinusoid tick.
	ball := env.ballData()
	ball.OscTicks = cfg.Ability.OscDuration - 1

	step := NewBallSystem(env.arena, nil, env.resolver, nil)
	step(env.ecs)
	if ball.OscTicks != -1 {
		t.Fatalf("osc ticks = %d after the sinusoid, want -1", ball.OscTicks)
	}

	phys := components.Physics.Get(env.ball)
	before := phys.SpeedY
	step(env.ecs)
	if phys.SpeedY != before+cfg.Ball.Gravity {
		t.Fatalf("speed y = %v, want %v after oscillation ends", phys.SpeedY, before+cfg.Ball.Gravity)
	}
}

func TestThrownBallArmsSelfCatchAfterLeavingRadius(t *testing.T) {
	env := newTestEnv(t)
	env.giveBall(t, env.left)
	ThrowHeldBall(env.ecs.World, env.left, netconfig.ThrowBasic)

	if env.ballData().LeftThrower {
		t.Fatal("self-catch armed at release")
	}

	// Fly until the ball clears the thrower's capture radius.
	step := NewBallSystem(env.arena, nil, env.resolver, nil)
	for i := 0; i < cfg.TickRate && !env.ballData().LeftThrower; i++ {
		step(env.ecs)
	}
	if !env.ballData().LeftThrower {
		t.Fatal("self-catch never armed in flight")
	}
}
