package systems

import (
	"testing"

	"github.com/yohamta/donburi"

	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/shared/netconfig"
	"github.com/halfcourt/dodgebrawl/systems/factory"
)

func TestClassifyCatchMonotonic(t *testing.T) {
	cases := []struct {
		elapsed int
		want    netconfig.CatchGrade
	}{
		{0, netconfig.CatchPerfect},
		{cfg.Catch.PerfectTicks, netconfig.CatchPerfect},
		{cfg.Catch.PerfectTicks + 1, netconfig.CatchGood},
		{cfg.Catch.GoodTicks, netconfig.CatchGood},
		{cfg.Catch.GoodTicks + 1, netconfig.CatchTooLate},
		{cfg.Catch.GoodTicks * 10, netconfig.CatchTooLate},
	}
	for _, tc := range cases {
		if got := ClassifyCatch(tc.elapsed); got != tc.want {
			t.Errorf("ClassifyCatch(%d) = %v, want %v", tc.elapsed, got, tc.want)
		}
	}

	// Once past a boundary the grade never improves again.
	prev := ClassifyCatch(0)
	for elapsed := 1; elapsed <= cfg.Catch.GoodTicks+10; elapsed++ {
		got := ClassifyCatch(elapsed)
		if got < prev {
			t.Fatalf("grade improved from %v to %v at %d ticks", prev, got, elapsed)
		}
		prev = got
	}
}

// parkThrownBallNear puts a hostile thrown ball inside the character's
// capture radius with no velocity, so window ticks accumulate predictably.
func parkThrownBallNear(env *testEnv, t *testing.T, catcher *donburi.Entry) {
	t.Helper()
	env.giveBall(t, env.left)
	if _, ok := ThrowHeldBall(env.ecs.World, env.left, netconfig.ThrowBasic); !ok {
		t.Fatal("throw failed")
	}

	ball := env.ballData()
	ball.LeftThrower = true

	obj := components.Object.Get(env.ball)
	target := components.Object.Get(catcher)
	obj.X = target.X + target.W
	obj.Y = target.Y
	obj.Update()

	phys := components.Physics.Get(env.ball)
	phys.SpeedX = 0
	phys.SpeedY = 0
}

func TestCatchWindowOpensAndGradesPerfect(t *testing.T) {
	env := newTestEnv(t)
	parkThrownBallNear(env, t, env.right)

	step := NewCatchSystem(nil, env.resolver, nil)

	// Let the window open and accumulate a few ticks.
	for i := 0; i < 5; i++ {
		step(env.ecs)
	}
	window := components.CatchWindow.Get(env.right)
	if !window.Active {
		t.Fatal("window never opened")
	}

	components.Input.Get(env.right).Snapshot.CatchPressed = true
	step(env.ecs)

	if env.ballData().State != netconfig.BallHeld {
		t.Fatalf("ball state = %v, want held after perfect catch", env.ballData().State)
	}
	if env.ballData().Holder != env.right.Entity() {
		t.Fatal("catch did not hand possession to the catcher")
	}
}

func TestCatchAttemptOutsideWindowIsMiss(t *testing.T) {
	env := newTestEnv(t)

	// No thrown ball anywhere near; press catch anyway.
	components.Input.Get(env.right).Snapshot.CatchPressed = true
	step := NewCatchSystem(nil, env.resolver, nil)
	step(env.ecs)

	if components.Character.Get(env.right).HasBall {
		t.Fatal("caught thin air")
	}
	window := components.CatchWindow.Get(env.right)
	if window.RetryTicks != cfg.Catch.RetryCooldown {
		t.Fatalf("retry cooldown = %d, want %d", window.RetryTicks, cfg.Catch.RetryCooldown)
	}
}

func TestCatchRetryCooldownGatesAttempts(t *testing.T) {
	env := newTestEnv(t)
	parkThrownBallNear(env, t, env.right)

	step := NewCatchSystem(nil, env.resolver, nil)

	// Burn an attempt with no window yet established by pressing on the very
	// first tick the window opens is fine; instead force a miss first.
	window := components.CatchWindow.Get(env.right)
	window.RetryTicks = cfg.Catch.RetryCooldown

	components.Input.Get(env.right).Snapshot.CatchPressed = true
	step(env.ecs)

	if env.ballData().State == netconfig.BallHeld {
		t.Fatal("catch resolved during retry cooldown")
	}
}

func TestWindowInvalidatesWhenBallCaughtElsewhere(t *testing.T) {
	env := newTestEnv(t)
	parkThrownBallNear(env, t, env.right)

	step := NewCatchSystem(nil, env.resolver, nil)
	for i := 0; i < 3; i++ {
		step(env.ecs)
	}
	if !components.CatchWindow.Get(env.right).Active {
		t.Fatal("window never opened")
	}

	// The ball lands Free before the attempt resolves.
	DropBallFree(env.ball)
	step(env.ecs)

	if components.CatchWindow.Get(env.right).Active {
		t.Fatal("window survived ball state change")
	}
}

func TestVolleyProjectileNotCatchable(t *testing.T) {
	env := newTestEnv(t)

	target := components.Object.Get(env.right)
	proj := factory.CreateProjectile(env.ecs, env.left, target.X+target.W, target.Y, 0, 0)
	components.Physics.Get(proj).SpeedX = 0

	step := NewCatchSystem(nil, env.resolver, nil)
	for i := 0; i < 5; i++ {
		step(env.ecs)
	}
	if components.CatchWindow.Get(env.right).Active {
		t.Fatal("projectile opened a catch window")
	}

	components.Input.Get(env.right).Snapshot.CatchPressed = true
	step(env.ecs)

	if components.Character.Get(env.right).HasBall {
		t.Fatal("caught a volley projectile")
	}
	if components.Ball.Get(proj).State != netconfig.BallThrown {
		t.Fatalf("projectile state = %v, want thrown", components.Ball.Get(proj).State)
	}
}

func TestDestroyProjectileClearsStuckHolder(t *testing.T) {
	env := newTestEnv(t)

	proj := factory.CreateProjectile(env.ecs, env.left, 100, 100, 1, 0)
	ball := components.Ball.Get(proj)
	ball.State = netconfig.BallHeld
	ball.Holder = env.right.Entity()
	components.Character.Get(env.right).HasBall = true

	factory.DestroyProjectile(env.ecs, proj)

	if components.Character.Get(env.right).HasBall {
		t.Fatal("holder flag survived projectile destruction")
	}
}

func TestSelfCatchBlockedUntilArmed(t *testing.T) {
	env := newTestEnv(t)
	env.giveBall(t, env.left)
	if _, ok := ThrowHeldBall(env.ecs.World, env.left, netconfig.ThrowBasic); !ok {
		t.Fatal("throw failed")
	}

	// The ball is still within the thrower's capture radius and unarmed.
	ball := env.ballData()
	ball.LeftThrower = false
	obj := components.Object.Get(env.ball)
	leftObj := components.Object.Get(env.left)
	obj.X = leftObj.X + leftObj.W
	obj.Y = leftObj.Y
	obj.Update()

	step := NewCatchSystem(nil, env.resolver, nil)
	step(env.ecs)
	if components.CatchWindow.Get(env.left).Active {
		t.Fatal("thrower opened a window on their own unarmed ball")
	}

	ball.LeftThrower = true
	step(env.ecs)
	if !components.CatchWindow.Get(env.left).Active {
		t.Fatal("armed ball did not open the thrower's window")
	}
}
