package systems

import (
	"testing"

	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
)

func TestDamageReducesHealthAndGrantsCharge(t *testing.T) {
	env := newTestEnv(t)

	before := components.Ability.Get(env.right).Charges()
	QueueDamage(env.right, 20, components.DamageBallHit, env.left.Entity())
	NewDamageSystem(nil, env.resolver)(env.ecs)

	char := components.Character.Get(env.right)
	if char.Health != cfg.Player.Health-20 {
		t.Fatalf("health = %d, want %d", char.Health, cfg.Player.Health-20)
	}
	if char.InvulnTicks != cfg.Player.InvulnTicks {
		t.Fatal("post-hit invulnerability not armed")
	}

	want := 20 * cfg.Charge.DamageGrantPer
	after := components.Ability.Get(env.right).Charges()
	for i := range after {
		if after[i] != before[i]+want {
			t.Fatalf("slot %d charge = %v, want %v", i, after[i], before[i]+want)
		}
	}
}

func TestDamageIgnoredWhileInvulnerable(t *testing.T) {
	env := newTestEnv(t)
	components.Character.Get(env.right).InvulnTicks = 10

	QueueDamage(env.right, 20, components.DamageBallHit, env.left.Entity())
	NewDamageSystem(nil, env.resolver)(env.ecs)

	char := components.Character.Get(env.right)
	if char.Health != cfg.Player.Health {
		t.Fatalf("health = %d behind invulnerability, want %d", char.Health, cfg.Player.Health)
	}

	// The queued event is consumed either way.
	if env.right.HasComponent(components.DamageEvent) {
		t.Fatal("damage event not drained")
	}
}

func TestDamageMergesSameTickEvents(t *testing.T) {
	env := newTestEnv(t)

	QueueDamage(env.right, 10, components.DamageBallHit, env.left.Entity())
	QueueDamage(env.right, 15, components.DamageBallHit, env.left.Entity())
	NewDamageSystem(nil, env.resolver)(env.ecs)

	char := components.Character.Get(env.right)
	if char.Health != cfg.Player.Health-25 {
		t.Fatalf("health = %d, want %d", char.Health, cfg.Player.Health-25)
	}
}

func TestZeroHealthMarksDefeated(t *testing.T) {
	env := newTestEnv(t)

	QueueDamage(env.right, cfg.Player.Health+50, components.DamageBallHit, env.left.Entity())
	NewDamageSystem(nil, env.resolver)(env.ecs)

	char := components.Character.Get(env.right)
	if char.Health != 0 {
		t.Fatalf("health = %d, want clamped to 0", char.Health)
	}
	if !char.Defeated {
		t.Fatal("character at zero health not defeated")
	}
}

func TestDamageUpdatesMatchScores(t *testing.T) {
	env := newTestEnv(t)

	QueueDamage(env.right, 30, components.DamageBallHit, env.left.Entity())
	NewDamageSystem(nil, env.resolver)(env.ecs)

	match := components.Match.Get(env.match)
	right := components.Character.Get(env.right)
	if match.Scores[right.Side].DamageTaken != 30 {
		t.Fatalf("taken = %d, want 30", match.Scores[right.Side].DamageTaken)
	}
	if match.Scores[right.Side.Opposite()].DamageDealt != 30 {
		t.Fatalf("dealt = %d, want 30", match.Scores[right.Side.Opposite()].DamageDealt)
	}
}
