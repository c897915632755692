package systems

import (
	"testing"

	"github.com/yohamta/donburi"

	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/shared/netconfig"
	"github.com/halfcourt/dodgebrawl/tags"
)

func fillSlot(entry *donburi.Entry, slot netconfig.SlotID) {
	ab := components.Ability.Get(entry)
	ab.Slots[slot].Charge = ab.Slots[slot].Required
	ab.Slots[slot].CooldownTicks = 0
}

func TestActivateSlotConsumesChargeAndArmsCooldown(t *testing.T) {
	env := newTestEnv(t)
	fillSlot(env.left, netconfig.SlotTrick) // freeze in the default loadout

	if !ActivateSlot(env.ecs, env.arena, nil, nil, env.left, netconfig.SlotTrick) {
		t.Fatal("ready slot did not activate")
	}

	ab := components.Ability.Get(env.left)
	if ab.Slots[netconfig.SlotTrick].Charge != 0 {
		t.Fatalf("charge = %v after activation, want 0", ab.Slots[netconfig.SlotTrick].Charge)
	}
	if ab.Slots[netconfig.SlotTrick].CooldownTicks != cfg.Charge.Cooldown[netconfig.SlotTrick] {
		t.Fatal("cooldown not armed")
	}

	// Refill during cooldown; the slot must stay gated.
	fillSlotChargeOnly(env.left, netconfig.SlotTrick)
	if ActivateSlot(env.ecs, env.arena, nil, nil, env.left, netconfig.SlotTrick) {
		t.Fatal("slot activated while on cooldown")
	}
}

func fillSlotChargeOnly(entry *donburi.Entry, slot netconfig.SlotID) {
	ab := components.Ability.Get(entry)
	ab.Slots[slot].Charge = ab.Slots[slot].Required
}

func TestEmpoweredThrowWithoutBallBurnsCharge(t *testing.T) {
	env := newTestEnv(t)
	fillSlot(env.left, netconfig.SlotUltimate)

	// The activation itself succeeds; only the throw routine no-ops.
	if !ActivateSlot(env.ecs, env.arena, nil, nil, env.left, netconfig.SlotUltimate) {
		t.Fatal("ready slot did not activate without the ball")
	}
	ab := components.Ability.Get(env.left)
	if ab.Slots[netconfig.SlotUltimate].Charge != 0 {
		t.Fatalf("charge = %v after activation, want 0", ab.Slots[netconfig.SlotUltimate].Charge)
	}
	if ab.Slots[netconfig.SlotUltimate].CooldownTicks != cfg.Charge.Cooldown[netconfig.SlotUltimate] {
		t.Fatal("cooldown not armed on possession-less activation")
	}
	if env.ballData().State != netconfig.BallFree {
		t.Fatalf("ball state = %v, want free after no-op throw", env.ballData().State)
	}

	fillSlot(env.left, netconfig.SlotUltimate)
	env.giveBall(t, env.left)
	if !ActivateSlot(env.ecs, env.arena, nil, nil, env.left, netconfig.SlotUltimate) {
		t.Fatal("empowered throw failed with the ball")
	}
	ball := env.ballData()
	if ball.State != netconfig.BallThrown || ball.Variant != netconfig.ThrowUltimate {
		t.Fatalf("ball = (%v, %v), want thrown ultimate", ball.State, ball.Variant)
	}
	if ball.Damage != cfg.Ball.UltimateDamage {
		t.Fatalf("damage = %d, want %d", ball.Damage, cfg.Ball.UltimateDamage)
	}
}

func TestFreezeDisablesAndRestores(t *testing.T) {
	env := newTestEnv(t)

	ExecuteVariant(env.ecs, env.arena, env.left, netconfig.VariantFreeze)

	right := components.Character.Get(env.right)
	if right.MovementEnabled || right.InputEnabled {
		t.Fatal("freeze did not disable the opponent")
	}

	// Defeat the freezer mid-effect; the timer must still expire cleanly.
	components.Character.Get(env.left).Defeated = true

	step := NewStatusSystem(env.resolver)
	for i := 0; i < cfg.Ability.FreezeDuration; i++ {
		step(env.ecs)
	}
	if !right.MovementEnabled || !right.InputEnabled {
		t.Fatal("freeze did not restore after its duration")
	}
}

func TestSlowCapturesAndRestoresExactSpeed(t *testing.T) {
	env := newTestEnv(t)
	phys := components.Physics.Get(env.right)
	original := phys.MaxSpeed

	ExecuteVariant(env.ecs, env.arena, env.left, netconfig.VariantSlow)
	if phys.MaxSpeed != original*cfg.Ability.SlowFactor {
		t.Fatalf("slowed speed = %v, want %v", phys.MaxSpeed, original*cfg.Ability.SlowFactor)
	}

	// Re-applying mid-effect refreshes the timer without compounding.
	ExecuteVariant(env.ecs, env.arena, env.left, netconfig.VariantSlow)
	if phys.MaxSpeed != original*cfg.Ability.SlowFactor {
		t.Fatal("slow compounded on refresh")
	}

	step := NewStatusSystem(env.resolver)
	for i := 0; i < cfg.Ability.SlowDuration; i++ {
		step(env.ecs)
	}
	if phys.MaxSpeed != original {
		t.Fatalf("restored speed = %v, want %v", phys.MaxSpeed, original)
	}
}

func TestHasteCapturesAndRestoresExactSpeed(t *testing.T) {
	env := newTestEnv(t)
	phys := components.Physics.Get(env.left)
	original := phys.MaxSpeed

	ExecuteVariant(env.ecs, env.arena, env.left, netconfig.VariantHaste)
	if phys.MaxSpeed != original*cfg.Ability.HasteFactor {
		t.Fatalf("hasted speed = %v, want %v", phys.MaxSpeed, original*cfg.Ability.HasteFactor)
	}

	step := NewStatusSystem(env.resolver)
	for i := 0; i < cfg.Ability.HasteDuration; i++ {
		step(env.ecs)
	}
	if phys.MaxSpeed != original {
		t.Fatalf("restored speed = %v, want %v", phys.MaxSpeed, original)
	}
}

func TestShieldBlocksDamage(t *testing.T) {
	env := newTestEnv(t)

	ExecuteVariant(env.ecs, env.arena, env.left, netconfig.VariantShield)
	if !components.Character.Get(env.left).Invulnerable() {
		t.Fatal("shield did not grant invulnerability")
	}

	QueueDamage(env.left, 25, components.DamageBallHit, env.right.Entity())
	NewDamageSystem(nil, env.resolver)(env.ecs)

	char := components.Character.Get(env.left)
	if char.Health != char.MaxHealth {
		t.Fatalf("health = %d behind a shield, want %d", char.Health, char.MaxHealth)
	}
}

func TestShockQueuesUnavoidableDamage(t *testing.T) {
	env := newTestEnv(t)

	ExecuteVariant(env.ecs, env.arena, env.left, netconfig.VariantShock)
	NewDamageSystem(nil, env.resolver)(env.ecs)

	right := components.Character.Get(env.right)
	want := cfg.Player.Health - cfg.Ability.ShockDamage
	if right.Health != want {
		t.Fatalf("health = %d after shock, want %d", right.Health, want)
	}
}

func TestVolleySpawnsConfiguredProjectileCount(t *testing.T) {
	env := newTestEnv(t)
	env.giveBall(t, env.left)

	ExecuteVariant(env.ecs, env.arena, env.left, netconfig.VariantVolley)
	if env.ballData().State != netconfig.BallThrown {
		t.Fatal("volley did not throw the match ball")
	}

	step := NewAbilitySystem(env.arena, nil, env.resolver, nil)
	for i := 0; i < cfg.Ability.VolleyDelayTicks*cfg.Ability.VolleyCount+1; i++ {
		step(env.ecs)
	}

	var projectiles int
	tags.Projectile.Each(env.ecs.World, func(_ *donburi.Entry) {
		projectiles++
	})
	if projectiles != cfg.Ability.VolleyCount-1 {
		t.Fatalf("projectiles = %d, want %d", projectiles, cfg.Ability.VolleyCount-1)
	}
}

func TestOscillatingThrowStartsSinusoid(t *testing.T) {
	env := newTestEnv(t)
	env.giveBall(t, env.left)

	ExecuteVariant(env.ecs, env.arena, env.left, netconfig.VariantOscillating)
	ball := env.ballData()
	if ball.State != netconfig.BallThrown || ball.OscTicks != 0 {
		t.Fatalf("ball = (%v, osc %d), want thrown with oscillation armed", ball.State, ball.OscTicks)
	}
}

func TestBlinkSequenceReturnsHome(t *testing.T) {
	env := newTestEnv(t)

	ExecuteVariant(env.ecs, env.arena, env.left, netconfig.VariantBlink)
	char := components.Character.Get(env.left)
	if !char.IsTeleporting {
		t.Fatal("blink did not mark the character untargetable")
	}

	step := NewStatusSystem(env.resolver)
	limit := int(cfg.Ability.BlinkTravelTicks)*2 + cfg.Ability.BlinkHoldTicks + 8
	for i := 0; i < limit && char.IsTeleporting; i++ {
		step(env.ecs)
	}
	if char.IsTeleporting {
		t.Fatal("blink never completed")
	}

	status := components.Status.Get(env.left)
	if status.BlinkPhase != components.BlinkIdle {
		t.Fatalf("blink phase = %v, want idle", status.BlinkPhase)
	}
	obj := components.Object.Get(env.left)
	if obj.X != status.BlinkReturnX {
		t.Fatalf("return x = %v, want %v", obj.X, status.BlinkReturnX)
	}
}
