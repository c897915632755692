package components

import (
	"testing"

	"github.com/halfcourt/dodgebrawl/config"
)

func TestAddChargeClampsAtRequired(t *testing.T) {
	s := AbilitySlot{Required: 100, Rate: 1}
	s.AddCharge(60)
	s.AddCharge(60)
	if s.Charge != 100 {
		t.Fatalf("charge = %v, want clamped at 100", s.Charge)
	}
}

func TestAddChargeNoOpWhenFull(t *testing.T) {
	s := AbilitySlot{Required: 100, Rate: 1, Charge: 100}
	s.AddCharge(50)
	if s.Charge != 100 {
		t.Fatalf("charge = %v, full slot must ignore grants", s.Charge)
	}
}

func TestAddChargeAppliesRate(t *testing.T) {
	s := AbilitySlot{Required: 100, Rate: 0.5}
	s.AddCharge(40)
	if s.Charge != 20 {
		t.Fatalf("charge = %v, want 20 at rate 0.5", s.Charge)
	}
}

func TestTryActivateLifecycle(t *testing.T) {
	s := AbilitySlot{Required: 100, Rate: 1, CooldownTotal: 30}

	if s.TryActivate() {
		t.Fatal("activated with no charge")
	}

	s.AddCharge(100)
	if !s.TryActivate() {
		t.Fatal("full slot did not activate")
	}
	if s.Charge != 0 {
		t.Fatalf("charge = %v after activation, want 0", s.Charge)
	}
	if s.CooldownTicks != 30 {
		t.Fatalf("cooldown = %d, want 30", s.CooldownTicks)
	}

	// Full again but still cooling down.
	s.AddCharge(100)
	if s.TryActivate() {
		t.Fatal("activated during cooldown")
	}

	for i := 0; i < 30; i++ {
		s.Tick()
	}
	if !s.TryActivate() {
		t.Fatal("did not activate after cooldown expired")
	}
}

func TestSlotsChargeIndependently(t *testing.T) {
	a := NewAbilityData(config.DefaultLoadout())
	a.Slots[0].Charge = a.Slots[0].Required // ultimate already full

	a.ChargeAll(10)

	if a.Slots[0].Charge != a.Slots[0].Required {
		t.Fatal("full slot overcharged")
	}
	if a.Slots[1].Charge != 10 || a.Slots[2].Charge != 10 {
		t.Fatalf("charges = %v, want 10 on the open slots", a.Charges())
	}
}
