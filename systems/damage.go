package systems

import (
	"log"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/halfcourt/dodgebrawl/components"
	cfg "github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/fx"
	"github.com/halfcourt/dodgebrawl/network"
)

// QueueDamage attaches a pending damage event to the target. Events queued
// against the same target in one tick merge; the drain happens once per tick
// in the damage system.
func QueueDamage(targetEntry *donburi.Entry, amount int, source components.DamageSource, attacker donburi.Entity) {
	if targetEntry.HasComponent(components.DamageEvent) {
		ev := components.DamageEvent.Get(targetEntry)
		ev.Amount += amount
		return
	}
	donburi.Add(targetEntry, components.DamageEvent, &components.DamageEventData{
		Amount:   amount,
		Source:   source,
		Attacker: attacker,
	})
}

// NewDamageSystem drains queued damage events. Invulnerable targets shrug the
// whole event off; otherwise health drops, the target earns charge in
// proportion to the damage, post-hit invulnerability arms, and a character at
// zero health is marked defeated for the match system to resolve.
func NewDamageSystem(sink fx.Sink, resolver *network.Resolver) func(e *ecs.ECS) {
	return func(e *ecs.ECS) {
		var drained []*donburi.Entry
		components.DamageEvent.Each(e.World, func(entry *donburi.Entry) {
			drained = append(drained, entry)
		})
		for _, entry := range drained {
			// A mirror's health arrives via snapshots; hits against it are
			// reported to its authority instead of applied here.
			if resolver.IsMine(entry) {
				applyDamage(e, entry, sink)
			}
			donburi.Remove[components.DamageEventData](entry, components.DamageEvent)
		}
	}
}

func applyDamage(e *ecs.ECS, entry *donburi.Entry, sink fx.Sink) {
	ev := components.DamageEvent.Get(entry)
	char := components.Character.Get(entry)
	if char.Defeated || char.Invulnerable() || char.IsTeleporting {
		return
	}

	char.Health -= ev.Amount
	if char.Health < 0 {
		char.Health = 0
	}
	char.InvulnTicks = cfg.Player.InvulnTicks

	// The damaged character converts pain into charge.
	components.Ability.Get(entry).ChargeAll(float64(ev.Amount) * cfg.Charge.DamageGrantPer)

	if matchEntry, ok := MatchState(e.World); ok {
		match := components.Match.Get(matchEntry)
		match.Scores[char.Side].DamageTaken += ev.Amount
		match.Scores[char.Side.Opposite()].DamageDealt += ev.Amount
	}

	obj := components.Object.Get(entry)
	fx.Emit(sink, fx.Request{Kind: fx.DamageNumber, X: obj.CenterX(), Y: obj.Y, Magnitude: float64(ev.Amount)})

	if char.Health == 0 {
		char.Defeated = true
		char.InputEnabled = false
		log.Printf("[damage] %s character defeated", char.Side)
	}
}
