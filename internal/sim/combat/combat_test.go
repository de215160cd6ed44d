package combat

import (
	"testing"

	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/sim/actor"
	"github.com/vovakirdan/penguin-march/internal/sim/contact"
	"github.com/vovakirdan/penguin-march/internal/sim/timer"
)

func hazardAt(x float64) Event {
	return Event{Kind: GroundHazardContact, Source: 9, SourcePos: core.V(x, 0)}
}

func TestApplyHitDeadActorIsNoop(t *testing.T) {
	r := NewResolver(DefaultConfig())
	kinds := []EventKind{GroundHazardContact, ProjectileContact, EnvironmentalLethalContact, EnemyBodyContact}

	for _, kind := range []actor.Kind{actor.KindPlayer, actor.KindEnemy} {
		a := actor.New(1, kind, 3, core.V(1, 1))
		a.Kill()
		before := *a
		immunity := timer.NewReady(1)

		for i := 0; i < 20; i++ {
			out := r.ApplyHit(a, immunity, Event{Kind: kinds[i%len(kinds)], SourcePos: core.V(0, 1)})
			if out != (Outcome{}) {
				t.Fatalf("%v: hit on dead actor returned %+v", kind, out)
			}
		}
		if *a != before {
			t.Errorf("%v: dead actor state changed: %+v -> %+v", kind, before, *a)
		}
		if !immunity.Ready() {
			t.Errorf("%v: dead actor hits must not touch the immunity timer", kind)
		}
	}
}

func TestImmunityGatesPlayerHits(t *testing.T) {
	r := NewResolver(DefaultConfig())
	a := actor.New(1, actor.KindPlayer, 3, core.Vec2{})
	immunity := timer.NewReady(1.0)

	out := r.ApplyHit(a, immunity, hazardAt(1))
	if out.DamageApplied != 1 || a.Health() != 2 {
		t.Fatalf("first hit: %+v, health %d", out, a.Health())
	}

	immunity.Advance(0.5)
	out = r.ApplyHit(a, immunity, hazardAt(1))
	if out != (Outcome{}) || a.Health() != 2 {
		t.Fatalf("hit inside immunity window applied: %+v, health %d", out, a.Health())
	}

	immunity.Advance(0.5)
	out = r.ApplyHit(a, immunity, hazardAt(1))
	if out.DamageApplied != 1 || a.Health() != 1 {
		t.Fatalf("hit after immunity expired: %+v, health %d", out, a.Health())
	}
}

func TestHealthAliveInvariant(t *testing.T) {
	r := NewResolver(DefaultConfig())
	events := []Event{
		hazardAt(-1),
		{Kind: EnemyBodyContact, SourcePos: core.V(2, 0)},
		{Kind: ProjectileContact},
		{Kind: EnvironmentalLethalContact},
	}

	for initial := 0; initial <= 3; initial++ {
		for _, kind := range []actor.Kind{actor.KindPlayer, actor.KindEnemy} {
			for _, ev := range events {
				a := actor.New(1, kind, initial, core.Vec2{})
				immunity := timer.NewReady(1)
				for i := 0; i < 5; i++ {
					r.ApplyHit(a, immunity, ev)
					immunity.Advance(1)
					if (a.Health() == 0) != !a.Alive() {
						t.Fatalf("kind=%v initial=%d event=%v: health=%d alive=%v",
							kind, initial, ev.Kind, a.Health(), a.Alive())
					}
				}
			}
		}
	}
}

func TestPlayerKnockbackDirection(t *testing.T) {
	tests := []struct {
		name        string
		sourceX     float64
		facingRight bool
		wantX       float64
	}{
		{"source on the right", 1, true, -25},
		{"source on the left", -1, true, 25},
		{"tie facing right", 0, true, -25},
		{"tie facing left", 0, false, 25},
	}

	r := NewResolver(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := actor.New(1, actor.KindPlayer, 3, core.Vec2{})
			a.FacingRight = tt.facingRight
			out := r.ApplyHit(a, nil, hazardAt(tt.sourceX))
			if out.Knockback.X != tt.wantX || out.Knockback.Y != 0 {
				t.Errorf("knockback = %+v, expected x=%v", out.Knockback, tt.wantX)
			}
			if a.Motion.Impulse != out.Knockback {
				t.Errorf("knockback should be queued as impulse, got %+v", a.Motion.Impulse)
			}
		})
	}
}

func TestLethalBypassesImmunity(t *testing.T) {
	r := NewResolver(DefaultConfig())
	a := actor.New(1, actor.KindPlayer, 3, core.Vec2{})
	immunity := timer.New(1)

	out := r.ApplyHit(a, immunity, Event{Kind: EnvironmentalLethalContact})
	if !out.Died || out.DamageApplied != 3 || a.Alive() {
		t.Errorf("lethal contact should kill through immunity, got %+v", out)
	}
}

func TestEnemyOneHitKO(t *testing.T) {
	r := NewResolver(DefaultConfig())

	e := actor.New(5, actor.KindEnemy, 1, core.Vec2{})
	if out := r.ApplyHit(e, nil, hazardAt(0)); out != (Outcome{}) || !e.Alive() {
		t.Fatalf("enemies ignore hazards, got %+v", out)
	}
	if out := r.ApplyHit(e, nil, Event{Kind: EnemyBodyContact}); out != (Outcome{}) {
		t.Fatalf("enemies ignore body contacts, got %+v", out)
	}

	out := r.ApplyHit(e, nil, Event{Kind: ProjectileContact, Source: 7})
	if !out.Died || e.Alive() || e.CollisionEnabled {
		t.Errorf("projectile should KO and disable collision: %+v alive=%v collision=%v",
			out, e.Alive(), e.CollisionEnabled)
	}
}

func TestFromContact(t *testing.T) {
	tests := []struct {
		tag  contact.Tag
		want EventKind
		ok   bool
	}{
		{contact.Ground, 0, false},
		{contact.TriggerZone, 0, false},
		{contact.Hazard, GroundHazardContact, true},
		{contact.Enemy, EnemyBodyContact, true},
		{contact.Projectile, ProjectileContact, true},
		{contact.Lethal, EnvironmentalLethalContact, true},
	}
	for _, tt := range tests {
		ev, ok := FromContact(contact.Event{Tag: tt.tag, Other: 4, OtherPos: core.V(1, 2)})
		if ok != tt.ok {
			t.Errorf("%v: ok = %v", tt.tag, ok)
			continue
		}
		if ok && (ev.Kind != tt.want || ev.Source != 4 || ev.SourcePos != core.V(1, 2)) {
			t.Errorf("%v: got %+v", tt.tag, ev)
		}
	}
}
