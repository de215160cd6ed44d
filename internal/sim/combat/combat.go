// Package combat resolves hits against actors: graduated damage with
// immunity for the player, one-hit KO for enemies.
package combat

import (
	"math"

	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/sim/actor"
	"github.com/vovakirdan/penguin-march/internal/sim/contact"
	"github.com/vovakirdan/penguin-march/internal/sim/timer"
)

// EventKind is the closed set of combat-relevant contacts.
type EventKind int

const (
	GroundHazardContact EventKind = iota
	ProjectileContact
	EnvironmentalLethalContact
	EnemyBodyContact
)

func (k EventKind) String() string {
	switch k {
	case GroundHazardContact:
		return "hazard"
	case ProjectileContact:
		return "projectile"
	case EnvironmentalLethalContact:
		return "lethal"
	case EnemyBodyContact:
		return "enemy_body"
	default:
		return "unknown"
	}
}

// Event is a transient hit produced from a contact report.
type Event struct {
	Kind      EventKind
	Source    core.EntityID
	SourcePos core.Vec2
	Knockback core.Vec2 // overrides the resolver's default when non-zero
}

// FromContact maps a contact report to a combat event. Ground and trigger
// contacts are not combat events.
func FromContact(e contact.Event) (Event, bool) {
	var kind EventKind
	switch e.Tag {
	case contact.Hazard:
		kind = GroundHazardContact
	case contact.Enemy:
		kind = EnemyBodyContact
	case contact.Projectile:
		kind = ProjectileContact
	case contact.Lethal:
		kind = EnvironmentalLethalContact
	default:
		return Event{}, false
	}
	return Event{Kind: kind, Source: e.Other, SourcePos: e.OtherPos}, true
}

// Outcome describes what a hit did.
type Outcome struct {
	DamageApplied int
	Knockback     core.Vec2
	Died          bool
}

// Config holds the resolver's tunables.
type Config struct {
	Damage    int     // health removed per player hit
	Knockback float64 // horizontal knockback magnitude
}

// DefaultConfig removes one heart per hit and pushes the player back.
func DefaultConfig() Config {
	return Config{Damage: 1, Knockback: 25}
}

// Resolver applies combat events to actors.
type Resolver struct {
	cfg Config
}

// NewResolver creates a resolver; non-positive damage falls back to 1.
func NewResolver(cfg Config) *Resolver {
	if cfg.Damage <= 0 {
		cfg.Damage = 1
	}
	return &Resolver{cfg: cfg}
}

// ApplyHit resolves ev against a. immunity gates player hits and is reset
// by every damaging hit; enemies ignore it. Hits on dead actors are no-ops.
func (r *Resolver) ApplyHit(a *actor.State, immunity *timer.Timer, ev Event) Outcome {
	if a == nil || !a.Alive() {
		return Outcome{}
	}
	if a.Kind() == actor.KindEnemy {
		return r.applyEnemy(a, ev)
	}
	return r.applyPlayer(a, immunity, ev)
}

func (r *Resolver) applyPlayer(a *actor.State, immunity *timer.Timer, ev Event) Outcome {
	if ev.Kind == EnvironmentalLethalContact {
		applied, died := a.Damage(a.Health())
		if immunity != nil {
			immunity.Reset()
		}
		return Outcome{DamageApplied: applied, Died: died}
	}

	if immunity != nil && !immunity.Consume() {
		return Outcome{}
	}

	applied, died := a.Damage(r.cfg.Damage)
	kb := r.knockback(a, ev)
	a.Motion.Impulse = a.Motion.Impulse.Add(kb)
	return Outcome{DamageApplied: applied, Knockback: kb, Died: died}
}

func (r *Resolver) applyEnemy(a *actor.State, ev Event) Outcome {
	switch ev.Kind {
	case ProjectileContact, EnvironmentalLethalContact:
		health := a.Health()
		if !a.Kill() {
			return Outcome{}
		}
		a.CollisionEnabled = false
		return Outcome{DamageApplied: health, Died: true}
	default:
		return Outcome{}
	}
}

// knockback points away from the source horizontally. When the source sits
// exactly on the actor the push goes against the actor's facing.
func (r *Resolver) knockback(a *actor.State, ev Event) core.Vec2 {
	kb := ev.Knockback
	if kb.IsZero() {
		kb = core.V(r.cfg.Knockback, 0)
	}
	dir := core.Sign(a.Position.X - ev.SourcePos.X)
	if dir == 0 {
		dir = -a.Direction()
	}
	return core.V(dir*math.Abs(kb.X), kb.Y)
}
