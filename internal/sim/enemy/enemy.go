// Package enemy implements the patrolling penguin: it walks at a fixed
// speed, turns around at patrol boundaries and is knocked out by a single
// projectile.
package enemy

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/sim/actor"
	"github.com/vovakirdan/penguin-march/internal/sim/combat"
	"github.com/vovakirdan/penguin-march/internal/sim/contact"
	"github.com/vovakirdan/penguin-march/internal/sim/sink"
	"github.com/vovakirdan/penguin-march/internal/sim/timer"
)

// State is the enemy's patrol state.
type State int

const (
	Patrolling State = iota
	KOed
)

func (s State) String() string {
	if s == KOed {
		return "koed"
	}
	return "patrolling"
}

// Config holds the enemy tunables.
type Config struct {
	Speed         float64 // walking speed
	FastSpeed     float64 // speed for enemies spawned above FastAbove
	FastAbove     float64
	Debounce      float64 // minimum time between two reversals
	FallThreshold float64
}

// DefaultConfig returns the stock enemy tuning.
func DefaultConfig() Config {
	return Config{
		Speed:         1,
		FastSpeed:     2,
		FastAbove:     1.2,
		Debounce:      0.25,
		FallThreshold: -2,
	}
}

// Result reports what a tick did.
type Result struct {
	KOed               bool
	ConsumedProjectile core.EntityID // projectile that caused the KO
	Fell               bool          // the enemy left the world and was removed
}

// Controller drives one enemy actor.
type Controller struct {
	cfg      Config
	actor    *actor.State
	timers   *timer.Bank
	resolver *combat.Resolver
	sinks    *sink.Set
	logger   *log.Logger

	state    State
	velocity float64
	removed  bool
}

// New creates an enemy at spawn walking left.
func New(id core.EntityID, spawn core.Vec2, cfg Config, sinks *sink.Set, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	speed := cfg.Speed
	if spawn.Y > cfg.FastAbove {
		speed = cfg.FastSpeed
	}
	c := &Controller{
		cfg:      cfg,
		actor:    actor.New(id, actor.KindEnemy, 1, spawn),
		timers:   timer.NewBank(),
		resolver: combat.NewResolver(combat.DefaultConfig()),
		sinks:    sinks,
		logger:   logger.With("enemy", id),
		velocity: -speed,
	}
	c.timers.Add(timer.PatrolDebounce, cfg.Debounce, true)
	c.actor.Face(c.velocity)
	return c
}

func (c *Controller) Actor() *actor.State { return c.actor }
func (c *Controller) State() State        { return c.state }
func (c *Controller) Velocity() float64   { return c.velocity }
func (c *Controller) Removed() bool       { return c.removed }

// Tick runs one step over this enemy's contacts in report order. live
// reports whether a projectile may still hit; a nil live accepts every
// projectile.
func (c *Controller) Tick(dt float64, contacts []contact.Event, live func(core.EntityID) bool) Result {
	var res Result
	if c.removed {
		return res
	}
	a := c.actor
	a.Motion = actor.Motion{}

	if a.Position.Y < c.cfg.FallThreshold {
		c.removed = true
		c.sinks.Despawn(a.ID())
		c.logger.Debug("enemy fell out of the world", "state", c.state)
		res.Fell = true
		return res
	}

	if c.state == KOed {
		return res
	}

	c.timers.Advance(dt)

	boundary := false
	for _, ct := range contacts {
		switch {
		case ct.Tag == contact.Projectile:
			if live != nil && !live(ct.Other) {
				continue
			}
			if c.knockOut(combat.Event{Kind: combat.ProjectileContact, Source: ct.Other, SourcePos: ct.OtherPos}) {
				res.KOed = true
				res.ConsumedProjectile = ct.Other
				return res
			}
		case ct.Tag == contact.Lethal:
			if c.knockOut(combat.Event{Kind: combat.EnvironmentalLethalContact, Source: ct.Other}) {
				res.KOed = true
				return res
			}
		case ct.Is(contact.ZonePatrolBoundary):
			boundary = true
		}
	}

	if boundary && c.timers.Consume(timer.PatrolDebounce) {
		c.velocity = -c.velocity
		c.logger.Debug("patrol reversed", "velocity", c.velocity)
	}
	a.Face(c.velocity)
	a.Motion.VelocityX = c.velocity
	c.present()
	return res
}

func (c *Controller) knockOut(ev combat.Event) bool {
	out := c.resolver.ApplyHit(c.actor, nil, ev)
	if !out.Died {
		return false
	}
	c.state = KOed
	c.velocity = 0
	c.actor.Motion = actor.Motion{Frozen: true}
	c.sinks.Trigger(c.actor.ID(), sink.CueKO)
	c.sinks.DisableCollision(c.actor.ID())
	c.logger.Debug("enemy knocked out", "by", ev.Kind, "source", ev.Source)
	c.present()
	return true
}

func (c *Controller) present() {
	a := c.actor
	c.sinks.Present(a.ID(), sink.View{
		FacingRight: a.FacingRight,
		Grounded:    a.Grounded,
		HSpeed:      c.velocity,
		VSpeed:      a.VerticalSpeed,
		Health:      a.Health(),
		Alive:       a.Alive(),
	})
}
