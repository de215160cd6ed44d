// Package player turns intents into player movement, jumps and throws and
// owns the win/loss state machine.
package player

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

// State is the player's top-level state.
type State int

const (
	Playing State = iota
	GameOverPending
	GameOverFinished
	Won
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case GameOverPending:
		return "game_over_pending"
	case GameOverFinished:
		return "game_over_finished"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

// Config holds the player tunables.
type Config struct {
	MaxHealth       int
	MaxSpeed        float64
	JumpImpulse     float64
	ThrowDelay      float64
	HitDelay        float64
	ProjectileSpeed float64
	FallThreshold   float64
	GameOverDelay   float64
	VictoryTitle    string
	VictoryPrompt   string
	Combat          combat.Config
}

// DefaultConfig returns the stock player tuning.
func DefaultConfig() Config {
	return Config{
		MaxHealth:       3,
		MaxSpeed:        4,
		JumpImpulse:     6,
		ThrowDelay:      0.25,
		HitDelay:        1.0,
		ProjectileSpeed: 10,
		FallThreshold:   -2,
		GameOverDelay:   3.0,
		VictoryTitle:    "Congratulations!",
		VictoryPrompt:   "Press Enter or right-click to replay.",
		Combat:          combat.DefaultConfig(),
	}
}

// ThrowRequest asks the session to spawn a projectile.
type ThrowRequest struct {
	Origin   core.Vec2
	Velocity core.Vec2
}

// Result reports what a tick asked of the session.
type Result struct {
	Throw      *ThrowRequest
	MarchZones []core.EntityID // march zones entered for the first time
	Reload     bool            // a scene reload was requested this tick
}

// Controller drives one player actor.
type Controller struct {
	cfg      Config
	actor    *actor.State
	timers   *timer.Bank
	reload   *timer.Deferred
	resolver *combat.Resolver
	sinks    *sink.Set
	logger   *log.Logger

	state     State
	zonesUsed map[core.EntityID]bool
	confirmed bool
}

// New creates a controller for a player spawned at spawn. sinks and logger
// may be nil.
func New(id core.EntityID, spawn core.Vec2, cfg Config, sinks *sink.Set, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Controller{
		cfg:      cfg,
		actor:    actor.New(id, actor.KindPlayer, cfg.MaxHealth, spawn),
		resolver: combat.NewResolver(cfg.Combat),
		sinks:    sinks,
		logger:   logger,
	}
	c.Reset()
	return c
}

// Reset respawns the player and returns to Playing with fresh timers.
func (c *Controller) Reset() {
	c.actor.Respawn()
	c.timers = timer.NewBank()
	c.timers.Add(timer.ThrowCooldown, c.cfg.ThrowDelay, true)
	c.timers.Add(timer.HitImmunity, c.cfg.HitDelay, true)
	c.reload = timer.NewDeferred(c.cfg.GameOverDelay)
	c.state = Playing
	c.zonesUsed = make(map[core.EntityID]bool)
	c.confirmed = false
}

func (c *Controller) Actor() *actor.State { return c.actor }
func (c *Controller) State() State        { return c.state }
func (c *Controller) Timers() *timer.Bank { return c.timers }

// ReloadIn returns the seconds left before a game over reloads the level,
// or 0 when no reload is pending.
func (c *Controller) ReloadIn() float64 { return c.reload.Remaining() }

// Tick runs one step. contacts are this player's contact reports in the
// order the collision layer produced them; grounded and position are
// expected to be applied already.
func (c *Controller) Tick(dt float64, in core.Intent, contacts []contact.Event) Result {
	dt = core.NonNegative(dt)
	in = in.Normalized()
	c.actor.Motion = actor.Motion{}
	var res Result

	switch c.state {
	case Playing:
		if !c.actor.Alive() {
			c.logger.Debug("player spawned without health")
			c.enterGameOver()
			break
		}
		c.timers.Advance(dt)
		c.tickPlaying(in, contacts, &res)
	case GameOverPending:
		c.actor.Freeze()
		if c.reload.Advance(dt) {
			c.transition(GameOverFinished)
			c.sinks.Reload()
			res.Reload = true
		}
	case GameOverFinished:
		c.actor.Freeze()
	case Won:
		c.actor.Freeze()
		if in.Confirm && !c.confirmed {
			c.confirmed = true
			c.logger.Debug("replay confirmed")
			c.sinks.Reload()
			res.Reload = true
		}
	}

	c.present()
	return res
}

func (c *Controller) tickPlaying(in core.Intent, contacts []contact.Event, res *Result) {
	a := c.actor

	for _, ct := range contacts {
		if ct.Tag == contact.Projectile {
			continue // the player's own bricks never hurt
		}
		ev, ok := combat.FromContact(ct)
		if !ok {
			continue
		}
		out := c.resolver.ApplyHit(a, c.timers.Get(timer.HitImmunity), ev)
		if out.Died {
			c.logger.Debug("player killed", "by", ev.Kind, "source", ev.Source)
			c.enterGameOver()
			return
		}
		if out.DamageApplied > 0 {
			c.logger.Debug("player hit", "by", ev.Kind, "health", a.Health())
			c.sinks.Play(sink.SoundDamaged)
			c.sinks.Trigger(a.ID(), sink.CueHit)
		}
	}

	if a.Position.Y < c.cfg.FallThreshold {
		c.resolver.ApplyHit(a, nil, combat.Event{Kind: combat.EnvironmentalLethalContact})
		c.logger.Debug("player fell out of the world", "y", a.Position.Y)
		c.enterGameOver()
		return
	}

	for _, ct := range contacts {
		switch {
		case ct.Is(contact.ZoneFinish):
			c.enterWon()
			return
		case ct.Is(contact.ZoneMarch):
			if c.zonesUsed[ct.Other] {
				continue
			}
			c.zonesUsed[ct.Other] = true
			c.sinks.RemoveZone(ct.Other)
			res.MarchZones = append(res.MarchZones, ct.Other)
			c.logger.Debug("march zone entered", "zone", ct.Other)
		}
	}

	a.Motion.VelocityX = in.Horizontal * c.cfg.MaxSpeed
	a.Face(in.Horizontal)

	if in.Jump && a.Grounded {
		a.Motion.Impulse.Y += c.cfg.JumpImpulse
		a.Grounded = false
		c.sinks.Play(sink.SoundJump)
	}

	if in.Throw && c.timers.Consume(timer.ThrowCooldown) {
		c.sinks.Trigger(a.ID(), sink.CueThrow)
		c.sinks.Play(sink.SoundThrow)
		res.Throw = &ThrowRequest{
			Origin:   a.Position,
			Velocity: core.V(a.Direction()*c.cfg.ProjectileSpeed, 0),
		}
	}
}

func (c *Controller) enterGameOver() {
	c.transition(GameOverPending)
	c.actor.Freeze()
	c.sinks.Play(sink.SoundKO)
	c.sinks.Trigger(c.actor.ID(), sink.CueGameOver)
	c.reload.Arm()
}

func (c *Controller) enterWon() {
	c.transition(Won)
	c.actor.Freeze()
	c.sinks.ShowVictory(c.cfg.VictoryTitle, c.cfg.VictoryPrompt)
}

func (c *Controller) transition(to State) {
	c.logger.Debug("player state", "from", c.state, "to", to)
	c.state = to
}

func (c *Controller) present() {
	a := c.actor
	c.sinks.Present(a.ID(), sink.View{
		FacingRight: a.FacingRight,
		Grounded:    a.Grounded,
		HSpeed:      a.Motion.VelocityX,
		VSpeed:      a.VerticalSpeed,
		Health:      a.Health(),
		Alive:       a.Alive(),
	})
}
