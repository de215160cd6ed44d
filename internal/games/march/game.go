// Package march adapts the Penguin March session to the arcade platform.
// It owns one session and its reference world, maps input frames to
// intents and draws the level around the player.
package march

import (
	"io"
	"reflect"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/penguin-march/internal/config"
	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/host"
	"github.com/vovakirdan/penguin-march/internal/registry"
	"github.com/vovakirdan/penguin-march/internal/sim/session"
	"github.com/vovakirdan/penguin-march/internal/sim/sink"
)

// ID is the registry id of the game.
const ID = "march"

// Game implements registry.Game for Penguin March.
type Game struct {
	tuning  config.Tuning
	pending *config.Tuning // applied on the next restart
	logger  *log.Logger

	cfg     core.RuntimeConfig
	world   *host.World
	session *session.Session
	scene   *scene
	paused  bool
}

// Option configures a Game.
type Option func(*Game)

// WithTuning replaces the default tuning.
func WithTuning(t config.Tuning) Option {
	return func(g *Game) { g.tuning = t }
}

// WithLogger sets the logger handed to the session and the world.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a game. Reset must be called before Step.
func New(opts ...Option) *Game {
	g := &Game{
		tuning: config.DefaultTuning(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Penguin March" }

// Reset builds a fresh world and session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.paused = false
	if g.pending != nil {
		g.tuning, g.pending = *g.pending, nil
	}
	g.build()
}

func (g *Game) build() {
	g.scene = newScene()
	g.world = host.New(g.tuning.Level, host.Options{
		Step:   g.cfg.TickDelta(),
		Logger: g.logger.WithPrefix("host"),
	})
	sinks := &sink.Set{
		Presenter: g.scene,
		Audio:     g.scene,
		UI:        g.scene,
		Spawner:   g.world,
	}
	g.session = session.New(g.tuning.SessionConfig(), g.world, session.Options{
		Sinks:  sinks,
		Logger: g.logger.WithPrefix("session"),
	})
	g.session.Init()
	g.logger.Debug("level loaded", "level", g.tuning.Level.Name, "difficulty", g.tuning.Difficulty)
}

// SetTuning stores a tuning that takes effect on the next restart.
func (g *Game) SetTuning(t config.Tuning) {
	g.pending = &t
}

// Tuning returns the tuning in effect.
func (g *Game) Tuning() config.Tuning { return g.tuning }

// restart starts the level over. A pending tuning with a new level forces
// a full rebuild; otherwise the session resets the existing world.
func (g *Game) restart() {
	g.paused = false
	g.scene.reset()
	if g.pending != nil {
		next := *g.pending
		g.pending = nil
		if !reflect.DeepEqual(next.Level, g.tuning.Level) {
			g.tuning = next
			g.build()
			return
		}
		g.tuning = next
		g.session.SetConfig(next.SessionConfig())
	}
	g.session.Restart()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.scene.tick()
	g.session.Tick(g.cfg.TickDelta(), in.Intent())
	if g.session.ReloadPending() {
		g.logger.Debug("reloading level", "outcome", g.session.Outcome())
		g.restart()
	}
	return core.StepResult{State: g.State()}
}

// Snapshot returns the session state.
func (g *Game) Snapshot() session.Snapshot { return g.session.Snapshot() }

// State returns the current game state. Score is the number of enemies
// knocked out in the current attempt.
func (g *Game) State() core.GameState {
	out := g.session.Outcome()
	return core.GameState{
		Score:    g.session.Knockouts(),
		GameOver: out != session.InProgress,
		Won:      out == session.Won,
		Paused:   g.paused,
	}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
