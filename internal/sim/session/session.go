// Package session runs one play session: it owns every actor, projectile
// and spawn sequence, applies host reports in a fixed order each tick and
// derives the game outcome.
package session

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/sim/actor"
	"github.com/vovakirdan/penguin-march/internal/sim/contact"
	"github.com/vovakirdan/penguin-march/internal/sim/enemy"
	"github.com/vovakirdan/penguin-march/internal/sim/player"
	"github.com/vovakirdan/penguin-march/internal/sim/projectile"
	"github.com/vovakirdan/penguin-march/internal/sim/sink"
	"github.com/vovakirdan/penguin-march/internal/sim/timer"
)

// Outcome is the session-level result.
type Outcome int

const (
	InProgress Outcome = iota
	Lost
	Won
)

func (o Outcome) String() string {
	switch o {
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return "in_progress"
	}
}

// World is the physics and collision collaborator. Sense returns what
// happened since the last Drive calls; Drive hands an actor's motion
// request for the next step.
type World interface {
	Sense() contact.Report
	Drive(id core.EntityID, m actor.Motion)
}

// Resetter is implemented by worlds that can rebuild their level. Restart
// calls it before respawning actors.
type Resetter interface {
	Reset()
}

// Config is the complete tuning of a session.
type Config struct {
	Player             player.Config
	Enemy              enemy.Config
	ProjectileLifetime float64
	MarchCount         int
	MarchInterval      float64
	MarchSpawn         core.Vec2
	PlayerSpawn        core.Vec2
	Enemies            []core.Vec2 // enemies present when the level starts
}

// DefaultConfig returns the stock tuning of the first level.
func DefaultConfig() Config {
	return Config{
		Player:             player.DefaultConfig(),
		Enemy:              enemy.DefaultConfig(),
		ProjectileLifetime: 1.0,
		MarchCount:         10,
		MarchInterval:      0.25,
		MarchSpawn:         core.V(13, 1.3),
		PlayerSpawn:        core.V(0, 1),
	}
}

// Options carries optional collaborators.
type Options struct {
	Sinks  *sink.Set
	Logger *log.Logger
}

// Session is a single-mutator simulation of one level.
type Session struct {
	cfg    Config
	world  World
	sinks  *sink.Set
	logger *log.Logger

	nextID      core.EntityID
	player      *player.Controller
	enemies     map[core.EntityID]*enemy.Controller
	projectiles *projectile.Pool
	marches     []*timer.Sequence

	outcome       Outcome
	reloadPending bool
	ticks         uint64
	elapsed       float64
	knockouts     int
}

// New creates a session. Call Init before the first Tick.
func New(cfg Config, world World, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		cfg:    cfg,
		world:  world,
		sinks:  opts.Sinks,
		logger: logger,
	}
}

// Init spawns the player and the level's starting enemies.
func (s *Session) Init() {
	s.nextID = 1
	s.enemies = make(map[core.EntityID]*enemy.Controller)
	s.projectiles = projectile.NewPool(s.cfg.ProjectileLifetime)
	s.marches = nil
	s.outcome = InProgress
	s.reloadPending = false
	s.ticks = 0
	s.elapsed = 0
	s.knockouts = 0

	id := s.allocID()
	s.player = player.New(id, s.cfg.PlayerSpawn, s.cfg.Player, s.sinks, s.logger.With("player", id))
	s.sinks.SpawnPlayer(id, s.cfg.PlayerSpawn)
	for _, at := range s.cfg.Enemies {
		s.spawnEnemy(at)
	}
	s.logger.Debug("session initialised", "enemies", len(s.cfg.Enemies))
}

// Restart rebuilds the world and starts over. Pending reloads and spawn
// sequences are dropped.
func (s *Session) Restart() {
	if r, ok := s.world.(Resetter); ok {
		r.Reset()
	}
	s.Init()
	s.logger.Debug("session restarted")
}

// SetConfig replaces the tuning used from the next Restart on.
func (s *Session) SetConfig(cfg Config) { s.cfg = cfg }

func (s *Session) Outcome() Outcome              { return s.outcome }
func (s *Session) ReloadPending() bool           { return s.reloadPending }
func (s *Session) Knockouts() int                { return s.knockouts }
func (s *Session) Player() *player.Controller    { return s.player }
func (s *Session) Projectiles() *projectile.Pool { return s.projectiles }

// Tick advances the session by dt with the player's intent and returns the
// outcome after the tick.
func (s *Session) Tick(dt float64, in core.Intent) Outcome {
	dt = core.NonNegative(dt)
	s.ticks++
	s.elapsed += dt

	byID := s.sense()

	for _, id := range s.projectiles.Advance(dt) {
		s.sinks.Despawn(id)
	}
	for _, seq := range s.marches {
		s.spawnMarch(seq.Advance(dt))
	}
	s.marches = slices.DeleteFunc(s.marches, (*timer.Sequence).Done)

	pres := s.player.Tick(dt, in, byID[s.player.Actor().ID()])
	if pres.Throw != nil {
		id := s.allocID()
		s.projectiles.Add(id, pres.Throw.Origin, pres.Throw.Velocity)
		s.sinks.SpawnProjectile(id, pres.Throw.Origin, pres.Throw.Velocity)
	}
	for range pres.MarchZones {
		seq := timer.NewSequence(s.cfg.MarchCount, s.cfg.MarchInterval)
		s.spawnMarch(seq.Start())
		if !seq.Done() {
			s.marches = append(s.marches, seq)
		}
	}
	if pres.Reload {
		s.reloadPending = true
	}

	for _, id := range s.projectiles.IDs() {
		for _, ct := range byID[id] {
			if projectile.Destroys(ct) {
				s.projectiles.Remove(id)
				s.sinks.Despawn(id)
				break
			}
		}
	}

	for _, id := range s.enemyIDs() {
		e := s.enemies[id]
		res := e.Tick(dt, byID[id], s.projectiles.Has)
		if res.KOed {
			s.knockouts++
			if res.ConsumedProjectile != core.NoEntity && s.projectiles.Remove(res.ConsumedProjectile) {
				s.sinks.Despawn(res.ConsumedProjectile)
			}
		}
		if res.Fell {
			delete(s.enemies, id)
		}
	}

	s.drive()
	s.updateOutcome()
	return s.outcome
}

// sense pulls the host report, copies positions into actors and sets
// grounded for every actor before any logic runs.
func (s *Session) sense() map[core.EntityID][]contact.Event {
	var rep contact.Report
	if s.world != nil {
		rep = s.world.Sense()
	}
	for _, b := range rep.Bodies {
		if a := s.actor(b.ID); a != nil {
			a.Position = b.Position
			a.VerticalSpeed = b.VerticalSpeed
			continue
		}
		if p := s.projectiles.Get(b.ID); p != nil {
			p.Position = b.Position
		}
	}
	byID := contact.BySubject(rep.Contacts)
	s.player.Actor().Grounded = contact.Grounded(byID[s.player.Actor().ID()])
	for id, e := range s.enemies {
		e.Actor().Grounded = contact.Grounded(byID[id])
	}
	return byID
}

func (s *Session) drive() {
	if s.world == nil {
		return
	}
	p := s.player.Actor()
	s.world.Drive(p.ID(), p.TakeMotion())
	for _, id := range s.enemyIDs() {
		s.world.Drive(id, s.enemies[id].Actor().TakeMotion())
	}
}

func (s *Session) updateOutcome() {
	if s.outcome != InProgress {
		return
	}
	switch s.player.State() {
	case player.GameOverPending, player.GameOverFinished:
		s.outcome = Lost
	case player.Won:
		s.outcome = Won
	default:
		return
	}
	s.logger.Debug("session outcome", "outcome", s.outcome, "tick", s.ticks, "knockouts", s.knockouts)
}

func (s *Session) spawnMarch(n int) {
	for ; n > 0; n-- {
		s.spawnEnemy(s.cfg.MarchSpawn)
	}
}

func (s *Session) spawnEnemy(at core.Vec2) core.EntityID {
	id := s.allocID()
	s.enemies[id] = enemy.New(id, at, s.cfg.Enemy, s.sinks, s.logger)
	s.sinks.SpawnEnemy(id, at)
	return id
}

func (s *Session) allocID() core.EntityID {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Session) actor(id core.EntityID) *actor.State {
	if p := s.player.Actor(); p.ID() == id {
		return p
	}
	if e, ok := s.enemies[id]; ok {
		return e.Actor()
	}
	return nil
}

func (s *Session) enemyIDs() []core.EntityID {
	ids := make([]core.EntityID, 0, len(s.enemies))
	for id := range s.enemies {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
