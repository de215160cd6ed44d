// Package replay runs the simulation headless from a YAML script of timed
// intents. The same script and tuning always produce the same report.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/penguin-march/internal/config"
	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/host"
	"github.com/vovakirdan/penguin-march/internal/sim/session"
	"github.com/vovakirdan/penguin-march/internal/sim/sink"
)

// Script describes a headless run.
//
//	name: reach the finish
//	ticks: 900
//	stop_on_outcome: true
//	steps:
//	  - {at: 0, for: 600, horizontal: 1}
//	  - {at: 40, jump: true}
type Script struct {
	Name          string        `yaml:"name"`
	Ticks         int           `yaml:"ticks"`     // defaults to the end of the last step
	TickRate      int           `yaml:"tick_rate"` // defaults to 60
	StopOnOutcome bool          `yaml:"stop_on_outcome"`
	Spawn         *config.Point `yaml:"spawn"` // overrides the level's player spawn
	Steps         []Step        `yaml:"steps"`
}

// Step holds an intent for a range of ticks. Overlapping steps add their
// axes and OR their buttons.
type Step struct {
	At         int     `yaml:"at"`
	For        int     `yaml:"for"` // defaults to 1
	Horizontal float64 `yaml:"horizontal"`
	Jump       bool    `yaml:"jump"`
	Throw      bool    `yaml:"throw"`
	Confirm    bool    `yaml:"confirm"`
}

func (s Step) covers(tick int) bool { return tick >= s.At && tick < s.At+s.For }

// LoadFile reads and parses a script file.
func LoadFile(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("replay: failed to read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return s, fmt.Errorf("replay: failed to parse %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(data []byte) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return s, err
	}

	if s.TickRate == 0 {
		s.TickRate = 60
	}
	if s.TickRate < 0 {
		return s, fmt.Errorf("tick_rate must be positive, got %d", s.TickRate)
	}
	end := 0
	for i := range s.Steps {
		st := &s.Steps[i]
		if st.At < 0 {
			return s, fmt.Errorf("step %d: at must not be negative", i)
		}
		if st.For == 0 {
			st.For = 1
		}
		if st.For < 0 {
			return s, fmt.Errorf("step %d: for must be positive", i)
		}
		end = max(end, st.At+st.For)
	}
	if s.Ticks == 0 {
		s.Ticks = end
	}
	if s.Ticks <= 0 {
		return s, errors.New("script needs ticks or at least one step")
	}
	return s, nil
}

// Intent returns the combined intent of every step covering tick.
func (s Script) Intent(tick int) core.Intent {
	var in core.Intent
	for _, st := range s.Steps {
		if !st.covers(tick) {
			continue
		}
		in.Horizontal += st.Horizontal
		in.Jump = in.Jump || st.Jump
		in.Throw = in.Throw || st.Throw
		in.Confirm = in.Confirm || st.Confirm
	}
	return in.Normalized()
}

// Options configures Run.
type Options struct {
	// TraceEvery records a snapshot every n ticks; zero disables tracing.
	TraceEvery int
	Logger     *log.Logger
}

// Report summarizes a run.
type Report struct {
	Name      string            `yaml:"name,omitempty"`
	Level     string            `yaml:"level"`
	Ticks     int               `yaml:"ticks"`
	Outcome   string            `yaml:"outcome"`
	Knockouts int               `yaml:"knockouts"`
	Restarts  int               `yaml:"restarts"`
	Player    PlayerReport      `yaml:"player"`
	Enemies   int               `yaml:"enemies_alive"`
	Spawned   int               `yaml:"enemies_spawned"`
	Thrown    int               `yaml:"projectiles_thrown"`
	Cues      map[string]int    `yaml:"cues,omitempty"`
	Sounds    map[string]int    `yaml:"sounds,omitempty"`
	Victory   []string          `yaml:"victory,omitempty"`
	Trace     []TraceEntry      `yaml:"trace,omitempty"`
	Final     *session.Snapshot `yaml:"-"`
}

// PlayerReport is the player's final state.
type PlayerReport struct {
	State  string  `yaml:"state"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Health int     `yaml:"health"`
}

// TraceEntry is one traced tick.
type TraceEntry struct {
	Tick    uint64  `yaml:"tick"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Health  int     `yaml:"health"`
	Enemies int     `yaml:"enemies"`
	Outcome string  `yaml:"outcome"`
}

// Run plays script against tuning in a host world.
func Run(script Script, tuning config.Tuning, opts Options) (Report, error) {
	if script.Ticks <= 0 {
		return Report{}, errors.New("replay: script has no ticks")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if script.Spawn != nil {
		tuning.Level.PlayerSpawn = *script.Spawn
	}
	rate := script.TickRate
	if rate <= 0 {
		rate = 60
	}
	dt := core.RuntimeConfig{TickRate: rate}.TickDelta()

	world := host.New(tuning.Level, host.Options{Step: dt, Logger: logger.WithPrefix("host")})
	rec := sink.NewRecorder()
	sinks := rec.Set()
	sinks.Spawner = tee{world, rec}

	sess := session.New(tuning.SessionConfig(), world, session.Options{
		Sinks:  sinks,
		Logger: logger.WithPrefix("session"),
	})
	sess.Init()

	rep := Report{Name: script.Name, Level: tuning.Level.Name}
	for tick := range script.Ticks {
		outcome := sess.Tick(dt, script.Intent(tick))
		rep.Ticks = tick + 1

		if opts.TraceEvery > 0 && tick%opts.TraceEvery == 0 {
			rep.Trace = append(rep.Trace, traceOf(sess.Snapshot()))
		}
		if script.StopOnOutcome && outcome != session.InProgress {
			break
		}
		if sess.ReloadPending() {
			logger.Debug("reloading level", "tick", tick, "outcome", outcome)
			rep.Restarts++
			sess.Restart()
		}
	}

	snap := sess.Snapshot()
	rep.Final = &snap
	rep.Outcome = snap.Outcome.String()
	rep.Knockouts = sess.Knockouts()
	rep.Player = PlayerReport{
		State:  snap.PlayerState.String(),
		X:      snap.Player.Position.X,
		Y:      snap.Player.Position.Y,
		Health: snap.Player.Health,
	}
	for _, e := range snap.Enemies {
		if e.Alive {
			rep.Enemies++
		}
	}
	rep.Spawned = len(rec.Spawned)
	rep.Thrown = len(rec.Projectile)
	rep.Cues = tally(rec.Cues, func(c sink.Call[sink.Cue]) string { return c.Value.String() })
	rep.Sounds = tally(rec.Sounds, sink.Sound.String)
	rep.Victory = rec.Victory
	logger.Info("replay finished", "ticks", rep.Ticks, "outcome", rep.Outcome, "knockouts", rep.Knockouts)
	return rep, nil
}

// Marshal renders a report as YAML.
func Marshal(r Report) ([]byte, error) {
	out, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot encode report: %w", err)
	}
	return out, nil
}

func traceOf(s session.Snapshot) TraceEntry {
	alive := 0
	for _, e := range s.Enemies {
		if e.Alive {
			alive++
		}
	}
	return TraceEntry{
		Tick:    s.Tick,
		X:       s.Player.Position.X,
		Y:       s.Player.Position.Y,
		Health:  s.Player.Health,
		Enemies: alive,
		Outcome: s.Outcome.String(),
	}
}

func tally[T any](items []T, name func(T) string) map[string]int {
	if len(items) == 0 {
		return nil
	}
	m := make(map[string]int)
	for _, it := range items {
		m[name(it)]++
	}
	return m
}

// tee forwards spawn requests to the world and records them.
type tee struct {
	world *host.World
	rec   *sink.Recorder
}

func (t tee) SpawnPlayer(id core.EntityID, at core.Vec2) {
	t.world.SpawnPlayer(id, at)
	t.rec.SpawnPlayer(id, at)
}

func (t tee) SpawnEnemy(id core.EntityID, at core.Vec2) {
	t.world.SpawnEnemy(id, at)
	t.rec.SpawnEnemy(id, at)
}

func (t tee) SpawnProjectile(id core.EntityID, at, velocity core.Vec2) {
	t.world.SpawnProjectile(id, at, velocity)
	t.rec.SpawnProjectile(id, at, velocity)
}

func (t tee) Despawn(id core.EntityID) {
	t.world.Despawn(id)
	t.rec.Despawn(id)
}

func (t tee) RemoveZone(id core.EntityID) {
	t.world.RemoveZone(id)
	t.rec.RemoveZone(id)
}

func (t tee) DisableCollision(id core.EntityID) {
	t.world.DisableCollision(id)
	t.rec.DisableCollision(id)
}
