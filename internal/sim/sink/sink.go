// Package sink declares the fire-and-forget collaborators the simulation
// talks to: presentation, audio, UI, scene control and spawning. A Set with
// nil members is valid; missing sinks become no-ops.
package sink

import "github.com/vovakirdan/penguin-march/internal/core"

// Cue is a one-shot animation trigger.
type Cue int

const (
	CueHit Cue = iota
	CueKO
	CueThrow
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueHit:
		return "hit"
	case CueKO:
		return "ko"
	case CueThrow:
		return "throw"
	case CueGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Sound is an audio clip request.
type Sound int

const (
	SoundJump Sound = iota
	SoundDamaged
	SoundThrow
	SoundKO
)

func (s Sound) String() string {
	switch s {
	case SoundJump:
		return "jump"
	case SoundDamaged:
		return "damaged"
	case SoundThrow:
		return "throw"
	case SoundKO:
		return "ko"
	default:
		return "unknown"
	}
}

// View is the per-tick presentation state of one actor.
type View struct {
	FacingRight bool
	Grounded    bool
	HSpeed      float64
	VSpeed      float64
	Health      int
	Alive       bool
}

// Presenter receives animation parameters and cues.
type Presenter interface {
	Present(id core.EntityID, v View)
	Trigger(id core.EntityID, c Cue)
}

// Audio plays sounds.
type Audio interface {
	Play(s Sound)
}

// UI shows overlay text.
type UI interface {
	ShowVictory(title, prompt string)
}

// Scene reloads the level.
type Scene interface {
	Reload()
}

// Spawner creates and removes world objects on behalf of the simulation.
type Spawner interface {
	SpawnPlayer(id core.EntityID, at core.Vec2)
	SpawnEnemy(id core.EntityID, at core.Vec2)
	SpawnProjectile(id core.EntityID, at, velocity core.Vec2)
	Despawn(id core.EntityID)
	RemoveZone(id core.EntityID)
	DisableCollision(id core.EntityID)
}

// Set bundles every collaborator. Use the methods rather than the fields so
// nil members are skipped.
type Set struct {
	Presenter Presenter
	Audio     Audio
	UI        UI
	Scene     Scene
	Spawner   Spawner
}

func (s *Set) Present(id core.EntityID, v View) {
	if s != nil && s.Presenter != nil {
		s.Presenter.Present(id, v)
	}
}

func (s *Set) Trigger(id core.EntityID, c Cue) {
	if s != nil && s.Presenter != nil {
		s.Presenter.Trigger(id, c)
	}
}

func (s *Set) Play(snd Sound) {
	if s != nil && s.Audio != nil {
		s.Audio.Play(snd)
	}
}

func (s *Set) ShowVictory(title, prompt string) {
	if s != nil && s.UI != nil {
		s.UI.ShowVictory(title, prompt)
	}
}

func (s *Set) Reload() {
	if s != nil && s.Scene != nil {
		s.Scene.Reload()
	}
}

func (s *Set) SpawnPlayer(id core.EntityID, at core.Vec2) {
	if s != nil && s.Spawner != nil {
		s.Spawner.SpawnPlayer(id, at)
	}
}

func (s *Set) SpawnEnemy(id core.EntityID, at core.Vec2) {
	if s != nil && s.Spawner != nil {
		s.Spawner.SpawnEnemy(id, at)
	}
}

func (s *Set) SpawnProjectile(id core.EntityID, at, velocity core.Vec2) {
	if s != nil && s.Spawner != nil {
		s.Spawner.SpawnProjectile(id, at, velocity)
	}
}

func (s *Set) Despawn(id core.EntityID) {
	if s != nil && s.Spawner != nil {
		s.Spawner.Despawn(id)
	}
}

func (s *Set) RemoveZone(id core.EntityID) {
	if s != nil && s.Spawner != nil {
		s.Spawner.RemoveZone(id)
	}
}

func (s *Set) DisableCollision(id core.EntityID) {
	if s != nil && s.Spawner != nil {
		s.Spawner.DisableCollision(id)
	}
}

// Recorder captures every call. Tests and the headless sim command use it
// to inspect what the simulation requested.
type Recorder struct {
	Views      map[core.EntityID]View
	Cues       []Call[Cue]
	Sounds     []Sound
	Victory    []string
	Reloads    int
	Players    []Spawn
	Spawned    []Spawn
	Projectile []Spawn
	Despawned  []core.EntityID
	Zones      []core.EntityID
	Disabled   []core.EntityID
}

// Call pairs an entity with a value it was sent.
type Call[T any] struct {
	ID    core.EntityID
	Value T
}

// Spawn records a spawn request.
type Spawn struct {
	ID       core.EntityID
	At       core.Vec2
	Velocity core.Vec2
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{Views: make(map[core.EntityID]View)}
}

// Set returns a sink set routing every collaborator to r.
func (r *Recorder) Set() *Set {
	return &Set{Presenter: r, Audio: r, UI: r, Scene: r, Spawner: r}
}

func (r *Recorder) Present(id core.EntityID, v View) { r.Views[id] = v }
func (r *Recorder) Trigger(id core.EntityID, c Cue)  { r.Cues = append(r.Cues, Call[Cue]{id, c}) }
func (r *Recorder) Play(s Sound)                     { r.Sounds = append(r.Sounds, s) }
func (r *Recorder) ShowVictory(title, prompt string) { r.Victory = append(r.Victory, title, prompt) }
func (r *Recorder) Reload()                          { r.Reloads++ }
func (r *Recorder) SpawnPlayer(id core.EntityID, at core.Vec2) {
	r.Players = append(r.Players, Spawn{ID: id, At: at})
}
func (r *Recorder) SpawnEnemy(id core.EntityID, at core.Vec2) {
	r.Spawned = append(r.Spawned, Spawn{ID: id, At: at})
}
func (r *Recorder) SpawnProjectile(id core.EntityID, at, velocity core.Vec2) {
	r.Projectile = append(r.Projectile, Spawn{ID: id, At: at, Velocity: velocity})
}
func (r *Recorder) Despawn(id core.EntityID)          { r.Despawned = append(r.Despawned, id) }
func (r *Recorder) RemoveZone(id core.EntityID)       { r.Zones = append(r.Zones, id) }
func (r *Recorder) DisableCollision(id core.EntityID) { r.Disabled = append(r.Disabled, id) }

// CueCount returns how many times c was triggered.
func (r *Recorder) CueCount(c Cue) int {
	n := 0
	for _, call := range r.Cues {
		if call.Value == c {
			n++
		}
	}
	return n
}

// SoundCount returns how many times s was played.
func (r *Recorder) SoundCount(s Sound) int {
	n := 0
	for _, got := range r.Sounds {
		if got == s {
			n++
		}
	}
	return n
}
