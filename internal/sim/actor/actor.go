// Package actor holds the per-actor state shared by the player and enemy
// controllers. Health and the alive flag change only through Damage and
// Kill, which the combat resolver calls; every other field belongs to the
// owning controller's movement logic.
package actor

import "github.com/vovakirdan/penguin-march/internal/core"

// Kind distinguishes the combat rules that apply to an actor.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
)

func (k Kind) String() string {
	if k == KindPlayer {
		return "player"
	}
	return "enemy"
}

// Motion is the movement the actor asks the physics layer to perform this
// tick. The session hands it off and then clears it.
type Motion struct {
	VelocityX float64   // desired horizontal velocity
	Impulse   core.Vec2 // instantaneous velocity change (jump, knockback)
	Frozen    bool      // stop all horizontal motion
}

// State is the mutable state of one actor.
type State struct {
	id        core.EntityID
	kind      Kind
	health    int
	maxHealth int
	alive     bool

	FacingRight      bool
	Grounded         bool
	Position         core.Vec2
	VerticalSpeed    float64
	Spawn            core.Vec2
	Motion           Motion
	CollisionEnabled bool
}

// New creates an actor at spawn with full health. An actor created with
// zero health starts dead.
func New(id core.EntityID, kind Kind, maxHealth int, spawn core.Vec2) *State {
	if maxHealth < 0 {
		maxHealth = 0
	}
	s := &State{id: id, kind: kind, maxHealth: maxHealth, Spawn: spawn}
	s.Respawn()
	if maxHealth == 0 {
		s.health = 0
		s.alive = false
	}
	return s
}

// Respawn restores health, places the actor on its spawn point and clears
// motion.
func (s *State) Respawn() {
	s.health = s.maxHealth
	s.alive = s.maxHealth > 0
	s.FacingRight = true
	s.Grounded = false
	s.Position = s.Spawn
	s.VerticalSpeed = 0
	s.Motion = Motion{}
	s.CollisionEnabled = true
}

func (s *State) ID() core.EntityID { return s.id }
func (s *State) Kind() Kind        { return s.kind }
func (s *State) Health() int       { return s.health }
func (s *State) MaxHealth() int    { return s.maxHealth }
func (s *State) Alive() bool       { return s.alive }

// Damage removes up to amount health. It returns the health actually
// removed and whether this call killed the actor. Dead actors are never
// touched.
func (s *State) Damage(amount int) (applied int, died bool) {
	if !s.alive || amount <= 0 {
		return 0, false
	}
	if amount > s.health {
		amount = s.health
	}
	s.health -= amount
	if s.health == 0 {
		s.alive = false
		return amount, true
	}
	return amount, false
}

// Kill removes all remaining health. It returns false when the actor was
// already dead.
func (s *State) Kill() bool {
	_, died := s.Damage(s.health)
	return died
}

// Face turns the actor toward the sign of horizontal. It flips every call
// the sign disagrees with the current facing and never flips on zero.
// It reports whether a flip happened.
func (s *State) Face(horizontal float64) bool {
	if (horizontal < 0 && s.FacingRight) || (horizontal > 0 && !s.FacingRight) {
		s.FacingRight = !s.FacingRight
		return true
	}
	return false
}

// Direction returns +1 when facing right and -1 otherwise.
func (s *State) Direction() float64 {
	if s.FacingRight {
		return 1
	}
	return -1
}

// Freeze zeroes horizontal motion for this tick.
func (s *State) Freeze() {
	s.Motion = Motion{Frozen: true}
}

// TakeMotion returns the pending motion and clears it.
func (s *State) TakeMotion() Motion {
	m := s.Motion
	s.Motion = Motion{}
	return m
}
