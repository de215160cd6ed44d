package session

import (
	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/sim/enemy"
	"github.com/vovakirdan/penguin-march/internal/sim/player"
)

// ActorSnapshot is a read-only copy of one actor.
type ActorSnapshot struct {
	ID          core.EntityID
	Position    core.Vec2
	FacingRight bool
	Grounded    bool
	Health      int
	MaxHealth   int
	Alive       bool
}

// EnemySnapshot adds patrol state to an actor snapshot.
type EnemySnapshot struct {
	ActorSnapshot
	State    enemy.State
	Velocity float64
}

// ProjectileSnapshot is a read-only copy of one projectile.
type ProjectileSnapshot struct {
	ID       core.EntityID
	Position core.Vec2
	Velocity core.Vec2
	Age      float64
}

// Snapshot is a copy of the whole session, safe to keep after further
// ticks. Slices are ordered by id.
type Snapshot struct {
	Tick        uint64
	Elapsed     float64
	Outcome     Outcome
	PlayerState player.State
	Player      ActorSnapshot
	Enemies     []EnemySnapshot
	Projectiles []ProjectileSnapshot
	Knockouts   int
	Marching    int     // spawn sequences still running
	ReloadIn    float64 // seconds until the game-over reload, 0 when none
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	p := s.player.Actor()
	snap := Snapshot{
		Tick:        s.ticks,
		Elapsed:     s.elapsed,
		Outcome:     s.outcome,
		PlayerState: s.player.State(),
		Player: ActorSnapshot{
			ID:          p.ID(),
			Position:    p.Position,
			FacingRight: p.FacingRight,
			Grounded:    p.Grounded,
			Health:      p.Health(),
			MaxHealth:   p.MaxHealth(),
			Alive:       p.Alive(),
		},
		Knockouts: s.knockouts,
		Marching:  len(s.marches),
		ReloadIn:  s.player.ReloadIn(),
	}
	for _, id := range s.enemyIDs() {
		e := s.enemies[id]
		a := e.Actor()
		snap.Enemies = append(snap.Enemies, EnemySnapshot{
			ActorSnapshot: ActorSnapshot{
				ID:          id,
				Position:    a.Position,
				FacingRight: a.FacingRight,
				Grounded:    a.Grounded,
				Health:      a.Health(),
				MaxHealth:   a.MaxHealth(),
				Alive:       a.Alive(),
			},
			State:    e.State(),
			Velocity: e.Velocity(),
		})
	}
	for _, id := range s.projectiles.IDs() {
		pr := s.projectiles.Get(id)
		snap.Projectiles = append(snap.Projectiles, ProjectileSnapshot{
			ID:       id,
			Position: pr.Position,
			Velocity: pr.Velocity,
			Age:      pr.Age,
		})
	}
	return snap
}
