// Package projectile tracks thrown projectiles. Lifetime is a pure TTL:
// a projectile expires after its lifetime whether or not it hit anything.
package projectile

import (
	"slices"

	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/sim/contact"
)

// Projectile is one live projectile.
type Projectile struct {
	ID       core.EntityID
	Origin   core.Vec2
	Velocity core.Vec2
	Position core.Vec2
	Age      float64
}

// Pool owns the live projectiles of a session.
type Pool struct {
	lifetime float64
	live     map[core.EntityID]*Projectile
}

// NewPool creates an empty pool whose projectiles live for lifetime.
func NewPool(lifetime float64) *Pool {
	return &Pool{lifetime: lifetime, live: make(map[core.EntityID]*Projectile)}
}

// Add registers a projectile thrown from origin.
func (p *Pool) Add(id core.EntityID, origin, velocity core.Vec2) *Projectile {
	pr := &Projectile{ID: id, Origin: origin, Velocity: velocity, Position: origin}
	p.live[id] = pr
	return pr
}

// Advance ages every projectile by dt and removes the ones whose lifetime
// ran out. Expired ids are returned in ascending order.
func (p *Pool) Advance(dt float64) []core.EntityID {
	dt = core.NonNegative(dt)
	var expired []core.EntityID
	for id, pr := range p.live {
		pr.Age += dt
		if pr.Age+1e-9 >= p.lifetime {
			expired = append(expired, id)
		}
	}
	slices.Sort(expired)
	for _, id := range expired {
		delete(p.live, id)
	}
	return expired
}

// Destroys reports whether a contact ends the projectile: anything solid
// or harmful. Enemy hits are resolved from the enemy's side and the
// thrower is ignored.
func Destroys(e contact.Event) bool {
	switch e.Tag {
	case contact.Ground, contact.Hazard, contact.Lethal:
		return true
	default:
		return false
	}
}

// Remove deletes a projectile. It reports false when id was not live,
// which lets callers treat a projectile as consumed at most once.
func (p *Pool) Remove(id core.EntityID) bool {
	if _, ok := p.live[id]; !ok {
		return false
	}
	delete(p.live, id)
	return true
}

// Has reports whether id is a live projectile.
func (p *Pool) Has(id core.EntityID) bool {
	_, ok := p.live[id]
	return ok
}

// Get returns a live projectile or nil.
func (p *Pool) Get(id core.EntityID) *Projectile { return p.live[id] }

// Len returns the number of live projectiles.
func (p *Pool) Len() int { return len(p.live) }

// IDs returns the live projectile ids in ascending order.
func (p *Pool) IDs() []core.EntityID {
	ids := make([]core.EntityID, 0, len(p.live))
	for id := range p.live {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
