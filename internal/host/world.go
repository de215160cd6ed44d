// Package host is the reference physics and collision collaborator. It
// builds a resolv space from a level layout, moves bodies with gravity and
// simple AABB resolution and reports contacts in the simulation's
// vocabulary.
package host

import (
	"cmp"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/penguin-march/internal/config"
	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/sim/actor"
	"github.com/vovakirdan/penguin-march/internal/sim/contact"
)

// Body sizes in world units.
const (
	PlayerW        = 0.5
	PlayerH        = 1.0
	EnemyW         = 0.6
	EnemyH         = 0.8
	ProjectileSize = 0.3
)

const (
	// pxPerUnit scales world units into resolv space so cells stay integral.
	pxPerUnit = 16.0
	cellSize  = 16

	// StaticIDBase is the first id handed to level geometry. Ids below it
	// belong to the simulation.
	StaticIDBase core.EntityID = 1 << 24

	groundProbe  = 0.05 // world units below the feet that still count as standing
	maxFallSpeed = 20.0
)

// resolv tags.
const (
	tagSolid      = "solid"
	tagHazard     = "hazard"
	tagLethal     = "lethal"
	tagBoundary   = "boundary"
	tagMarch      = "march"
	tagFinish     = "finish"
	tagPlayer     = "player"
	tagEnemy      = "enemy"
	tagProjectile = "projectile"
)

// Kind classifies world objects.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindProjectile
	KindGround
	KindHazard
	KindLethal
	KindBoundary
	KindMarch
	KindFinish
)

func (k Kind) tag() string {
	switch k {
	case KindPlayer:
		return tagPlayer
	case KindEnemy:
		return tagEnemy
	case KindProjectile:
		return tagProjectile
	case KindGround:
		return tagSolid
	case KindHazard:
		return tagHazard
	case KindLethal:
		return tagLethal
	case KindBoundary:
		return tagBoundary
	case KindMarch:
		return tagMarch
	default:
		return tagFinish
	}
}

func (k Kind) String() string {
	if k == KindGround {
		return "ground"
	}
	return k.tag()
}

func (k Kind) dynamic() bool {
	return k == KindPlayer || k == KindEnemy || k == KindProjectile
}

type entity struct {
	id      core.EntityID
	kind    Kind
	obj     *resolv.Object
	w, h    float64
	vel     core.Vec2
	motion  actor.Motion
	collide bool

	grounded bool
	blocker  core.EntityID // wall hit horizontally during the last step
}

// Options configures a World.
type Options struct {
	Step   float64 // seconds simulated per Sense; defaults to 1/60
	Logger *log.Logger
}

// World is a resolv-backed level. It implements session.World, the
// session's Resetter and sink.Spawner.
type World struct {
	level  config.Level
	step   float64
	logger *log.Logger

	space      *resolv.Space
	origin     core.Vec2
	entities   map[core.EntityID]*entity
	nextStatic core.EntityID
}

// New builds a world from level.
func New(level config.Level, opts Options) *World {
	if opts.Step <= 0 {
		opts.Step = 1.0 / 60.0
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	w := &World{level: level, step: opts.Step, logger: opts.Logger}
	w.Reset()
	return w
}

// Reset rebuilds the level geometry and removes every dynamic body.
func (w *World) Reset() {
	b := w.level.Bounds
	w.origin = core.V(b.X, b.Y)
	w.space = resolv.NewSpace(int(b.W*pxPerUnit), int(b.H*pxPerUnit), cellSize, cellSize)
	w.entities = make(map[core.EntityID]*entity)
	w.nextStatic = StaticIDBase

	for _, group := range []struct {
		kind  Kind
		boxes []config.Box
	}{
		{KindGround, w.level.Ground},
		{KindHazard, w.level.Hazards},
		{KindLethal, w.level.Lethal},
		{KindBoundary, w.level.PatrolBoundaries},
		{KindMarch, w.level.MarchZones},
		{KindFinish, w.level.Finish},
	} {
		for _, box := range group.boxes {
			id := w.nextStatic
			w.nextStatic++
			w.add(id, group.kind, core.V(box.X, box.Y), box.W, box.H)
		}
	}
	w.logger.Debug("world built", "level", w.level.Name, "statics", len(w.entities))
}

// Level returns the layout the world was built from.
func (w *World) Level() config.Level { return w.level }

// add creates an entity whose bottom-left corner is at corner.
func (w *World) add(id core.EntityID, kind Kind, corner core.Vec2, width, height float64) *entity {
	x, y := w.toSpace(corner)
	obj := resolv.NewObject(x, y, width*pxPerUnit, height*pxPerUnit, kind.tag())
	obj.SetShape(resolv.NewRectangle(0, 0, width*pxPerUnit, height*pxPerUnit))
	e := &entity{id: id, kind: kind, obj: obj, w: width, h: height, collide: true}
	obj.Data = e
	w.space.Add(obj)
	w.entities[id] = e
	return e
}

func (w *World) toSpace(p core.Vec2) (float64, float64) {
	return (p.X - w.origin.X) * pxPerUnit, (p.Y - w.origin.Y) * pxPerUnit
}

// center returns the world position of e's center.
func (w *World) center(e *entity) core.Vec2 {
	return core.V(
		e.obj.X/pxPerUnit+w.origin.X+e.w/2,
		e.obj.Y/pxPerUnit+w.origin.Y+e.h/2,
	)
}

// box returns e's bounds in world units.
func (w *World) box(e *entity) config.Box {
	return config.Box{
		X: e.obj.X/pxPerUnit + w.origin.X,
		Y: e.obj.Y/pxPerUnit + w.origin.Y,
		W: e.w,
		H: e.h,
	}
}

func (w *World) spawnCentered(id core.EntityID, kind Kind, at core.Vec2, width, height float64) *entity {
	if old, ok := w.entities[id]; ok {
		w.space.Remove(old.obj)
	}
	return w.add(id, kind, core.V(at.X-width/2, at.Y-height/2), width, height)
}

// SpawnPlayer places the player body centred on at.
func (w *World) SpawnPlayer(id core.EntityID, at core.Vec2) {
	w.spawnCentered(id, KindPlayer, at, PlayerW, PlayerH)
	w.logger.Debug("player spawned", "id", id, "at", at)
}

// SpawnEnemy places an enemy body centred on at.
func (w *World) SpawnEnemy(id core.EntityID, at core.Vec2) {
	w.spawnCentered(id, KindEnemy, at, EnemyW, EnemyH)
	w.logger.Debug("enemy spawned", "id", id, "at", at)
}

// SpawnProjectile launches a projectile from at.
func (w *World) SpawnProjectile(id core.EntityID, at, velocity core.Vec2) {
	e := w.spawnCentered(id, KindProjectile, at, ProjectileSize, ProjectileSize)
	e.vel = velocity
}

// Despawn removes a dynamic body.
func (w *World) Despawn(id core.EntityID) {
	w.remove(id)
}

// RemoveZone removes a trigger zone.
func (w *World) RemoveZone(id core.EntityID) {
	w.remove(id)
}

func (w *World) remove(id core.EntityID) {
	e, ok := w.entities[id]
	if !ok {
		return
	}
	w.space.Remove(e.obj)
	delete(w.entities, id)
	w.logger.Debug("object removed", "id", id, "kind", e.kind)
}

// DisableCollision makes a body ignore geometry and other bodies.
func (w *World) DisableCollision(id core.EntityID) {
	if e, ok := w.entities[id]; ok {
		e.collide = false
	}
}

// Drive stores the motion applied during the next Sense.
func (w *World) Drive(id core.EntityID, m actor.Motion) {
	if e, ok := w.entities[id]; ok {
		e.motion = m
	}
}

// Sense steps the world by one fixed step and reports bodies and contacts
// in id order.
func (w *World) Sense() contact.Report {
	ids := w.dynamicIDs()
	for _, id := range ids {
		w.move(w.entities[id])
	}

	var rep contact.Report
	for _, id := range ids {
		e := w.entities[id]
		rep.Bodies = append(rep.Bodies, contact.Body{ID: id, Position: w.center(e), VerticalSpeed: e.vel.Y})
		rep.Contacts = append(rep.Contacts, w.contacts(e)...)
	}
	return rep
}

func (w *World) dynamicIDs() []core.EntityID {
	var ids []core.EntityID
	for id, e := range w.entities {
		if e.kind.dynamic() {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Statics returns the remaining level geometry in id order.
func (w *World) Statics() []Static {
	var out []Static
	for id, e := range w.entities {
		if !e.kind.dynamic() {
			out = append(out, Static{ID: id, Kind: e.kind, Box: w.box(e)})
		}
	}
	slices.SortFunc(out, func(a, b Static) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Static is one piece of level geometry.
type Static struct {
	ID   core.EntityID
	Kind Kind
	Box  config.Box
}
