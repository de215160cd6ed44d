package host

import (
	"cmp"
	"math"
	"slices"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/sim/contact"
)

// move integrates one body over a single step.
func (w *World) move(e *entity) {
	dt := w.step
	e.grounded = false
	e.blocker = core.NoEntity

	if e.kind == KindProjectile {
		e.obj.X += e.vel.X * dt * pxPerUnit
		e.obj.Y += e.vel.Y * dt * pxPerUnit
		e.obj.Update()
		return
	}

	m := e.motion
	e.motion.Impulse = core.Vec2{}
	vx := m.VelocityX + m.Impulse.X
	if m.Frozen {
		vx = 0
	}
	e.vel.X = vx
	e.vel.Y += m.Impulse.Y
	e.vel.Y = math.Max(e.vel.Y-w.level.Gravity*dt, -maxFallSpeed)

	if !e.collide {
		e.obj.X += vx * dt * pxPerUnit
		e.obj.Y += e.vel.Y * dt * pxPerUnit
		e.obj.Update()
		return
	}

	if dx := vx * dt * pxPerUnit; dx != 0 {
		if hits := w.overlaps(e, dx, 0, tagSolid); len(hits) > 0 {
			if dx > 0 {
				e.obj.X = slices.MinFunc(hits, byLeft).X - e.obj.W
			} else {
				edge := slices.MaxFunc(hits, byRight)
				e.obj.X = edge.X + edge.W
			}
			e.blocker = hits[0].Data.(*entity).id
		} else {
			e.obj.X += dx
		}
		e.obj.Update()
	}

	if dy := e.vel.Y * dt * pxPerUnit; dy != 0 {
		if hits := w.overlaps(e, 0, dy, tagSolid); len(hits) > 0 {
			if dy < 0 {
				top := slices.MaxFunc(hits, byTop)
				e.obj.Y = top.Y + top.H
			} else {
				e.obj.Y = slices.MinFunc(hits, byBottom).Y - e.obj.H
			}
			e.vel.Y = 0
		} else {
			e.obj.Y += dy
		}
		e.obj.Update()
	}

	e.grounded = e.vel.Y <= 0 && len(w.overlaps(e, 0, -groundProbe*pxPerUnit, tagSolid)) > 0
}

func byLeft(a, b *resolv.Object) int   { return cmp.Compare(a.X, b.X) }
func byRight(a, b *resolv.Object) int  { return cmp.Compare(a.X+a.W, b.X+b.W) }
func byTop(a, b *resolv.Object) int    { return cmp.Compare(a.Y+a.H, b.Y+b.H) }
func byBottom(a, b *resolv.Object) int { return cmp.Compare(a.Y, b.Y) }

// overlaps returns the objects carrying any of tags that e would overlap
// after moving by (dx, dy) space units. resolv's Check is a cell-level
// broadphase, so candidates are filtered with a strict AABB test: touching
// edges do not overlap. Bodies with collision disabled are skipped.
// Results are ordered by entity id.
func (w *World) overlaps(e *entity, dx, dy float64, tags ...string) []*resolv.Object {
	if e.obj.Space == nil {
		return nil
	}
	check := e.obj.Check(dx, dy, tags...)
	if check == nil {
		return nil
	}

	const eps = 1e-6
	x0, y0 := e.obj.X+dx, e.obj.Y+dy
	x1, y1 := x0+e.obj.W, y0+e.obj.H

	var out []*resolv.Object
	for _, o := range check.ObjectsByTags(tags...) {
		if o == e.obj || slices.Contains(out, o) {
			continue
		}
		other, ok := o.Data.(*entity)
		if !ok || !other.collide {
			continue
		}
		if x0 < o.X+o.W-eps && x1 > o.X+eps && y0 < o.Y+o.H-eps && y1 > o.Y+eps {
			out = append(out, o)
		}
	}
	slices.SortFunc(out, func(a, b *resolv.Object) int {
		return cmp.Compare(a.Data.(*entity).id, b.Data.(*entity).id)
	})
	return out
}

// touching returns the entities overlapping e right now.
func (w *World) touching(e *entity, tags ...string) []*entity {
	objs := w.overlaps(e, 0, 0, tags...)
	out := make([]*entity, 0, len(objs))
	for _, o := range objs {
		out = append(out, o.Data.(*entity))
	}
	return out
}

// contacts reports what e touches after the step.
func (w *World) contacts(e *entity) []contact.Event {
	if !e.collide {
		return nil
	}
	var out []contact.Event
	add := func(tag contact.Tag, zone contact.Zone, other *entity) {
		ev := contact.Event{Subject: e.id, Tag: tag, Zone: zone}
		if other != nil {
			ev.Other = other.id
			ev.OtherPos = w.center(other)
		}
		out = append(out, ev)
	}

	switch e.kind {
	case KindPlayer:
		if e.grounded {
			add(contact.Ground, contact.ZoneNone, nil)
		}
		for _, o := range w.touching(e, tagHazard, tagLethal, tagEnemy, tagMarch, tagFinish) {
			switch o.kind {
			case KindHazard:
				add(contact.Hazard, contact.ZoneNone, o)
			case KindLethal:
				add(contact.Lethal, contact.ZoneNone, o)
			case KindEnemy:
				add(contact.Enemy, contact.ZoneNone, o)
			case KindMarch:
				add(contact.TriggerZone, contact.ZoneMarch, o)
			case KindFinish:
				add(contact.TriggerZone, contact.ZoneFinish, o)
			}
		}

	case KindEnemy:
		if e.grounded {
			add(contact.Ground, contact.ZoneNone, nil)
		}
		if e.blocker != core.NoEntity {
			add(contact.TriggerZone, contact.ZonePatrolBoundary, w.entities[e.blocker])
		}
		for _, o := range w.touching(e, tagProjectile, tagBoundary, tagLethal) {
			switch o.kind {
			case KindProjectile:
				add(contact.Projectile, contact.ZoneNone, o)
			case KindBoundary:
				add(contact.TriggerZone, contact.ZonePatrolBoundary, o)
			case KindLethal:
				add(contact.Lethal, contact.ZoneNone, o)
			}
		}

	case KindProjectile:
		for _, o := range w.touching(e, tagSolid, tagHazard, tagLethal, tagEnemy) {
			switch o.kind {
			case KindGround:
				add(contact.Ground, contact.ZoneNone, o)
			case KindHazard:
				add(contact.Hazard, contact.ZoneNone, o)
			case KindLethal:
				add(contact.Lethal, contact.ZoneNone, o)
			case KindEnemy:
				add(contact.Enemy, contact.ZoneNone, o)
			}
		}
	}
	return out
}
