// Package contact defines the closed vocabulary the collision layer uses to
// report what touched what during a tick.
package contact

import "github.com/vovakirdan/penguin-march/internal/core"

// Tag classifies a reported contact.
type Tag int

const (
	Ground      Tag = iota // standing on solid geometry
	Hazard                 // spikes and other damaging scenery
	Enemy                  // body contact with an enemy actor
	Projectile             // overlap with a thrown projectile
	TriggerZone            // entered a trigger zone, see Zone
	Lethal                 // kill volume (pits, lava)
)

func (t Tag) String() string {
	switch t {
	case Ground:
		return "ground"
	case Hazard:
		return "hazard"
	case Enemy:
		return "enemy"
	case Projectile:
		return "projectile"
	case TriggerZone:
		return "trigger"
	case Lethal:
		return "lethal"
	default:
		return "unknown"
	}
}

// Zone names the kind of a trigger zone.
type Zone int

const (
	ZoneNone Zone = iota
	ZoneMarch
	ZoneFinish
	ZonePatrolBoundary
)

func (z Zone) String() string {
	switch z {
	case ZoneMarch:
		return "march"
	case ZoneFinish:
		return "finish"
	case ZonePatrolBoundary:
		return "patrol_boundary"
	default:
		return "none"
	}
}

// Event is one contact reported for Subject during a tick.
type Event struct {
	Subject  core.EntityID // the object the report is about
	Tag      Tag
	Zone     Zone          // set when Tag == TriggerZone
	Other    core.EntityID // the hazard, enemy, projectile or zone touched
	OtherPos core.Vec2     // world position of Other, used for knockback direction
}

// Is reports whether e is a trigger-zone contact of kind z.
func (e Event) Is(z Zone) bool {
	return e.Tag == TriggerZone && e.Zone == z
}

// Grounded reports whether events contain a Ground contact.
func Grounded(events []Event) bool {
	for _, e := range events {
		if e.Tag == Ground {
			return true
		}
	}
	return false
}

// BySubject splits events per subject while keeping report order inside
// each group.
func BySubject(events []Event) map[core.EntityID][]Event {
	out := make(map[core.EntityID][]Event)
	for _, e := range events {
		out[e.Subject] = append(out[e.Subject], e)
	}
	return out
}

// Body is the physics state of one object after the host's step.
type Body struct {
	ID            core.EntityID
	Position      core.Vec2
	VerticalSpeed float64
}

// Report is everything the collision layer observed during one step.
// Contacts keep the order they were detected in.
type Report struct {
	Bodies   []Body
	Contacts []Event
}
