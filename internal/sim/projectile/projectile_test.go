package projectile

import (
	"slices"
	"testing"

	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/sim/contact"
)

func TestPoolTTL(t *testing.T) {
	p := NewPool(1.0)
	p.Add(2, core.V(0, 1), core.V(10, 0))
	p.Add(1, core.V(0, 1), core.V(-10, 0))

	var expired []core.EntityID
	for i := 0; i < 59; i++ {
		expired = append(expired, p.Advance(1.0/60.0)...)
	}
	if len(expired) != 0 || p.Len() != 2 {
		t.Fatalf("projectiles expired early: %v", expired)
	}

	expired = p.Advance(1.0 / 60.0)
	if len(expired) != 2 || expired[0] != 1 || expired[1] != 2 {
		t.Fatalf("expected both to expire in id order, got %v", expired)
	}
	if p.Len() != 0 {
		t.Errorf("pool should be empty, has %d", p.Len())
	}
}

func TestIDsOrdered(t *testing.T) {
	p := NewPool(1.0)
	for _, id := range []core.EntityID{9, 3, 7, 1} {
		p.Add(id, core.Vec2{}, core.V(10, 0))
	}
	got := p.IDs()
	want := []core.EntityID{1, 3, 7, 9}
	if !slices.Equal(got, want) {
		t.Errorf("IDs() = %v, expected %v", got, want)
	}
}

func TestRemoveOnce(t *testing.T) {
	p := NewPool(1.0)
	p.Add(5, core.Vec2{}, core.V(10, 0))

	if !p.Remove(5) {
		t.Fatal("first remove should succeed")
	}
	if p.Remove(5) || p.Has(5) {
		t.Fatal("projectile must be consumed only once")
	}
	if got := p.Advance(2); len(got) != 0 {
		t.Errorf("removed projectile should not expire again, got %v", got)
	}
}

func TestDestroys(t *testing.T) {
	tests := []struct {
		tag  contact.Tag
		want bool
	}{
		{contact.Ground, true},
		{contact.Hazard, true},
		{contact.Lethal, true},
		{contact.Enemy, false},
		{contact.TriggerZone, false},
		{contact.Projectile, false},
	}
	for _, tt := range tests {
		if got := Destroys(contact.Event{Tag: tt.tag}); got != tt.want {
			t.Errorf("Destroys(%v) = %v, expected %v", tt.tag, got, tt.want)
		}
	}
}
