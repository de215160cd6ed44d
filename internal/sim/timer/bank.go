package timer

// Name identifies a timer inside a Bank.
type Name string

// Well-known timer names.
const (
	ThrowCooldown  Name = "throw_cooldown"
	HitImmunity    Name = "hit_immunity"
	PatrolDebounce Name = "patrol_debounce"
)

// Bank groups the timers owned by one controller so they advance together.
type Bank struct {
	timers map[Name]*Timer
	order  []Name
}

// NewBank creates an empty bank.
func NewBank() *Bank {
	return &Bank{timers: make(map[Name]*Timer)}
}

// Add registers a timer under name, replacing any timer already there.
// A ready timer starts primed.
func (b *Bank) Add(name Name, threshold float64, ready bool) *Timer {
	t := New(threshold)
	if ready {
		t.Prime()
	}
	if _, exists := b.timers[name]; !exists {
		b.order = append(b.order, name)
	}
	b.timers[name] = t
	return t
}

// Get returns the named timer, or nil when it is not registered.
func (b *Bank) Get(name Name) *Timer {
	return b.timers[name]
}

// Advance adds dt to every timer in registration order.
func (b *Bank) Advance(dt float64) {
	for _, name := range b.order {
		b.timers[name].Advance(dt)
	}
}

// Ready reports whether the named timer is ready. Unknown names are never ready.
func (b *Bank) Ready(name Name) bool {
	t, ok := b.timers[name]
	return ok && t.Ready()
}

// Consume consumes the named timer. Unknown names consume as false.
func (b *Bank) Consume(name Name) bool {
	t, ok := b.timers[name]
	if !ok {
		return false
	}
	return t.Consume()
}
