package timer

import "github.com/vovakirdan/penguin-march/internal/core"

// Sequence emits a fixed number of events spaced by interval. The first
// event is due the moment the sequence starts.
type Sequence struct {
	count    int
	interval float64
	elapsed  float64
	emitted  int
	started  bool
}

// NewSequence creates a stopped sequence.
func NewSequence(count int, interval float64) *Sequence {
	if count < 0 {
		count = 0
	}
	return &Sequence{count: count, interval: interval}
}

// Start begins the sequence and returns the number of events due
// immediately (1 for any non-empty sequence). Starting twice is a no-op.
func (s *Sequence) Start() int {
	if s.started {
		return 0
	}
	s.started = true
	return s.due()
}

// Advance moves the sequence forward and returns how many events became
// due. A large dt may release several events at once.
func (s *Sequence) Advance(dt float64) int {
	if !s.started || s.Done() {
		return 0
	}
	s.elapsed += core.NonNegative(dt)
	return s.due()
}

func (s *Sequence) due() int {
	n := 0
	for s.emitted < s.count && float64(s.emitted)*s.interval <= s.elapsed+epsilon {
		s.emitted++
		n++
	}
	return n
}

// Done reports whether every event has been emitted.
func (s *Sequence) Done() bool { return s.started && s.emitted >= s.count }

// Emitted returns the number of events emitted so far.
func (s *Sequence) Emitted() int { return s.emitted }
