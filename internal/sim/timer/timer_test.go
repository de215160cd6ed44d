package timer

import "testing"

func TestTimerConsume(t *testing.T) {
	tm := New(0.25)

	if tm.Consume() {
		t.Fatal("fresh timer should not be ready")
	}

	tm.Advance(0.125)
	if tm.Consume() {
		t.Fatal("timer should not be ready at 0.125")
	}
	if tm.Elapsed() != 0.125 {
		t.Errorf("failed consume should not touch state, elapsed = %v", tm.Elapsed())
	}

	tm.Advance(0.125)
	if !tm.Consume() {
		t.Fatal("timer should be ready at exactly the threshold")
	}
	if tm.Elapsed() != 0 {
		t.Errorf("consume should reset elapsed, got %v", tm.Elapsed())
	}
}

func TestTimerNegativeDeltaClamped(t *testing.T) {
	tm := New(1)
	tm.Advance(0.5)
	tm.Advance(-10)
	if tm.Elapsed() != 0.5 {
		t.Errorf("negative delta should be ignored, elapsed = %v", tm.Elapsed())
	}
}

func TestTimerSixtyHertzReachesThreshold(t *testing.T) {
	tm := New(0.25)
	for i := 0; i < 15; i++ {
		tm.Advance(1.0 / 60.0)
	}
	if !tm.Ready() {
		t.Errorf("15 ticks at 60 Hz should reach 0.25, elapsed = %.17f", tm.Elapsed())
	}
}

func TestNewReady(t *testing.T) {
	tm := NewReady(1)
	if !tm.Consume() {
		t.Fatal("primed timer should consume immediately")
	}
	if tm.Consume() {
		t.Fatal("second consume without time should fail")
	}
}

func TestBank(t *testing.T) {
	b := NewBank()
	b.Add(ThrowCooldown, 0.25, true)
	b.Add(HitImmunity, 1.0, false)

	if !b.Consume(ThrowCooldown) {
		t.Error("ready timer should consume")
	}
	if b.Consume(HitImmunity) {
		t.Error("unready timer should not consume")
	}
	if b.Consume(PatrolDebounce) {
		t.Error("unknown timer should consume as false")
	}

	b.Advance(1.0)
	if !b.Ready(ThrowCooldown) || !b.Ready(HitImmunity) {
		t.Error("Advance should move every timer")
	}
	if b.Get(PatrolDebounce) != nil {
		t.Error("Get should return nil for unknown names")
	}
}

func TestDeferredFiresOnce(t *testing.T) {
	d := NewDeferred(3.0)

	if d.Advance(5) {
		t.Fatal("unarmed action must not fire")
	}
	if d.Pending() || d.Remaining() != 0 {
		t.Fatal("unarmed action should not be pending")
	}
	if !d.Arm() {
		t.Fatal("first Arm should succeed")
	}
	if d.Arm() {
		t.Fatal("re-arming while pending must be ignored")
	}
	if !d.Pending() || d.Remaining() != 3.0 {
		t.Fatalf("armed action: pending=%v remaining=%v", d.Pending(), d.Remaining())
	}

	fires := 0
	for i := 0; i < 10; i++ {
		if d.Advance(1.0) {
			fires++
			if i != 2 {
				t.Errorf("expected to fire on the third second, fired at step %d", i)
			}
		}
	}
	if fires != 1 {
		t.Errorf("deferred action fired %d times, expected 1", fires)
	}
	if !d.Fired() || d.Pending() || d.Remaining() != 0 {
		t.Errorf("fired action: fired=%v pending=%v remaining=%v", d.Fired(), d.Pending(), d.Remaining())
	}
	if d.Arm() {
		t.Error("arming after firing must be ignored until Reset")
	}

	d.Reset()
	if !d.Arm() {
		t.Error("Arm should succeed after Reset")
	}
}

func TestSequenceSpacing(t *testing.T) {
	s := NewSequence(10, 0.25)

	if n := s.Advance(1); n != 0 {
		t.Fatalf("stopped sequence emitted %d", n)
	}
	if n := s.Start(); n != 1 {
		t.Fatalf("Start should emit the first event immediately, got %d", n)
	}
	if n := s.Start(); n != 0 {
		t.Fatalf("second Start should be a no-op, got %d", n)
	}

	var times []float64
	now := 0.0
	for !s.Done() && now < 10 {
		now += 0.0625
		for n := s.Advance(0.0625); n > 0; n-- {
			times = append(times, now)
		}
	}

	if s.Emitted() != 10 {
		t.Fatalf("emitted %d, expected 10", s.Emitted())
	}
	if len(times) != 9 {
		t.Fatalf("expected 9 events after start, got %d", len(times))
	}
	for i, at := range times {
		want := float64(i+1) * 0.25
		if at != want {
			t.Errorf("event %d at %v, expected %v", i+2, at, want)
		}
	}
}

func TestSequenceLargeDelta(t *testing.T) {
	s := NewSequence(4, 0.25)
	s.Start()
	if n := s.Advance(1.0); n != 3 {
		t.Errorf("one large step should release the 3 remaining events, got %d", n)
	}
	if !s.Done() {
		t.Error("sequence should be done")
	}
}
