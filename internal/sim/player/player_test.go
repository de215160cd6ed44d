package player

import (
	"testing"

	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/sim/contact"
	"github.com/vovakirdan/penguin-march/internal/sim/sink"
	"github.com/vovakirdan/penguin-march/internal/sim/timer"
)

const dt = 1.0 / 60.0

func newTestController(t *testing.T) (*Controller, *sink.Recorder) {
	t.Helper()
	rec := sink.NewRecorder()
	c := New(1, core.V(0, 1), DefaultConfig(), rec.Set(), nil)
	c.Actor().Grounded = true
	return c, rec
}

func TestThrowGatedByCooldown(t *testing.T) {
	c, rec := newTestController(t)
	throw := core.Intent{Throw: true}

	res := c.Tick(dt, throw, nil)
	if res.Throw == nil {
		t.Fatal("first throw should be accepted with a ready cooldown")
	}
	if res.Throw.Velocity != core.V(10, 0) || res.Throw.Origin != core.V(0, 1) {
		t.Errorf("unexpected throw %+v", res.Throw)
	}
	if got := c.Timers().Get(timer.ThrowCooldown).Elapsed(); got != 0 {
		t.Errorf("accepted throw should reset cooldown, elapsed = %v", got)
	}

	// 0.1s later the cooldown is not ready: rejected, no reset.
	for i := 0; i < 5; i++ {
		c.Tick(dt, core.Intent{}, nil)
	}
	before := c.Timers().Get(timer.ThrowCooldown).Elapsed()
	res = c.Tick(dt, throw, nil)
	if res.Throw != nil {
		t.Fatal("throw inside cooldown must be rejected")
	}
	if after := c.Timers().Get(timer.ThrowCooldown).Elapsed(); after != before+dt {
		t.Errorf("rejected throw must not reset cooldown: before %v after %v", before, after)
	}

	for i := 0; i < 15; i++ {
		c.Tick(dt, core.Intent{}, nil)
	}
	if res = c.Tick(dt, throw, nil); res.Throw == nil {
		t.Error("throw after cooldown should be accepted")
	}
	if n := rec.SoundCount(sink.SoundThrow); n != 2 {
		t.Errorf("throw sound played %d times, expected 2", n)
	}
}

func TestThrowFollowsFacing(t *testing.T) {
	c, _ := newTestController(t)
	res := c.Tick(dt, core.Intent{Horizontal: -1, Throw: true}, nil)
	if res.Throw == nil || res.Throw.Velocity.X != -10 {
		t.Fatalf("throw while turning left should fly left, got %+v", res.Throw)
	}
}

func TestThreeHitsToGameOver(t *testing.T) {
	c, rec := newTestController(t)
	hazard := []contact.Event{{Subject: 1, Tag: contact.Hazard, Other: 50, OtherPos: core.V(1, 1)}}
	busy := core.Intent{Horizontal: 1, Jump: true, Throw: true}

	tick := 0
	for c.State() == Playing && tick < 1000 {
		c.Tick(dt, core.Intent{}, hazard)
		tick++
	}
	if c.State() != GameOverPending {
		t.Fatalf("expected GameOverPending, got %v", c.State())
	}
	if tick != 121 {
		t.Errorf("third hit should land 2.0s after the first (tick 121), got tick %d", tick)
	}
	if c.Actor().Alive() || c.Actor().Health() != 0 {
		t.Error("player should be dead")
	}
	if n := rec.SoundCount(sink.SoundDamaged); n != 2 {
		t.Errorf("expected 2 hurt sounds before death, got %d", n)
	}
	if rec.CueCount(sink.CueGameOver) != 1 || rec.SoundCount(sink.SoundKO) != 1 {
		t.Error("game over entry should cue once")
	}

	for i := 0; i < 179; i++ {
		res := c.Tick(dt, busy, hazard)
		if res.Throw != nil || res.Reload {
			t.Fatalf("tick %d: pending state leaked %+v", i, res)
		}
		if m := c.Actor().Motion; m.VelocityX != 0 || !m.Impulse.IsZero() {
			t.Fatalf("tick %d: intents must be zeroed while pending, motion %+v", i, m)
		}
		if c.State() != GameOverPending {
			t.Fatalf("tick %d: left pending early", i)
		}
	}

	res := c.Tick(dt, busy, hazard)
	if !res.Reload || c.State() != GameOverFinished {
		t.Fatalf("expected finish after 3.0s, state %v", c.State())
	}
	for i := 0; i < 300; i++ {
		if res := c.Tick(dt, busy, nil); res.Reload || res.Throw != nil {
			t.Fatal("finished state must not act again")
		}
	}
	if rec.Reloads != 1 {
		t.Errorf("reload requested %d times, expected 1", rec.Reloads)
	}
}

func TestSpawnWithoutHealthIsGameOver(t *testing.T) {
	rec := sink.NewRecorder()
	cfg := DefaultConfig()
	cfg.MaxHealth = 0
	c := New(1, core.V(0, 1), cfg, rec.Set(), nil)
	c.Actor().Grounded = true

	res := c.Tick(dt, core.Intent{Horizontal: 1, Jump: true, Throw: true}, nil)
	if c.State() != GameOverPending {
		t.Fatalf("a player without health should not play, state %v", c.State())
	}
	if m := c.Actor().Motion; res.Throw != nil || m.VelocityX != 0 || !m.Frozen {
		t.Errorf("dead player must not move or throw: throw=%v motion=%+v", res.Throw, c.Actor().Motion)
	}
	if rec.CueCount(sink.CueGameOver) != 1 {
		t.Errorf("game over cue sent %d times, expected 1", rec.CueCount(sink.CueGameOver))
	}
}

func TestFallIsGameOver(t *testing.T) {
	c, _ := newTestController(t)
	c.Actor().Position = core.V(3, -2.5)
	c.Tick(dt, core.Intent{}, nil)
	if c.State() != GameOverPending || c.Actor().Alive() {
		t.Errorf("falling below the world should end the game, state %v", c.State())
	}
}

func TestWinAndConfirmOnce(t *testing.T) {
	c, rec := newTestController(t)
	finish := []contact.Event{{Subject: 1, Tag: contact.TriggerZone, Zone: contact.ZoneFinish, Other: 90}}

	c.Tick(dt, core.Intent{Horizontal: 1}, finish)
	if c.State() != Won {
		t.Fatalf("expected Won, got %v", c.State())
	}
	if len(rec.Victory) != 2 || rec.Victory[0] != "Congratulations!" {
		t.Errorf("victory text not shown: %v", rec.Victory)
	}
	if c.Actor().Motion.VelocityX != 0 {
		t.Error("winning should freeze movement")
	}

	reloads := 0
	for i := 0; i < 5; i++ {
		if c.Tick(dt, core.Intent{Confirm: true}, nil).Reload {
			reloads++
		}
	}
	if reloads != 1 || rec.Reloads != 1 {
		t.Errorf("confirm should request exactly one reload, got %d", reloads)
	}
}

func TestJumpRequiresGround(t *testing.T) {
	c, rec := newTestController(t)

	c.Tick(dt, core.Intent{Jump: true}, nil)
	if c.Actor().Motion.Impulse.Y != 6 || c.Actor().Grounded {
		t.Fatalf("grounded jump should impulse and clear grounded: %+v", c.Actor().Motion)
	}

	c.Tick(dt, core.Intent{Jump: true}, nil)
	if c.Actor().Motion.Impulse.Y != 0 {
		t.Error("airborne actor must not jump")
	}
	if rec.SoundCount(sink.SoundJump) != 1 {
		t.Errorf("jump sound played %d times", rec.SoundCount(sink.SoundJump))
	}
}

func TestMovementAndFacing(t *testing.T) {
	tests := []struct {
		h         float64
		wantVX    float64
		wantRight bool
	}{
		{1, 4, true},
		{-0.5, -2, false},
		{0, 0, false},
		{2, 4, true},
	}

	c, _ := newTestController(t)
	for _, tt := range tests {
		c.Tick(dt, core.Intent{Horizontal: tt.h}, nil)
		if got := c.Actor().Motion.VelocityX; got != tt.wantVX {
			t.Errorf("h=%v: vx = %v, expected %v", tt.h, got, tt.wantVX)
		}
		if c.Actor().FacingRight != tt.wantRight {
			t.Errorf("h=%v: facingRight = %v", tt.h, c.Actor().FacingRight)
		}
		c.Actor().TakeMotion()
	}
}

func TestMarchZoneOnce(t *testing.T) {
	c, rec := newTestController(t)
	march := []contact.Event{
		{Subject: 1, Tag: contact.TriggerZone, Zone: contact.ZoneMarch, Other: 70},
		{Subject: 1, Tag: contact.TriggerZone, Zone: contact.ZoneMarch, Other: 70},
	}

	res := c.Tick(dt, core.Intent{}, march)
	if len(res.MarchZones) != 1 || res.MarchZones[0] != 70 {
		t.Fatalf("expected zone 70 once, got %v", res.MarchZones)
	}
	if res = c.Tick(dt, core.Intent{}, march); len(res.MarchZones) != 0 {
		t.Errorf("zone must not re-trigger, got %v", res.MarchZones)
	}
	if len(rec.Zones) != 1 {
		t.Errorf("zone removal requested %d times", len(rec.Zones))
	}
}

func TestOwnProjectileIgnored(t *testing.T) {
	c, _ := newTestController(t)
	c.Tick(dt, core.Intent{}, []contact.Event{{Subject: 1, Tag: contact.Projectile, Other: 8}})
	if c.Actor().Health() != 3 {
		t.Errorf("own projectile hurt the player, health %d", c.Actor().Health())
	}
}

func TestResetRestoresPlaying(t *testing.T) {
	c, _ := newTestController(t)
	c.Actor().Position = core.V(0, -5)
	c.Tick(dt, core.Intent{}, nil)

	c.Reset()
	if c.State() != Playing || !c.Actor().Alive() || c.Actor().Position != core.V(0, 1) {
		t.Errorf("reset failed: state %v actor %+v", c.State(), c.Actor())
	}
	if !c.Timers().Ready(timer.ThrowCooldown) || !c.Timers().Ready(timer.HitImmunity) {
		t.Error("timers should start ready after reset")
	}
}
