package replay

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/penguin-march/internal/config"
)

func mustParse(t *testing.T, src string) Script {
	t.Helper()
	s, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return s
}

func TestParseDefaults(t *testing.T) {
	s := mustParse(t, `
steps:
  - {at: 0, for: 30, horizontal: 1}
  - {at: 50, jump: true}
`)
	if s.TickRate != 60 {
		t.Errorf("TickRate = %d, expected 60", s.TickRate)
	}
	if s.Steps[1].For != 1 {
		t.Errorf("step without for should last one tick, got %d", s.Steps[1].For)
	}
	if s.Ticks != 51 {
		t.Errorf("Ticks should default to the end of the last step, got %d", s.Ticks)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown key", "tiks: 10\n"},
		{"negative at", "steps: [{at: -1}]\n"},
		{"negative for", "steps: [{at: 0, for: -2}]\n"},
		{"nothing to run", "name: empty\n"},
		{"negative rate", "ticks: 5\ntick_rate: -1\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.src)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestIntentCombinesSteps(t *testing.T) {
	s := mustParse(t, `
steps:
  - {at: 0, for: 10, horizontal: 1}
  - {at: 5, for: 10, horizontal: 0.5, throw: true}
  - {at: 7, jump: true}
`)
	tests := []struct {
		tick        int
		horizontal  float64
		jump, throw bool
	}{
		{0, 1, false, false},
		{5, 1, false, true},
		{7, 1, true, true},
		{12, 0.5, false, true},
		{20, 0, false, false},
	}
	for _, tc := range tests {
		in := s.Intent(tc.tick)
		if in.Horizontal != tc.horizontal || in.Jump != tc.jump || in.Throw != tc.throw {
			t.Errorf("Intent(%d) = %+v", tc.tick, in)
		}
	}
}

func TestRunReachesFinish(t *testing.T) {
	s := mustParse(t, `
name: finish
ticks: 100
stop_on_outcome: true
spawn: {x: 57, y: 0.5}
`)
	rep, err := Run(s, config.DefaultTuning(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Outcome != "won" || rep.Player.State != "won" {
		t.Fatalf("expected a win, got %+v", rep)
	}
	if rep.Ticks != 1 {
		t.Errorf("run should stop on the winning tick, stopped after %d", rep.Ticks)
	}
	if len(rep.Victory) != 2 {
		t.Errorf("victory message not shown: %v", rep.Victory)
	}
}

func TestRunLosesAndReloads(t *testing.T) {
	s := mustParse(t, `
ticks: 400
spawn: {x: 25.5, y: 1}
`)
	rep, err := Run(s, config.DefaultTuning(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Restarts < 1 {
		t.Errorf("a lost run should reload the level, got %d restarts", rep.Restarts)
	}
	if rep.Cues["game_over"] < 1 {
		t.Errorf("game over cue missing: %v", rep.Cues)
	}
}

func TestRunThrows(t *testing.T) {
	s := mustParse(t, "steps: [{at: 0, throw: true}]\n")
	rep, err := Run(s, config.DefaultTuning(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Thrown != 1 || rep.Cues["throw"] != 1 || rep.Sounds["throw"] != 1 {
		t.Errorf("expected one throw, got thrown=%d cues=%v sounds=%v", rep.Thrown, rep.Cues, rep.Sounds)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	s := mustParse(t, `
ticks: 600
steps:
  - {at: 0, for: 600, horizontal: 1}
  - {at: 60, jump: true}
  - {at: 90, for: 200, throw: true}
`)
	a, err := Run(s, config.DefaultTuning(), Options{TraceEvery: 30})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Run(s, config.DefaultTuning(), Options{TraceEvery: 30})
	if !reflect.DeepEqual(a, b) {
		t.Error("identical scripts produced different reports")
	}
	if len(a.Trace) != 20 {
		t.Errorf("expected 20 trace entries, got %d", len(a.Trace))
	}
}

func TestLoadFileAndMarshal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("name: idle\nticks: 10\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	rep, err := Run(s, config.DefaultTuning(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	out, err := Marshal(rep)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"name: idle", "ticks: 10", "outcome: in_progress"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}
