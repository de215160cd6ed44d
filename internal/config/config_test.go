package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	got, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(got, DefaultTuning()) {
		t.Errorf("embedded yaml and DefaultTuning disagree:\nyaml: %+v\ncode: %+v", got, DefaultTuning())
	}
}

func TestParsePartialOverlaysDefaults(t *testing.T) {
	got, err := Parse([]byte("player:\n  max_health: 5\nmarch:\n  count: 4\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Player.MaxHealth != 5 || got.March.Count != 4 {
		t.Errorf("overrides not applied: %+v", got)
	}
	if got.Player.MaxSpeed != 4 || got.March.Interval != 0.25 {
		t.Error("unspecified keys should keep their defaults")
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("player:\n  max_hp: 5\n")); err == nil {
		t.Error("unknown keys should be rejected")
	}
}

func TestParseEmpty(t *testing.T) {
	got, err := Parse(nil)
	if err != nil {
		t.Fatalf("empty file should yield defaults: %v", err)
	}
	if got.Player.MaxHealth != 3 {
		t.Errorf("unexpected tuning %+v", got.Player)
	}
}

func TestCheckReportsFixes(t *testing.T) {
	got, notes, err := Check([]byte("player:\n  max_speed: 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 1 || !strings.Contains(notes[0], "player.max_speed") {
		t.Errorf("expected one max_speed note, got %v", notes)
	}
	if got.Player.MaxSpeed != DefaultTuning().Player.MaxSpeed {
		t.Errorf("max_speed not restored: %v", got.Player.MaxSpeed)
	}
}

func TestSanitize(t *testing.T) {
	tn := DefaultTuning()
	tn.Player.ThrowDelay = 0
	tn.Player.HitDelay = -1
	tn.March.Count = 0
	tn.Player.Knockback = -25
	tn.Difficulty = "nightmare"

	fixed := Sanitize(&tn)
	if len(fixed) != 5 {
		t.Errorf("expected 5 fixes, got %d: %v", len(fixed), fixed)
	}
	if tn.Player.ThrowDelay != 0.25 || tn.Player.HitDelay != 1 || tn.March.Count != 10 {
		t.Errorf("thresholds not restored: %+v", tn.Player)
	}
	if tn.Player.Knockback != 25 || tn.Difficulty != DifficultyNormal {
		t.Errorf("knockback %v difficulty %q", tn.Player.Knockback, tn.Difficulty)
	}

	clean := DefaultTuning()
	if fixed := Sanitize(&clean); len(fixed) != 0 {
		t.Errorf("defaults should need no fixes, got %v", fixed)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	got, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if got.Player.MaxHealth != 3 {
		t.Fatalf("expected embedded default, got health %d", got.Player.MaxHealth)
	}

	writeFile(t, filepath.Join(work, "configs", FileName), "player:\n  max_health: 4\n")
	if got, _ = Load(""); got.Player.MaxHealth != 4 {
		t.Errorf("local config should win over embedded, got %d", got.Player.MaxHealth)
	}

	writeFile(t, filepath.Join(home, ".march", "configs", FileName), "player:\n  max_health: 6\n")
	if got, _ = Load(""); got.Player.MaxHealth != 6 {
		t.Errorf("user config should win over local, got %d", got.Player.MaxHealth)
	}

	custom := filepath.Join(work, "custom.yaml")
	writeFile(t, custom, "player:\n  max_health: 7\n")
	if got, _ = Load(custom); got.Player.MaxHealth != 7 {
		t.Errorf("custom path should win, got %d", got.Player.MaxHealth)
	}

	if _, err := Load(filepath.Join(work, "missing.yaml")); err == nil {
		t.Error("a missing custom path should be an error")
	}
}

func TestBrokenUserConfigSkipped(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	writeFile(t, filepath.Join(home, ".march", "configs", FileName), "player: [oops\n")
	got, err := Load("")
	if err != nil || got.Player.MaxHealth != 3 {
		t.Errorf("broken user file should fall through to defaults, got %v %+v", err, got.Player)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultTuning())
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, DefaultTuning()) {
		t.Error("marshalled tuning should parse back unchanged")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		wantHealth int
		wantMarch  int
	}{
		{DifficultyEasy, 5, 6},
		{DifficultyNormal, 3, 10},
		{DifficultyHard, 2, 14},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			tn := DefaultTuning()
			ApplyPreset(&tn, tt.preset)
			if tn.Player.MaxHealth != tt.wantHealth || tn.March.Count != tt.wantMarch {
				t.Errorf("health %d march %d", tn.Player.MaxHealth, tn.March.Count)
			}
			if tn.Difficulty != tt.preset {
				t.Errorf("difficulty not recorded: %q", tn.Difficulty)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	for in, want := range map[string]DifficultyPreset{"": DifficultyNormal, "EASY": DifficultyEasy, " hard ": DifficultyHard} {
		got, err := ParseDifficulty(in)
		if err != nil || got != want {
			t.Errorf("ParseDifficulty(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseDifficulty("insane"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestSessionConfig(t *testing.T) {
	sc := DefaultTuning().SessionConfig()
	if sc.Player.ProjectileSpeed != 10 || sc.Player.Combat.Knockback != 25 {
		t.Errorf("player config %+v", sc.Player)
	}
	if sc.MarchCount != 10 || sc.MarchSpawn.X != 13 || len(sc.Enemies) != 2 {
		t.Errorf("march/enemies config wrong: %+v", sc)
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	writeFile(t, path, "player:\n  max_health: 3\n")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	writeFile(t, path, "player:\n  max_health: 9\n")

	select {
	case got := <-w.Updates:
		if got.Player.MaxHealth != 9 {
			t.Errorf("reloaded health %d, expected 9", got.Player.MaxHealth)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}

	if err := w.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
	for range w.Updates {
		// drain; the loop ends only once Close has closed the channel
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
