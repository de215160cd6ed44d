package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/penguin-march/internal/config"
	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/storage"
)

// fakeGame returns scripted states and records the frames it was given.
type fakeGame struct {
	resets int
	frames []core.InputFrame
	state  core.GameState
	tuning *config.Tuning
}

func (g *fakeGame) ID() string                 { return "fake" }
func (g *fakeGame) Title() string              { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig)   { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen)    { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState      { return g.state }
func (g *fakeGame) SetTuning(t config.Tuning)  { g.tuning = &t }
func (g *fakeGame) lastFrame() core.InputFrame { return g.frames[len(g.frames)-1] }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	cp := core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			cp.Set(a)
		}
	}
	cp.Axis = in.Axis
	g.frames = append(g.frames, cp)
	return core.StepResult{State: g.state}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func tick(t *testing.T, m Model, n int) Model {
	t.Helper()
	for range n {
		m = update(t, m, TickMsg{})
	}
	return m
}

func newTestModel(t *testing.T, g *fakeGame, opts Options) Model {
	t.Helper()
	m := NewModel(g, core.DefaultConfig(), opts)
	m.Init()
	return m
}

func TestKeyMapActions(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{keyMsg("a"), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump},
		{keyMsg("f"), core.ActionThrow},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{keyMsg("r"), core.ActionRestart},
		{keyMsg("p"), core.ActionPause},
		{keyMsg("q"), core.ActionQuit},
		{keyMsg("z"), core.ActionNone},
	}
	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			if got := km.Action(tc.msg); got != tc.want {
				t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestHeldAxis(t *testing.T) {
	var h heldAxis
	h.press(core.ActionRight)
	for i := range firstPressTicks {
		if h.value() != 1 {
			t.Fatalf("axis released early at tick %d", i)
		}
		h.tick()
	}
	if h.value() != 0 {
		t.Error("axis should release after the first-press hold")
	}

	h.press(core.ActionRight)
	h.press(core.ActionLeft)
	if h.value() != -1 {
		t.Error("opposite press should switch direction immediately")
	}

	h.release()
	h.press(core.ActionJump)
	if h.value() != 0 {
		t.Error("non-movement actions must not move the axis")
	}
}

func TestModelSmoothsHeldKeys(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, Options{})
	if g.resets != 1 {
		t.Fatalf("Init should reset the game once, got %d", g.resets)
	}

	m = update(t, m, keyMsg("d"))
	m = tick(t, m, 1)
	if g.lastFrame().Axis != 1 || !g.lastFrame().Has(core.ActionRight) {
		t.Fatalf("first tick should carry the press, got %+v", g.lastFrame())
	}

	m = tick(t, m, 5)
	if g.lastFrame().Axis != 1 {
		t.Error("axis should stay held between key repeats")
	}
	if g.lastFrame().Has(core.ActionRight) {
		t.Error("the discrete action should only be sent once")
	}

	tick(t, m, firstPressTicks)
	if g.lastFrame().Axis != 0 {
		t.Error("axis should release once presses stop")
	}
}

func TestModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	g := &fakeGame{}
	m := newTestModel(t, g, Options{Store: store, Player: "tux", Difficulty: "hard"})

	m = tick(t, m, 100)
	g.state = core.GameState{Score: 4, GameOver: true}
	m = tick(t, m, 50)

	runs, _ := store.TopRuns("fake", 10)
	if len(runs) != 1 {
		t.Fatalf("expected exactly one saved run, got %d", len(runs))
	}
	r := runs[0]
	if r.Outcome != storage.OutcomeLost || r.Score != 4 || r.Ticks != 101 || r.Player != "tux" || r.Difficulty != "hard" {
		t.Errorf("unexpected run %+v", r)
	}

	// The game reloads and is won on the next attempt.
	g.state = core.GameState{}
	m = tick(t, m, 10)
	g.state = core.GameState{Score: 2, GameOver: true, Won: true}
	tick(t, m, 3)

	runs, _ = store.TopRuns("fake", 10)
	if len(runs) != 2 || runs[1].Outcome != storage.OutcomeWon || runs[1].Ticks != 10 {
		t.Errorf("second attempt not recorded correctly: %+v", runs)
	}
}

func TestModelQuitRecordsAbandonedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	g := &fakeGame{}
	m := newTestModel(t, g, Options{Store: store})
	m = tick(t, m, 20)

	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil || next.(Model).View() != "" {
		t.Error("quit should stop the program and blank the view")
	}

	runs, _ := store.TopRuns("fake", 10)
	if len(runs) != 1 || runs[0].Outcome != storage.OutcomeQuit {
		t.Errorf("quitting mid-run should record it as quit: %+v", runs)
	}
}

func TestModelForwardsTuning(t *testing.T) {
	g := &fakeGame{}
	ch := make(chan config.Tuning, 1)
	m := newTestModel(t, g, Options{Tunings: ch})

	tn := config.DefaultTuning()
	tn.Player.MaxHealth = 7
	m = update(t, m, tuningMsg(tn))

	if g.tuning == nil || g.tuning.Player.MaxHealth != 7 {
		t.Fatal("reloaded tuning should reach the game")
	}
	if !strings.Contains(m.View(), "tuning reloaded") {
		t.Error("reload notice missing from the view")
	}
}

func TestScreenshot(t *testing.T) {
	dir := t.TempDir()
	g := &fakeGame{}
	m := newTestModel(t, g, Options{ScreenshotDir: dir})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one screenshot, got %v (%v)", entries, err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if !strings.HasPrefix(string(data), "fake") {
		t.Errorf("screenshot content %q", data)
	}
	if !strings.Contains(m.View(), "saved ") {
		t.Error("screenshot notice missing")
	}
}

func TestFormatTicks(t *testing.T) {
	tests := []struct {
		ticks int
		want  string
	}{
		{0, "0:00.0"},
		{90, "0:01.5"},
		{3600, "1:00.0"},
		{4266, "1:11.1"},
	}
	for _, tc := range tests {
		if got := FormatTicks(tc.ticks); got != tc.want {
			t.Errorf("FormatTicks(%d) = %q, expected %q", tc.ticks, got, tc.want)
		}
	}
}
