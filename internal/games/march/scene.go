package march

import (
	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/sim/sink"
)

// Cue flash lengths in ticks.
const (
	hitFlashTicks   = 30
	throwFlashTicks = 6
	soundTicks      = 45
)

// scene collects presentation output between renders. It implements the
// presenter, audio and UI sinks.
type scene struct {
	views   map[core.EntityID]sink.View
	flashes map[core.EntityID]flash

	sound      sink.Sound
	soundLeft  int
	hasSound   bool
	victory    [2]string
	hasVictory bool
	gameOver   bool
}

type flash struct {
	cue  sink.Cue
	left int
}

func newScene() *scene {
	return &scene{
		views:   make(map[core.EntityID]sink.View),
		flashes: make(map[core.EntityID]flash),
	}
}

func (s *scene) Present(id core.EntityID, v sink.View) { s.views[id] = v }

func (s *scene) Trigger(id core.EntityID, c sink.Cue) {
	switch c {
	case sink.CueHit, sink.CueKO:
		s.flashes[id] = flash{cue: c, left: hitFlashTicks}
	case sink.CueThrow:
		s.flashes[id] = flash{cue: c, left: throwFlashTicks}
	case sink.CueGameOver:
		s.gameOver = true
	}
}

func (s *scene) Play(snd sink.Sound) {
	s.sound, s.soundLeft, s.hasSound = snd, soundTicks, true
}

func (s *scene) ShowVictory(title, prompt string) {
	s.victory = [2]string{title, prompt}
	s.hasVictory = true
}

// tick ages flashes and the sound caption.
func (s *scene) tick() {
	for id, f := range s.flashes {
		if f.left--; f.left <= 0 {
			delete(s.flashes, id)
			continue
		}
		s.flashes[id] = f
	}
	if s.soundLeft > 0 {
		s.soundLeft--
		s.hasSound = s.soundLeft > 0
	}
}

// flashing reports whether id shows cue c this tick. Flashes blink every
// four ticks.
func (s *scene) flashing(id core.EntityID, c sink.Cue) bool {
	f, ok := s.flashes[id]
	return ok && f.cue == c && (f.left/4)%2 == 0
}

// reset forgets everything shown for the previous attempt.
func (s *scene) reset() {
	clear(s.views)
	clear(s.flashes)
	s.soundLeft, s.hasSound = 0, false
	s.hasVictory, s.gameOver = false, false
}
