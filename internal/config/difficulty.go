package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParseDifficulty accepts a preset name in any case. An empty string means
// normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal or hard)", s)
	}
}

// ApplyPreset scales the tuning for a preset. Normal leaves the tuning as
// loaded. Applying a preset records it in t.Difficulty.
func ApplyPreset(t *Tuning, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		t.Player.MaxHealth += 2
		t.Player.HitDelay *= 1.5
		t.March.Count = max(1, int(math.Round(float64(t.March.Count)*0.6)))
		t.Enemy.Speed *= 0.8
		t.Enemy.FastSpeed *= 0.8
	case DifficultyHard:
		t.Player.MaxHealth = max(1, t.Player.MaxHealth-1)
		t.Player.HitDelay *= 0.75
		t.Player.ThrowDelay *= 1.5
		t.March.Count = int(math.Round(float64(t.March.Count) * 1.4))
		t.Enemy.Speed *= 1.25
		t.Enemy.FastSpeed *= 1.25
	}
	t.Difficulty = preset
}
