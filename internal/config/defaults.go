package config

import (
	_ "embed"
)

//go:embed defaults/march.yaml
var defaultMarchYAML []byte

// DefaultTuning returns the hardcoded tuning. It mirrors the embedded
// defaults/march.yaml and is used when that file cannot be parsed.
func DefaultTuning() Tuning {
	return Tuning{
		Difficulty: DifficultyNormal,
		Player: PlayerTuning{
			MaxHealth:     3,
			MaxSpeed:      4.0,
			JumpImpulse:   6.0,
			ThrowDelay:    0.25,
			HitDelay:      1.0,
			Knockback:     25.0,
			FallThreshold: -2.0,
			GameOverDelay: 3.0,
			VictoryTitle:  "Congratulations!",
			VictoryPrompt: "Press Enter or right-click to replay.",
		},
		Projectile: ProjectileTuning{
			Speed:    10.0,
			Lifetime: 1.0,
		},
		Enemy: EnemyTuning{
			Speed:         1.0,
			FastSpeed:     2.0,
			FastAbove:     1.2,
			Debounce:      0.25,
			FallThreshold: -2.0,
		},
		March: MarchTuning{
			Count:    10,
			Interval: 0.25,
			Spawn:    Point{X: 13, Y: 1.3},
		},
		Level: DefaultLevel(),
	}
}

// DefaultLevel returns the built-in level layout.
func DefaultLevel() Level {
	return Level{
		Name:        "Ice Shelf",
		Gravity:     9.81,
		Bounds:      Box{X: -6, Y: -4, W: 72, H: 16},
		PlayerSpawn: Point{X: 0, Y: 1},
		Ground: []Box{
			{X: -6, Y: -1, W: 30, H: 1},
			{X: 27, Y: -1, W: 33, H: 1},
			{X: -6, Y: 0, W: 1, H: 4},
			{X: 31, Y: 1.5, W: 3, H: 0.4},
			{X: 59, Y: 0, W: 1, H: 4},
		},
		Hazards: []Box{
			{X: 18, Y: 0, W: 1, H: 0.3},
			{X: 40, Y: 0, W: 1, H: 0.3},
		},
		Lethal: []Box{
			{X: 24, Y: -1.6, W: 3, H: 0.6},
		},
		PatrolBoundaries: []Box{
			{X: 2, Y: 0, W: 0.2, H: 2},
			{X: 11, Y: 0, W: 0.2, H: 2},
			{X: 45, Y: 0, W: 0.2, H: 2},
			{X: 52, Y: 0, W: 0.2, H: 2},
		},
		MarchZones: []Box{
			{X: 8, Y: 0, W: 1, H: 3},
		},
		Finish: []Box{
			{X: 56, Y: 0, W: 2, H: 3},
		},
		Enemies: []Point{
			{X: 6, Y: 0.5},
			{X: 48, Y: 0.5},
		},
	}
}

// DefaultYAML returns the embedded default tuning file.
func DefaultYAML() []byte {
	return defaultMarchYAML
}
