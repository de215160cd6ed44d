// Package config provides YAML-based tuning loading, difficulty presets and
// hot reload for Penguin March.
package config

import (
	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/sim/combat"
	"github.com/vovakirdan/penguin-march/internal/sim/enemy"
	"github.com/vovakirdan/penguin-march/internal/sim/player"
	"github.com/vovakirdan/penguin-march/internal/sim/session"
)

// Tuning contains every gameplay parameter and the level layout.
type Tuning struct {
	Difficulty DifficultyPreset `yaml:"difficulty"`
	Player     PlayerTuning     `yaml:"player"`
	Projectile ProjectileTuning `yaml:"projectile"`
	Enemy      EnemyTuning      `yaml:"enemy"`
	March      MarchTuning      `yaml:"march"`
	Level      Level            `yaml:"level"`
}

// PlayerTuning defines the player's movement, combat and game-over timing.
type PlayerTuning struct {
	MaxHealth     int     `yaml:"max_health"`
	MaxSpeed      float64 `yaml:"max_speed"`
	JumpImpulse   float64 `yaml:"jump_impulse"`
	ThrowDelay    float64 `yaml:"throw_delay"`
	HitDelay      float64 `yaml:"hit_delay"` // immunity after a hit
	Knockback     float64 `yaml:"knockback"`
	FallThreshold float64 `yaml:"fall_threshold"`
	GameOverDelay float64 `yaml:"game_over_delay"`
	VictoryTitle  string  `yaml:"victory_title"`
	VictoryPrompt string  `yaml:"victory_prompt"`
}

// ProjectileTuning defines the thrown brick.
type ProjectileTuning struct {
	Speed    float64 `yaml:"speed"`
	Lifetime float64 `yaml:"lifetime"`
}

// EnemyTuning defines the patrolling penguins.
type EnemyTuning struct {
	Speed         float64 `yaml:"speed"`
	FastSpeed     float64 `yaml:"fast_speed"`
	FastAbove     float64 `yaml:"fast_above"` // spawn height above which enemies use FastSpeed
	Debounce      float64 `yaml:"debounce"`
	FallThreshold float64 `yaml:"fall_threshold"`
}

// MarchTuning defines the spawn sequence started by a march zone.
type MarchTuning struct {
	Count    int     `yaml:"count"`
	Interval float64 `yaml:"interval"`
	Spawn    Point   `yaml:"spawn"`
}

// Level is the static layout the reference host builds its world from.
// Coordinates are world units with Y pointing up.
type Level struct {
	Name             string  `yaml:"name"`
	Gravity          float64 `yaml:"gravity"`
	Bounds           Box     `yaml:"bounds"`
	PlayerSpawn      Point   `yaml:"player_spawn"`
	Ground           []Box   `yaml:"ground"`
	Hazards          []Box   `yaml:"hazards"`
	Lethal           []Box   `yaml:"lethal"`
	PatrolBoundaries []Box   `yaml:"patrol_boundaries"`
	MarchZones       []Box   `yaml:"march_zones"`
	Finish           []Box   `yaml:"finish"`
	Enemies          []Point `yaml:"enemies"`
}

// Point is a world position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vec converts p to a core vector.
func (p Point) Vec() core.Vec2 { return core.V(p.X, p.Y) }

// Box is an axis-aligned rectangle given by its bottom-left corner.
type Box struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Center returns the middle of the box.
func (b Box) Center() core.Vec2 { return core.V(b.X+b.W/2, b.Y+b.H/2) }

// Top returns the y coordinate of the top edge.
func (b Box) Top() float64 { return b.Y + b.H }

// SessionConfig converts the tuning into the simulation's configuration.
func (t Tuning) SessionConfig() session.Config {
	enemies := make([]core.Vec2, 0, len(t.Level.Enemies))
	for _, p := range t.Level.Enemies {
		enemies = append(enemies, p.Vec())
	}
	return session.Config{
		Player: player.Config{
			MaxHealth:       t.Player.MaxHealth,
			MaxSpeed:        t.Player.MaxSpeed,
			JumpImpulse:     t.Player.JumpImpulse,
			ThrowDelay:      t.Player.ThrowDelay,
			HitDelay:        t.Player.HitDelay,
			ProjectileSpeed: t.Projectile.Speed,
			FallThreshold:   t.Player.FallThreshold,
			GameOverDelay:   t.Player.GameOverDelay,
			VictoryTitle:    t.Player.VictoryTitle,
			VictoryPrompt:   t.Player.VictoryPrompt,
			Combat:          combat.Config{Damage: 1, Knockback: t.Player.Knockback},
		},
		Enemy: enemy.Config{
			Speed:         t.Enemy.Speed,
			FastSpeed:     t.Enemy.FastSpeed,
			FastAbove:     t.Enemy.FastAbove,
			Debounce:      t.Enemy.Debounce,
			FallThreshold: t.Enemy.FallThreshold,
		},
		ProjectileLifetime: t.Projectile.Lifetime,
		MarchCount:         t.March.Count,
		MarchInterval:      t.March.Interval,
		MarchSpawn:         t.March.Spawn.Vec(),
		PlayerSpawn:        t.Level.PlayerSpawn.Vec(),
		Enemies:            enemies,
	}
}
