package config

import "fmt"

// Sanitize replaces values the simulation cannot run with by their
// defaults and returns a note per replaced field.
func Sanitize(t *Tuning) []string {
	d := DefaultTuning()
	var fixed []string

	positive := func(name string, v *float64, def float64) {
		if !(*v > 0) {
			fixed = append(fixed, fmt.Sprintf("%s=%v replaced by %v", name, *v, def))
			*v = def
		}
	}
	positiveInt := func(name string, v *int, def int) {
		if *v <= 0 {
			fixed = append(fixed, fmt.Sprintf("%s=%d replaced by %d", name, *v, def))
			*v = def
		}
	}

	positiveInt("player.max_health", &t.Player.MaxHealth, d.Player.MaxHealth)
	positive("player.max_speed", &t.Player.MaxSpeed, d.Player.MaxSpeed)
	positive("player.jump_impulse", &t.Player.JumpImpulse, d.Player.JumpImpulse)
	positive("player.throw_delay", &t.Player.ThrowDelay, d.Player.ThrowDelay)
	positive("player.hit_delay", &t.Player.HitDelay, d.Player.HitDelay)
	positive("player.game_over_delay", &t.Player.GameOverDelay, d.Player.GameOverDelay)
	if t.Player.Knockback < 0 {
		fixed = append(fixed, fmt.Sprintf("player.knockback=%v replaced by %v", t.Player.Knockback, -t.Player.Knockback))
		t.Player.Knockback = -t.Player.Knockback
	}
	positive("projectile.speed", &t.Projectile.Speed, d.Projectile.Speed)
	positive("projectile.lifetime", &t.Projectile.Lifetime, d.Projectile.Lifetime)
	positive("enemy.speed", &t.Enemy.Speed, d.Enemy.Speed)
	positive("enemy.fast_speed", &t.Enemy.FastSpeed, d.Enemy.FastSpeed)
	positive("enemy.debounce", &t.Enemy.Debounce, d.Enemy.Debounce)
	positiveInt("march.count", &t.March.Count, d.March.Count)
	positive("march.interval", &t.March.Interval, d.March.Interval)
	positive("level.gravity", &t.Level.Gravity, d.Level.Gravity)

	if t.Level.Bounds.W <= 0 || t.Level.Bounds.H <= 0 {
		fixed = append(fixed, "level.bounds replaced by the default bounds")
		t.Level.Bounds = d.Level.Bounds
	}

	if _, err := ParseDifficulty(string(t.Difficulty)); err != nil {
		fixed = append(fixed, fmt.Sprintf("difficulty=%q replaced by %q", t.Difficulty, DifficultyNormal))
		t.Difficulty = DifficultyNormal
	} else if t.Difficulty == "" {
		t.Difficulty = DifficultyNormal
	}
	return fixed
}
