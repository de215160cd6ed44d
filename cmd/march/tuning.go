package main

import "github.com/vovakirdan/penguin-march/internal/config"

// loadTuning loads the tuning from --config and applies the difficulty
// preset. The --difficulty flag wins over the file's own difficulty.
func loadTuning() (config.Tuning, error) {
	t, err := config.Load(flagConfig)
	if err != nil {
		return t, err
	}
	return withDifficulty(t, flagDifficulty)
}

// withDifficulty applies override, or the preset named in t when override
// is empty.
func withDifficulty(t config.Tuning, override string) (config.Tuning, error) {
	name := string(t.Difficulty)
	if override != "" {
		name = override
	}
	preset, err := config.ParseDifficulty(name)
	if err != nil {
		return t, err
	}
	config.ApplyPreset(&t, preset)
	for _, note := range config.Sanitize(&t) {
		logger.Warn("tuning adjusted", "change", note)
	}
	return t, nil
}
