package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the tuning file name looked up in the config directories.
const FileName = "march.yaml"

// Load loads the tuning.
// Search order: customPath -> ~/.march/configs/march.yaml -> ./configs/march.yaml -> embedded default
// A broken user or local file is skipped; a broken custom path is an error.
// The result is sanitised.
func Load(customPath string) (Tuning, error) {
	if customPath != "" {
		return LoadFile(customPath)
	}

	for _, path := range []string{UserConfigPath(), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		if t, err := LoadFile(path); err == nil {
			return t, nil
		}
	}

	t, err := Parse(defaultMarchYAML)
	if err != nil {
		return DefaultTuning(), nil // Fallback to hardcoded if embed fails
	}
	return t, nil
}

// LoadFile reads and parses one tuning file.
func LoadFile(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return t, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes tuning YAML on top of the defaults, so a file only needs
// the keys it changes. Unknown keys are rejected.
func Parse(data []byte) (Tuning, error) {
	t, _, err := Check(data)
	return t, err
}

// Check parses like Parse and also returns the notes from Sanitize.
func Check(data []byte) (Tuning, []string, error) {
	t := DefaultTuning()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return t, nil, err
	}
	return t, Sanitize(&t), nil
}

// Marshal renders the tuning as YAML.
func Marshal(t Tuning) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return nil, fmt.Errorf("config: failed to encode tuning: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("config: failed to encode tuning: %w", err)
	}
	return buf.Bytes(), nil
}

// UserConfigPath returns the path to the user config file, or empty if home is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".march", "configs", FileName)
}
