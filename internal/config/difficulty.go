package config

import (
	"fmt"
	"sort"
)

// Mode represents a named difficulty tier.
type Mode string

const (
	// ModeLenient restores the last save point after a failure.
	ModeLenient Mode = "lenient"
	// ModeHard never takes save points.
	ModeHard Mode = "hard"
)

// DefaultMode is used when no mode is selected.
const DefaultMode = ModeLenient

// ParseMode maps user input onto a known tier. "simple" and "easy" are
// accepted as aliases of lenient.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "lenient", "simple", "easy":
		return ModeLenient, nil
	case "hard":
		return ModeHard, nil
	default:
		return "", fmt.Errorf("config: unknown mode %q", s)
	}
}

// ApplyMode resolves the tier settings for mode into cfg.Active.
// Tiers missing from the YAML fall back to the built-in presets.
func ApplyMode(cfg *GameConfig, mode Mode) error {
	tier, ok := cfg.Modes[mode]
	if !ok {
		tier, ok = defaultModes()[mode]
		if !ok {
			return fmt.Errorf("config: unknown mode %q", mode)
		}
	}
	tier.Name = mode
	cfg.Active = tier
	return nil
}

// ModeNames returns the configured tier names in sorted order.
func (c GameConfig) ModeNames() []Mode {
	seen := make(map[Mode]bool)
	for m := range defaultModes() {
		seen[m] = true
	}
	for m := range c.Modes {
		seen[m] = true
	}
	names := make([]Mode, 0, len(seen))
	for m := range seen {
		names = append(names, m)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func defaultModes() map[Mode]ModeConfig {
	return map[Mode]ModeConfig{
		ModeLenient: {PipeSpeed: 2.5, SavePoints: true},
		ModeHard:    {PipeSpeed: 3, SavePoints: false},
	}
}
