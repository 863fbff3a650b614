package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration, applies mode and validates the result.
// Search order: customPath -> ~/.flaptrivia/configs/game.yaml ->
// ./configs/game.yaml -> embedded default -> hardcoded default.
// Fields absent from the chosen file keep their default values.
func Load(customPath string, mode Mode) (GameConfig, error) {
	cfg := DefaultGameConfig()

	data, source, err := readLayered("game.yaml", customPath, defaultGameYAML)
	if err != nil {
		return cfg, err
	}
	if data != nil {
		parsed := DefaultGameConfig()
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			if customPath != "" {
				return cfg, fmt.Errorf("failed to parse config %s: %w", source, err)
			}
			// A broken embedded or discovered file falls back to hardcoded values.
			parsed = DefaultGameConfig()
		}
		cfg = parsed
	}

	if err := ApplyMode(&cfg, mode); err != nil {
		return cfg, err
	}
	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", source, err)
	}
	return cfg, nil
}

// LoadQuestionData returns the raw question bank YAML using the same search
// order as Load with questions.yaml as the file name.
func LoadQuestionData(customPath string) ([]byte, string, error) {
	return readLayered("questions.yaml", customPath, defaultQuestionsYAML)
}

// readLayered returns the first readable candidate for filename. A custom
// path that cannot be read is an error; other locations are optional.
func readLayered(filename, customPath string, embedded []byte) ([]byte, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, customPath, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return data, customPath, nil
	}

	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			return data, userCfgPath, nil
		}
	}

	local := filepath.Join("configs", filename)
	if data, err := os.ReadFile(local); err == nil {
		return data, local, nil
	}

	return embedded, "embedded:" + filename, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flaptrivia", "configs", filename)
}
