package folio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/folio/layout"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/translate"
)

// Config gathers the tunable settings of the whole pipeline in one
// YAML-loadable structure.
type Config struct {
	// Builder holds the paragraph clustering thresholds
	Builder layout.BuilderConfig `yaml:"builder"`

	// SafeArea is the initial content region
	SafeArea model.SafeArea `yaml:"safe_area"`

	// Translate configures the translation backend
	Translate translate.ClientConfig `yaml:"translate"`

	// DataDir is where the snapshot store keeps its database.
	// Empty means no persistence.
	DataDir string `yaml:"data_dir"`
}

// DefaultConfig returns the default pipeline configuration
func DefaultConfig() Config {
	return Config{
		Builder:   layout.DefaultBuilderConfig(),
		SafeArea:  model.DefaultSafeArea(),
		Translate: translate.DefaultClientConfig(),
	}
}

// LoadConfig reads a YAML configuration file, layering it over the defaults
// so a partial file only overrides what it names.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if err := config.SafeArea.Validate(); err != nil {
		return Config{}, fmt.Errorf("config safe_area: %w", err)
	}
	return config, nil
}
