package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/picogrid/mdp-sim/pkg/simulation"
)

// DirName is the per-user configuration directory under $HOME
const DirName = ".mdp-sim"

const presetsFile = "presets.yaml"

// Preset is a named set of derive parameters
type Preset struct {
	Name         string  `yaml:"name"`
	SimTime      float64 `yaml:"sim_time,omitempty"`
	Frames       int     `yaml:"nb_frames,omitempty"`
	LogFrequency int     `yaml:"log_write_freq,omitempty"`
	EnergyRatio  float64 `yaml:"energy_write_nb_frames_ratio,omitempty"`
}

// Options converts the preset into derive options
func (p Preset) Options() simulation.DeriveOptions {
	return simulation.DeriveOptions{
		SimTime:      p.SimTime,
		Frames:       p.Frames,
		LogFrequency: p.LogFrequency,
		EnergyRatio:  p.EnergyRatio,
	}
}

// Config holds the saved presets
type Config struct {
	Presets []Preset `yaml:"presets"`
}

// Find returns the preset with the given name
func (c *Config) Find(name string) (*Preset, bool) {
	for i := range c.Presets {
		if c.Presets[i].Name == name {
			return &c.Presets[i], true
		}
	}
	return nil, false
}

// Remove deletes the named preset and reports whether it existed
func (c *Config) Remove(name string) bool {
	kept := make([]Preset, 0, len(c.Presets))
	for _, p := range c.Presets {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	removed := len(kept) != len(c.Presets)
	c.Presets = kept
	return removed
}

// Dir returns the user configuration directory
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, DirName), nil
}

// LoadPresets loads presets from the default location
func LoadPresets() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadPresetsFromFile(filepath.Join(dir, presetsFile))
}

// LoadPresetsFromFile loads presets from a specific file
func LoadPresetsFromFile(path string) (*Config, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return getDefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse presets file: %w", err)
	}

	return &config, nil
}

// SavePresets saves presets to the default location
func SavePresets(config *Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return SavePresetsToFile(config, filepath.Join(dir, presetsFile))
}

// SavePresetsToFile saves presets to path, creating its directory
func SavePresetsToFile(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write presets file: %w", err)
	}

	return nil
}

// getDefaultConfig returns the built-in presets
func getDefaultConfig() *Config {
	return &Config{
		Presets: []Preset{
			{
				Name:         "default",
				Frames:       simulation.DefaultFrames,
				LogFrequency: simulation.DefaultLogFrequency,
				EnergyRatio:  simulation.DefaultEnergyRatio,
			},
			{
				Name:         "short",
				SimTime:      10,
				Frames:       500,
				LogFrequency: 1000,
				EnergyRatio:  0.1,
			},
			{
				Name:         "long",
				SimTime:      1000,
				Frames:       5000,
				LogFrequency: 10000,
				EnergyRatio:  0.1,
			},
		},
	}
}
