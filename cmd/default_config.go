package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is a singleton validator instance
var validate = validator.New()

// Preset is one named parameter set in defaults.yaml.
type Preset struct {
	Description     string  `yaml:"description"`
	Width           int     `yaml:"width" validate:"gt=0"`
	Height          int     `yaml:"height" validate:"gt=0"`
	Beta            float64 `yaml:"beta" validate:"gte=0"`
	Gamma           float64 `yaml:"gamma" validate:"gte=0"`
	Dt              float64 `yaml:"dt" validate:"gt=0"`
	InitialInfected float64 `yaml:"initial_infected" validate:"gte=0,lte=1"`
	SeedCenter      bool    `yaml:"seed_center"`
	TileRows        int     `yaml:"tile_rows" validate:"gte=0"`
}

// Config represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Version string            `yaml:"version"`
	Presets map[string]Preset `yaml:"presets" validate:"required,dive"`
}

// loadDefaultsConfig parses and validates defaults.yaml.
// Uses strict field checking: typos must cause errors.
func loadDefaultsConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading defaults file %s: %w", path, err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing defaults YAML: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, formatValidationError(err)
	}
	return cfg, nil
}

// lookupPreset returns the named preset or an error listing what exists.
func (c Config) lookupPreset(name string) (Preset, error) {
	if p, ok := c.Presets[name]; ok {
		return p, nil
	}
	return Preset{}, fmt.Errorf("unknown preset %q; available: %s", name, strings.Join(c.presetNames(), ", "))
}

func (c Config) presetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// formatValidationError converts validator errors to one readable message.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s%s, got %v", fe.Namespace(), fe.Tag(), paramSuffix(fe.Param()), fe.Value()))
	}
	return fmt.Errorf("invalid defaults: %s", strings.Join(msgs, "; "))
}

func paramSuffix(param string) string {
	if param == "" {
		return ""
	}
	return "=" + param
}

// applyPreset copies preset values into the run flags the user did not set.
func applyPreset(p Preset, changed func(name string) bool) {
	if !changed("width") {
		width = p.Width
	}
	if !changed("height") {
		height = p.Height
	}
	if !changed("beta") {
		beta = p.Beta
	}
	if !changed("gamma") {
		gamma = p.Gamma
	}
	if !changed("dt") {
		dt = p.Dt
	}
	if !changed("initial-infected") {
		initialInfected = p.InitialInfected
	}
	if !changed("seed-center") {
		seedCenter = p.SeedCenter
	}
	if !changed("tile-rows") {
		tileRows = p.TileRows
	}
}
