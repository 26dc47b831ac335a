package shortcuts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ConfigVersion is written into exported files
const ConfigVersion = "1"

// Config is the user's shortcut file
type Config struct {
	Version   string              `yaml:"version" json:"version"`
	Shortcuts map[string]Override `yaml:"shortcuts,omitempty" json:"shortcuts,omitempty"`
	Custom    []CustomShortcut    `yaml:"custom,omitempty" json:"custom,omitempty"`
}

// Override changes fields of an already registered shortcut.
// Empty strings and a nil Enabled leave the field as it is.
type Override struct {
	Keys        string `yaml:"keys,omitempty" json:"keys,omitempty"`
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Category    string `yaml:"category,omitempty" json:"category,omitempty"`
	Enabled     *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
}

// CustomShortcut is a user-defined shortcut registered on top of the defaults
type CustomShortcut struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Keys        string `yaml:"keys" json:"keys"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Category    string `yaml:"category,omitempty" json:"category,omitempty"`
	Enabled     *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
}

// LoadConfig reads a shortcut file. The format follows the extension:
// .json and .jsonc are JSON (comments allowed), anything else is YAML.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data, filepath.Ext(path))
}

// ParseConfig decodes data according to ext (".yaml", ".yml", ".json", ".jsonc")
func ParseConfig(data []byte, ext string) (*Config, error) {
	var config Config

	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
			return nil, fmt.Errorf("invalid shortcut file format: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("invalid shortcut file format: %w", err)
		}
	}

	return &config, nil
}

// SaveConfig writes config to path, as JSON for .json/.jsonc and YAML otherwise
func SaveConfig(config *Config, path string) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data, err = json.MarshalIndent(config, "", "  ")
	default:
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to encode shortcut file: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyConfig applies config to registry.
// Overrides go through Registry.Update, so unknown ids are reported and
// skipped. Custom shortcuts go through Registry.Register, so ids that are
// already taken are reported and skipped. Apply after Init, otherwise the
// registry is no longer empty and the defaults are not loaded.
func ApplyConfig(registry *Registry, config *Config) error {
	ids := make([]string, 0, len(config.Shortcuts))
	for id := range config.Shortcuts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		patch, err := config.Shortcuts[id].patch()
		if err != nil {
			return fmt.Errorf("shortcut %q: %w", id, err)
		}
		registry.Update(id, patch)
	}

	for _, c := range config.Custom {
		s, err := c.shortcut()
		if err != nil {
			return fmt.Errorf("custom shortcut %q: %w", c.ID, err)
		}
		registry.Register(s)
	}

	return nil
}

func (o Override) patch() (Patch, error) {
	var p Patch

	if o.Keys != "" {
		keys, err := ParseCombo(o.Keys)
		if err != nil {
			return Patch{}, err
		}
		p.Keys = keys
	}
	if o.Name != "" {
		name := o.Name
		p.Name = &name
	}
	if o.Description != "" {
		desc := o.Description
		p.Description = &desc
	}
	if o.Category != "" {
		category := Category(o.Category)
		if !category.Valid() {
			return Patch{}, fmt.Errorf("unknown category %q", o.Category)
		}
		p.Category = &category
	}
	if o.Enabled != nil {
		enabled := *o.Enabled
		p.Enabled = &enabled
	}

	return p, nil
}

func (c CustomShortcut) shortcut() (Shortcut, error) {
	if c.ID == "" {
		return Shortcut{}, fmt.Errorf("missing id")
	}

	keys, err := ParseCombo(c.Keys)
	if err != nil {
		return Shortcut{}, err
	}

	category := CategoryCustom
	if c.Category != "" {
		category = Category(c.Category)
		if !category.Valid() {
			return Shortcut{}, fmt.Errorf("unknown category %q", c.Category)
		}
	}

	name := c.Name
	if name == "" {
		name = c.ID
	}

	enabled := true
	if c.Enabled != nil {
		enabled = *c.Enabled
	}

	return Shortcut{
		ID:          c.ID,
		Name:        name,
		Keys:        keys,
		Description: c.Description,
		Enabled:     enabled,
		Category:    category,
	}, nil
}

// LoadOrDefault applies the file at path to registry if it exists.
// A missing file is not an error.
func LoadOrDefault(registry *Registry, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	config, err := LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
	}

	if err := ApplyConfig(registry, config); err != nil {
		return fmt.Errorf("failed to apply %s: %w", filepath.Base(path), err)
	}

	return nil
}

// ExportConfig describes every shortcut in registry as an override, so the
// file can be edited and loaded back
func ExportConfig(registry *Registry) *Config {
	config := &Config{
		Version:   ConfigVersion,
		Shortcuts: make(map[string]Override),
	}

	for _, s := range registry.GetAll() {
		enabled := s.Enabled
		config.Shortcuts[s.ID] = Override{
			Keys:        JoinCombo(s.Keys),
			Name:        s.Name,
			Description: s.Description,
			Category:    string(s.Category),
			Enabled:     &enabled,
		}
	}

	return config
}
