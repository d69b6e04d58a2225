package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads saved settings from path on top of Default(). A missing file is not an error.
// A file that cannot be parsed yields the defaults and a single error; otherwise each rejected
// key is reported as a *KeyError and falls back to its default, leaving the other keys applied.
func Load(path string) (*Config, []error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return c, []error{fmt.Errorf("config: read %s: %w", path, err)}
	}
	m, err := decode(path, data)
	if err != nil {
		return c, []error{fmt.Errorf("config: parse %s: %w", path, err)}
	}
	return c, c.Apply(m)
}

// LoadAll layers every settings source over the defaults: the settings file at path, then the
// dotenv file (which only fills variables not already set), then SPINCUBE_* variables.
func LoadAll(path, dotenv string) (*Config, []error) {
	var errs []error
	if err := LoadDotEnv(dotenv); err != nil {
		errs = append(errs, fmt.Errorf("config: read %s: %w", dotenv, err))
	}
	c, fileErrs := Load(path)
	errs = append(errs, fileErrs...)
	return c, append(errs, c.ApplyEnv(os.LookupEnv)...)
}

// Save writes the settings of c to path as JSON, or YAML when path ends in .yaml/.yml,
// creating the parent directory if needed.
func Save(path string, c *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := encode(path, c.Settings())
	if err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Remove deletes the saved settings file so the next start uses the defaults. Missing files are ignored.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func decode(path string, data []byte) (map[string]any, error) {
	m := make(map[string]any)
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func encode(path string, m map[string]any) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(m)
	}
	return json.MarshalIndent(m, "", "\t")
}

// Marshal encodes the settings of c as "json" or "yaml", the same way Save does.
func Marshal(c *Config, format string) ([]byte, error) {
	switch format {
	case "json":
		return encode("settings.json", c.Settings())
	case "yaml", "yml":
		return encode("settings.yaml", c.Settings())
	}
	return nil, fmt.Errorf("config: unknown format %q", format)
}
