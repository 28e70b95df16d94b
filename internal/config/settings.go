package config

import (
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings are the defaults a -config file may provide.
type Settings struct {
	CaseInsensitive bool   `yaml:"case_insensitive"`
	Output          string `yaml:"output"`
	LogLevel        string `yaml:"log_level"`
	LogFormat       string `yaml:"log_format"`
	LogFile         string `yaml:"log_file"`
}

func defaultSettings() Settings {
	return Settings{
		Output:    OutputPlain,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// LoadSettings reads a YAML settings file. Keys left out keep their
// defaults; unknown keys are rejected. An empty file is valid.
func LoadSettings(path string) (Settings, error) {
	s := defaultSettings()

	f, err := os.Open(path)
	if err != nil {
		return s, &UsageError{Message: "cannot read settings", Err: err}
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return defaultSettings(), &UsageError{Message: "malformed settings " + path, Err: err}
	}
	return s, nil
}
