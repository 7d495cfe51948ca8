// Package config loads and saves tracking.Settings to YAML or JSON
// files, grounded on cmd/spectrometer/internal/config's loader/saver
// pair in the teacher module: format is auto-detected from the file
// extension, and Settings is still validated through
// tracking.Settings.Validate after decoding.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/itohio/mosse/pkg/tracking"
)

// Load reads Settings from path, auto-detecting YAML or JSON from the
// file extension (.yaml/.yml or .json).
func Load(path string) (tracking.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tracking.Settings{}, fmt.Errorf("tracking/config: failed to read %s: %w", path, err)
	}
	return LoadBytes(data, detectFormat(path))
}

// LoadBytes decodes Settings from data using the named format
// ("yaml", "yml", or "json"), then validates the result.
func LoadBytes(data []byte, format string) (tracking.Settings, error) {
	var s tracking.Settings
	var err error
	switch strings.ToLower(format) {
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &s)
	case "json":
		err = json.Unmarshal(data, &s)
	default:
		return tracking.Settings{}, fmt.Errorf("tracking/config: unsupported format %q (supported: yaml, json)", format)
	}
	if err != nil {
		return tracking.Settings{}, fmt.Errorf("tracking/config: failed to unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return tracking.Settings{}, err
	}
	return s, nil
}

// Save writes s to path, auto-detecting YAML or JSON from the file
// extension.
func Save(path string, s tracking.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	var data []byte
	var err error
	switch detectFormat(path) {
	case "yaml", "yml":
		data, err = yaml.Marshal(s)
	case "json":
		data, err = json.MarshalIndent(s, "", "  ")
	default:
		return fmt.Errorf("tracking/config: unsupported format for %s (supported: .yaml, .yml, .json)", path)
	}
	if err != nil {
		return fmt.Errorf("tracking/config: failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("tracking/config: failed to write %s: %w", path, err)
	}
	return nil
}

func detectFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	return strings.TrimPrefix(ext, ".")
}
