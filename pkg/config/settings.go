package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// asOfLayout is the date layout of the as_of setting and of the as_of
// request parameter.
const asOfLayout = "2006-01-02"

// Settings is the optional YAML processing-settings file. Unknown keys
// are rejected so typos surface at startup instead of being ignored.
type Settings struct {
	DateFormats []string `yaml:"date_formats"`
	AsOf        string   `yaml:"as_of"`
}

// LoadSettings reads and decodes the YAML settings file at path.
func LoadSettings(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer f.Close()

	var settings Settings
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings file: %w", err)
	}

	return &settings, nil
}

// ParseAsOf parses an analysis date in the as_of layout, truncating to
// midnight UTC.
func ParseAsOf(value string) (time.Time, error) {
	parsed, err := time.Parse(asOfLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid as_of date %q (expected YYYY-MM-DD)", value)
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
}

// apply merges the file settings into the processing configuration.
func (s *Settings) apply(processing *ProcessingConfig) error {
	processing.ExtraDateFormats = append(processing.ExtraDateFormats, s.DateFormats...)

	if s.AsOf != "" {
		asOf, err := ParseAsOf(s.AsOf)
		if err != nil {
			return err
		}
		processing.AsOf = &asOf
	}

	return nil
}
