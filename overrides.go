package winlog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides holds the fields set by one configuration layer (a profile or the command line).
// A nil field leaves the value of the previous layer untouched.
type Overrides struct {
	RepeatCount *int      `yaml:"count"`
	Source      *string   `yaml:"source"`
	Severity    *Severity `yaml:"type"`
	Category    *uint16   `yaml:"category"`
	EventID     *uint16   `yaml:"id"`
	Qualifier   *uint16   `yaml:"qualifier"`
	UserID      *string   `yaml:"user"`
	Description []string  `yaml:"description"`
	Security    *bool     `yaml:"security"`
	Server      *string   `yaml:"server"`
	LogLevel    *string   `yaml:"log_level"`
	Verify      *bool     `yaml:"verify"`
}

func (o Overrides) apply(opts *Options) {
	r := &opts.Request
	if o.RepeatCount != nil {
		r.RepeatCount = *o.RepeatCount
	}
	if o.Source != nil {
		r.Source = *o.Source
	}
	if o.Severity != nil {
		r.Severity = *o.Severity
	}
	if o.Category != nil {
		r.Category = *o.Category
	}
	if o.EventID != nil {
		r.EventID = *o.EventID
	}
	if o.Qualifier != nil {
		r.Qualifier = *o.Qualifier
	}
	if o.UserID != nil {
		r.UserID = *o.UserID
	}
	// A non-nil but empty description (a bare -d) clears the previous layer's fields.
	if o.Description != nil {
		r.Description = append([]string(nil), o.Description...)
	}
	if o.Security != nil {
		r.Security = *o.Security
	}
	if o.Server != nil {
		r.Server = *o.Server
	}
	if o.LogLevel != nil {
		opts.LogLevel = *o.LogLevel
	}
	if o.Verify != nil {
		opts.Verify = *o.Verify
	}
}

// UnmarshalYAML accepts the same event type names as the -t flag.
func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	sev, err := ParseSeverity(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = sev
	return nil
}

// LoadProfile reads a YAML profile. Unknown keys are rejected.
func LoadProfile(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, fmt.Errorf("failed to read profile: %w", err)
	}
	return parseProfile(data)
}

func parseProfile(data []byte) (Overrides, error) {
	var o Overrides
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil {
		// An empty document is an empty profile.
		if errors.Is(err, io.EOF) {
			return Overrides{}, nil
		}
		return Overrides{}, fmt.Errorf("failed to parse profile: %w", err)
	}
	return o, nil
}
