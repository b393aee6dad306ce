package dlp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule masks one kind of identifier in free text.
type Rule struct {
	Name    string `yaml:"name" json:"name"`
	Type    string `yaml:"type" json:"type"`
	Pattern string `yaml:"pattern" json:"pattern"`
	Mask    string `yaml:"mask" json:"mask"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
}

type RulesConfig struct {
	Rules []Rule `yaml:"rules" json:"rules"`
}

// LoadRules reads a YAML rule file. An empty path means the built-in rules; an
// unreadable file returns the built-in rules together with the error.
func LoadRules(path string) (RulesConfig, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultRules(), err
	}

	var cfg RulesConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return RulesConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.check(); err != nil {
		return RulesConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c RulesConfig) check() error {
	enabled := 0
	seen := make(map[string]struct{}, len(c.Rules))
	for i, rule := range c.Rules {
		name := strings.ToLower(strings.TrimSpace(rule.Name))
		if name == "" {
			return fmt.Errorf("rule %d has no name", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate rule %q", rule.Name)
		}
		seen[name] = struct{}{}
		if rule.Mask == "" {
			return fmt.Errorf("rule %q has no mask", rule.Name)
		}
		if rule.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("no enabled redaction rules")
	}
	return nil
}

// DefaultRules covers identifiers patients commonly type into a consultation.
// Rules apply in order, so longer digit runs come before phone numbers.
func DefaultRules() RulesConfig {
	return RulesConfig{Rules: []Rule{
		{Name: "Email", Type: "email", Pattern: `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`, Mask: "[EMAIL]", Enabled: true},
		{Name: "Aadhaar", Type: "aadhaar", Pattern: `\b\d{4}[ -]?\d{4}[ -]?\d{4}\b`, Mask: "[ID]", Enabled: true},
		{Name: "PAN", Type: "pan", Pattern: `\b[A-Z]{5}\d{4}[A-Z]\b`, Mask: "[ID]", Enabled: true},
		{Name: "Phone", Type: "phone", Pattern: `(?:\+91[ -]?)?\b[6-9]\d{4}[ -]?\d{5}\b|\b\d{3}-\d{3}-\d{4}\b`, Mask: "[PHONE]", Enabled: true},
		{Name: "DOB", Type: "dob", Pattern: `\b\d{1,2}[/-]\d{1,2}[/-]\d{4}\b`, Mask: "[DATE]", Enabled: true},
	}}
}
