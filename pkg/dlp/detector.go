package dlp

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/mediconsult/platform/pkg/common/logger"
)

type compiledRule struct {
	rule Rule
	re   *regexp.Regexp
}

// Finding locates one identifier in the original text.
type Finding struct {
	Type  string `json:"type"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Detector finds and masks identifiers in patient narratives.
type Detector struct {
	rules []compiledRule
}

func NewDetector(cfg RulesConfig) (*Detector, error) {
	var compiled []compiledRule
	for _, rule := range cfg.Rules {
		if !rule.Enabled {
			continue
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("redaction rule %s: %w", rule.Name, err)
		}
		compiled = append(compiled, compiledRule{rule: rule, re: re})
	}
	return &Detector{rules: compiled}, nil
}

// LoadDetector builds a detector from a rule file, falling back to the
// built-in rules when the file cannot be used.
func LoadDetector(path string) (*Detector, error) {
	cfg, err := LoadRules(path)
	if err != nil {
		logger.Component("dlp").WithError(err).Warn("Using built-in redaction rules")
		cfg = DefaultRules()
	}
	return NewDetector(cfg)
}

// Detect reports findings ordered by position.
func (d *Detector) Detect(text string) []Finding {
	if d == nil {
		return nil
	}
	var findings []Finding
	for _, rule := range d.rules {
		for _, match := range rule.re.FindAllStringIndex(text, -1) {
			findings = append(findings, Finding{Type: rule.rule.Type, Start: match[0], End: match[1]})
		}
	}
	sort.Slice(findings, func(i, j int) bool { return findings[i].Start < findings[j].Start })
	return findings
}

// Redact masks every enabled rule in order and returns the masked text and
// how many identifiers were replaced.
func (d *Detector) Redact(text string) (string, int) {
	if d == nil {
		return text, 0
	}
	count := 0
	for _, rule := range d.rules {
		matches := rule.re.FindAllStringIndex(text, -1)
		if len(matches) == 0 {
			continue
		}
		count += len(matches)
		text = rule.re.ReplaceAllLiteralString(text, rule.rule.Mask)
	}
	return text, count
}
