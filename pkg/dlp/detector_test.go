package dlp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRedactMasksIdentifiers(t *testing.T) {
	detector, err := NewDetector(DefaultRules())
	if err != nil {
		t.Fatalf("failed to create detector: %v", err)
	}

	text := "I am Ravi, call me on +91 98765 43210 or ravi@example.com. Aadhaar 1234 5678 9012, born 12/03/1990. Fever since 2 days."
	masked, count := detector.Redact(text)

	for _, leaked := range []string{"98765", "ravi@example.com", "1234 5678 9012", "12/03/1990"} {
		if strings.Contains(masked, leaked) {
			t.Fatalf("expected %q to be masked in %q", leaked, masked)
		}
	}
	if count != 4 {
		t.Fatalf("expected 4 replacements, got %d (%q)", count, masked)
	}
	if !strings.Contains(masked, "Fever since 2 days.") {
		t.Fatalf("clinical text should survive redaction: %q", masked)
	}
}

func TestDetectOrdersFindings(t *testing.T) {
	detector, err := NewDetector(DefaultRules())
	if err != nil {
		t.Fatalf("failed to create detector: %v", err)
	}

	findings := detector.Detect("mail a@b.io then 555-123-4567")
	if len(findings) != 2 {
		t.Fatalf("expected two findings, got %+v", findings)
	}
	if findings[0].Type != "email" || findings[1].Type != "phone" {
		t.Fatalf("unexpected order %+v", findings)
	}
}

func TestNilDetectorIsNoop(t *testing.T) {
	var detector *Detector
	if got, n := detector.Redact("call 555-123-4567"); got != "call 555-123-4567" || n != 0 {
		t.Fatalf("nil detector changed text: %q", got)
	}
}

func TestLoadRulesDisabledRuleIsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dlp.yaml")
	content := []byte(`rules:
  - name: Email
    type: email
    pattern: '\S+@\S+'
    mask: "[EMAIL]"
    enabled: false
  - name: MRN
    type: mrn
    pattern: 'MRN\d+'
    mask: "[MRN]"
    enabled: true
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	cfg, err := LoadRules(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	detector, err := NewDetector(cfg)
	if err != nil {
		t.Fatalf("failed to create detector: %v", err)
	}
	masked, _ := detector.Redact("MRN123 a@b.io")
	if masked != "[MRN] a@b.io" {
		t.Fatalf("unexpected redaction %q", masked)
	}
}

func TestLoadRulesRejectsInvalidFiles(t *testing.T) {
	cases := map[string]string{
		"no mask":    "rules:\n  - name: MRN\n    pattern: 'MRN\\d+'\n    enabled: true\n",
		"duplicate":  "rules:\n  - name: MRN\n    pattern: x\n    mask: a\n    enabled: true\n  - name: mrn\n    pattern: y\n    mask: b\n",
		"none on":    "rules:\n  - name: MRN\n    pattern: x\n    mask: a\n",
		"empty file": "",
	}
	for name, content := range cases {
		path := filepath.Join(t.TempDir(), "dlp.yaml")
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write rules: %v", err)
		}
		if _, err := LoadRules(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadDetectorFallsBackToDefaults(t *testing.T) {
	detector, err := LoadDetector(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if masked, n := detector.Redact("write to a@b.io"); n != 1 || masked != "write to [EMAIL]" {
		t.Fatalf("expected default email rule, got %q (%d)", masked, n)
	}
}
