package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetupTagsServiceAndComponent(t *testing.T) {
	var buf bytes.Buffer
	setup(&buf, "consult-service", "json", "debug")
	defer setup(os.Stdout, "", "", "")

	Component("diagnosis").WithField("disease", "Flu").Debug("scored")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["service"] != "consult-service" || entry["component"] != "diagnosis" || entry["disease"] != "Flu" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestSetupInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	setup(&buf, "", "text", "chatty")
	defer setup(os.Stdout, "", "", "")

	if Log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", Log.GetLevel())
	}
	Log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug entry should be filtered, got %q", buf.String())
	}
}
