package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewProductionJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf, "debug", true)
	if log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %v", log.GetLevel())
	}
	log.WithField("size", 800).Info("[QR] rendered")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "[QR] rendered" || entry["size"] != float64(800) {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf, "loud", false)
	if log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level = %v", log.GetLevel())
	}
	if !strings.Contains(buf.String(), "unknown log level") {
		t.Fatalf("missing warning: %q", buf.String())
	}
}
