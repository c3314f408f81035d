package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerWithService(t *testing.T) {
	l := NewLoggerWithService("trendline")
	entry := l.WithField("k", "v")
	if entry == nil {
		t.Fatalf("expected non-nil entry")
	}
}

func TestNewLoggerEmitsJSON(t *testing.T) {
	l := NewLogger()
	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetLevel(logrus.InfoLevel)

	l.WithField("topic", "project_json").Info("hello")

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if record["topic"] != "project_json" {
		t.Fatalf("expected topic field, got %v", record)
	}
	if record["msg"] != "hello" {
		t.Fatalf("expected msg field, got %v", record)
	}
}
