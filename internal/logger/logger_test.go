package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
)

func TestJSONOutputOutsideLocal(t *testing.T) {
	var buf bytes.Buffer
	log := NewWith("production", "info", &buf).Component("test")
	log.WithError(errors.New("boom")).Warn("something failed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["component"] != "test" {
		t.Errorf("component: got %v, want test", entry["component"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error: got %v, want boom", entry["error"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWith("production", "warn", &buf)
	log.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info line written at warn level: %q", buf.String())
	}
}

func TestRequestID(t *testing.T) {
	r := httptest.NewRequest("GET", "/healthz", nil)
	if id := RequestID(r); len(id) != 36 {
		t.Errorf("generated id: got %q, want uuid", id)
	}
	r.Header.Set(RequestIDHeader, "abc-123")
	if id := RequestID(r); id != "abc-123" {
		t.Errorf("supplied id: got %q, want abc-123", id)
	}
}
