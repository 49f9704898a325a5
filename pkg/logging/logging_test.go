package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerWritesJSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug")
	l.Warn("write failed", "key", "Clients", "err", errors.New("disk full"))

	line := strings.TrimSpace(buf.String())
	var got map[string]interface{}
	if err := json.Unmarshal([]byte(line), &got); err != nil {
		t.Fatalf("log line is not json: %q: %v", line, err)
	}
	if got["message"] != "write failed" {
		t.Fatalf("unexpected message: %v", got["message"])
	}
	if got["key"] != "Clients" {
		t.Fatalf("unexpected key: %v", got["key"])
	}
	if got["err"] != "disk full" {
		t.Fatalf("unexpected err: %v", got["err"])
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "error")
	l.Info("ignored")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written at info when level is error, got %q", buf.String())
	}
}
