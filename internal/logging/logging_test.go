package logging

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testStringer string

func (s testStringer) String() string { return string(s) }

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "magicbench.log")

	if err := Init(logPath, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogEvent("hello %s", "world")
	LogStage("load", "mimetype", "builtin", nil)
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, "[LOAD] backend=mimetype target=builtin") {
		t.Fatalf("expected LogStage content, got: %s", content)
	}
}

func TestBuildStageMessageDefaults(t *testing.T) {
	msg := buildStageMessage(" open ", " ", "", map[string]any{"flags": "mime"})
	if !strings.HasPrefix(msg, "[OPEN]") {
		t.Fatalf("expected uppercased stage, got: %s", msg)
	}
	if !strings.Contains(msg, "backend=unknown") {
		t.Fatalf("expected default backend, got: %s", msg)
	}
	if strings.Contains(msg, "target=") {
		t.Fatalf("expected empty target to be omitted, got: %s", msg)
	}
	if !strings.Contains(msg, "detail={\"flags\":\"mime\"}") {
		t.Fatalf("expected payload json, got: %s", msg)
	}
}

func TestFormatPayloadVariants(t *testing.T) {
	if got := formatPayload(nil); got != "null" {
		t.Fatalf("nil payload: %s", got)
	}
	if got := formatPayload(" "); got != `""` {
		t.Fatalf("empty string payload: %s", got)
	}
	if got := formatPayload([]byte("hi")); got != "hi" {
		t.Fatalf("byte payload: %s", got)
	}
	if got := formatPayload(testStringer("ok")); got != "ok" {
		t.Fatalf("stringer payload: %s", got)
	}
	if got := formatPayload(errors.New("bad db")); got != "bad db" {
		t.Fatalf("error payload: %s", got)
	}
}

func TestInitDiscard(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	if err := Init("", false); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	LogEvent("discard")
	if buf.Len() != 0 {
		t.Fatalf("expected log output discarded, got: %s", buf.String())
	}
}
