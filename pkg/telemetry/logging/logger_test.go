package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "debug", Format: FormatJSON, Writer: &buf})

	logger.Debug("schema reloaded", "path", "mci.json")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "schema reloaded" || entry["path"] != "mci.json" {
		t.Errorf("unexpected log entry: %v", entry)
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "warn", Format: FormatText, Writer: &buf})

	logger.Info("suppressed")
	logger.Warn("surfaced")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Error("info line should have been filtered at warn level")
	}
	if !strings.Contains(out, "surfaced") {
		t.Error("warn line missing from output")
	}
}

func TestParseLevel_UnknownFallsBackToInfo(t *testing.T) {
	if got := parseLevel("bogus"); got != slog.LevelInfo {
		t.Errorf("parseLevel(bogus) = %v, want info", got)
	}
}
