package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestComponentTagsEveryEntry(t *testing.T) {
	var buf bytes.Buffer
	log := Component(New(&buf, "debug", "json"), "report_source")
	log.Warn().Msg("model report failed, using fallback")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["component"] != "report_source" {
		t.Errorf("component = %v, want report_source", entry["component"])
	}
	if entry["level"] != "warn" {
		t.Errorf("level = %v, want warn", entry["level"])
	}
}
