package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		wantJSON bool
	}{
		{"text", "text", false},
		{"json", "json", true},
		{"json upper", "JSON", true},
		{"unknown falls back to text", "console", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := New(Config{Level: "info", Format: tt.format, Output: &buf})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			l.Info("hello", "note_id", "abc")

			var entry map[string]any
			isJSON := json.Unmarshal(buf.Bytes(), &entry) == nil
			if isJSON != tt.wantJSON {
				t.Errorf("output %q, want JSON = %v", buf.String(), tt.wantJSON)
			}
			if !strings.Contains(buf.String(), "abc") {
				t.Errorf("output missing attribute: %q", buf.String())
			}
		})
	}
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"warn", false, false, true},
		{"", false, false, true},
		{"error", false, false, false},
	}

	for _, tt := range tests {
		t.Run("level="+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			l, _ := New(Config{Level: tt.level, Format: "text", Output: &buf})

			l.Debug("debug-line")
			l.Info("info-line")
			l.Warn("warn-line")
			l.Error("error-line")

			out := buf.String()
			if strings.Contains(out, "debug-line") != tt.wantDebug {
				t.Errorf("debug emitted = %v, want %v", !tt.wantDebug, tt.wantDebug)
			}
			if strings.Contains(out, "info-line") != tt.wantInfo {
				t.Errorf("info emitted = %v, want %v", !tt.wantInfo, tt.wantInfo)
			}
			if strings.Contains(out, "warn-line") != tt.wantWarn {
				t.Errorf("warn emitted = %v, want %v", !tt.wantWarn, tt.wantWarn)
			}
			if !strings.Contains(out, "error-line") {
				t.Error("error should always be emitted")
			}
		})
	}
}

func TestSetLevel(t *testing.T) {
	defer SetLevel("warn")

	for _, level := range []string{"debug", "info", "warn", "error"} {
		SetLevel(level)
		if got := GetLevel(); got != level {
			t.Errorf("GetLevel() = %q, want %q", got, level)
		}
	}

	SetLevel("bogus")
	if got := GetLevel(); got != "warn" {
		t.Errorf("GetLevel() after unknown level = %q, want warn", got)
	}
}

func TestValidLevel(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "warning", "error"} {
		if !ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = false", level)
		}
	}
	if ValidLevel("trace") {
		t.Error("ValidLevel(trace) = true")
	}
}

func TestLogger_WithAndContext(t *testing.T) {
	var buf bytes.Buffer
	l, _ := New(Config{Level: "debug", Format: "json", Output: &buf})

	l.With("command", "move-note").WithContext(context.Background()).Debug("start")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry["command"] != "move-note" || entry["msg"] != "start" {
		t.Errorf("entry = %v", entry)
	}
}

func TestDefault(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	var buf bytes.Buffer
	l, _ := New(Config{Level: "debug", Format: "text", Output: &buf})
	SetDefault(l)

	Debug("via-default")
	Warn("warn-default")
	Error("error-default")
	for _, want := range []string{"via-default", "warn-default", "error-default"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
}
