// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// restoreGlobal puts the previous global logger back when the test ends.
// Tests that touch the global logger do not run in parallel.
func restoreGlobal(t *testing.T) {
	t.Helper()
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" || cfg.Format != "json" || cfg.Caller {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" info ", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitJSON(t *testing.T) {
	restoreGlobal(t)

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})

	Debug().Str("institution", "inst-1").Msg("scored")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if line["level"] != "debug" {
		t.Errorf("level = %v", line["level"])
	}
	if line["message"] != "scored" {
		t.Errorf("message = %v", line["message"])
	}
	if line["institution"] != "inst-1" {
		t.Errorf("institution = %v", line["institution"])
	}
	if _, ok := line["time"]; !ok {
		t.Error("missing time field")
	}
}

func TestInitRespectsLevel(t *testing.T) {
	restoreGlobal(t)

	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})

	Info().Msg("hidden")
	Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info event written at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn event missing: %s", out)
	}
}

func TestInitConsole(t *testing.T) {
	restoreGlobal(t)

	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "console", Output: &buf})
	Info().Msg("catalog loaded")

	out := buf.String()
	if !strings.Contains(out, "catalog loaded") {
		t.Errorf("console output = %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("console format produced JSON: %q", out)
	}
}

func TestSetLevelString(t *testing.T) {
	restoreGlobal(t)

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	SetLevelString("error")
	Warn().Msg("dropped")
	if buf.Len() != 0 {
		t.Errorf("warn written after SetLevelString(error): %s", buf.String())
	}
	if IsLevelEnabled(zerolog.WarnLevel) {
		t.Error("warn reported as enabled")
	}
	if !IsLevelEnabled(zerolog.ErrorLevel) {
		t.Error("error reported as disabled")
	}
}

func TestErrHelper(t *testing.T) {
	restoreGlobal(t)

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	Err(errBoom).Msg("reload")
	if !strings.Contains(buf.String(), `"level":"error"`) || !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Errorf("Err(non-nil) output = %s", buf.String())
	}

	buf.Reset()
	Err(nil).Msg("reload")
	if !strings.Contains(buf.String(), `"level":"info"`) {
		t.Errorf("Err(nil) output = %s", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	restoreGlobal(t)

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	l := WithComponent("fetcher")
	l.Info().Msg("started")
	if !strings.Contains(buf.String(), `"component":"fetcher"`) {
		t.Errorf("output = %s", buf.String())
	}
}

type testError string

func (e testError) Error() string { return string(e) }

const errBoom = testError("boom")
