// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateRequestID(t *testing.T) {
	t.Parallel()

	a, b := GenerateRequestID(), GenerateRequestID()
	if a == b {
		t.Fatal("request IDs collide")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("request ID %q is not a UUID: %v", a, err)
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := ContextWithRequestID(context.Background(), "req-42")
	if got := RequestIDFromContext(ctx); got != "req-42" {
		t.Errorf("RequestIDFromContext = %q", got)
	}

	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("empty context returned %q", got)
	}

	same := ContextWithRequestID(ctx, "")
	if got := RequestIDFromContext(same); got != "req-42" {
		t.Errorf("empty id overwrote existing one: %q", got)
	}
}

func TestCtxAddsRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-7")

	Ctx(ctx).Warn().Msg("source down")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-7"`) {
		t.Errorf("missing request_id: %s", out)
	}
	if !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("missing level: %s", out)
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	restoreGlobal(t)

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	l := LoggerFromContext(context.Background())
	l.Info().Msg("global")
	if !strings.Contains(buf.String(), "global") {
		t.Errorf("fallback did not use global logger: %q", buf.String())
	}
}
