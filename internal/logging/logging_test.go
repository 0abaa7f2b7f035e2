package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/leengari/gridtable/internal/config"
)

func TestConsoleHandler_LevelAndNoColor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, config.LogConfig{Level: "warn"}))

	logger.Info("hidden")
	logger.Warn("shown", slog.Int("rows", 3))

	out := buf.String()
	assert.Assert(t, !strings.Contains(out, "hidden"))
	assert.Assert(t, is.Contains(out, "shown"))
	assert.Assert(t, is.Contains(out, "rows=3"))
	assert.Assert(t, !strings.Contains(out, "\x1b["), "expected no color codes in %q", out)
}

func TestConsoleHandler_ForcedColor(t *testing.T) {
	var buf bytes.Buffer
	color := true
	logger := slog.New(NewConsoleHandler(&buf, config.LogConfig{Level: "info", Color: &color}))

	logger.Info("colored")

	assert.Assert(t, is.Contains(buf.String(), "\x1b["))
}

func TestMultiHandler_FansOut(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	multi := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}}
	logger := slog.New(multi).With(slog.String("table", "users")).WithGroup("join")

	assert.Assert(t, multi.Enabled(context.Background(), slog.LevelDebug))

	logger.Debug("step", slog.Int("rows", 2))
	logger.Warn("slow")

	assert.Assert(t, is.Contains(debugBuf.String(), "msg=step"))
	assert.Assert(t, is.Contains(debugBuf.String(), "table=users"))
	assert.Assert(t, is.Contains(debugBuf.String(), "join.rows=2"))
	assert.Assert(t, !strings.Contains(warnBuf.String(), "msg=step"))
	assert.Assert(t, is.Contains(warnBuf.String(), "msg=slow"))
}
