package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

func TestSetup_FileOnly_NoConsole(t *testing.T) {
	var console, fileBuf bytes.Buffer
	m := NewSlogManager()
	m.console = &console
	m.Setup(&fileBuf, "info", nil)
	m.Logger().Info("hello file")

	assert.Contains(t, fileBuf.String(), "hello file", "log should appear in file")
	assert.Empty(t, console.String(), "nothing should reach the console when a file is provided")
}

func TestSetup_NoFile_WritesToConsole(t *testing.T) {
	var console bytes.Buffer
	m := NewSlogManager()
	m.console = &console
	m.Setup(nil, "info", nil)
	m.Logger().Info("hello console")

	assert.Contains(t, console.String(), "hello console", "log should appear on the console")
}

func TestSetup_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "debug", nil)

	m.Logger().Debug("debug msg")
	m.Logger().Info("info msg")

	output := buf.String()
	assert.Contains(t, output, "debug msg")
	assert.Contains(t, output, "info msg")
}

func TestSetup_InfoLevel_FiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "info", nil)

	m.Logger().Debug("should be filtered")
	m.Logger().Info("should appear")

	output := buf.String()
	assert.NotContains(t, output, "should be filtered")
	assert.Contains(t, output, "should appear")
}

func TestSetup_ReplacesLogger(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	m := NewSlogManager()

	m.Setup(&buf1, "info", nil)
	m.Logger().Info("first")

	m.Setup(&buf2, "info", nil)
	m.Logger().Info("second")

	assert.Contains(t, buf1.String(), "first")
	assert.NotContains(t, buf1.String(), "second", "old file should not receive new logs")
	assert.Contains(t, buf2.String(), "second")
}

func TestLogger_DefaultBeforeSetup(t *testing.T) {
	m := NewSlogManager()
	logger := m.Logger()
	assert.Equal(t, slog.Default(), logger)
}

func TestFlush_NilProvider(t *testing.T) {
	m := NewSlogManager()
	err := m.Flush(context.Background())
	assert.NoError(t, err)
}

func TestLogWarnings(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "info", nil)

	m.LogWarnings("propulsion", []string{"speed controller X5 is rated 5.0 A", "battery too weak"})

	output := buf.String()
	assert.Contains(t, output, "level=WARN")
	assert.Contains(t, output, "speed controller X5")
	assert.Contains(t, output, "battery too weak")
	assert.Contains(t, output, "source=propulsion")
}

func TestLogWarnings_NilLogger(t *testing.T) {
	m := NewSlogManager()
	// Should not panic
	m.LogWarnings("fn", []string{"data"})
}

func TestSetup_InjectsRunContext(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "info", nil)

	m.Logger().Info("before load")
	m.SetAircraft("TurboTime")
	m.Logger().Info("after load")
	m.SetRunID("7")
	m.Logger().Info("after save")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.NotContains(t, lines[0], "aircraft=")
	assert.Contains(t, lines[1], "aircraft=TurboTime")
	assert.NotContains(t, lines[1], "run=")
	assert.Contains(t, lines[2], "aircraft=TurboTime")
	assert.Contains(t, lines[2], "run=7")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"invalid", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestRunHandler_FansOut(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h1 := slog.NewTextHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	h2 := slog.NewTextHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelInfo})

	run := &RunContext{}
	run.SetAircraft("Glider")
	logger := slog.New(newRunHandler(run, h1, nil, h2))
	logger.Info("fanned out")

	for _, out := range []string{buf1.String(), buf2.String()} {
		assert.Contains(t, out, "fanned out")
		assert.Contains(t, out, "aircraft=Glider")
	}
}

func TestRunHandler_Enabled(t *testing.T) {
	infoHandler := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo})
	debugHandler := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})
	ctx := context.Background()

	infoOnly := newRunHandler(nil, infoHandler)
	assert.False(t, infoOnly.Enabled(ctx, slog.LevelDebug))
	assert.True(t, infoOnly.Enabled(ctx, slog.LevelInfo))

	assert.True(t, newRunHandler(nil, infoHandler, debugHandler).Enabled(ctx, slog.LevelDebug))
	assert.False(t, newRunHandler(nil).Enabled(ctx, slog.LevelError))
}

func TestRunHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	h := newRunHandler(nil, slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	slog.New(h.WithAttrs([]slog.Attr{slog.String("backend", "sqlite")})).Info("with attrs")
	slog.New(h.WithGroup("db")).Info("grouped", "table", "mass_runs")

	out := buf.String()
	assert.Contains(t, out, "backend=sqlite")
	assert.Contains(t, out, "db.table=mass_runs")
	assert.Same(t, h, h.WithGroup(""))
}

func TestFlush_WithProvider(t *testing.T) {
	provider := sdklog.NewLoggerProvider() // no exporter, just validates non-nil path
	m := NewSlogManager()

	var buf bytes.Buffer
	m.Setup(&buf, "info", provider)

	err := m.Flush(context.Background())
	assert.NoError(t, err)
}

// failingSink is a slog.Handler that always returns an error from Handle.
type failingSink struct {
	slog.Handler
}

func (h *failingSink) Handle(_ context.Context, _ slog.Record) error {
	return errors.New("sink closed")
}

func (h *failingSink) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func TestRunHandler_HandleError(t *testing.T) {
	var buf bytes.Buffer
	spy := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	h := newRunHandler(nil, &failingSink{}, spy)
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "should reach spy", 0)
	err := h.Handle(context.Background(), r)

	assert.ErrorContains(t, err, "sink closed")
	assert.Contains(t, buf.String(), "should reach spy")
}

func TestSetup_WithOTelProvider(t *testing.T) {
	provider := sdklog.NewLoggerProvider()

	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "info", provider)

	m.Logger().Info("otel integrated")
	assert.Contains(t, buf.String(), "otel integrated")
}
