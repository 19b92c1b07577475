package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleHandler_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	l := slog.New(h)

	l.Warn("token refresh failed", "service", "Foo")

	out := buf.String()
	assert.Contains(t, out, "WARNING token refresh failed service=Foo")
	assert.NotContains(t, out, "\x1b[", "no escape codes for a buffer")
}

func TestConsoleHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	l.Info("hidden")
	l.Error("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "ERROR shown")
}

func TestConsoleHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewConsoleHandler(&buf, nil)).With("service", "Foo").WithGroup("http")

	l.Info("request", "status", 200, "path", "/a b")

	out := buf.String()
	assert.Contains(t, out, "service=Foo")
	assert.Contains(t, out, "http.status=200")
	assert.Contains(t, out, `http.path="/a b"`)
}

func TestHTMLHandler_WrapsSpan(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewHTMLHandler(&buf, nil))

	l.Error("boom <b>")

	out := buf.String()
	assert.Contains(t, out, `<span class="error" style="color:red;font-size:100%;">`)
	assert.Contains(t, out, "boom &lt;b&gt;")
	assert.Contains(t, out, "</span>\n")
}

func TestHTMLHandler_Critical(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewHTMLHandler(&buf, nil))

	l.Log(context.Background(), LevelCritical, "fatal")

	assert.Contains(t, buf.String(), `class="critical" style="color:brown;font-size:120%;font-weight:bold"`)
}

func TestHTMLHandler_LinkifiesWindowsPaths(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewHTMLHandler(&buf, nil))

	l.Warn(`see C:\Users\me\config.json_error`)

	assert.Contains(t, buf.String(),
		`<a href="file:///C:\Users\me\config.json_error">C:\Users\me\config.json_error</a>`)
}

func TestLevelLabel(t *testing.T) {
	assert.Equal(t, "DEBUG", levelLabel(slog.LevelDebug))
	assert.Equal(t, "INFO", levelLabel(slog.LevelInfo))
	assert.Equal(t, "WARNING", levelLabel(slog.LevelWarn))
	assert.Equal(t, "ERROR", levelLabel(slog.LevelError))
	assert.Equal(t, "CRITICAL", levelLabel(LevelCritical))
}
