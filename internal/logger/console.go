package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// NewConsoleHandler returns a handler that colours the level label.
// Colours are dropped automatically when w is not a colour-capable terminal.
func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	r := lipgloss.NewRenderer(w)
	styles := map[string]lipgloss.Style{
		"CRITICAL": r.NewStyle().Foreground(lipgloss.Color("124")).Bold(true),
		"ERROR":    r.NewStyle().Foreground(lipgloss.Color("9")),
		"WARNING":  r.NewStyle().Foreground(lipgloss.Color("208")),
		"INFO":     r.NewStyle(),
		"DEBUG":    r.NewStyle().Foreground(lipgloss.Color("8")),
	}

	return newLineHandler(w, opts, func(lvl slog.Level, line string) string {
		label := levelLabel(lvl)
		style, ok := styles[label]
		if !ok {
			return line
		}
		return strings.Replace(line, label, style.Render(label), 1)
	})
}
