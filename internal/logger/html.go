package logger

import (
	"fmt"
	"html"
	"io"
	"log/slog"
	"regexp"
)

type htmlStyle struct {
	color   string
	size    string
	special string
}

var htmlStyles = map[string]htmlStyle{
	"CRITICAL": {color: "brown", size: "120%", special: "font-weight:bold"},
	"ERROR":    {color: "red", size: "100%"},
	"WARNING":  {color: "darkorange", size: "100%"},
	"INFO":     {color: "black", size: "100%"},
	"DEBUG":    {color: "grey", size: "100%"},
}

// Windows-style absolute paths ("C:\dir\file", "D:/dir").
var windowsPath = regexp.MustCompile(`((?:\w):(?:\\|/)[^\s/$.?#].[^\s]*)`)

// NewHTMLHandler returns a handler that wraps each record in a styled span,
// with a class named after the level. Windows paths become file:// links.
func NewHTMLHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return newLineHandler(w, opts, renderHTML)
}

func renderHTML(lvl slog.Level, line string) string {
	label := levelLabel(lvl)
	style := htmlStyles[label]
	text := windowsPath.ReplaceAllString(html.EscapeString(line), `<a href="file:///$1">$1</a>`)
	return fmt.Sprintf(`<span class="%s" style="color:%s;font-size:%s;%s">%s</span>`,
		lowerLevel(label), style.color, style.size, style.special, text)
}

func lowerLevel(label string) string {
	switch label {
	case "CRITICAL":
		return "critical"
	case "ERROR":
		return "error"
	case "WARNING":
		return "warning"
	case "INFO":
		return "info"
	default:
		return "debug"
	}
}
