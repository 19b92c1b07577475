package domain

import "time"

// LogFormat selects how log records are rendered at the sink.
type LogFormat string

// Available log formats.
const (
	// LogFormatAuto uses console on a terminal and text otherwise.
	LogFormatAuto LogFormat = "auto"
	// LogFormatText is slog's key=value format.
	LogFormatText LogFormat = "text"
	// LogFormatConsole colours the level for terminals.
	LogFormatConsole LogFormat = "console"
	// LogFormatHTML wraps each record in a styled span.
	LogFormatHTML LogFormat = "html"
	// LogFormatJSON emits one JSON object per record.
	LogFormatJSON LogFormat = "json"
)

// IsValid returns true if the format is recognised.
func (f LogFormat) IsValid() bool {
	switch f {
	case LogFormatAuto, LogFormatText, LogFormatConsole, LogFormatHTML, LogFormatJSON:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f LogFormat) String() string {
	return string(f)
}

// AuthSettings configures the interactive authorization flow.
type AuthSettings struct {
	// TimeoutSeconds bounds the wait for the authorization redirect.
	TimeoutSeconds int
}

// Timeout returns TimeoutSeconds as a duration.
func (a AuthSettings) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// APISettings configures the authenticated request wrapper.
type APISettings struct {
	// RetryUnauthorized replays a request once after a 401 triggered a successful reauthorization.
	RetryUnauthorized bool
	// RateLimit is the sustained request rate per second. Zero disables limiting.
	RateLimit float64
	// Burst is the maximum burst size.
	Burst int
}

// PauseSettings lists what to pause around sensitive operations.
type PauseSettings struct {
	// Services are OS service names (Windows only).
	Services []string
	// Processes are process names.
	Processes []string
	// PsSuspendPath is the pssuspend executable used on Windows.
	PsSuspendPath string
}

// AppSettings holds application-wide settings.
type AppSettings struct {
	Auth      AuthSettings
	API       APISettings
	Pause     PauseSettings
	LogFormat LogFormat
}

// DefaultAppSettings returns the default settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Auth: AuthSettings{
			TimeoutSeconds: 300,
		},
		API: APISettings{
			RetryUnauthorized: false,
			RateLimit:         10,
			Burst:             20,
		},
		Pause: PauseSettings{
			PsSuspendPath: "lib/pssuspend.exe",
		},
		LogFormat: LogFormatAuto,
	}
}
