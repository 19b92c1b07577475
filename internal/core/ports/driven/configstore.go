package driven

// ConfigStore holds application settings addressed by dot-notation keys
// ("auth.timeout" is key timeout in table auth).
//
// The typed getters return the zero value when a key is missing or holds
// another type. Numbers convert between int and float.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool
	// GetStringSlice returns a copy; non-string elements are skipped.
	GetStringSlice(key string) []string

	// Set stores value and persists it before returning.
	Set(key string, value any) error
	Save() error
	// Load replaces the in-memory values with what storage holds.
	Load() error
	// Path identifies the backing file, or ":memory:".
	Path() string
}
