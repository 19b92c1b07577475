package domain

import "strings"

// Placeholders substituted in channel metadata string values.
const (
	PlaceholderService    = "%SERVICE%"
	PlaceholderCategory   = "%CATEGORY%"
	PlaceholderCustomText = "%CUSTOMTEXT%"
)

// Well-known ChannelInfo keys.
const (
	ChannelOnline      = "online"
	ChannelTitle       = "title"
	ChannelName        = "name"
	ChannelCategory    = "category"
	ChannelDescription = "description"
	ChannelCustomText  = "customtext"
)

// ChannelInfo is channel/stream metadata. Values are usually strings but
// callers may store other JSON-compatible values (online is often a bool).
type ChannelInfo map[string]any

// NewChannelInfo returns metadata with every well-known key set to "".
func NewChannelInfo() ChannelInfo {
	return ChannelInfo{
		ChannelOnline:      "",
		ChannelTitle:       "",
		ChannelName:        "",
		ChannelCategory:    "",
		ChannelDescription: "",
	}
}

// String returns the value of key if it is a string.
func (c ChannelInfo) String(key string) (string, bool) {
	v, ok := c[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Clone returns a deep copy. Nested maps and slices are copied as well.
func (c ChannelInfo) Clone() ChannelInfo {
	if c == nil {
		return nil
	}
	out := make(ChannelInfo, len(c))
	for k, v := range c {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = deepCopy(inner)
		}
		return m
	case ChannelInfo:
		return val.Clone()
	case []any:
		s := make([]any, len(val))
		for i, inner := range val {
			s[i] = deepCopy(inner)
		}
		return s
	case []string:
		s := make([]string, len(val))
		copy(s, val)
		return s
	default:
		return v
	}
}

// ParseStrings substitutes placeholders in every string value, in place.
// %SERVICE% takes the value of "name", %CATEGORY% of "category" and
// %CUSTOMTEXT% of "customtext". A placeholder whose source key is absent or
// not a string is left untouched. Replacement values are read before any
// substitution happens. Non-string values are skipped.
func (c ChannelInfo) ParseStrings() ChannelInfo {
	pairs := make([]string, 0, 6)
	if v, ok := c.String(ChannelName); ok {
		pairs = append(pairs, PlaceholderService, v)
	}
	if v, ok := c.String(ChannelCategory); ok {
		pairs = append(pairs, PlaceholderCategory, v)
	}
	if v, ok := c.String(ChannelCustomText); ok {
		pairs = append(pairs, PlaceholderCustomText, v)
	}
	if len(pairs) == 0 {
		return c
	}

	r := strings.NewReplacer(pairs...)
	for k, v := range c {
		if s, ok := v.(string); ok {
			c[k] = r.Replace(s)
		}
	}
	return c
}

// CategoryAssignment is the platform-specific name of a category.
type CategoryAssignment struct {
	Name string `json:"name"`
}

// Assignations maps a generic category to per-service category names:
// category -> service name -> assignment.
type Assignations map[string]map[string]CategoryAssignment

// Lookup returns the name the service uses for category, or "" if unmapped.
func (a Assignations) Lookup(category, service string) string {
	if a == nil {
		return ""
	}
	return a[category][service].Name
}
