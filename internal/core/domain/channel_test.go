package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelInfo_ParseStrings_Service(t *testing.T) {
	info := ChannelInfo{
		ChannelTitle: "Now streaming %SERVICE%",
		ChannelName:  "Foo",
	}

	info.ParseStrings()

	assert.Equal(t, "Now streaming Foo", info[ChannelTitle])
	assert.Equal(t, "Foo", info[ChannelName])
}

func TestChannelInfo_ParseStrings_AllPlaceholders(t *testing.T) {
	info := ChannelInfo{
		ChannelTitle:       "%SERVICE% | %CATEGORY% | %CUSTOMTEXT%",
		ChannelDescription: "plain text stays",
		ChannelName:        "Foo",
		ChannelCategory:    "Chess",
		ChannelCustomText:  "hello",
	}

	info.ParseStrings()

	assert.Equal(t, "Foo | Chess | hello", info[ChannelTitle])
	assert.Equal(t, "plain text stays", info[ChannelDescription])
}

func TestChannelInfo_ParseStrings_MissingSourcesKeepPlaceholder(t *testing.T) {
	info := ChannelInfo{
		ChannelTitle: "%CUSTOMTEXT% on %SERVICE%",
		ChannelName:  "Foo",
	}

	info.ParseStrings()

	assert.Equal(t, "%CUSTOMTEXT% on Foo", info[ChannelTitle])
}

func TestChannelInfo_ParseStrings_SkipsNonStrings(t *testing.T) {
	info := ChannelInfo{
		ChannelOnline: true,
		"viewers":     42,
		ChannelName:   "Foo",
	}

	info.ParseStrings()

	assert.Equal(t, true, info[ChannelOnline])
	assert.Equal(t, 42, info["viewers"])
}

func TestChannelInfo_Clone(t *testing.T) {
	original := ChannelInfo{
		ChannelTitle: "t",
		"tags":       []any{"a", "b"},
		"nested":     map[string]any{"k": "v"},
	}

	clone := original.Clone()
	clone[ChannelTitle] = "changed"
	clone["tags"].([]any)[0] = "z"
	clone["nested"].(map[string]any)["k"] = "w"

	assert.Equal(t, "t", original[ChannelTitle])
	assert.Equal(t, "a", original["tags"].([]any)[0])
	assert.Equal(t, "v", original["nested"].(map[string]any)["k"])
}

func TestNewChannelInfo(t *testing.T) {
	info := NewChannelInfo()
	for _, key := range []string{ChannelOnline, ChannelTitle, ChannelName, ChannelCategory, ChannelDescription} {
		assert.Contains(t, info, key)
	}
}

func TestAssignations_Lookup(t *testing.T) {
	a := Assignations{
		"Chess": {"Twitch": {Name: "Chess"}, "Other": {Name: "Board Games"}},
	}

	assert.Equal(t, "Chess", a.Lookup("Chess", "Twitch"))
	assert.Equal(t, "Board Games", a.Lookup("Chess", "Other"))
	assert.Equal(t, "", a.Lookup("Chess", "Missing"))
	assert.Equal(t, "", a.Lookup("Unknown", "Twitch"))
	assert.Equal(t, "", Assignations(nil).Lookup("Chess", "Twitch"))
}
