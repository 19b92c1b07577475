package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/streamctl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/streamctl/internal/core/domain"
)

type recordingSubmitter struct {
	got domain.ChannelInfo
	err error
}

func (r *recordingSubmitter) Submit(_ context.Context, info domain.ChannelInfo) error {
	r.got = info
	return r.err
}

type failingAssignations struct{}

func (failingAssignations) LoadAssignations() (domain.Assignations, error) {
	return nil, domain.ErrCorrupt
}

func (failingAssignations) SaveAssignations(domain.Assignations) error {
	return nil
}

func newChannelClient(t *testing.T, a domain.Assignations) *Client {
	t.Helper()
	tm := newTokenManagerFixture(validToken("current"))
	def := domain.ServiceDefinition{Name: "Foo", APIBaseURL: "http://127.0.0.1:1"}
	return NewClient(def, tm.manager, ClientOptions{Assignations: memory.NewAssignationStore(a)})
}

func TestClient_UpdateChannel_SubstitutesServiceName(t *testing.T) {
	client := newChannelClient(t, nil)
	info := domain.ChannelInfo{
		domain.ChannelTitle:       "Now streaming %SERVICE%",
		domain.ChannelDescription: "plain text",
	}

	out, err := client.UpdateChannel(context.Background(), info)

	require.NoError(t, err)
	assert.Equal(t, "Now streaming Foo", out[domain.ChannelTitle])
	assert.Equal(t, "plain text", out[domain.ChannelDescription])
	assert.Equal(t, "Foo", out[domain.ChannelName])
}

func TestClient_UpdateChannel_ResolvesCategory(t *testing.T) {
	client := newChannelClient(t, domain.Assignations{
		"Chatting": {"Foo": {Name: "Just Chatting"}},
	})
	info := domain.ChannelInfo{
		domain.ChannelTitle:      "%CATEGORY% with %CUSTOMTEXT%",
		domain.ChannelCategory:   "Chatting",
		domain.ChannelCustomText: "friends",
		domain.ChannelOnline:     true,
	}

	out, err := client.UpdateChannel(context.Background(), info)

	require.NoError(t, err)
	assert.Equal(t, "Just Chatting", out[domain.ChannelCategory])
	assert.Equal(t, "Chatting with friends", out[domain.ChannelTitle])
	assert.Equal(t, true, out[domain.ChannelOnline])
}

func TestClient_UpdateChannel_UnmappedCategoryIsEmpty(t *testing.T) {
	client := newChannelClient(t, domain.Assignations{
		"Chatting": {"Other": {Name: "Talk"}},
	})

	out, err := client.UpdateChannel(context.Background(), domain.ChannelInfo{domain.ChannelCategory: "Chatting"})
	require.NoError(t, err)
	assert.Equal(t, "", out[domain.ChannelCategory])

	out, err = client.UpdateChannel(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "", out[domain.ChannelCategory])
	assert.Equal(t, "Foo", out[domain.ChannelName])
}

func TestClient_UpdateChannel_DoesNotModifyInput(t *testing.T) {
	client := newChannelClient(t, nil)
	nested := map[string]any{"tags": []any{"%SERVICE%"}}
	info := domain.ChannelInfo{domain.ChannelTitle: "%SERVICE%", "extra": nested}

	out, err := client.UpdateChannel(context.Background(), info)

	require.NoError(t, err)
	assert.Equal(t, "%SERVICE%", info[domain.ChannelTitle])
	_, hasName := info[domain.ChannelName]
	assert.False(t, hasName)

	out["extra"].(map[string]any)["tags"] = nil
	assert.Equal(t, []any{"%SERVICE%"}, nested["tags"])
}

func TestClient_UpdateChannel_AssignationError(t *testing.T) {
	tm := newTokenManagerFixture(validToken("current"))
	client := NewClient(Twitch, tm.manager, ClientOptions{Assignations: failingAssignations{}})

	_, err := client.UpdateChannel(context.Background(), domain.ChannelInfo{})

	assert.ErrorIs(t, err, domain.ErrCorrupt)
}

func TestClient_UpdateChannel_TokenTimeout(t *testing.T) {
	tm := newTokenManagerFixture(nil)
	tm.listener.waitErr = domain.ErrTimeout
	client := NewClient(Twitch, tm.manager, ClientOptions{})

	_, err := client.UpdateChannel(context.Background(), domain.ChannelInfo{})

	assert.ErrorIs(t, err, domain.ErrTimeout)
}

func TestClient_SubmitChannel(t *testing.T) {
	client := newChannelClient(t, nil)
	submitter := &recordingSubmitter{}
	client.SetSubmitter(submitter)

	out, err := client.SubmitChannel(context.Background(), domain.ChannelInfo{domain.ChannelTitle: "Live on %SERVICE%"})

	require.NoError(t, err)
	assert.Equal(t, "Live on Foo", out[domain.ChannelTitle])
	assert.Equal(t, out, submitter.got)
}

func TestClient_SubmitChannel_WithoutSubmitter(t *testing.T) {
	client := newChannelClient(t, nil)

	out, err := client.SubmitChannel(context.Background(), domain.ChannelInfo{})

	require.NoError(t, err)
	assert.Equal(t, "Foo", out[domain.ChannelName])
}

func TestClient_SubmitChannel_Error(t *testing.T) {
	client := newChannelClient(t, nil)
	want := errors.New("rejected")
	client.SetSubmitter(&recordingSubmitter{err: want})

	out, err := client.SubmitChannel(context.Background(), domain.ChannelInfo{})

	assert.ErrorIs(t, err, want)
	assert.Contains(t, err.Error(), "submit channel to Foo")
	assert.NotNil(t, out)
}
