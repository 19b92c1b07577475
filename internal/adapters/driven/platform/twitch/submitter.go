package twitch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/core/ports/driven"
	"github.com/custodia-labs/streamctl/internal/core/ports/driving"
	"github.com/custodia-labs/streamctl/internal/logger"
)

// Ensure Submitter implements the interface.
var _ driven.ChannelSubmitter = (*Submitter)(nil)

// ErrUnknownGame is returned when Twitch has no game with the requested name.
var ErrUnknownGame = errors.New("unknown twitch game")

// Requester performs authenticated Helix calls.
type Requester interface {
	Request(ctx context.Context, method, address string, opts driving.RequestOptions) (*domain.APIResponse, error)
}

// Submitter updates the authenticated broadcaster's channel.
type Submitter struct {
	client Requester

	// broadcasterID is resolved on first use.
	broadcasterID string
}

// NewSubmitter creates a submitter using client for every call.
func NewSubmitter(client Requester) *Submitter {
	return &Submitter{client: client}
}

type helixList[T any] struct {
	Data []T `json:"data"`
}

type helixUser struct {
	ID    string `json:"id"`
	Login string `json:"login"`
}

type helixGame struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Submit sets the channel title and, when a category is present, the game.
func (s *Submitter) Submit(ctx context.Context, info domain.ChannelInfo) error {
	id, err := s.broadcaster(ctx)
	if err != nil {
		return err
	}

	body := map[string]string{}
	if title, ok := info.String(domain.ChannelTitle); ok && title != "" {
		body["title"] = title
	}
	if category, ok := info.String(domain.ChannelCategory); ok && category != "" {
		gameID, err := s.gameID(ctx, category)
		if err != nil {
			return err
		}
		body["game_id"] = gameID
	}
	if len(body) == 0 {
		logger.Debug("nothing to submit", "service", "twitch")
		return nil
	}

	resp, err := s.client.Request(ctx, http.MethodPatch, "channels", driving.RequestOptions{
		Params: url.Values{"broadcaster_id": {id}},
		Body:   body,
		Bearer: true,
	})
	if err != nil {
		return fmt.Errorf("modify channel: %w", err)
	}
	if !resp.OK() {
		return fmt.Errorf("modify channel: status %d", resp.StatusCode)
	}
	return nil
}

func (s *Submitter) broadcaster(ctx context.Context) (string, error) {
	if s.broadcasterID != "" {
		return s.broadcasterID, nil
	}

	var users helixList[helixUser]
	if err := s.get(ctx, "users", nil, &users); err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if len(users.Data) == 0 {
		return "", fmt.Errorf("get user: %w", domain.ErrNotFound)
	}

	s.broadcasterID = users.Data[0].ID
	return s.broadcasterID, nil
}

func (s *Submitter) gameID(ctx context.Context, name string) (string, error) {
	var games helixList[helixGame]
	if err := s.get(ctx, "games", url.Values{"name": {name}}, &games); err != nil {
		return "", fmt.Errorf("get game %q: %w", name, err)
	}
	if len(games.Data) == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownGame, name)
	}
	return games.Data[0].ID, nil
}

func (s *Submitter) get(ctx context.Context, address string, params url.Values, v any) error {
	resp, err := s.client.Request(ctx, http.MethodGet, address, driving.RequestOptions{
		Params: params,
		Bearer: true,
	})
	if err != nil {
		return err
	}
	if !resp.OK() {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return resp.Decode(v)
}
