package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/logger"
)

// UpdateChannel returns info transformed for this service: the service
// name is set, placeholders are substituted and the category is resolved
// through the assignation table ("" when unmapped). info is not modified.
func (c *Client) UpdateChannel(ctx context.Context, info domain.ChannelInfo) (domain.ChannelInfo, error) {
	if err := c.tokens.EnsureValidToken(ctx); err != nil {
		return nil, err
	}

	out := info.Clone()
	if out == nil {
		out = domain.ChannelInfo{}
	}
	out[domain.ChannelName] = c.def.Name
	out.ParseStrings()

	category, _ := out.String(domain.ChannelCategory)
	assignations, err := c.loadAssignations()
	if err != nil {
		return nil, err
	}
	out[domain.ChannelCategory] = assignations.Lookup(category, c.def.Name)

	return out, nil
}

// SubmitChannel transforms info and sends it to the platform.
// Without a submitter the transformed mapping is only returned.
func (c *Client) SubmitChannel(ctx context.Context, info domain.ChannelInfo) (domain.ChannelInfo, error) {
	out, err := c.UpdateChannel(ctx, info)
	if err != nil {
		return nil, err
	}
	if c.submitter == nil {
		logger.Debug("no channel submitter configured", "service", c.def.Name)
		return out, nil
	}
	if err := c.submitter.Submit(ctx, out); err != nil {
		return out, fmt.Errorf("submit channel to %s: %w", c.def.Name, err)
	}
	return out, nil
}

func (c *Client) loadAssignations() (domain.Assignations, error) {
	if c.assignations == nil {
		return domain.Assignations{}, nil
	}
	a, err := c.assignations.LoadAssignations()
	if err != nil {
		return nil, fmt.Errorf("load assignations: %w", err)
	}
	return a, nil
}
