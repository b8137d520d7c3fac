// Package gateway adapts the concrete remote clients to the capability
// interfaces the pipeline consumes, so the core never couples to a specific
// host or API client.
package gateway

import (
	"context"
	"errors"

	contractx "github.com/pushlivechat/flowstart/flow/contract"
	rapidprox "github.com/pushlivechat/flowstart/pkg/rapidpro"
)

// RapidProGateway implements contract.ContactGateway over the RapidPro API.
type RapidProGateway struct {
	client *rapidprox.Client
}

var _ contractx.ContactGateway = (*RapidProGateway)(nil)

func NewRapidProGateway(client *rapidprox.Client) (*RapidProGateway, error) {
	if client == nil {
		return nil, errors.New("rapidpro client is required")
	}
	return &RapidProGateway{client: client}, nil
}

func (g *RapidProGateway) LookupContact(ctx context.Context, urn contractx.URN) (*contractx.Contact, error) {
	contact, err := g.client.LookupContact(ctx, urn.String())
	if err != nil {
		var apiErr *rapidprox.APIError
		switch {
		case errors.Is(err, rapidprox.ErrNoResults):
			return nil, contractx.ErrContactNotFound
		case errors.As(err, &apiErr):
			return nil, &contractx.StatusError{Code: apiErr.StatusCode, Body: apiErr.Body}
		default:
			return nil, err
		}
	}

	return &contractx.Contact{URN: urn, Name: contact.Name}, nil
}

func (g *RapidProGateway) StartFlow(ctx context.Context, req contractx.FlowStartRequest) (*contractx.FlowStartResult, error) {
	extra := make(map[string]string, len(req.Extra)+1)
	for k, v := range req.Extra {
		extra[k] = v
	}
	// the remote flow always receives the initiating agent's id
	extra["agentId"] = req.Agent.ID

	resp, err := g.client.StartFlow(ctx, rapidprox.StartFlowParams{
		FlowID: req.FlowID,
		URNs:   []string{req.URN.String()},
		Extra:  extra,
	})
	if err != nil {
		return nil, err
	}

	return &contractx.FlowStartResult{StatusCode: resp.StatusCode, Body: resp.Body}, nil
}
