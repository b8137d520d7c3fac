// Package orchestrator composes the flow-start pipeline: authorize, resolve
// the agent, normalize the address, resolve the contact, start the flow.
package orchestrator

import (
	"context"
	"errors"
	"net/http"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	authzx "github.com/pushlivechat/flowstart/flow/authz"
	contractx "github.com/pushlivechat/flowstart/flow/contract"
	nodex "github.com/pushlivechat/flowstart/flow/nodes"
	resolverx "github.com/pushlivechat/flowstart/flow/resolver"
	urnx "github.com/pushlivechat/flowstart/flow/urn"
)

type Config struct {
	// RequiredRole entitles a requester to start flows. Empty keeps the
	// authz default.
	RequiredRole string
	// DefaultCountryCode is prepended to phone numbers entered without one.
	// Empty keeps the normalizer default.
	DefaultCountryCode string
}

// Service is the single entry point producing one Outcome per invocation.
// Invocations are independent and stateless; nothing is shared between
// concurrent requests beyond the remote clients' HTTP transports.
type Service struct {
	gate       *authzx.Gate
	directory  contractx.AgentDirectory
	gateway    contractx.ContactGateway
	normalizer *urnx.Normalizer
	resolver   *resolverx.Resolver

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]
}

func New(directory contractx.AgentDirectory, gateway contractx.ContactGateway, cfg Config) (*Service, error) {
	if directory == nil {
		return nil, errors.New("agent directory is required")
	}
	if gateway == nil {
		return nil, errors.New("contact gateway is required")
	}

	resolver, err := resolverx.New(gateway)
	if err != nil {
		return nil, err
	}

	s := &Service{
		gate:       authzx.New(authzx.WithRequiredRole(cfg.RequiredRole)),
		directory:  directory,
		gateway:    gateway,
		normalizer: urnx.New(urnx.WithCountryCode(cfg.DefaultCountryCode)),
		resolver:   resolver,
	}

	graphRunner, err := s.compileStartFlowGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	return s, nil
}

// StartFlow runs the pipeline for one request. A created status from the
// remote system is terminal success; acceptance does not guarantee the
// remote flow completes, and an unconfirmed start is never retried.
func (s *Service) StartFlow(ctx context.Context, in nodex.GraphInput) contractx.Outcome {
	out, err := s.graphRunner.Invoke(ctx, in)
	if err != nil {
		// The runner checks ctx between nodes, so a cancelled or expired
		// invocation aborts the graph itself rather than a remote call.
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Warn().Err(err).Msg("flow start pipeline cancelled")
			return contractx.RemoteError(http.StatusGatewayTimeout, err.Error())
		}
		log.Error().Err(err).Msg("flow start pipeline failed")
		return contractx.InternalError(http.StatusInternalServerError, err.Error())
	}
	return out.Outcome
}
