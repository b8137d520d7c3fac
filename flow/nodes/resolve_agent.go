package nodes

import (
	"context"
	"errors"
	"net/http"

	contractx "github.com/pushlivechat/flowstart/flow/contract"
)

// ResolveAgent maps the caller-supplied agent reference to a directory
// record. An authorized requester must always resolve to a known agent, so
// a miss is a configuration bug upstream, not a user error.
func ResolveAgent(ctx context.Context, in *GraphState, directory contractx.AgentDirectory) (*GraphState, error) {
	if in.terminal() {
		return in, nil
	}

	var (
		agent *contractx.Agent
		ref   string
		err   error
	)
	if in.Input.AgentID != "" {
		ref = in.Input.AgentID
		agent, err = directory.AgentByID(ctx, ref)
	} else {
		ref = in.Input.AgentUsername
		agent, err = directory.AgentByUsername(ctx, ref)
	}

	switch {
	case errors.Is(err, contractx.ErrAgentNotFound):
		in.finish(contractx.InternalError(http.StatusBadRequest, "could not find agent: "+ref))
	case err != nil:
		in.finish(classifyRemote(err))
	default:
		in.Agent = agent
	}

	return in, nil
}
