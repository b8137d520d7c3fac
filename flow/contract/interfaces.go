package contract

import "context"

// ContactGateway is the remote flow-automation API surface the pipeline
// depends on. LookupContact returns ErrContactNotFound on a well-formed
// zero-results reply and a *StatusError on a non-2xx response.
type ContactGateway interface {
	LookupContact(ctx context.Context, urn URN) (*Contact, error)
	StartFlow(ctx context.Context, req FlowStartRequest) (*FlowStartResult, error)
}

// FlowStartResult is the raw remote acceptance of a flow start. A created
// status means the remote system accepted the start, not that the flow will
// run to completion.
type FlowStartResult struct {
	StatusCode int
	Body       string
}

// AgentDirectory resolves the invoking platform user to a stable agent
// record. Both lookups return ErrAgentNotFound on a miss.
type AgentDirectory interface {
	AgentByUsername(ctx context.Context, username string) (*Agent, error)
	AgentByID(ctx context.Context, id string) (*Agent, error)
}
