package nodes

import (
	"context"
	"net/http"

	contractx "github.com/pushlivechat/flowstart/flow/contract"
)

// StartFlow issues the flow-start call and interprets the remote status.
// A created status is terminal success; the remote system may still fail
// mid-flow after accepting, which this pipeline does not observe.
func StartFlow(ctx context.Context, in *GraphState, gateway contractx.ContactGateway) (*GraphState, error) {
	if in.terminal() {
		return in, nil
	}

	result, err := gateway.StartFlow(ctx, contractx.FlowStartRequest{
		Agent:  *in.Agent,
		URN:    in.URN,
		FlowID: in.Input.FlowID,
		Extra:  in.Input.Extra,
	})
	if err != nil {
		in.finish(classifyRemote(err))
		return in, nil
	}

	if result.StatusCode == http.StatusCreated {
		in.finish(contractx.Started(in.URN, in.Contact.Name))
	} else {
		in.finish(contractx.RemoteError(result.StatusCode, result.Body))
	}

	return in, nil
}
