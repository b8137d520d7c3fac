package nodes

import (
	"errors"
	"fmt"

	authzx "github.com/pushlivechat/flowstart/flow/authz"
	contractx "github.com/pushlivechat/flowstart/flow/contract"
)

func Authorize(in GraphInput, gate *authzx.Gate) (*GraphState, error) {
	state := &GraphState{Input: in}

	if err := gate.Authorize(in.Context); err != nil {
		var unauthorized *authzx.UnauthorizedError
		if !errors.As(err, &unauthorized) {
			return nil, fmt.Errorf("authorization gate: %w", err)
		}
		state.finish(contractx.Unauthorized(unauthorized.Reason))
	}

	return state, nil
}
