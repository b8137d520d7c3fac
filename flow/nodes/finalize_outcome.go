package nodes

import (
	"errors"

	"github.com/rs/zerolog/log"

	contractx "github.com/pushlivechat/flowstart/flow/contract"
)

var ErrMissingOutcome = errors.New("pipeline finished without an outcome")

// FinalizeOutcome closes the pipeline. Remote and internal failures are
// logged here in full: the entry surfaces show the user a generic message,
// and the detail must not be dropped at that boundary.
func FinalizeOutcome(in *GraphState) (GraphOutput, error) {
	if in == nil || in.Outcome == nil {
		return GraphOutput{}, ErrMissingOutcome
	}

	outcome := *in.Outcome
	switch outcome.Kind {
	case contractx.OutcomeRemoteError, contractx.OutcomeInternalError:
		log.Error().
			Str("kind", string(outcome.Kind)).
			Int("status", outcome.StatusCode).
			Str("detail", outcome.Detail).
			Str("flow_id", in.Input.FlowID).
			Msg("flow start failed")
	default:
		log.Debug().
			Str("kind", string(outcome.Kind)).
			Str("urn", outcome.URN.String()).
			Msg("flow start finished")
	}

	return GraphOutput{Outcome: outcome}, nil
}
