package nodes

import (
	contractx "github.com/pushlivechat/flowstart/flow/contract"
)

// GraphInput is one flow-start request as the entry surfaces hand it over.
// Exactly one of AgentID and AgentUsername identifies the invoking agent.
type GraphInput struct {
	Context       contractx.RequestContext
	AgentID       string
	AgentUsername string
	Scheme        string
	RawAddress    string
	FlowID        string
	Extra         map[string]string
}

type GraphOutput struct {
	Outcome contractx.Outcome
}

// GraphState flows through the pipeline. Once Outcome is set the request is
// terminal and every remaining node passes the state through untouched;
// there is no branching back and no compensation.
type GraphState struct {
	Input GraphInput

	Agent   *contractx.Agent
	URN     contractx.URN
	Contact *contractx.Contact

	Outcome *contractx.Outcome
}

func (s *GraphState) terminal() bool {
	return s.Outcome != nil
}

func (s *GraphState) finish(outcome contractx.Outcome) {
	s.Outcome = &outcome
}
