package nodes

import (
	contractx "github.com/pushlivechat/flowstart/flow/contract"
	urnx "github.com/pushlivechat/flowstart/flow/urn"
)

func NormalizeURN(in *GraphState, normalizer *urnx.Normalizer) (*GraphState, error) {
	if in.terminal() {
		return in, nil
	}

	urn, err := normalizer.Normalize(in.Input.Scheme, in.Input.RawAddress)
	if err != nil {
		in.finish(contractx.MalformedInput(err.Error()))
		return in, nil
	}

	in.URN = urn
	return in, nil
}
