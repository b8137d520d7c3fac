package nodes

import (
	"context"
	"errors"

	contractx "github.com/pushlivechat/flowstart/flow/contract"
	resolverx "github.com/pushlivechat/flowstart/flow/resolver"
)

func ResolveContact(ctx context.Context, in *GraphState, resolver *resolverx.Resolver) (*GraphState, error) {
	if in.terminal() {
		return in, nil
	}

	contact, err := resolver.Resolve(ctx, in.URN)
	switch {
	case errors.Is(err, contractx.ErrContactNotFound):
		in.finish(contractx.ContactNotFound(in.URN))
	case err != nil:
		in.finish(classifyRemote(err))
	default:
		in.Contact = contact
		// the alternate address may have won the lookup
		in.URN = contact.URN
	}

	return in, nil
}
