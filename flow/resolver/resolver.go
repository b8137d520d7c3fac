// Package resolver decides whether a normalized URN corresponds to an
// existing remote contact. The only retry it knows is the whatsapp
// mobile-prefix correction: a semantic second attempt, never a
// transient-failure retry.
package resolver

import (
	"context"
	"errors"

	contractx "github.com/pushlivechat/flowstart/flow/contract"
)

// countryAndAreaLen is the prefix split point for the alternate-address
// derivation: 2-digit country code + 2-digit area code.
const countryAndAreaLen = 4

type Resolver struct {
	gateway contractx.ContactGateway
}

func New(gateway contractx.ContactGateway) (*Resolver, error) {
	if gateway == nil {
		return nil, errors.New("contact gateway is required")
	}
	return &Resolver{gateway: gateway}, nil
}

// Resolve looks the URN up in the remote directory. A miss on a whatsapp
// URN triggers exactly one more lookup on the alternate address with the
// mobile-prefix digit toggled; there is no third attempt and no retry for
// any other scheme. A miss returns contract.ErrContactNotFound; transport
// failures on the lookup itself pass through unchanged.
func (r *Resolver) Resolve(ctx context.Context, urn contractx.URN) (*contractx.Contact, error) {
	contact, err := r.gateway.LookupContact(ctx, urn)
	if err == nil {
		return contact, nil
	}
	if !errors.Is(err, contractx.ErrContactNotFound) {
		return nil, err
	}

	if urn.Scheme() != contractx.SchemeWhatsApp {
		return nil, err
	}

	alternate, ok := AlternateAddress(urn)
	if !ok {
		return nil, err
	}

	return r.gateway.LookupContact(ctx, alternate)
}

// AlternateAddress derives the complementary whatsapp URN: a 9-digit
// subscriber number loses its assumed mobile-prefix digit, an 8-digit one
// gains a 9 right after the country and area codes. Addresses of any other
// shape have no alternate.
func AlternateAddress(urn contractx.URN) (contractx.URN, bool) {
	address := urn.Address()
	if len(address) <= countryAndAreaLen {
		return "", false
	}

	countryAndArea := address[:countryAndAreaLen]
	subscriber := address[countryAndAreaLen:]

	switch len(subscriber) {
	case 9:
		return contractx.NewURN(urn.Scheme(), countryAndArea+subscriber[1:]), true
	case 8:
		return contractx.NewURN(urn.Scheme(), countryAndArea+"9"+subscriber), true
	default:
		return "", false
	}
}
