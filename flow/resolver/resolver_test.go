package resolver

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/pushlivechat/flowstart/flow/contract"
)

type fakeGateway struct {
	contacts map[contractx.URN]*contractx.Contact
	errs     map[contractx.URN]error
	lookups  []contractx.URN
}

func (f *fakeGateway) LookupContact(ctx context.Context, urn contractx.URN) (*contractx.Contact, error) {
	f.lookups = append(f.lookups, urn)
	if err, ok := f.errs[urn]; ok {
		return nil, err
	}
	if contact, ok := f.contacts[urn]; ok {
		return contact, nil
	}
	return nil, contractx.ErrContactNotFound
}

func (f *fakeGateway) StartFlow(ctx context.Context, req contractx.FlowStartRequest) (*contractx.FlowStartResult, error) {
	return nil, errors.New("not used")
}

func TestResolveFirstLookupHit(t *testing.T) {
	t.Parallel()

	urn := contractx.URN("whatsapp:5582955555555")
	gateway := &fakeGateway{contacts: map[contractx.URN]*contractx.Contact{
		urn: {URN: urn, Name: "Ana"},
	}}

	r, err := New(gateway)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	contact, err := r.Resolve(context.Background(), urn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contact.Name != "Ana" || contact.URN != urn {
		t.Fatalf("unexpected contact: %+v", contact)
	}
	if len(gateway.lookups) != 1 {
		t.Fatalf("expected exactly one lookup on the success path, got %d", len(gateway.lookups))
	}
}

func TestResolveWhatsAppAlternateDropsMobilePrefix(t *testing.T) {
	t.Parallel()

	primary := contractx.URN("whatsapp:5582955555555")
	alternate := contractx.URN("whatsapp:558295555555")
	gateway := &fakeGateway{contacts: map[contractx.URN]*contractx.Contact{
		alternate: {URN: alternate, Name: "Bruno"},
	}}

	r, _ := New(gateway)
	contact, err := r.Resolve(context.Background(), primary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contact.URN != alternate {
		t.Fatalf("expected alternate urn %s, got %s", alternate, contact.URN)
	}
	if len(gateway.lookups) != 2 {
		t.Fatalf("expected two lookups, got %d", len(gateway.lookups))
	}
	if gateway.lookups[0] != primary || gateway.lookups[1] != alternate {
		t.Fatalf("unexpected lookup order: %v", gateway.lookups)
	}
}

func TestResolveWhatsAppAlternateInsertsMobilePrefix(t *testing.T) {
	t.Parallel()

	primary := contractx.URN("whatsapp:558295555555")
	alternate := contractx.URN("whatsapp:5582955555555")
	gateway := &fakeGateway{contacts: map[contractx.URN]*contractx.Contact{
		alternate: {URN: alternate},
	}}

	r, _ := New(gateway)
	contact, err := r.Resolve(context.Background(), primary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contact.URN != alternate {
		t.Fatalf("expected alternate urn %s, got %s", alternate, contact.URN)
	}
}

func TestResolveWhatsAppBothMiss(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}

	r, _ := New(gateway)
	_, err := r.Resolve(context.Background(), "whatsapp:5582955555555")
	if !errors.Is(err, contractx.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
	if len(gateway.lookups) != 2 {
		t.Fatalf("expected exactly two lookups, got %d", len(gateway.lookups))
	}
}

func TestResolveNonWhatsAppNoRetry(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}

	r, _ := New(gateway)
	_, err := r.Resolve(context.Background(), "telegram:@someuser")
	if !errors.Is(err, contractx.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
	if len(gateway.lookups) != 1 {
		t.Fatalf("expected a single lookup for non-whatsapp schemes, got %d", len(gateway.lookups))
	}
}

func TestResolveTransportErrorEscalates(t *testing.T) {
	t.Parallel()

	urn := contractx.URN("whatsapp:5582955555555")
	statusErr := &contractx.StatusError{Code: 503, Body: "unavailable"}
	gateway := &fakeGateway{errs: map[contractx.URN]error{urn: statusErr}}

	r, _ := New(gateway)
	_, err := r.Resolve(context.Background(), urn)

	var got *contractx.StatusError
	if !errors.As(err, &got) || got.Code != 503 {
		t.Fatalf("expected status error to pass through, got %v", err)
	}
	if len(gateway.lookups) != 1 {
		t.Fatalf("transport failure must not trigger the alternate lookup, got %d lookups", len(gateway.lookups))
	}
}

func TestAlternateAddressShape(t *testing.T) {
	t.Parallel()

	nine := contractx.URN("whatsapp:5582955555555")
	eight, ok := AlternateAddress(nine)
	if !ok {
		t.Fatal("expected an alternate for a 9-digit subscriber number")
	}
	if len(eight.Address()) != len(nine.Address())-1 {
		t.Fatalf("alternate of a 9-digit subscriber must have 8 digits: %s", eight)
	}

	// deriving again from the alternate returns to the original length class
	back, ok := AlternateAddress(eight)
	if !ok {
		t.Fatal("expected an alternate for an 8-digit subscriber number")
	}
	if len(back.Address()) != len(nine.Address()) {
		t.Fatalf("re-derived address must match the original digit-length class: %s", back)
	}

	if _, ok := AlternateAddress("whatsapp:5582"); ok {
		t.Fatal("expected no alternate for a truncated address")
	}
}
