package contract

import "strings"

// URN is a scheme-qualified contact address of the form "scheme:address".
type URN string

const (
	SchemeWhatsApp = "whatsapp"
	SchemeTelegram = "telegram"
)

func NewURN(scheme, address string) URN {
	return URN(strings.ToLower(strings.TrimSpace(scheme)) + ":" + strings.TrimSpace(address))
}

// ParseURN validates the "scheme:address" shape and normalizes the scheme
// to lowercase. Both sides must be non-empty and the separator unique.
func ParseURN(raw string) (URN, error) {
	scheme, address, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || scheme == "" || address == "" || strings.Contains(address, ":") {
		return "", ErrInvalidURN
	}
	return URN(strings.ToLower(scheme) + ":" + address), nil
}

func (u URN) Scheme() string {
	scheme, _, _ := strings.Cut(string(u), ":")
	return scheme
}

func (u URN) Address() string {
	_, address, _ := strings.Cut(string(u), ":")
	return address
}

func (u URN) String() string {
	return string(u)
}

// Contact is a read-only projection of a remote contact record. It is never
// cached past the request that fetched it; the remote directory stays
// authoritative.
type Contact struct {
	URN  URN    `json:"urn"`
	Name string `json:"name,omitempty"`
}

// Agent is the live-chat operator on whose behalf a flow is started.
type Agent struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles,omitempty"`
}

// RequestContext carries the conversational context of the inbound request,
// already resolved by the hosting shell. Authorization derives from it alone,
// without any network call.
type RequestContext struct {
	// DirectMessage reports whether the request originated from a one-to-one
	// conversation (as opposed to a group or channel).
	DirectMessage bool
	// CounterpartID is the id of the other participant in that conversation.
	CounterpartID string
	// BotID is the id of the application's own bot user.
	BotID string
	// Roles is the requester's role set.
	Roles []string
}

// FlowStartRequest is built only after authorization and contact resolution
// both succeed.
type FlowStartRequest struct {
	Agent  Agent
	URN    URN
	FlowID string
	Extra  map[string]string
}
