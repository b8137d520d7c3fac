// Package authz enforces who may trigger a flow start and from which
// conversational context. The gate is pure: it derives everything from the
// request context already in hand and performs no I/O, so nothing reaches
// the network before authorization passes.
package authz

import (
	"slices"
	"strings"

	contractx "github.com/pushlivechat/flowstart/flow/contract"
)

const DefaultRequiredRole = "livechat-agent"

const ReasonWrongConversation = "This command is available only when chatting with the App's bot user."

// InsufficientRoleReason renders the rejection for a requester missing the
// required role.
func InsufficientRoleReason(role string) string {
	return "This command is available only for users with the " + role + " role."
}

// UnauthorizedError carries the human-readable reason a request was
// rejected, distinguishing the wrong conversation from an insufficient role.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	return "unauthorized: " + e.Reason
}

type Option func(*Gate)

// WithRequiredRole overrides the role entitling a requester to operate the
// live-chat integration.
func WithRequiredRole(role string) Option {
	return func(g *Gate) {
		trimmed := strings.TrimSpace(role)
		if trimmed != "" {
			g.requiredRole = trimmed
		}
	}
}

type Gate struct {
	requiredRole string
}

func New(opts ...Option) *Gate {
	g := &Gate{requiredRole: DefaultRequiredRole}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Authorize accepts only the conjunction of a direct one-to-one
// conversation with the application's own bot user and a requester holding
// the agent role. Either failure yields *UnauthorizedError.
func (g *Gate) Authorize(rc contractx.RequestContext) error {
	if !rc.DirectMessage || rc.BotID == "" || rc.CounterpartID != rc.BotID {
		return &UnauthorizedError{Reason: ReasonWrongConversation}
	}
	if !slices.Contains(rc.Roles, g.requiredRole) {
		return &UnauthorizedError{Reason: InsufficientRoleReason(g.requiredRole)}
	}
	return nil
}
