package authz

import (
	"errors"
	"testing"

	contractx "github.com/pushlivechat/flowstart/flow/contract"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		ctx        contractx.RequestContext
		wantReason string
	}{
		{
			name: "group conversation rejected",
			ctx: contractx.RequestContext{
				DirectMessage: false,
				CounterpartID: "bot-1",
				BotID:         "bot-1",
				Roles:         []string{"livechat-agent"},
			},
			wantReason: ReasonWrongConversation,
		},
		{
			name: "direct conversation with another user rejected",
			ctx: contractx.RequestContext{
				DirectMessage: true,
				CounterpartID: "user-2",
				BotID:         "bot-1",
				Roles:         []string{"livechat-agent"},
			},
			wantReason: ReasonWrongConversation,
		},
		{
			name: "missing bot identity rejected",
			ctx: contractx.RequestContext{
				DirectMessage: true,
				Roles:         []string{"livechat-agent"},
			},
			wantReason: ReasonWrongConversation,
		},
		{
			name: "non agent role rejected",
			ctx: contractx.RequestContext{
				DirectMessage: true,
				CounterpartID: "bot-1",
				BotID:         "bot-1",
				Roles:         []string{"user"},
			},
			wantReason: InsufficientRoleReason(DefaultRequiredRole),
		},
		{
			name: "direct conversation with bot and agent role accepted",
			ctx: contractx.RequestContext{
				DirectMessage: true,
				CounterpartID: "bot-1",
				BotID:         "bot-1",
				Roles:         []string{"user", "livechat-agent"},
			},
		},
	}

	gate := New()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := gate.Authorize(tc.ctx)
			if tc.wantReason == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var unauthorized *UnauthorizedError
			if !errors.As(err, &unauthorized) {
				t.Fatalf("expected UnauthorizedError, got %v", err)
			}
			if unauthorized.Reason != tc.wantReason {
				t.Fatalf("got reason %q, want %q", unauthorized.Reason, tc.wantReason)
			}
		})
	}
}

func TestAuthorizeCustomRole(t *testing.T) {
	t.Parallel()

	gate := New(WithRequiredRole("supervisor"))

	ctx := contractx.RequestContext{
		DirectMessage: true,
		CounterpartID: "bot-1",
		BotID:         "bot-1",
		Roles:         []string{"livechat-agent"},
	}
	err := gate.Authorize(ctx)
	if err == nil {
		t.Fatal("expected rejection without the custom role")
	}
	var unauthorized *UnauthorizedError
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
	if unauthorized.Reason != InsufficientRoleReason("supervisor") {
		t.Fatalf("reason must name the configured role, got %q", unauthorized.Reason)
	}

	ctx.Roles = []string{"supervisor"}
	if err := gate.Authorize(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
