// Package command is the chat-command entry surface: it parses the
// user-entered arguments, hands one flow-start request to the orchestrator
// and renders the outcome as a reply string for the hosting shell.
package command

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/pushlivechat/flowstart/flow/contract"
	nodex "github.com/pushlivechat/flowstart/flow/nodes"
	urnx "github.com/pushlivechat/flowstart/flow/urn"
)

const Name = "start-flow"

const (
	txtInvalidCommand = ":x: Invalid command format! Type `/" + Name + " help` to see instructions."
	txtGenericError   = ":x: An error occurred"
	txtStarted        = ":white_check_mark: The flow was successfully started"
	txtUsageInfo      = "StartFlow starts an automated conversation with a contact on behalf of an agent.\n" +
		"Available operations:\n\n" +
		"To see this help:                `/" + Name + " help`\n" +
		"To start the flow for a contact: `/" + Name + " start <phone-or-urn>   (e.g. /" + Name + " start +55 82 95555-5555)`\n" +
		"Or with an explicit channel:     `/" + Name + " <channel> <address>    (e.g. /" + Name + " telegram @someuser)`\n"
)

// Starter is the orchestrator surface the command depends on.
type Starter interface {
	StartFlow(ctx context.Context, in nodex.GraphInput) contractx.Outcome
}

// Notifier echoes progress back to the invoking user before the pipeline
// runs, the way the original shell notified ":desktop: /start-flow ...".
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Request is one command invocation as the hosting shell delivers it.
type Request struct {
	Context        contractx.RequestContext
	SenderUsername string
	Args           []string
	Extra          map[string]string
}

type Option func(*Handler)

func WithNotifier(n Notifier) Option {
	return func(h *Handler) {
		h.notifier = n
	}
}

type Handler struct {
	starter  Starter
	flowID   string
	notifier Notifier
}

func New(starter Starter, flowID string, opts ...Option) (*Handler, error) {
	if starter == nil {
		return nil, errors.New("flow starter is required")
	}
	if strings.TrimSpace(flowID) == "" {
		return nil, errors.New("flow id is required")
	}

	h := &Handler{starter: starter, flowID: strings.TrimSpace(flowID)}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

// Execute runs one command invocation and returns the reply text.
func (h *Handler) Execute(ctx context.Context, req Request) string {
	if len(req.Args) == 0 {
		return txtInvalidCommand
	}

	if req.Args[0] == "help" {
		return txtUsageInfo
	}

	scheme, rawAddress, ok := parseTarget(req.Args)
	if !ok {
		return txtInvalidCommand
	}

	h.notify(ctx, ":desktop: /"+Name+" "+strings.Join(req.Args, " "))

	outcome := h.starter.StartFlow(ctx, nodex.GraphInput{
		Context:       req.Context,
		AgentUsername: req.SenderUsername,
		Scheme:        scheme,
		RawAddress:    rawAddress,
		FlowID:        h.flowID,
		Extra:         req.Extra,
	})

	return RenderOutcome(outcome)
}

// parseTarget accepts `start <phone-or-urn>` and `<channel> <address>`. A
// bare phone number defaults to the whatsapp scheme. Shells split on
// whitespace, so a spaced phone number arrives as several args; everything
// after the operation word is the target and normalization strips the
// spaces back out.
func parseTarget(args []string) (scheme, rawAddress string, ok bool) {
	if len(args) < 2 {
		return "", "", false
	}

	target := strings.TrimSpace(strings.Join(args[1:], " "))
	if target == "" {
		return "", "", false
	}
	switch {
	case args[0] == "start":
		if urn, err := contractx.ParseURN(target); err == nil && urnx.Recognized(urn.Scheme()) {
			return urn.Scheme(), urn.Address(), true
		}
		return contractx.SchemeWhatsApp, target, true
	case urnx.Recognized(args[0]):
		return args[0], target, true
	default:
		return "", "", false
	}
}

// RenderOutcome maps an outcome to the user-visible reply. Remote and
// internal failures render generically; their detail is already logged by
// the pipeline.
func RenderOutcome(outcome contractx.Outcome) string {
	switch outcome.Kind {
	case contractx.OutcomeStarted:
		return txtStarted
	case contractx.OutcomeContactNotFound:
		return ":x: No contact was found for " + outcome.URN.String()
	case contractx.OutcomeUnauthorized:
		return ":exclamation: " + outcome.Reason
	case contractx.OutcomeMalformedInput:
		return ":x: Invalid contact address: " + outcome.Reason
	default:
		return txtGenericError
	}
}

func (h *Handler) notify(ctx context.Context, text string) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.Notify(ctx, text); err != nil {
		log.Warn().Err(err).Msg("notify user failed")
	}
}
