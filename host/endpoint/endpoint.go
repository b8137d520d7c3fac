// Package endpoint is the HTTP entry surface: an identity-carrying cookie
// names the agent, the contact URN and optional extras arrive as query
// parameters, and the outcome maps to a redirect or a JSON error.
package endpoint

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	contractx "github.com/pushlivechat/flowstart/flow/contract"
	nodex "github.com/pushlivechat/flowstart/flow/nodes"
)

// CookieUserID is the identity cookie set by the hosting chat platform.
const CookieUserID = "rc_uid"

const queryContactURN = "contactUrn"

type Config struct {
	FlowID string
	// BotID is the application's own bot user; endpoint requests are
	// treated as direct interactions with it.
	BotID string
	// SuccessURL is where a successful start redirects to.
	SuccessURL string
}

type Handler struct {
	starter   Starter
	directory contractx.AgentDirectory
	cfg       Config
}

// Starter is the orchestrator surface the endpoint depends on.
type Starter interface {
	StartFlow(ctx context.Context, in nodex.GraphInput) contractx.Outcome
}

func New(starter Starter, directory contractx.AgentDirectory, cfg Config) (*Handler, error) {
	if starter == nil {
		return nil, errors.New("flow starter is required")
	}
	if directory == nil {
		return nil, errors.New("agent directory is required")
	}
	if strings.TrimSpace(cfg.FlowID) == "" {
		return nil, errors.New("flow id is required")
	}
	if strings.TrimSpace(cfg.BotID) == "" {
		return nil, errors.New("bot id is required")
	}
	if strings.TrimSpace(cfg.SuccessURL) == "" {
		cfg.SuccessURL = "/"
	}
	return &Handler{starter: starter, directory: directory, cfg: cfg}, nil
}

func (h *Handler) Register(router gin.IRouter) {
	router.GET("/start-flow", h.StartFlow)
}

func (h *Handler) StartFlow(c *gin.Context) {
	userID, err := c.Cookie(CookieUserID)
	if err != nil || strings.TrimSpace(userID) == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing " + CookieUserID + " cookie"})
		return
	}

	rawURN := c.Query(queryContactURN)
	urn, err := contractx.ParseURN(rawURN)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": queryContactURN + " must have the form scheme:address"})
		return
	}

	// The request context is synthesized here: an authenticated endpoint
	// call is a direct interaction with the bot, and the requester's roles
	// come from the directory record the cookie names.
	agent, err := h.directory.AgentByID(c.Request.Context(), strings.TrimSpace(userID))
	if err != nil {
		if errors.Is(err, contractx.ErrAgentNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown agent"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not resolve agent"})
		return
	}

	outcome := h.starter.StartFlow(c.Request.Context(), nodex.GraphInput{
		Context: contractx.RequestContext{
			DirectMessage: true,
			CounterpartID: h.cfg.BotID,
			BotID:         h.cfg.BotID,
			Roles:         agent.Roles,
		},
		AgentID:    agent.ID,
		Scheme:     urn.Scheme(),
		RawAddress: urn.Address(),
		FlowID:     h.cfg.FlowID,
		Extra:      extraParams(c),
	})

	h.respond(c, outcome)
}

func (h *Handler) respond(c *gin.Context, outcome contractx.Outcome) {
	switch outcome.Kind {
	case contractx.OutcomeStarted:
		c.Redirect(http.StatusFound, h.cfg.SuccessURL)
	case contractx.OutcomeMalformedInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": outcome.Reason})
	case contractx.OutcomeUnauthorized:
		c.JSON(http.StatusForbidden, gin.H{"error": outcome.Reason})
	case contractx.OutcomeContactNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "no contact found for " + outcome.URN.String()})
	default:
		status := outcome.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": "could not start flow"})
	}
}

// extraParams forwards every query parameter except the contact URN to the
// remote flow unchanged.
func extraParams(c *gin.Context) map[string]string {
	values := c.Request.URL.Query()
	if len(values) <= 1 {
		return nil
	}

	extra := make(map[string]string, len(values)-1)
	for key, vals := range values {
		if key == queryContactURN || len(vals) == 0 {
			continue
		}
		extra[key] = vals[0]
	}
	if len(extra) == 0 {
		return nil
	}
	return extra
}
