package command

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contractx "github.com/pushlivechat/flowstart/flow/contract"
)

// payload is the JSON the hosting chat shell forwards for one slash-command
// invocation, context already resolved on its side.
type payload struct {
	SenderUsername string            `json:"senderUsername" binding:"required"`
	DirectMessage  bool              `json:"directMessage"`
	CounterpartID  string            `json:"counterpartId"`
	BotID          string            `json:"botId"`
	Roles          []string          `json:"roles"`
	Args           []string          `json:"args"`
	Extra          map[string]string `json:"extra,omitempty"`
}

func (h *Handler) Register(router gin.IRouter) {
	router.POST("/command", h.handleCommand)
}

func (h *Handler) handleCommand(c *gin.Context) {
	var body payload
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply := h.Execute(c.Request.Context(), Request{
		Context: contractx.RequestContext{
			DirectMessage: body.DirectMessage,
			CounterpartID: body.CounterpartID,
			BotID:         body.BotID,
			Roles:         body.Roles,
		},
		SenderUsername: body.SenderUsername,
		Args:           body.Args,
		Extra:          body.Extra,
	})

	c.JSON(http.StatusOK, gin.H{"text": reply})
}
