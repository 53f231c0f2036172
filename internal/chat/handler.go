package chat

import (
	"github.com/gin-gonic/gin"

	"succession-backend/internal/shared/server/middleware"
	"succession-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts the chat endpoints. Guests may chat.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/chat/sessions")
	g.POST("", h.open)
	g.GET("/:id/messages", h.listMessages)
	g.POST("/:id/messages", h.send)
}

type openRequest struct {
	SessionKey string `json:"sessionKey"`
	Source     string `json:"source"`
}

func (h *Handler) open(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	sess, err := h.Svc.OpenSession(c.Request.Context(), middleware.UserIDFromContext(c), req.SessionKey, req.Source)
	if err != nil {
		respond.FromError(c, err, "failed to open chat session")
		return
	}
	c.Set(middleware.SessionIDKey, sess.ID)
	respond.OK(c, sess)
}

func (h *Handler) listMessages(c *gin.Context) {
	c.Set(middleware.SessionIDKey, c.Param("id"))
	msgs, err := h.Svc.ListMessages(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respond.FromError(c, err, "failed to list messages")
		return
	}
	respond.OK(c, msgs)
}

type sendRequest struct {
	Content string `json:"content"`
}

func (h *Handler) send(c *gin.Context) {
	c.Set(middleware.SessionIDKey, c.Param("id"))
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	res, reply, err := h.Svc.Send(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), req.Content)
	if err != nil {
		respond.FromError(c, err, "failed to send message")
		return
	}
	if reply.Intent != "" {
		c.Set(middleware.IntentKey, reply.Intent)
	}
	respond.OK(c, res)
}
