package learning

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/learning")
	g.GET("/content", h.listContent)
	g.GET("/progress", h.listProgress)
	g.PUT("/progress/:contentId", h.updateProgress)
	rg.GET("/achievements", h.listAchievements)
}

func (h *Handler) listContent(c *gin.Context) {
	out, err := h.Svc.ListContent(c.Request.Context(), c.Query("competency"))
	if err != nil {
		respond.FromError(c, err, "failed to list learning content")
		return
	}
	respond.OK(c, out)
}

func (h *Handler) listProgress(c *gin.Context) {
	out, err := h.Svc.ListProgress(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.FromError(c, err, "failed to list learning progress")
		return
	}
	respond.OK(c, out)
}

func (h *Handler) updateProgress(c *gin.Context) {
	var in ProgressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BindError(c, err)
		return
	}
	p, err := h.Svc.UpdateProgress(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("contentId"), in)
	if err != nil {
		respond.FromError(c, err, "failed to update learning progress")
		return
	}
	respond.OK(c, p)
}

func (h *Handler) listAchievements(c *gin.Context) {
	out, err := h.Svc.ListAchievements(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.FromError(c, err, "failed to list achievements")
		return
	}
	respond.OK(c, out)
}
