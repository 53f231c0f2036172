package assessments

import (
	"net/http"

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
	g := rg.Group("/assessments", middleware.RequireMember())
	g.GET("/me", h.getMine)
	g.PUT("/me", h.upsertMine)
}

func (h *Handler) getMine(c *gin.Context) {
	a, err := h.Svc.GetMine(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.FromError(c, err, "failed to load assessment")
		return
	}
	respond.JSON(c, http.StatusOK, a)
}

func (h *Handler) upsertMine(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BindError(c, err)
		return
	}
	a, err := h.Svc.UpsertMine(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		respond.FromError(c, err, "failed to save assessment")
		return
	}
	respond.OK(c, a)
}
