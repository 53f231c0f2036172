package analytics

import (
	"github.com/gin-gonic/gin"

	"succession-backend/internal/shared/server/respond"
	"succession-backend/internal/users"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes expects rg to run users.Handler.ResolveActor.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/analytics")
	g.GET("/dashboard", h.dashboard)
	g.GET("/pipeline", h.pipeline)
}

func (h *Handler) dashboard(c *gin.Context) {
	d, err := h.Svc.Dashboard(c.Request.Context(), users.ActorFromContext(c))
	if err != nil {
		respond.FromError(c, err, "failed to load dashboard")
		return
	}
	respond.OK(c, d)
}

func (h *Handler) pipeline(c *gin.Context) {
	out, err := h.Svc.Pipeline(c.Request.Context(), users.ActorFromContext(c))
	if err != nil {
		respond.FromError(c, err, "failed to load pipeline")
		return
	}
	respond.OK(c, out)
}
