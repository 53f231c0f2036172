package profiles

import (
	"github.com/gin-gonic/gin"

	"succession-backend/internal/shared/server/middleware"
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
	g := rg.Group("/success-profiles")
	g.GET("", h.list)
	g.GET("/:roleKey", h.get)
	g.PUT("/:roleKey", h.upsert)
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.FromError(c, err, "failed to list success profiles")
		return
	}
	respond.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	c.Set(middleware.RoleKeyKey, c.Param("roleKey"))
	p, err := h.Svc.Get(c.Request.Context(), c.Param("roleKey"))
	if err != nil {
		respond.FromError(c, err, "failed to load success profile")
		return
	}
	respond.OK(c, p)
}

func (h *Handler) upsert(c *gin.Context) {
	c.Set(middleware.RoleKeyKey, c.Param("roleKey"))
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BindError(c, err)
		return
	}
	p, err := h.Svc.Upsert(c.Request.Context(), users.ActorFromContext(c), c.Param("roleKey"), in)
	if err != nil {
		respond.FromError(c, err, "failed to save success profile")
		return
	}
	respond.OK(c, p)
}
