package employees

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
	g := rg.Group("/employees")
	g.GET("", h.list)
	g.GET("/nine-box", h.nineBox)
	g.GET("/:id", h.get)
	g.PUT("/:id/rating", h.rate)
	g.PUT("/:id/profile", h.upsertProfile)
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context(), users.ActorFromContext(c))
	if err != nil {
		respond.FromError(c, err, "failed to list employees")
		return
	}
	respond.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	d, err := h.Svc.Get(c.Request.Context(), users.ActorFromContext(c), c.Param("id"))
	if err != nil {
		respond.FromError(c, err, "failed to load employee")
		return
	}
	respond.OK(c, d)
}

func (h *Handler) rate(c *gin.Context) {
	var in RatingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BindError(c, err)
		return
	}
	u, err := h.Svc.Rate(c.Request.Context(), users.ActorFromContext(c), c.Param("id"), in)
	if err != nil {
		respond.FromError(c, err, "failed to rate employee")
		return
	}
	respond.OK(c, u)
}

func (h *Handler) upsertProfile(c *gin.Context) {
	var in ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BindError(c, err)
		return
	}
	p, err := h.Svc.UpsertProfile(c.Request.Context(), users.ActorFromContext(c), c.Param("id"), in)
	if err != nil {
		respond.FromError(c, err, "failed to save employee profile")
		return
	}
	respond.OK(c, p)
}

func (h *Handler) nineBox(c *gin.Context) {
	out, err := h.Svc.NineBox(c.Request.Context(), users.ActorFromContext(c))
	if err != nil {
		respond.FromError(c, err, "failed to build nine-box")
		return
	}
	respond.OK(c, out)
}
