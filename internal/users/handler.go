package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"succession-backend/internal/shared/server/middleware"
	"succession-backend/internal/shared/server/respond"
)

const actorKey = "actor"

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	me := rg.Group("/me", middleware.RequireMember(), h.ResolveActor())
	me.GET("", h.me)
	me.PATCH("", h.updateMe)
}

// ResolveActor loads the stored user behind the request identity.
func (h *Handler) ResolveActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(actorKey); ok {
			c.Next()
			return
		}
		user, err := h.Svc.Resolve(c.Request.Context(), middleware.IdentityFromContext(c))
		if err != nil {
			respond.FromError(c, err, "failed to load user")
			return
		}
		c.Set(actorKey, user)
		c.Next()
	}
}

// ActorFromContext returns the user stored by ResolveActor.
func ActorFromContext(c *gin.Context) User {
	if c == nil {
		return User{}
	}
	val, _ := c.Get(actorKey)
	if u, ok := val.(User); ok {
		return u
	}
	return User{}
}

func (h *Handler) me(c *gin.Context) {
	respond.OK(c, ActorFromContext(c))
}

func (h *Handler) updateMe(c *gin.Context) {
	var patch ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.BindError(c, err)
		return
	}
	user, err := h.Svc.UpdateProfile(c.Request.Context(), ActorFromContext(c), patch)
	if err != nil {
		respond.FromError(c, err, "failed to update profile")
		return
	}
	if user.CurrentCourses == nil {
		user.CurrentCourses = []string{}
	}
	c.Set(actorKey, user)
	respond.JSON(c, http.StatusOK, user)
}
