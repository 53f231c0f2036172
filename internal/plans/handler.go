package plans

import (
	"net/http"
	"strconv"

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
	g := rg.Group("/plans")
	g.GET("", h.list)
	g.GET("/mine", h.listMine)
	g.POST("", h.create)
	g.POST("/from-learning", h.fromLearning)
	g.PATCH("/:id/activities/:index", h.setActivity)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Svc.ListForUser(c.Request.Context(), users.ActorFromContext(c), c.Query("userId"))
	if err != nil {
		respond.FromError(c, err, "failed to list plans")
		return
	}
	respond.OK(c, out)
}

func (h *Handler) listMine(c *gin.Context) {
	out, err := h.Svc.ListMine(c.Request.Context(), users.ActorFromContext(c))
	if err != nil {
		respond.FromError(c, err, "failed to list plans")
		return
	}
	respond.OK(c, out)
}

func (h *Handler) create(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BindError(c, err)
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), users.ActorFromContext(c), in)
	if err != nil {
		respond.FromError(c, err, "failed to create plan")
		return
	}
	respond.Created(c, p)
}

func (h *Handler) fromLearning(c *gin.Context) {
	var in LearningInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BindError(c, err)
		return
	}
	p, created, err := h.Svc.CreateFromLearning(c.Request.Context(), users.ActorFromContext(c), in)
	if err != nil {
		respond.FromError(c, err, "failed to create plan")
		return
	}
	if created {
		respond.Created(c, p)
		return
	}
	respond.OK(c, p)
}

type activityRequest struct {
	Done *bool `json:"done"`
}

func (h *Handler) setActivity(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid activityIndex", nil)
		return
	}
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	if req.Done == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "done is required", nil)
		return
	}
	p, err := h.Svc.SetActivityDone(c.Request.Context(), users.ActorFromContext(c), c.Param("id"), index, *req.Done)
	if err != nil {
		respond.FromError(c, err, "failed to update activity")
		return
	}
	respond.OK(c, p)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), users.ActorFromContext(c), c.Param("id")); err != nil {
		respond.FromError(c, err, "failed to delete plan")
		return
	}
	c.Status(http.StatusNoContent)
}
