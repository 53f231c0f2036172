package gap

import (
	"net/http"
	"strings"

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
	g := rg.Group("/gap")
	g.POST("/analyze", h.analyze)
	g.POST("/plan", h.plan)
	g.POST("/skills", h.skills)
	g.POST("/sessions", h.startSession)
	g.GET("/sessions/:id", h.getSession)
	g.POST("/sessions/:id/answers", h.submitAnswers)
}

type analyzeRequest struct {
	TargetRoleKey string `json:"targetRoleKey"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	c.Set(middleware.RoleKeyKey, req.TargetRoleKey)
	res, err := h.Svc.Analyze(c.Request.Context(), users.ActorFromContext(c), req.TargetRoleKey)
	if err != nil {
		respond.FromError(c, err, "gap analysis failed")
		return
	}
	respond.OK(c, res)
}

func (h *Handler) plan(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	c.Set(middleware.RoleKeyKey, req.TargetRoleKey)
	p, err := h.Svc.CreatePlan(c.Request.Context(), users.ActorFromContext(c), req.TargetRoleKey)
	if err != nil {
		respond.FromError(c, err, "failed to create development plan")
		return
	}
	respond.Created(c, p)
}

func (h *Handler) skills(c *gin.Context) {
	var in SkillsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BindError(c, err)
		return
	}
	if strings.TrimSpace(in.TargetSkills) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "targetSkills is required", nil)
		return
	}
	respond.OK(c, CompareSkills(in))
}

func (h *Handler) startSession(c *gin.Context) {
	sess, err := h.Svc.StartSession(c.Request.Context(), users.ActorFromContext(c))
	if err != nil {
		respond.FromError(c, err, "failed to start gap analysis")
		return
	}
	respond.Created(c, sess)
}

func (h *Handler) getSession(c *gin.Context) {
	sess, err := h.Svc.GetSession(c.Request.Context(), users.ActorFromContext(c), c.Param("id"))
	if err != nil {
		respond.FromError(c, err, "failed to load gap analysis")
		return
	}
	respond.OK(c, sess)
}

func (h *Handler) submitAnswers(c *gin.Context) {
	var a Answers
	if err := c.ShouldBindJSON(&a); err != nil {
		respond.BindError(c, err)
		return
	}
	res, err := h.Svc.SubmitAnswers(c.Request.Context(), users.ActorFromContext(c), c.Param("id"), a)
	if err != nil {
		respond.FromError(c, err, "failed to submit answers")
		return
	}
	respond.OK(c, res)
}
