package analytics

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"succession-backend/internal/learning"
	"succession-backend/internal/plans"
	"succession-backend/internal/shared/apperr"
	"succession-backend/internal/users"
)

type PlanSource interface {
	ActivePlans(ctx context.Context, userID string) ([]plans.Plan, error)
	CountActive(ctx context.Context) (int, error)
}

type LearningSource interface {
	CountCompleted(ctx context.Context, userID string) (int, error)
	ListAchievements(ctx context.Context, userID string) ([]learning.Achievement, error)
}

type MemberSource interface {
	ListMembers(ctx context.Context) ([]users.User, error)
}

type Service struct {
	Plans    PlanSource
	Learning LearningSource
	Members  MemberSource
}

func NewService(p PlanSource, l LearningSource, m MemberSource) *Service {
	return &Service{Plans: p, Learning: l, Members: m}
}

// Dashboard gathers the actor's numbers and, for privileged actors, the
// organization-wide block. Anonymous callers get zeros.
func (s *Service) Dashboard(ctx context.Context, actor users.User) (Dashboard, error) {
	var out Dashboard
	if actor.ID == "" || actor.IsAnonymous {
		return out, nil
	}

	var (
		active       []plans.Plan
		achievements []learning.Achievement
		members      []users.User
		inDev        int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		active, err = s.Plans.ActivePlans(gctx, actor.ID)
		return err
	})
	g.Go(func() error {
		var err error
		out.Personal.CompletedLearning, err = s.Learning.CountCompleted(gctx, actor.ID)
		return err
	})
	g.Go(func() error {
		var err error
		achievements, err = s.Learning.ListAchievements(gctx, actor.ID)
		return err
	})
	if actor.IsPrivileged() {
		g.Go(func() error {
			var err error
			members, err = s.Members.ListMembers(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			inDev, err = s.Plans.CountActive(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	out.Personal.ActivePlans = len(active)
	out.Personal.Achievements = len(achievements)
	out.Personal.AvgProgress = averageProgress(active)

	if actor.IsPrivileged() {
		h := summarize(members)
		out.Organizational = &Organizational{
			TotalEmployees:   h.Total,
			HighPotential:    h.HighPotential,
			ReadyNow:         h.ReadyNow,
			InDevelopment:    inDev,
			SuccessionHealth: h.HealthScore,
		}
	}
	return out, nil
}

// Pipeline reports succession health per department. Privileged only.
func (s *Service) Pipeline(ctx context.Context, actor users.User) ([]DepartmentHealth, error) {
	if !actor.IsPrivileged() {
		return nil, apperr.Authorization("Unauthorized")
	}
	members, err := s.Members.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	var order []string
	byDept := make(map[string][]users.User)
	for _, u := range members {
		if u.Department == "" {
			continue
		}
		if _, seen := byDept[u.Department]; !seen {
			order = append(order, u.Department)
		}
		byDept[u.Department] = append(byDept[u.Department], u)
	}
	out := make([]DepartmentHealth, 0, len(order))
	for _, dept := range order {
		h := summarize(byDept[dept])
		h.Department = dept
		out = append(out, h)
	}
	return out, nil
}

// averageProgress averages the rounded per-plan percentages; plans without
// activities count as 0.
func averageProgress(active []plans.Plan) int {
	if len(active) == 0 {
		return 0
	}
	sum := 0
	for _, p := range active {
		sum += p.ProgressPercent()
	}
	return roundHalfUp(float64(sum) / float64(len(active)))
}

func summarize(members []users.User) DepartmentHealth {
	h := DepartmentHealth{Total: len(members)}
	for _, u := range members {
		if u.Potential == users.LevelHigh {
			h.HighPotential++
		}
		if u.Readiness() >= readyNowThreshold {
			h.ReadyNow++
		}
	}
	h.HealthScore = roundHalfUp(float64(h.ReadyNow) / math.Max(float64(h.Total), 1) * 100)
	return h
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
