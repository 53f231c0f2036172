package plans

import (
	"math"
	"time"
)

// Plan statuses. The empty status is tolerated for legacy rows.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusPaused    = "paused"
	StatusSelected  = "selected"
)

// Plan sources.
const (
	SourceManual   = "manual"
	SourceGap      = "gap"
	SourceLearning = "learning"
)

type Activity struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
}

type Plan struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Activities  []Activity `json:"activities"`
	// Progress is the completed share of activities in percent, kept in sync on every write.
	Progress   int       `json:"progress"`
	SourceType string    `json:"sourceType,omitempty"`
	SourceRef  string    `json:"sourceRef,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ProgressPercent derives progress from activities; a plan without activities is at 0.
func (p Plan) ProgressPercent() int {
	if len(p.Activities) == 0 {
		return 0
	}
	done := 0
	for _, a := range p.Activities {
		if a.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(p.Activities)) * 100))
}

type ActivityInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Done        *bool  `json:"done"`
	Completed   *bool  `json:"completed"`
}

func (in ActivityInput) completed() bool {
	if in.Done != nil {
		return *in.Done
	}
	return in.Completed != nil && *in.Completed
}

// CreateInput creates a plan; UserID defaults to the caller.
type CreateInput struct {
	UserID      string          `json:"userId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Activities  []ActivityInput `json:"activities"`
}

type LearningInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Href        string `json:"href"`
}

// starterActivities seed a plan created from a learning item.
var starterActivities = []string{
	"Open and review the document",
	"Note 3 key takeaways",
	"Propose one practice task",
}

func validStatus(s string) bool {
	switch s {
	case StatusActive, StatusCompleted, StatusPaused, StatusSelected, "":
		return true
	}
	return false
}
