package learning

import "time"

// Content types.
const (
	TypeCourse  = "course"
	TypeVideo   = "video"
	TypeArticle = "article"
)

// Progress statuses.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Achievement types. Legacy rows may carry an empty type.
const (
	AchievementBadge       = "badge"
	AchievementCertificate = "certificate"
	AchievementMilestone   = "milestone"
)

type Content struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Type            string   `json:"type"`
	DurationMinutes int      `json:"durationMinutes"`
	Competencies    []string `json:"competencies"`
	URL             string   `json:"url,omitempty"`
}

type Progress struct {
	UserID         string    `json:"userId"`
	ContentID      string    `json:"contentId"`
	Progress       float64   `json:"progress"`
	Completed      bool      `json:"completed"`
	Status         string    `json:"status"`
	LastAccessedAt time.Time `json:"lastAccessedAt"`
}

type Achievement struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	EarnedAt    time.Time `json:"earnedAt"`
}

type ProgressInput struct {
	Progress float64 `json:"progress"`
}

func statusFor(progress float64) string {
	switch {
	case progress >= 100:
		return StatusCompleted
	case progress > 0:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}

func validType(t string) bool {
	return t == TypeCourse || t == TypeVideo || t == TypeArticle
}
