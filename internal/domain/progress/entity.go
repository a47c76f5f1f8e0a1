package progress

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type Milestone struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Progress tracks how far a skill exchange has come. The percentage is
// always derived from the milestone list, never set directly.
type Progress struct {
	ID                 uuid.UUID
	SkillExchangeID    uuid.UUID
	ProgressPercentage int
	Milestones         []Milestone
	Notes              string
	UpdatedAt          time.Time
}

// Percentage computes round(100 * completed / total). Zero milestones means
// zero percent.
func Percentage(milestones []Milestone) int {
	if len(milestones) == 0 {
		return 0
	}
	completed := 0
	for _, m := range milestones {
		if m.Completed {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(milestones))))
}
