package exchange

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PriorStatuses returns the statuses an exchange must currently hold for a
// transition into target to be legal. Transitions are applied as conditional
// updates keyed on these, so concurrent responders cannot double-apply one.
func PriorStatuses(target Status) []Status {
	switch target {
	case StatusInProgress:
		return []Status{StatusPending}
	case StatusCompleted:
		return []Status{StatusInProgress}
	case StatusCancelled:
		return []Status{StatusPending, StatusInProgress}
	default:
		return nil
	}
}

type Exchange struct {
	ID        uuid.UUID
	TeacherID uuid.UUID
	StudentID uuid.UUID
	SkillID   uuid.UUID
	Status    Status
	StartDate time.Time
	EndDate   *time.Time
	Rating    *float64
	Feedback  string
	RatedAt   *time.Time
	CreatedAt time.Time
}

// Role of a user within an exchange, used when listing.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
	RoleBoth    Role = "both"
)

func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleStudent || r == RoleBoth
}
