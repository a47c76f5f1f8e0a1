package user

import (
	"time"

	"github.com/google/uuid"

	"skillswap/internal/domain/connection"
	"skillswap/internal/domain/skill"
)

// Account is the credential-bearing record behind a profile.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the aggregate the discovery filter and the lifecycles operate
// on: identity, both skill collections, connections and incoming pending
// requests.
type Profile struct {
	ID            uuid.UUID
	Email         string
	DisplayName   string
	Bio           string
	PhotoURL      string
	Rating        float64
	Skills        []skill.Skill
	DesiredSkills []skill.Skill
	Connections   []uuid.UUID
	// PendingRequests holds still-pending requests addressed to this user.
	PendingRequests []connection.Request
	LastActive      *time.Time
	CreatedAt       time.Time
}

func (p Profile) IsConnectedTo(id uuid.UUID) bool {
	for _, c := range p.Connections {
		if c == id {
			return true
		}
	}
	return false
}
