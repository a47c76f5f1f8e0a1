package dto

import (
	"time"

	"skillswap/internal/domain/user"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID            uuid.UUID       `json:"id"`
	Email         string          `json:"email"`
	DisplayName   string          `json:"display_name"`
	Bio           string          `json:"bio"`
	PhotoURL      string          `json:"photo_url"`
	Rating        float64         `json:"rating"`
	Skills        []SkillResponse `json:"skills"`
	DesiredSkills []SkillResponse `json:"desired_skills"`
	Connections   []uuid.UUID     `json:"connections"`
	LastActive    *time.Time      `json:"last_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewProfileResponse(p user.Profile) ProfileResponse {
	conns := p.Connections
	if conns == nil {
		conns = []uuid.UUID{}
	}
	return ProfileResponse{
		ID:            p.ID,
		Email:         p.Email,
		DisplayName:   p.DisplayName,
		Bio:           p.Bio,
		PhotoURL:      p.PhotoURL,
		Rating:        p.Rating,
		Skills:        NewSkillResponses(p.Skills),
		DesiredSkills: NewSkillResponses(p.DesiredSkills),
		Connections:   conns,
		LastActive:    p.LastActive,
		CreatedAt:     p.CreatedAt,
	}
}

func NewProfileResponses(profiles []user.Profile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, NewProfileResponse(p))
	}
	return out
}
