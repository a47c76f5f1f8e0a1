package dto

import (
	"skillswap/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Level    string    `json:"level"`
	Tags     []string  `json:"tags"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return SkillResponse{
		ID:       s.ID,
		Name:     s.Name,
		Category: string(s.Category),
		Level:    string(s.Level),
		Tags:     tags,
	}
}

func NewSkillResponses(skills []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, NewSkillResponse(s))
	}
	return out
}
