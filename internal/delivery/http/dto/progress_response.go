package dto

import (
	"time"

	"skillswap/internal/domain/progress"

	"github.com/google/uuid"
)

type ProgressResponse struct {
	ID                 uuid.UUID            `json:"id"`
	SkillExchangeID    uuid.UUID            `json:"skill_exchange_id"`
	ProgressPercentage int                  `json:"progress_percentage"`
	Milestones         []progress.Milestone `json:"milestones"`
	Notes              string               `json:"notes"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

func NewProgressResponse(p progress.Progress) ProgressResponse {
	milestones := p.Milestones
	if milestones == nil {
		milestones = []progress.Milestone{}
	}
	return ProgressResponse{
		ID:                 p.ID,
		SkillExchangeID:    p.SkillExchangeID,
		ProgressPercentage: p.ProgressPercentage,
		Milestones:         milestones,
		Notes:              p.Notes,
		UpdatedAt:          p.UpdatedAt,
	}
}
