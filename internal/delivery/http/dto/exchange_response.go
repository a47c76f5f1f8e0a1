package dto

import (
	"time"

	"skillswap/internal/domain/exchange"

	"github.com/google/uuid"
)

type ExchangeResponse struct {
	ID        uuid.UUID  `json:"id"`
	TeacherID uuid.UUID  `json:"teacher_id"`
	StudentID uuid.UUID  `json:"student_id"`
	SkillID   uuid.UUID  `json:"skill_id"`
	Status    string     `json:"status"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Rating    *float64   `json:"rating"`
	Feedback  string     `json:"feedback"`
	RatedAt   *time.Time `json:"rated_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewExchangeResponse(ex exchange.Exchange) ExchangeResponse {
	return ExchangeResponse{
		ID:        ex.ID,
		TeacherID: ex.TeacherID,
		StudentID: ex.StudentID,
		SkillID:   ex.SkillID,
		Status:    string(ex.Status),
		StartDate: ex.StartDate,
		EndDate:   ex.EndDate,
		Rating:    ex.Rating,
		Feedback:  ex.Feedback,
		RatedAt:   ex.RatedAt,
		CreatedAt: ex.CreatedAt,
	}
}

func NewExchangeResponses(exs []exchange.Exchange) []ExchangeResponse {
	out := make([]ExchangeResponse, 0, len(exs))
	for _, ex := range exs {
		out = append(out, NewExchangeResponse(ex))
	}
	return out
}
