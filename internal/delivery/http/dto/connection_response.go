package dto

import (
	"time"

	"skillswap/internal/domain/connection"

	"github.com/google/uuid"
)

type ConnectionRequestResponse struct {
	ID                 uuid.UUID `json:"id"`
	FromUserID         uuid.UUID `json:"from_user_id"`
	ToUserID           uuid.UUID `json:"to_user_id"`
	Status             string    `json:"status"`
	Message            string    `json:"message"`
	RequesterWillLearn string    `json:"requester_will_learn"`
	RecipientWillLearn string    `json:"recipient_will_learn"`
	CreatedAt          time.Time `json:"created_at"`
}

func NewConnectionRequestResponse(r connection.Request) ConnectionRequestResponse {
	return ConnectionRequestResponse{
		ID:                 r.ID,
		FromUserID:         r.FromUserID,
		ToUserID:           r.ToUserID,
		Status:             string(r.Status),
		Message:            r.Message,
		RequesterWillLearn: r.ExchangeDetails.RequesterWillLearn,
		RecipientWillLearn: r.ExchangeDetails.RecipientWillLearn,
		CreatedAt:          r.CreatedAt,
	}
}

func NewConnectionRequestResponses(reqs []connection.Request) []ConnectionRequestResponse {
	out := make([]ConnectionRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, NewConnectionRequestResponse(r))
	}
	return out
}
