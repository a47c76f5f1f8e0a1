package connection

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// ExchangeDetails carries the skill-exchange intent attached to a request.
type ExchangeDetails struct {
	RequesterWillLearn string
	RecipientWillLearn string
}

type Request struct {
	ID              uuid.UUID
	FromUserID      uuid.UUID
	ToUserID        uuid.UUID
	Status          Status
	Message         string
	ExchangeDetails ExchangeDetails
	CreatedAt       time.Time
}
