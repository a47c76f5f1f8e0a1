package chat

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID        uuid.UUID
	ChatID    uuid.UUID
	SenderID  uuid.UUID
	Content   string
	Read      bool
	CreatedAt time.Time
}

type Chat struct {
	ID              uuid.UUID
	Title           string
	SkillExchangeID *uuid.UUID
	Participants    []uuid.UUID
	LastMessage     *Message
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (c Chat) HasParticipant(id uuid.UUID) bool {
	for _, p := range c.Participants {
		if p == id {
			return true
		}
	}
	return false
}
