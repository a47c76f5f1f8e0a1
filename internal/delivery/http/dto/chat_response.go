package dto

import (
	"time"

	"skillswap/internal/domain/chat"

	"github.com/google/uuid"
)

type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	ChatID    uuid.UUID `json:"chat_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatResponse struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	SkillExchangeID *uuid.UUID       `json:"skill_exchange_id"`
	Participants    []uuid.UUID      `json:"participants"`
	LastMessage     *MessageResponse `json:"last_message"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func NewMessageResponse(m chat.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		ChatID:    m.ChatID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

func NewMessageResponses(msgs []chat.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, NewMessageResponse(m))
	}
	return out
}

func NewChatResponse(c chat.Chat) ChatResponse {
	participants := c.Participants
	if participants == nil {
		participants = []uuid.UUID{}
	}
	res := ChatResponse{
		ID:              c.ID,
		Title:           c.Title,
		SkillExchangeID: c.SkillExchangeID,
		Participants:    participants,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if c.LastMessage != nil {
		last := NewMessageResponse(*c.LastMessage)
		res.LastMessage = &last
	}
	return res
}

func NewChatResponses(chats []chat.Chat) []ChatResponse {
	out := make([]ChatResponse, 0, len(chats))
	for _, c := range chats {
		out = append(out, NewChatResponse(c))
	}
	return out
}
