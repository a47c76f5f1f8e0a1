package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillswap/internal/domain/chat"
	"skillswap/internal/domain/notification"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

const maxMessageLength = 4000

type CreateChatInput struct {
	Title           string
	Participants    []uuid.UUID
	SkillExchangeID *uuid.UUID
}

type ChatUsecase interface {
	CreateChat(ctx context.Context, actorID uuid.UUID, in CreateChatInput) (chat.Chat, error)
	GetChat(ctx context.Context, actorID, chatID uuid.UUID) (chat.Chat, error)
	ListChats(ctx context.Context, actorID uuid.UUID) ([]chat.Chat, error)
	SendMessage(ctx context.Context, actorID, chatID uuid.UUID, content string) (chat.Message, error)
	ListMessages(ctx context.Context, actorID, chatID uuid.UUID, limit int) ([]chat.Message, error)
	MarkMessagesRead(ctx context.Context, actorID, chatID uuid.UUID) (int64, error)
}

type Chats struct {
	repo     repository.ChatRepository
	notifier *Notifier
}

func NewChatUsecase(repo repository.ChatRepository, notifier *Notifier) *Chats {
	return &Chats{repo: repo, notifier: notifier}
}

func (u *Chats) CreateChat(ctx context.Context, actorID uuid.UUID, in CreateChatInput) (chat.Chat, error) {
	participants := dedupeIDs(append([]uuid.UUID{actorID}, in.Participants...))
	if len(participants) < 2 {
		return chat.Chat{}, ErrInvalidInput
	}

	c := chat.Chat{
		ID:              uuid.New(),
		Title:           strings.TrimSpace(in.Title),
		SkillExchangeID: in.SkillExchangeID,
		Participants:    participants,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound), errors.Is(err, repository.ErrExchangeNotFound):
			return chat.Chat{}, ErrNotFound
		default:
			return chat.Chat{}, ErrInternal
		}
	}

	created, err := u.repo.GetByID(ctx, c.ID)
	if err != nil {
		return chat.Chat{}, ErrInternal
	}
	return created, nil
}

func (u *Chats) GetChat(ctx context.Context, actorID, chatID uuid.UUID) (chat.Chat, error) {
	c, err := u.repo.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			return chat.Chat{}, ErrNotFound
		}
		return chat.Chat{}, ErrInternal
	}
	if !c.HasParticipant(actorID) {
		return chat.Chat{}, ErrForbidden
	}
	return c, nil
}

func (u *Chats) ListChats(ctx context.Context, actorID uuid.UUID) ([]chat.Chat, error) {
	out, err := u.repo.ListForUser(ctx, actorID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Chats) SendMessage(ctx context.Context, actorID, chatID uuid.UUID, content string) (chat.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" || len(content) > maxMessageLength {
		return chat.Message{}, ErrInvalidInput
	}

	c, err := u.repo.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			return chat.Message{}, ErrNotFound
		}
		return chat.Message{}, ErrInternal
	}
	if !c.HasParticipant(actorID) {
		return chat.Message{}, ErrForbidden
	}

	msg := chat.Message{
		ID:        uuid.New(),
		ChatID:    chatID,
		SenderID:  actorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := u.repo.AddMessage(ctx, msg); err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			return chat.Message{}, ErrNotFound
		}
		return chat.Message{}, ErrInternal
	}

	for _, p := range c.Participants {
		if p == actorID {
			continue
		}
		u.notifier.Notify(ctx, p, notification.TypeSystem, &chatID, "New message in your chat")
	}

	return msg, nil
}

func (u *Chats) ListMessages(ctx context.Context, actorID, chatID uuid.UUID, limit int) ([]chat.Message, error) {
	if limit < 0 {
		return nil, ErrInvalidInput
	}

	ok, err := u.repo.IsParticipant(ctx, chatID, actorID)
	if err != nil {
		return nil, ErrInternal
	}
	if !ok {
		if _, gerr := u.repo.GetByID(ctx, chatID); errors.Is(gerr, repository.ErrChatNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrForbidden
	}

	out, err := u.repo.ListMessages(ctx, chatID, limit)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Chats) MarkMessagesRead(ctx context.Context, actorID, chatID uuid.UUID) (int64, error) {
	ok, err := u.repo.IsParticipant(ctx, chatID, actorID)
	if err != nil {
		return 0, ErrInternal
	}
	if !ok {
		if _, gerr := u.repo.GetByID(ctx, chatID); errors.Is(gerr, repository.ErrChatNotFound) {
			return 0, ErrNotFound
		}
		return 0, ErrForbidden
	}

	n, err := u.repo.MarkMessagesRead(ctx, chatID, actorID)
	if err != nil {
		return 0, ErrInternal
	}
	return n, nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
