package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestChatUsecase_CreateChat_NeedsTwoParticipants(t *testing.T) {
	uc := NewChatUsecase(newFakeChatRepo(), newTestNotifier(&fakeNotificationRepo{}))

	me := uuid.New()
	if _, err := uc.CreateChat(context.Background(), me, CreateChatInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for solo chat, got %v", err)
	}
	// The actor listed again among participants still counts once.
	if _, err := uc.CreateChat(context.Background(), me, CreateChatInput{Participants: []uuid.UUID{me}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicated actor, got %v", err)
	}
}

func TestChatUsecase_SendMessage_ParticipantsOnly(t *testing.T) {
	repo := newFakeChatRepo()
	notifs := &fakeNotificationRepo{}
	uc := NewChatUsecase(repo, newTestNotifier(notifs))

	a, b := uuid.New(), uuid.New()
	created, err := uc.CreateChat(context.Background(), a, CreateChatInput{Participants: []uuid.UUID{b}, Title: "Go lessons"})
	if err != nil {
		t.Fatalf("create chat: %v", err)
	}

	if _, err := uc.SendMessage(context.Background(), uuid.New(), created.ID, "hi"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for outsider, got %v", err)
	}
	if _, err := uc.SendMessage(context.Background(), a, created.ID, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank message, got %v", err)
	}
	if _, err := uc.SendMessage(context.Background(), a, created.ID, strings.Repeat("x", maxMessageLength+1)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for oversized message, got %v", err)
	}

	msg, err := uc.SendMessage(context.Background(), a, created.ID, "hello")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.SenderID != a || msg.Content != "hello" {
		t.Fatalf("unexpected message %+v", msg)
	}

	// Fan-out notifies the other participant, not the sender.
	if got := notifs.sentTo(b); len(got) != 1 {
		t.Fatalf("expected 1 notification to b, got %d", len(got))
	}
	if got := notifs.sentTo(a); len(got) != 0 {
		t.Fatalf("sender must not be notified, got %d", len(got))
	}
}

func TestChatUsecase_MarkMessagesRead_OnlyOthersMessages(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewChatUsecase(repo, newTestNotifier(&fakeNotificationRepo{}))

	a, b := uuid.New(), uuid.New()
	created, err := uc.CreateChat(context.Background(), a, CreateChatInput{Participants: []uuid.UUID{b}})
	if err != nil {
		t.Fatalf("create chat: %v", err)
	}

	for _, m := range []struct {
		sender  uuid.UUID
		content string
	}{{a, "one"}, {b, "two"}, {b, "three"}} {
		if _, err := uc.SendMessage(context.Background(), m.sender, created.ID, m.content); err != nil {
			t.Fatalf("send %q: %v", m.content, err)
		}
	}

	n, err := uc.MarkMessagesRead(context.Background(), a, created.ID)
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 messages marked read, got %d", n)
	}
}

func TestChatUsecase_ListMessages_UnknownChat(t *testing.T) {
	uc := NewChatUsecase(newFakeChatRepo(), newTestNotifier(&fakeNotificationRepo{}))

	_, err := uc.ListMessages(context.Background(), uuid.New(), uuid.New(), 0)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
