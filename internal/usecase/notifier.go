package usecase

import (
	"context"
	"log"

	"skillswap/internal/domain/notification"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

// Pusher delivers an event to a user's live websocket connections.
type Pusher interface {
	NotifyUser(n notification.Notification)
}

// Notifier persists notifications and pushes them to connected clients.
// Callers treat it as fire-and-forget: a failed insert is logged and
// swallowed so a notification hiccup never fails the triggering operation.
type Notifier struct {
	repo   repository.NotificationRepository
	pusher Pusher
	logger *log.Logger
}

func NewNotifier(repo repository.NotificationRepository, pusher Pusher, logger *log.Logger) *Notifier {
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{repo: repo, pusher: pusher, logger: logger}
}

func (n *Notifier) Notify(ctx context.Context, userID uuid.UUID, typ notification.Type, relatedID *uuid.UUID, message string) {
	if n == nil {
		return
	}
	row := notification.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      typ,
		RelatedID: relatedID,
		Message:   message,
	}
	if err := n.repo.Create(ctx, row); err != nil {
		n.logger.Printf("notification insert failed | user=%s type=%s err=%v", userID, typ, err)
		return
	}
	if n.pusher != nil {
		n.pusher.NotifyUser(row)
	}
}
