package usecase

import (
	"context"
	"errors"

	"skillswap/internal/domain/notification"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type NotificationUsecase interface {
	List(ctx context.Context, actorID uuid.UUID, unreadOnly bool) ([]notification.Notification, error)
	MarkRead(ctx context.Context, actorID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, actorID uuid.UUID) (int64, error)
}

type Notifications struct {
	repo repository.NotificationRepository
}

func NewNotificationUsecase(repo repository.NotificationRepository) *Notifications {
	return &Notifications{repo: repo}
}

func (u *Notifications) List(ctx context.Context, actorID uuid.UUID, unreadOnly bool) ([]notification.Notification, error) {
	out, err := u.repo.ListForUser(ctx, actorID, unreadOnly)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Notifications) MarkRead(ctx context.Context, actorID, notificationID uuid.UUID) error {
	if err := u.repo.MarkRead(ctx, notificationID, actorID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Notifications) MarkAllRead(ctx context.Context, actorID uuid.UUID) (int64, error) {
	n, err := u.repo.MarkAllRead(ctx, actorID)
	if err != nil {
		return 0, ErrInternal
	}
	return n, nil
}
