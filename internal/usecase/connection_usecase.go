package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/domain/connection"
	"skillswap/internal/domain/notification"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

// ConnectionStatus describes the relationship between two users as seen
// from the acting user's side.
type ConnectionStatus string

const (
	ConnectionStatusConnected ConnectionStatus = "connected"
	ConnectionStatusPending   ConnectionStatus = "pending"
	ConnectionStatusReceived  ConnectionStatus = "received"
	ConnectionStatusNone      ConnectionStatus = "none"
)

type SendRequestInput struct {
	ToUserID           uuid.UUID
	Message            string
	RequesterWillLearn string
	RecipientWillLearn string
}

type ConnectionUsecase interface {
	SendRequest(ctx context.Context, actorID uuid.UUID, in SendRequestInput) (connection.Request, error)
	Respond(ctx context.Context, actorID, requestID uuid.UUID, accept bool) (connection.Request, error)
	ListIncomingRequests(ctx context.Context, actorID uuid.UUID, pendingOnly bool) ([]connection.Request, error)
	ListConnections(ctx context.Context, actorID uuid.UUID) ([]uuid.UUID, error)
	StatusWith(ctx context.Context, actorID, otherID uuid.UUID) (ConnectionStatus, error)
}

type Connections struct {
	repo     repository.ConnectionRepository
	users    repository.UserRepository
	notifier *Notifier
	cache    DiscoveryCache
}

func NewConnectionUsecase(repo repository.ConnectionRepository, users repository.UserRepository, notifier *Notifier, cache DiscoveryCache) *Connections {
	return &Connections{repo: repo, users: users, notifier: notifier, cache: cache}
}

func (u *Connections) SendRequest(ctx context.Context, actorID uuid.UUID, in SendRequestInput) (connection.Request, error) {
	if in.ToUserID == uuid.Nil {
		return connection.Request{}, ErrInvalidInput
	}
	if in.ToUserID == actorID {
		return connection.Request{}, ErrInvalidInput
	}

	connected, err := u.repo.AreConnected(ctx, actorID, in.ToUserID)
	if err != nil {
		return connection.Request{}, ErrInternal
	}
	if connected {
		return connection.Request{}, ErrConflict
	}

	pending, err := u.repo.HasPendingBetween(ctx, actorID, in.ToUserID)
	if err != nil {
		return connection.Request{}, ErrInternal
	}
	if pending {
		return connection.Request{}, ErrConflict
	}

	req := connection.Request{
		ID:         uuid.New(),
		FromUserID: actorID,
		ToUserID:   in.ToUserID,
		Status:     connection.StatusPending,
		Message:    strings.TrimSpace(in.Message),
		ExchangeDetails: connection.ExchangeDetails{
			RequesterWillLearn: strings.TrimSpace(in.RequesterWillLearn),
			RecipientWillLearn: strings.TrimSpace(in.RecipientWillLearn),
		},
	}
	if err := u.repo.CreateRequest(ctx, req); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRequest):
			return connection.Request{}, ErrConflict
		case errors.Is(err, repository.ErrUserNotFound):
			return connection.Request{}, ErrNotFound
		default:
			return connection.Request{}, ErrInternal
		}
	}

	invalidateDiscovery(ctx, u.cache)

	sender, err := u.users.GetProfile(ctx, actorID)
	senderName := "Someone"
	if err == nil {
		senderName = sender.DisplayName
	}
	u.notifier.Notify(ctx, in.ToUserID, notification.TypeConnectionRequest, &req.ID,
		senderName+" wants to connect with you")

	return req, nil
}

func (u *Connections) Respond(ctx context.Context, actorID, requestID uuid.UUID, accept bool) (connection.Request, error) {
	current, err := u.repo.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return connection.Request{}, ErrNotFound
		}
		return connection.Request{}, ErrInternal
	}
	if current.ToUserID != actorID {
		return connection.Request{}, ErrForbidden
	}

	var resolved connection.Request
	if accept {
		resolved, err = u.repo.Accept(ctx, requestID)
	} else {
		resolved, err = u.repo.Reject(ctx, requestID)
	}
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRequestNotFound):
			return connection.Request{}, ErrNotFound
		case errors.Is(err, repository.ErrRequestNotPending):
			return connection.Request{}, ErrConflict
		default:
			return connection.Request{}, ErrInternal
		}
	}

	invalidateDiscovery(ctx, u.cache)

	recipient, perr := u.users.GetProfile(ctx, actorID)
	recipientName := "Someone"
	if perr == nil {
		recipientName = recipient.DisplayName
	}
	if accept {
		u.notifier.Notify(ctx, resolved.FromUserID, notification.TypeConnectionAccepted, &resolved.ID,
			recipientName+" accepted your connection request")
	} else {
		u.notifier.Notify(ctx, resolved.FromUserID, notification.TypeConnectionRejected, &resolved.ID,
			recipientName+" declined your connection request")
	}

	return resolved, nil
}

func (u *Connections) ListIncomingRequests(ctx context.Context, actorID uuid.UUID, pendingOnly bool) ([]connection.Request, error) {
	out, err := u.repo.ListIncomingRequests(ctx, actorID, pendingOnly)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Connections) ListConnections(ctx context.Context, actorID uuid.UUID) ([]uuid.UUID, error) {
	out, err := u.repo.ListConnections(ctx, actorID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Connections) StatusWith(ctx context.Context, actorID, otherID uuid.UUID) (ConnectionStatus, error) {
	if actorID == otherID {
		return "", ErrInvalidInput
	}

	connected, err := u.repo.AreConnected(ctx, actorID, otherID)
	if err != nil {
		return "", ErrInternal
	}
	if connected {
		return ConnectionStatusConnected, nil
	}

	// Distinguish who initiated the still-open request.
	incoming, err := u.repo.ListIncomingRequests(ctx, actorID, true)
	if err != nil {
		return "", ErrInternal
	}
	for _, req := range incoming {
		if req.FromUserID == otherID {
			return ConnectionStatusReceived, nil
		}
	}

	pending, err := u.repo.HasPendingBetween(ctx, actorID, otherID)
	if err != nil {
		return "", ErrInternal
	}
	if pending {
		return ConnectionStatusPending, nil
	}
	return ConnectionStatusNone, nil
}
