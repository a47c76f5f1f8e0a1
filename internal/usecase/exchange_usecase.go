package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"skillswap/internal/domain/chat"
	"skillswap/internal/domain/exchange"
	"skillswap/internal/domain/notification"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type CreateExchangeInput struct {
	TeacherID uuid.UUID
	StudentID uuid.UUID
	SkillID   uuid.UUID
}

type RateExchangeInput struct {
	Rating   float64
	Feedback string
}

type ExchangeUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, in CreateExchangeInput) (exchange.Exchange, error)
	Transition(ctx context.Context, actorID, exchangeID uuid.UUID, target exchange.Status) (exchange.Exchange, error)
	Rate(ctx context.Context, actorID, exchangeID uuid.UUID, in RateExchangeInput) (exchange.Exchange, error)
	Get(ctx context.Context, actorID, exchangeID uuid.UUID) (exchange.Exchange, error)
	ListForUser(ctx context.Context, actorID uuid.UUID, role exchange.Role, status exchange.Status) ([]exchange.Exchange, error)
}

type Exchanges struct {
	repo        repository.ExchangeRepository
	connections repository.ConnectionRepository
	users       repository.UserRepository
	chats       repository.ChatRepository
	notifier    *Notifier
	logger      *log.Logger
}

func NewExchangeUsecase(
	repo repository.ExchangeRepository,
	connections repository.ConnectionRepository,
	users repository.UserRepository,
	chats repository.ChatRepository,
	notifier *Notifier,
	logger *log.Logger,
) *Exchanges {
	if logger == nil {
		logger = log.Default()
	}
	return &Exchanges{
		repo:        repo,
		connections: connections,
		users:       users,
		chats:       chats,
		notifier:    notifier,
		logger:      logger,
	}
}

func (u *Exchanges) Create(ctx context.Context, actorID uuid.UUID, in CreateExchangeInput) (exchange.Exchange, error) {
	if in.TeacherID == uuid.Nil || in.StudentID == uuid.Nil || in.SkillID == uuid.Nil {
		return exchange.Exchange{}, ErrInvalidInput
	}
	if in.TeacherID == in.StudentID {
		return exchange.Exchange{}, ErrInvalidInput
	}
	if actorID != in.TeacherID && actorID != in.StudentID {
		return exchange.Exchange{}, ErrForbidden
	}

	connected, err := u.connections.AreConnected(ctx, in.TeacherID, in.StudentID)
	if err != nil {
		return exchange.Exchange{}, ErrInternal
	}
	if !connected {
		return exchange.Exchange{}, ErrConflict
	}

	ex := exchange.Exchange{
		ID:        uuid.New(),
		TeacherID: in.TeacherID,
		StudentID: in.StudentID,
		SkillID:   in.SkillID,
		Status:    exchange.StatusPending,
	}
	if err := u.repo.Create(ctx, ex); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return exchange.Exchange{}, ErrNotFound
		}
		return exchange.Exchange{}, ErrInternal
	}

	created, err := u.repo.GetByID(ctx, ex.ID)
	if err != nil {
		return exchange.Exchange{}, ErrInternal
	}

	other := in.TeacherID
	if actorID == in.TeacherID {
		other = in.StudentID
	}
	u.notifier.Notify(ctx, other, notification.TypeSkillExchange, &created.ID,
		"A new skill exchange was proposed with you")

	return created, nil
}

func (u *Exchanges) Transition(ctx context.Context, actorID, exchangeID uuid.UUID, target exchange.Status) (exchange.Exchange, error) {
	prior := exchange.PriorStatuses(target)
	if prior == nil {
		return exchange.Exchange{}, ErrInvalidInput
	}

	current, err := u.repo.GetByID(ctx, exchangeID)
	if err != nil {
		if errors.Is(err, repository.ErrExchangeNotFound) {
			return exchange.Exchange{}, ErrNotFound
		}
		return exchange.Exchange{}, ErrInternal
	}
	if actorID != current.TeacherID && actorID != current.StudentID {
		return exchange.Exchange{}, ErrForbidden
	}

	updated, err := u.repo.Transition(ctx, exchangeID, prior, target)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrExchangeNotFound):
			return exchange.Exchange{}, ErrNotFound
		case errors.Is(err, repository.ErrInvalidTransition):
			return exchange.Exchange{}, ErrConflict
		default:
			return exchange.Exchange{}, ErrInternal
		}
	}

	if target == exchange.StatusCompleted {
		u.postCompletionMessage(ctx, updated)
	}

	other := updated.TeacherID
	if actorID == updated.TeacherID {
		other = updated.StudentID
	}
	u.notifier.Notify(ctx, other, notification.TypeSkillExchange, &updated.ID,
		"Skill exchange is now "+strings.ReplaceAll(string(target), "_", " "))

	return updated, nil
}

func (u *Exchanges) Rate(ctx context.Context, actorID, exchangeID uuid.UUID, in RateExchangeInput) (exchange.Exchange, error) {
	if in.Rating < 0 || in.Rating > 5 {
		return exchange.Exchange{}, ErrInvalidInput
	}

	current, err := u.repo.GetByID(ctx, exchangeID)
	if err != nil {
		if errors.Is(err, repository.ErrExchangeNotFound) {
			return exchange.Exchange{}, ErrNotFound
		}
		return exchange.Exchange{}, ErrInternal
	}
	if actorID != current.StudentID {
		return exchange.Exchange{}, ErrForbidden
	}

	rated, err := u.repo.SetRating(ctx, exchangeID, in.Rating, strings.TrimSpace(in.Feedback))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrExchangeNotFound):
			return exchange.Exchange{}, ErrNotFound
		case errors.Is(err, repository.ErrExchangeRated), errors.Is(err, repository.ErrExchangeNotRatable):
			return exchange.Exchange{}, ErrConflict
		default:
			return exchange.Exchange{}, ErrInternal
		}
	}

	avg, err := u.repo.TeacherAverageRating(ctx, rated.TeacherID)
	if err != nil {
		return exchange.Exchange{}, ErrInternal
	}
	if err := u.users.UpdateRating(ctx, rated.TeacherID, avg); err != nil {
		return exchange.Exchange{}, ErrInternal
	}

	u.notifier.Notify(ctx, rated.TeacherID, notification.TypeRating, &rated.ID,
		"You received a new rating for a completed skill exchange")

	return rated, nil
}

func (u *Exchanges) Get(ctx context.Context, actorID, exchangeID uuid.UUID) (exchange.Exchange, error) {
	ex, err := u.repo.GetByID(ctx, exchangeID)
	if err != nil {
		if errors.Is(err, repository.ErrExchangeNotFound) {
			return exchange.Exchange{}, ErrNotFound
		}
		return exchange.Exchange{}, ErrInternal
	}
	if actorID != ex.TeacherID && actorID != ex.StudentID {
		return exchange.Exchange{}, ErrForbidden
	}
	return ex, nil
}

func (u *Exchanges) ListForUser(ctx context.Context, actorID uuid.UUID, role exchange.Role, status exchange.Status) ([]exchange.Exchange, error) {
	if role == "" {
		role = exchange.RoleBoth
	}
	if !role.Valid() {
		return nil, ErrInvalidInput
	}
	if status != "" && !status.Valid() {
		return nil, ErrInvalidInput
	}

	out, err := u.repo.ListForUser(ctx, actorID, role, status)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// postCompletionMessage drops a system note into the chat linked to the
// exchange, when there is one. Best effort; a missing chat is not an error.
func (u *Exchanges) postCompletionMessage(ctx context.Context, ex exchange.Exchange) {
	linked, err := u.chats.FindByExchange(ctx, ex.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrChatNotFound) {
			u.logger.Printf("completion message lookup failed | exchange=%s err=%v", ex.ID, err)
		}
		return
	}

	msg := chat.Message{
		ID:        uuid.New(),
		ChatID:    linked.ID,
		SenderID:  ex.TeacherID,
		Content:   "Skill exchange completed",
		CreatedAt: time.Now().UTC(),
	}
	if err := u.chats.AddMessage(ctx, msg); err != nil {
		u.logger.Printf("completion message insert failed | exchange=%s err=%v", ex.ID, err)
	}
}
