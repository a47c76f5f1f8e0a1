package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/domain/exchange"
	"skillswap/internal/domain/notification"
	"skillswap/internal/domain/progress"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type UpdateProgressInput struct {
	Milestones []progress.Milestone
	Notes      string
}

type ProgressUsecase interface {
	Get(ctx context.Context, actorID, exchangeID uuid.UUID) (progress.Progress, error)
	Update(ctx context.Context, actorID, exchangeID uuid.UUID, in UpdateProgressInput) (progress.Progress, error)
}

type ProgressTracker struct {
	repo      repository.ProgressRepository
	exchanges repository.ExchangeRepository
	notifier  *Notifier
}

func NewProgressUsecase(repo repository.ProgressRepository, exchanges repository.ExchangeRepository, notifier *Notifier) *ProgressTracker {
	return &ProgressTracker{repo: repo, exchanges: exchanges, notifier: notifier}
}

func (u *ProgressTracker) Get(ctx context.Context, actorID, exchangeID uuid.UUID) (progress.Progress, error) {
	ex, err := u.participantExchange(ctx, actorID, exchangeID)
	if err != nil {
		return progress.Progress{}, err
	}

	p, err := u.repo.GetByExchange(ctx, ex.ID)
	if err != nil {
		if errors.Is(err, repository.ErrProgressNotFound) {
			// No record yet reads as an empty zero-percent progress.
			return progress.Progress{SkillExchangeID: ex.ID, Milestones: []progress.Milestone{}}, nil
		}
		return progress.Progress{}, ErrInternal
	}
	return p, nil
}

// Update replaces the milestone list and recomputes the percentage. The
// record is created on first write.
func (u *ProgressTracker) Update(ctx context.Context, actorID, exchangeID uuid.UUID, in UpdateProgressInput) (progress.Progress, error) {
	for _, m := range in.Milestones {
		if strings.TrimSpace(m.Title) == "" {
			return progress.Progress{}, ErrInvalidInput
		}
	}

	ex, err := u.participantExchange(ctx, actorID, exchangeID)
	if err != nil {
		return progress.Progress{}, err
	}

	p := progress.Progress{
		SkillExchangeID:    ex.ID,
		ProgressPercentage: progress.Percentage(in.Milestones),
		Milestones:         in.Milestones,
		Notes:              strings.TrimSpace(in.Notes),
	}

	err = u.repo.Update(ctx, p)
	if errors.Is(err, repository.ErrProgressNotFound) {
		p.ID = uuid.New()
		err = u.repo.Create(ctx, p)
		if errors.Is(err, repository.ErrProgressExists) {
			err = u.repo.Update(ctx, p)
		}
	}
	if err != nil {
		return progress.Progress{}, ErrInternal
	}

	stored, err := u.repo.GetByExchange(ctx, ex.ID)
	if err != nil {
		return progress.Progress{}, ErrInternal
	}

	for _, party := range []uuid.UUID{ex.TeacherID, ex.StudentID} {
		if party == actorID {
			continue
		}
		u.notifier.Notify(ctx, party, notification.TypeSkillExchange, &ex.ID,
			"Skill exchange progress was updated")
	}

	return stored, nil
}

func (u *ProgressTracker) participantExchange(ctx context.Context, actorID, exchangeID uuid.UUID) (exchange.Exchange, error) {
	ex, err := u.exchanges.GetByID(ctx, exchangeID)
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
