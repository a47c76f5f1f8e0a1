package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/domain/user"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type UpdateProfileInput struct {
	DisplayName *string
	Bio         *string
	PhotoURL    *string
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, id uuid.UUID) (user.Profile, error)
	UpdateProfile(ctx context.Context, actorID uuid.UUID, in UpdateProfileInput) (user.Profile, error)
	TouchLastActive(ctx context.Context, id uuid.UUID) error
}

type Profile struct {
	users repository.UserRepository
	cache DiscoveryCache
}

func NewProfileUsecase(users repository.UserRepository, cache DiscoveryCache) *Profile {
	return &Profile{users: users, cache: cache}
}

func (u *Profile) GetProfile(ctx context.Context, id uuid.UUID) (user.Profile, error) {
	p, err := u.users.GetProfile(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return user.Profile{}, ErrNotFound
		}
		return user.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *Profile) UpdateProfile(ctx context.Context, actorID uuid.UUID, in UpdateProfileInput) (user.Profile, error) {
	if in.DisplayName != nil && strings.TrimSpace(*in.DisplayName) == "" {
		return user.Profile{}, ErrInvalidInput
	}

	fields := repository.UpdateProfileFields{
		DisplayName: in.DisplayName,
		Bio:         in.Bio,
		PhotoURL:    in.PhotoURL,
	}
	if err := u.users.UpdateProfile(ctx, actorID, fields); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return user.Profile{}, ErrNotFound
		}
		return user.Profile{}, ErrInternal
	}

	invalidateDiscovery(ctx, u.cache)

	return u.GetProfile(ctx, actorID)
}

func (u *Profile) TouchLastActive(ctx context.Context, id uuid.UUID) error {
	if err := u.users.TouchLastActive(ctx, id); err != nil {
		return ErrInternal
	}
	return nil
}
