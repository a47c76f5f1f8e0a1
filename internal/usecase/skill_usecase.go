package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/domain/skill"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type AddSkillInput struct {
	Name     string
	Category skill.Category
	Level    skill.Level
	Tags     []string
	Kind     skill.Kind
}

type SkillUsecase interface {
	AddSkill(ctx context.Context, actorID uuid.UUID, in AddSkillInput) (skill.Skill, error)
	RemoveSkill(ctx context.Context, actorID, skillID uuid.UUID) error
	ListSkills(ctx context.Context, userID uuid.UUID, kind skill.Kind) ([]skill.Skill, error)
}

type Skills struct {
	repo  repository.UserSkillRepository
	cache DiscoveryCache
}

func NewSkillUsecase(repo repository.UserSkillRepository, cache DiscoveryCache) *Skills {
	return &Skills{repo: repo, cache: cache}
}

func (u *Skills) AddSkill(ctx context.Context, actorID uuid.UUID, in AddSkillInput) (skill.Skill, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !in.Category.Valid() || !in.Level.Valid() || !in.Kind.Valid() {
		return skill.Skill{}, ErrInvalidInput
	}

	s := skill.Skill{
		ID:       uuid.New(),
		OwnerID:  actorID,
		Name:     name,
		Category: in.Category,
		Level:    in.Level,
		Tags:     in.Tags,
	}
	if err := u.repo.Add(ctx, s, in.Kind); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return skill.Skill{}, ErrNotFound
		}
		return skill.Skill{}, ErrInternal
	}

	invalidateDiscovery(ctx, u.cache)
	return s, nil
}

func (u *Skills) RemoveSkill(ctx context.Context, actorID, skillID uuid.UUID) error {
	if err := u.repo.Remove(ctx, actorID, skillID); err != nil {
		switch {
		case errors.Is(err, repository.ErrSkillNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrSkillForbidden):
			return ErrForbidden
		default:
			return ErrInternal
		}
	}

	invalidateDiscovery(ctx, u.cache)
	return nil
}

func (u *Skills) ListSkills(ctx context.Context, userID uuid.UUID, kind skill.Kind) ([]skill.Skill, error) {
	if !kind.Valid() {
		return nil, ErrInvalidInput
	}
	out, err := u.repo.ListByUser(ctx, userID, kind)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}
