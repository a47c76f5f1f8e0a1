package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"skillswap/internal/domain/discovery"
	"skillswap/internal/domain/user"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

// DiscoveryCache is the slice of the Redis wrapper discovery needs. A nil
// implementation simply disables caching.
type DiscoveryCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const discoveryKeyPrefix = "discovery:"

type DiscoverInput struct {
	SkillIDs           []uuid.UUID
	Query              string
	IncludedSkillTypes discovery.SkillTypes
	Limit              int
	SortBy             discovery.SortBy
}

type DiscoveryUsecase interface {
	Discover(ctx context.Context, requesterID uuid.UUID, in DiscoverInput) ([]user.Profile, error)
}

type Discovery struct {
	users repository.UserRepository
	cache DiscoveryCache
	ttl   time.Duration
}

func NewDiscoveryUsecase(users repository.UserRepository, cache DiscoveryCache, ttl time.Duration) *Discovery {
	return &Discovery{users: users, cache: cache, ttl: ttl}
}

func (u *Discovery) Discover(ctx context.Context, requesterID uuid.UUID, in DiscoverInput) ([]user.Profile, error) {
	if in.IncludedSkillTypes != "" && !in.IncludedSkillTypes.Valid() {
		return nil, ErrInvalidInput
	}
	if in.Limit < 0 {
		return nil, ErrInvalidInput
	}

	key := discoveryCacheKey(requesterID, in)
	if u.cache != nil {
		var cached []user.Profile
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	requester, err := u.users.GetProfile(ctx, requesterID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}

	pool, err := u.users.ListProfilesExcluding(ctx, requesterID)
	if err != nil {
		return nil, ErrInternal
	}

	result := discovery.Filter(requester, pool, discovery.Options{
		SkillIDs:           in.SkillIDs,
		Query:              in.Query,
		IncludedSkillTypes: in.IncludedSkillTypes,
		Limit:              in.Limit,
		SortBy:             in.SortBy,
	})

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, result, u.ttl)
	}
	return result, nil
}

// discoveryCacheKey is deterministic for a given requester and option set.
// Skill ids are sorted so the order the client sends them in does not
// fragment the cache.
func discoveryCacheKey(requesterID uuid.UUID, in DiscoverInput) string {
	ids := make([]string, 0, len(in.SkillIDs))
	for _, id := range in.SkillIDs {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)

	return fmt.Sprintf("%s%s:%s:%s:%s:%d:%s",
		discoveryKeyPrefix,
		requesterID,
		strings.Join(ids, ","),
		strings.ToLower(strings.TrimSpace(in.Query)),
		in.IncludedSkillTypes,
		in.Limit,
		in.SortBy,
	)
}

// invalidateDiscovery drops every cached discovery result. Profile, skill,
// and connection writes all change what other users should see, so the whole
// namespace goes.
func invalidateDiscovery(ctx context.Context, cache DiscoveryCache) {
	if cache == nil {
		return
	}
	_ = cache.DeleteByPattern(ctx, discoveryKeyPrefix+"*")
}
