package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"skillswap/internal/domain/discovery"
	"skillswap/internal/domain/skill"
	"skillswap/internal/domain/user"

	"github.com/google/uuid"
)

type fakeCache struct {
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.store {
		if strings.HasPrefix(k, prefix) {
			delete(c.store, k)
		}
	}
	return nil
}

func TestDiscoveryUsecase_Discover_CachesResult(t *testing.T) {
	users := newFakeUserRepo()
	cache := newFakeCache()
	uc := NewDiscoveryUsecase(users, cache, time.Minute)

	me, other := uuid.New(), uuid.New()
	users.profiles[me] = user.Profile{ID: me, DisplayName: "Me"}
	users.profiles[other] = user.Profile{ID: other, DisplayName: "Other"}

	first, err := uc.Discover(context.Background(), me, DiscoverInput{})
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(first))
	}
	if len(cache.store) != 1 {
		t.Fatalf("expected result cached, store has %d entries", len(cache.store))
	}

	// A pool change without invalidation is not visible while cached.
	users.profiles[uuid.New()] = user.Profile{ID: uuid.New(), DisplayName: "New"}
	second, err := uc.Discover(context.Background(), me, DiscoverInput{})
	if err != nil {
		t.Fatalf("discover cached: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected cached result of 1, got %d", len(second))
	}

	invalidateDiscovery(context.Background(), cache)
	if len(cache.store) != 0 {
		t.Fatalf("expected cache emptied, store has %d entries", len(cache.store))
	}
}

func TestDiscoveryUsecase_Discover_KeyIgnoresSkillIDOrder(t *testing.T) {
	id1, id2 := uuid.New(), uuid.New()
	me := uuid.New()

	k1 := discoveryCacheKey(me, DiscoverInput{SkillIDs: []uuid.UUID{id1, id2}})
	k2 := discoveryCacheKey(me, DiscoverInput{SkillIDs: []uuid.UUID{id2, id1}})
	if k1 != k2 {
		t.Fatalf("expected identical keys, got %q and %q", k1, k2)
	}

	k3 := discoveryCacheKey(me, DiscoverInput{SkillIDs: []uuid.UUID{id1}})
	if k1 == k3 {
		t.Fatalf("different option sets must not share a key")
	}
}

func TestDiscoveryUsecase_Discover_AppliesSkillTypeFilter(t *testing.T) {
	users := newFakeUserRepo()
	uc := NewDiscoveryUsecase(users, nil, time.Minute)

	me, teacher, stranger := uuid.New(), uuid.New(), uuid.New()
	users.profiles[me] = user.Profile{
		ID:            me,
		DisplayName:   "Me",
		DesiredSkills: []skill.Skill{{ID: uuid.New(), Name: "Go"}},
	}
	users.profiles[teacher] = user.Profile{
		ID:          teacher,
		DisplayName: "Teacher",
		Skills:      []skill.Skill{{ID: uuid.New(), Name: "go"}},
	}
	users.profiles[stranger] = user.Profile{
		ID:          stranger,
		DisplayName: "Stranger",
		Skills:      []skill.Skill{{ID: uuid.New(), Name: "Cooking"}},
	}

	got, err := uc.Discover(context.Background(), me, DiscoverInput{
		IncludedSkillTypes: discovery.SkillTypesTeaching,
	})
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(got) != 1 || got[0].ID != teacher {
		t.Fatalf("expected only the matching teacher, got %d", len(got))
	}

	if _, err := uc.Discover(context.Background(), me, DiscoverInput{IncludedSkillTypes: "bogus"}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for bad skill type, got %v", err)
	}
}
