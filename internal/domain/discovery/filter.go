package discovery

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"skillswap/internal/domain/connection"
	"skillswap/internal/domain/skill"
	"skillswap/internal/domain/user"
)

// SkillTypes selects which direction of skill compatibility to require.
type SkillTypes string

const (
	SkillTypesTeaching SkillTypes = "teaching"
	SkillTypesLearning SkillTypes = "learning"
	SkillTypesBoth     SkillTypes = "both"
)

func (t SkillTypes) Valid() bool {
	return t == SkillTypesTeaching || t == SkillTypesLearning || t == SkillTypesBoth
}

type SortBy string

const (
	SortByName     SortBy = "name"
	SortByActivity SortBy = "activity"
)

type Options struct {
	SkillIDs           []uuid.UUID
	Query              string
	IncludedSkillTypes SkillTypes
	Limit              int
	SortBy             SortBy
}

// Filter maps (requester, candidate pool, options) to the ordered candidate
// list. It defines the candidate set and applies the caller-selected stable
// ordering before truncation; it performs no I/O.
//
// Candidates already connected to the requester, and candidates with a
// still-pending request addressed to the requester, are never returned.
func Filter(requester user.Profile, pool []user.Profile, opts Options) []user.Profile {
	excluded := excludedIDs(requester)

	out := make([]user.Profile, 0, len(pool))
	for _, cand := range pool {
		if cand.ID == requester.ID {
			continue
		}
		if excluded[cand.ID] {
			continue
		}
		if len(opts.SkillIDs) > 0 && !ownsAnySkillID(cand, opts.SkillIDs) {
			continue
		}
		if q := strings.ToLower(strings.TrimSpace(opts.Query)); q != "" && !matchesQuery(cand, q) {
			continue
		}
		if opts.IncludedSkillTypes != "" && !matchesSkillTypes(requester, cand, opts.IncludedSkillTypes) {
			continue
		}
		out = append(out, cand)
	}

	sortProfiles(out, opts.SortBy)

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

func excludedIDs(requester user.Profile) map[uuid.UUID]bool {
	excluded := make(map[uuid.UUID]bool, len(requester.Connections)+len(requester.PendingRequests))
	for _, id := range requester.Connections {
		excluded[id] = true
	}
	for _, req := range requester.PendingRequests {
		if req.Status == connection.StatusPending {
			excluded[req.FromUserID] = true
		}
	}
	return excluded
}

func ownsAnySkillID(cand user.Profile, ids []uuid.UUID) bool {
	for _, s := range cand.Skills {
		for _, id := range ids {
			if s.ID == id {
				return true
			}
		}
	}
	return false
}

func matchesQuery(cand user.Profile, q string) bool {
	if strings.Contains(strings.ToLower(cand.DisplayName), q) {
		return true
	}
	if strings.Contains(strings.ToLower(cand.Bio), q) {
		return true
	}
	for _, s := range cand.Skills {
		if strings.Contains(strings.ToLower(s.Name), q) {
			return true
		}
	}
	for _, s := range cand.DesiredSkills {
		if strings.Contains(strings.ToLower(s.Name), q) {
			return true
		}
	}
	return false
}

// matchesSkillTypes checks bidirectional teach/learn compatibility.
// Name matching is exact after lowercasing; no fuzzy matching.
func matchesSkillTypes(requester, cand user.Profile, t SkillTypes) bool {
	canTeachMe := anyNameOverlap(cand.Skills, requester.DesiredSkills)
	wantsMySkills := anyNameOverlap(cand.DesiredSkills, requester.Skills)

	switch t {
	case SkillTypesTeaching:
		return canTeachMe
	case SkillTypesLearning:
		return wantsMySkills
	case SkillTypesBoth:
		return canTeachMe || wantsMySkills
	}
	return true
}

func anyNameOverlap(a, b []skill.Skill) bool {
	for _, x := range a {
		for _, y := range b {
			if skill.NamesEqual(x.Name, y.Name) {
				return true
			}
		}
	}
	return false
}

func sortProfiles(profiles []user.Profile, by SortBy) {
	switch by {
	case SortByActivity:
		// Most recently active first; users without activity sort last.
		sort.SliceStable(profiles, func(i, j int) bool {
			a, b := profiles[i].LastActive, profiles[j].LastActive
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.After(*b)
			}
		})
	default:
		sort.SliceStable(profiles, func(i, j int) bool {
			return strings.ToLower(profiles[i].DisplayName) < strings.ToLower(profiles[j].DisplayName)
		})
	}
}
