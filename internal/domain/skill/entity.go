package skill

import (
	"strings"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryTechnical Category = "technical"
	CategorySoft      Category = "soft"
	CategoryLanguage  Category = "language"
	CategoryArtistic  Category = "artistic"
	CategoryBusiness  Category = "business"
	CategoryOther     Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryTechnical, CategorySoft, CategoryLanguage, CategoryArtistic, CategoryBusiness, CategoryOther:
		return true
	}
	return false
}

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelExpert       Level = "Expert"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelExpert:
		return true
	}
	return false
}

// Kind distinguishes skills a user can teach from skills they want to learn.
// Both kinds share the same shape.
type Kind string

const (
	KindOwned   Kind = "owned"
	KindDesired Kind = "desired"
)

func (k Kind) Valid() bool {
	return k == KindOwned || k == KindDesired
}

type Skill struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	Name     string
	Category Category
	Level    Level
	Tags     []string
}

// NamesEqual reports whether two skill names refer to the same skill.
// Matching is exact after lowercasing; "JS" and "Javascript" do not match.
func NamesEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
