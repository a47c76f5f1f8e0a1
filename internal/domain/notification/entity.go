package notification

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeConnectionRequest  Type = "connection_request"
	TypeConnectionAccepted Type = "connection_accepted"
	TypeConnectionRejected Type = "connection_rejected"
	TypeSkillExchange      Type = "skill_exchange"
	TypeRating             Type = "rating"
	TypeSystem             Type = "system"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      Type
	RelatedID *uuid.UUID
	Message   string
	Read      bool
	CreatedAt time.Time
}
