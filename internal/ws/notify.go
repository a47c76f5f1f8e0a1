package ws

import (
	"encoding/json"
	"time"

	"skillswap/internal/domain/notification"

	"github.com/google/uuid"
)

type NotificationEvent struct {
	Type      string     `json:"type"`
	ID        uuid.UUID  `json:"id"`
	Kind      string     `json:"kind"`
	RelatedID *uuid.UUID `json:"related_id,omitempty"`
	Message   string     `json:"message"`
	Timestamp string     `json:"timestamp"`
}

// NotifyUser pushes a just-created notification to the recipient's live
// connections. Offline users miss the push and pick the row up on their
// next notification fetch.
func (h *Hub) NotifyUser(n notification.Notification) {
	if h == nil {
		return
	}

	evt := NotificationEvent{
		Type:      "notification",
		ID:        n.ID,
		Kind:      string(n.Type),
		RelatedID: n.RelatedID,
		Message:   n.Message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.PushToUser(n.UserID, b)
}
